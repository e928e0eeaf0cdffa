package model

import (
	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// ScannerObject is implemented by the configurable scanner classes.
type ScannerObject interface {
	Object
	scanner() *CfgScanner

	// Buffered reports whether the scanner emits buffered (periodic) or
	// unbuffered (episodic) scan reports.
	Buffered() bool
}

// CfgScanner holds the attributes shared by episodic and periodic
// scanners, including those of the abstract Scanner class.
type CfgScanner struct {
	handle uint16

	OperationalState wire.OperationalState
	LabelString      []byte
	ScanHandleList   wire.HandleList

	// ScanHandleAttrValMap is the layout of grouped-format reports.
	ScanHandleAttrValMap wire.HandleAttrValMap

	ConfirmMode    wire.ConfirmMode
	ConfirmTimeout uint32
	TransmitWindow uint16
}

// Handle returns the object handle.
func (s *CfgScanner) Handle() uint16 { return s.handle }

func (s *CfgScanner) scanner() *CfgScanner { return s }

// setAttribute decodes the Scanner and CfgScanner attributes.
func (s *CfgScanner) setAttribute(id uint16, r *mder.Reader) (*data.Entry, error) {
	switch id {
	case nomenclature.MDC_ATTR_ID_HANDLE:
		return readHandle(r, id)
	case nomenclature.MDC_ATTR_OP_STAT:
		return set(r, &s.OperationalState, id, readOpState, describeOpState)
	case nomenclature.MDC_ATTR_ID_LABEL_STRING:
		return set(r, &s.LabelString, id, readOctets, data.String)
	case nomenclature.MDC_ATTR_SCAN_HANDLE_LIST:
		return set(r, &s.ScanHandleList, id, wire.DecodeHandleList, describeHandleList)
	case nomenclature.MDC_ATTR_SCAN_HANDLE_ATTR_VAL_MAP:
		return set(r, &s.ScanHandleAttrValMap, id, wire.DecodeHandleAttrValMap, describeHandleAttrValMap)
	case nomenclature.MDC_ATTR_CONFIRM_MODE:
		return set(r, &s.ConfirmMode, id, readConfirmMode, describeConfirmMode)
	case nomenclature.MDC_ATTR_CONFIRM_TIMEOUT:
		return set(r, &s.ConfirmTimeout, id, readUint32, data.Uint32)
	case nomenclature.MDC_ATTR_TX_WIND:
		return set(r, &s.TransmitWindow, id, readUint16, data.Uint16)
	}
	return nil, unknownAttribute(id)
}

// EpiCfgScanner reports episodic, unbuffered scan events.
type EpiCfgScanner struct {
	CfgScanner

	MinReportingInterval uint32
}

// NewEpiCfgScanner creates an episodic scanner.
func NewEpiCfgScanner(handle uint16) *EpiCfgScanner {
	return &EpiCfgScanner{CfgScanner: CfgScanner{handle: handle}}
}

// Class returns MDC_MOC_SCAN_CFG_EPI.
func (s *EpiCfgScanner) Class() uint16 { return nomenclature.MDC_MOC_SCAN_CFG_EPI }

// Buffered returns false.
func (s *EpiCfgScanner) Buffered() bool { return false }

// SetAttribute decodes an episodic scanner attribute.
func (s *EpiCfgScanner) SetAttribute(id uint16, r *mder.Reader) (*data.Entry, error) {
	if id == nomenclature.MDC_ATTR_SCAN_REP_PD_MIN {
		return set(r, &s.MinReportingInterval, id, readUint32, data.Uint32)
	}
	return s.setAttribute(id, r)
}

// PeriCfgScanner reports periodic, buffered scan events.
type PeriCfgScanner struct {
	CfgScanner

	ReportingInterval uint32
}

// NewPeriCfgScanner creates a periodic scanner.
func NewPeriCfgScanner(handle uint16) *PeriCfgScanner {
	return &PeriCfgScanner{CfgScanner: CfgScanner{handle: handle}}
}

// Class returns MDC_MOC_SCAN_CFG_PERI.
func (s *PeriCfgScanner) Class() uint16 { return nomenclature.MDC_MOC_SCAN_CFG_PERI }

// Buffered returns true.
func (s *PeriCfgScanner) Buffered() bool { return true }

// SetAttribute decodes a periodic scanner attribute.
func (s *PeriCfgScanner) SetAttribute(id uint16, r *mder.Reader) (*data.Entry, error) {
	if id == nomenclature.MDC_ATTR_SCAN_REP_PD {
		return set(r, &s.ReportingInterval, id, readUint32, data.Uint32)
	}
	return s.setAttribute(id, r)
}

func readOpState(r *mder.Reader) (wire.OperationalState, error) {
	v, err := r.Uint16()
	return wire.OperationalState(v), err
}

func describeOpState(name string, s wire.OperationalState) *data.Entry {
	return data.Uint16(name, uint16(s))
}

func readConfirmMode(r *mder.Reader) (wire.ConfirmMode, error) {
	v, err := r.Uint16()
	return wire.ConfirmMode(v), err
}

func describeConfirmMode(name string, m wire.ConfirmMode) *data.Entry {
	return data.Uint16(name, uint16(m))
}

func describeHandleList(name string, l wire.HandleList) *data.Entry {
	return data.HandleList(name, l)
}

func describeHandleAttrValMap(name string, m wire.HandleAttrValMap) *data.Entry {
	e := data.NewCompound(name)
	for _, h := range m {
		e.Add(data.NewCompound("handle-attr-val-map-entry",
			data.Uint16("obj-handle", h.Handle),
			data.AttrValMap("attr-val-map", h.AttrValMap),
		))
	}
	return e
}
