package model

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/creachadair/mds/value"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// MDSHandle is the fixed handle of the MDS object.
const MDSHandle uint16 = 0

// MDS is the root of the DIM tree. An MDS is not safe for concurrent use.
type MDS struct {
	SystemModel        wire.SystemModel
	SystemID           []byte
	DevConfigID        uint16
	SystemTypeSpecList wire.TypeVerList

	SystemType           value.Maybe[wire.Type]
	AttrValMap           value.Maybe[wire.AttrValMap]
	ProductionSpec       value.Maybe[wire.ProductionSpec]
	MdsTimeInfo          value.Maybe[wire.MdsTimeInfo]
	DateAndTime          value.Maybe[wire.AbsoluteTime]
	RelativeTime         value.Maybe[uint32]
	HiResRelativeTime    value.Maybe[wire.HighResRelativeTime]
	DateAndTimeAdjust    value.Maybe[wire.AbsoluteTimeAdjust]
	PowerStatus          value.Maybe[uint16]
	BatteryLevel         value.Maybe[uint16]
	RemainingBatteryTime value.Maybe[wire.BatMeasure]
	RegCertDataList      value.Maybe[wire.RegCertDataList]
	ConfirmTimeout       value.Maybe[uint32]

	logger  *slog.Logger
	objects map[uint16]Object
	order   []Object
}

// NewMDS returns an empty MDS. A nil logger discards output.
func NewMDS(logger *slog.Logger) *MDS {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MDS{
		logger:  logger,
		objects: make(map[uint16]Object),
	}
}

// Handle returns MDSHandle.
func (m *MDS) Handle() uint16 { return MDSHandle }

// Class returns MDC_MOC_VMS_MDS_SIMP.
func (m *MDS) Class() uint16 { return nomenclature.MDC_MOC_VMS_MDS_SIMP }

// AttributeValueMap returns the fixed-format layout of the MDS, if any.
func (m *MDS) AttributeValueMap() (wire.AttrValMap, bool) {
	return m.AttrValMap.GetOK()
}

// SetAttribute decodes an MDS attribute.
func (m *MDS) SetAttribute(id uint16, r *mder.Reader) (*data.Entry, error) {
	switch id {
	case nomenclature.MDC_ATTR_ID_HANDLE:
		return readHandle(r, id)
	case nomenclature.MDC_ATTR_SYS_TYPE:
		return setMaybe(r, &m.SystemType, id, wire.DecodeType, data.Type)
	case nomenclature.MDC_ATTR_ID_MODEL:
		return set(r, &m.SystemModel, id, wire.DecodeSystemModel, data.SystemModel)
	case nomenclature.MDC_ATTR_SYS_ID:
		return set(r, &m.SystemID, id, readOctets, data.Octets)
	case nomenclature.MDC_ATTR_DEV_CONFIG_ID:
		return set(r, &m.DevConfigID, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_ATTRIBUTE_VAL_MAP:
		return setMaybe(r, &m.AttrValMap, id, wire.DecodeAttrValMap, data.AttrValMap)
	case nomenclature.MDC_ATTR_ID_PROD_SPECN:
		return setMaybe(r, &m.ProductionSpec, id, wire.DecodeProductionSpec, data.ProductionSpec)
	case nomenclature.MDC_ATTR_MDS_TIME_INFO:
		return setMaybe(r, &m.MdsTimeInfo, id, wire.DecodeMdsTimeInfo, data.MdsTimeInfo)
	case nomenclature.MDC_ATTR_TIME_ABS:
		return setMaybe(r, &m.DateAndTime, id, wire.DecodeAbsoluteTime, data.AbsoluteTime)
	case nomenclature.MDC_ATTR_TIME_REL:
		return setMaybe(r, &m.RelativeTime, id, readUint32, data.Uint32)
	case nomenclature.MDC_ATTR_TIME_REL_HI_RES:
		return setMaybe(r, &m.HiResRelativeTime, id, wire.DecodeHighResRelativeTime, data.HighResRelativeTime)
	case nomenclature.MDC_ATTR_TIME_ABS_ADJUST:
		return setMaybe(r, &m.DateAndTimeAdjust, id, wire.DecodeAbsoluteTimeAdjust, data.AbsoluteTimeAdjust)
	case nomenclature.MDC_ATTR_POWER_STAT:
		return setMaybe(r, &m.PowerStatus, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_VAL_BATT_CHARGE:
		return setMaybe(r, &m.BatteryLevel, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_TIME_BATT_REMAIN:
		return setMaybe(r, &m.RemainingBatteryTime, id, wire.DecodeBatMeasure, data.BatMeasure)
	case nomenclature.MDC_ATTR_REG_CERT_DATA_LIST:
		return setMaybe(r, &m.RegCertDataList, id, wire.DecodeRegCertDataList, data.RegCertDataList)
	case nomenclature.MDC_ATTR_SYS_TYPE_SPEC_LIST:
		return set(r, &m.SystemTypeSpecList, id, wire.DecodeTypeVerList, data.TypeVerList)
	case nomenclature.MDC_ATTR_CONFIRM_TIMEOUT:
		return setMaybe(r, &m.ConfirmTimeout, id, readUint32, data.Uint32)
	}
	return nil, unknownAttribute(id)
}

// Attributes encodes the attributes of the MDS, as an agent reports them
// in answer to a GET on handle 0. Absent optional attributes are left out.
func (m *MDS) Attributes() (wire.AttributeList, error) {
	var l wire.AttributeList
	add := func(id uint16, v wire.Encoder) error {
		b, err := wire.Marshal(v)
		if err != nil {
			return fmt.Errorf("%s: %w", nomenclature.AttributeName(id), err)
		}
		l = append(l, wire.AVAType{AttributeID: id, Value: wire.Any(b)})
		return nil
	}
	type entry struct {
		id uint16
		v  wire.Encoder
		ok bool
	}
	entries := []entry{
		{nomenclature.MDC_ATTR_ID_HANDLE, u16(MDSHandle), true},
		{nomenclature.MDC_ATTR_SYS_TYPE, m.SystemType.Get(), m.SystemType.Present()},
		{nomenclature.MDC_ATTR_ID_MODEL, m.SystemModel, true},
		{nomenclature.MDC_ATTR_SYS_ID, octets(m.SystemID), true},
		{nomenclature.MDC_ATTR_DEV_CONFIG_ID, u16(m.DevConfigID), true},
		{nomenclature.MDC_ATTR_ATTRIBUTE_VAL_MAP, m.AttrValMap.Get(), m.AttrValMap.Present()},
		{nomenclature.MDC_ATTR_ID_PROD_SPECN, m.ProductionSpec.Get(), m.ProductionSpec.Present()},
		{nomenclature.MDC_ATTR_MDS_TIME_INFO, m.MdsTimeInfo.Get(), m.MdsTimeInfo.Present()},
		{nomenclature.MDC_ATTR_TIME_ABS, m.DateAndTime.Get(), m.DateAndTime.Present()},
		{nomenclature.MDC_ATTR_TIME_REL, u32(m.RelativeTime.Get()), m.RelativeTime.Present()},
		{nomenclature.MDC_ATTR_TIME_REL_HI_RES, m.HiResRelativeTime.Get(), m.HiResRelativeTime.Present()},
		{nomenclature.MDC_ATTR_TIME_ABS_ADJUST, m.DateAndTimeAdjust.Get(), m.DateAndTimeAdjust.Present()},
		{nomenclature.MDC_ATTR_POWER_STAT, u16(m.PowerStatus.Get()), m.PowerStatus.Present()},
		{nomenclature.MDC_ATTR_VAL_BATT_CHARGE, u16(m.BatteryLevel.Get()), m.BatteryLevel.Present()},
		{nomenclature.MDC_ATTR_TIME_BATT_REMAIN, m.RemainingBatteryTime.Get(), m.RemainingBatteryTime.Present()},
		{nomenclature.MDC_ATTR_REG_CERT_DATA_LIST, m.RegCertDataList.Get(), m.RegCertDataList.Present()},
		{nomenclature.MDC_ATTR_SYS_TYPE_SPEC_LIST, m.SystemTypeSpecList, true},
		{nomenclature.MDC_ATTR_CONFIRM_TIMEOUT, u32(m.ConfirmTimeout.Get()), m.ConfirmTimeout.Present()},
	}
	for _, e := range entries {
		if !e.ok {
			continue
		}
		if err := add(e.id, e.v); err != nil {
			return nil, err
		}
	}
	return l, nil
}

type u16 uint16

func (v u16) Encode(w *mder.Writer) error { w.PutUint16(uint16(v)); return nil }

type u32 uint32

func (v u32) Encode(w *mder.Writer) error { w.PutUint32(uint32(v)); return nil }

type octets []byte

func (v octets) Encode(w *mder.Writer) error { return w.PutOctetString(v) }

// AddObject adds o to the tree. Handles are unique within an MDS and
// handle 0 belongs to the MDS itself.
func (m *MDS) AddObject(o Object) error {
	h := o.Handle()
	if _, dup := m.objects[h]; dup || h == MDSHandle {
		return fmt.Errorf("%w: %d", ErrDuplicateHandle, h)
	}
	m.objects[h] = o
	m.order = append(m.order, o)
	return nil
}

// ObjectByHandle returns the object with handle h. The MDS itself is not
// in its own object list.
func (m *MDS) ObjectByHandle(h uint16) (Object, bool) {
	o, ok := m.objects[h]
	return o, ok
}

// Objects returns the objects in the order they were added.
func (m *MDS) Objects() []Object {
	return append([]Object(nil), m.order...)
}

// ObjectCount returns the number of objects, excluding the MDS.
func (m *MDS) ObjectCount() int { return len(m.order) }

// PMStores returns the PM-store objects in order.
func (m *MDS) PMStores() []*PMStore {
	var out []*PMStore
	for _, o := range m.order {
		if p, ok := o.(*PMStore); ok {
			out = append(out, p)
		}
	}
	return out
}

// PMStore returns the PM-store with handle h.
func (m *MDS) PMStore(h uint16) (*PMStore, error) {
	o, ok := m.objects[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	p, ok := o.(*PMStore)
	if !ok {
		return nil, fmt.Errorf("%w: handle %d is %s", ErrWrongClass, h, nomenclature.ClassName(o.Class()))
	}
	return p, nil
}

// Scanner returns the scanner with handle h.
func (m *MDS) Scanner(h uint16) (ScannerObject, error) {
	o, ok := m.objects[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	s, ok := o.(ScannerObject)
	if !ok {
		return nil, fmt.Errorf("%w: handle %d is %s", ErrWrongClass, h, nomenclature.ClassName(o.Class()))
	}
	return s, nil
}

// Reset drops every object. MDS attributes are kept.
func (m *MDS) Reset() {
	m.objects = make(map[uint16]Object)
	m.order = nil
}

// ApplyAttributes decodes a list of attributes into the object with handle
// h (0 for the MDS) and describes the result, as for a GET response or a
// variable-format observation.
func (m *MDS) ApplyAttributes(h uint16, list wire.AttributeList) (*data.Entry, error) {
	var o Object = m
	if h != MDSHandle {
		var ok bool
		if o, ok = m.objects[h]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
		}
	}
	return m.apply(o, list)
}

func (m *MDS) apply(o Object, list wire.AttributeList) (*data.Entry, error) {
	e := Describe(o)
	for _, a := range list {
		c, err := o.SetAttribute(a.AttributeID, mder.NewReader(a.Value))
		if errors.Is(err, ErrUnknownAttribute) {
			m.logger.Debug("ignoring attribute", "handle", o.Handle(), "attribute", a.AttributeID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("handle %d: %w", o.Handle(), err)
		}
		e.Add(c)
	}
	return e, nil
}
