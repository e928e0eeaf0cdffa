package wire

import (
	"github.com/phd-protocol/phd-go/pkg/mder"
)

// ObservationScan carries self-describing attributes of one object.
type ObservationScan struct {
	Handle     uint16
	Attributes AttributeList
}

func decodeObservationScan(r *mder.Reader) (ObservationScan, error) {
	h, err := r.Uint16()
	if err != nil {
		return ObservationScan{}, err
	}
	l, err := DecodeAttributeList(r)
	if err != nil {
		return ObservationScan{}, err
	}
	return ObservationScan{Handle: h, Attributes: l}, nil
}

func (o ObservationScan) Encode(w *mder.Writer) error {
	w.PutUint16(o.Handle)
	return o.Attributes.Encode(w)
}

// ObservationScanFixed carries the fixed-format attribute blob of one
// object, laid out by the object's attribute-value map.
type ObservationScanFixed struct {
	Handle  uint16
	ObsData []byte
}

func decodeObservationScanFixed(r *mder.Reader) (ObservationScanFixed, error) {
	h, err := r.Uint16()
	if err != nil {
		return ObservationScanFixed{}, err
	}
	b, err := r.OctetString()
	if err != nil {
		return ObservationScanFixed{}, err
	}
	return ObservationScanFixed{Handle: h, ObsData: b}, nil
}

func (o ObservationScanFixed) Encode(w *mder.Writer) error {
	w.PutUint16(o.Handle)
	return w.PutOctetString(o.ObsData)
}

// ObservationScanGrouped is one grouped-format blob covering every object
// in the scanner's handle-attribute-value map.
type ObservationScanGrouped []byte

func decodeObservationScanGrouped(r *mder.Reader) (ObservationScanGrouped, error) {
	b, err := r.OctetString()
	return ObservationScanGrouped(b), err
}

func (o ObservationScanGrouped) Encode(w *mder.Writer) error {
	return w.PutOctetString(o)
}

// ScanReportInfoVar is a variable-format scan report.
type ScanReportInfoVar struct {
	DataReqID    uint16
	ScanReportNo uint16
	Observations []ObservationScan
}

// DecodeScanReportInfoVar reads a ScanReportInfoVar.
func DecodeScanReportInfoVar(r *mder.Reader) (ScanReportInfoVar, error) {
	var s ScanReportInfoVar
	var err error
	if s.DataReqID, s.ScanReportNo, err = readReportHeader(r); err != nil {
		return s, err
	}
	s.Observations, err = readList(r, decodeObservationScan)
	return s, err
}

// Encode writes the report.
func (s ScanReportInfoVar) Encode(w *mder.Writer) error {
	w.PutUint16(s.DataReqID)
	w.PutUint16(s.ScanReportNo)
	return writeList(w, s.Observations, encodeItem[ObservationScan])
}

// ScanReportInfoFixed is a fixed-format scan report.
type ScanReportInfoFixed struct {
	DataReqID    uint16
	ScanReportNo uint16
	Observations []ObservationScanFixed
}

// DecodeScanReportInfoFixed reads a ScanReportInfoFixed.
func DecodeScanReportInfoFixed(r *mder.Reader) (ScanReportInfoFixed, error) {
	var s ScanReportInfoFixed
	var err error
	if s.DataReqID, s.ScanReportNo, err = readReportHeader(r); err != nil {
		return s, err
	}
	s.Observations, err = readList(r, decodeObservationScanFixed)
	return s, err
}

// Encode writes the report.
func (s ScanReportInfoFixed) Encode(w *mder.Writer) error {
	w.PutUint16(s.DataReqID)
	w.PutUint16(s.ScanReportNo)
	return writeList(w, s.Observations, encodeItem[ObservationScanFixed])
}

// ScanReportInfoGrouped is a grouped-format scan report.
type ScanReportInfoGrouped struct {
	DataReqID    uint16
	ScanReportNo uint16
	Observations []ObservationScanGrouped
}

// DecodeScanReportInfoGrouped reads a ScanReportInfoGrouped.
func DecodeScanReportInfoGrouped(r *mder.Reader) (ScanReportInfoGrouped, error) {
	var s ScanReportInfoGrouped
	var err error
	if s.DataReqID, s.ScanReportNo, err = readReportHeader(r); err != nil {
		return s, err
	}
	s.Observations, err = readList(r, decodeObservationScanGrouped)
	return s, err
}

// Encode writes the report.
func (s ScanReportInfoGrouped) Encode(w *mder.Writer) error {
	w.PutUint16(s.DataReqID)
	w.PutUint16(s.ScanReportNo)
	return writeList(w, s.Observations, encodeItem[ObservationScanGrouped])
}

// ScanReportPerVar holds the variable-format observations of one person.
type ScanReportPerVar struct {
	PersonID     uint16
	Observations []ObservationScan
}

func decodeScanReportPerVar(r *mder.Reader) (ScanReportPerVar, error) {
	p, err := r.Uint16()
	if err != nil {
		return ScanReportPerVar{}, err
	}
	l, err := readList(r, decodeObservationScan)
	if err != nil {
		return ScanReportPerVar{}, err
	}
	return ScanReportPerVar{PersonID: p, Observations: l}, nil
}

func (s ScanReportPerVar) Encode(w *mder.Writer) error {
	w.PutUint16(s.PersonID)
	return writeList(w, s.Observations, encodeItem[ObservationScan])
}

// ScanReportInfoMPVar is a multi-person variable-format report.
type ScanReportInfoMPVar struct {
	DataReqID    uint16
	ScanReportNo uint16
	Persons      []ScanReportPerVar
}

// DecodeScanReportInfoMPVar reads a ScanReportInfoMPVar.
func DecodeScanReportInfoMPVar(r *mder.Reader) (ScanReportInfoMPVar, error) {
	var s ScanReportInfoMPVar
	var err error
	if s.DataReqID, s.ScanReportNo, err = readReportHeader(r); err != nil {
		return s, err
	}
	s.Persons, err = readList(r, decodeScanReportPerVar)
	return s, err
}

// Encode writes the report.
func (s ScanReportInfoMPVar) Encode(w *mder.Writer) error {
	w.PutUint16(s.DataReqID)
	w.PutUint16(s.ScanReportNo)
	return writeList(w, s.Persons, encodeItem[ScanReportPerVar])
}

// ScanReportPerFixed holds the fixed-format observations of one person.
type ScanReportPerFixed struct {
	PersonID     uint16
	Observations []ObservationScanFixed
}

func decodeScanReportPerFixed(r *mder.Reader) (ScanReportPerFixed, error) {
	p, err := r.Uint16()
	if err != nil {
		return ScanReportPerFixed{}, err
	}
	l, err := readList(r, decodeObservationScanFixed)
	if err != nil {
		return ScanReportPerFixed{}, err
	}
	return ScanReportPerFixed{PersonID: p, Observations: l}, nil
}

func (s ScanReportPerFixed) Encode(w *mder.Writer) error {
	w.PutUint16(s.PersonID)
	return writeList(w, s.Observations, encodeItem[ObservationScanFixed])
}

// ScanReportInfoMPFixed is a multi-person fixed-format report.
type ScanReportInfoMPFixed struct {
	DataReqID    uint16
	ScanReportNo uint16
	Persons      []ScanReportPerFixed
}

// DecodeScanReportInfoMPFixed reads a ScanReportInfoMPFixed.
func DecodeScanReportInfoMPFixed(r *mder.Reader) (ScanReportInfoMPFixed, error) {
	var s ScanReportInfoMPFixed
	var err error
	if s.DataReqID, s.ScanReportNo, err = readReportHeader(r); err != nil {
		return s, err
	}
	s.Persons, err = readList(r, decodeScanReportPerFixed)
	return s, err
}

// Encode writes the report.
func (s ScanReportInfoMPFixed) Encode(w *mder.Writer) error {
	w.PutUint16(s.DataReqID)
	w.PutUint16(s.ScanReportNo)
	return writeList(w, s.Persons, encodeItem[ScanReportPerFixed])
}

// ScanReportPerGrouped holds the grouped observation of one person.
type ScanReportPerGrouped struct {
	PersonID    uint16
	Observation ObservationScanGrouped
}

func decodeScanReportPerGrouped(r *mder.Reader) (ScanReportPerGrouped, error) {
	p, err := r.Uint16()
	if err != nil {
		return ScanReportPerGrouped{}, err
	}
	o, err := decodeObservationScanGrouped(r)
	if err != nil {
		return ScanReportPerGrouped{}, err
	}
	return ScanReportPerGrouped{PersonID: p, Observation: o}, nil
}

func (s ScanReportPerGrouped) Encode(w *mder.Writer) error {
	w.PutUint16(s.PersonID)
	return s.Observation.Encode(w)
}

// ScanReportInfoMPGrouped is a multi-person grouped-format report.
type ScanReportInfoMPGrouped struct {
	DataReqID    uint16
	ScanReportNo uint16
	Persons      []ScanReportPerGrouped
}

// DecodeScanReportInfoMPGrouped reads a ScanReportInfoMPGrouped.
func DecodeScanReportInfoMPGrouped(r *mder.Reader) (ScanReportInfoMPGrouped, error) {
	var s ScanReportInfoMPGrouped
	var err error
	if s.DataReqID, s.ScanReportNo, err = readReportHeader(r); err != nil {
		return s, err
	}
	s.Persons, err = readList(r, decodeScanReportPerGrouped)
	return s, err
}

// Encode writes the report.
func (s ScanReportInfoMPGrouped) Encode(w *mder.Writer) error {
	w.PutUint16(s.DataReqID)
	w.PutUint16(s.ScanReportNo)
	return writeList(w, s.Persons, encodeItem[ScanReportPerGrouped])
}

func readReportHeader(r *mder.Reader) (dataReqID, reportNo uint16, err error) {
	if dataReqID, err = r.Uint16(); err != nil {
		return 0, 0, err
	}
	if reportNo, err = r.Uint16(); err != nil {
		return 0, 0, err
	}
	return dataReqID, reportNo, nil
}
