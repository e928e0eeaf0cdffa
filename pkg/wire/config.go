package wire

import "github.com/phd-protocol/phd-go/pkg/mder"

// ConfigObject describes one DIM object in a configuration report.
type ConfigObject struct {
	Class      uint16
	Handle     uint16
	Attributes AttributeList
}

func decodeConfigObject(r *mder.Reader) (ConfigObject, error) {
	var o ConfigObject
	var err error
	if o.Class, err = r.Uint16(); err != nil {
		return o, err
	}
	if o.Handle, err = r.Uint16(); err != nil {
		return o, err
	}
	if o.Attributes, err = DecodeAttributeList(r); err != nil {
		return o, err
	}
	return o, nil
}

func (o ConfigObject) Encode(w *mder.Writer) error {
	w.PutUint16(o.Class)
	w.PutUint16(o.Handle)
	return o.Attributes.Encode(w)
}

// ConfigObjectList is the object list of a configuration.
type ConfigObjectList []ConfigObject

// DecodeConfigObjectList reads a ConfigObjectList.
func DecodeConfigObjectList(r *mder.Reader) (ConfigObjectList, error) {
	return readList(r, decodeConfigObject)
}

// Encode writes the list.
func (l ConfigObjectList) Encode(w *mder.Writer) error {
	return writeList(w, l, encodeItem[ConfigObject])
}

// ConfigReport is the event info of MDC_NOTI_CONFIG.
type ConfigReport struct {
	ConfigReportID uint16
	Objects        ConfigObjectList
}

// DecodeConfigReport reads a ConfigReport.
func DecodeConfigReport(r *mder.Reader) (ConfigReport, error) {
	id, err := r.Uint16()
	if err != nil {
		return ConfigReport{}, err
	}
	l, err := DecodeConfigObjectList(r)
	if err != nil {
		return ConfigReport{}, err
	}
	return ConfigReport{ConfigReportID: id, Objects: l}, nil
}

// Encode writes the report.
func (c ConfigReport) Encode(w *mder.Writer) error {
	w.PutUint16(c.ConfigReportID)
	return c.Objects.Encode(w)
}

// ConfigReportRsp is the reply info of a configuration report.
type ConfigReportRsp struct {
	ConfigReportID uint16
	Result         ConfigResult
}

// DecodeConfigReportRsp reads a ConfigReportRsp.
func DecodeConfigReportRsp(r *mder.Reader) (ConfigReportRsp, error) {
	id, err := r.Uint16()
	if err != nil {
		return ConfigReportRsp{}, err
	}
	res, err := r.Uint16()
	if err != nil {
		return ConfigReportRsp{}, err
	}
	return ConfigReportRsp{ConfigReportID: id, Result: ConfigResult(res)}, nil
}

// Encode writes the response.
func (c ConfigReportRsp) Encode(w *mder.Writer) error {
	w.PutUint16(c.ConfigReportID)
	w.PutUint16(uint16(c.Result))
	return nil
}
