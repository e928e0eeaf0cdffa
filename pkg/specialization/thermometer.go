package specialization

import (
	"time"

	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/model"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

const (
	// ThermometerConfigID is the standard configuration of a body
	// thermometer.
	ThermometerConfigID uint16 = 0x0320

	// ThermometerHandle is the handle of the temperature Numeric.
	ThermometerHandle uint16 = 1

	// MDC_DEV_SPEC_PROFILE_TEMP is the thermometer device specialization.
	MDC_DEV_SPEC_PROFILE_TEMP uint16 = 4104
)

// Metric-Spec-Small of the temperature object: intermittently available,
// stored data, aperiodic update and measurement, agent initiated.
const thermometerSpecSmall uint16 = 0xF040

// ThermometerAttrValMap is the fixed-format layout of a temperature
// observation.
var ThermometerAttrValMap = wire.AttrValMap{
	{AttributeID: nomenclature.MDC_ATTR_NU_VAL_OBS_SIMP, Length: 4},
	{AttributeID: nomenclature.MDC_ATTR_TIME_STAMP_ABS, Length: 8},
}

type u16 uint16

func (v u16) Encode(w *mder.Writer) error { w.PutUint16(uint16(v)); return nil }

func attr(id uint16, v wire.Encoder) wire.AVAType {
	// The canned values are small fixed structures and always encode.
	b, _ := wire.Marshal(v)
	return wire.AVAType{AttributeID: id, Value: wire.Any(b)}
}

// ThermometerConfig returns the object list of the thermometer
// configuration.
func ThermometerConfig() wire.ConfigObjectList {
	return wire.ConfigObjectList{
		{
			Class:  nomenclature.MDC_MOC_VMO_METRIC_NU,
			Handle: ThermometerHandle,
			Attributes: wire.AttributeList{
				attr(nomenclature.MDC_ATTR_ID_TYPE, wire.Type{Partition: nomenclature.MDC_PART_SCADA, Code: nomenclature.MDC_TEMP_BODY}),
				attr(nomenclature.MDC_ATTR_METRIC_SPEC_SMALL, u16(thermometerSpecSmall)),
				attr(nomenclature.MDC_ATTR_UNIT_CODE, u16(nomenclature.MDC_DIM_DEGC)),
				attr(nomenclature.MDC_ATTR_ATTRIBUTE_VAL_MAP, ThermometerAttrValMap),
			},
		},
	}
}

// StandardRegistry accepts standard configurations.
type StandardRegistry interface {
	RegisterStandard(id uint16, objs wire.ConfigObjectList) error
}

// Register adds every canned configuration to reg.
func Register(reg StandardRegistry) error {
	return reg.RegisterStandard(ThermometerConfigID, ThermometerConfig())
}

// ThermometerMDS returns the MDS a thermometer agent with the given
// system id reports, with its configuration applied.
func ThermometerMDS(systemID []byte) (*model.MDS, error) {
	m := model.NewMDS(nil)
	m.SystemModel = wire.SystemModel{Manufacturer: []byte("phd-go"), ModelNumber: []byte("thermometer")}
	m.SystemID = append([]byte(nil), systemID...)
	m.DevConfigID = ThermometerConfigID
	m.SystemTypeSpecList = wire.TypeVerList{{Type: MDC_DEV_SPEC_PROFILE_TEMP, Version: 1}}
	if err := m.Configure(ThermometerConfig()); err != nil {
		return nil, err
	}
	return m, nil
}

// thermometerObservation lays out one temperature reading according to
// ThermometerAttrValMap.
func thermometerObservation(celsius float64, at time.Time) []byte {
	w := mder.NewWriter()
	w.PutFloat(celsius)
	_ = wire.NewAbsoluteTime(at).Encode(w)
	return w.Bytes()
}

// ThermometerMeasurement returns the fixed-format scan report of one
// temperature reading, ready to be sent as an MDS event report.
func ThermometerMeasurement(reportNo uint16, celsius float64, at time.Time) (*wire.EventReportArgument, error) {
	info, err := wire.AnyOf(wire.ScanReportInfoFixed{
		ScanReportNo: reportNo,
		Observations: []wire.ObservationScanFixed{{
			Handle:  ThermometerHandle,
			ObsData: thermometerObservation(celsius, at),
		}},
	})
	if err != nil {
		return nil, err
	}
	return &wire.EventReportArgument{
		Handle:    model.MDSHandle,
		EventTime: 0xFFFFFFFF,
		EventType: nomenclature.MDC_NOTI_SCAN_REPORT_FIXED,
		EventInfo: info,
	}, nil
}
