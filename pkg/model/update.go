package model

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// The update routines apply scan reports to the tree. Each returns one
// compound per object successfully updated. Objects that fail are left
// out and their errors joined; an empty list means nothing to report.

// UpdateVar applies variable-format observations.
func (m *MDS) UpdateVar(obs []wire.ObservationScan) (data.List, error) {
	var (
		out  data.List
		errs []error
	)
	for _, o := range obs {
		e, err := m.ApplyAttributes(o.Handle, o.Attributes)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, e)
	}
	return out, errors.Join(errs...)
}

// UpdateFixed applies fixed-format observations, each decoded with its
// object's attribute-value map.
func (m *MDS) UpdateFixed(obs []wire.ObservationScanFixed) (data.List, error) {
	var (
		out  data.List
		errs []error
	)
	for _, o := range obs {
		e, err := m.updateFixed(o)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, e)
	}
	return out, errors.Join(errs...)
}

func (m *MDS) updateFixed(o wire.ObservationScanFixed) (*data.Entry, error) {
	var obj Object = m
	if o.Handle != MDSHandle {
		var ok bool
		if obj, ok = m.objects[o.Handle]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, o.Handle)
		}
	}
	mapper, ok := obj.(AttrValMapper)
	if !ok {
		return nil, fmt.Errorf("%w: handle %d", ErrNoAttrValMap, o.Handle)
	}
	avm, ok := mapper.AttributeValueMap()
	if !ok || len(avm) == 0 {
		return nil, fmt.Errorf("%w: handle %d", ErrNoAttrValMap, o.Handle)
	}
	return m.decodePositional(obj, avm, mder.NewReader(o.ObsData))
}

// UpdateGrouped applies grouped-format observations laid out by the
// scanner's handle-attribute-value map.
func (m *MDS) UpdateGrouped(s ScannerObject, obs []wire.ObservationScanGrouped) (data.List, error) {
	var (
		out  data.List
		errs []error
	)
	for _, g := range obs {
		l, err := m.updateGrouped(s, g)
		out = append(out, l...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return out, errors.Join(errs...)
}

// updateGrouped walks one blob. The cursor is shared by every object, so
// the first failure abandons the rest of the blob.
func (m *MDS) updateGrouped(s ScannerObject, g wire.ObservationScanGrouped) (data.List, error) {
	hm := s.scanner().ScanHandleAttrValMap
	if len(hm) == 0 {
		return nil, fmt.Errorf("%w: scanner %d", ErrNoAttrValMap, s.Handle())
	}
	r := mder.NewReader(g)
	var out data.List
	for _, he := range hm {
		obj, ok := m.objects[he.Handle]
		if !ok {
			return out, fmt.Errorf("scanner %d: %w: %d", s.Handle(), ErrUnknownHandle, he.Handle)
		}
		e, err := m.decodePositional(obj, he.AttrValMap, r)
		if err != nil {
			return out, fmt.Errorf("scanner %d: %w", s.Handle(), err)
		}
		out = append(out, e)
	}
	return out, nil
}

// UpdateMPVar applies multi-person variable-format observations.
func (m *MDS) UpdateMPVar(persons []wire.ScanReportPerVar) (data.List, error) {
	var (
		out  data.List
		errs []error
	)
	for _, p := range persons {
		l, err := m.UpdateVar(p.Observations)
		out = append(out, withPerson(l, p.PersonID)...)
		if err != nil {
			errs = append(errs, fmt.Errorf("person %d: %w", p.PersonID, err))
		}
	}
	return out, errors.Join(errs...)
}

// UpdateMPFixed applies multi-person fixed-format observations.
func (m *MDS) UpdateMPFixed(persons []wire.ScanReportPerFixed) (data.List, error) {
	var (
		out  data.List
		errs []error
	)
	for _, p := range persons {
		l, err := m.UpdateFixed(p.Observations)
		out = append(out, withPerson(l, p.PersonID)...)
		if err != nil {
			errs = append(errs, fmt.Errorf("person %d: %w", p.PersonID, err))
		}
	}
	return out, errors.Join(errs...)
}

// UpdateMPGrouped applies multi-person grouped-format observations.
func (m *MDS) UpdateMPGrouped(s ScannerObject, persons []wire.ScanReportPerGrouped) (data.List, error) {
	var (
		out  data.List
		errs []error
	)
	for _, p := range persons {
		l, err := m.updateGrouped(s, p.Observation)
		out = append(out, withPerson(l, p.PersonID)...)
		if err != nil {
			errs = append(errs, fmt.Errorf("person %d: %w", p.PersonID, err))
		}
	}
	return out, errors.Join(errs...)
}

func withPerson(l data.List, person uint16) data.List {
	v := strconv.Itoa(int(person))
	for _, e := range l {
		e.SetMeta(data.MetaPersonID, v)
	}
	return l
}

// decodePositional decodes the attributes listed in avm from consecutive
// fields of r.
func (m *MDS) decodePositional(obj Object, avm wire.AttrValMap, r *mder.Reader) (*data.Entry, error) {
	e := Describe(obj)
	for _, f := range avm {
		field, err := r.Take(int(f.Length))
		if err != nil {
			return nil, fmt.Errorf("%w: handle %d attribute %d: %v", ErrAttrLength, obj.Handle(), f.AttributeID, err)
		}
		c, err := obj.SetAttribute(f.AttributeID, field)
		if errors.Is(err, ErrUnknownAttribute) {
			m.logger.Debug("skipping attribute", "handle", obj.Handle(), "attribute", f.AttributeID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("handle %d: %w", obj.Handle(), err)
		}
		e.Add(c)
	}
	return e, nil
}
