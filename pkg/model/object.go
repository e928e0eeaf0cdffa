package model

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/creachadair/mds/value"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// Model errors.
var (
	ErrUnknownHandle    = errors.New("unknown object handle")
	ErrWrongClass       = errors.New("object has the wrong class")
	ErrDuplicateHandle  = errors.New("duplicate object handle")
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrUnknownClass     = errors.New("unsupported object class")
	ErrNoAttrValMap     = errors.New("attribute value map not configured")
	ErrAttrLength       = errors.New("attribute longer than remaining data")
	ErrSegmentNotFound  = errors.New("PM-segment not found")
	ErrEmptyEntryMap    = errors.New("PM-segment entry map is empty")
	ErrSegmentLength    = errors.New("segment data length does not match entry count")
	ErrSegmentGap       = errors.New("segment data leaves a gap")
)

// Object is a DIM object owned by the MDS.
type Object interface {
	// Handle returns the object handle.
	Handle() uint16

	// Class returns the object class (MDC_MOC_*).
	Class() uint16

	// SetAttribute decodes the value of attribute id from r, stores it
	// and describes it.
	SetAttribute(id uint16, r *mder.Reader) (*data.Entry, error)
}

// AttrValMapper is implemented by objects that report in fixed format.
type AttrValMapper interface {
	Object
	AttributeValueMap() (wire.AttrValMap, bool)
}

// Describe returns an empty compound for o named after its class and
// annotated with its handle and, for metrics, its identification.
func Describe(o Object) *data.Entry {
	e := data.NewCompound(nomenclature.ClassName(o.Class()))
	e.SetMeta(data.MetaHandle, strconv.Itoa(int(o.Handle())))
	if m, ok := o.(MetricObject); ok {
		base := m.metric()
		p := base.EffectivePartition()
		id := base.EffectiveMetricID()
		e.SetMeta(data.MetaPartition, strconv.Itoa(int(p)))
		e.SetMeta(data.MetaMetricID, strconv.Itoa(int(id)))
		if base.UnitCode != 0 {
			e.SetMeta(data.MetaUnitCode, strconv.Itoa(int(base.UnitCode)))
			e.SetMeta(data.MetaUnit, nomenclature.UnitName(base.UnitCode))
		}
	}
	return e
}

// set decodes a value with dec, stores it in dst and describes it.
func set[T any](r *mder.Reader, dst *T, id uint16, dec func(*mder.Reader) (T, error), desc func(string, T) *data.Entry) (*data.Entry, error) {
	name := nomenclature.AttributeName(id)
	v, err := dec(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	*dst = v
	return desc(name, v), nil
}

// setMaybe is set for optional attributes.
func setMaybe[T any](r *mder.Reader, dst *value.Maybe[T], id uint16, dec func(*mder.Reader) (T, error), desc func(string, T) *data.Entry) (*data.Entry, error) {
	var v T
	e, err := set(r, &v, id, dec, desc)
	if err != nil {
		return nil, err
	}
	*dst = value.Just(v)
	return e, nil
}

func readUint8(r *mder.Reader) (uint8, error)   { return r.Uint8() }
func readUint16(r *mder.Reader) (uint16, error) { return r.Uint16() }
func readUint32(r *mder.Reader) (uint32, error) { return r.Uint32() }
func readOctets(r *mder.Reader) ([]byte, error) { return r.OctetString() }

func unknownAttribute(id uint16) error {
	return fmt.Errorf("%w: %d", ErrUnknownAttribute, id)
}
