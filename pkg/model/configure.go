package model

import (
	"fmt"

	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// NewObject creates an empty object of the given class.
func NewObject(class, handle uint16) (Object, error) {
	switch class {
	case nomenclature.MDC_MOC_VMO_METRIC_NU:
		return NewNumeric(handle), nil
	case nomenclature.MDC_MOC_VMO_METRIC_ENUM:
		return NewEnumeration(handle), nil
	case nomenclature.MDC_MOC_VMO_METRIC_SA_RT:
		return NewRTSA(handle), nil
	case nomenclature.MDC_MOC_SCAN_CFG_EPI:
		return NewEpiCfgScanner(handle), nil
	case nomenclature.MDC_MOC_SCAN_CFG_PERI:
		return NewPeriCfgScanner(handle), nil
	case nomenclature.MDC_MOC_VMO_PMSTORE:
		return NewPMStore(handle), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownClass, nomenclature.ClassName(class))
}

// Configure replaces the object tree with the objects of a configuration
// report. The tree is left untouched if any object cannot be built.
func (m *MDS) Configure(list wire.ConfigObjectList) error {
	staged := NewMDS(m.logger)
	for _, co := range list {
		o, err := NewObject(co.Class, co.Handle)
		if err != nil {
			return fmt.Errorf("handle %d: %w", co.Handle, err)
		}
		if _, err := staged.apply(o, co.Attributes); err != nil {
			return err
		}
		if err := staged.AddObject(o); err != nil {
			return err
		}
	}
	m.objects = staged.objects
	m.order = staged.order
	return nil
}
