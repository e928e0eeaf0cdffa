package nomenclature

import "testing"

func TestNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"class", ClassName(MDC_MOC_VMO_METRIC_NU), "Numeric"},
		{"unknown class", ClassName(999), "999"},
		{"attribute", AttributeName(MDC_ATTR_NU_VAL_OBS_BASIC), "Basic-Nu-Observed-Value"},
		{"unknown attribute", AttributeName(1), "1"},
		{"unit", UnitName(MDC_DIM_DEGC), "degC"},
		{"unknown unit", UnitName(7), "7"},
		{"metric", MetricName(MDC_TEMP_BODY), "MDC_TEMP_BODY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestKnownAttribute(t *testing.T) {
	if !KnownAttribute(MDC_ATTR_ID_HANDLE) {
		t.Error("ID_HANDLE should be known")
	}
	if KnownAttribute(0xFFFF) {
		t.Error("0xFFFF should not be known")
	}
}
