package nomenclature

import "strconv"

var classNames = map[uint16]string{
	MDC_MOC_VMO_METRIC:       "Metric",
	MDC_MOC_VMO_METRIC_ENUM:  "Enumeration",
	MDC_MOC_VMO_METRIC_NU:    "Numeric",
	MDC_MOC_VMO_METRIC_SA_RT: "RT-SA",
	MDC_MOC_SCAN:             "Scanner",
	MDC_MOC_SCAN_CFG:         "CfgScanner",
	MDC_MOC_SCAN_CFG_EPI:     "Episodic-Scanner",
	MDC_MOC_SCAN_CFG_PERI:    "Periodic-Scanner",
	MDC_MOC_VMS_MDS_SIMP:     "MDS",
	MDC_MOC_VMO_PMSTORE:      "PM-Store",
	MDC_MOC_PM_SEGMENT:       "PM-Segment",
}

// ClassName returns the display name of an object class, or the class
// number in decimal when it is not known.
func ClassName(class uint16) string {
	if n, ok := classNames[class]; ok {
		return n
	}
	return strconv.Itoa(int(class))
}

// AttributeName returns the display name of an attribute id.
func AttributeName(id uint16) string {
	if n, ok := attributeNames[id]; ok {
		return n
	}
	return strconv.Itoa(int(id))
}

// UnitName returns the display label of a unit code. Unknown codes
// render as their decimal value.
func UnitName(code uint16) string {
	if n, ok := unitNames[code]; ok {
		return n
	}
	return strconv.Itoa(int(code))
}

// MetricName returns the reference identifier of a metric code, e.g.
// "MDC_TEMP_BODY".
func MetricName(code uint16) string {
	if n, ok := metricNames[code]; ok {
		return n
	}
	return strconv.Itoa(int(code))
}

// KnownAttribute reports whether id has an entry in the attribute table.
func KnownAttribute(id uint16) bool {
	_, ok := attributeNames[id]
	return ok
}
