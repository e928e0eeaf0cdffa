// Package specialization provides canned device specializations: the
// configuration object list an agent sends in the configuring phase, the
// MDS an agent reports, and builders for its measurement event reports.
//
// Only the body thermometer profile is included.
package specialization
