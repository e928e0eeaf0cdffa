// Package model implements the ISO/IEEE 11073-20601 Device Information
// Model (DIM) of a remote agent.
//
// # Object Hierarchy
//
// The MDS is the root object (handle 0) and owns every other object:
//
//	MDS (handle 0)
//	├── Numeric / Enumeration / RTSA      (metrics)
//	├── EpiCfgScanner / PeriCfgScanner    (scanners)
//	└── PMStore
//	    └── PMSegment ...
//
// Each concrete class embeds its base ([Metric], [CfgScanner]) and decodes
// its own attributes first, falling back to the base decoder for shared
// attributes. Object handles are unique within an MDS.
//
// # Attribute Decoding
//
// SetAttribute decodes one attribute value, stores it on the object and
// returns a [data.Entry] describing it. Unknown attribute ids return
// [ErrUnknownAttribute], which callers treat as a no-op.
//
// Observation updates come in three formats:
//   - var: self-describing attribute lists
//   - fixed: a blob carved by the object's Attribute-Value-Map
//   - grouped: one blob for several objects, carved by the scanner's
//     Scan-Handle-Attr-Val-Map
//
// Fixed and grouped decoding require the relevant map to have been
// configured; otherwise [ErrNoAttrValMap] is returned and nothing is
// decoded.
//
// The model performs no locking. A single association context owns an
// MDS and serialises access to it.
package model
