// Package nomenclature holds the subset of the ISO/IEEE 11073-10101 and
// 11073-20601 nomenclature used by the protocol core: object classes,
// attribute identifiers, notification and action codes, partitions, and a
// small table of units and metric codes for human-readable names.
//
// Codes not present in the tables are still valid on the wire; the name
// lookups fall back to a numeric rendering.
package nomenclature
