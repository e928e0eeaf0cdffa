// Package data is the application-facing representation of decoded
// measurement data.
//
// An [Entry] is either simple (a named, typed, stringified value) or
// compound (a named, ordered list of child entries). Either kind carries
// meta attributes such as the object handle, partition, metric id and
// unit. A [List] is the flat list of top-level entries produced for one
// event or response.
//
// Entries are built once, by the decoder that produced them, and are not
// modified afterwards except for appending meta attributes while being
// built. The renderers (JSON, XML, text, CBOR) are pure consumers of the
// tree.
package data
