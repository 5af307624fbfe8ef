// Package protocol owns the wire error contract shared by the codec packages.
//
// Ownership boundary:
// - error taxonomy (sentinels, ErrorStatus)
// - field path context for decode/encode failures
//
// Codec primitives live in subpackages:
// - field: per-field serialize/deserialize
// - message: typed records, registry, handler contract
// - frame: layer chains around a payload
// - schema: namespaced catalogs of messages and frames
package protocol
