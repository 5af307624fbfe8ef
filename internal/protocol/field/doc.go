// Package field owns per-field wire primitives.
//
// Every kind implements Field over a contiguous octet slice: Read consumes
// a prefix of buf (remaining == len(buf)), Write produces into a prefix of
// buf. Definitions (IntDef, EnumDef, ...) are immutable and shared by
// pointer; field values are owned by the containing message.
//
// Kinds:
// - Int: fixed width integer with ranges, specials, scaling and units
// - Enum: integer restricted to declared members
// - Bitmask: integer with named bits and reserved bits
// - Float: IEEE 754 single/double
// - String, Data: Fixed, ZeroTerm, Prefixed or Remaining storage
// - Optional: tri-state presence wrapper
// - Bundle: ordered group of members
// - List: count-prefixed or remaining-to-end sequence of elements
package field
