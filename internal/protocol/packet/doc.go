// Package packet decodes, evaluates and encodes packet transmissions.
//
// A transmission is one top-level packet. Every packet starts with a
// 3-bit version and a 3-bit type id. Type 4 carries a literal built from
// 5-bit groups; every other type is an operator whose children are framed
// either by a 15-bit total bit length or by an 11-bit child count.
//
// Ownership boundary:
// - packet tree model and type ids
// - recursive decode with padding rules
// - tree reductions (version sum, value)
// - encode back to hex
package packet
