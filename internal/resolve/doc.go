// Package resolve computes, for each declared type, exactly one value source
// per CEF header and the ordered set of extension contributions.
//
// Header resolution is strict: zero candidates at a scope is a missing
// value, more than one is a conflict, and a union header supplied by some
// but not all variants is incomplete. Extension resolution is
// permissive: contributions collect in declaration order and duplicate keys
// resolve last-write-wins at runtime.
package resolve
