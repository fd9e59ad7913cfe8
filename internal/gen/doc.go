// Package gen emits Go source from resolved type schemas: the type
// declarations themselves plus the seven CEF header accessors and the
// extensions collector for each type.
//
// Emission is deterministic: types in manifest order, headers in wire
// order, extension writes in contribution order. Re-running generation on
// an unchanged manifest produces byte-identical files.
package gen
