// Package manifest loads the YAML manifest that declares event types and
// turns it into schema models.
//
// The manifest is the authoritative, human-written declaration surface.
// Annotations appear as raw attribute strings (e.g. `cef_values(Name = "x")`)
// and are parsed and site-checked here; structural problems and malformed
// annotations are all reported through diagnostics, never fail-fast.
package manifest
