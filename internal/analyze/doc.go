// Package analyze verifies that field types can provide the capabilities
// their annotations demand: cef_inherit needs the field's type to expose the
// targeted header accessor, and cef_ext_gobble needs its extensions
// collector. Types declared in the same manifest always qualify; external
// package-qualified types are loaded with go/packages and checked against
// their method sets.
package analyze
