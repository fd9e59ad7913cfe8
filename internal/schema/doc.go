// Package schema holds the in-memory model of one annotated event type: its
// kind (record or tagged union), its named or positional fields, its variants,
// and the CEF annotations attached to each site.
//
// The model is built once per type by the manifest loader, read by the
// resolvers, and never mutated after construction.
package schema
