package resolve

import (
	"cefgen/internal/schema"
)

// SourceKind discriminates how a header value is produced.
type SourceKind int

const (
	// SourceFixed emits a compile-time string literal.
	SourceFixed SourceKind = iota
	// SourceInherit calls the field's own accessor for the same header.
	SourceInherit
	// SourceDisplay renders the field's textual form.
	SourceDisplay
)

// Source is one resolved value source for a header: a literal, or a field
// expression.
type Source struct {
	Kind    SourceKind
	Literal string
	// Field backs Inherit and Display sources.
	Field *schema.Field
	// Site is the annotation site the source came from, for diagnostics
	// and deterministic error ordering.
	Site string
}

// DispatchArm is one variant's resolved source in a union dispatch.
type DispatchArm struct {
	Variant *schema.Variant
	Source  Source
}

// ResolvedHeader is the single deterministic decision for one (type, header)
// pair. For a record exactly Single is set; for a union either Single (root
// fixed value) or Arms (per-variant dispatch covering every variant).
type ResolvedHeader struct {
	Header schema.HeaderName
	Single *Source
	Arms   []DispatchArm
}

// ContributionKind discriminates extension contributions.
type ContributionKind int

const (
	// ContribFixed is a static key/value entry.
	ContribFixed ContributionKind = iota
	// ContribField is an entry keyed by rename-or-field-name whose value
	// is the field's textual form.
	ContribField
	// ContribGobble merges the field's own extension set.
	ContribGobble
)

// Contribution is one resolved extension contribution. Contributions apply
// in declaration order; a later write to the same key wins.
type Contribution struct {
	Kind  ContributionKind
	Key   string
	Value string
	Field *schema.Field
}

// ResolvedType is the full resolution result for one type schema.
type ResolvedType struct {
	Schema *schema.TypeSchema

	// Headers holds one decision per header, keyed by header name. A
	// header that failed resolution is absent; the failure is in the
	// run's diagnostics.
	Headers map[schema.HeaderName]*ResolvedHeader

	// Extensions holds a record's contributions in declaration order.
	Extensions []Contribution

	// VariantExtensions holds per-variant contributions for a union,
	// keyed by variant name. Extension coverage across variants is not
	// required to be exhaustive.
	VariantExtensions map[string][]Contribution
}

// Complete reports whether every header resolved.
func (rt *ResolvedType) Complete() bool {
	return len(rt.Headers) == len(schema.AllHeaders)
}
