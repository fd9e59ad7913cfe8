package resolve

import (
	"fmt"
	"strings"

	"cefgen/internal/diagnostic"
	"cefgen/internal/schema"
)

// Resolver runs header and extension resolution over type schemas,
// accumulating diagnostics across every type it visits.
type Resolver struct {
	diags *diagnostic.Diagnostics
}

// NewResolver creates a Resolver reporting into d.
func NewResolver(d *diagnostic.Diagnostics) *Resolver {
	return &Resolver{diags: d}
}

// ResolveAll resolves every type in declaration order.
func (r *Resolver) ResolveAll(types []*schema.TypeSchema) []*ResolvedType {
	out := make([]*ResolvedType, 0, len(types))
	for _, ts := range types {
		out = append(out, r.Resolve(ts))
	}

	return out
}

// Resolve computes all seven header decisions and the extension
// contributions for one type. Failed headers are absent from the result and
// reported through the resolver's diagnostics.
func (r *Resolver) Resolve(ts *schema.TypeSchema) *ResolvedType {
	rt := &ResolvedType{
		Schema:  ts,
		Headers: make(map[schema.HeaderName]*ResolvedHeader, len(schema.AllHeaders)),
	}

	for _, h := range schema.AllHeaders {
		if rh, ok := r.ResolveHeader(ts, h); ok {
			rt.Headers[h] = rh
		}
	}

	if ts.Kind == schema.KindRecord {
		rt.Extensions = r.ResolveExtensions(ts.Annotations, ts.Fields, ts.Name, "")
	} else {
		rt.VariantExtensions = make(map[string][]Contribution, len(ts.Variants))
		for i := range ts.Variants {
			v := &ts.Variants[i]
			// Union-root fixed entries apply to every variant,
			// before the variant's own contributions.
			anns := append(append([]schema.Annotation{}, ts.Annotations...), v.Annotations...)
			rt.VariantExtensions[v.Name] = r.ResolveExtensions(anns, v.Fields, ts.Name, v.Name)
		}
	}

	return rt
}

// ResolveHeader computes the single decision for one (type, header) pair.
// The boolean is false when resolution failed; every offending site will
// have been reported.
func (r *Resolver) ResolveHeader(ts *schema.TypeSchema, h schema.HeaderName) (*ResolvedHeader, bool) {
	if ts.Kind == schema.KindRecord {
		return r.resolveRecordHeader(ts, h)
	}

	return r.resolveUnionHeader(ts, h)
}

// resolveRecordHeader gathers every candidate source for the header across
// the type root and all fields, then demands exactly one.
func (r *Resolver) resolveRecordHeader(ts *schema.TypeSchema, h schema.HeaderName) (*ResolvedHeader, bool) {
	candidates := fixedCandidates(ts.Annotations, h)
	candidates = append(candidates, fieldCandidates(ts.Fields, h, ts.Name, "")...)

	src, ok := r.arbitrate(candidates, ts, h, "")
	if !ok {
		return nil, false
	}

	return &ResolvedHeader{Header: h, Single: src}, true
}

// resolveUnionHeader implements the union rules: a root fixed value excludes
// any variant-level source, otherwise per-variant resolution must cover
// every variant.
func (r *Resolver) resolveUnionHeader(ts *schema.TypeSchema, h schema.HeaderName) (*ResolvedHeader, bool) {
	rootCandidates := fixedCandidates(ts.Annotations, h)

	perVariant := make([][]Source, len(ts.Variants))
	for i := range ts.Variants {
		v := &ts.Variants[i]
		perVariant[i] = fixedCandidates(v.Annotations, h)
		perVariant[i] = append(perVariant[i], fieldCandidates(v.Fields, h, ts.Name, v.Name)...)
	}

	if len(rootCandidates) > 0 {
		all := rootCandidates
		for _, vc := range perVariant {
			all = append(all, vc...)
		}

		src, ok := r.arbitrate(all, ts, h, "")
		if !ok {
			return nil, false
		}

		return &ResolvedHeader{Header: h, Single: src}, true
	}

	// No root value: resolve independently within each variant.
	var (
		arms    []DispatchArm
		missing []string
		failed  bool
	)

	for i := range ts.Variants {
		v := &ts.Variants[i]

		switch len(perVariant[i]) {
		case 0:
			missing = append(missing, v.Name)
		case 1:
			src := perVariant[i][0]
			arms = append(arms, DispatchArm{Variant: v, Source: src})
		default:
			r.reportConflict(perVariant[i], h, v.Name)

			failed = true
		}
	}

	if failed {
		return nil, false
	}

	if len(arms) == 0 {
		r.reportMissing(ts.Name, h)
		return nil, false
	}

	if len(missing) > 0 {
		r.diags.AddErrorf(diagnostic.CodeIncomplete, ts.Name,
			"header %s is not provided by all variants of this union; missing: %s",
			h, strings.Join(missing, ", "))

		return nil, false
	}

	return &ResolvedHeader{Header: h, Arms: arms}, true
}

// arbitrate applies the zero/one/many rule to a flat candidate list.
func (r *Resolver) arbitrate(candidates []Source, ts *schema.TypeSchema, h schema.HeaderName, variant string) (*Source, bool) {
	switch len(candidates) {
	case 0:
		r.reportMissing(ts.Name, h)
		return nil, false
	case 1:
		c := candidates[0]
		return &c, true
	default:
		r.reportConflict(candidates, h, variant)
		return nil, false
	}
}

// reportMissing reports a header with zero candidate sources at its scope.
func (r *Resolver) reportMissing(typeName string, h schema.HeaderName) {
	r.diags.AddErrorf(diagnostic.CodeMissingValue, typeName,
		"header %s requires a value provided through cef_values, cef_inherit, or cef_field on the type, its fields, or every variant",
		h)
}

// reportConflict reports every offending site of an over-supplied header,
// not just the extras.
func (r *Resolver) reportConflict(candidates []Source, h schema.HeaderName, variant string) {
	scope := ""
	if variant != "" {
		scope = fmt.Sprintf(" for variant %s", variant)
	}

	for _, c := range candidates {
		r.diags.AddErrorf(diagnostic.CodeConflict, c.Site,
			"header %s has values provided in multiple places%s; remove all but one",
			h, scope)
	}
}

// fixedCandidates scans a type or variant root for FixedValue annotations
// targeting the header.
func fixedCandidates(anns []schema.Annotation, h schema.HeaderName) []Source {
	var out []Source

	for _, a := range anns {
		if a.Kind == schema.AnnFixedValue && a.Header == h {
			out = append(out, Source{Kind: SourceFixed, Literal: a.Literal, Site: a.Site})
		}
	}

	return out
}

// fieldCandidates scans fields in declaration order for Inherit and Display
// annotations targeting the header.
func fieldCandidates(fields []schema.Field, h schema.HeaderName, typeName, variantName string) []Source {
	var out []Source

	for i := range fields {
		f := &fields[i]

		for _, a := range f.Annotations {
			switch a.Kind {
			case schema.AnnInherit:
				if a.Header == h {
					out = append(out, Source{Kind: SourceInherit, Field: f, Site: a.Site})
				}
			case schema.AnnDisplay:
				if a.Header == h {
					out = append(out, Source{Kind: SourceDisplay, Field: f, Site: a.Site})
				}
			}
		}
	}

	return out
}

// ResolveExtensions collects extension contributions for one scope (a record
// type or one union variant) in declaration order: fixed entries first, then
// per-field entries and gobbles.
func (r *Resolver) ResolveExtensions(anns []schema.Annotation, fields []schema.Field, typeName, variantName string) []Contribution {
	var out []Contribution

	for _, a := range anns {
		if a.Kind == schema.AnnExtensionFixed {
			out = append(out, Contribution{Kind: ContribFixed, Key: a.Key, Value: a.Value})
		}
	}

	for i := range fields {
		f := &fields[i]

		for _, a := range f.Annotations {
			switch a.Kind {
			case schema.AnnExtensionField:
				key := a.Rename
				if !a.HasRename {
					if !f.Named() {
						r.diags.AddErrorf(diagnostic.CodePositionalNeedsRename,
							schema.SitePath(typeName, variantName, f),
							"positional field %s needs an explicit cef_ext_field rename; an index is not a legal extension key",
							f.DisplayName())

						continue
					}

					key = f.Name
				}

				out = append(out, Contribution{Kind: ContribField, Key: key, Field: f})
			case schema.AnnExtensionGobble:
				out = append(out, Contribution{Kind: ContribGobble, Field: f})
			}
		}
	}

	return out
}
