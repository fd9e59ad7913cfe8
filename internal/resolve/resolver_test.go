package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cefgen/internal/diagnostic"
	"cefgen/internal/schema"
)

func fixed(h schema.HeaderName, lit, site string) schema.Annotation {
	return schema.Annotation{Kind: schema.AnnFixedValue, Header: h, Literal: lit, Site: site}
}

func allFixed(site string) []schema.Annotation {
	return []schema.Annotation{
		fixed(schema.Version, "0", site),
		fixed(schema.DeviceVendor, "acme", site),
		fixed(schema.DeviceProduct, "widget", site),
		fixed(schema.DeviceVersion, "V1", site),
		fixed(schema.DeviceEventClassID, "evt", site),
		fixed(schema.Name, "Evt", site),
		fixed(schema.Severity, "5", site),
	}
}

func newTestResolver() (*Resolver, *diagnostic.Diagnostics) {
	d := &diagnostic.Diagnostics{}
	return NewResolver(d), d
}

func TestResolveRecordAllFixed(t *testing.T) {
	r, d := newTestResolver()

	ts := &schema.TypeSchema{
		Name:        "Static",
		Kind:        schema.KindRecord,
		Annotations: allFixed("Static"),
	}

	rt := r.Resolve(ts)
	require.False(t, d.HasErrors(), "diags: %v", d.Errors)
	require.True(t, rt.Complete())

	for _, h := range schema.AllHeaders {
		rh := rt.Headers[h]
		require.NotNil(t, rh.Single, "header %s", h)
		assert.Equal(t, SourceFixed, rh.Single.Kind)
	}

	assert.Equal(t, "acme", rt.Headers[schema.DeviceVendor].Single.Literal)
	assert.Empty(t, rt.Extensions)
}

func TestResolveRecordFieldSources(t *testing.T) {
	r, d := newTestResolver()

	ts := &schema.TypeSchema{
		Name: "Evt",
		Kind: schema.KindRecord,
		Fields: []schema.Field{
			{
				Name: "Msg", Index: 0, GoType: "string",
				Annotations: []schema.Annotation{
					{Kind: schema.AnnDisplay, Header: schema.Name, Site: "Evt.Msg"},
				},
			},
			{
				Name: "Proc", Index: 1, GoType: "Process",
				Annotations: []schema.Annotation{
					{Kind: schema.AnnInherit, Header: schema.Severity, Site: "Evt.Proc"},
				},
			},
		},
	}

	name, ok := r.ResolveHeader(ts, schema.Name)
	require.True(t, ok)
	assert.Equal(t, SourceDisplay, name.Single.Kind)
	assert.Equal(t, "Msg", name.Single.Field.Name)

	sev, ok := r.ResolveHeader(ts, schema.Severity)
	require.True(t, ok)
	assert.Equal(t, SourceInherit, sev.Single.Kind)
	assert.Equal(t, "Proc", sev.Single.Field.Name)

	assert.False(t, d.HasErrors())
}

func TestResolveMissingValue(t *testing.T) {
	r, d := newTestResolver()

	ts := &schema.TypeSchema{Name: "Empty", Kind: schema.KindRecord}

	_, ok := r.ResolveHeader(ts, schema.Name)
	require.False(t, ok)
	require.Len(t, d.Errors, 1)
	assert.Equal(t, diagnostic.CodeMissingValue, d.Errors[0].Code)
	assert.Equal(t, "Empty", d.Errors[0].Site)
}

// A conflict reports every offending site, not just the extras.
func TestResolveConflictReportsEverySite(t *testing.T) {
	r, d := newTestResolver()

	ts := &schema.TypeSchema{
		Name:        "Evt",
		Kind:        schema.KindRecord,
		Annotations: []schema.Annotation{fixed(schema.Name, "fixed", "Evt")},
		Fields: []schema.Field{
			{
				Name: "A", Index: 0, GoType: "string",
				Annotations: []schema.Annotation{
					{Kind: schema.AnnDisplay, Header: schema.Name, Site: "Evt.A"},
				},
			},
			{
				Name: "B", Index: 1, GoType: "string",
				Annotations: []schema.Annotation{
					{Kind: schema.AnnDisplay, Header: schema.Name, Site: "Evt.B"},
				},
			},
		},
	}

	_, ok := r.ResolveHeader(ts, schema.Name)
	require.False(t, ok)
	require.Len(t, d.Errors, 3)

	sites := []string{d.Errors[0].Site, d.Errors[1].Site, d.Errors[2].Site}
	assert.Equal(t, []string{"Evt", "Evt.A", "Evt.B"}, sites)

	for _, e := range d.Errors {
		assert.Equal(t, diagnostic.CodeConflict, e.Code)
	}
}

func unionWithVariants(variants ...schema.Variant) *schema.TypeSchema {
	return &schema.TypeSchema{
		Name:     "AuthEvent",
		Kind:     schema.KindUnion,
		Variants: variants,
	}
}

func variantWithClassID(name string, fieldIndex int) schema.Variant {
	fields := make([]schema.Field, fieldIndex+1)
	for i := range fields {
		fields[i] = schema.Field{Index: i, GoType: "string"}
	}

	fields[fieldIndex].Annotations = []schema.Annotation{
		{
			Kind:   schema.AnnDisplay,
			Header: schema.DeviceEventClassID,
			Site:   "AuthEvent." + name,
		},
	}

	return schema.Variant{Name: name, Fields: fields}
}

func TestResolveUnionDispatch(t *testing.T) {
	r, d := newTestResolver()

	// Two variants supplying the header from different field positions.
	ts := unionWithVariants(
		variantWithClassID("Login", 0),
		variantWithClassID("Logout", 1),
	)

	rh, ok := r.ResolveHeader(ts, schema.DeviceEventClassID)
	require.True(t, ok, "diags: %v", d.Errors)
	require.Nil(t, rh.Single)
	require.Len(t, rh.Arms, 2)

	assert.Equal(t, "Login", rh.Arms[0].Variant.Name)
	assert.Equal(t, 0, rh.Arms[0].Source.Field.Index)
	assert.Equal(t, "Logout", rh.Arms[1].Variant.Name)
	assert.Equal(t, 1, rh.Arms[1].Source.Field.Index)
}

func TestResolveUnionIncomplete(t *testing.T) {
	r, d := newTestResolver()

	ts := unionWithVariants(
		variantWithClassID("Login", 0),
		variantWithClassID("Logout", 0),
		schema.Variant{Name: "Timeout"},
	)

	_, ok := r.ResolveHeader(ts, schema.DeviceEventClassID)
	require.False(t, ok)
	require.Len(t, d.Errors, 1)
	assert.Equal(t, diagnostic.CodeIncomplete, d.Errors[0].Code)
	assert.Contains(t, d.Errors[0].Message, "Timeout")
	assert.NotContains(t, d.Errors[0].Message, "Login")
}

func TestResolveUnionRootFixed(t *testing.T) {
	r, d := newTestResolver()

	ts := unionWithVariants(schema.Variant{Name: "A"}, schema.Variant{Name: "B"})
	ts.Annotations = []schema.Annotation{fixed(schema.Version, "0", "AuthEvent")}

	rh, ok := r.ResolveHeader(ts, schema.Version)
	require.True(t, ok, "diags: %v", d.Errors)
	require.NotNil(t, rh.Single)
	assert.Equal(t, "0", rh.Single.Literal)
	assert.Empty(t, rh.Arms)
}

// A root fixed value excludes any variant-level source for the same header.
func TestResolveUnionRootAndVariantConflict(t *testing.T) {
	r, d := newTestResolver()

	ts := unionWithVariants(variantWithClassID("Login", 0), schema.Variant{Name: "B"})
	ts.Annotations = []schema.Annotation{fixed(schema.DeviceEventClassID, "evt", "AuthEvent")}

	_, ok := r.ResolveHeader(ts, schema.DeviceEventClassID)
	require.False(t, ok)
	require.Len(t, d.Errors, 2, "root site and variant site both reported")

	for _, e := range d.Errors {
		assert.Equal(t, diagnostic.CodeConflict, e.Code)
	}
}

func TestResolveUnionVariantFixedValue(t *testing.T) {
	r, d := newTestResolver()

	// A variant-level fixed value counts as that variant's single candidate.
	ts := unionWithVariants(
		schema.Variant{
			Name:        "Timeout",
			Annotations: []schema.Annotation{fixed(schema.Name, "timeout", "AuthEvent.Timeout")},
		},
		variantWithClassID("Login", 0),
	)
	ts.Variants[1].Fields[0].Annotations[0].Header = schema.Name

	rh, ok := r.ResolveHeader(ts, schema.Name)
	require.True(t, ok, "diags: %v", d.Errors)
	require.Len(t, rh.Arms, 2)
	assert.Equal(t, SourceFixed, rh.Arms[0].Source.Kind)
	assert.Equal(t, "timeout", rh.Arms[0].Source.Literal)
	assert.Equal(t, SourceDisplay, rh.Arms[1].Source.Kind)
}

func TestResolveExtensionsOrdering(t *testing.T) {
	r, d := newTestResolver()

	ts := &schema.TypeSchema{
		Name: "Evt",
		Kind: schema.KindRecord,
		Annotations: []schema.Annotation{
			{Kind: schema.AnnExtensionFixed, Key: "origin", Value: "kernel", Site: "Evt"},
		},
		Fields: []schema.Field{
			{
				Name: "User", Index: 0, GoType: "string",
				Annotations: []schema.Annotation{
					{Kind: schema.AnnExtensionField, Rename: "suser", HasRename: true, Site: "Evt.User"},
				},
			},
			{
				Name: "Proc", Index: 1, GoType: "Process",
				Annotations: []schema.Annotation{
					{Kind: schema.AnnExtensionGobble, Site: "Evt.Proc"},
				},
			},
		},
	}

	contribs := r.ResolveExtensions(ts.Annotations, ts.Fields, ts.Name, "")
	require.False(t, d.HasErrors())

	require.Len(t, contribs, 3)
	assert.Equal(t, ContribFixed, contribs[0].Kind)
	assert.Equal(t, "origin", contribs[0].Key)
	assert.Equal(t, ContribField, contribs[1].Kind)
	assert.Equal(t, "suser", contribs[1].Key)
	assert.Equal(t, ContribGobble, contribs[2].Kind)
	assert.Equal(t, "Proc", contribs[2].Field.Name)
}

// Duplicate keys are not an error: contributions stay in declaration order
// and the later write wins at runtime.
func TestResolveExtensionsDuplicateKeysAllowed(t *testing.T) {
	r, d := newTestResolver()

	anns := []schema.Annotation{
		{Kind: schema.AnnExtensionFixed, Key: "k", Value: "first", Site: "Evt"},
	}
	fields := []schema.Field{
		{
			Name: "F", Index: 0, GoType: "string",
			Annotations: []schema.Annotation{
				{Kind: schema.AnnExtensionField, Rename: "k", HasRename: true, Site: "Evt.F"},
			},
		},
	}

	contribs := r.ResolveExtensions(anns, fields, "Evt", "")
	require.False(t, d.HasErrors())
	require.Len(t, contribs, 2)
	assert.Equal(t, "k", contribs[0].Key)
	assert.Equal(t, "k", contribs[1].Key)
	assert.Equal(t, ContribField, contribs[1].Kind, "later contribution wins at runtime")
}

func TestResolveExtensionsDefaultKeyIsFieldName(t *testing.T) {
	r, d := newTestResolver()

	fields := []schema.Field{
		{
			Name: "user", Index: 0, GoType: "string",
			Annotations: []schema.Annotation{
				{Kind: schema.AnnExtensionField, Site: "Evt.user"},
			},
		},
	}

	contribs := r.ResolveExtensions(nil, fields, "Evt", "")
	require.False(t, d.HasErrors())
	require.Len(t, contribs, 1)
	assert.Equal(t, "user", contribs[0].Key)
}

func TestResolveExtensionsPositionalNeedsRename(t *testing.T) {
	r, d := newTestResolver()

	fields := []schema.Field{
		{
			Index: 0, GoType: "string",
			Annotations: []schema.Annotation{
				{Kind: schema.AnnExtensionField, Site: "Evt.#0"},
			},
		},
	}

	contribs := r.ResolveExtensions(nil, fields, "Evt", "")
	assert.Empty(t, contribs)
	require.Len(t, d.Errors, 1)
	assert.Equal(t, diagnostic.CodePositionalNeedsRename, d.Errors[0].Code)
}

// Union extensions are non-exhaustive: each variant contributes what it
// declares, plus any union-root fixed entries.
func TestResolveUnionExtensions(t *testing.T) {
	r, d := newTestResolver()

	ts := unionWithVariants(
		schema.Variant{
			Name: "Login",
			Fields: []schema.Field{
				{
					Name: "User", Index: 0, GoType: "string",
					Annotations: []schema.Annotation{
						{Kind: schema.AnnExtensionField, Site: "AuthEvent.Login.User"},
					},
				},
			},
		},
		schema.Variant{Name: "Timeout"},
	)
	ts.Annotations = append(allFixed("AuthEvent"),
		schema.Annotation{Kind: schema.AnnExtensionFixed, Key: "origin", Value: "auth", Site: "AuthEvent"})

	rt := r.Resolve(ts)
	require.False(t, d.HasErrors(), "diags: %v", d.Errors)

	login := rt.VariantExtensions["Login"]
	require.Len(t, login, 2)
	assert.Equal(t, "origin", login[0].Key)
	assert.Equal(t, "User", login[1].Key)

	timeout := rt.VariantExtensions["Timeout"]
	require.Len(t, timeout, 1, "no exhaustiveness requirement across variants")
	assert.Equal(t, "origin", timeout[0].Key)
}

// Re-running resolution on an unchanged schema yields the same decisions.
func TestResolveIdempotent(t *testing.T) {
	ts := &schema.TypeSchema{
		Name:        "Static",
		Kind:        schema.KindRecord,
		Annotations: allFixed("Static"),
	}

	r1, _ := newTestResolver()
	r2, _ := newTestResolver()

	first := r1.Resolve(ts)
	second := r2.Resolve(ts)

	for _, h := range schema.AllHeaders {
		assert.Equal(t, first.Headers[h].Single.Literal, second.Headers[h].Single.Literal)
	}
}
