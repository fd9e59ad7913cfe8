package manifest

import (
	"go/token"
	"strconv"
	"strings"

	"cefgen/internal/diagnostic"
	"cefgen/internal/schema"
)

// Site classifies where an annotation occurrence was found, which determines
// which annotations are legal there.
type Site int

const (
	// SiteType is the root of a record or union declaration.
	SiteType Site = iota
	// SiteVariant is the root of a union variant.
	SiteVariant
	// SiteField is a field of a record or variant.
	SiteField
)

// Usage strings attached to malformed-annotation diagnostics so the fix is
// visible in the error itself.
const (
	usageValues  = `cef_values expects header values listed as: cef_values(Header1 = "value1", Header2 = "value2", ...)`
	usageInherit = `cef_inherit inherits header values from the annotated field's own accessors: cef_inherit(Header1, Header2, ...)`
	usageDisplay = `cef_field renders the annotated field's textual form as a header value: cef_field(Header1, Header2, ...)`
	usageGobble  = `cef_ext_gobble takes no arguments and merges the field's own extension set into the parent's: cef_ext_gobble`
	usageExtler  = `cef_ext_field adds one extension entry for the field, optionally renamed: cef_ext_field OR cef_ext_field(rename)`
	usageExtVals = `cef_ext_values expects static extension entries listed as: cef_ext_values(key1 = "value1", key2 = "value2", ...)`

	valuesOnTypes  = "cef_values may apply to a type or a union variant, never to a field"
	extValsOnTypes = "cef_ext_values may apply to a type or a union variant, never to a field"
	fieldOnly      = "%s may apply only to a field, never to a type or a union variant"
)

// rawArg is one comma-separated argument of an attribute: either a bare
// identifier, or a name = "literal" pair.
type rawArg struct {
	name     string
	value    string
	isPair   bool
	quoted   bool
	badValue bool
}

// ParseAnnotations parses every raw annotation string declared at one site.
// Each malformed occurrence yields its own diagnostic; well-formed ones are
// returned even when siblings are broken.
func ParseAnnotations(raws []string, site Site, sitePath string, d *diagnostic.Diagnostics) []schema.Annotation {
	var anns []schema.Annotation
	for _, raw := range raws {
		anns = append(anns, parseAnnotation(raw, site, sitePath, d)...)
	}

	return anns
}

// parseAnnotation parses a single raw attribute occurrence. One occurrence
// may expand into several annotations (cef_values and cef_ext_values carry a
// pair per entry).
func parseAnnotation(raw string, site Site, sitePath string, d *diagnostic.Diagnostics) []schema.Annotation {
	name, args, ok := splitAttribute(raw)
	if !ok {
		d.AddErrorf(diagnostic.CodeMalformedAnnotation, sitePath,
			"unbalanced parentheses in annotation %q", raw)
		return nil
	}

	switch name {
	case "cef_values":
		return parsePairs(schema.AnnFixedValue, args, site, sitePath, d)
	case "cef_ext_values":
		return parsePairs(schema.AnnExtensionFixed, args, site, sitePath, d)
	case "cef_inherit":
		return parseHeaderList(schema.AnnInherit, args, site, sitePath, d)
	case "cef_field":
		return parseHeaderList(schema.AnnDisplay, args, site, sitePath, d)
	case "cef_ext_field":
		return parseExtField(args, site, sitePath, d)
	case "cef_ext_gobble":
		return parseGobble(args, site, sitePath, d)
	default:
		d.AddErrorf(diagnostic.CodeMalformedAnnotation, sitePath,
			"unknown annotation %q", name)
		return nil
	}
}

// parsePairs handles cef_values and cef_ext_values: type/variant sites only,
// one name = "literal" pair per entry.
func parsePairs(kind schema.AnnotationKind, args []rawArg, site Site, sitePath string, d *diagnostic.Diagnostics) []schema.Annotation {
	usage := usageValues
	siteMsg := valuesOnTypes

	if kind == schema.AnnExtensionFixed {
		usage = usageExtVals
		siteMsg = extValsOnTypes
	}

	if site == SiteField {
		d.AddError(diagnostic.CodeMalformedAnnotation, siteMsg, sitePath)
		return nil
	}

	if len(args) == 0 {
		d.AddError(diagnostic.CodeMalformedAnnotation, usage, sitePath)
		return nil
	}

	var anns []schema.Annotation

	for _, a := range args {
		if !a.isPair || a.badValue {
			d.AddError(diagnostic.CodeMalformedAnnotation, usage, sitePath)
			continue
		}

		if !a.quoted {
			d.AddErrorf(diagnostic.CodeMalformedAnnotation, sitePath,
				"%s expects all values to be string literals", kind)
			continue
		}

		ann := schema.Annotation{Kind: kind, Site: sitePath}

		if kind == schema.AnnFixedValue {
			header, ok := schema.ParseHeader(a.name)
			if !ok {
				d.AddErrorf(diagnostic.CodeUnknownHeader, sitePath,
					"header name should be one of the following: %s", schema.HeaderList())
				continue
			}

			ann.Header = header
			ann.Literal = a.value
		} else {
			ann.Key = a.name
			ann.Value = a.value
		}

		anns = append(anns, ann)
	}

	return anns
}

// parseHeaderList handles cef_inherit and cef_field: field sites only, one
// bare header identifier per entry.
func parseHeaderList(kind schema.AnnotationKind, args []rawArg, site Site, sitePath string, d *diagnostic.Diagnostics) []schema.Annotation {
	usage := usageInherit
	if kind == schema.AnnDisplay {
		usage = usageDisplay
	}

	if site != SiteField {
		d.AddErrorf(diagnostic.CodeMalformedAnnotation, sitePath, fieldOnly, kind)
		return nil
	}

	if len(args) == 0 {
		d.AddError(diagnostic.CodeMalformedAnnotation, usage, sitePath)
		return nil
	}

	var anns []schema.Annotation

	for _, a := range args {
		if a.isPair {
			d.AddError(diagnostic.CodeMalformedAnnotation, usage, sitePath)
			continue
		}

		header, ok := schema.ParseHeader(a.name)
		if !ok {
			d.AddErrorf(diagnostic.CodeUnknownHeader, sitePath,
				"header name should be one of the following: %s", schema.HeaderList())
			continue
		}

		anns = append(anns, schema.Annotation{Kind: kind, Header: header, Site: sitePath})
	}

	return anns
}

// parseExtField handles cef_ext_field: field sites only, zero or one rename
// argument.
func parseExtField(args []rawArg, site Site, sitePath string, d *diagnostic.Diagnostics) []schema.Annotation {
	if site != SiteField {
		d.AddErrorf(diagnostic.CodeMalformedAnnotation, sitePath, fieldOnly, schema.AnnExtensionField)
		return nil
	}

	ann := schema.Annotation{Kind: schema.AnnExtensionField, Site: sitePath}

	switch len(args) {
	case 0:
	case 1:
		a := args[0]
		if a.isPair || a.badValue {
			d.AddError(diagnostic.CodeMalformedAnnotation, usageExtler, sitePath)
			return nil
		}

		ann.Rename = a.name
		ann.HasRename = true
	default:
		d.AddError(diagnostic.CodeMalformedAnnotation, usageExtler, sitePath)
		return nil
	}

	return []schema.Annotation{ann}
}

// parseGobble handles cef_ext_gobble: field sites only, no arguments.
func parseGobble(args []rawArg, site Site, sitePath string, d *diagnostic.Diagnostics) []schema.Annotation {
	if site != SiteField {
		d.AddErrorf(diagnostic.CodeMalformedAnnotation, sitePath, fieldOnly, schema.AnnExtensionGobble)
		return nil
	}

	if len(args) != 0 {
		d.AddError(diagnostic.CodeMalformedAnnotation, usageGobble, sitePath)
		return nil
	}

	return []schema.Annotation{{Kind: schema.AnnExtensionGobble, Site: sitePath}}
}

// splitAttribute splits a raw attribute into its name and argument list.
// `cef_ext_gobble` has no argument list; `cef_field(Name)` has one argument.
func splitAttribute(raw string) (string, []rawArg, bool) {
	raw = strings.TrimSpace(raw)

	open := strings.IndexByte(raw, '(')
	if open < 0 {
		return raw, nil, true
	}

	if !strings.HasSuffix(raw, ")") {
		return "", nil, false
	}

	name := strings.TrimSpace(raw[:open])
	inner := raw[open+1 : len(raw)-1]

	var args []rawArg
	for _, part := range splitTopLevel(inner) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		args = append(args, parseArg(part))
	}

	return name, args, true
}

// splitTopLevel splits on commas that are not inside a double-quoted string.
func splitTopLevel(s string) []string {
	var (
		parts    []string
		start    int
		inString bool
	)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			if inString && i > 0 && s[i-1] == '\\' {
				continue
			}

			inString = !inString
		case ',':
			if !inString {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	parts = append(parts, s[start:])

	return parts
}

// parseArg parses one argument: a bare identifier, or name = "literal".
func parseArg(s string) rawArg {
	eq := -1
	inString := false

	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			inString = !inString
		}

		if s[i] == '=' && !inString {
			eq = i
			break
		}
	}

	if eq < 0 {
		name := strings.TrimSpace(s)

		return rawArg{name: name, badValue: !token.IsIdentifier(name)}
	}

	arg := rawArg{
		name:   strings.TrimSpace(s[:eq]),
		isPair: true,
	}

	value := strings.TrimSpace(s[eq+1:])
	if strings.HasPrefix(value, `"`) {
		unquoted, err := strconv.Unquote(value)
		if err != nil {
			arg.badValue = true
			return arg
		}

		arg.quoted = true
		arg.value = unquoted
	} else {
		// Bare (unquoted) values are kept for the "string literals
		// required" diagnostic.
		arg.value = value
	}

	if !token.IsIdentifier(arg.name) {
		arg.badValue = true
	}

	return arg
}
