package manifest

import (
	"go/token"

	"cefgen/internal/diagnostic"
	"cefgen/internal/schema"
)

// Build validates the manifest structurally and converts every declared type
// into a schema model. All problems accumulate into d; the returned slice
// contains a model for every structurally sound type, in declaration order.
func Build(f *File, d *diagnostic.Diagnostics) []*schema.TypeSchema {
	if f == nil {
		d.AddError(diagnostic.CodeInvalidManifest, "manifest is nil", "")
		return nil
	}

	if !token.IsIdentifier(f.Package) {
		d.AddErrorf(diagnostic.CodeInvalidManifest, "",
			"package %q is not a valid Go identifier", f.Package)
	}

	if len(f.Types) == 0 {
		d.AddError(diagnostic.CodeInvalidManifest, "manifest declares no types", "")
		return nil
	}

	seen := map[string]struct{}{}

	var out []*schema.TypeSchema

	for i := range f.Types {
		td := &f.Types[i]

		if !token.IsIdentifier(td.Name) || !token.IsExported(td.Name) {
			d.AddErrorf(diagnostic.CodeInvalidManifest, td.Name,
				"type name %q must be a valid exported Go identifier", td.Name)
			continue
		}

		if _, dup := seen[td.Name]; dup {
			d.AddErrorf(diagnostic.CodeInvalidManifest, td.Name,
				"duplicate type name %q", td.Name)
			continue
		}

		seen[td.Name] = struct{}{}

		if ts := buildType(td, d); ts != nil {
			out = append(out, ts)
		}
	}

	return out
}

// buildType converts one type declaration. It returns nil when the
// declaration is too broken to resolve against.
func buildType(td *TypeDecl, d *diagnostic.Diagnostics) *schema.TypeSchema {
	ts := &schema.TypeSchema{Name: td.Name}

	switch td.Kind {
	case "record":
		ts.Kind = schema.KindRecord

		if len(td.Variants) > 0 {
			d.AddErrorf(diagnostic.CodeInvalidManifest, td.Name,
				"record %q must not declare variants", td.Name)
			return nil
		}

		ts.Fields = buildFields(td.Fields, td.Name, "", d)
	case "union":
		ts.Kind = schema.KindUnion

		if len(td.Fields) > 0 {
			d.AddErrorf(diagnostic.CodeInvalidManifest, td.Name,
				"union %q must not declare top-level fields", td.Name)
			return nil
		}

		if len(td.Variants) == 0 {
			d.AddErrorf(diagnostic.CodeInvalidManifest, td.Name,
				"union %q must declare at least one variant", td.Name)
			return nil
		}

		ts.Variants = buildVariants(td.Variants, td.Name, d)
	default:
		d.AddErrorf(diagnostic.CodeInvalidManifest, td.Name,
			"kind must be \"record\" or \"union\", got %q", td.Kind)
		return nil
	}

	ts.Annotations = ParseAnnotations(td.Annotations, SiteType, td.Name, d)

	return ts
}

func buildVariants(decls []VariantDecl, typeName string, d *diagnostic.Diagnostics) []schema.Variant {
	seen := map[string]struct{}{}

	var out []schema.Variant

	for i := range decls {
		vd := &decls[i]
		site := typeName + "." + vd.Name

		if !token.IsIdentifier(vd.Name) || !token.IsExported(vd.Name) {
			d.AddErrorf(diagnostic.CodeInvalidManifest, site,
				"variant name %q must be a valid exported Go identifier", vd.Name)
			continue
		}

		if _, dup := seen[vd.Name]; dup {
			d.AddErrorf(diagnostic.CodeInvalidManifest, site,
				"duplicate variant name %q", vd.Name)
			continue
		}

		seen[vd.Name] = struct{}{}

		out = append(out, schema.Variant{
			Name:        vd.Name,
			Fields:      buildFields(vd.Fields, typeName, vd.Name, d),
			Annotations: ParseAnnotations(vd.Annotations, SiteVariant, site, d),
		})
	}

	return out
}

// buildFields converts one field list. A list mixes either all named or all
// positional fields, mirroring struct vs. tuple shapes.
func buildFields(decls []FieldDecl, typeName, variantName string, d *diagnostic.Diagnostics) []schema.Field {
	listSite := schema.SitePath(typeName, variantName, nil)

	named, positional := 0, 0
	seen := map[string]struct{}{}

	var out []schema.Field

	for i := range decls {
		fd := &decls[i]

		field := schema.Field{
			Name:   fd.Name,
			Index:  i,
			GoType: fd.Type,
		}

		site := schema.SitePath(typeName, variantName, &field)

		if fd.Name == "" {
			positional++
		} else {
			named++

			if !token.IsIdentifier(fd.Name) {
				d.AddErrorf(diagnostic.CodeInvalidManifest, site,
					"field name %q must be a valid Go identifier", fd.Name)
				continue
			}

			if _, dup := seen[fd.Name]; dup {
				d.AddErrorf(diagnostic.CodeInvalidManifest, site,
					"duplicate field name %q", fd.Name)
				continue
			}

			seen[fd.Name] = struct{}{}
		}

		if fd.Type == "" {
			d.AddErrorf(diagnostic.CodeInvalidManifest, site,
				"field %s is missing a Go type", field.DisplayName())
			continue
		}

		field.Annotations = ParseAnnotations(fd.Annotations, SiteField, site, d)
		out = append(out, field)
	}

	if named > 0 && positional > 0 {
		d.AddError(diagnostic.CodeInvalidManifest,
			"fields must be all named or all positional", listSite)
	}

	return out
}
