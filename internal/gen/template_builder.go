package gen

import (
	"fmt"
	"strings"

	"cefgen/internal/resolve"
	"cefgen/internal/schema"
)

// fileData is the root of the generation template for one type's file.
type fileData struct {
	Package   string
	CefImport string
	NeedsFmt  bool
	Union     *unionData
	Impls     []implData
}

// unionData declares the sealed interface of a union type.
type unionData struct {
	Name string
}

// implData is one concrete struct: the record itself, or one union variant.
type implData struct {
	StructName string
	UnionName  string
	Comment    string
	Fields     []fieldDecl
	Methods    []methodData
}

type fieldDecl struct {
	Name string
	Type string
}

// methodData is one emitted method, body lines pre-rendered.
type methodData struct {
	Recv      string
	Name      string
	Signature string
	Body      []string
}

// buildFileData turns one resolved type into template data.
func (g *Generator) buildFileData(rt *resolve.ResolvedType) *fileData {
	data := &fileData{
		Package:   g.config.PackageName,
		CefImport: CefImportPath,
	}

	ts := rt.Schema

	if ts.Kind == schema.KindRecord {
		data.Impls = []implData{g.buildRecordImpl(rt)}
	} else {
		data.Union = &unionData{Name: ts.Name}

		for i := range ts.Variants {
			v := &ts.Variants[i]
			data.Impls = append(data.Impls, g.buildVariantImpl(rt, v))
		}
	}

	for _, impl := range data.Impls {
		for _, m := range impl.Methods {
			for _, line := range m.Body {
				if containsSprintf(line) {
					data.NeedsFmt = true
				}
			}
		}
	}

	return data
}

func (g *Generator) buildRecordImpl(rt *resolve.ResolvedType) implData {
	ts := rt.Schema

	impl := implData{
		StructName: ts.Name,
		Comment:    fmt.Sprintf("%s is generated from the cefgen manifest.", ts.Name),
		Fields:     fieldDecls(ts.Fields),
	}

	for _, h := range schema.AllHeaders {
		rh := rt.Headers[h]
		impl.Methods = append(impl.Methods, headerMethod(ts.Name, h, *rh.Single))
	}

	impl.Methods = append(impl.Methods,
		extensionsMethod(ts.Name, rt.Extensions),
		toCefMethod(ts.Name))

	return impl
}

func (g *Generator) buildVariantImpl(rt *resolve.ResolvedType, v *schema.Variant) implData {
	ts := rt.Schema
	name := ts.VariantStructName(v)

	impl := implData{
		StructName: name,
		UnionName:  ts.Name,
		Comment:    fmt.Sprintf("%s is the %s variant of %s.", name, v.Name, ts.Name),
		Fields:     fieldDecls(v.Fields),
	}

	for _, h := range schema.AllHeaders {
		rh := rt.Headers[h]
		impl.Methods = append(impl.Methods, headerMethod(name, h, variantSource(rh, v)))
	}

	impl.Methods = append(impl.Methods,
		extensionsMethod(name, rt.VariantExtensions[v.Name]),
		toCefMethod(name))

	return impl
}

// variantSource picks the source for one variant: the union-root decision,
// or the variant's own dispatch arm.
func variantSource(rh *resolve.ResolvedHeader, v *schema.Variant) resolve.Source {
	if rh.Single != nil {
		return *rh.Single
	}

	for _, arm := range rh.Arms {
		if arm.Variant == v {
			return arm.Source
		}
	}

	// The resolver guarantees exhaustive arms; reaching here is a bug.
	panic(fmt.Sprintf("no dispatch arm for variant %s", v.Name))
}

func fieldDecls(fields []schema.Field) []fieldDecl {
	out := make([]fieldDecl, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		out = append(out, fieldDecl{Name: f.Ident(), Type: f.GoType})
	}

	return out
}

// headerMethod renders one header accessor.
func headerMethod(recv string, h schema.HeaderName, src resolve.Source) methodData {
	m := methodData{
		Recv:      recv,
		Name:      h.Method(),
		Signature: "() (string, error)",
	}

	switch src.Kind {
	case resolve.SourceFixed:
		m.Body = []string{fmt.Sprintf("return %q, nil", src.Literal)}
	case resolve.SourceInherit:
		// Error from the nested accessor is forwarded unchanged.
		m.Body = []string{fmt.Sprintf("return x.%s.%s()", src.Field.Ident(), h.Method())}
	case resolve.SourceDisplay:
		m.Body = []string{fmt.Sprintf("return fmt.Sprintf(\"%%v\", x.%s), nil", src.Field.Ident())}
	}

	return m
}

// extensionsMethod renders the extensions collector. Writes happen in
// contribution order, so a later contribution to the same key wins.
func extensionsMethod(recv string, contribs []resolve.Contribution) methodData {
	m := methodData{
		Recv:      recv,
		Name:      "CefExtensions",
		Signature: "(ext map[string]string) error",
	}

	for _, c := range contribs {
		switch c.Kind {
		case resolve.ContribFixed:
			m.Body = append(m.Body, fmt.Sprintf("ext[%q] = %q", c.Key, c.Value))
		case resolve.ContribField:
			m.Body = append(m.Body,
				fmt.Sprintf("ext[%q] = fmt.Sprintf(\"%%v\", x.%s)", c.Key, c.Field.Ident()))
		case resolve.ContribGobble:
			m.Body = append(m.Body,
				fmt.Sprintf("if err := x.%s.CefExtensions(ext); err != nil {", c.Field.Ident()),
				"\treturn err",
				"}")
		}
	}

	m.Body = append(m.Body, "return nil")

	return m
}

// toCefMethod renders the ToCef convenience method.
func toCefMethod(recv string) methodData {
	return methodData{
		Recv:      recv,
		Name:      "ToCef",
		Signature: "() (string, error)",
		Body:      []string{"return cef.Render(x)"},
	}
}

func containsSprintf(line string) bool {
	return strings.Contains(line, "fmt.Sprintf")
}
