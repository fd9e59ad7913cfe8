package schema

import "fmt"

// Kind distinguishes records from tagged unions.
type Kind int

const (
	// KindRecord is a plain struct with named or positional fields.
	KindRecord Kind = iota
	// KindUnion is a tagged union of variants, each with its own fields.
	KindUnion
)

// String returns the manifest spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindUnion:
		return "union"
	default:
		return "unknown"
	}
}

// TypeSchema is the model of one declared event type. Exactly one of Fields
// or Variants is populated, matching Kind.
type TypeSchema struct {
	Name        string
	Kind        Kind
	Fields      []Field
	Variants    []Variant
	Annotations []Annotation
}

// Variant is one alternative of a union type. It is owned by its TypeSchema.
type Variant struct {
	Name        string
	Fields      []Field
	Annotations []Annotation
}

// Field is one field of a record or variant. A positional field has an empty
// Name; Index is always the field's declaration position.
type Field struct {
	Name        string
	Index       int
	GoType      string
	Annotations []Annotation
}

// Named reports whether the field carries its own name. Only named fields may
// default an extension key to the field name.
func (f *Field) Named() bool {
	return f.Name != ""
}

// Ident returns the Go identifier used to access the field in generated
// code: the declared name, or a positional placeholder like "F2".
func (f *Field) Ident() string {
	if f.Named() {
		return f.Name
	}

	return fmt.Sprintf("F%d", f.Index)
}

// DisplayName returns the field identity for diagnostics: the name, or the
// 0-based index for positional fields.
func (f *Field) DisplayName() string {
	if f.Named() {
		return f.Name
	}

	return fmt.Sprintf("#%d", f.Index)
}

// VariantStructName returns the generated struct name for a variant of this
// type, e.g. "AuthEventLogin".
func (t *TypeSchema) VariantStructName(v *Variant) string {
	return t.Name + v.Name
}

// SitePath builds the dotted diagnostic path for a site within a type.
// Any of variant or field may be empty/nil.
func SitePath(typeName, variantName string, field *Field) string {
	path := typeName
	if variantName != "" {
		path += "." + variantName
	}

	if field != nil {
		path += "." + field.DisplayName()
	}

	return path
}
