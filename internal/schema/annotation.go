package schema

// AnnotationKind discriminates the closed set of annotation variants.
type AnnotationKind int

const (
	// AnnFixedValue supplies a literal string for one header.
	// Valid on a type or variant root only.
	AnnFixedValue AnnotationKind = iota
	// AnnInherit delegates a header to the field's own accessor for that
	// header. Valid on a field only.
	AnnInherit
	// AnnDisplay renders the field's textual representation as the
	// header's value. Valid on a field only.
	AnnDisplay
	// AnnExtensionGobble merges the field's own extension set into the
	// parent's. Valid on a field only.
	AnnExtensionGobble
	// AnnExtensionField adds one extension entry keyed by the rename or
	// the field's own name. Valid on a field only.
	AnnExtensionField
	// AnnExtensionFixed adds one static extension entry. Valid on a type
	// or variant root only.
	AnnExtensionFixed
)

// String returns the raw attribute name the kind was parsed from.
func (k AnnotationKind) String() string {
	switch k {
	case AnnFixedValue:
		return "cef_values"
	case AnnInherit:
		return "cef_inherit"
	case AnnDisplay:
		return "cef_field"
	case AnnExtensionGobble:
		return "cef_ext_gobble"
	case AnnExtensionField:
		return "cef_ext_field"
	case AnnExtensionFixed:
		return "cef_ext_values"
	default:
		return "unknown"
	}
}

// Annotation is one parsed, validated annotation occurrence. Which members
// are meaningful depends on Kind.
type Annotation struct {
	Kind AnnotationKind

	// Header targeted by FixedValue, Inherit, and Display.
	Header HeaderName

	// Literal value carried by FixedValue.
	Literal string

	// Rename carried by ExtensionField; HasRename distinguishes an absent
	// rename from an explicit empty one.
	Rename    string
	HasRename bool

	// Key and Value carried by ExtensionFixed.
	Key   string
	Value string

	// Site is the dotted path of the annotated declaration, for
	// diagnostics.
	Site string
}
