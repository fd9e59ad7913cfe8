package manifest

// File represents the root of a YAML manifest file.
type File struct {
	// Version of the manifest schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Package is the Go package name for generated code.
	Package string `yaml:"package,omitempty"`

	// Types lists the event type declarations.
	Types []TypeDecl `yaml:"types"`
}

// TypeDecl declares one event type: a record or a tagged union.
type TypeDecl struct {
	// Name of the generated Go type. Must be a valid exported identifier.
	Name string `yaml:"name"`

	// Kind is "record" (default) or "union".
	Kind string `yaml:"kind,omitempty"`

	// Annotations are raw type-level attribute strings,
	// e.g. `cef_values(Version = "0")`.
	Annotations []string `yaml:"annotations,omitempty"`

	// Fields of a record. Mutually exclusive with Variants.
	Fields []FieldDecl `yaml:"fields,omitempty"`

	// Variants of a union. Mutually exclusive with Fields.
	Variants []VariantDecl `yaml:"variants,omitempty"`
}

// VariantDecl declares one variant of a union type.
type VariantDecl struct {
	Name string `yaml:"name"`

	// Annotations are raw variant-level attribute strings.
	Annotations []string `yaml:"annotations,omitempty"`

	Fields []FieldDecl `yaml:"fields,omitempty"`
}

// FieldDecl declares one field. A field without a name is positional; all
// fields of one record or variant must agree on being named or positional.
type FieldDecl struct {
	// Name of the field. Empty for positional fields.
	Name string `yaml:"name,omitempty"`

	// Type is the Go type of the field, e.g. "string" or "store.Item".
	Type string `yaml:"type"`

	// Annotations are raw field-level attribute strings.
	Annotations []string `yaml:"annotations,omitempty"`
}
