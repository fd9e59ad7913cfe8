package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"cefgen/internal/resolve"
)

// CefImportPath is the import path of the runtime library the generated
// code links against.
const CefImportPath = "cefgen/cef"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName: "events",
		OutputDir:   "./events",
	}
}

// Generator emits Go code from resolved type schemas.
type Generator struct {
	config GeneratorConfig
	tmpl   *template.Template
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		tmpl:   template.Must(template.New("cefgen").Parse(fileTemplate)),
	}
}

// GeneratedFile is one generated Go source file.
type GeneratedFile struct {
	// Filename is the base name of the file, e.g. "auth_event_cef.go".
	Filename string
	// Content is the gofmt-formatted source.
	Content []byte
}

// Generate emits one file per resolved type. Every input must have resolved
// completely; generation refuses partial types.
func (g *Generator) Generate(types []*resolve.ResolvedType) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(types))

	for _, rt := range types {
		if !rt.Complete() {
			return nil, fmt.Errorf("type %s has unresolved headers; refusing to generate", rt.Schema.Name)
		}

		file, err := g.generateType(rt)
		if err != nil {
			return nil, err
		}

		files = append(files, file)
	}

	return files, nil
}

func (g *Generator) generateType(rt *resolve.ResolvedType) (GeneratedFile, error) {
	data := g.buildFileData(rt)

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("rendering %s: %w", rt.Schema.Name, err)
	}

	filename := snakeCase(rt.Schema.Name) + "_cef.go"

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Keep the raw output around so the template bug is inspectable.
		writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())

		return GeneratedFile{}, fmt.Errorf("formatting %s: %w", filename, err)
	}

	return GeneratedFile{Filename: filename, Content: formatted}, nil
}

// OutputDir returns the configured output directory.
func (g *Generator) OutputDir() string {
	return g.config.OutputDir
}

// snakeCase converts a Go identifier to snake_case for filenames.
func snakeCase(s string) string {
	var b strings.Builder

	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}

			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}
