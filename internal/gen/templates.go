package gen

// fileTemplate renders one type's generated file. go/format cleans up the
// spacing, so the template only has to be syntactically correct.
const fileTemplate = `// Code generated by cefgen. DO NOT EDIT.

package {{.Package}}

import (
{{- if .NeedsFmt}}
	"fmt"
{{- end}}

	"{{.CefImport}}"
)
{{if .Union}}
// {{.Union.Name}} is the closed set of {{.Union.Name}} variants. Every
// variant satisfies cef.Event, so any {{.Union.Name}} value renders with
// cef.Render.
type {{.Union.Name}} interface {
	cef.Event
	is{{.Union.Name}}()
}
{{end}}
{{- range .Impls}}
// {{.Comment}}
type {{.StructName}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}

{{if .UnionName -}}
func (x *{{.StructName}}) is{{.UnionName}}() {}

var _ {{.UnionName}} = (*{{.StructName}})(nil)
{{else -}}
var _ cef.Event = (*{{.StructName}})(nil)
{{end}}
{{- range .Methods}}
func (x *{{.Recv}}) {{.Name}}{{.Signature}} {
{{- range .Body}}
	{{.}}
{{- end}}
}
{{end}}
{{- end}}`
