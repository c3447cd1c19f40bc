package gen

import "text/template"

// adapterTemplate renders one adapter: type, assertion, constructor, methods.
var adapterTemplate = template.Must(template.New("adapter").Parse(`
// {{.Name}} {{.Doc}}
type {{.Name}}{{.TypeParams}} struct {
{{if .Intercept}}	interceptor {{.A}}Interceptor
{{end}}{{if .Source}}	target {{.Source}}
{{end}}}
{{if not .Generic}}
var _ {{.Contract}} = (*{{.Name}})(nil)
{{end}}
{{if .Intercept}}// {{.Ctor}} returns a {{.Contract}} whose calls go through interceptor.
func {{.Ctor}}{{.TypeParams}}(interceptor {{.A}}Interceptor{{if .Source}}, target {{.Source}}{{end}}) ({{.Contract}}, error) {
	if interceptor == nil {
		return nil, {{.A}}ErrNilInterceptor
	}

	return &{{.Name}}{{.TypeArgs}}{interceptor: interceptor{{if .Source}}, target: target{{end}}}, nil
}
{{else}}// {{.Ctor}} returns a {{.Contract}} forwarding to target.
func {{.Ctor}}{{.TypeParams}}(target {{.Source}}) {{.Contract}} {
	return &{{.Name}}{{.TypeArgs}}{target: target}
}
{{end}}{{range .Methods}}
func (a *{{$.Name}}{{$.TypeArgs}}) {{.Name}}{{.Signature}} {
{{.Body}}}
{{end}}`))

// entryTemplate renders the adapter.Type registered in a unit's table.
var entryTemplate = template.Must(template.New("entry").Parse(`&{{.A}}Type{
	Name:     {{printf "%q" .Name}},
	Key:      {{printf "%q" .Key}},
	Contract: {{.Reflect}}TypeFor[{{.Contract}}](),
	Mode:     {{.A}}{{.Mode}},
	New: func(args ...any) (any, error) {
{{- if .Intercept}}
		if err := {{.A}}CheckArgs(args, 1, {{if .Source}}2{{else}}1{{end}}); err != nil {
			return nil, err
		}

		interceptor, err := {{.A}}Arg[{{.A}}Interceptor](args, 0)
		if err != nil {
			return nil, err
		}
{{if .Source}}
		target, err := {{.A}}Arg[{{.Source}}](args, 1)
		if err != nil {
			return nil, err
		}

		return {{.Ctor}}(interceptor, target)
{{- else}}
		return {{.Ctor}}(interceptor)
{{- end}}
{{- else}}
		if err := {{.A}}CheckArgs(args, 1, 1); err != nil {
			return nil, err
		}

		target, err := {{.A}}Arg[{{.Source}}](args, 0)
		if err != nil {
			return nil, err
		}

		return {{.Ctor}}(target), nil
{{- end}}
	},
}`))

// unitTemplate renders a complete file. Fragments leave out the table.
var unitTemplate = template.Must(template.New("unit").Parse(`// Code generated by adapter-generator. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}{{range .Decls}}{{printf "%s" .}}
{{end}}{{if .Standalone}}
// Adapters lists the adapters of this unit by request key.
var Adapters = {{.A}}NewTable({{range .Entries}}
	{{printf "%s" .}},{{end}}
)

// RegisterAdapters adds every adapter of this unit to t.
func RegisterAdapters(t *{{.A}}Table) error {
	return t.Merge(Adapters)
}
{{end}}`))

type unitData struct {
	PackageName string
	Imports     []importSpec
	Decls       [][]byte
	Entries     [][]byte
	Standalone  bool
	A           string
}
