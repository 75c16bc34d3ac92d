package gen

import (
	"strings"
	"text/template"

	"accessor-generator/internal/plan"
)

// implData holds everything the impl template needs for one aggregate.
type implData struct {
	Name        string
	Generics    string
	Where       string
	SelfType    string
	Constructor plan.Function
	Accessors   []plan.AccessorPair
}

var templateFuncs = template.FuncMap{
	"sig":       Signature,
	"structLit": structLiteral,
}

var implTemplate = template.Must(
	template.New("impl").
		Funcs(templateFuncs).
		Parse(`{{define "markers"}}{{range .Markers}}    #[{{.}}]
{{end}}{{end}}impl{{.Generics}} {{.SelfType}}{{with .Where}} {{.}}{{end}} {
{{with .Constructor}}{{template "markers" .}}    {{sig .}} {
        {{structLit $.Name .Params}}
    }
{{end}}{{range .Accessors}}{{with .Setter}}
{{template "markers" .}}    {{sig .}} {
        self.{{.Field}} = {{.Field}};
    }
{{end}}{{with .Getter}}
{{template "markers" .}}    {{sig .}} {
        (&self.{{.Field}}).clone()
    }
{{end}}{{end}}}
`))

// Signature renders a function header without its body.
// Example: "pub fn get_name(&self) -> &str"
func Signature(fn plan.Function) string {
	var sb strings.Builder

	if m := fn.Visibility.Modifier(); m != "" {
		sb.WriteString(m + " ")
	}

	sb.WriteString("fn " + fn.Name + "(" + paramList(fn) + ")")

	if fn.Result != nil {
		sb.WriteString(" -> " + fn.Result.String())
	}

	return sb.String()
}

// paramList renders the receiver and explicit parameters.
// Example: "&mut self, name: &str"
func paramList(fn plan.Function) string {
	parts := make([]string, 0, len(fn.Params)+1)

	if r := fn.Receiver.String(); r != "" {
		parts = append(parts, r)
	}

	for _, p := range fn.Params {
		parts = append(parts, p.Name+": "+p.Type.String())
	}

	return strings.Join(parts, ", ")
}

// structLiteral renders "Name { a, b }" using field init shorthand.
func structLiteral(name string, params []plan.Param) string {
	if len(params) == 0 {
		return name + " {}"
	}

	fields := make([]string, len(params))
	for i, p := range params {
		fields[i] = p.Name
	}

	return name + " { " + strings.Join(fields, ", ") + " }"
}
