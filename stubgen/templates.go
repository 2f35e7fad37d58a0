package stubgen

import (
	"bytes"
	"embed"
	"strconv"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").
	Funcs(templateFuncs).
	ParseFS(templateFS, "templates/*.tmpl"))

// templateFuncs provides custom functions for templates
var templateFuncs = template.FuncMap{
	"quote":       strconv.Quote,
	"join":        strings.Join,
	"methodConst": methodConst,
	"urlExpr":     urlExpr,
}

// executeTemplate executes a template by name and returns the formatted
// bytes. When formatting fails the unformatted source is returned along with
// the formatting error.
func executeTemplate(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}

	formatted, err := formatAndFixImports("generated_test.go", buf.Bytes())
	if err != nil {
		return buf.Bytes(), err
	}
	return formatted, nil
}
