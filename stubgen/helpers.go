package stubgen

import (
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/erraggy/oastubs/internal/pathutil"
	"github.com/erraggy/oastubs/mapper"
)

// formatAndFixImports formats Go source code and removes the imports the
// rendered file does not use.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

var methodConsts = map[string]string{
	mapper.MethodGet:     "http.MethodGet",
	mapper.MethodPut:     "http.MethodPut",
	mapper.MethodPost:    "http.MethodPost",
	mapper.MethodDelete:  "http.MethodDelete",
	mapper.MethodOptions: "http.MethodOptions",
	mapper.MethodHead:    "http.MethodHead",
	mapper.MethodPatch:   "http.MethodPatch",
	mapper.MethodTrace:   "http.MethodTrace",
}

// methodConst returns the net/http constant for an upper-case method.
func methodConst(method string) string {
	if c, ok := methodConsts[strings.ToLower(method)]; ok {
		return c
	}
	return strconv.Quote(method)
}

// urlExpr builds the Go expression for the request path of tf, with each
// placeholder replaced by its escaped variable.
//
//	"/pets/{petId}" -> "/pets/" + url.PathEscape(petID)
func urlExpr(tf TestFunc) string {
	vars := make(map[string]string, len(tf.PathParams))
	for _, p := range tf.PathParams {
		vars[p.Name] = p.Var
	}

	var parts []string
	last := 0
	for _, m := range pathutil.PathParamRegex.FindAllStringSubmatchIndex(tf.Path, -1) {
		if m[0] > last {
			parts = append(parts, strconv.Quote(tf.Path[last:m[0]]))
		}
		parts = append(parts, "url.PathEscape("+vars[tf.Path[m[2]:m[3]]]+")")
		last = m[1]
	}
	if last < len(tf.Path) || len(parts) == 0 {
		parts = append(parts, strconv.Quote(tf.Path[last:]))
	}
	return strings.Join(parts, " + ")
}

// sampleValue picks a literal that satisfies the declared scalar type.
func sampleValue(s *mapper.PrimitiveSchema) string {
	if s == nil {
		return "example"
	}
	switch s.Type {
	case "integer", "number":
		return "1"
	case "boolean":
		return "true"
	}
	switch s.Format {
	case "uuid":
		return "00000000-0000-0000-0000-000000000001"
	case "date":
		return "2024-01-01"
	case "date-time":
		return "2024-01-01T00:00:00Z"
	case "email":
		return "user@example.com"
	}
	return "example"
}

// bodySample returns a minimal body for a media type.
func bodySample(mediaType string) string {
	if strings.Contains(mediaType, "json") {
		return "{}"
	}
	return ""
}

// oneLine folds a multi-line description into a single comment line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
