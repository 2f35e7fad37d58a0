package pathutil

import "strings"

// RefPrefixSchemas is the prefix of references into components.schemas.
const RefPrefixSchemas = "#/components/schemas/"

// SchemaNameFromRef returns the schema name of a components.schemas reference.
// The second result is false when ref points anywhere else.
func SchemaNameFromRef(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, RefPrefixSchemas)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return unescapePointer(name), true
}

// unescapePointer decodes JSON Pointer escapes (~1 for '/', ~0 for '~').
func unescapePointer(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}
