// Package naming derives Go identifiers from OpenAPI names.
package naming

import (
	"go/token"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words splits s into words. Any rune that is neither a letter nor a digit
// separates words, and so does a change of case:
//
//	"showPetById"   -> ["show", "Pet", "By", "Id"]
//	"HTTPServer"    -> ["HTTP", "Server"]
//	"/api/v1/users" -> ["api", "v1", "users"]
func Words(s string) []string {
	runes := []rune(s)
	var words []string
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			// end of an acronym: "HTTPServer" splits before "S"
			flush(i)
			start = i
		}
	}
	flush(len(runes))
	return words
}

// ToPascalCase joins the words of s with each word's first letter upper-cased.
// Letters already upper-case are kept, so acronyms survive.
// Example: "get_user_by_ID" -> "GetUserByID"
func ToPascalCase(s string) string {
	caser := cases.Title(language.English, cases.NoLower)
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(caser.String(w))
	}
	return b.String()
}

// ToCamelCase is ToPascalCase with the first word lower-cased.
// Example: "PetID" -> "petID"
func ToCamelCase(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	caser := cases.Title(language.English, cases.NoLower)
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(caser.String(w))
	}
	return b.String()
}

// ToSnakeCase joins the lower-cased words of s with underscores.
// Example: "Swagger Petstore" -> "swagger_petstore"
func ToSnakeCase(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// TestName derives a Go test function name from an operationId.
// The result always starts with "Test" followed by a non-lowercase rune, as
// go test requires.
func TestName(operationID string) string {
	return "Test" + ToPascalCase(operationID)
}

// Identifier derives an unexported Go identifier from a name such as a
// parameter name. Names that start with a digit are prefixed with "p";
// keywords and predeclared names get a trailing underscore.
func Identifier(name string) string {
	id := ToCamelCase(name)
	switch {
	case id == "":
		return "_"
	case unicode.IsDigit([]rune(id)[0]):
		id = "p" + id
	}
	if token.IsKeyword(id) || predeclared[id] {
		id += "_"
	}
	return id
}

// predeclared holds names that would shadow something generated tests use.
var predeclared = map[string]bool{
	"t":      true,
	"req":    true,
	"resp":   true,
	"err":    true,
	"ctx":    true,
	"http":   true,
	"url":    true,
	"len":    true,
	"string": true,
	"int":    true,
	"bool":   true,
	"nil":    true,
	"true":   true,
	"false":  true,
}
