// Package naming derives Go identifiers from names found in OpenAPI documents.
//
// The stubgen package uses it to turn operationIds into test function names
// (TestName) and parameter names into local variable names (Identifier).
// Word splitting treats any non-alphanumeric rune and any case change as a
// boundary, so "list_pets", "list-pets", and "listPets" all produce the same
// words.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
