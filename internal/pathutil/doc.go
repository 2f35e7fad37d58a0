// Package pathutil provides helpers for document locations: dotted diagnostic
// paths such as "paths./pets.get.responses", schema reference strings, and
// the {param} placeholders of path templates.
package pathutil
