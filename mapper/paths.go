package mapper

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastubs/oaserrors"
)

// HTTP methods that may appear as operation keys of a path item, lowercase as
// written in OpenAPI documents.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

var httpMethods = map[string]struct{}{
	MethodGet:     {},
	MethodPut:     {},
	MethodPost:    {},
	MethodDelete:  {},
	MethodOptions: {},
	MethodHead:    {},
	MethodPatch:   {},
	MethodTrace:   {},
}

// IsHTTPMethod reports whether key names an operation of a path item.
func IsHTTPMethod(key string) bool {
	_, ok := httpMethods[key]
	return ok
}

// buildPaths maps the paths object, preserving document order.
func (b *builder) buildPaths(n *yaml.Node) ([]*PathItem, error) {
	pairs, err := b.entries(n, "paths")
	if err != nil {
		return nil, err
	}
	b.path.Push("paths")
	defer b.path.Pop()

	items := make([]*PathItem, 0, len(pairs))
	for _, p := range pairs {
		item, err := b.buildPathItem(p.key, p.value)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// buildPathItem maps one path template. Keys that are not HTTP methods
// (summary, servers, parameters, extensions) are ignored.
func (b *builder) buildPathItem(template string, n *yaml.Node) (*PathItem, error) {
	pairs, err := b.entries(n, template)
	if err != nil {
		return nil, err
	}
	b.path.Push(template)
	defer b.path.Pop()

	item := &PathItem{Path: template}
	for _, p := range pairs {
		if !IsHTTPMethod(p.key) {
			b.log.Debug("ignoring path item key", "path", b.path.String(), "key", p.key)
			continue
		}
		op, err := b.buildOperation(p.key, p.value)
		if err != nil {
			return nil, err
		}
		item.Operations = append(item.Operations, op)
	}
	if len(item.Operations) == 0 {
		return nil, b.fail(oaserrors.MissingField, "", nil, "path item defines no operations")
	}
	b.log.Debug("built path item", "path", template, "operations", len(item.Operations))
	return item, nil
}
