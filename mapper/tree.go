package mapper

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastubs/internal/pathutil"
	"github.com/erraggy/oastubs/oaserrors"
)

// builder carries the state of one mapping pass.
type builder struct {
	log      Logger
	maxDepth int
	path     pathutil.PathBuilder

	// depth counts nested inline schemas
	depth int
	// operationIDs maps each operationId to the location that declared it
	operationIDs map[string]string
}

func newBuilder(log Logger, maxDepth int) *builder {
	if log == nil {
		log = NopLogger{}
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &builder{
		log:          log,
		maxDepth:     maxDepth,
		operationIDs: make(map[string]string),
	}
}

// entry is one key/value pair of a mapping node.
type entry struct {
	key   string
	value *yaml.Node
}

// deref follows alias nodes to their anchors.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// shape names a node kind for error messages.
func shape(n *yaml.Node) string {
	n = deref(n)
	switch {
	case n == nil:
		return "nothing"
	case isNull(n):
		return "null"
	}
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.DocumentNode:
		return "document"
	default:
		return "unknown"
	}
}

// fail builds a SchemaError located at the current path.
func (b *builder) fail(kind oaserrors.Kind, field string, value any, format string, args ...any) error {
	return &oaserrors.SchemaError{
		Kind:    kind,
		Path:    b.path.String(),
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}

func (b *builder) mismatch(field, want string, n *yaml.Node) error {
	return b.fail(oaserrors.TypeMismatch, field, nil, "expected %s, got %s", want, shape(n))
}

// find returns the value of key in a mapping node, or nil when absent.
func find(n *yaml.Node, key string) *yaml.Node {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Kind == yaml.ScalarNode && n.Content[i].Value == key {
			return deref(n.Content[i+1])
		}
	}
	return nil
}

// lookup is find for optional keys: a null value counts as absent.
func lookup(n *yaml.Node, key string) *yaml.Node {
	v := find(n, key)
	if isNull(v) {
		return nil
	}
	return v
}

// entries returns the pairs of a mapping node in document order.
// Repeated keys are rejected since every keyed collection of the document
// must be addressable by name.
func (b *builder) entries(n *yaml.Node, field string) ([]entry, error) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, b.mismatch(field, "mapping", n)
	}
	out := make([]entry, 0, len(n.Content)/2)
	seen := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := deref(n.Content[i])
		if k.Kind != yaml.ScalarNode {
			return nil, b.fail(oaserrors.TypeMismatch, field, nil, "mapping key must be a scalar, got %s", shape(k))
		}
		if _, dup := seen[k.Value]; dup {
			return nil, b.fail(oaserrors.DuplicateIdentifier, field, k.Value, "key is defined more than once")
		}
		seen[k.Value] = struct{}{}
		out = append(out, entry{key: k.Value, value: deref(n.Content[i+1])})
	}
	return out, nil
}

// items returns the elements of a sequence node.
func (b *builder) items(n *yaml.Node, field string) ([]*yaml.Node, error) {
	n = deref(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil, b.mismatch(field, "sequence", n)
	}
	out := make([]*yaml.Node, len(n.Content))
	for i, c := range n.Content {
		out[i] = deref(c)
	}
	return out, nil
}

// require returns the value of key or a MissingField error.
// A present null is returned as is so callers report it as a type mismatch.
func (b *builder) require(n *yaml.Node, key string) (*yaml.Node, error) {
	v := find(n, key)
	if v == nil {
		return nil, b.fail(oaserrors.MissingField, key, nil, "required field is missing")
	}
	return v, nil
}

// scalar returns the text of a scalar node.
func (b *builder) scalar(n *yaml.Node, field string) (string, error) {
	n = deref(n)
	if isNull(n) {
		return "", nil
	}
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", b.mismatch(field, "scalar", n)
	}
	return n.Value, nil
}

// optString returns the scalar text of key, or "" when absent.
func (b *builder) optString(n *yaml.Node, key string) (string, error) {
	v := lookup(n, key)
	if v == nil {
		return "", nil
	}
	return b.scalar(v, key)
}

// reqString returns the scalar text of key, failing when it is absent.
func (b *builder) reqString(n *yaml.Node, key string) (string, error) {
	v, err := b.require(n, key)
	if err != nil {
		return "", err
	}
	return b.scalar(v, key)
}

// optBool decodes key as a boolean, defaulting to false when absent.
func (b *builder) optBool(n *yaml.Node, key string) (bool, error) {
	v := lookup(n, key)
	if v == nil {
		return false, nil
	}
	var out bool
	if v.Kind != yaml.ScalarNode || v.Decode(&out) != nil {
		return false, b.fail(oaserrors.TypeMismatch, key, v.Value, "expected boolean")
	}
	return out, nil
}

// optStringList returns key as a list of scalars, or nil when absent.
func (b *builder) optStringList(n *yaml.Node, key string) ([]string, error) {
	v := lookup(n, key)
	if v == nil {
		return nil, nil
	}
	return b.stringList(v, key)
}

// stringList returns a sequence node as a list of scalars.
func (b *builder) stringList(n *yaml.Node, field string) ([]string, error) {
	elems, err := b.items(n, field)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(elems))
	for i, e := range elems {
		s, err := b.scalar(e, fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// literal decodes an arbitrary value node into plain Go values.
func (b *builder) literal(n *yaml.Node, field string) (any, error) {
	var out any
	if err := n.Decode(&out); err != nil {
		return nil, &oaserrors.SchemaError{
			Kind:  oaserrors.TypeMismatch,
			Path:  b.path.String(),
			Field: field,
			Cause: err,
		}
	}
	return out, nil
}
