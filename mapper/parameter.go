package mapper

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastubs/oaserrors"
)

// buildParameters maps an operation's parameter list. Each parameter object
// carries its own location in "in"; the pair (name, in) must be unique.
func (b *builder) buildParameters(n *yaml.Node) ([]*Parameter, error) {
	elems, err := b.items(n, "parameters")
	if err != nil {
		return nil, err
	}
	b.path.Push("parameters")
	defer b.path.Pop()

	type key struct {
		name string
		in   ParameterLocation
	}
	seen := make(map[key]struct{}, len(elems))
	out := make([]*Parameter, 0, len(elems))
	for i, e := range elems {
		param, err := b.buildParameter(i, e)
		if err != nil {
			return nil, err
		}
		k := key{param.Name, param.In}
		if _, dup := seen[k]; dup {
			b.path.PushIndex(i)
			err := b.fail(oaserrors.DuplicateIdentifier, "name", param.Name,
				"parameter already declared in %s", param.In)
			b.path.Pop()
			return nil, err
		}
		seen[k] = struct{}{}
		out = append(out, param)
	}
	return out, nil
}

func (b *builder) buildParameter(i int, n *yaml.Node) (*Parameter, error) {
	b.path.PushIndex(i)
	defer b.path.Pop()

	if _, err := b.entries(n, ""); err != nil {
		return nil, err
	}

	in, err := b.reqString(n, "in")
	if err != nil {
		return nil, err
	}
	param := &Parameter{In: ParameterLocation(in)}
	if !param.In.Valid() {
		return nil, b.fail(oaserrors.InvalidValue, "in", in, "location must be one of path, query, header, cookie")
	}

	if param.Name, err = b.reqString(n, "name"); err != nil {
		return nil, err
	}
	if param.Required, err = b.optBool(n, "required"); err != nil {
		return nil, err
	}
	if param.Description, err = b.optString(n, "description"); err != nil {
		return nil, err
	}
	if s := lookup(n, "schema"); s != nil {
		if param.Schema, err = b.buildPrimitive(s); err != nil {
			return nil, err
		}
	}
	return param, nil
}

// buildPrimitive maps a parameter schema to its scalar description.
func (b *builder) buildPrimitive(n *yaml.Node) (*PrimitiveSchema, error) {
	if _, err := b.entries(n, "schema"); err != nil {
		return nil, err
	}
	b.path.Push("schema")
	defer b.path.Pop()

	s := &PrimitiveSchema{}
	var err error
	if s.Ref, err = b.optString(n, "$ref"); err != nil {
		return nil, err
	}
	if s.Title, err = b.optString(n, "title"); err != nil {
		return nil, err
	}
	if s.Type, _, err = b.schemaType(n); err != nil {
		return nil, err
	}
	if s.Format, err = b.optString(n, "format"); err != nil {
		return nil, err
	}
	return s, nil
}
