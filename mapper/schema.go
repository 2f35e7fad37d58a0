package mapper

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastubs/internal/pathutil"
	"github.com/erraggy/oastubs/oaserrors"
)

// newReference records a $ref without following it.
func newReference(ref string) *Reference {
	r := &Reference{Ref: ref}
	if name, ok := pathutil.SchemaNameFromRef(ref); ok {
		r.Name = name
	}
	return r
}

// enter tracks inline schema nesting against the configured limit.
func (b *builder) enter() error {
	b.depth++
	if b.depth > b.maxDepth {
		return &oaserrors.ResourceLimitError{
			ResourceType: "schema_depth",
			Limit:        int64(b.maxDepth),
			Path:         b.path.String(),
		}
	}
	return nil
}

func (b *builder) leave() { b.depth-- }

// buildSchemaRef maps the schema found under field: a bare $ref becomes a
// Reference, anything else an inline SchemaProperty.
func (b *builder) buildSchemaRef(n *yaml.Node, field string) (*SchemaRef, error) {
	if _, err := b.entries(n, field); err != nil {
		return nil, err
	}
	if ref := lookup(n, "$ref"); ref != nil && lookup(n, "type") == nil {
		b.path.Push(field)
		raw, err := b.scalar(ref, "$ref")
		b.path.Pop()
		if err != nil {
			return nil, err
		}
		return &SchemaRef{Reference: newReference(raw)}, nil
	}
	prop, err := b.buildProperty("", field, n)
	if err != nil {
		return nil, err
	}
	return &SchemaRef{Inline: prop}, nil
}

// buildSchemaRefs maps a composition member list such as allOf.
func (b *builder) buildSchemaRefs(n *yaml.Node, field string) ([]SchemaRef, error) {
	elems, err := b.items(n, field)
	if err != nil {
		return nil, err
	}
	b.path.Push(field)
	defer b.path.Pop()

	out := make([]SchemaRef, 0, len(elems))
	for i, e := range elems {
		ref, err := b.buildSchemaRef(e, fmt.Sprintf("[%d]", i))
		if err != nil {
			return nil, err
		}
		out = append(out, *ref)
	}
	return out, nil
}

// buildProperty maps a schema object. name is the property name ("" for
// inline schemas); field is the key the node sits under at the current path.
func (b *builder) buildProperty(name, field string, n *yaml.Node) (*SchemaProperty, error) {
	if _, err := b.entries(n, field); err != nil {
		return nil, err
	}
	b.path.Push(field)
	defer b.path.Pop()
	if err := b.enter(); err != nil {
		return nil, err
	}
	defer b.leave()

	p := &SchemaProperty{Name: name}
	var err error

	if ref := lookup(n, "$ref"); ref != nil {
		if lookup(n, "type") != nil {
			return nil, b.fail(oaserrors.InvalidValue, "$ref", nil, "$ref cannot be combined with type")
		}
		raw, err := b.scalar(ref, "$ref")
		if err != nil {
			return nil, err
		}
		p.View = newReference(raw)
	}
	if p.Type, p.Nullable, err = b.schemaType(n); err != nil {
		return nil, err
	}
	if p.Title, err = b.optString(n, "title"); err != nil {
		return nil, err
	}
	if p.Format, err = b.optString(n, "format"); err != nil {
		return nil, err
	}
	if p.Description, err = b.optString(n, "description"); err != nil {
		return nil, err
	}
	if p.Pattern, err = b.optString(n, "pattern"); err != nil {
		return nil, err
	}
	if p.WriteOnly, err = b.optBool(n, "writeOnly"); err != nil {
		return nil, err
	}
	if p.ReadOnly, err = b.optBool(n, "readOnly"); err != nil {
		return nil, err
	}
	if nullable, err := b.optBool(n, "nullable"); err != nil {
		return nil, err
	} else if nullable {
		p.Nullable = true
	}
	if v := lookup(n, "default"); v != nil {
		if p.Default, err = b.literal(v, "default"); err != nil {
			return nil, err
		}
	}
	if p.Enum, err = b.buildEnum(n); err != nil {
		return nil, err
	}
	if v := lookup(n, "allOf"); v != nil {
		if p.AllOf, err = b.buildSchemaRefs(v, "allOf"); err != nil {
			return nil, err
		}
	}
	if v := lookup(n, "anyOf"); v != nil {
		if p.AnyOf, err = b.buildSchemaRefs(v, "anyOf"); err != nil {
			return nil, err
		}
	}
	if v := lookup(n, "items"); v != nil {
		if p.Items, err = b.buildSchemaRef(v, "items"); err != nil {
			return nil, err
		}
	}
	if p.Properties, err = b.buildProperties(n); err != nil {
		return nil, err
	}
	if p.Required, err = b.optStringList(n, "required"); err != nil {
		return nil, err
	}
	if len(p.AllOf) == 0 && len(p.AnyOf) == 0 {
		if err := b.checkRequired(p.Required, p.Properties); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// buildProperties maps the properties object of a schema in document order.
func (b *builder) buildProperties(n *yaml.Node) ([]*SchemaProperty, error) {
	v := lookup(n, "properties")
	if v == nil {
		return nil, nil
	}
	pairs, err := b.entries(v, "properties")
	if err != nil {
		return nil, err
	}
	b.path.Push("properties")
	defer b.path.Pop()

	out := make([]*SchemaProperty, 0, len(pairs))
	for _, pr := range pairs {
		prop, err := b.buildProperty(pr.key, pr.key, pr.value)
		if err != nil {
			return nil, err
		}
		out = append(out, prop)
	}
	return out, nil
}

// buildEnum carries enum members as their literal text, in document order.
// Members are not checked against the declared type.
func (b *builder) buildEnum(n *yaml.Node) ([]string, error) {
	v := lookup(n, "enum")
	if v == nil {
		return nil, nil
	}
	return b.stringList(v, "enum")
}

// schemaType reads "type", which OpenAPI 3.1 also allows as a list such as
// ["string", "null"]. A "null" member sets nullable.
func (b *builder) schemaType(n *yaml.Node) (string, bool, error) {
	v := lookup(n, "type")
	if v == nil {
		return "", false, nil
	}
	if v.Kind != yaml.SequenceNode {
		s, err := b.scalar(v, "type")
		return s, false, err
	}
	types, err := b.stringList(v, "type")
	if err != nil {
		return "", false, err
	}
	var typ string
	var nullable bool
	for _, t := range types {
		switch {
		case t == "null":
			nullable = true
		case typ == "":
			typ = t
		}
	}
	return typ, nullable, nil
}

// checkRequired verifies every required name matches a declared property.
func (b *builder) checkRequired(required []string, props []*SchemaProperty) error {
	if len(required) == 0 {
		return nil
	}
	names := make(map[string]struct{}, len(props))
	for _, p := range props {
		names[p.Name] = struct{}{}
	}
	for _, r := range required {
		if _, ok := names[r]; !ok {
			return b.fail(oaserrors.InvalidValue, "required", r, "required name matches no property")
		}
	}
	return nil
}

// buildModelSchema maps one entry of components.schemas.
func (b *builder) buildModelSchema(name string, n *yaml.Node) (*ModelSchema, error) {
	p, err := b.buildProperty(name, name, n)
	if err != nil {
		return nil, err
	}
	return &ModelSchema{
		Name:        name,
		Title:       p.Title,
		Type:        p.Type,
		Format:      p.Format,
		Description: p.Description,
		Required:    p.Required,
		Properties:  p.Properties,
		Enum:        p.Enum,
		Items:       p.Items,
		AllOf:       p.AllOf,
		AnyOf:       p.AnyOf,
		View:        p.View,
	}, nil
}
