package mapper

import (
	"encoding/json"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastubs/oaserrors"
)

// Schema returns the named component schema.
func (c *Components) Schema(name string) (*ModelSchema, bool) {
	if c == nil || c.Schemas == nil {
		return nil, false
	}
	return c.Schemas.Get(name)
}

// SecurityScheme returns the named security scheme.
func (c *Components) SecurityScheme(name string) (*SecurityScheme, bool) {
	if c == nil || c.SecuritySchemes == nil {
		return nil, false
	}
	return c.SecuritySchemes.Get(name)
}

// Resolve looks up the component schema a reference points at.
// References are stored unresolved while mapping, so a dangling one is only
// reported here.
func (c *Components) Resolve(ref *Reference) (*ModelSchema, error) {
	if ref == nil {
		return nil, &oaserrors.ReferenceError{Message: "nil reference"}
	}
	if ref.Name == "" {
		return nil, &oaserrors.ReferenceError{Ref: ref.Ref, Message: "not a components.schemas reference"}
	}
	s, ok := c.Schema(ref.Name)
	if !ok {
		return nil, &oaserrors.ReferenceError{Ref: ref.Ref, Message: "no schema named " + ref.Name}
	}
	return s, nil
}

// ResolveSchemaRef returns the model a SchemaRef points at. Inline schemas
// resolve to nil without error.
func (c *Components) ResolveSchemaRef(s *SchemaRef) (*ModelSchema, error) {
	if s == nil || s.Reference == nil {
		return nil, nil
	}
	return c.Resolve(s.Reference)
}

// MarshalJSON encodes both registries as arrays so document order survives.
func (c *Components) MarshalJSON() ([]byte, error) {
	out := struct {
		Schemas         []*ModelSchema    `json:"schemas"`
		SecuritySchemes []*SecurityScheme `json:"securitySchemes"`
	}{
		Schemas:         []*ModelSchema{},
		SecuritySchemes: []*SecurityScheme{},
	}
	if c != nil {
		for _, s := range c.Schemas.All() {
			out.Schemas = append(out.Schemas, s)
		}
		for _, s := range c.SecuritySchemes.All() {
			out.SecuritySchemes = append(out.SecuritySchemes, s)
		}
	}
	return json.Marshal(out)
}

// buildComponents maps the components object. Both registries may be absent
// or empty.
func (b *builder) buildComponents(n *yaml.Node) (*Components, error) {
	if _, err := b.entries(n, "components"); err != nil {
		return nil, err
	}
	b.path.Push("components")
	defer b.path.Pop()

	c := newComponents()
	if v := lookup(n, "schemas"); v != nil {
		pairs, err := b.entries(v, "schemas")
		if err != nil {
			return nil, err
		}
		b.path.Push("schemas")
		for _, p := range pairs {
			s, err := b.buildModelSchema(p.key, p.value)
			if err != nil {
				b.path.Pop()
				return nil, err
			}
			c.Schemas.Set(p.key, s)
		}
		b.path.Pop()
	}
	if v := lookup(n, "securitySchemes"); v != nil {
		pairs, err := b.entries(v, "securitySchemes")
		if err != nil {
			return nil, err
		}
		b.path.Push("securitySchemes")
		for _, p := range pairs {
			s, err := b.buildSecurityScheme(p.key, p.value)
			if err != nil {
				b.path.Pop()
				return nil, err
			}
			c.SecuritySchemes.Set(p.key, s)
		}
		b.path.Pop()
	}
	return c, nil
}
