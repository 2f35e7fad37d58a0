package mapper

import (
	"iter"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Document is the root of a mapped OpenAPI document.
//
// The graph is built in one pass and must be treated as read-only afterwards.
// It is a tree except for schema references, which name an entry in
// Components.Schemas and are resolved on demand through [Components.Resolve].
type Document struct {
	// OpenAPI is the declared specification version, e.g. "3.0.3"
	OpenAPI string `json:"openapi"`
	// Info is the document metadata
	Info Info `json:"info"`
	// Paths holds the path items in document order
	Paths []*PathItem `json:"paths"`
	// Components is the registry of named schemas and security schemes
	Components *Components `json:"components"`
	// Tags holds the declared tags in document order
	Tags []Tag `json:"tags,omitempty"`
	// Security is the document-wide default security requirement list
	Security []SecurityRequirement `json:"security,omitempty"`
}

// Operations yields every operation with its owning path item, in document order.
func (d *Document) Operations() iter.Seq2[*PathItem, *Operation] {
	return func(yield func(*PathItem, *Operation) bool) {
		for _, item := range d.Paths {
			for _, op := range item.Operations {
				if !yield(item, op) {
					return
				}
			}
		}
	}
}

// Operation returns the operation with the given operationId and its path item.
func (d *Document) Operation(operationID string) (*PathItem, *Operation, bool) {
	for item, op := range d.Operations() {
		if op.OperationID == operationID {
			return item, op, true
		}
	}
	return nil, nil, false
}

// Info contains API metadata.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// Tag groups operations for documentation and test organization.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PathItem is a URL template and the operations defined under it.
type PathItem struct {
	// Path is the template, which may contain {param} placeholders
	Path string `json:"path"`
	// Operations holds one entry per HTTP verb, in document order
	Operations []*Operation `json:"operations"`
}

// Operation is one HTTP verb under one path template.
type Operation struct {
	// Method is the lowercase HTTP verb, e.g. "get"
	Method      string                `json:"method"`
	OperationID string                `json:"operationId"`
	Summary     string                `json:"summary,omitempty"`
	Description string                `json:"description,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
	Security    []SecurityRequirement `json:"security,omitempty"`
	RequestBody *RequestBody          `json:"requestBody,omitempty"`
	Parameters  []*Parameter          `json:"parameters,omitempty"`
	// Responses holds one entry per status code, in document order
	Responses []*Response `json:"responses"`
}

// Response returns the response declared for status, if any.
func (o *Operation) Response(status int) (*Response, bool) {
	for _, r := range o.Responses {
		if r.StatusCode == status {
			return r, true
		}
	}
	return nil, false
}

// ParametersIn returns the operation's parameters at the given location, in document order.
func (o *Operation) ParametersIn(loc ParameterLocation) []*Parameter {
	var out []*Parameter
	for _, p := range o.Parameters {
		if p.In == loc {
			out = append(out, p)
		}
	}
	return out
}

// SecurityRequirement is one alternative of a security list: every scheme it
// names must be satisfied together.
type SecurityRequirement struct {
	Schemes []SchemeScopes `json:"schemes"`
}

// SchemeScopes names a security scheme and the scopes an operation needs from it.
type SchemeScopes struct {
	Name   string   `json:"name"`
	Scopes []string `json:"scopes"`
}

// RequestBody describes the body an operation accepts.
type RequestBody struct {
	Description string          `json:"description,omitempty"`
	Required    bool            `json:"required"`
	Content     []*ContentEntry `json:"content"`
}

// Response describes one status code of an operation.
type Response struct {
	StatusCode  int             `json:"statusCode"`
	Description string          `json:"description"`
	Content     []*ContentEntry `json:"content"`
}

// ContentEntry pairs a media type with the schema of that representation.
type ContentEntry struct {
	MediaType string `json:"mediaType"`
	// Schema is nil when the media type declares no schema
	Schema *SchemaRef `json:"schema,omitempty"`
}

// ParameterLocation is where a parameter is carried in the request.
type ParameterLocation string

// Parameter locations.
const (
	ParamInPath   ParameterLocation = "path"
	ParamInQuery  ParameterLocation = "query"
	ParamInHeader ParameterLocation = "header"
	ParamInCookie ParameterLocation = "cookie"
)

// Valid reports whether l is one of the four known locations.
func (l ParameterLocation) Valid() bool {
	switch l {
	case ParamInPath, ParamInQuery, ParamInHeader, ParamInCookie:
		return true
	default:
		return false
	}
}

// Parameter is a single operation parameter.
type Parameter struct {
	Name        string            `json:"name"`
	In          ParameterLocation `json:"in"`
	Required    bool              `json:"required"`
	Description string            `json:"description,omitempty"`
	Schema      *PrimitiveSchema  `json:"schema,omitempty"`
}

// PrimitiveSchema describes a scalar field's declared type.
type PrimitiveSchema struct {
	Title  string `json:"title,omitempty"`
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`
	// Ref is set instead of Type when the schema is a $ref
	Ref string `json:"$ref,omitempty"`
}

// Reference points at a named entry in Components.Schemas.
// It is never dereferenced while mapping.
type Reference struct {
	// Ref is the raw $ref value
	Ref string `json:"$ref"`
	// Name is the schema name when Ref targets #/components/schemas/, else empty
	Name string `json:"name,omitempty"`
}

// SchemaRef is either a Reference or an inline schema, never both.
type SchemaRef struct {
	Reference *Reference      `json:"reference,omitempty"`
	Inline    *SchemaProperty `json:"inline,omitempty"`
}

// IsReference reports whether s points at a named schema.
func (s *SchemaRef) IsReference() bool {
	return s != nil && s.Reference != nil
}

// ModelSchema is a named, reusable data shape from components.schemas.
type ModelSchema struct {
	Name        string            `json:"name"`
	Title       string            `json:"title,omitempty"`
	Type        string            `json:"type,omitempty"`
	Format      string            `json:"format,omitempty"`
	Description string            `json:"description,omitempty"`
	Required    []string          `json:"required,omitempty"`
	Properties  []*SchemaProperty `json:"properties,omitempty"`
	Enum        []string          `json:"enum,omitempty"`
	Items       *SchemaRef        `json:"items,omitempty"`
	AllOf       []SchemaRef       `json:"allOf,omitempty"`
	AnyOf       []SchemaRef       `json:"anyOf,omitempty"`
	// View is set when the whole schema is an alias of another one
	View *Reference `json:"view,omitempty"`
}

// Property returns the named property.
func (m *ModelSchema) Property(name string) (*SchemaProperty, bool) {
	for _, p := range m.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// IsRequired reports whether the named property is listed in Required.
func (m *ModelSchema) IsRequired(name string) bool {
	for _, r := range m.Required {
		if r == name {
			return true
		}
	}
	return false
}

// SchemaProperty is a named field of a schema, or an inline schema when Name is empty.
type SchemaProperty struct {
	Name        string `json:"name,omitempty"`
	Title       string `json:"title,omitempty"`
	Type        string `json:"type,omitempty"`
	Default     any    `json:"default,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
	WriteOnly   bool   `json:"writeOnly,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty"`
	Nullable    bool   `json:"nullable,omitempty"`
	// View is the reference target when the property is a $ref; Type is then empty
	View       *Reference        `json:"view,omitempty"`
	AllOf      []SchemaRef       `json:"allOf,omitempty"`
	AnyOf      []SchemaRef       `json:"anyOf,omitempty"`
	Items      *SchemaRef        `json:"items,omitempty"`
	Properties []*SchemaProperty `json:"properties,omitempty"`
	Required   []string          `json:"required,omitempty"`
	Enum       []string          `json:"enum,omitempty"`
}

// CompositionKind tags how the members of a composition combine.
type CompositionKind string

// Composition kinds.
const (
	CompositionAllOf CompositionKind = "allOf"
	CompositionAnyOf CompositionKind = "anyOf"
)

// Composition returns the composition tag and members, or "" and nil when
// the property is not composed. allOf wins when both are present.
func (p *SchemaProperty) Composition() (CompositionKind, []SchemaRef) {
	switch {
	case len(p.AllOf) > 0:
		return CompositionAllOf, p.AllOf
	case len(p.AnyOf) > 0:
		return CompositionAnyOf, p.AnyOf
	default:
		return "", nil
	}
}

// SecurityScheme is an entry of components.securitySchemes.
type SecurityScheme struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	Description      string `json:"description,omitempty"`
	Scheme           string `json:"scheme,omitempty"`
	BearerFormat     string `json:"bearerFormat,omitempty"`
	In               string `json:"in,omitempty"`
	ParamName        string `json:"paramName,omitempty"`
	OpenIDConnectURL string `json:"openIdConnectUrl,omitempty"`
	// Flows is non-empty when Type is "oauth2"
	Flows []Flow `json:"flows,omitempty"`
}

// Flow is one OAuth2 flow of a security scheme.
type Flow struct {
	// Type is the flow key, e.g. "password" or "authorizationCode"
	Type             string  `json:"type"`
	AuthorizationURL string  `json:"authorizationUrl,omitempty"`
	TokenURL         string  `json:"tokenUrl,omitempty"`
	RefreshURL       string  `json:"refreshUrl,omitempty"`
	Scopes           []Scope `json:"scopes"`
}

// Scope is a named OAuth2 scope.
type Scope struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Components is the document-wide registry of named schemas and security schemes.
// Both maps keep document order.
type Components struct {
	Schemas         *sequencedmap.Map[string, *ModelSchema]
	SecuritySchemes *sequencedmap.Map[string, *SecurityScheme]
}

func newComponents() *Components {
	return &Components{
		Schemas:         sequencedmap.New[string, *ModelSchema](),
		SecuritySchemes: sequencedmap.New[string, *SecurityScheme](),
	}
}
