package mcpserver

import (
	"context"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oastubs/mapper"
)

type walkSchemasInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The OpenAPI document to walk"`
	Name    string    `json:"name,omitempty"     jsonschema:"Filter by schema name (exact match\\, or glob with * and ?)"`
	Type    string    `json:"type,omitempty"     jsonschema:"Filter by schema type (object\\, array\\, string\\, integer\\, etc.)"`
	Detail  bool      `json:"detail,omitempty"   jsonschema:"Return full schema objects instead of summaries"`
	GroupBy string    `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of individual items. Values: type"`
	Limit   int       `json:"limit,omitempty"    jsonschema:"Maximum results (default 100)"`
	Offset  int       `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
}

type schemaSummary struct {
	Name          string   `json:"name"`
	Type          string   `json:"type,omitempty"`
	PropertyCount int      `json:"property_count"`
	Required      []string `json:"required,omitempty"`
	References    []string `json:"references,omitempty"`
}

type walkSchemasOutput struct {
	Total     int                   `json:"total"`
	Matched   int                   `json:"matched"`
	Returned  int                   `json:"returned"`
	Summaries []schemaSummary       `json:"summaries,omitempty"`
	Schemas   []*mapper.ModelSchema `json:"schemas,omitempty"`
	Groups    []groupCount          `json:"groups,omitempty"`
}

func handleWalkSchemas(_ context.Context, _ *mcp.CallToolRequest, input walkSchemasInput) (*mcp.CallToolResult, any, error) {
	if err := validateGroupBy(input.GroupBy, input.Detail, []string{"type"}); err != nil {
		return errResult(err), nil, nil
	}
	if err := validateGlobPattern(input.Name); err != nil {
		return errResult(err), nil, nil
	}

	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}

	schemas := result.Document.Components.Schemas
	var matched []*mapper.ModelSchema
	for name, s := range schemas.All() {
		if !matchGlobName(name, input.Name) {
			continue
		}
		if input.Type != "" && s.Type != input.Type {
			continue
		}
		matched = append(matched, s)
	}

	output := walkSchemasOutput{
		Total:   schemas.Len(),
		Matched: len(matched),
	}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, func(s *mapper.ModelSchema) []string {
			if s.Type == "" {
				return []string{"(untyped)"}
			}
			return []string{s.Type}
		})
		output.Returned = len(output.Groups)
		return nil, output, nil
	}

	returned := paginate(matched, input.Offset, input.Limit)
	output.Returned = len(returned)
	if input.Detail {
		output.Schemas = returned
		return nil, output, nil
	}

	output.Summaries = makeSlice[schemaSummary](len(returned))
	for _, s := range returned {
		output.Summaries = append(output.Summaries, schemaSummary{
			Name:          s.Name,
			Type:          s.Type,
			PropertyCount: len(s.Properties),
			Required:      s.Required,
			References:    schemaReferences(s),
		})
	}
	return nil, output, nil
}

// schemaReferences lists the component schemas s refers to, in first-seen
// order, looking through inline properties and compositions.
func schemaReferences(s *mapper.ModelSchema) []string {
	var names []string
	add := func(ref *mapper.Reference) {
		if ref != nil && ref.Name != "" && !slices.Contains(names, ref.Name) {
			names = append(names, ref.Name)
		}
	}

	var visitRef func(r *mapper.SchemaRef)
	var visitProp func(p *mapper.SchemaProperty)
	visitRef = func(r *mapper.SchemaRef) {
		if r == nil {
			return
		}
		add(r.Reference)
		visitProp(r.Inline)
	}
	visitProp = func(p *mapper.SchemaProperty) {
		if p == nil {
			return
		}
		add(p.View)
		for i := range p.AllOf {
			visitRef(&p.AllOf[i])
		}
		for i := range p.AnyOf {
			visitRef(&p.AnyOf[i])
		}
		visitRef(p.Items)
		for _, child := range p.Properties {
			visitProp(child)
		}
	}

	add(s.View)
	for _, p := range s.Properties {
		visitProp(p)
	}
	visitRef(s.Items)
	for i := range s.AllOf {
		visitRef(&s.AllOf[i])
	}
	for i := range s.AnyOf {
		visitRef(&s.AnyOf[i])
	}
	return names
}
