package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mapInput struct {
	Spec specInput `json:"spec"           jsonschema:"The OpenAPI document to map"`
	Full bool      `json:"full,omitempty" jsonschema:"Return the full mapped document as JSON instead of a summary"`
}

type mapOutput struct {
	OpenAPI             string   `json:"openapi"`
	Title               string   `json:"title"`
	Description         string   `json:"description,omitempty"`
	Version             string   `json:"version"`
	Format              string   `json:"format"`
	PathCount           int      `json:"path_count"`
	OperationCount      int      `json:"operation_count"`
	ResponseCount       int      `json:"response_count"`
	SchemaCount         int      `json:"schema_count"`
	SecuritySchemeCount int      `json:"security_scheme_count"`
	Tags                []string `json:"tags,omitempty"`
	FullDocument        string   `json:"full_document,omitempty"`
}

func handleMap(_ context.Context, _ *mcp.CallToolRequest, input mapInput) (*mcp.CallToolResult, mapOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), mapOutput{}, nil
	}

	doc := result.Document
	output := mapOutput{
		OpenAPI:             doc.OpenAPI,
		Title:               doc.Info.Title,
		Description:         doc.Info.Description,
		Version:             doc.Info.Version,
		Format:              string(result.SourceFormat),
		PathCount:           result.Stats.PathCount,
		OperationCount:      result.Stats.OperationCount,
		ResponseCount:       result.Stats.ResponseCount,
		SchemaCount:         result.Stats.SchemaCount,
		SecuritySchemeCount: result.Stats.SecuritySchemeCount,
		Tags:                makeSlice[string](len(doc.Tags)),
	}
	for _, tag := range doc.Tags {
		output.Tags = append(output.Tags, tag.Name)
	}

	if input.Full {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return errResult(err), mapOutput{}, nil
		}
		output.FullDocument = string(data)
	}

	return nil, output, nil
}
