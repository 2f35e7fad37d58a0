// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

// MinimalDocument is the smallest document the mapper accepts: one path with
// one operation and a single 200 response.
const MinimalDocument = `{
  "openapi": "3.0.0",
  "info": {"title": "T", "description": "d", "version": "1"},
  "paths": {
    "/x": {
      "get": {
        "operationId": "getX",
        "summary": "s",
        "responses": {"200": {"description": "ok", "content": {}}}
      }
    }
  },
  "components": {"schemas": {}, "securitySchemes": {}},
  "tags": []
}`

// NewSimpleDocument returns a minimal document as a generic tree so tests can
// mutate it before marshaling.
func NewSimpleDocument() map[string]any {
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "Test API",
			"version": "1.0.0",
		},
		"paths": map[string]any{
			"/pets": map[string]any{
				"get": map[string]any{
					"operationId": "listPets",
					"responses": map[string]any{
						"200": map[string]any{"description": "ok"},
					},
				},
			},
		},
		"components": map[string]any{},
	}
}

// NewDetailedDocument returns a document exercising parameters, bodies,
// schema references and security schemes.
func NewDetailedDocument() map[string]any {
	doc := NewSimpleDocument()
	doc["paths"] = map[string]any{
		"/pets": map[string]any{
			"get": map[string]any{
				"operationId": "listPets",
				"tags":        []any{"pets"},
				"parameters": []any{
					map[string]any{"name": "limit", "in": "query", "schema": map[string]any{"type": "integer"}},
				},
				"responses": map[string]any{
					"200": map[string]any{
						"description": "pets",
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{
									"type":  "array",
									"items": map[string]any{"$ref": "#/components/schemas/Pet"},
								},
							},
						},
					},
				},
			},
			"post": map[string]any{
				"operationId": "createPet",
				"tags":        []any{"pets"},
				"security":    []any{map[string]any{"oauth": []any{"write:pets"}}},
				"requestBody": map[string]any{
					"required": true,
					"content": map[string]any{
						"application/json": map[string]any{
							"schema": map[string]any{"$ref": "#/components/schemas/Pet"},
						},
					},
				},
				"responses": map[string]any{
					"201": map[string]any{"description": "created"},
				},
			},
		},
		"/pets/{petId}": map[string]any{
			"get": map[string]any{
				"operationId": "showPetById",
				"tags":        []any{"pets"},
				"parameters": []any{
					map[string]any{
						"name":     "petId",
						"in":       "path",
						"required": true,
						"schema":   map[string]any{"title": "petId", "type": "string"},
					},
				},
				"responses": map[string]any{
					"200": map[string]any{"description": "pet"},
					"404": map[string]any{"description": "not found"},
				},
			},
		},
	}
	doc["components"] = map[string]any{
		"schemas": map[string]any{
			"Pet": map[string]any{
				"type":     "object",
				"required": []any{"id", "name"},
				"properties": map[string]any{
					"id":   map[string]any{"type": "integer", "format": "int64"},
					"name": map[string]any{"type": "string"},
				},
			},
		},
		"securitySchemes": map[string]any{
			"oauth": map[string]any{
				"type": "oauth2",
				"flows": map[string]any{
					"password": map[string]any{
						"tokenUrl": "https://example.com/token",
						"scopes":   map[string]any{"write:pets": "modify pets"},
					},
				},
			},
		},
	}
	doc["tags"] = []any{map[string]any{"name": "pets", "description": "Pet operations"}}
	return doc
}

// MarshalJSON encodes a fixture tree, failing the test on error.
// Note that encoding/json sorts map keys, so fixtures built from maps have
// alphabetical key order.
func MarshalJSON(t *testing.T, doc any) []byte {
	t.Helper()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return data
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON writes a document to a temporary JSON file. Strings and byte
// slices are written as is; anything else is marshaled.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	var data []byte
	switch v := doc.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		data = MarshalJSON(t, doc)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
