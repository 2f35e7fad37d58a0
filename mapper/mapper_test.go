package mapper

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastubs/internal/testutil"
	"github.com/erraggy/oastubs/oaserrors"
)

// mapString maps a JSON or YAML literal with default settings.
func mapString(t *testing.T, src string) (*MapResult, error) {
	t.Helper()
	return New().MapBytes([]byte(src))
}

// schemaError asserts err is a SchemaError of the given kind and returns it.
func schemaError(t *testing.T, err error, kind oaserrors.Kind) *oaserrors.SchemaError {
	t.Helper()
	require.Error(t, err)
	var se *oaserrors.SchemaError
	require.True(t, errors.As(err, &se), "expected *SchemaError, got %T: %v", err, err)
	assert.Equal(t, kind, se.Kind, "unexpected kind: %v", err)
	return se
}

// withPaths wraps a paths object literal in an otherwise minimal document.
func withPaths(paths string) string {
	return `{"openapi":"3.0.0","info":{"title":"T","version":"1"},"paths":` + paths + `,"components":{}}`
}

// withSchemas wraps a components.schemas literal in an otherwise minimal document.
func withSchemas(schemas string) string {
	return `{"openapi":"3.0.0","info":{"title":"T","version":"1"},` +
		`"paths":{"/x":{"get":{"operationId":"getX","responses":{"200":{"description":"ok"}}}}},` +
		`"components":{"schemas":` + schemas + `}}`
}

func TestMapMinimalDocument(t *testing.T) {
	result, err := mapString(t, testutil.MinimalDocument)
	require.NoError(t, err)
	require.NotNil(t, result)

	doc := result.Document
	assert.Equal(t, "3.0.0", doc.OpenAPI)
	assert.Equal(t, Info{Title: "T", Description: "d", Version: "1"}, doc.Info)

	require.Len(t, doc.Paths, 1)
	assert.Equal(t, "/x", doc.Paths[0].Path)
	require.Len(t, doc.Paths[0].Operations, 1)

	op := doc.Paths[0].Operations[0]
	assert.Equal(t, MethodGet, op.Method)
	assert.Equal(t, "getX", op.OperationID)
	assert.Equal(t, "s", op.Summary)
	assert.Nil(t, op.RequestBody)
	assert.Empty(t, op.Parameters)

	require.Len(t, op.Responses, 1)
	assert.Equal(t, 200, op.Responses[0].StatusCode)
	assert.Equal(t, "ok", op.Responses[0].Description)
	assert.NotNil(t, op.Responses[0].Content)
	assert.Empty(t, op.Responses[0].Content)

	assert.Empty(t, doc.Tags)
	assert.Equal(t, 0, doc.Components.Schemas.Len())
	assert.Equal(t, 0, doc.Components.SecuritySchemes.Len())

	assert.Equal(t, "MapBytes.json", result.SourcePath)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, int64(len(testutil.MinimalDocument)), result.SourceSize)
	assert.Equal(t, DocumentStats{PathCount: 1, OperationCount: 1, ResponseCount: 1}, result.Stats)
}

func TestMapPreservesDocumentOrder(t *testing.T) {
	src := withPaths(`{
		"/zebra": {
			"post": {"operationId": "createZebra", "responses": {"201": {}, "400": {}}},
			"get": {"operationId": "listZebras", "responses": {"200": {}}}
		},
		"/apple": {"delete": {"operationId": "deleteApple", "responses": {"204": {}}}},
		"/mango": {
			"put": {"operationId": "putMango", "responses": {"500": {}, "200": {}}},
			"get": {"operationId": "getMango", "responses": {"200": {}}},
			"patch": {"operationId": "patchMango", "responses": {"200": {}}}
		}
	}`)

	result, err := mapString(t, src)
	require.NoError(t, err)

	var paths []string
	var ids []string
	for item, op := range result.Document.Operations() {
		if len(paths) == 0 || paths[len(paths)-1] != item.Path {
			paths = append(paths, item.Path)
		}
		ids = append(ids, op.OperationID)
	}
	assert.Equal(t, []string{"/zebra", "/apple", "/mango"}, paths)
	assert.Equal(t, []string{"createZebra", "listZebras", "deleteApple", "putMango", "getMango", "patchMango"}, ids)

	counts := make([]int, 0, len(result.Document.Paths))
	for _, item := range result.Document.Paths {
		counts = append(counts, len(item.Operations))
	}
	assert.Equal(t, []int{2, 1, 3}, counts)

	_, create, ok := result.Document.Operation("createZebra")
	require.True(t, ok)
	require.Len(t, create.Responses, 2)
	assert.Equal(t, 201, create.Responses[0].StatusCode)
	assert.Equal(t, 400, create.Responses[1].StatusCode)

	_, put, ok := result.Document.Operation("putMango")
	require.True(t, ok)
	assert.Equal(t, 500, put.Responses[0].StatusCode)
	assert.Equal(t, 200, put.Responses[1].StatusCode)

	assert.Equal(t, 6, result.Stats.OperationCount)
	assert.Equal(t, 8, result.Stats.ResponseCount)
}

func TestMapMissingTopLevelKeys(t *testing.T) {
	for _, key := range requiredTopLevel {
		t.Run(key, func(t *testing.T) {
			doc := testutil.NewSimpleDocument()
			delete(doc, key)

			result, err := New().MapBytes(testutil.MarshalJSON(t, doc))
			assert.Nil(t, result)
			se := schemaError(t, err, oaserrors.MissingField)
			assert.Empty(t, se.Path)
			assert.Equal(t, key, se.Field)
			assert.True(t, errors.Is(err, oaserrors.ErrMissingField))
			assert.True(t, errors.Is(err, oaserrors.ErrSchema))
		})
	}
}

func TestMapTypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		path  string
		field string
	}{
		{
			name:  "paths not a mapping",
			src:   withPaths(`["/x"]`),
			field: "paths",
		},
		{
			name:  "paths null",
			src:   withPaths(`null`),
			field: "paths",
		},
		{
			name:  "operation not a mapping",
			src:   withPaths(`{"/x": {"get": "nope"}}`),
			path:  "paths./x",
			field: "get",
		},
		{
			name:  "responses not a mapping",
			src:   withPaths(`{"/x": {"get": {"operationId": "a", "responses": []}}}`),
			path:  "paths./x.get",
			field: "responses",
		},
		{
			name:  "parameters not a sequence",
			src:   withPaths(`{"/x": {"get": {"operationId": "a", "parameters": {}, "responses": {"200": {}}}}}`),
			path:  "paths./x.get",
			field: "parameters",
		},
		{
			name:  "required not a boolean",
			src:   withPaths(`{"/x": {"get": {"operationId": "a", "parameters": [{"name": "q", "in": "query", "required": "maybe"}], "responses": {"200": {}}}}}`),
			path:  "paths./x.get.parameters[0]",
			field: "required",
		},
		{
			name:  "operationId not a scalar",
			src:   withPaths(`{"/x": {"get": {"operationId": ["a"], "responses": {"200": {}}}}}`),
			path:  "paths./x.get",
			field: "operationId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapString(t, tt.src)
			se := schemaError(t, err, oaserrors.TypeMismatch)
			assert.Equal(t, tt.path, se.Path)
			assert.Equal(t, tt.field, se.Field)
		})
	}
}

func TestMapRootNotMapping(t *testing.T) {
	_, err := mapString(t, `["openapi"]`)
	schemaError(t, err, oaserrors.TypeMismatch)
}

func TestMapParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"whitespace", "  \n\t"},
		{"malformed JSON", `{"openapi": "3.0.0",`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := mapString(t, tt.src)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrParse), "got %v", err)
		})
	}
}

func TestMapInfo(t *testing.T) {
	t.Run("title required", func(t *testing.T) {
		_, err := mapString(t, `{"openapi":"3.0.0","info":{"version":"1"},"paths":{},"components":{}}`)
		se := schemaError(t, err, oaserrors.MissingField)
		assert.Equal(t, "info", se.Path)
		assert.Equal(t, "title", se.Field)
	})

	t.Run("empty openapi version", func(t *testing.T) {
		_, err := mapString(t, `{"openapi":"","info":{"title":"T","version":"1"},"paths":{},"components":{}}`)
		se := schemaError(t, err, oaserrors.InvalidValue)
		assert.Equal(t, "openapi", se.Field)
	})
}

func TestMapEmptyPaths(t *testing.T) {
	result, err := mapString(t, withPaths(`{}`))
	require.NoError(t, err)
	assert.Empty(t, result.Document.Paths)
	assert.Equal(t, 0, result.Stats.OperationCount)
}

func TestMapPathItemWithoutOperations(t *testing.T) {
	_, err := mapString(t, withPaths(`{"/x": {"summary": "nothing here"}}`))
	se := schemaError(t, err, oaserrors.MissingField)
	assert.Equal(t, "paths./x", se.Path)
}

func TestMapIgnoresUnknownKeys(t *testing.T) {
	src := `{
		"openapi": "3.0.0",
		"x-vendor": {"anything": [1, 2, 3]},
		"servers": [{"url": "https://example.com"}],
		"info": {"title": "T", "version": "1", "contact": {"name": "me"}},
		"paths": {
			"/x": {
				"summary": "path summary",
				"parameters": [{"name": "shared", "in": "query"}],
				"get": {
					"operationId": "getX",
					"deprecated": true,
					"x-internal": true,
					"responses": {"200": {"description": "ok", "headers": {"X-Rate": {}}}}
				}
			}
		},
		"components": {"schemas": {}, "responses": {"NotFound": {}}}
	}`
	result, err := mapString(t, src)
	require.NoError(t, err)
	require.Len(t, result.Document.Paths, 1)
	assert.Len(t, result.Document.Paths[0].Operations, 1)
}

func TestMapDuplicateOperationID(t *testing.T) {
	src := withPaths(`{
		"/a": {"get": {"operationId": "dup", "responses": {"200": {}}}},
		"/b": {"get": {"operationId": "dup", "responses": {"200": {}}}}
	}`)

	result, err := mapString(t, src)
	assert.Nil(t, result)
	se := schemaError(t, err, oaserrors.DuplicateIdentifier)
	assert.Equal(t, "paths./b.get", se.Path)
	assert.Equal(t, "operationId", se.Field)
	assert.Equal(t, "dup", se.Value)
	assert.Contains(t, se.Message, "paths./a.get")
	assert.True(t, errors.Is(err, oaserrors.ErrDuplicateIdentifier))
}

func TestMapMissingOperationID(t *testing.T) {
	_, err := mapString(t, withPaths(`{"/a": {"get": {"responses": {"200": {}}}}}`))
	se := schemaError(t, err, oaserrors.MissingField)
	assert.Equal(t, "paths./a.get", se.Path)
	assert.Equal(t, "operationId", se.Field)
}

func TestMapStatusCodes(t *testing.T) {
	t.Run("non-numeric key", func(t *testing.T) {
		_, err := mapString(t, withPaths(`{"/x": {"get": {"operationId": "a", "responses": {"abc": {}}}}}`))
		se := schemaError(t, err, oaserrors.InvalidStatusCode)
		assert.Equal(t, "paths./x.get.responses", se.Path)
		assert.Equal(t, "abc", se.Field)
		assert.Equal(t, "abc", se.Value)
		assert.True(t, errors.Is(err, oaserrors.ErrInvalidStatusCode))
	})

	for _, key := range []string{"default", "2XX", "99", "600", "0200", "+200", " 200"} {
		t.Run("rejects "+key, func(t *testing.T) {
			src := withPaths(`{"/x": {"get": {"operationId": "a", "responses": {"` + key + `": {}}}}}`)
			_, err := mapString(t, src)
			schemaError(t, err, oaserrors.InvalidStatusCode)
		})
	}

	t.Run("204 without content", func(t *testing.T) {
		result, err := mapString(t, withPaths(`{"/x": {"delete": {"operationId": "del", "responses": {"204": {"description": "gone"}}}}}`))
		require.NoError(t, err)

		_, op, ok := result.Document.Operation("del")
		require.True(t, ok)
		resp, ok := op.Response(204)
		require.True(t, ok)
		assert.Equal(t, 204, resp.StatusCode)
		assert.NotNil(t, resp.Content)
		assert.Empty(t, resp.Content)
	})

	t.Run("empty responses", func(t *testing.T) {
		_, err := mapString(t, withPaths(`{"/x": {"get": {"operationId": "a", "responses": {}}}}`))
		schemaError(t, err, oaserrors.MissingField)
	})

	t.Run("responses missing", func(t *testing.T) {
		_, err := mapString(t, withPaths(`{"/x": {"get": {"operationId": "a"}}}`))
		se := schemaError(t, err, oaserrors.MissingField)
		assert.Equal(t, "responses", se.Field)
	})
}

func TestParseStatusCode(t *testing.T) {
	tests := []struct {
		key  string
		code int
		ok   bool
	}{
		{"100", 100, true},
		{"200", 200, true},
		{"599", 599, true},
		{"99", 0, false},
		{"600", 0, false},
		{"-200", 0, false},
		{"2XX", 0, false},
		{"default", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		code, ok := ParseStatusCode(tt.key)
		assert.Equal(t, tt.ok, ok, "key %q", tt.key)
		assert.Equal(t, tt.code, code, "key %q", tt.key)
	}
}

func TestMapContent(t *testing.T) {
	src := withPaths(`{"/pets": {"post": {
		"operationId": "createPet",
		"requestBody": {
			"required": true,
			"description": "the pet",
			"content": {
				"application/json": {"schema": {"$ref": "#/components/schemas/Pet"}},
				"application/xml": {"schema": {"type": "object", "properties": {"name": {"type": "string"}}}},
				"text/plain": {}
			}
		},
		"responses": {"201": {"description": "created", "content": {"application/json": null}}}
	}}}`)

	result, err := mapString(t, src)
	require.NoError(t, err)

	_, op, ok := result.Document.Operation("createPet")
	require.True(t, ok)
	require.NotNil(t, op.RequestBody)
	assert.True(t, op.RequestBody.Required)
	assert.Equal(t, "the pet", op.RequestBody.Description)

	content := op.RequestBody.Content
	require.Len(t, content, 3)
	assert.Equal(t, "application/json", content[0].MediaType)
	require.True(t, content[0].Schema.IsReference())
	assert.Equal(t, "Pet", content[0].Schema.Reference.Name)
	assert.Equal(t, "#/components/schemas/Pet", content[0].Schema.Reference.Ref)

	assert.Equal(t, "application/xml", content[1].MediaType)
	require.NotNil(t, content[1].Schema)
	assert.False(t, content[1].Schema.IsReference())
	require.NotNil(t, content[1].Schema.Inline)
	assert.Equal(t, "object", content[1].Schema.Inline.Type)
	require.Len(t, content[1].Schema.Inline.Properties, 1)

	assert.Equal(t, "text/plain", content[2].MediaType)
	assert.Nil(t, content[2].Schema)

	resp, ok := op.Response(201)
	require.True(t, ok)
	require.Len(t, resp.Content, 1)
	assert.Nil(t, resp.Content[0].Schema)
}

func TestMapRequestBodyWithoutContent(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := mapString(t, withPaths(`{"/x": {"post": {"operationId": "a", "requestBody": {"required": true}, "responses": {"200": {}}}}}`))
		se := schemaError(t, err, oaserrors.MissingField)
		assert.Equal(t, "paths./x.post.requestBody", se.Path)
		assert.Equal(t, "content", se.Field)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := mapString(t, withPaths(`{"/x": {"post": {"operationId": "a", "requestBody": {"content": {}}, "responses": {"200": {}}}}}`))
		schemaError(t, err, oaserrors.InvalidValue)
	})
}

func TestMapSecurityRequirements(t *testing.T) {
	src := `{
		"openapi": "3.0.0",
		"info": {"title": "T", "version": "1"},
		"security": [{"apiKey": []}],
		"paths": {"/x": {"get": {
			"operationId": "getX",
			"security": [{"oauth": ["read", "write"], "apiKey": []}, {"basic": null}],
			"responses": {"200": {}}
		}}},
		"components": {}
	}`
	result, err := mapString(t, src)
	require.NoError(t, err)

	require.Len(t, result.Document.Security, 1)
	assert.Equal(t, "apiKey", result.Document.Security[0].Schemes[0].Name)

	_, op, ok := result.Document.Operation("getX")
	require.True(t, ok)
	require.Len(t, op.Security, 2)
	assert.Equal(t, []SchemeScopes{
		{Name: "oauth", Scopes: []string{"read", "write"}},
		{Name: "apiKey", Scopes: []string{}},
	}, op.Security[0].Schemes)
	assert.Equal(t, []SchemeScopes{{Name: "basic", Scopes: []string{}}}, op.Security[1].Schemes)
}

func TestMapTags(t *testing.T) {
	base := `{"openapi":"3.0.0","info":{"title":"T","version":"1"},"paths":{},"components":{},"tags":`

	t.Run("in order", func(t *testing.T) {
		result, err := mapString(t, base+`[{"name":"b","description":"bee"},{"name":"a"}]}`)
		require.NoError(t, err)
		assert.Equal(t, []Tag{{Name: "b", Description: "bee"}, {Name: "a"}}, result.Document.Tags)
		assert.Equal(t, 2, result.Stats.TagCount)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := mapString(t, base+`[{"name":"pets"},{"name":"users"},{"name":"pets"}]}`)
		se := schemaError(t, err, oaserrors.DuplicateIdentifier)
		assert.Equal(t, "tags[2]", se.Path)
		assert.Equal(t, "name", se.Field)
		assert.Equal(t, "pets", se.Value)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := mapString(t, base+`[{"description":"nameless"}]}`)
		se := schemaError(t, err, oaserrors.MissingField)
		assert.Equal(t, "tags[0]", se.Path)
	})
}

func TestMapYAML(t *testing.T) {
	src := `
openapi: 3.0.3
info:
  title: YAML API
  version: "2"
paths:
  /b:
    get:
      operationId: getB
      responses:
        "200":
          description: ok
  /a:
    post:
      operationId: postA
      responses:
        201:
          description: created
components:
  schemas:
    Base: &base
      type: object
      properties:
        id: {type: integer}
    Copy: *base
`
	result, err := mapString(t, src)
	require.NoError(t, err)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, "MapBytes.yaml", result.SourcePath)

	doc := result.Document
	require.Len(t, doc.Paths, 2)
	assert.Equal(t, "/b", doc.Paths[0].Path)
	assert.Equal(t, "/a", doc.Paths[1].Path)
	assert.Equal(t, 201, doc.Paths[1].Operations[0].Responses[0].StatusCode)

	copied, ok := doc.Components.Schema("Copy")
	require.True(t, ok)
	assert.Equal(t, "Copy", copied.Name)
	require.Len(t, copied.Properties, 1)
	assert.Equal(t, "id", copied.Properties[0].Name)
}

func TestMapDuplicateKeys(t *testing.T) {
	src := `
openapi: 3.0.3
info: {title: T, version: "1"}
paths: {}
components:
  schemas:
    Pet: {type: object}
    Pet: {type: string}
`
	_, err := mapString(t, src)
	se := schemaError(t, err, oaserrors.DuplicateIdentifier)
	assert.Equal(t, "components", se.Path)
	assert.Equal(t, "schemas", se.Field)
	assert.Equal(t, "Pet", se.Value)
}

func TestMapNode(t *testing.T) {
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(testutil.MinimalDocument), &root))

	t.Run("document node", func(t *testing.T) {
		doc, err := New().MapNode(&root)
		require.NoError(t, err)
		assert.Len(t, doc.Paths, 1)
	})

	t.Run("mapping node", func(t *testing.T) {
		require.NotEmpty(t, root.Content)
		doc, err := New().MapNode(root.Content[0])
		require.NoError(t, err)
		assert.Equal(t, "getX", doc.Paths[0].Operations[0].OperationID)
	})

	t.Run("nil", func(t *testing.T) {
		_, err := New().MapNode(nil)
		schemaError(t, err, oaserrors.TypeMismatch)
	})
}

func TestMapFile(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.NewDetailedDocument())

	result, err := New().Map(path)
	require.NoError(t, err)
	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, DocumentStats{
		PathCount:           2,
		OperationCount:      3,
		ResponseCount:       4,
		SchemaCount:         1,
		SecuritySchemeCount: 1,
		TagCount:            1,
	}, result.Stats)

	t.Run("missing file", func(t *testing.T) {
		_, err := New().Map(path + ".missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")
	})
}

func TestMapReader(t *testing.T) {
	result, err := New().MapReader(strings.NewReader(testutil.MinimalDocument))
	require.NoError(t, err)
	assert.Equal(t, "MapReader.json", result.SourcePath)
	assert.Len(t, result.Document.Paths, 1)
}

func TestDocumentJSON(t *testing.T) {
	result, err := New().MapBytes(testutil.MarshalJSON(t, testutil.NewDetailedDocument()))
	require.NoError(t, err)

	data, err := json.Marshal(result.Document)
	require.NoError(t, err)

	var decoded struct {
		Components struct {
			Schemas []struct {
				Name string `json:"name"`
			} `json:"schemas"`
			SecuritySchemes []struct {
				Name string `json:"name"`
				Type string `json:"type"`
			} `json:"securitySchemes"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Components.Schemas, 1)
	assert.Equal(t, "Pet", decoded.Components.Schemas[0].Name)
	require.Len(t, decoded.Components.SecuritySchemes, 1)
	assert.Equal(t, "oauth2", decoded.Components.SecuritySchemes[0].Type)
}

func TestGetDocumentStatsNil(t *testing.T) {
	assert.Equal(t, DocumentStats{}, GetDocumentStats(nil))
}

// recordingLogger captures log messages for assertions.
type recordingLogger struct {
	buf *bytes.Buffer
}

func (r recordingLogger) record(level, msg string) { r.buf.WriteString(level + " " + msg + "\n") }

func (r recordingLogger) Debug(msg string, _ ...any) { r.record("DEBUG", msg) }
func (r recordingLogger) Info(msg string, _ ...any)  { r.record("INFO", msg) }
func (r recordingLogger) Warn(msg string, _ ...any)  { r.record("WARN", msg) }
func (r recordingLogger) Error(msg string, _ ...any) { r.record("ERROR", msg) }
func (r recordingLogger) With(_ ...any) Logger       { return r }

func TestMapperLogging(t *testing.T) {
	log := recordingLogger{buf: &bytes.Buffer{}}
	m := &Mapper{Logger: log}

	_, err := m.MapBytes([]byte(withPaths(`{"/x": {"servers": [], "get": {"operationId": "a", "responses": {"200": {}}}}}`)))
	require.NoError(t, err)

	out := log.buf.String()
	assert.Contains(t, out, "DEBUG ignoring path item key")
	assert.Contains(t, out, "DEBUG built components")
	assert.Contains(t, out, "INFO mapped document")
}
