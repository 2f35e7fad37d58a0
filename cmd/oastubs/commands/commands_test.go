package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastubs/internal/testutil"
	"github.com/erraggy/oastubs/oaserrors"
)

// execute runs the command tree with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestMap_Text(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.NewDetailedDocument())

	stdout, _, err := execute(t, "", "map", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "OpenAPI Version: 3.0.3")
	assert.Contains(t, stdout, "Title: Test API")
	assert.Contains(t, stdout, "Operations: 3")
	assert.Contains(t, stdout, "Responses: 4")
	assert.Contains(t, stdout, "/pets/{petId}  showPetById  [200 404]")
	assert.Contains(t, stdout, "  Pet (object)")
	assert.Less(t, strings.Index(stdout, "listPets"), strings.Index(stdout, "createPet"))
}

func TestMap_JSON(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.MinimalDocument)

	stdout, _, err := execute(t, "", "map", "--format", "json", path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "3.0.0", doc["openapi"])
	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "T", info["title"])
}

func TestMap_YAML(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.MinimalDocument)

	stdout, _, err := execute(t, "", "map", "-f", "yaml", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "openapi: 3.0.0")
	assert.Contains(t, stdout, "operationId: getX")
}

func TestMap_Stdin(t *testing.T) {
	stdout, _, err := execute(t, testutil.MinimalDocument, "map", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Specification: <stdin>")
	assert.Contains(t, stdout, "GET     /x  getX  [200]")
}

func TestMap_OutputFile(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.MinimalDocument)
	out := filepath.Join(t.TempDir(), "nested", "mapped.json")

	_, stderr, err := execute(t, "", "map", "-o", out, path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Mapped document written to")

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestMap_OutputOverwritesInput(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.MinimalDocument)

	_, _, err := execute(t, "", "map", "-o", path, path)
	assert.ErrorContains(t, err, "would overwrite input file")
}

func TestMap_Verbose(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.MinimalDocument)

	_, stderr, err := execute(t, "", "--verbose", "map", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "mapped document")
}

func TestMap_ErrorPaths(t *testing.T) {
	t.Run("no args", func(t *testing.T) {
		_, _, err := execute(t, "", "map")
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, _, err := execute(t, "", "map", "--format", "xml", "api.json")
		assert.ErrorContains(t, err, "invalid format")
	})

	t.Run("non-existent file", func(t *testing.T) {
		_, _, err := execute(t, "", "map", "/nonexistent/path/to/file.yaml")
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "malformed.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"unclosed": `), 0o644))
		_, _, err := execute(t, "", "map", path)
		assert.True(t, errors.Is(err, oaserrors.ErrParse))
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
		_, _, err := execute(t, "", "map", path)
		assert.True(t, errors.Is(err, oaserrors.ErrParse))
	})

	t.Run("schema error names the location", func(t *testing.T) {
		doc := testutil.NewSimpleDocument()
		get := doc["paths"].(map[string]any)["/pets"].(map[string]any)["get"].(map[string]any)
		get["responses"] = map[string]any{"abc": map[string]any{"description": "bad"}}
		path := testutil.WriteTempJSON(t, doc)

		_, _, err := execute(t, "", "map", path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrInvalidStatusCode))
		assert.Contains(t, err.Error(), "paths./pets.get.responses")
	})

	t.Run("max depth", func(t *testing.T) {
		path := testutil.WriteTempJSON(t, testutil.NewDetailedDocument())
		_, _, err := execute(t, "", "map", "--max-depth", "1", path)
		assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))
	})
}

func TestStubs_Stdout(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.NewDetailedDocument())

	stdout, _, err := execute(t, "", "stubs", "--package", "petstore_test", path)
	require.NoError(t, err)

	file, err := parser.ParseFile(token.NewFileSet(), "petstore_test.go", stdout, 0)
	require.NoError(t, err, "generated source must parse")
	assert.Equal(t, "petstore_test", file.Name.Name)
	assert.Contains(t, stdout, "func TestListPets(t *testing.T)")
	assert.Contains(t, stdout, "func TestCreatePet(t *testing.T)")
	assert.Contains(t, stdout, "func TestShowPetById(t *testing.T)")
}

func TestStubs_OutputDirectory(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.NewDetailedDocument())
	dir := t.TempDir()

	stdout, stderr, err := execute(t, "", "stubs", "-o", dir, path)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Generated 3 tests")

	data, err := os.ReadFile(filepath.Join(dir, "test_api_test.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package api_test")
}

func TestStubs_Plan(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.NewDetailedDocument())

	stdout, _, err := execute(t, "", "stubs", "--plan", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, []string{
		"TestListPets  GET /pets  [200]",
		"TestCreatePet  POST /pets  [201]",
		"TestShowPetById  GET /pets/{petId}  [200 404]",
	}, lines)
}

func TestStubs_Options(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.MinimalDocument)

	stdout, _, err := execute(t, "", "stubs",
		"--base-url-var", "server",
		"--base-url-env", "SERVER_URL",
		"--default-base-url", "http://127.0.0.1:3000",
		"--client-var", "httpClient",
		path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "var server = func() string")
	assert.Contains(t, stdout, `os.Getenv("SERVER_URL")`)
	assert.Contains(t, stdout, `"http://127.0.0.1:3000"`)
	assert.Contains(t, stdout, "httpClient.Do(req)")
}

func TestStubs_ErrorPaths(t *testing.T) {
	t.Run("invalid package", func(t *testing.T) {
		path := testutil.WriteTempJSON(t, testutil.MinimalDocument)
		_, _, err := execute(t, "", "stubs", "--package", "not-valid", path)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})

	t.Run("same variable names", func(t *testing.T) {
		path := testutil.WriteTempJSON(t, testutil.MinimalDocument)
		_, _, err := execute(t, "", "stubs", "--base-url-var", "c", "--client-var", "c", path)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})

	t.Run("colliding test names", func(t *testing.T) {
		doc := testutil.NewSimpleDocument()
		doc["paths"].(map[string]any)["/pets-2"] = map[string]any{
			"get": map[string]any{
				"operationId": "list-pets",
				"responses":   map[string]any{"200": map[string]any{"description": "ok"}},
			},
		}
		path := testutil.WriteTempJSON(t, doc)
		_, _, err := execute(t, "", "stubs", path)
		assert.True(t, errors.Is(err, oaserrors.ErrDuplicateIdentifier))
	})
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Version: dev")
	assert.Contains(t, stdout, "Go Version:")
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := execute(t, "", "stubz")
	assert.Error(t, err)
}
