package mapper

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastubs/oaserrors"
)

// DefaultMaxDepth bounds the nesting of inline schemas.
const DefaultMaxDepth = 64

// Mapper converts OpenAPI documents into typed object graphs.
type Mapper struct {
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
	// MaxDepth is the maximum nesting of inline schemas.
	// Default: DefaultMaxDepth
	MaxDepth int
}

// New creates a new Mapper instance with default settings
func New() *Mapper {
	return &Mapper{MaxDepth: DefaultMaxDepth}
}

func (m *Mapper) log() Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return NopLogger{}
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
)

// MapResult contains the mapped document and metadata about its source.
//
// Callers should treat the result as read-only. A result is only returned
// for a complete build; any error leaves it nil.
type MapResult struct {
	// SourcePath is the file the document was read from, or a synthetic name
	// such as "MapBytes.json" for in-memory input
	SourcePath string
	// SourceFormat is the detected input format
	SourceFormat SourceFormat
	// SourceSize is the size of the input in bytes
	SourceSize int64
	// LoadTime is the time taken to read the input
	LoadTime time.Duration
	// Document is the mapped object graph
	Document *Document
	// Stats contains counts over the document
	Stats DocumentStats
}

// Map reads and maps the OpenAPI document at path.
func (m *Mapper) Map(path string) (*MapResult, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	loadTime := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("mapper: failed to read file: %w", err)
	}
	res, err := m.mapBytes(data, path)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// MapReader maps an OpenAPI document read from r.
func (m *Mapper) MapReader(r io.Reader) (*MapResult, error) {
	start := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("mapper: failed to read data: %w", err)
	}
	res, err := m.mapBytes(data, "MapReader")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// MapBytes maps an OpenAPI document held in memory.
func (m *Mapper) MapBytes(data []byte) (*MapResult, error) {
	return m.mapBytes(data, "MapBytes")
}

// mapBytes decodes data into an untyped node tree, then maps the tree.
// Synthetic source names get an extension matching the detected format.
func (m *Mapper) mapBytes(data []byte, source string) (*MapResult, error) {
	format := detectFormat(data)
	if source == "MapBytes" || source == "MapReader" {
		source += "." + string(format)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "failed to decode document", Cause: err}
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return nil, &oaserrors.ParseError{Path: source, Message: "document is empty"}
	}

	doc, err := m.MapNode(&root)
	if err != nil {
		return nil, err
	}
	res := &MapResult{
		SourcePath:   source,
		SourceFormat: format,
		SourceSize:   int64(len(data)),
		Document:     doc,
		Stats:        GetDocumentStats(doc),
	}
	m.log().Info("mapped document",
		"source", source,
		"paths", res.Stats.PathCount,
		"operations", res.Stats.OperationCount,
		"schemas", res.Stats.SchemaCount)
	return res, nil
}

// MapNode maps an already decoded document tree. root may be the document
// node produced by yaml.Unmarshal or the mapping node beneath it.
func (m *Mapper) MapNode(root *yaml.Node) (*Document, error) {
	b := newBuilder(m.log(), m.MaxDepth)
	doc, err := b.buildDocument(root)
	if err != nil {
		m.log().Debug("mapping failed", "error", err)
		return nil, err
	}
	return doc, nil
}

// detectFormat reports JSON when the first non-space byte opens an object or array.
func detectFormat(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
