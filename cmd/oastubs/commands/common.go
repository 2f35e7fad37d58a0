// Package commands provides the CLI command tree for oastubs.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastubs"
	"github.com/erraggy/oastubs/mapper"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// MarshalStructured encodes data as indented JSON or as YAML. YAML is
// produced from the JSON encoding so field names and ordering match.
func MarshalStructured(data any, format string) ([]byte, error) {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling to json: %w", err)
	}
	switch format {
	case FormatJSON:
		return raw, nil
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return nil, fmt.Errorf("marshaling to yaml: %w", err)
		}
		blockStyle(&node)
		out, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("marshaling to yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}
}

// blockStyle clears the flow and quoting styles carried over from JSON.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string) error {
	out, err := MarshalStructured(data, format)
	if err != nil {
		return err
	}
	Writef(w, "%s\n", out)
	return nil
}

// ValidateOutputPath checks that outputPath would not overwrite inputPath.
func ValidateOutputPath(outputPath, inputPath string) error {
	if inputPath == StdinFilePath {
		return nil
	}
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	absInputPath, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("invalid input path %s: %w", inputPath, err)
	}
	if absOutputPath == absInputPath {
		return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
	}
	return RejectSymlinkOutput(filepath.Clean(outputPath))
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// FormatSpecPath returns a display-friendly path for the document.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// OutputSpecHeader writes the tool version, document path and OpenAPI version.
func OutputSpecHeader(w io.Writer, specPath, version string) {
	Writef(w, "oastubs version: %s\n", oastubs.Version())
	Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	Writef(w, "OpenAPI Version: %s\n", version)
}

// OutputSpecStats writes the document statistics.
func OutputSpecStats(w io.Writer, sourceSize int64, stats mapper.DocumentStats, loadTime any) {
	Writef(w, "Source Size: %s\n", FormatBytes(sourceSize))
	Writef(w, "Paths: %d\n", stats.PathCount)
	Writef(w, "Operations: %d\n", stats.OperationCount)
	Writef(w, "Responses: %d\n", stats.ResponseCount)
	Writef(w, "Schemas: %d\n", stats.SchemaCount)
	Writef(w, "Security Schemes: %d\n", stats.SecuritySchemeCount)
	Writef(w, "Load Time: %v\n", loadTime)
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// newLogger returns a debug-level slog logger on w when verbose, or nil.
func newLogger(w io.Writer, verbose bool) mapper.Logger {
	if !verbose {
		return nil
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return mapper.NewSlogAdapter(slog.New(h))
}

// mapSpec maps the document at specPath, reading stdin for "-".
func mapSpec(specPath string, stdin io.Reader, maxDepth int, logger mapper.Logger) (*mapper.MapResult, error) {
	opts := []mapper.Option{mapper.WithLogger(logger), mapper.WithMaxDepth(maxDepth)}
	if specPath == StdinFilePath {
		opts = append(opts, mapper.WithReader(stdin), mapper.WithSourceName("<stdin>"))
	} else {
		opts = append(opts, mapper.WithFilePath(specPath))
	}
	return mapper.MapWithOptions(opts...)
}
