package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erraggy/oastubs/internal/fileutil"
	"github.com/erraggy/oastubs/mapper"
)

// MapFlags contains flags for the map command
type MapFlags struct {
	Format   string
	Output   string
	MaxDepth int
}

func newMapCommand(root *RootFlags) *cobra.Command {
	flags := &MapFlags{}
	cmd := &cobra.Command{
		Use:   "map [flags] <file|->",
		Short: "Map an OpenAPI document and print its structure",
		Long: `Map an OpenAPI 3.x document into its typed object graph.

The text format prints a summary with one line per operation. The json and
yaml formats print the whole graph with document order preserved. Mapping
errors name the offending location, e.g. paths./pets.get.responses.abc.`,
		Example: `  oastubs map openapi.json
  oastubs map --format json openapi.yaml
  oastubs map -o mapped.json openapi.yaml
  cat openapi.yaml | oastubs map -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(cmd, root, flags, args[0])
		},
	}
	cmd.Flags().StringVarP(&flags.Format, "format", "f", FormatText, "output format: text, json, or yaml")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "write the mapped graph as JSON to this file")
	cmd.Flags().IntVar(&flags.MaxDepth, "max-depth", mapper.DefaultMaxDepth, "maximum nesting of inline schemas")
	return cmd
}

func runMap(cmd *cobra.Command, root *RootFlags, flags *MapFlags, specPath string) error {
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, specPath); err != nil {
			return err
		}
	}

	result, err := mapSpec(specPath, cmd.InOrStdin(), flags.MaxDepth, newLogger(cmd.ErrOrStderr(), root.Verbose))
	if err != nil {
		return fmt.Errorf("mapping %s: %w", FormatSpecPath(specPath), err)
	}

	if flags.Output != "" {
		data, err := MarshalStructured(result.Document, FormatJSON)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(flags.Output), 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(flags.Output, data, fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		Writef(cmd.ErrOrStderr(), "Mapped document written to %s\n", flags.Output)
	}

	out := cmd.OutOrStdout()
	if flags.Format != FormatText {
		return OutputStructured(out, result.Document, flags.Format)
	}

	doc := result.Document
	OutputSpecHeader(out, specPath, doc.OpenAPI)
	Writef(out, "Title: %s\n", doc.Info.Title)
	Writef(out, "Version: %s\n", doc.Info.Version)
	OutputSpecStats(out, result.SourceSize, result.Stats, result.LoadTime)

	if result.Stats.OperationCount > 0 {
		Writef(out, "\nOperations:\n")
		for item, op := range doc.Operations() {
			Writef(out, "  %-7s %s  %s  [%s]\n", strings.ToUpper(op.Method), item.Path, op.OperationID, statusList(op))
		}
	}
	if n := doc.Components.Schemas.Len(); n > 0 {
		Writef(out, "\nSchemas:\n")
		for name, s := range doc.Components.Schemas.All() {
			if s.Type != "" {
				Writef(out, "  %s (%s)\n", name, s.Type)
			} else {
				Writef(out, "  %s\n", name)
			}
		}
	}
	return nil
}

func statusList(op *mapper.Operation) string {
	codes := make([]string, 0, len(op.Responses))
	for _, r := range op.Responses {
		codes = append(codes, strconv.Itoa(r.StatusCode))
	}
	return strings.Join(codes, " ")
}
