package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erraggy/oastubs/mapper"
	"github.com/erraggy/oastubs/stubgen"
)

// StubsFlags contains flags for the stubs command
type StubsFlags struct {
	Output         string
	PackageName    string
	BaseURLVar     string
	BaseURLEnv     string
	DefaultBaseURL string
	ClientVar      string
	MaxDepth       int
	PlanOnly       bool
}

func newStubsCommand(root *RootFlags) *cobra.Command {
	flags := &StubsFlags{}
	cmd := &cobra.Command{
		Use:   "stubs [flags] <file|->",
		Short: "Derive Go HTTP test stubs from an OpenAPI document",
		Long: `Derive one Go test function per operation of an OpenAPI 3.x document.

Each test sends a single request built from the operation's method, path
and required parameters, then switches on the response status with one case
per declared response. The source is written to stdout unless -o is given;
-o accepts a file or an existing directory.`,
		Example: `  oastubs stubs openapi.json
  oastubs stubs -o ./apitest --package apitest_test openapi.yaml
  oastubs stubs --plan openapi.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStubs(cmd, root, flags, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.Output, "output", "o", "", "file or directory to write the tests to (default stdout)")
	f.StringVarP(&flags.PackageName, "package", "p", stubgen.DefaultPackageName, "package clause of the generated file")
	f.StringVar(&flags.BaseURLVar, "base-url-var", stubgen.DefaultBaseURLVar, "name of the server URL variable")
	f.StringVar(&flags.BaseURLEnv, "base-url-env", stubgen.DefaultBaseURLEnv, "environment variable the tests read the server URL from")
	f.StringVar(&flags.DefaultBaseURL, "default-base-url", stubgen.DefaultBaseURL, "server URL used when the environment variable is unset")
	f.StringVar(&flags.ClientVar, "client-var", stubgen.DefaultClientVar, "name of the HTTP client variable")
	f.IntVar(&flags.MaxDepth, "max-depth", mapper.DefaultMaxDepth, "maximum nesting of inline schemas")
	f.BoolVar(&flags.PlanOnly, "plan", false, "list the tests that would be generated instead of rendering them")
	return cmd
}

func runStubs(cmd *cobra.Command, root *RootFlags, flags *StubsFlags, specPath string) error {
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, specPath); err != nil {
			return err
		}
	}

	logger := newLogger(cmd.ErrOrStderr(), root.Verbose)
	result, err := mapSpec(specPath, cmd.InOrStdin(), flags.MaxDepth, logger)
	if err != nil {
		return fmt.Errorf("mapping %s: %w", FormatSpecPath(specPath), err)
	}

	g, err := stubgen.New(
		stubgen.WithPackageName(flags.PackageName),
		stubgen.WithBaseURLVar(flags.BaseURLVar),
		stubgen.WithBaseURLEnv(flags.BaseURLEnv),
		stubgen.WithDefaultBaseURL(flags.DefaultBaseURL),
		stubgen.WithClientVar(flags.ClientVar),
		stubgen.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.PlanOnly {
		tests, err := g.Plan(result.Document)
		if err != nil {
			return err
		}
		for _, tf := range tests {
			Writef(out, "%s  %s %s  [%s]\n", tf.Name, tf.Method, tf.Path, assertionList(tf))
		}
		return nil
	}

	file, err := g.Generate(result.Document)
	if err != nil {
		return err
	}
	if flags.Output == "" {
		Writef(out, "%s", file.Content)
		return nil
	}
	if err := file.WriteFile(flags.Output); err != nil {
		return err
	}
	Writef(cmd.ErrOrStderr(), "Generated %d tests into %s\n", len(file.Tests), flags.Output)
	return nil
}

func assertionList(tf stubgen.TestFunc) string {
	codes := make([]string, 0, len(tf.Assertions))
	for _, a := range tf.Assertions {
		codes = append(codes, fmt.Sprint(a.Status))
	}
	return strings.Join(codes, " ")
}
