package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oastubs/stubgen"
)

type stubsInput struct {
	Spec           specInput `json:"spec"                       jsonschema:"The OpenAPI document to derive tests from"`
	Package        string    `json:"package,omitempty"          jsonschema:"Package clause of the generated file (default from OASTUBS_STUBS_PACKAGE)"`
	BaseURLEnv     string    `json:"base_url_env,omitempty"     jsonschema:"Environment variable the tests read the server URL from"`
	DefaultBaseURL string    `json:"default_base_url,omitempty" jsonschema:"Server URL used when the environment variable is unset"`
	Output         string    `json:"output,omitempty"           jsonschema:"File or directory to write the tests to instead of returning the source inline"`
}

type stubSummary struct {
	Name        string `json:"name"`
	OperationID string `json:"operation_id"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Statuses    []int  `json:"statuses"`
}

type stubsOutput struct {
	FileName string        `json:"file_name"`
	Package  string        `json:"package"`
	Tests    []stubSummary `json:"tests,omitempty"`
	Written  string        `json:"written,omitempty"`
	Source   string        `json:"source,omitempty"`
}

func handleStubs(_ context.Context, _ *mcp.CallToolRequest, input stubsInput) (*mcp.CallToolResult, stubsOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), stubsOutput{}, nil
	}

	opts := []stubgen.Option{
		stubgen.WithPackageName(cfg.StubsPackage),
		stubgen.WithBaseURLEnv(cfg.StubsBaseURLEnv),
	}
	if input.Package != "" {
		opts = append(opts, stubgen.WithPackageName(input.Package))
	}
	if input.BaseURLEnv != "" {
		opts = append(opts, stubgen.WithBaseURLEnv(input.BaseURLEnv))
	}
	if input.DefaultBaseURL != "" {
		opts = append(opts, stubgen.WithDefaultBaseURL(input.DefaultBaseURL))
	}
	g, err := stubgen.New(opts...)
	if err != nil {
		return errResult(err), stubsOutput{}, nil
	}

	file, err := g.Generate(result.Document)
	if err != nil {
		return errResult(err), stubsOutput{}, nil
	}

	output := stubsOutput{
		FileName: file.Name,
		Package:  g.PackageName,
		Tests:    makeSlice[stubSummary](len(file.Tests)),
	}
	for _, tf := range file.Tests {
		s := stubSummary{
			Name:        tf.Name,
			OperationID: tf.OperationID,
			Method:      tf.Method,
			Path:        tf.Path,
			Statuses:    make([]int, 0, len(tf.Assertions)),
		}
		for _, a := range tf.Assertions {
			s.Statuses = append(s.Statuses, a.Status)
		}
		output.Tests = append(output.Tests, s)
	}

	if input.Output != "" {
		if err := file.WriteFile(input.Output); err != nil {
			return errResult(err), stubsOutput{}, nil
		}
		output.Written = input.Output
		return nil, output, nil
	}

	output.Source = string(file.Content)
	return nil, output, nil
}
