package stubgen

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/erraggy/oastubs"
	"github.com/erraggy/oastubs/internal/naming"
	"github.com/erraggy/oastubs/internal/pathutil"
	"github.com/erraggy/oastubs/mapper"
	"github.com/erraggy/oastubs/oaserrors"
)

// Defaults for generated files.
const (
	DefaultPackageName    = "api_test"
	DefaultBaseURLVar     = "baseURL"
	DefaultBaseURLEnv     = "API_BASE_URL"
	DefaultBaseURL        = "http://localhost:8080"
	DefaultClientVar      = "client"
	defaultFileName       = "api_test.go"
	mediaHelperIdentifier = "hasMediaType"
)

// Generator derives test stubs from a mapped document.
type Generator struct {
	// PackageName is the package clause of the generated file
	PackageName string
	// BaseURLVar names the package variable holding the server URL
	BaseURLVar string
	// BaseURLEnv is the environment variable that overrides the server URL
	BaseURLEnv string
	// DefaultBaseURL is used when BaseURLEnv is unset
	DefaultBaseURL string
	// ClientVar names the package-level *http.Client
	ClientVar string
	// Logger receives debug output; nil disables logging
	Logger mapper.Logger
}

// Option configures a Generator.
type Option func(*Generator) error

// New creates a Generator with default settings, then applies opts.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		PackageName:    DefaultPackageName,
		BaseURLVar:     DefaultBaseURLVar,
		BaseURLEnv:     DefaultBaseURLEnv,
		DefaultBaseURL: DefaultBaseURL,
		ClientVar:      DefaultClientVar,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.BaseURLVar == g.ClientVar {
		return nil, &oaserrors.ConfigError{
			Option:  "client var",
			Value:   g.ClientVar,
			Message: "must differ from the base URL variable",
		}
	}
	return g, nil
}

// identifierOption validates name as a Go identifier before storing it.
func identifierOption(option, name string, set func(*Generator)) Option {
	return func(g *Generator) error {
		if !token.IsIdentifier(name) || name == mediaHelperIdentifier {
			return &oaserrors.ConfigError{Option: option, Value: name, Message: "not a usable Go identifier"}
		}
		set(g)
		return nil
	}
}

// WithPackageName sets the package clause of the generated file.
// Default: "api_test"
func WithPackageName(name string) Option {
	return identifierOption("package name", name, func(g *Generator) { g.PackageName = name })
}

// WithBaseURLVar sets the name of the server URL variable.
// Default: "baseURL"
func WithBaseURLVar(name string) Option {
	return identifierOption("base URL var", name, func(g *Generator) { g.BaseURLVar = name })
}

// WithClientVar sets the name of the HTTP client variable.
// Default: "client"
func WithClientVar(name string) Option {
	return identifierOption("client var", name, func(g *Generator) { g.ClientVar = name })
}

// WithBaseURLEnv sets the environment variable that overrides the server URL.
func WithBaseURLEnv(env string) Option {
	return func(g *Generator) error {
		if env == "" {
			return &oaserrors.ConfigError{Option: "base URL env", Message: "must not be empty"}
		}
		g.BaseURLEnv = env
		return nil
	}
}

// WithDefaultBaseURL sets the server URL used when the environment variable is unset.
func WithDefaultBaseURL(u string) Option {
	return func(g *Generator) error {
		g.DefaultBaseURL = strings.TrimSuffix(u, "/")
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(l mapper.Logger) Option {
	return func(g *Generator) error {
		g.Logger = l
		return nil
	}
}

func (g *Generator) log() mapper.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return mapper.NopLogger{}
}

// Plan derives one TestFunc per operation of doc, in document order.
//
// Test names come from operationIds. Two operationIds that collapse to the
// same Go name (such as "list-pets" and "listPets") are rejected with a
// DuplicateIdentifier error.
func (g *Generator) Plan(doc *mapper.Document) ([]TestFunc, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "document is nil"}
	}

	var tests []TestFunc
	owners := make(map[string]string)
	for item, op := range doc.Operations() {
		tf := g.planOperation(item, op)
		if first, dup := owners[tf.Name]; dup {
			return nil, &oaserrors.SchemaError{
				Kind:    oaserrors.DuplicateIdentifier,
				Path:    pathutil.Join("paths", item.Path, op.Method),
				Field:   "operationId",
				Value:   op.OperationID,
				Message: fmt.Sprintf("test name %s is already derived from operationId %q", tf.Name, first),
			}
		}
		owners[tf.Name] = op.OperationID
		g.log().Debug("planned test", "name", tf.Name, "method", tf.Method, "path", tf.Path,
			"assertions", len(tf.Assertions))
		tests = append(tests, tf)
	}
	return tests, nil
}

func (g *Generator) planOperation(item *mapper.PathItem, op *mapper.Operation) TestFunc {
	tf := TestFunc{
		Name:        naming.TestName(op.OperationID),
		OperationID: op.OperationID,
		Method:      strings.ToUpper(op.Method),
		Path:        item.Path,
		Summary:     oneLine(op.Summary),
	}

	// Variables the generated function body already declares.
	taken := map[string]bool{
		g.BaseURLVar: true, g.ClientVar: true, mediaHelperIdentifier: true,
		"reqURL": true, "query": true, "req": true, "resp": true, "err": true, "t": true, "ct": true,
	}
	declared := make(map[string]*mapper.Parameter)
	for _, p := range op.ParametersIn(mapper.ParamInPath) {
		declared[p.Name] = p
	}
	bound := make(map[string]bool)
	for _, name := range pathutil.TemplateParams(item.Path) {
		if bound[name] {
			continue
		}
		bound[name] = true
		var schema *mapper.PrimitiveSchema
		if p, ok := declared[name]; ok {
			schema = p.Schema
		}
		v := naming.Identifier(name)
		for base, i := v, 2; taken[v]; i++ {
			v = fmt.Sprintf("%s%d", base, i)
		}
		taken[v] = true
		tf.PathParams = append(tf.PathParams, Param{Name: name, Var: v, Sample: sampleValue(schema)})
	}

	for _, p := range op.Parameters {
		param := Param{Name: p.Name, Sample: sampleValue(p.Schema)}
		switch p.In {
		case mapper.ParamInQuery:
			if p.Required {
				tf.QueryParams = append(tf.QueryParams, param)
			} else {
				tf.OptionalQuery = append(tf.OptionalQuery, p.Name)
			}
		case mapper.ParamInHeader:
			if p.Required {
				tf.HeaderParams = append(tf.HeaderParams, param)
			}
		case mapper.ParamInCookie:
			if p.Required {
				tf.CookieParams = append(tf.CookieParams, param)
			}
		}
	}

	if body := op.RequestBody; body != nil && len(body.Content) > 0 {
		tf.HasBody = true
		tf.BodyMediaType = body.Content[0].MediaType
		tf.BodySample = bodySample(tf.BodyMediaType)
	}

	tf.Assertions = make([]Assertion, 0, len(op.Responses))
	for _, r := range op.Responses {
		a := Assertion{Status: r.StatusCode, Description: oneLine(r.Description)}
		for _, c := range r.Content {
			a.MediaTypes = append(a.MediaTypes, c.MediaType)
		}
		tf.Assertions = append(tf.Assertions, a)
	}
	return tf
}

// Generate renders the test file for doc.
func (g *Generator) Generate(doc *mapper.Document) (*GeneratedFile, error) {
	tests, err := g.Plan(doc)
	if err != nil {
		return nil, err
	}

	data := fileData{
		Generator:      oastubs.UserAgent(),
		Package:        g.PackageName,
		Title:          oneLine(doc.Info.Title),
		Version:        oneLine(doc.Info.Version),
		BaseURLVar:     g.BaseURLVar,
		BaseURLEnv:     g.BaseURLEnv,
		DefaultBaseURL: g.DefaultBaseURL,
		ClientVar:      g.ClientVar,
		Tests:          tests,
	}
	for _, tf := range tests {
		for _, a := range tf.Assertions {
			if len(a.MediaTypes) > 0 {
				data.NeedsMediaHelper = true
			}
		}
	}

	content, err := executeTemplate("test_file.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("stubgen: failed to render tests: %w", err)
	}
	g.log().Info("generated tests", "file", FileName(doc), "tests", len(tests))
	return &GeneratedFile{Name: FileName(doc), Content: content, Tests: tests}, nil
}

// Render returns the generated test source for doc.
func (g *Generator) Render(doc *mapper.Document) ([]byte, error) {
	f, err := g.Generate(doc)
	if err != nil {
		return nil, err
	}
	return f.Content, nil
}

// FileName suggests a file name for the tests of doc, derived from its title.
// Example: "Swagger Petstore" -> "swagger_petstore_test.go"
func FileName(doc *mapper.Document) string {
	if doc == nil {
		return defaultFileName
	}
	base := naming.ToSnakeCase(doc.Info.Title)
	if base == "" {
		return defaultFileName
	}
	return base + "_test.go"
}
