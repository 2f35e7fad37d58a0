package stubgen

// TestFunc describes the test function generated for one operation.
type TestFunc struct {
	// Name is the Go test function name, e.g. "TestShowPetById"
	Name string
	// OperationID is the operationId the name was derived from
	OperationID string
	// Method is the upper-case HTTP method, e.g. "GET"
	Method string
	// Path is the path template as written in the document
	Path string
	// Summary is the operation summary folded onto one line
	Summary string

	// PathParams binds every {placeholder} of Path to a local variable, in
	// order of first appearance
	PathParams []Param
	// QueryParams holds the required query parameters
	QueryParams []Param
	// OptionalQuery names the optional query parameters, which are not sent
	OptionalQuery []string
	// HeaderParams holds the required header parameters
	HeaderParams []Param
	// CookieParams holds the required cookie parameters
	CookieParams []Param

	// HasBody is true when the operation declares a request body
	HasBody bool
	// BodyMediaType is the first media type of the request body
	BodyMediaType string
	// BodySample is the literal body sent with the request
	BodySample string

	// Assertions holds one entry per declared response, in document order
	Assertions []Assertion
}

// Param is a request parameter bound to a sample value.
type Param struct {
	// Name is the parameter name on the wire
	Name string
	// Var is the local variable holding the value (path parameters only)
	Var string
	// Sample is the literal value sent
	Sample string
}

// Assertion is the check generated for one response status code.
type Assertion struct {
	Status      int
	Description string
	// MediaTypes lists the content types the response may carry
	MediaTypes []string
}

// fileData is the root value the test file template executes with.
type fileData struct {
	Generator      string
	Package        string
	Title          string
	Version        string
	BaseURLVar     string
	BaseURLEnv     string
	DefaultBaseURL string
	ClientVar      string
	Tests          []TestFunc
	// NeedsMediaHelper is true when any assertion checks a content type
	NeedsMediaHelper bool
}
