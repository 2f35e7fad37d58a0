// Package oastubs turns OpenAPI 3.x documents into typed object graphs and
// derives runnable Go HTTP test stubs from them.
//
// # Overview
//
// The library consists of two primary packages:
//
//   - mapper: Map a JSON or YAML OpenAPI document into a [mapper.Document]
//   - stubgen: Derive one Go test function per operation from a mapped document
//
// Errors from both packages are defined in oaserrors and can be matched with
// [errors.Is] against sentinels such as oaserrors.ErrSchema or
// oaserrors.ErrInvalidStatusCode, or extracted with [errors.As].
//
// # Installation
//
//	go get github.com/erraggy/oastubs
//
// # Quick Start
//
// Map a document:
//
//	import "github.com/erraggy/oastubs/mapper"
//
//	result, err := mapper.MapWithOptions(mapper.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for item, op := range result.Document.Operations() {
//		fmt.Println(op.Method, item.Path, op.OperationID)
//	}
//
// Generate test stubs from it:
//
//	import "github.com/erraggy/oastubs/stubgen"
//
//	g, err := stubgen.New(stubgen.WithPackageName("petstore_test"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	file, err := g.Generate(result.Document)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := file.WriteFile("./e2e"); err != nil {
//		log.Fatal(err)
//	}
//
// The generated tests read their base URL from API_BASE_URL and fall back to
// http://localhost:8080. Both are configurable through stubgen options.
//
// # Command-Line Interface
//
// The oastubs command exposes the same functionality:
//
//	oastubs map openapi.yaml
//	oastubs map --format json openapi.yaml
//	oastubs stubs --package petstore_test -o ./e2e openapi.yaml
//	oastubs stubs --plan openapi.yaml
//	oastubs mcp
//
// The mcp command serves the map, stubs, walk_operations and walk_schemas
// tools over stdio for use by MCP clients.
//
// # Build Information
//
// [Version], [Commit] and [BuildTime] are injected at release time through
// ldflags. Generated stub files name the producing [UserAgent] in their
// header.
package oastubs
