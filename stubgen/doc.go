// Package stubgen derives Go HTTP test stubs from a mapped OpenAPI document.
//
// Every operation yields exactly one test function, named from its
// operationId:
//
//	operationId "showPetById" -> func TestShowPetById(t *testing.T)
//
// The function issues one request built from the operation's method, path
// template and required parameters, then switches on the response status
// with one case per declared response. Responses that declare content also
// check the Content-Type header.
//
// # Quick Start
//
//	result, err := mapper.MapWithOptions(mapper.WithFilePath("openapi.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	g, err := stubgen.New(stubgen.WithPackageName("petstore_test"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	file, err := g.Generate(result.Document)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = file.WriteFile("./tests")
//
// Use [Generator.Plan] to inspect the tests without rendering source.
//
// # Generated File
//
// The rendered file declares a base URL variable read from API_BASE_URL
// (default http://localhost:8080) and a shared *http.Client. Path
// placeholders are bound to local variables holding sample values chosen
// from the parameter schema. Imports are pruned to what the file uses.
package stubgen
