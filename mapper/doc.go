/*
Package mapper builds a typed, read-only object graph from an OpenAPI 3.x document.

The input is decoded into a generic node tree first, then converted in a
single recursive pass into [Document] and its children. Every keyed
collection of the source (paths, methods, responses, content types, schema
properties, security flows) keeps document order, so anything generated from
the graph is deterministic.

# Quick Start

	result, err := mapper.MapWithOptions(mapper.WithFilePath("openapi.json"))
	if err != nil {
		log.Fatal(err)
	}
	for item, op := range result.Document.Operations() {
		fmt.Println(op.Method, item.Path, op.OperationID)
	}

Or create a reusable Mapper:

	m := mapper.New()
	m.MaxDepth = 32
	result, _ := m.Map("api.json")

# Build Order

Components are built before paths, so the schema registry is complete and
read-only before anything refers to it. Schema references are stored as a
[Reference] and never followed during the build; self-referential and
mutually referential schemas therefore map without recursion. Use
[Components.Resolve] to follow one on demand.

# Errors

A build either returns a complete Document or a single error. Structural
problems are reported as *oaserrors.SchemaError carrying the dotted path of
the offending node, for example:

	schema error (InvalidStatusCode) at paths./pets.get.responses.abc: ...

Unknown keys are ignored everywhere.

# Input Formats

JSON is the expected format. Since JSON is a subset of YAML, YAML documents
are accepted too; a YAML mapping that repeats a key is rejected with
DuplicateIdentifier.
*/
package mapper
