// Package oaserrors provides structured error types for the oastubs library.
//
// Import path: github.com/erraggy/oastubs/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish a malformed document from an unreadable one or
// from a misconfigured call.
//
// # Error Types
//
//   - [SchemaError]: a document node has the wrong shape or content; its [Kind]
//     says which rule was broken
//   - [ParseError]: the input could not be decoded as JSON or YAML at all
//   - [ReferenceError]: a schema reference points at no registered schema
//   - [ResourceLimitError]: nesting exceeded the configured depth limit
//   - [ConfigError]: invalid options or missing input
//
// # Sentinel Errors
//
//   - [ErrSchema]: Matches any [SchemaError]
//   - [ErrMissingField], [ErrInvalidStatusCode], [ErrTypeMismatch],
//     [ErrDuplicateIdentifier], [ErrInvalidValue]: Match a [SchemaError] of that kind
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	result, err := mapper.MapWithOptions(mapper.WithFilePath("openapi.json"))
//	if errors.Is(err, oaserrors.ErrDuplicateIdentifier) {
//	    // two operations share an operationId
//	}
//
//	var schemaErr *oaserrors.SchemaError
//	if errors.As(err, &schemaErr) {
//	    fmt.Printf("%s at %s\n", schemaErr.Kind, schemaErr.Path)
//	}
package oaserrors
