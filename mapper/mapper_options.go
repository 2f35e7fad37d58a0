package mapper

import (
	"fmt"
	"io"

	"github.com/erraggy/oastubs/internal/options"
	"github.com/erraggy/oastubs/oaserrors"
)

// Option is a function that configures a map operation
type Option func(*mapConfig) error

// mapConfig holds configuration for a map operation
type mapConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	logger   Logger
	maxDepth int

	// sourceName overrides SourcePath in the result
	sourceName *string
}

// MapWithOptions maps an OpenAPI document using functional options.
//
// Example:
//
//	result, err := mapper.MapWithOptions(
//	    mapper.WithFilePath("openapi.json"),
//	    mapper.WithMaxDepth(32),
//	)
func MapWithOptions(opts ...Option) (*MapResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("mapper: invalid options: %w", err)
	}

	m := &Mapper{
		Logger:   cfg.logger,
		MaxDepth: cfg.maxDepth,
	}

	var result *MapResult
	switch {
	case cfg.filePath != nil:
		result, err = m.Map(*cfg.filePath)
	case cfg.reader != nil:
		result, err = m.MapReader(cfg.reader)
	default:
		result, err = m.MapBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*mapConfig, error) {
	cfg := &mapConfig{
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne(
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithReader", Set: cfg.reader != nil},
		options.Source{Name: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, &oaserrors.ConfigError{Option: "input source", Cause: err}
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *mapConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *mapConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "reader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *mapConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "bytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithLogger sets the structured logger.
// Default: no logging
func WithLogger(l Logger) Option {
	return func(cfg *mapConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxDepth sets the maximum nesting of inline schemas.
// Default: DefaultMaxDepth
func WithMaxDepth(depth int) Option {
	return func(cfg *mapConfig) error {
		if depth <= 0 {
			return &oaserrors.ConfigError{Option: "max depth", Value: depth, Message: "must be positive"}
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithSourceName overrides the SourcePath reported in the result.
func WithSourceName(name string) Option {
	return func(cfg *mapConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
