// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oastubs capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oastubs"
)

const serverInstructions = `oastubs MCP server: maps OpenAPI 3.x documents into typed summaries and derives Go HTTP test stubs from them.

Configuration: All defaults are configurable via OASTUBS_* environment variables set in your MCP client config.

Key settings:
- OASTUBS_CACHE_ENABLED (default: true): disable document caching entirely
- OASTUBS_CACHE_FILE_TTL (default: 15m): cache TTL for local files
- OASTUBS_CACHE_CONTENT_TTL (default: 15m): cache TTL for inline content
- OASTUBS_WALK_LIMIT (default: 100): default result limit for walk tools
- OASTUBS_MAX_DEPTH (default: 64): maximum nesting of inline schemas
- OASTUBS_STUBS_PACKAGE (default: api_test): package clause of generated stubs
- OASTUBS_STUBS_BASE_URL_ENV (default: API_BASE_URL): env var generated stubs read the server URL from

Caching: Mapped documents are cached per session. File entries use path+mtime as key, so edits invalidate them. A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oastubs", Version: oastubs.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "map",
		Description: "Map an OpenAPI 3.x document into its typed object graph. Returns a structural summary: title, version, path/operation/response/schema counts, and tags. Mapping errors name the offending location as a dotted path such as paths./pets.get.responses. Use full=true only for small documents; for large ones use walk_operations and walk_schemas.",
	}, handleMap)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stubs",
		Description: "Derive Go HTTP test stubs from an OpenAPI 3.x document. Produces one test function per operation that sends a request and switches on the response status code. Returns the test plan and the generated source, or writes the file when output is set. Package and base URL env var defaults are configurable via OASTUBS_STUBS_PACKAGE and OASTUBS_STUBS_BASE_URL_ENV.",
	}, handleStubs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "walk_operations",
		Description: "Walk and query operations in document order. Filter by method, path pattern (* matches one segment), tag, or operationId. Returns summaries (method, path, operationId, tags, status codes). Use group_by (tag or method) to get distribution counts instead of individual items. Default limit is configurable via OASTUBS_WALK_LIMIT.",
	}, handleWalkOperations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "walk_schemas",
		Description: "Walk and query named component schemas in document order. Filter by name (supports * glob) or type. Returns summaries (name, type, property count, required fields, referenced schemas) by default or the full schema with detail=true. Use group_by=type to get distribution counts.",
	}, handleWalkSchemas)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.WalkLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.WalkLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths so they are not leaked to
// MCP clients in error messages. The trailing slash keeps API paths such as
// /variants out of it.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)/[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is a valid value and is not combined with detail.
func validateGroupBy(groupBy string, detail bool, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	if detail {
		return fmt.Errorf("cannot use both group_by and detail")
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call it once before a filter loop so matchGlobName never sees an invalid
// pattern.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlobName reports whether name matches pattern. Patterns without glob
// characters compare exactly.
func matchGlobName(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return name == pattern
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}
