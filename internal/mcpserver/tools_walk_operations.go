package mcpserver

import (
	"context"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oastubs/mapper"
)

type walkOperationsInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The OpenAPI document to walk"`
	Method      string    `json:"method,omitempty"       jsonschema:"Filter by HTTP method (get\\, post\\, put\\, delete\\, patch\\, etc.)"`
	Path        string    `json:"path,omitempty"         jsonschema:"Filter by path pattern (* matches one segment)"`
	Tag         string    `json:"tag,omitempty"          jsonschema:"Filter by tag name"`
	OperationID string    `json:"operation_id,omitempty" jsonschema:"Select by operationId"`
	GroupBy     string    `json:"group_by,omitempty"     jsonschema:"Group results and return counts instead of individual items. Values: tag\\, method"`
	Limit       int       `json:"limit,omitempty"        jsonschema:"Maximum number of results to return (default 100)"`
	Offset      int       `json:"offset,omitempty"       jsonschema:"Skip the first N results (for pagination)"`
}

type operationSummary struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operation_id"`
	Summary     string   `json:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Statuses    []int    `json:"statuses"`
	HasBody     bool     `json:"has_body,omitempty"`
	Secured     bool     `json:"secured,omitempty"`
}

type walkOperationsOutput struct {
	Total     int                `json:"total"`
	Matched   int                `json:"matched"`
	Returned  int                `json:"returned"`
	Summaries []operationSummary `json:"summaries,omitempty"`
	Groups    []groupCount       `json:"groups,omitempty"`
}

// walkedOperation pairs an operation with the path item that owns it.
type walkedOperation struct {
	item *mapper.PathItem
	op   *mapper.Operation
}

func handleWalkOperations(_ context.Context, _ *mcp.CallToolRequest, input walkOperationsInput) (*mcp.CallToolResult, any, error) {
	if err := validateGroupBy(input.GroupBy, false, []string{"tag", "method"}); err != nil {
		return errResult(err), nil, nil
	}

	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}

	var all []walkedOperation
	for item, op := range result.Document.Operations() {
		all = append(all, walkedOperation{item: item, op: op})
	}
	matched := filterWalkOperations(all, input)

	output := walkOperationsOutput{
		Total:   len(all),
		Matched: len(matched),
	}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, func(w walkedOperation) []string {
			if strings.EqualFold(input.GroupBy, "method") {
				return []string{strings.ToUpper(w.op.Method)}
			}
			if len(w.op.Tags) == 0 {
				return []string{"(untagged)"}
			}
			return w.op.Tags
		})
		output.Returned = len(output.Groups)
		return nil, output, nil
	}

	returned := paginate(matched, input.Offset, input.Limit)
	output.Returned = len(returned)
	output.Summaries = makeSlice[operationSummary](len(returned))
	for _, w := range returned {
		s := operationSummary{
			Method:      strings.ToUpper(w.op.Method),
			Path:        w.item.Path,
			OperationID: w.op.OperationID,
			Summary:     w.op.Summary,
			Tags:        w.op.Tags,
			Statuses:    make([]int, 0, len(w.op.Responses)),
			HasBody:     w.op.RequestBody != nil,
			Secured:     len(w.op.Security) > 0,
		}
		for _, r := range w.op.Responses {
			s.Statuses = append(s.Statuses, r.StatusCode)
		}
		output.Summaries = append(output.Summaries, s)
	}

	return nil, output, nil
}

// filterWalkOperations applies all operation filters and returns the matching subset.
func filterWalkOperations(ops []walkedOperation, input walkOperationsInput) []walkedOperation {
	var matched []walkedOperation
	for _, w := range ops {
		if input.Method != "" && !strings.EqualFold(w.op.Method, input.Method) {
			continue
		}
		if input.Path != "" && !matchWalkPath(w.item.Path, input.Path) {
			continue
		}
		if input.Tag != "" && !slices.Contains(w.op.Tags, input.Tag) {
			continue
		}
		if input.OperationID != "" && w.op.OperationID != input.OperationID {
			continue
		}
		matched = append(matched, w)
	}
	return matched
}

// matchWalkPath checks if a path template matches a pattern.
// Supports simple glob matching where * matches exactly one path segment.
func matchWalkPath(pathTemplate, pattern string) bool {
	if pattern == "" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return pathTemplate == pattern
	}
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(pathTemplate, "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i, pp := range patternParts {
		if pp != "*" && pp != pathParts[i] {
			return false
		}
	}
	return true
}
