package mapper

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastubs/oaserrors"
)

// buildOperation maps the operation declared under method at the current path.
func (b *builder) buildOperation(method string, n *yaml.Node) (*Operation, error) {
	if _, err := b.entries(n, method); err != nil {
		return nil, err
	}
	b.path.Push(method)
	defer b.path.Pop()

	op := &Operation{Method: method}
	var err error

	if op.OperationID, err = b.reqString(n, "operationId"); err != nil {
		return nil, err
	}
	if op.OperationID == "" {
		return nil, b.fail(oaserrors.InvalidValue, "operationId", nil, "operationId must not be empty")
	}
	if first, dup := b.operationIDs[op.OperationID]; dup {
		return nil, b.fail(oaserrors.DuplicateIdentifier, "operationId", op.OperationID,
			"operationId already used by %s", first)
	}
	b.operationIDs[op.OperationID] = b.path.String()

	if op.Summary, err = b.optString(n, "summary"); err != nil {
		return nil, err
	}
	if op.Description, err = b.optString(n, "description"); err != nil {
		return nil, err
	}
	if op.Tags, err = b.optStringList(n, "tags"); err != nil {
		return nil, err
	}
	if op.Security, err = b.buildSecurity(n); err != nil {
		return nil, err
	}
	if v := lookup(n, "requestBody"); v != nil {
		if op.RequestBody, err = b.buildRequestBody(v); err != nil {
			return nil, err
		}
	}
	if v := lookup(n, "parameters"); v != nil {
		if op.Parameters, err = b.buildParameters(v); err != nil {
			return nil, err
		}
	}

	responses, err := b.require(n, "responses")
	if err != nil {
		return nil, err
	}
	if op.Responses, err = b.buildResponses(responses); err != nil {
		return nil, err
	}
	return op, nil
}
