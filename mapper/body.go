package mapper

import (
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastubs/oaserrors"
)

// Status code bounds accepted as responses keys.
const (
	MinStatusCode = 100
	MaxStatusCode = 599
)

// ParseStatusCode converts a responses key to an HTTP status code.
// The key must be a decimal integer in [MinStatusCode, MaxStatusCode];
// range keys such as "2XX" and "default" are rejected.
func ParseStatusCode(key string) (int, bool) {
	code, err := strconv.Atoi(key)
	if err != nil || strconv.Itoa(code) != key {
		return 0, false
	}
	if code < MinStatusCode || code > MaxStatusCode {
		return 0, false
	}
	return code, true
}

func (b *builder) buildRequestBody(n *yaml.Node) (*RequestBody, error) {
	if _, err := b.entries(n, "requestBody"); err != nil {
		return nil, err
	}
	b.path.Push("requestBody")
	defer b.path.Pop()

	body := &RequestBody{}
	var err error
	if body.Required, err = b.optBool(n, "required"); err != nil {
		return nil, err
	}
	if body.Description, err = b.optString(n, "description"); err != nil {
		return nil, err
	}
	content, err := b.require(n, "content")
	if err != nil {
		return nil, err
	}
	if body.Content, err = b.buildContent(content); err != nil {
		return nil, err
	}
	if len(body.Content) == 0 {
		return nil, b.fail(oaserrors.InvalidValue, "content", nil, "request body must declare at least one media type")
	}
	return body, nil
}

// buildResponses maps the responses object of an operation. Every key must
// be a status code and at least one must be present.
func (b *builder) buildResponses(n *yaml.Node) ([]*Response, error) {
	pairs, err := b.entries(n, "responses")
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, b.fail(oaserrors.MissingField, "responses", nil, "operation must declare at least one response")
	}
	b.path.Push("responses")
	defer b.path.Pop()

	out := make([]*Response, 0, len(pairs))
	for _, p := range pairs {
		code, ok := ParseStatusCode(p.key)
		if !ok {
			return nil, b.fail(oaserrors.InvalidStatusCode, p.key, p.key,
				"response key must be an integer in [%d,%d]", MinStatusCode, MaxStatusCode)
		}
		resp, err := b.buildResponse(code, p.key, p.value)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (b *builder) buildResponse(code int, key string, n *yaml.Node) (*Response, error) {
	if _, err := b.entries(n, key); err != nil {
		return nil, err
	}
	b.path.Push(key)
	defer b.path.Pop()

	resp := &Response{StatusCode: code, Content: []*ContentEntry{}}
	var err error
	if resp.Description, err = b.optString(n, "description"); err != nil {
		return nil, err
	}
	if v := lookup(n, "content"); v != nil {
		if resp.Content, err = b.buildContent(v); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// buildContent maps a media-type keyed content object in document order.
func (b *builder) buildContent(n *yaml.Node) ([]*ContentEntry, error) {
	pairs, err := b.entries(n, "content")
	if err != nil {
		return nil, err
	}
	b.path.Push("content")
	defer b.path.Pop()

	out := make([]*ContentEntry, 0, len(pairs))
	for _, p := range pairs {
		entry := &ContentEntry{MediaType: p.key}
		if !isNull(p.value) {
			if _, err := b.entries(p.value, p.key); err != nil {
				return nil, err
			}
			if s := lookup(p.value, "schema"); s != nil {
				b.path.Push(p.key)
				entry.Schema, err = b.buildSchemaRef(s, "schema")
				b.path.Pop()
				if err != nil {
					return nil, err
				}
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
