package mapper

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastubs/oaserrors"
)

// Security scheme types.
const (
	SecurityTypeAPIKey        = "apiKey"
	SecurityTypeHTTP          = "http"
	SecurityTypeOAuth2        = "oauth2"
	SecurityTypeOpenIDConnect = "openIdConnect"
	SecurityTypeMutualTLS     = "mutualTLS"
)

func (b *builder) buildSecurityScheme(name string, n *yaml.Node) (*SecurityScheme, error) {
	if _, err := b.entries(n, name); err != nil {
		return nil, err
	}
	b.path.Push(name)
	defer b.path.Pop()

	s := &SecurityScheme{Name: name}
	var err error
	if s.Type, err = b.reqString(n, "type"); err != nil {
		return nil, err
	}
	if s.Description, err = b.optString(n, "description"); err != nil {
		return nil, err
	}
	if s.Scheme, err = b.optString(n, "scheme"); err != nil {
		return nil, err
	}
	if s.BearerFormat, err = b.optString(n, "bearerFormat"); err != nil {
		return nil, err
	}
	if s.In, err = b.optString(n, "in"); err != nil {
		return nil, err
	}
	if s.ParamName, err = b.optString(n, "name"); err != nil {
		return nil, err
	}
	if s.OpenIDConnectURL, err = b.optString(n, "openIdConnectUrl"); err != nil {
		return nil, err
	}

	flows := lookup(n, "flows")
	if flows != nil {
		if s.Flows, err = b.buildFlows(flows); err != nil {
			return nil, err
		}
	}
	if s.Type == SecurityTypeOAuth2 && len(s.Flows) == 0 {
		if flows == nil {
			return nil, b.fail(oaserrors.MissingField, "flows", nil, "oauth2 scheme requires flows")
		}
		return nil, b.fail(oaserrors.InvalidValue, "flows", nil, "oauth2 scheme requires at least one flow")
	}
	return s, nil
}

// buildFlows maps the flows object, one Flow per flow type key.
func (b *builder) buildFlows(n *yaml.Node) ([]Flow, error) {
	pairs, err := b.entries(n, "flows")
	if err != nil {
		return nil, err
	}
	b.path.Push("flows")
	defer b.path.Pop()

	out := make([]Flow, 0, len(pairs))
	for _, p := range pairs {
		f, err := b.buildFlow(p.key, p.value)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (b *builder) buildFlow(flowType string, n *yaml.Node) (Flow, error) {
	if _, err := b.entries(n, flowType); err != nil {
		return Flow{}, err
	}
	b.path.Push(flowType)
	defer b.path.Pop()

	f := Flow{Type: flowType, Scopes: []Scope{}}
	var err error
	if f.AuthorizationURL, err = b.optString(n, "authorizationUrl"); err != nil {
		return Flow{}, err
	}
	if f.TokenURL, err = b.optString(n, "tokenUrl"); err != nil {
		return Flow{}, err
	}
	if f.RefreshURL, err = b.optString(n, "refreshUrl"); err != nil {
		return Flow{}, err
	}
	if v := lookup(n, "scopes"); v != nil {
		pairs, err := b.entries(v, "scopes")
		if err != nil {
			return Flow{}, err
		}
		b.path.Push("scopes")
		defer b.path.Pop()
		for _, p := range pairs {
			desc, err := b.scalar(p.value, p.key)
			if err != nil {
				return Flow{}, err
			}
			f.Scopes = append(f.Scopes, Scope{Name: p.key, Description: desc})
		}
	}
	return f, nil
}
