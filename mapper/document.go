package mapper

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastubs/oaserrors"
)

// requiredTopLevel lists the document keys that must be present, in check order.
var requiredTopLevel = []string{"openapi", "info", "paths", "components"}

// buildDocument maps the root node of an OpenAPI document.
//
// Components are built first so the schema registry is complete before any
// path is visited. Nothing after that phase writes to it.
func (b *builder) buildDocument(root *yaml.Node) (*Document, error) {
	root = deref(root)
	if root != nil && root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			root = nil
		} else {
			root = deref(root.Content[0])
		}
	}
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, b.mismatch("", "mapping at document root", root)
	}
	if _, err := b.entries(root, ""); err != nil {
		return nil, err
	}
	for _, key := range requiredTopLevel {
		if find(root, key) == nil {
			return nil, b.fail(oaserrors.MissingField, key, nil, "required field is missing")
		}
	}

	doc := &Document{}
	var err error

	doc.OpenAPI, err = b.reqString(root, "openapi")
	if err != nil {
		return nil, err
	}
	if doc.OpenAPI == "" {
		return nil, b.fail(oaserrors.InvalidValue, "openapi", nil, "version string must not be empty")
	}

	if doc.Info, err = b.buildInfo(find(root, "info")); err != nil {
		return nil, err
	}

	if doc.Components, err = b.buildComponents(find(root, "components")); err != nil {
		return nil, err
	}
	b.log.Debug("built components",
		"schemas", doc.Components.Schemas.Len(),
		"securitySchemes", doc.Components.SecuritySchemes.Len())

	if doc.Paths, err = b.buildPaths(find(root, "paths")); err != nil {
		return nil, err
	}

	if doc.Tags, err = b.buildTags(lookup(root, "tags")); err != nil {
		return nil, err
	}

	if doc.Security, err = b.buildSecurity(root); err != nil {
		return nil, err
	}

	return doc, nil
}

func (b *builder) buildInfo(n *yaml.Node) (Info, error) {
	if _, err := b.entries(n, "info"); err != nil {
		return Info{}, err
	}
	b.path.Push("info")
	defer b.path.Pop()

	var info Info
	var err error
	if info.Title, err = b.reqString(n, "title"); err != nil {
		return Info{}, err
	}
	if info.Version, err = b.reqString(n, "version"); err != nil {
		return Info{}, err
	}
	if info.Description, err = b.optString(n, "description"); err != nil {
		return Info{}, err
	}
	return info, nil
}

// buildTags maps the optional tags list. Tag names must be unique.
func (b *builder) buildTags(n *yaml.Node) ([]Tag, error) {
	if n == nil {
		return nil, nil
	}
	elems, err := b.items(n, "tags")
	if err != nil {
		return nil, err
	}
	b.path.Push("tags")
	defer b.path.Pop()

	tags := make([]Tag, 0, len(elems))
	seen := make(map[string]int, len(elems))
	for i, e := range elems {
		tag, err := b.buildTag(i, e)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[tag.Name]; dup {
			b.path.PushIndex(i)
			err := b.fail(oaserrors.DuplicateIdentifier, "name", tag.Name,
				"tag name already declared at tags[%d]", first)
			b.path.Pop()
			return nil, err
		}
		seen[tag.Name] = i
		tags = append(tags, tag)
	}
	return tags, nil
}

func (b *builder) buildTag(i int, n *yaml.Node) (Tag, error) {
	b.path.PushIndex(i)
	defer b.path.Pop()

	if _, err := b.entries(n, ""); err != nil {
		return Tag{}, err
	}
	var tag Tag
	var err error
	if tag.Name, err = b.reqString(n, "name"); err != nil {
		return Tag{}, err
	}
	if tag.Description, err = b.optString(n, "description"); err != nil {
		return Tag{}, err
	}
	return tag, nil
}

// buildSecurity maps the optional "security" list of n. An absent key yields
// nil, which callers read as "no explicit requirement here".
func (b *builder) buildSecurity(n *yaml.Node) ([]SecurityRequirement, error) {
	v := lookup(n, "security")
	if v == nil {
		return nil, nil
	}
	elems, err := b.items(v, "security")
	if err != nil {
		return nil, err
	}
	b.path.Push("security")
	defer b.path.Pop()

	reqs := make([]SecurityRequirement, 0, len(elems))
	for i, e := range elems {
		req, err := b.buildSecurityRequirement(i, e)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (b *builder) buildSecurityRequirement(i int, n *yaml.Node) (SecurityRequirement, error) {
	b.path.PushIndex(i)
	defer b.path.Pop()

	pairs, err := b.entries(n, "")
	if err != nil {
		return SecurityRequirement{}, err
	}
	req := SecurityRequirement{Schemes: make([]SchemeScopes, 0, len(pairs))}
	for _, p := range pairs {
		scopes := []string{}
		if !isNull(p.value) {
			if scopes, err = b.stringList(p.value, p.key); err != nil {
				return SecurityRequirement{}, err
			}
		}
		req.Schemes = append(req.Schemes, SchemeScopes{Name: p.key, Scopes: scopes})
	}
	return req, nil
}
