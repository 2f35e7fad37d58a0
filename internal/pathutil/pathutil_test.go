package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathBuilder(t *testing.T) {
	var p PathBuilder
	assert.Equal(t, "", p.String())

	p.Push("paths")
	p.Push("/pets/{id}")
	p.Push("get")
	p.Push("parameters")
	p.PushIndex(2)
	assert.Equal(t, "paths./pets/{id}.get.parameters[2]", p.String())

	p.Pop()
	p.Pop()
	p.Push("responses")
	assert.Equal(t, "paths./pets/{id}.get.responses", p.String())

	p.Pop()
	p.Pop()
	p.Pop()
	p.Pop()
	p.Pop() // popping an empty builder is a no-op
	assert.Equal(t, "", p.String())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "components.schemas.Pet", Join("components", "schemas", "Pet"))
	assert.Equal(t, "info", Join("", "info"))
	assert.Equal(t, "tags", Join("tags"))
}

func TestTemplateParams(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/pets", nil},
		{"/pets/{petId}", []string{"petId"}},
		{"/users/{userId}/posts/{postId}", []string{"userId", "postId"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, TemplateParams(tt.path))
		})
	}
}

func TestSchemaNameFromRef(t *testing.T) {
	tests := []struct {
		ref    string
		want   string
		wantOK bool
	}{
		{"#/components/schemas/Pet", "Pet", true},
		{"#/components/schemas/a~1b", "a/b", true},
		{"#/components/schemas/", "", false},
		{"#/components/parameters/Limit", "", false},
		{"#/components/schemas/Pet/properties/id", "", false},
		{"Pet", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, ok := SchemaNameFromRef(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
