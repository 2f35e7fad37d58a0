package mcpserver

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		items  []int
		offset int
		limit  int
		want   []int
	}{
		{
			name:   "default limit returns all when under 100",
			items:  items,
			offset: 0,
			limit:  0,
			want:   []int{0, 1, 2, 3, 4},
		},
		{
			name:   "explicit limit",
			items:  items,
			offset: 0,
			limit:  2,
			want:   []int{0, 1},
		},
		{
			name:   "offset only",
			items:  items,
			offset: 2,
			limit:  0,
			want:   []int{2, 3, 4},
		},
		{
			name:   "offset and limit",
			items:  items,
			offset: 1,
			limit:  2,
			want:   []int{1, 2},
		},
		{
			name:   "offset at end",
			items:  items,
			offset: 4,
			limit:  2,
			want:   []int{4},
		},
		{
			name:   "offset beyond end",
			items:  items,
			offset: 5,
			limit:  2,
			want:   nil,
		},
		{
			name:   "negative offset",
			items:  items,
			offset: -1,
			limit:  2,
			want:   nil,
		},
		{
			name:   "limit exceeds remaining",
			items:  items,
			offset: 3,
			limit:  10,
			want:   []int{3, 4},
		},
		{
			name:   "nil slice",
			items:  nil,
			offset: 0,
			limit:  2,
			want:   nil,
		},
		{
			name:   "empty slice",
			items:  []int{},
			offset: 0,
			limit:  2,
			want:   nil,
		},
		{
			name:   "negative limit treated as default",
			items:  items,
			offset: 0,
			limit:  -1,
			want:   []int{0, 1, 2, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paginate(tt.items, tt.offset, tt.limit)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginate_OverflowLimit(t *testing.T) {
	items := []int{0, 1, 2}
	got := paginate(items, 1, math.MaxInt)
	assert.Equal(t, []int{1, 2}, got)
}

func TestPaginate_DefaultLimit(t *testing.T) {
	items := make([]int, 150)
	for i := range items {
		items[i] = i
	}
	got := paginate(items, 0, 0)
	assert.Len(t, got, 100, "default limit should cap at 100 items")
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error returns empty string",
			err:  nil,
			want: "",
		},
		{
			name: "strips absolute path",
			err:  fmt.Errorf("mapper: failed to read file: open /home/user/secret/api.yaml: no such file"),
			want: "mapper: failed to read file: open <path>: no such file",
		},
		{
			name: "preserves non-path content",
			err:  fmt.Errorf("schema error at paths./pets.get: operationId: required field is missing"),
			want: "schema error at paths./pets.get: operationId: required field is missing",
		},
		{
			name: "preserves API paths",
			err:  fmt.Errorf("schema error at paths./variants.get.responses"),
			want: "schema error at paths./variants.get.responses",
		},
		{
			name: "strips multiple paths",
			err:  fmt.Errorf("write /tmp/a_test.go over /tmp/b_test.go failed"),
			want: "write <path> over <path> failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeError(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginate_MaxLimitCap(t *testing.T) {
	// Generate items exceeding MaxLimit.
	items := make([]int, 1500)
	for i := range items {
		items[i] = i
	}
	// Request a limit higher than MaxLimit (default 1000).
	got := paginate(items, 0, 1500)
	assert.Len(t, got, cfg.MaxLimit, "limit should be capped at MaxLimit")
}

func TestGroupAndSort(t *testing.T) {
	items := []string{"get", "post", "get", "delete", "post", "get"}
	groups := groupAndSort(items, func(s string) []string { return []string{s} })
	assert.Equal(t, []groupCount{
		{Key: "get", Count: 3},
		{Key: "post", Count: 2},
		{Key: "delete", Count: 1},
	}, groups)
}

func TestValidateGroupBy(t *testing.T) {
	assert.NoError(t, validateGroupBy("", true, []string{"tag"}))
	assert.NoError(t, validateGroupBy("TAG", false, []string{"tag"}))
	assert.ErrorContains(t, validateGroupBy("tag", true, []string{"tag"}), "cannot use both")
	assert.ErrorContains(t, validateGroupBy("size", false, []string{"tag", "method"}), "valid values: tag, method")
}

func TestMatchGlobName(t *testing.T) {
	tests := []struct {
		name, pattern string
		want          bool
	}{
		{"Pet", "", true},
		{"Pet", "Pet", true},
		{"Pets", "Pet", false},
		{"PetList", "Pet*", true},
		{"NewPet", "*Pet", true},
		{"Pet", "P?t", true},
		{"Order", "Pet*", false},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, matchGlobName(tt.name, tt.pattern))
		})
	}
	assert.Error(t, validateGlobPattern("[Pet"))
	assert.NoError(t, validateGlobPattern("Pet*"))
}
