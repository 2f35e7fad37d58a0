package pathutil

import (
	"strconv"
	"strings"
)

// PathBuilder provides incremental construction of dotted diagnostic paths.
// Uses push/pop semantics so a recursive walk shares one builder.
// The full string is only materialized when String() is called.
type PathBuilder struct {
	segments []string
}

// Push adds a segment to the path.
func (p *PathBuilder) Push(segment string) {
	p.segments = append(p.segments, segment)
}

// PushIndex adds an array index segment: "[0]", "[1]", etc.
func (p *PathBuilder) PushIndex(i int) {
	p.segments = append(p.segments, "["+strconv.Itoa(i)+"]")
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

// String materializes the full path.
func (p *PathBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(p.segments[0])
	for _, seg := range p.segments[1:] {
		if len(seg) > 0 && seg[0] == '[' {
			b.WriteString(seg)
		} else {
			b.WriteByte('.')
			b.WriteString(seg)
		}
	}
	return b.String()
}

// Join builds a dotted path from a base and additional segments without a builder.
func Join(base string, segments ...string) string {
	var p PathBuilder
	if base != "" {
		p.Push(base)
	}
	for _, s := range segments {
		p.Push(s)
	}
	return p.String()
}
