// Package options holds validation shared by the option sets of oastubs
// packages.
package options

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSource is returned when no input source was given.
	ErrNoSource = errors.New("must specify an input source")
	// ErrMultipleSources is returned when more than one input source was given.
	ErrMultipleSources = errors.New("must specify exactly one input source")
)

// Source is one way of supplying input, such as a file path or a reader.
type Source struct {
	// Name is how the source is selected, e.g. "WithFilePath" or "file"
	Name string
	// Set reports whether the caller supplied it
	Set bool
}

// ExactlyOne checks that exactly one of sources is set. The error wraps
// ErrNoSource or ErrMultipleSources and names the sources involved.
func ExactlyOne(sources ...Source) error {
	var all, set []string
	for _, s := range sources {
		all = append(all, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}
	switch len(set) {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("%w (use %s)", ErrNoSource, orList(all))
	default:
		return fmt.Errorf("%w (got %s)", ErrMultipleSources, strings.Join(set, " and "))
	}
}

// orList renders names as "a, b, or c".
func orList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}
