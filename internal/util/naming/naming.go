// Package naming expands hostname templates into concrete server names.
//
// A single template containing a printf-style integer placeholder, e.g.
// "server%02d.example.com", expands into count sequential names starting at
// the offset. A template without a placeholder repeats. Explicit hostname
// lists cannot be combined with a count greater than one. Every expanded name
// must be a syntactically valid hostname.
package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var hostnameRE = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]*[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]*[a-zA-Z0-9])?$`)

// ExpandHostnames turns hostname templates plus a count and start offset into
// the concrete list of names to act on.
func ExpandHostnames(templates []string, count, offset int) ([]string, error) {
	if len(templates) == 0 {
		return nil, errors.New("at least one hostname is required")
	}
	if count < 1 {
		count = 1
	}

	var names []string
	switch {
	case len(templates) > 1:
		if count > 1 {
			return nil, fmt.Errorf("cannot combine %d explicit hostnames with count %d; use a single template or count 1", len(templates), count)
		}
		names = templates

	case !strings.Contains(templates[0], "%"):
		names = make([]string, count)
		for i := range names {
			names[i] = templates[0]
		}

	default:
		names = make([]string, 0, count)
		for i := offset; i < offset+count; i++ {
			names = append(names, fmt.Sprintf(templates[0], i))
		}
	}

	for _, name := range names {
		if !ValidHostname(name) {
			return nil, fmt.Errorf("invalid hostname %q", name)
		}
	}
	return names, nil
}

// ValidHostname reports whether a name is a syntactically valid hostname:
// dot-separated alphanumeric labels with interior hyphens (RFC 1123 shape).
func ValidHostname(name string) bool {
	return hostnameRE.MatchString(name)
}
