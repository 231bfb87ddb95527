// Package resolve translates human-supplied selectors (hostnames, IP
// literals, labels, fingerprints, raw key material) into provider-assigned
// ids. A selector carries exactly one kind of value; choosing the kind is
// enforced at construction so callers cannot mix identification schemes.
package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// Kind enumerates the ways a target resource can be identified.
type Kind int

const (
	// KindID identifies a resource by its provider-assigned id.
	KindID Kind = iota + 1
	// KindHostname identifies a server by hostname.
	KindHostname
	// KindIPAddress identifies a floating IP (or a routing target) by IP literal.
	KindIPAddress
	// KindLabel identifies an SSH key by label.
	KindLabel
	// KindFingerprint identifies an SSH key by fingerprint.
	KindFingerprint
	// KindKey identifies an SSH key by its raw public key material.
	KindKey
)

func (k Kind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindHostname:
		return "hostname"
	case KindIPAddress:
		return "ip address"
	case KindLabel:
		return "label"
	case KindFingerprint:
		return "fingerprint"
	case KindKey:
		return "key"
	default:
		return "unknown"
	}
}

// Selector is a non-empty, ordered list of values of a single kind. The zero
// Selector is invalid; use NewSelector.
type Selector struct {
	kind   Kind
	values []string
}

// NewSelector builds a selector of the given kind. At least one value is
// required. A single value behaves identically to a one-element list.
func NewSelector(kind Kind, values ...string) (Selector, error) {
	if kind == 0 {
		return Selector{}, errors.New("selector kind is required")
	}
	if len(values) == 0 {
		return Selector{}, fmt.Errorf("at least one %s is required", kind)
	}
	return Selector{kind: kind, values: values}, nil
}

// Kind returns the selector's kind.
func (s Selector) Kind() Kind { return s.kind }

// Values returns the selector's values in input order.
func (s Selector) Values() []string { return s.values }

// IsZero reports whether the selector was never constructed.
func (s Selector) IsZero() bool { return s.kind == 0 }

// AmbiguityError reports a selector value matching more than one provider
// record. The caller should switch to ids to disambiguate.
type AmbiguityError struct {
	Kind  Kind
	Value string
	IDs   []string
	Hint  string
}

func (e *AmbiguityError) Error() string {
	msg := fmt.Sprintf("several records share %s %q: ids %s", e.Kind, e.Value, strings.Join(e.IDs, ", "))
	if e.Hint != "" {
		msg += "; use " + e.Hint + " to disambiguate"
	}
	return msg
}

// NotFoundError reports a selector value matching no provider record in a
// context where the target must exist.
type NotFoundError struct {
	Kind  Kind
	Value string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no record found for %s %q", e.Kind, e.Value)
}
