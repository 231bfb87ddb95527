package resolve

import (
	"fmt"
	"strconv"

	"github.com/imamik/cherryops/internal/platform/cherry"
)

// Tolerance controls how resolution treats a selector value with no match.
type Tolerance int

const (
	// Require fails resolution with a NotFoundError on zero matches. Use it
	// where the target must exist, e.g. a routing or attachment destination.
	Require Tolerance = iota
	// Allow returns an empty result on zero matches. Use it in removal
	// contexts where the target may already be gone.
	Allow
)

// candidate is one provider record projected to its id and the field being
// matched against.
type candidate struct {
	id    string
	value string
}

// match scans candidates for exact matches of each selector value. Matches
// are collected in input order and collapsed by id, so two selector values
// resolving to the same record yield that id once. A single value matching
// more than one id is an ambiguity; zero matches are handled per tolerance.
func match(cands []candidate, sel Selector, tol Tolerance, hint string) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string

	for _, value := range sel.Values() {
		var hits []string
		for _, c := range cands {
			if c.value == value {
				hits = append(hits, c.id)
			}
		}

		if len(hits) > 1 {
			return nil, &AmbiguityError{Kind: sel.Kind(), Value: value, IDs: hits, Hint: hint}
		}
		if len(hits) == 0 {
			if tol == Require {
				return nil, &NotFoundError{Kind: sel.Kind(), Value: value}
			}
			continue
		}
		if !seen[hits[0]] {
			seen[hits[0]] = true
			ids = append(ids, hits[0])
		}
	}

	return ids, nil
}

// ServerIDs resolves a hostname or id selector against the project's servers.
func ServerIDs(servers []cherry.Server, sel Selector, tol Tolerance) ([]int, error) {
	var cands []candidate
	for _, s := range servers {
		id := strconv.Itoa(s.ID)
		switch sel.Kind() {
		case KindHostname:
			cands = append(cands, candidate{id: id, value: s.Hostname})
		case KindID:
			cands = append(cands, candidate{id: id, value: id})
		default:
			return nil, fmt.Errorf("cannot resolve servers by %s", sel.Kind())
		}
	}

	ids, err := match(cands, sel, tol, "server_ids")
	if err != nil {
		return nil, err
	}
	return toInts(ids)
}

// FloatingIPIDs resolves an IP-literal or id selector against the project's
// floating IPs. Primary IPs are never candidates. Zero matches yield an empty
// set: the contexts using this resolution (removal, update, attachment of an
// existing IP) all tolerate absence.
func FloatingIPIDs(ips []cherry.IPAddress, sel Selector) ([]string, error) {
	var cands []candidate
	for _, ip := range ips {
		if ip.Type != cherry.IPTypeFloating {
			continue
		}
		switch sel.Kind() {
		case KindIPAddress:
			cands = append(cands, candidate{id: ip.ID, value: ip.Address})
		case KindID:
			cands = append(cands, candidate{id: ip.ID, value: ip.ID})
		default:
			return nil, fmt.Errorf("cannot resolve floating IPs by %s", sel.Kind())
		}
	}

	return match(cands, sel, Allow, "ip_address_id")
}

// SSHKeyIDs resolves a label, raw key, fingerprint or id selector against the
// account's SSH keys.
func SSHKeyIDs(keys []cherry.SSHKey, sel Selector, tol Tolerance) ([]int, error) {
	var cands []candidate
	for _, k := range keys {
		id := strconv.Itoa(k.ID)
		switch sel.Kind() {
		case KindLabel:
			cands = append(cands, candidate{id: id, value: k.Label})
		case KindKey:
			cands = append(cands, candidate{id: id, value: k.Key})
		case KindFingerprint:
			cands = append(cands, candidate{id: id, value: k.Fingerprint})
		case KindID:
			cands = append(cands, candidate{id: id, value: id})
		default:
			return nil, fmt.Errorf("cannot resolve SSH keys by %s", sel.Kind())
		}
	}

	ids, err := match(cands, sel, tol, "key_id")
	if err != nil {
		return nil, err
	}
	return toInts(ids)
}

func toInts(ids []string) ([]int, error) {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err != nil {
			return nil, fmt.Errorf("invalid numeric id %q: %w", id, err)
		}
		out = append(out, n)
	}
	return out, nil
}
