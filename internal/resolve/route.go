package resolve

import (
	"fmt"
	"strconv"

	"github.com/imamik/cherryops/internal/platform/cherry"
)

// RoutePrimaryIP resolves a routing target to the id of the primary IP that
// traffic should be routed to. The target selects a server by hostname, id or
// one of its attached IP literals; the selected server must exist and must
// expose exactly one matching primary address.
//
// Matching is strict in both steps: an ambiguous server match or a server
// with several matching primary addresses is an error, because routing to an
// arbitrary one of them would be a silent misconfiguration.
func RoutePrimaryIP(servers []cherry.Server, target Selector) (string, error) {
	if len(target.Values()) != 1 {
		return "", fmt.Errorf("routing target must be a single %s", target.Kind())
	}

	server, err := routeServer(servers, target)
	if err != nil {
		return "", err
	}

	value := target.Values()[0]
	var addrs []cherry.IPAddress
	for _, ip := range server.IPAddresses {
		switch target.Kind() {
		case KindIPAddress:
			if ip.Address == value {
				addrs = append(addrs, ip)
			}
		default:
			if ip.Type == cherry.IPTypePrimary {
				addrs = append(addrs, ip)
			}
		}
	}

	if len(addrs) == 0 {
		return "", &NotFoundError{Kind: KindIPAddress, Value: value}
	}
	if len(addrs) > 1 {
		ids := make([]string, 0, len(addrs))
		for _, ip := range addrs {
			ids = append(ids, ip.ID)
		}
		return "", &AmbiguityError{Kind: KindIPAddress, Value: value, IDs: ids, Hint: "routed_to"}
	}
	return addrs[0].ID, nil
}

// routeServer selects the single server a routing target refers to.
func routeServer(servers []cherry.Server, target Selector) (*cherry.Server, error) {
	value := target.Values()[0]

	var hits []*cherry.Server
	for i := range servers {
		s := &servers[i]
		switch target.Kind() {
		case KindHostname:
			if s.Hostname == value {
				hits = append(hits, s)
			}
		case KindID:
			if strconv.Itoa(s.ID) == value {
				hits = append(hits, s)
			}
		case KindIPAddress:
			for _, ip := range s.IPAddresses {
				if ip.Address == value {
					hits = append(hits, s)
					break
				}
			}
		default:
			return nil, fmt.Errorf("cannot resolve a routing target by %s", target.Kind())
		}
	}

	if len(hits) == 0 {
		return nil, &NotFoundError{Kind: target.Kind(), Value: value}
	}
	if len(hits) > 1 {
		ids := make([]string, 0, len(hits))
		for _, s := range hits {
			ids = append(ids, strconv.Itoa(s.ID))
		}
		return nil, &AmbiguityError{Kind: target.Kind(), Value: value, IDs: ids, Hint: "routed_to_server_id"}
	}
	return hits[0], nil
}
