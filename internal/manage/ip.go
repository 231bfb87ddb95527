package manage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/imamik/cherryops/internal/config"
	"github.com/imamik/cherryops/internal/platform/cherry"
	"github.com/imamik/cherryops/internal/resolve"
)

// IPManager reconciles floating IP addresses.
type IPManager struct {
	client cherry.Client
	log    zerolog.Logger
}

// NewIPManager creates a new floating IP manager.
func NewIPManager(client cherry.Client, log zerolog.Logger) *IPManager {
	return &IPManager{client: client, log: log}
}

// Apply reconciles the desired floating IP state. present orders new
// addresses, absent releases existing ones, and update rewrites the mutable
// fields of an existing address.
func (m *IPManager) Apply(ctx context.Context, p config.IPParams) (Result[cherry.IPAddress], error) {
	switch p.State {
	case config.StatePresent:
		return m.create(ctx, p)
	case config.StateAbsent:
		return m.remove(ctx, p)
	case config.StateUpdate:
		return m.update(ctx, p)
	default:
		return Result[cherry.IPAddress]{}, fmt.Errorf("unknown ip state %q", p.State)
	}
}

// create orders count new floating IPs, optionally routed to the resolved
// primary IP of a server.
func (m *IPManager) create(ctx context.Context, p config.IPParams) (Result[cherry.IPAddress], error) {
	routedTo, err := m.resolveRoute(ctx, p)
	if err != nil {
		return Result[cherry.IPAddress]{}, err
	}

	return Repeat(ctx, p.Count, func(ctx context.Context) (Outcome[cherry.IPAddress], error) {
		ip, err := m.client.CreateIP(ctx, p.ProjectID, cherry.IPCreateOpts{
			Type:       cherry.IPTypeFloating,
			Region:     p.Region,
			PtrRecord:  p.PtrRecord,
			ARecord:    p.ARecord,
			RoutedTo:   routedTo,
			AssignedTo: p.AssignedTo,
		})
		if err != nil {
			return Outcome[cherry.IPAddress]{}, err
		}
		m.log.Info().Str("id", ip.ID).Str("address", ip.Address).Msg("floating ip created")
		return Outcome[cherry.IPAddress]{Changed: true, Record: ip}, nil
	})
}

// remove releases every resolved floating IP. An address the provider no
// longer knows is a no-op.
func (m *IPManager) remove(ctx context.Context, p config.IPParams) (Result[cherry.IPAddress], error) {
	ids, err := m.resolveIDs(ctx, p)
	if err != nil {
		return Result[cherry.IPAddress]{}, err
	}

	return Collect(ctx, ids, func(ctx context.Context, id string) (Outcome[cherry.IPAddress], error) {
		ip, err := m.client.GetIP(ctx, p.ProjectID, id)
		if cherry.IsNotFound(err) {
			return Outcome[cherry.IPAddress]{}, nil
		}
		if err != nil {
			return Outcome[cherry.IPAddress]{}, err
		}

		if _, err := m.client.RemoveIP(ctx, p.ProjectID, id); err != nil {
			return Outcome[cherry.IPAddress]{}, err
		}
		m.log.Info().Str("id", id).Str("address", ip.Address).Msg("floating ip removed")
		return Outcome[cherry.IPAddress]{Changed: true, Record: ip}, nil
	})
}

// update rewrites the mutable fields of every resolved floating IP. All
// fields are submitted as given, so an update with no routing target clears
// an existing route.
func (m *IPManager) update(ctx context.Context, p config.IPParams) (Result[cherry.IPAddress], error) {
	routedTo, err := m.resolveRoute(ctx, p)
	if err != nil {
		return Result[cherry.IPAddress]{}, err
	}

	ids, err := m.resolveIDs(ctx, p)
	if err != nil {
		return Result[cherry.IPAddress]{}, err
	}

	return Collect(ctx, ids, func(ctx context.Context, id string) (Outcome[cherry.IPAddress], error) {
		ip, err := m.client.UpdateIP(ctx, p.ProjectID, id, cherry.IPUpdateOpts{
			PtrRecord:  p.PtrRecord,
			ARecord:    p.ARecord,
			RoutedTo:   routedTo,
			AssignedTo: p.AssignedTo,
		})
		if err != nil {
			return Outcome[cherry.IPAddress]{}, err
		}
		m.log.Info().Str("id", id).Msg("floating ip updated")
		return Outcome[cherry.IPAddress]{Changed: true, Record: ip}, nil
	})
}

// resolveRoute turns the routing target parameters into the id of the
// primary IP to route to, or "" when no target is set.
func (m *IPManager) resolveRoute(ctx context.Context, p config.IPParams) (string, error) {
	if !p.HasRouteTarget() {
		return "", nil
	}

	var target resolve.Selector
	var err error
	switch {
	case p.RoutedTo != "":
		target, err = resolve.NewSelector(resolve.KindIPAddress, p.RoutedTo)
	case p.RoutedToHostname != "":
		target, err = resolve.NewSelector(resolve.KindHostname, p.RoutedToHostname)
	default:
		target, err = resolve.NewSelector(resolve.KindID, fmt.Sprint(p.RoutedToServerID))
	}
	if err != nil {
		return "", err
	}

	servers, err := m.client.ListServers(ctx, p.ProjectID)
	if err != nil {
		return "", err
	}
	return resolve.RoutePrimaryIP(servers, target)
}

// resolveIDs turns the ip_address or ip_address_id parameters into floating
// IP ids. Addresses the project does not hold resolve to nothing.
func (m *IPManager) resolveIDs(ctx context.Context, p config.IPParams) ([]string, error) {
	if len(p.IPAddressIDs) > 0 {
		return p.IPAddressIDs, nil
	}

	sel, err := resolve.NewSelector(resolve.KindIPAddress, p.IPAddresses...)
	if err != nil {
		return nil, err
	}
	ips, err := m.client.ListIPs(ctx, p.ProjectID)
	if err != nil {
		return nil, err
	}
	return resolve.FloatingIPIDs(ips, sel)
}
