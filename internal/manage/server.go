package manage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/imamik/cherryops/internal/config"
	"github.com/imamik/cherryops/internal/platform/cherry"
	"github.com/imamik/cherryops/internal/resolve"
	"github.com/imamik/cherryops/internal/util/naming"
)

// ServerManager reconciles bare-metal servers.
type ServerManager struct {
	client       cherry.Client
	log          zerolog.Logger
	pollInterval time.Duration
}

// ServerOption configures a ServerManager.
type ServerOption func(*ServerManager)

// WithPollInterval overrides the activation poll interval (useful for testing).
func WithPollInterval(d time.Duration) ServerOption {
	return func(m *ServerManager) {
		m.pollInterval = d
	}
}

// NewServerManager creates a new server manager.
func NewServerManager(client cherry.Client, log zerolog.Logger, opts ...ServerOption) *ServerManager {
	m := &ServerManager{
		client:       client,
		log:          log,
		pollInterval: config.LoadTimeouts().PollInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Apply reconciles the desired server state. present and active create
// servers (active additionally waits for them to come up), absent terminates
// them, and running/stopped/rebooted issue the matching power action.
func (m *ServerManager) Apply(ctx context.Context, p config.ServerParams) (Result[cherry.Server], error) {
	switch p.State {
	case config.StatePresent, config.StateActive:
		res, err := m.create(ctx, p)
		if err != nil || p.State != config.StateActive {
			return res, err
		}
		servers, err := m.waitActive(ctx, serverIDs(res.Records), time.Duration(p.WaitTimeout)*time.Second)
		if err != nil {
			return Result[cherry.Server]{}, err
		}
		return Result[cherry.Server]{Changed: res.Changed, Records: servers}, nil
	case config.StateAbsent:
		return m.terminate(ctx, p)
	case config.StateRunning, config.StateStopped, config.StateRebooted:
		return m.power(ctx, p)
	default:
		return Result[cherry.Server]{}, fmt.Errorf("unknown server state %q", p.State)
	}
}

// create deploys one server per expanded hostname, attaching any resolved
// SSH keys and floating IPs.
func (m *ServerManager) create(ctx context.Context, p config.ServerParams) (Result[cherry.Server], error) {
	keyIDs, err := m.resolveSSHKeys(ctx, p)
	if err != nil {
		return Result[cherry.Server]{}, err
	}

	ipIDs, err := m.resolveFloatingIPs(ctx, p)
	if err != nil {
		return Result[cherry.Server]{}, err
	}

	hostnames, err := naming.ExpandHostnames(p.Hostnames, p.Count, p.CountOffset)
	if err != nil {
		return Result[cherry.Server]{}, err
	}

	return Collect(ctx, hostnames, func(ctx context.Context, hostname string) (Outcome[cherry.Server], error) {
		server, err := m.client.CreateServer(ctx, cherry.ServerCreateOpts{
			ProjectID:   p.ProjectID,
			Hostname:    hostname,
			Image:       p.Image,
			Region:      p.Region,
			PlanID:      p.PlanID,
			SSHKeys:     keyIDs,
			IPAddresses: ipIDs,
			SpotMarket:  p.SpotMarket,
			StorageID:   p.StorageID,
		})
		if cherry.IsBadRequest(err) {
			return Outcome[cherry.Server]{}, fmt.Errorf("deploy of %q rejected: %w", hostname, err)
		}
		if err != nil {
			return Outcome[cherry.Server]{}, err
		}
		m.log.Info().Str("hostname", hostname).Int("id", server.ID).Msg("server deployed")
		return Outcome[cherry.Server]{Changed: true, Record: server}, nil
	})
}

// terminate cancels every resolved server. A server already terminating is
// left alone, and one the provider no longer knows is a no-op.
func (m *ServerManager) terminate(ctx context.Context, p config.ServerParams) (Result[cherry.Server], error) {
	ids, err := m.resolveServers(ctx, p, resolve.Allow)
	if err != nil {
		return Result[cherry.Server]{}, err
	}

	return Collect(ctx, ids, func(ctx context.Context, id int) (Outcome[cherry.Server], error) {
		current, err := m.client.GetServer(ctx, id)
		if cherry.IsNotFound(err) {
			return Outcome[cherry.Server]{}, nil
		}
		if err != nil {
			return Outcome[cherry.Server]{}, err
		}
		if current.State == cherry.ServerStateTerminating {
			return Outcome[cherry.Server]{Record: current}, nil
		}

		server, err := m.client.TerminateServer(ctx, id)
		if err != nil {
			return Outcome[cherry.Server]{}, err
		}
		m.log.Info().Int("id", id).Msg("server terminated")
		return Outcome[cherry.Server]{Changed: true, Record: server}, nil
	})
}

// power issues the power action matching the desired state against every
// resolved server. Power actions are never diffed against current state.
func (m *ServerManager) power(ctx context.Context, p config.ServerParams) (Result[cherry.Server], error) {
	ids, err := m.resolveServers(ctx, p, resolve.Require)
	if err != nil {
		return Result[cherry.Server]{}, err
	}

	var action func(context.Context, int) (*cherry.Server, error)
	switch p.State {
	case config.StateRunning:
		action = m.client.PowerOnServer
	case config.StateStopped:
		action = m.client.PowerOffServer
	case config.StateRebooted:
		action = m.client.RebootServer
	}

	return Collect(ctx, ids, func(ctx context.Context, id int) (Outcome[cherry.Server], error) {
		server, err := action(ctx, id)
		if err != nil {
			return Outcome[cherry.Server]{}, err
		}
		m.log.Info().Int("id", id).Str("state", string(p.State)).Msg("server power state changed")
		return Outcome[cherry.Server]{Changed: true, Record: server}, nil
	})
}

// resolveServers turns the hostname or id parameters into a deduplicated
// list of server ids.
func (m *ServerManager) resolveServers(ctx context.Context, p config.ServerParams, tol resolve.Tolerance) ([]int, error) {
	if len(p.Hostnames) > 0 {
		hostnames, err := naming.ExpandHostnames(p.Hostnames, p.Count, p.CountOffset)
		if err != nil {
			return nil, err
		}
		servers, err := m.client.ListServers(ctx, p.ProjectID)
		if err != nil {
			return nil, err
		}
		sel, err := resolve.NewSelector(resolve.KindHostname, hostnames...)
		if err != nil {
			return nil, err
		}
		return resolve.ServerIDs(servers, sel, tol)
	}

	ids := p.ServerIDs
	if p.ServerID != 0 {
		ids = append(ids, p.ServerID)
	}
	return dedupe(ids), nil
}

// resolveSSHKeys resolves the ssh_label or ssh_key_id parameters to key ids
// for server creation. Absent keys are skipped rather than failed.
func (m *ServerManager) resolveSSHKeys(ctx context.Context, p config.ServerParams) ([]int, error) {
	var sel resolve.Selector
	var err error
	switch {
	case len(p.SSHLabels) > 0:
		sel, err = resolve.NewSelector(resolve.KindLabel, p.SSHLabels...)
	case len(p.SSHKeyIDs) > 0:
		sel, err = resolve.NewSelector(resolve.KindID, itoas(p.SSHKeyIDs)...)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	keys, err := m.client.ListSSHKeys(ctx)
	if err != nil {
		return nil, err
	}
	return resolve.SSHKeyIDs(keys, sel, resolve.Allow)
}

// resolveFloatingIPs resolves the ip_address or ip_address_id parameters to
// floating IP ids to attach to a new server. Only a single new server can
// receive floating IPs.
func (m *ServerManager) resolveFloatingIPs(ctx context.Context, p config.ServerParams) ([]string, error) {
	var sel resolve.Selector
	var err error
	switch {
	case len(p.IPAddresses) > 0:
		sel, err = resolve.NewSelector(resolve.KindIPAddress, p.IPAddresses...)
	case len(p.IPAddressIDs) > 0:
		sel, err = resolve.NewSelector(resolve.KindID, p.IPAddressIDs...)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if p.Count > 1 {
		return nil, fmt.Errorf("floating IPs can only be attached to a single new server; count is %d", p.Count)
	}

	ips, err := m.client.ListIPs(ctx, p.ProjectID)
	if err != nil {
		return nil, err
	}
	return resolve.FloatingIPIDs(ips, sel)
}

func serverIDs(records []*cherry.Server) []int {
	ids := make([]int, 0, len(records))
	for _, r := range records {
		if r != nil {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func itoas(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.Itoa(id)
	}
	return out
}
