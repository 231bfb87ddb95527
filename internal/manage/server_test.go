package manage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/cherryops/internal/config"
	"github.com/imamik/cherryops/internal/platform/cherry"
	"github.com/imamik/cherryops/internal/resolve"
	"github.com/imamik/cherryops/internal/telemetry"
)

func serverParams(state config.State) config.ServerParams {
	p := config.ServerParams{
		State:     state,
		ProjectID: 42,
		Hostnames: []string{"web%02d.example.com"},
		Image:     "ubuntu_24_04",
		PlanID:    161,
	}
	p.SetDefaults()
	return p
}

func TestServerCreateExpandsTemplate(t *testing.T) {
	t.Parallel()

	var created []cherry.ServerCreateOpts
	mock := &cherry.MockClient{
		CreateServerFunc: func(_ context.Context, opts cherry.ServerCreateOpts) (*cherry.Server, error) {
			created = append(created, opts)
			return &cherry.Server{ID: 100 + len(created), Hostname: opts.Hostname, State: cherry.ServerStatePending}, nil
		},
	}

	p := serverParams(config.StatePresent)
	p.Count = 3

	mgr := NewServerManager(mock, telemetry.Discard())
	res, err := mgr.Apply(context.Background(), p)
	require.NoError(t, err)

	assert.True(t, res.Changed)
	require.Len(t, created, 3)
	assert.Equal(t, "web01.example.com", created[0].Hostname)
	assert.Equal(t, "web03.example.com", created[2].Hostname)
	assert.Equal(t, 42, created[0].ProjectID)
	assert.Equal(t, 161, created[0].PlanID)
}

func TestServerCreateResolvesSSHKeysAndIPs(t *testing.T) {
	t.Parallel()

	var created cherry.ServerCreateOpts
	mock := &cherry.MockClient{
		ListSSHKeysFunc: func(context.Context) ([]cherry.SSHKey, error) {
			return []cherry.SSHKey{{ID: 7, Label: "deploy"}, {ID: 8, Label: "other"}}, nil
		},
		ListIPsFunc: func(_ context.Context, _ int) ([]cherry.IPAddress, error) {
			return []cherry.IPAddress{
				{ID: "uuid-1", Address: "5.199.1.1", Type: cherry.IPTypeFloating},
			}, nil
		},
		CreateServerFunc: func(_ context.Context, opts cherry.ServerCreateOpts) (*cherry.Server, error) {
			created = opts
			return &cherry.Server{ID: 1, Hostname: opts.Hostname}, nil
		},
	}

	p := serverParams(config.StatePresent)
	p.Hostnames = []string{"web.example.com"}
	p.SSHLabels = []string{"deploy"}
	p.IPAddresses = []string{"5.199.1.1"}

	mgr := NewServerManager(mock, telemetry.Discard())
	_, err := mgr.Apply(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, []int{7}, created.SSHKeys)
	assert.Equal(t, []string{"uuid-1"}, created.IPAddresses)
}

func TestServerCreateMissingSSHKeySkipped(t *testing.T) {
	t.Parallel()

	mock := &cherry.MockClient{
		ListSSHKeysFunc: func(context.Context) ([]cherry.SSHKey, error) {
			return nil, nil
		},
	}

	p := serverParams(config.StatePresent)
	p.Hostnames = []string{"web.example.com"}
	p.SSHLabels = []string{"gone"}

	mgr := NewServerManager(mock, telemetry.Discard())
	res, err := mgr.Apply(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, res.Changed)
}

func TestServerCreateRejectedAddsHostnameContext(t *testing.T) {
	t.Parallel()

	mock := &cherry.MockClient{
		CreateServerFunc: func(_ context.Context, _ cherry.ServerCreateOpts) (*cherry.Server, error) {
			return nil, &cherry.Error{Code: 400, Message: "plan not available in region"}
		},
	}

	p := serverParams(config.StatePresent)
	p.Hostnames = []string{"web.example.com"}

	mgr := NewServerManager(mock, telemetry.Discard())
	_, err := mgr.Apply(context.Background(), p)
	assert.ErrorContains(t, err, `deploy of "web.example.com" rejected`)
	assert.ErrorContains(t, err, "plan not available in region")
	assert.True(t, cherry.IsBadRequest(err))
}

func TestServerCreateFloatingIPNeedsSingleServer(t *testing.T) {
	t.Parallel()

	p := serverParams(config.StatePresent)
	p.Count = 2
	p.IPAddresses = []string{"5.199.1.1"}

	mgr := NewServerManager(&cherry.MockClient{}, telemetry.Discard())
	_, err := mgr.Apply(context.Background(), p)
	assert.ErrorContains(t, err, "single new server")
}

func TestServerActiveWaitsForActivation(t *testing.T) {
	t.Parallel()

	polls := 0
	mock := &cherry.MockClient{
		CreateServerFunc: func(_ context.Context, opts cherry.ServerCreateOpts) (*cherry.Server, error) {
			return &cherry.Server{ID: 9, Hostname: opts.Hostname, State: cherry.ServerStatePending}, nil
		},
		GetServerFunc: func(_ context.Context, serverID int) (*cherry.Server, error) {
			polls++
			state := cherry.ServerStatePending
			if polls >= 3 {
				state = cherry.ServerStateActive
			}
			return &cherry.Server{ID: serverID, State: state}, nil
		},
	}

	p := serverParams(config.StateActive)
	p.Hostnames = []string{"web.example.com"}

	mgr := NewServerManager(mock, telemetry.Discard(), WithPollInterval(time.Millisecond))
	res, err := mgr.Apply(context.Background(), p)
	require.NoError(t, err)

	assert.True(t, res.Changed)
	require.Len(t, res.Records, 1)
	assert.Equal(t, cherry.ServerStateActive, res.Records[0].State)
	assert.Equal(t, 3, polls)
}

func TestServerActiveTimesOut(t *testing.T) {
	t.Parallel()

	mock := &cherry.MockClient{
		CreateServerFunc: func(_ context.Context, opts cherry.ServerCreateOpts) (*cherry.Server, error) {
			return &cherry.Server{ID: 9, Hostname: opts.Hostname, State: cherry.ServerStatePending}, nil
		},
		GetServerFunc: func(_ context.Context, serverID int) (*cherry.Server, error) {
			return &cherry.Server{ID: serverID, State: cherry.ServerStatePending}, nil
		},
	}

	p := serverParams(config.StateActive)
	p.Hostnames = []string{"web.example.com"}
	p.WaitTimeout = 0 // expire immediately after the first poll

	mgr := NewServerManager(mock, telemetry.Discard(), WithPollInterval(time.Millisecond))
	_, err := mgr.Apply(context.Background(), p)
	require.Error(t, err)
	assert.ErrorContains(t, err, "timed out")
	assert.ErrorContains(t, err, "9 (pending)")
}

func TestServerTerminateIdempotent(t *testing.T) {
	t.Parallel()

	mock := &cherry.MockClient{
		GetServerFunc: func(_ context.Context, serverID int) (*cherry.Server, error) {
			return nil, &cherry.Error{Code: 404, Message: "not found"}
		},
	}

	p := config.ServerParams{State: config.StateAbsent, ProjectID: 42, ServerIDs: []int{5}}
	p.SetDefaults()

	mgr := NewServerManager(mock, telemetry.Discard())
	res, err := mgr.Apply(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Empty(t, res.Records)
}

func TestServerTerminateSkipsTerminating(t *testing.T) {
	t.Parallel()

	terminated := false
	mock := &cherry.MockClient{
		GetServerFunc: func(_ context.Context, serverID int) (*cherry.Server, error) {
			return &cherry.Server{ID: serverID, State: cherry.ServerStateTerminating}, nil
		},
		TerminateServerFunc: func(_ context.Context, serverID int) (*cherry.Server, error) {
			terminated = true
			return &cherry.Server{ID: serverID}, nil
		},
	}

	p := config.ServerParams{State: config.StateAbsent, ProjectID: 42, ServerID: 5}
	p.SetDefaults()

	mgr := NewServerManager(mock, telemetry.Discard())
	res, err := mgr.Apply(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.False(t, terminated)
	require.Len(t, res.Records, 1)
}

func TestServerTerminateByHostname(t *testing.T) {
	t.Parallel()

	var terminated []int
	mock := &cherry.MockClient{
		ListServersFunc: func(_ context.Context, _ int) ([]cherry.Server, error) {
			return []cherry.Server{
				{ID: 1, Hostname: "web01.example.com", State: cherry.ServerStateActive},
				{ID: 2, Hostname: "web02.example.com", State: cherry.ServerStateActive},
			}, nil
		},
		GetServerFunc: func(_ context.Context, serverID int) (*cherry.Server, error) {
			return &cherry.Server{ID: serverID, State: cherry.ServerStateActive}, nil
		},
		TerminateServerFunc: func(_ context.Context, serverID int) (*cherry.Server, error) {
			terminated = append(terminated, serverID)
			return &cherry.Server{ID: serverID, State: cherry.ServerStateTerminating}, nil
		},
	}

	p := config.ServerParams{
		State:     config.StateAbsent,
		ProjectID: 42,
		Hostnames: []string{"web%02d.example.com"},
		Count:     2,
	}
	p.SetDefaults()

	mgr := NewServerManager(mock, telemetry.Discard())
	res, err := mgr.Apply(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, []int{1, 2}, terminated)
}

func TestServerPowerRequiresExistingTarget(t *testing.T) {
	t.Parallel()

	mock := &cherry.MockClient{
		ListServersFunc: func(_ context.Context, _ int) ([]cherry.Server, error) {
			return nil, nil
		},
	}

	p := config.ServerParams{
		State:     config.StateStopped,
		ProjectID: 42,
		Hostnames: []string{"gone.example.com"},
	}
	p.SetDefaults()

	mgr := NewServerManager(mock, telemetry.Discard())
	_, err := mgr.Apply(context.Background(), p)
	var nf *resolve.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestServerPowerActions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state config.State
	}{
		{state: config.StateRunning},
		{state: config.StateStopped},
		{state: config.StateRebooted},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.state), func(t *testing.T) {
			t.Parallel()

			var action string
			mock := &cherry.MockClient{
				PowerOnServerFunc: func(_ context.Context, serverID int) (*cherry.Server, error) {
					action = "power-on"
					return &cherry.Server{ID: serverID}, nil
				},
				PowerOffServerFunc: func(_ context.Context, serverID int) (*cherry.Server, error) {
					action = "power-off"
					return &cherry.Server{ID: serverID}, nil
				},
				RebootServerFunc: func(_ context.Context, serverID int) (*cherry.Server, error) {
					action = "reboot"
					return &cherry.Server{ID: serverID}, nil
				},
			}

			p := config.ServerParams{State: tt.state, ProjectID: 42, ServerID: 11}
			p.SetDefaults()

			mgr := NewServerManager(mock, telemetry.Discard())
			res, err := mgr.Apply(context.Background(), p)
			require.NoError(t, err)
			assert.True(t, res.Changed)

			want := map[config.State]string{
				config.StateRunning:  "power-on",
				config.StateStopped:  "power-off",
				config.StateRebooted: "reboot",
			}[tt.state]
			assert.Equal(t, want, action)
		})
	}
}
