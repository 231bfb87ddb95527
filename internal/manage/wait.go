package manage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imamik/cherryops/internal/platform/cherry"
)

// waitActive polls the given servers until every one of them reports the
// active state, returning the final records in the order the ids were given.
// It fails when the timeout elapses before all servers activate.
func (m *ServerManager) waitActive(ctx context.Context, ids []int, timeout time.Duration) ([]*cherry.Server, error) {
	deadline := time.Now().Add(timeout)
	records := make([]*cherry.Server, len(ids))

	for {
		if err := sleepCtx(ctx, m.pollInterval); err != nil {
			return nil, err
		}

		allActive := true
		for i, id := range ids {
			if records[i] != nil && records[i].State == cherry.ServerStateActive {
				continue
			}
			server, err := m.client.GetServer(ctx, id)
			if err != nil {
				return nil, err
			}
			records[i] = server
			if server.State != cherry.ServerStateActive {
				allActive = false
			}
		}
		if allActive {
			return records, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out after %s waiting for servers to become active: %s",
				timeout, pendingList(records))
		}
	}
}

// pendingList names the servers that have not yet reached the active state.
func pendingList(records []*cherry.Server) string {
	var parts []string
	for _, r := range records {
		if r != nil && r.State != cherry.ServerStateActive {
			parts = append(parts, fmt.Sprintf("%d (%s)", r.ID, r.State))
		}
	}
	return strings.Join(parts, ", ")
}

// sleepCtx sleeps for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
