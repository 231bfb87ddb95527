package cherry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/cherryops/internal/util/retry"
)

func testClient(t *testing.T, handler http.Handler) *RealClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRealClient("test-token",
		WithBaseURL(srv.URL),
		WithRetryOptions(retry.WithMaxRetries(0)),
	)
}

func TestListServers(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/projects/42/servers", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]Server{
			{ID: 1, Hostname: "web01.example.com", State: ServerStateActive},
			{ID: 2, Hostname: "web02.example.com", State: ServerStatePending},
		})
	}))

	servers, err := client.ListServers(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, "web01.example.com", servers[0].Hostname)
}

func TestCreateServerRequestBody(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/projects/42/servers", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "web01.example.com", body["hostname"])
		assert.Equal(t, float64(161), body["plan_id"])
		assert.Equal(t, []any{float64(7)}, body["ssh_keys"])

		_ = json.NewEncoder(w).Encode(Server{ID: 9, Hostname: "web01.example.com", State: ServerStatePending})
	}))

	server, err := client.CreateServer(context.Background(), ServerCreateOpts{
		ProjectID: 42,
		Hostname:  "web01.example.com",
		Image:     "ubuntu_24_04",
		PlanID:    161,
		SSHKeys:   []int{7},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, server.ID)
}

func TestServerActions(t *testing.T) {
	t.Parallel()

	var gotAction string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/servers/9/actions", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotAction = body["type"]
		_ = json.NewEncoder(w).Encode(Server{ID: 9})
	}))

	_, err := client.PowerOnServer(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "power-on", gotAction)

	_, err = client.PowerOffServer(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "power-off", gotAction)

	_, err = client.RebootServer(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "reboot", gotAction)
}

func TestErrorResponseDecoded(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": 404, "message": "Server not found"}`))
	}))

	_, err := client.GetServer(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.ErrorContains(t, err, "Server not found")
}

func TestErrorResponseWithoutBody(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.GetServer(context.Background(), 1)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Code)
	assert.Equal(t, "Forbidden", apiErr.Message)
}

func TestTransientErrorsRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(Server{ID: 1})
	}))
	t.Cleanup(srv.Close)

	client := NewRealClient("test-token",
		WithBaseURL(srv.URL),
		WithRetryOptions(retry.WithMaxRetries(3), retry.WithInitialDelay(0)),
	)

	server, err := client.GetServer(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, server.ID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientErrorsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": 400, "message": "invalid plan"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewRealClient("test-token",
		WithBaseURL(srv.URL),
		WithRetryOptions(retry.WithMaxRetries(3), retry.WithInitialDelay(0)),
	)

	_, err := client.GetServer(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsBadRequest(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRemoveIPEmptyResponse(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/projects/42/ips/uuid-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	ip, err := client.RemoveIP(context.Background(), 42, "uuid-1")
	require.NoError(t, err)
	require.NotNil(t, ip)
}

func TestUpdateIPAlwaysSubmitsRoute(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// routed_to must be present even when empty so routes can be cleared.
		v, ok := body["routed_to"]
		assert.True(t, ok)
		assert.Equal(t, "", v)
		_ = json.NewEncoder(w).Encode(IPAddress{ID: "uuid-1"})
	}))

	_, err := client.UpdateIP(context.Background(), 42, "uuid-1", IPUpdateOpts{PtrRecord: "x."})
	require.NoError(t, err)
}

func TestAttachVolume(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/projects/42/storages/10/attachments", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(7), body["attach_to"])
		_ = json.NewEncoder(w).Encode(Volume{ID: 10, AttachedTo: &Attachment{ID: 7}})
	}))

	volume, err := client.AttachVolume(context.Background(), 42, 10, 7)
	require.NoError(t, err)
	require.NotNil(t, volume.AttachedTo)
	assert.Equal(t, 7, volume.AttachedTo.ID)
}
