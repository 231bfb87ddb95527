package cherry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/imamik/cherryops/internal/util/retry"
)

// DefaultBaseURL is the production Cherry Servers API endpoint.
const DefaultBaseURL = "https://api.cherryservers.com/v1"

// RealClient implements Client against the Cherry Servers REST API.
type RealClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
	userAgent  string
	retryOpts  []retry.Option
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithBaseURL overrides the API endpoint (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *RealClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// WithRetryOptions overrides the backoff behavior for transient API failures.
func WithRetryOptions(opts ...retry.Option) ClientOption {
	return func(c *RealClient) {
		c.retryOpts = opts
	}
}

// NewRealClient creates a new RealClient with optional configuration.
func NewRealClient(token string, opts ...ClientOption) *RealClient {
	c := &RealClient{
		token:      token,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "cherryops",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Client = (*RealClient)(nil)

// do performs one API request, retrying transient failures (transport
// errors, 5xx responses and 429s) with backoff. Client errors are final.
func (c *RealClient) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = b
	}

	return retry.Do(ctx, func() error {
		return c.attempt(ctx, method, path, payload, out)
	}, c.retryOpts...)
}

// attempt performs a single request. Responses with status >= 400 are
// decoded into *Error; when the body carries no code/message document the
// HTTP status is used instead. A nil out skips response decoding.
func (c *RealClient) attempt(ctx context.Context, method, path string, payload []byte, out any) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return retry.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{}
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil || apiErr.Code == 0 {
			apiErr.Code = resp.StatusCode
			if apiErr.Message == "" {
				apiErr.Message = http.StatusText(resp.StatusCode)
			}
		}
		if apiErr.Code >= http.StatusInternalServerError || apiErr.Code == http.StatusTooManyRequests {
			return apiErr
		}
		return retry.Fatal(apiErr)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return retry.Fatal(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// ListServers returns all servers of a project.
func (c *RealClient) ListServers(ctx context.Context, projectID int) ([]Server, error) {
	var servers []Server
	path := fmt.Sprintf("/projects/%d/servers", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// GetServer returns a single server by id.
func (c *RealClient) GetServer(ctx context.Context, serverID int) (*Server, error) {
	server := &Server{}
	path := fmt.Sprintf("/servers/%d", serverID)
	if err := c.do(ctx, http.MethodGet, path, nil, server); err != nil {
		return nil, err
	}
	return server, nil
}

type serverCreateRequest struct {
	Hostname    string   `json:"hostname"`
	Image       string   `json:"image,omitempty"`
	Region      string   `json:"region,omitempty"`
	PlanID      int      `json:"plan_id"`
	SSHKeys     []int    `json:"ssh_keys,omitempty"`
	IPAddresses []string `json:"ip_addresses,omitempty"`
	SpotMarket  bool     `json:"spot_market,omitempty"`
	StorageID   int      `json:"storage_id,omitempty"`
}

// CreateServer orders a new bare-metal server.
func (c *RealClient) CreateServer(ctx context.Context, opts ServerCreateOpts) (*Server, error) {
	server := &Server{}
	path := fmt.Sprintf("/projects/%d/servers", opts.ProjectID)
	req := serverCreateRequest{
		Hostname:    opts.Hostname,
		Image:       opts.Image,
		Region:      opts.Region,
		PlanID:      opts.PlanID,
		SSHKeys:     opts.SSHKeys,
		IPAddresses: opts.IPAddresses,
		SpotMarket:  opts.SpotMarket,
		StorageID:   opts.StorageID,
	}
	if err := c.do(ctx, http.MethodPost, path, req, server); err != nil {
		return nil, err
	}
	return server, nil
}

// TerminateServer cancels a server. Termination is asynchronous; the returned
// record reports the transitional state.
func (c *RealClient) TerminateServer(ctx context.Context, serverID int) (*Server, error) {
	server := &Server{}
	path := fmt.Sprintf("/servers/%d", serverID)
	if err := c.do(ctx, http.MethodDelete, path, nil, server); err != nil {
		return nil, err
	}
	return server, nil
}

type serverActionRequest struct {
	Type string `json:"type"`
}

func (c *RealClient) serverAction(ctx context.Context, serverID int, action string) (*Server, error) {
	server := &Server{}
	path := fmt.Sprintf("/servers/%d/actions", serverID)
	if err := c.do(ctx, http.MethodPost, path, serverActionRequest{Type: action}, server); err != nil {
		return nil, err
	}
	return server, nil
}

// PowerOnServer powers a server on.
func (c *RealClient) PowerOnServer(ctx context.Context, serverID int) (*Server, error) {
	return c.serverAction(ctx, serverID, "power-on")
}

// PowerOffServer shuts a server down.
func (c *RealClient) PowerOffServer(ctx context.Context, serverID int) (*Server, error) {
	return c.serverAction(ctx, serverID, "power-off")
}

// RebootServer reboots a server.
func (c *RealClient) RebootServer(ctx context.Context, serverID int) (*Server, error) {
	return c.serverAction(ctx, serverID, "reboot")
}

// ListIPs returns all IP addresses of a project, floating and primary.
func (c *RealClient) ListIPs(ctx context.Context, projectID int) ([]IPAddress, error) {
	var ips []IPAddress
	path := fmt.Sprintf("/projects/%d/ips", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &ips); err != nil {
		return nil, err
	}
	return ips, nil
}

// GetIP returns a single IP address by id.
func (c *RealClient) GetIP(ctx context.Context, projectID int, ipID string) (*IPAddress, error) {
	ip := &IPAddress{}
	path := fmt.Sprintf("/projects/%d/ips/%s", projectID, ipID)
	if err := c.do(ctx, http.MethodGet, path, nil, ip); err != nil {
		return nil, err
	}
	return ip, nil
}

type ipCreateRequest struct {
	Type       string `json:"type,omitempty"`
	Region     string `json:"region,omitempty"`
	PtrRecord  string `json:"ptr_record,omitempty"`
	ARecord    string `json:"a_record,omitempty"`
	RoutedTo   string `json:"routed_to,omitempty"`
	AssignedTo string `json:"assigned_to,omitempty"`
}

// CreateIP creates a new floating IP.
func (c *RealClient) CreateIP(ctx context.Context, projectID int, opts IPCreateOpts) (*IPAddress, error) {
	ip := &IPAddress{}
	path := fmt.Sprintf("/projects/%d/ips", projectID)
	req := ipCreateRequest{
		Type:       opts.Type,
		Region:     opts.Region,
		PtrRecord:  opts.PtrRecord,
		ARecord:    opts.ARecord,
		RoutedTo:   opts.RoutedTo,
		AssignedTo: opts.AssignedTo,
	}
	if req.Type == "" {
		req.Type = IPTypeFloating
	}
	if err := c.do(ctx, http.MethodPost, path, req, ip); err != nil {
		return nil, err
	}
	return ip, nil
}

type ipUpdateRequest struct {
	PtrRecord  string `json:"ptr_record,omitempty"`
	ARecord    string `json:"a_record,omitempty"`
	RoutedTo   string `json:"routed_to"`
	AssignedTo string `json:"assigned_to,omitempty"`
}

// UpdateIP updates the PTR record, A record, route and assignment of a
// floating IP. RoutedTo is always submitted so a route can be cleared.
func (c *RealClient) UpdateIP(ctx context.Context, projectID int, ipID string, opts IPUpdateOpts) (*IPAddress, error) {
	ip := &IPAddress{}
	path := fmt.Sprintf("/projects/%d/ips/%s", projectID, ipID)
	req := ipUpdateRequest{
		PtrRecord:  opts.PtrRecord,
		ARecord:    opts.ARecord,
		RoutedTo:   opts.RoutedTo,
		AssignedTo: opts.AssignedTo,
	}
	if err := c.do(ctx, http.MethodPut, path, req, ip); err != nil {
		return nil, err
	}
	return ip, nil
}

// RemoveIP deletes a floating IP from the project.
func (c *RealClient) RemoveIP(ctx context.Context, projectID int, ipID string) (*IPAddress, error) {
	ip := &IPAddress{}
	path := fmt.Sprintf("/projects/%d/ips/%s", projectID, ipID)
	if err := c.do(ctx, http.MethodDelete, path, nil, ip); err != nil {
		return nil, err
	}
	return ip, nil
}

// ListSSHKeys returns all SSH keys of the account.
func (c *RealClient) ListSSHKeys(ctx context.Context) ([]SSHKey, error) {
	var keys []SSHKey
	if err := c.do(ctx, http.MethodGet, "/ssh-keys", nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

type sshKeyCreateRequest struct {
	Label string `json:"label"`
	Key   string `json:"key"`
}

// CreateSSHKey uploads a public key to the client portal.
func (c *RealClient) CreateSSHKey(ctx context.Context, label, key string) (*SSHKey, error) {
	sshKey := &SSHKey{}
	req := sshKeyCreateRequest{Label: label, Key: key}
	if err := c.do(ctx, http.MethodPost, "/ssh-keys", req, sshKey); err != nil {
		return nil, err
	}
	return sshKey, nil
}

// DeleteSSHKey deletes an SSH key by id.
func (c *RealClient) DeleteSSHKey(ctx context.Context, keyID int) (*SSHKey, error) {
	sshKey := &SSHKey{}
	path := fmt.Sprintf("/ssh-keys/%d", keyID)
	if err := c.do(ctx, http.MethodDelete, path, nil, sshKey); err != nil {
		return nil, err
	}
	return sshKey, nil
}

// GetVolume returns a single storage volume by id.
func (c *RealClient) GetVolume(ctx context.Context, projectID, volumeID int) (*Volume, error) {
	volume := &Volume{}
	path := fmt.Sprintf("/projects/%d/storages/%d", projectID, volumeID)
	if err := c.do(ctx, http.MethodGet, path, nil, volume); err != nil {
		return nil, err
	}
	return volume, nil
}

type volumeCreateRequest struct {
	Size        int    `json:"size"`
	Description string `json:"description,omitempty"`
	Region      string `json:"region,omitempty"`
}

// CreateVolume requests a new storage volume.
func (c *RealClient) CreateVolume(ctx context.Context, projectID int, opts VolumeCreateOpts) (*Volume, error) {
	volume := &Volume{}
	path := fmt.Sprintf("/projects/%d/storages", projectID)
	req := volumeCreateRequest{
		Size:        opts.Size,
		Description: opts.Description,
		Region:      opts.Region,
	}
	if err := c.do(ctx, http.MethodPost, path, req, volume); err != nil {
		return nil, err
	}
	return volume, nil
}

type volumeUpdateRequest struct {
	Size        int    `json:"size,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateVolume resizes a storage volume or changes its description.
func (c *RealClient) UpdateVolume(ctx context.Context, projectID, volumeID int, opts VolumeUpdateOpts) (*Volume, error) {
	volume := &Volume{}
	path := fmt.Sprintf("/projects/%d/storages/%d", projectID, volumeID)
	req := volumeUpdateRequest{Size: opts.Size, Description: opts.Description}
	if err := c.do(ctx, http.MethodPut, path, req, volume); err != nil {
		return nil, err
	}
	return volume, nil
}

type volumeAttachRequest struct {
	AttachTo int `json:"attach_to"`
}

// AttachVolume attaches a storage volume to a server.
func (c *RealClient) AttachVolume(ctx context.Context, projectID, volumeID, serverID int) (*Volume, error) {
	volume := &Volume{}
	path := fmt.Sprintf("/projects/%d/storages/%d/attachments", projectID, volumeID)
	if err := c.do(ctx, http.MethodPost, path, volumeAttachRequest{AttachTo: serverID}, volume); err != nil {
		return nil, err
	}
	return volume, nil
}

// DetachVolume detaches a storage volume from its server.
func (c *RealClient) DetachVolume(ctx context.Context, projectID, volumeID int) (*Volume, error) {
	volume := &Volume{}
	path := fmt.Sprintf("/projects/%d/storages/%d/attachments", projectID, volumeID)
	if err := c.do(ctx, http.MethodDelete, path, nil, volume); err != nil {
		return nil, err
	}
	return volume, nil
}

// RemoveVolume deletes a storage volume from the project.
func (c *RealClient) RemoveVolume(ctx context.Context, projectID, volumeID int) (*Volume, error) {
	volume := &Volume{}
	path := fmt.Sprintf("/projects/%d/storages/%d", projectID, volumeID)
	if err := c.do(ctx, http.MethodDelete, path, nil, volume); err != nil {
		return nil, err
	}
	return volume, nil
}
