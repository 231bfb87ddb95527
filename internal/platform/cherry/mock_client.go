package cherry

import (
	"context"
)

// MockClient is a mock implementation of Client. Each method delegates to the
// corresponding Func field when set and returns an empty record otherwise.
type MockClient struct {
	ListServersFunc     func(ctx context.Context, projectID int) ([]Server, error)
	GetServerFunc       func(ctx context.Context, serverID int) (*Server, error)
	CreateServerFunc    func(ctx context.Context, opts ServerCreateOpts) (*Server, error)
	TerminateServerFunc func(ctx context.Context, serverID int) (*Server, error)
	PowerOnServerFunc   func(ctx context.Context, serverID int) (*Server, error)
	PowerOffServerFunc  func(ctx context.Context, serverID int) (*Server, error)
	RebootServerFunc    func(ctx context.Context, serverID int) (*Server, error)

	ListIPsFunc  func(ctx context.Context, projectID int) ([]IPAddress, error)
	GetIPFunc    func(ctx context.Context, projectID int, ipID string) (*IPAddress, error)
	CreateIPFunc func(ctx context.Context, projectID int, opts IPCreateOpts) (*IPAddress, error)
	UpdateIPFunc func(ctx context.Context, projectID int, ipID string, opts IPUpdateOpts) (*IPAddress, error)
	RemoveIPFunc func(ctx context.Context, projectID int, ipID string) (*IPAddress, error)

	ListSSHKeysFunc  func(ctx context.Context) ([]SSHKey, error)
	CreateSSHKeyFunc func(ctx context.Context, label, key string) (*SSHKey, error)
	DeleteSSHKeyFunc func(ctx context.Context, keyID int) (*SSHKey, error)

	GetVolumeFunc    func(ctx context.Context, projectID, volumeID int) (*Volume, error)
	CreateVolumeFunc func(ctx context.Context, projectID int, opts VolumeCreateOpts) (*Volume, error)
	UpdateVolumeFunc func(ctx context.Context, projectID, volumeID int, opts VolumeUpdateOpts) (*Volume, error)
	AttachVolumeFunc func(ctx context.Context, projectID, volumeID, serverID int) (*Volume, error)
	DetachVolumeFunc func(ctx context.Context, projectID, volumeID int) (*Volume, error)
	RemoveVolumeFunc func(ctx context.Context, projectID, volumeID int) (*Volume, error)
}

// Ensure interface compliance
var _ Client = (*MockClient)(nil)

// ListServers mocks listing project servers.
func (m *MockClient) ListServers(ctx context.Context, projectID int) ([]Server, error) {
	if m.ListServersFunc != nil {
		return m.ListServersFunc(ctx, projectID)
	}
	return nil, nil
}

// GetServer mocks fetching a server.
func (m *MockClient) GetServer(ctx context.Context, serverID int) (*Server, error) {
	if m.GetServerFunc != nil {
		return m.GetServerFunc(ctx, serverID)
	}
	return &Server{ID: serverID}, nil
}

// CreateServer mocks server creation.
func (m *MockClient) CreateServer(ctx context.Context, opts ServerCreateOpts) (*Server, error) {
	if m.CreateServerFunc != nil {
		return m.CreateServerFunc(ctx, opts)
	}
	return &Server{ID: 1, Hostname: opts.Hostname, State: ServerStatePending}, nil
}

// TerminateServer mocks server termination.
func (m *MockClient) TerminateServer(ctx context.Context, serverID int) (*Server, error) {
	if m.TerminateServerFunc != nil {
		return m.TerminateServerFunc(ctx, serverID)
	}
	return &Server{ID: serverID, State: ServerStateTerminating}, nil
}

// PowerOnServer mocks powering a server on.
func (m *MockClient) PowerOnServer(ctx context.Context, serverID int) (*Server, error) {
	if m.PowerOnServerFunc != nil {
		return m.PowerOnServerFunc(ctx, serverID)
	}
	return &Server{ID: serverID}, nil
}

// PowerOffServer mocks shutting a server down.
func (m *MockClient) PowerOffServer(ctx context.Context, serverID int) (*Server, error) {
	if m.PowerOffServerFunc != nil {
		return m.PowerOffServerFunc(ctx, serverID)
	}
	return &Server{ID: serverID}, nil
}

// RebootServer mocks rebooting a server.
func (m *MockClient) RebootServer(ctx context.Context, serverID int) (*Server, error) {
	if m.RebootServerFunc != nil {
		return m.RebootServerFunc(ctx, serverID)
	}
	return &Server{ID: serverID}, nil
}

// ListIPs mocks listing project IP addresses.
func (m *MockClient) ListIPs(ctx context.Context, projectID int) ([]IPAddress, error) {
	if m.ListIPsFunc != nil {
		return m.ListIPsFunc(ctx, projectID)
	}
	return nil, nil
}

// GetIP mocks fetching an IP address.
func (m *MockClient) GetIP(ctx context.Context, projectID int, ipID string) (*IPAddress, error) {
	if m.GetIPFunc != nil {
		return m.GetIPFunc(ctx, projectID, ipID)
	}
	return &IPAddress{ID: ipID}, nil
}

// CreateIP mocks floating IP creation.
func (m *MockClient) CreateIP(ctx context.Context, projectID int, opts IPCreateOpts) (*IPAddress, error) {
	if m.CreateIPFunc != nil {
		return m.CreateIPFunc(ctx, projectID, opts)
	}
	return &IPAddress{ID: "mock-ip", Type: IPTypeFloating}, nil
}

// UpdateIP mocks floating IP updates.
func (m *MockClient) UpdateIP(ctx context.Context, projectID int, ipID string, opts IPUpdateOpts) (*IPAddress, error) {
	if m.UpdateIPFunc != nil {
		return m.UpdateIPFunc(ctx, projectID, ipID, opts)
	}
	return &IPAddress{ID: ipID, Type: IPTypeFloating}, nil
}

// RemoveIP mocks floating IP removal.
func (m *MockClient) RemoveIP(ctx context.Context, projectID int, ipID string) (*IPAddress, error) {
	if m.RemoveIPFunc != nil {
		return m.RemoveIPFunc(ctx, projectID, ipID)
	}
	return &IPAddress{ID: ipID, Type: IPTypeFloating}, nil
}

// ListSSHKeys mocks listing SSH keys.
func (m *MockClient) ListSSHKeys(ctx context.Context) ([]SSHKey, error) {
	if m.ListSSHKeysFunc != nil {
		return m.ListSSHKeysFunc(ctx)
	}
	return nil, nil
}

// CreateSSHKey mocks SSH key creation.
func (m *MockClient) CreateSSHKey(ctx context.Context, label, key string) (*SSHKey, error) {
	if m.CreateSSHKeyFunc != nil {
		return m.CreateSSHKeyFunc(ctx, label, key)
	}
	return &SSHKey{ID: 1, Label: label, Key: key}, nil
}

// DeleteSSHKey mocks SSH key deletion.
func (m *MockClient) DeleteSSHKey(ctx context.Context, keyID int) (*SSHKey, error) {
	if m.DeleteSSHKeyFunc != nil {
		return m.DeleteSSHKeyFunc(ctx, keyID)
	}
	return &SSHKey{ID: keyID}, nil
}

// GetVolume mocks fetching a storage volume.
func (m *MockClient) GetVolume(ctx context.Context, projectID, volumeID int) (*Volume, error) {
	if m.GetVolumeFunc != nil {
		return m.GetVolumeFunc(ctx, projectID, volumeID)
	}
	return &Volume{ID: volumeID}, nil
}

// CreateVolume mocks storage volume creation.
func (m *MockClient) CreateVolume(ctx context.Context, projectID int, opts VolumeCreateOpts) (*Volume, error) {
	if m.CreateVolumeFunc != nil {
		return m.CreateVolumeFunc(ctx, projectID, opts)
	}
	return &Volume{ID: 1, Size: opts.Size, Description: opts.Description}, nil
}

// UpdateVolume mocks storage volume resizing.
func (m *MockClient) UpdateVolume(ctx context.Context, projectID, volumeID int, opts VolumeUpdateOpts) (*Volume, error) {
	if m.UpdateVolumeFunc != nil {
		return m.UpdateVolumeFunc(ctx, projectID, volumeID, opts)
	}
	return &Volume{ID: volumeID, Size: opts.Size}, nil
}

// AttachVolume mocks attaching a volume to a server.
func (m *MockClient) AttachVolume(ctx context.Context, projectID, volumeID, serverID int) (*Volume, error) {
	if m.AttachVolumeFunc != nil {
		return m.AttachVolumeFunc(ctx, projectID, volumeID, serverID)
	}
	return &Volume{ID: volumeID, AttachedTo: &Attachment{ID: serverID}}, nil
}

// DetachVolume mocks detaching a volume from its server.
func (m *MockClient) DetachVolume(ctx context.Context, projectID, volumeID int) (*Volume, error) {
	if m.DetachVolumeFunc != nil {
		return m.DetachVolumeFunc(ctx, projectID, volumeID)
	}
	return &Volume{ID: volumeID}, nil
}

// RemoveVolume mocks storage volume removal.
func (m *MockClient) RemoveVolume(ctx context.Context, projectID, volumeID int) (*Volume, error) {
	if m.RemoveVolumeFunc != nil {
		return m.RemoveVolumeFunc(ctx, projectID, volumeID)
	}
	return &Volume{ID: volumeID}, nil
}
