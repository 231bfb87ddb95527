// Package cherry provides a client for the Cherry Servers API.
package cherry

import (
	"context"
)

// ServerCreateOpts holds all parameters for ordering a bare-metal server.
type ServerCreateOpts struct {
	ProjectID   int
	Hostname    string
	Image       string
	Region      string
	PlanID      int
	SSHKeys     []int
	IPAddresses []string
	SpotMarket  bool
	StorageID   int
}

// IPCreateOpts holds all parameters for creating a floating IP.
type IPCreateOpts struct {
	Type       string
	Region     string
	PtrRecord  string
	ARecord    string
	RoutedTo   string
	AssignedTo string
}

// IPUpdateOpts holds the mutable fields of a floating IP. All fields are
// submitted on every update; an empty RoutedTo clears the route.
type IPUpdateOpts struct {
	PtrRecord  string
	ARecord    string
	RoutedTo   string
	AssignedTo string
}

// VolumeCreateOpts holds all parameters for requesting a storage volume.
type VolumeCreateOpts struct {
	Size        int
	Description string
	Region      string
}

// VolumeUpdateOpts holds the resizable fields of a storage volume.
type VolumeUpdateOpts struct {
	Size        int
	Description string
}

// ServerClient defines the interface for managing bare-metal servers.
type ServerClient interface {
	ListServers(ctx context.Context, projectID int) ([]Server, error)
	GetServer(ctx context.Context, serverID int) (*Server, error)
	CreateServer(ctx context.Context, opts ServerCreateOpts) (*Server, error)
	TerminateServer(ctx context.Context, serverID int) (*Server, error)
	PowerOnServer(ctx context.Context, serverID int) (*Server, error)
	PowerOffServer(ctx context.Context, serverID int) (*Server, error)
	RebootServer(ctx context.Context, serverID int) (*Server, error)
}

// IPClient defines the interface for managing floating IP addresses.
type IPClient interface {
	ListIPs(ctx context.Context, projectID int) ([]IPAddress, error)
	GetIP(ctx context.Context, projectID int, ipID string) (*IPAddress, error)
	CreateIP(ctx context.Context, projectID int, opts IPCreateOpts) (*IPAddress, error)
	UpdateIP(ctx context.Context, projectID int, ipID string, opts IPUpdateOpts) (*IPAddress, error)
	RemoveIP(ctx context.Context, projectID int, ipID string) (*IPAddress, error)
}

// SSHKeyClient defines the interface for managing SSH keys.
type SSHKeyClient interface {
	ListSSHKeys(ctx context.Context) ([]SSHKey, error)
	CreateSSHKey(ctx context.Context, label, key string) (*SSHKey, error)
	DeleteSSHKey(ctx context.Context, keyID int) (*SSHKey, error)
}

// StorageClient defines the interface for managing elastic block storage.
type StorageClient interface {
	GetVolume(ctx context.Context, projectID, volumeID int) (*Volume, error)
	CreateVolume(ctx context.Context, projectID int, opts VolumeCreateOpts) (*Volume, error)
	UpdateVolume(ctx context.Context, projectID, volumeID int, opts VolumeUpdateOpts) (*Volume, error)
	AttachVolume(ctx context.Context, projectID, volumeID, serverID int) (*Volume, error)
	DetachVolume(ctx context.Context, projectID, volumeID int) (*Volume, error)
	RemoveVolume(ctx context.Context, projectID, volumeID int) (*Volume, error)
}

// Client combines all Cherry Servers API interfaces.
type Client interface {
	ServerClient
	IPClient
	SSHKeyClient
	StorageClient
}
