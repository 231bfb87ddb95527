package manage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/imamik/cherryops/internal/config"
	"github.com/imamik/cherryops/internal/platform/cherry"
	"github.com/imamik/cherryops/internal/resolve"
)

// StorageManager reconciles elastic block storage volumes.
type StorageManager struct {
	client cherry.Client
	log    zerolog.Logger
}

// NewStorageManager creates a new storage volume manager.
func NewStorageManager(client cherry.Client, log zerolog.Logger) *StorageManager {
	return &StorageManager{client: client, log: log}
}

// Apply reconciles the desired volume state. Volumes are singular resources,
// so Apply yields a single outcome rather than a collection.
func (m *StorageManager) Apply(ctx context.Context, p config.StorageParams) (Outcome[cherry.Volume], error) {
	switch p.State {
	case config.StatePresent:
		return m.create(ctx, p)
	case config.StateAbsent:
		return m.remove(ctx, p)
	case config.StateUpdate:
		return m.update(ctx, p)
	default:
		return Outcome[cherry.Volume]{}, fmt.Errorf("unknown storage state %q", p.State)
	}
}

// create requests a new volume and attaches it when a target is given.
func (m *StorageManager) create(ctx context.Context, p config.StorageParams) (Outcome[cherry.Volume], error) {
	volume, err := m.client.CreateVolume(ctx, p.ProjectID, cherry.VolumeCreateOpts{
		Size:        p.Size,
		Description: p.Description,
		Region:      p.Region,
	})
	if err != nil {
		return Outcome[cherry.Volume]{}, err
	}
	m.log.Info().Int("id", volume.ID).Int("size", volume.Size).Msg("volume created")

	if p.HasAttachTarget() {
		volume, err = m.attach(ctx, p, volume.ID)
		if err != nil {
			return Outcome[cherry.Volume]{}, err
		}
	}
	return Outcome[cherry.Volume]{Changed: true, Record: volume}, nil
}

// remove deletes the volume. A volume the provider no longer knows is a
// no-op.
func (m *StorageManager) remove(ctx context.Context, p config.StorageParams) (Outcome[cherry.Volume], error) {
	volume, err := m.client.GetVolume(ctx, p.ProjectID, p.VolumeID)
	if cherry.IsNotFound(err) {
		return Outcome[cherry.Volume]{}, nil
	}
	if err != nil {
		return Outcome[cherry.Volume]{}, err
	}

	if volume.AttachedTo != nil {
		if _, err := m.client.DetachVolume(ctx, p.ProjectID, p.VolumeID); err != nil {
			return Outcome[cherry.Volume]{}, err
		}
	}
	if _, err := m.client.RemoveVolume(ctx, p.ProjectID, p.VolumeID); err != nil {
		return Outcome[cherry.Volume]{}, err
	}
	m.log.Info().Int("id", p.VolumeID).Msg("volume removed")
	return Outcome[cherry.Volume]{Changed: true, Record: volume}, nil
}

// update applies exactly one mutation to an existing volume: a resize when a
// size is given, an attachment when a target is given, or a detachment when
// neither is. Size and attachment targets are mutually exclusive upstream.
// Mutations are submitted as given, never diffed against current values.
func (m *StorageManager) update(ctx context.Context, p config.StorageParams) (Outcome[cherry.Volume], error) {
	current, err := m.client.GetVolume(ctx, p.ProjectID, p.VolumeID)
	if err != nil {
		return Outcome[cherry.Volume]{}, err
	}

	switch {
	case p.Size != 0:
		volume, err := m.client.UpdateVolume(ctx, p.ProjectID, p.VolumeID, cherry.VolumeUpdateOpts{
			Size:        p.Size,
			Description: p.Description,
		})
		if err != nil {
			return Outcome[cherry.Volume]{}, err
		}
		m.log.Info().Int("id", p.VolumeID).Int("size", p.Size).Msg("volume resized")
		return Outcome[cherry.Volume]{Changed: true, Record: volume}, nil

	case p.HasAttachTarget():
		volume, err := m.attach(ctx, p, p.VolumeID)
		if err != nil {
			return Outcome[cherry.Volume]{}, err
		}
		return Outcome[cherry.Volume]{Changed: true, Record: volume}, nil

	case current.AttachedTo != nil:
		volume, err := m.client.DetachVolume(ctx, p.ProjectID, p.VolumeID)
		if err != nil {
			return Outcome[cherry.Volume]{}, err
		}
		m.log.Info().Int("id", p.VolumeID).Msg("volume detached")
		return Outcome[cherry.Volume]{Changed: true, Record: volume}, nil

	default:
		return Outcome[cherry.Volume]{}, nil
	}
}

// attach resolves the attachment target and attaches the volume to it. The
// target server must exist.
func (m *StorageManager) attach(ctx context.Context, p config.StorageParams, volumeID int) (*cherry.Volume, error) {
	serverID := p.AttachToServerID
	if p.AttachToHostname != "" {
		servers, err := m.client.ListServers(ctx, p.ProjectID)
		if err != nil {
			return nil, err
		}
		sel, err := resolve.NewSelector(resolve.KindHostname, p.AttachToHostname)
		if err != nil {
			return nil, err
		}
		ids, err := resolve.ServerIDs(servers, sel, resolve.Require)
		if err != nil {
			return nil, err
		}
		serverID = ids[0]
	}

	volume, err := m.client.AttachVolume(ctx, p.ProjectID, volumeID, serverID)
	if err != nil {
		return nil, err
	}
	m.log.Info().Int("id", volumeID).Int("server_id", serverID).Msg("volume attached")
	return volume, nil
}
