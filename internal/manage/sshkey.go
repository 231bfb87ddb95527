package manage

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/imamik/cherryops/internal/config"
	"github.com/imamik/cherryops/internal/platform/cherry"
	"github.com/imamik/cherryops/internal/resolve"
	"github.com/imamik/cherryops/internal/util/keyutil"
)

// SSHKeyManager reconciles account-level SSH keys.
type SSHKeyManager struct {
	client cherry.Client
	log    zerolog.Logger
}

// NewSSHKeyManager creates a new SSH key manager.
func NewSSHKeyManager(client cherry.Client, log zerolog.Logger) *SSHKeyManager {
	return &SSHKeyManager{client: client, log: log}
}

// Apply reconciles the desired SSH key state.
func (m *SSHKeyManager) Apply(ctx context.Context, p config.SSHKeyParams) (Result[cherry.SSHKey], error) {
	switch p.State {
	case config.StatePresent:
		return m.create(ctx, p)
	case config.StateAbsent:
		return m.remove(ctx, p)
	default:
		return Result[cherry.SSHKey]{}, fmt.Errorf("unknown ssh key state %q", p.State)
	}
}

// create uploads a single key under the given label. The key material must
// parse as an OpenSSH public key.
func (m *SSHKeyManager) create(ctx context.Context, p config.SSHKeyParams) (Result[cherry.SSHKey], error) {
	material, err := m.keyMaterial(p)
	if err != nil {
		return Result[cherry.SSHKey]{}, err
	}
	if err := keyutil.Validate(material); err != nil {
		return Result[cherry.SSHKey]{}, err
	}

	key, err := m.client.CreateSSHKey(ctx, p.Labels[0], material)
	if err != nil {
		return Result[cherry.SSHKey]{}, err
	}
	m.log.Info().Int("id", key.ID).Str("label", key.Label).Msg("ssh key added")
	return Result[cherry.SSHKey]{Changed: true, Records: []*cherry.SSHKey{key}}, nil
}

// remove deletes every key the given selector resolves to. Selectors that
// match nothing resolve to an empty set and change nothing.
func (m *SSHKeyManager) remove(ctx context.Context, p config.SSHKeyParams) (Result[cherry.SSHKey], error) {
	sel, err := m.selector(p)
	if err != nil {
		return Result[cherry.SSHKey]{}, err
	}

	keys, err := m.client.ListSSHKeys(ctx)
	if err != nil {
		return Result[cherry.SSHKey]{}, err
	}
	ids, err := resolve.SSHKeyIDs(keys, sel, resolve.Allow)
	if err != nil {
		return Result[cherry.SSHKey]{}, err
	}

	return Collect(ctx, ids, func(ctx context.Context, id int) (Outcome[cherry.SSHKey], error) {
		key, err := m.client.DeleteSSHKey(ctx, id)
		if cherry.IsNotFound(err) {
			return Outcome[cherry.SSHKey]{}, nil
		}
		if err != nil {
			return Outcome[cherry.SSHKey]{}, err
		}
		m.log.Info().Int("id", id).Msg("ssh key deleted")
		return Outcome[cherry.SSHKey]{Changed: true, Record: key}, nil
	})
}

// keyMaterial returns the public key material from the key parameter or the
// referenced key file, stripped of trailing whitespace.
func (m *SSHKeyManager) keyMaterial(p config.SSHKeyParams) (string, error) {
	if len(p.Keys) > 0 {
		return strings.TrimRight(p.Keys[0], " \t\r\n"), nil
	}
	return keyutil.ReadFile(p.KeyFiles[0])
}

// selector builds a key selector from whichever identifying parameter is
// set. Key files are matched by fingerprint rather than raw material, since
// the file's comment or whitespace may differ from the stored key.
func (m *SSHKeyManager) selector(p config.SSHKeyParams) (resolve.Selector, error) {
	switch {
	case len(p.KeyIDs) > 0:
		return resolve.NewSelector(resolve.KindID, itoas(p.KeyIDs)...)
	case len(p.Labels) > 0:
		return resolve.NewSelector(resolve.KindLabel, p.Labels...)
	case len(p.Fingerprints) > 0:
		return resolve.NewSelector(resolve.KindFingerprint, p.Fingerprints...)
	case len(p.Keys) > 0:
		return resolve.NewSelector(resolve.KindKey, p.Keys...)
	default:
		prints := make([]string, 0, len(p.KeyFiles))
		for _, path := range p.KeyFiles {
			material, err := keyutil.ReadFile(path)
			if err != nil {
				return resolve.Selector{}, err
			}
			print, err := keyutil.Fingerprint(material)
			if err != nil {
				return resolve.Selector{}, fmt.Errorf("%s: %w", path, err)
			}
			prints = append(prints, print)
		}
		return resolve.NewSelector(resolve.KindFingerprint, prints...)
	}
}
