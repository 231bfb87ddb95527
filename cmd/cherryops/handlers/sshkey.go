package handlers

import (
	"context"

	"github.com/imamik/cherryops/internal/config"
	"github.com/imamik/cherryops/internal/manage"
)

// SSHKey converges account SSH keys to the state described by the task file.
func SSHKey(ctx context.Context, opts Options) error {
	var p config.SSHKeyParams
	token, err := prepare(opts, &p)
	if err != nil {
		return err
	}
	if opts.Check {
		return writeResult("sshkey", false, nil)
	}

	mgr := manage.NewSSHKeyManager(newClient(token), newLogger(opts))
	res, err := mgr.Apply(ctx, p)
	if err != nil {
		return err
	}
	return writeResult("sshkey", res.Changed, res.Records)
}
