package handlers

import (
	"context"

	"github.com/imamik/cherryops/internal/config"
	"github.com/imamik/cherryops/internal/manage"
)

// Storage converges a storage volume to the state described by the task file.
func Storage(ctx context.Context, opts Options) error {
	var p config.StorageParams
	token, err := prepare(opts, &p)
	if err != nil {
		return err
	}
	if opts.Check {
		return writeResult("volume", false, nil)
	}

	mgr := manage.NewStorageManager(newClient(token), newLogger(opts))
	out, err := mgr.Apply(ctx, p)
	if err != nil {
		return err
	}
	return writeResult("volume", out.Changed, out.Record)
}
