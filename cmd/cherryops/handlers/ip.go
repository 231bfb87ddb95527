package handlers

import (
	"context"

	"github.com/imamik/cherryops/internal/config"
	"github.com/imamik/cherryops/internal/manage"
)

// IP converges floating IP addresses to the state described by the task file.
func IP(ctx context.Context, opts Options) error {
	var p config.IPParams
	token, err := prepare(opts, &p)
	if err != nil {
		return err
	}
	if opts.Check {
		return writeResult("ip_address", false, nil)
	}

	mgr := manage.NewIPManager(newClient(token), newLogger(opts))
	res, err := mgr.Apply(ctx, p)
	if err != nil {
		return err
	}
	return writeResult("ip_address", res.Changed, res.Records)
}
