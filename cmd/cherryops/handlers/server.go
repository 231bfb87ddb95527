package handlers

import (
	"context"

	"github.com/imamik/cherryops/internal/config"
	"github.com/imamik/cherryops/internal/manage"
)

// Server converges bare-metal servers to the state described by the task
// file. In check mode the task is validated and nothing is executed.
func Server(ctx context.Context, opts Options) error {
	var p config.ServerParams
	token, err := prepare(opts, &p)
	if err != nil {
		return err
	}
	if opts.Check {
		return writeResult("server", false, nil)
	}

	mgr := manage.NewServerManager(newClient(token), newLogger(opts))
	res, err := mgr.Apply(ctx, p)
	if err != nil {
		return err
	}
	return writeResult("server", res.Changed, res.Records)
}
