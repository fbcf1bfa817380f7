package apps

import (
	"context"
	"fmt"
	"io"
	"os"

	"wordfetch/internal/pkg/client"
	"wordfetch/internal/pkg/freq"
	"wordfetch/internal/pkg/validate"

	"github.com/pkg/errors"
)

// ClientAppCfg configures a ClientApp.
type ClientAppCfg interface {
	ApplyClientApp(*ClientApp) error
}

// ClientApp fetches the whole corpus and prints word frequencies and the elapsed time.
type ClientApp struct {
	ServerIP   string `validate:"required"`
	ServerPort int    `validate:"gte=1,lte=65535"`
	PageSize   int    `validate:"gte=1"`
	Offset     int    `validate:"gte=0"`
	Quiet      bool

	Out io.Writer
}

// NewClientApp creates a new ClientApp.
func NewClientApp(cfgs ...ClientAppCfg) (*ClientApp, error) {
	app := &ClientApp{
		PageSize: 1,
		Out:      os.Stdout,
	}
	for _, cfg := range cfgs {
		if err := cfg.ApplyClientApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ClientApp cfg failed")
		}
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ClientApp failed")
	}
	return app, nil
}

func (app *ClientApp) Run(ctx context.Context, args []string) error {
	c, err := client.NewClient(
		client.WithServerAddr(joinHostPort(app.ServerIP, app.ServerPort)),
		client.WithPageSize(app.PageSize),
		client.WithOffset(app.Offset),
	)
	if err != nil {
		return errors.Wrap(err, "create client failed")
	}
	res, err := c.Fetch(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch failed")
	}
	if !app.Quiet {
		if _, err := freq.Count(res.Words).WriteTo(app.Out); err != nil {
			return errors.Wrap(err, "write frequencies failed")
		}
	}
	if _, err := fmt.Fprintf(app.Out, "ELAPSED_MS:%d\n", res.Elapsed.Milliseconds()); err != nil {
		return errors.Wrap(err, "write elapsed time failed")
	}
	return nil
}
