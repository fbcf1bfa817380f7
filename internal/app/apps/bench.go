package apps

import (
	"context"
	"time"

	"wordfetch/internal/pkg/bench"
	"wordfetch/internal/pkg/client"
	"wordfetch/internal/pkg/validate"

	"github.com/pkg/errors"
)

// BenchAppCfg configures a BenchApp.
type BenchAppCfg interface {
	ApplyBenchApp(*BenchApp) error
}

// BenchApp measures fetch times against a running server for a range of page sizes.
type BenchApp struct {
	ServerIP   string `validate:"required"`
	ServerPort int    `validate:"gte=1,lte=65535"`
	Offset     int    `validate:"gte=0"`
	PageSizes  []int  `validate:"min=1,dive,gte=1"`
	Runs       int    `validate:"gte=1"`
	Out        string `validate:"required"`
	DB         string
}

// NewBenchApp creates a new BenchApp.
func NewBenchApp(cfgs ...BenchAppCfg) (*BenchApp, error) {
	app := &BenchApp{Runs: 1}
	for _, cfg := range cfgs {
		if err := cfg.ApplyBenchApp(app); err != nil {
			return nil, errors.Wrap(err, "apply BenchApp cfg failed")
		}
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate BenchApp failed")
	}
	return app, nil
}

func (app *BenchApp) session(ctx context.Context, k int) (time.Duration, error) {
	c, err := client.NewClient(
		client.WithServerAddr(joinHostPort(app.ServerIP, app.ServerPort)),
		client.WithPageSize(k),
		client.WithOffset(app.Offset),
	)
	if err != nil {
		return 0, errors.Wrap(err, "create client failed")
	}
	res, err := c.Fetch(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "fetch failed")
	}
	return res.Elapsed, nil
}

func (app *BenchApp) Run(ctx context.Context, args []string) error {
	csvSink, err := bench.NewCSVSink(app.Out)
	if err != nil {
		return errors.Wrap(err, "create csv sink failed")
	}
	defer csvSink.Close()
	cfgs := []bench.Cfg{
		bench.WithPageSizes(app.PageSizes...),
		bench.WithRuns(app.Runs),
		bench.WithSession(app.session),
		bench.WithSink(csvSink),
	}
	if app.DB != "" {
		dbSink, err := bench.NewSQLiteSink(app.DB)
		if err != nil {
			return errors.Wrap(err, "create sqlite sink failed")
		}
		defer dbSink.Close()
		cfgs = append(cfgs, bench.WithSink(dbSink))
	}
	r, err := bench.NewRunner(cfgs...)
	if err != nil {
		return errors.Wrap(err, "create runner failed")
	}
	if _, err := r.Run(ctx); err != nil {
		return errors.Wrap(err, "run bench failed")
	}
	return nil
}
