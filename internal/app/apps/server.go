package apps

import (
	"context"

	"wordfetch/internal/pkg/corpus"
	"wordfetch/internal/pkg/health"
	"wordfetch/internal/pkg/server"
	"wordfetch/internal/pkg/session"
	"wordfetch/internal/pkg/validate"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// ServerAppCfg configures a ServerApp.
type ServerAppCfg interface {
	ApplyServerApp(*ServerApp) error
}

// ServerApp serves the words of a file until its context is cancelled.
type ServerApp struct {
	ServerIP   string
	ServerPort int    `validate:"gte=0,lte=65535"`
	Filename   string `validate:"required"`
	MaxConns   int    `validate:"gte=0"`
	HealthPort int    `validate:"gte=0,lte=65535"`
}

// NewServerApp creates a new ServerApp.
func NewServerApp(cfgs ...ServerAppCfg) (*ServerApp, error) {
	app := &ServerApp{}
	for _, cfg := range cfgs {
		if err := cfg.ApplyServerApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ServerApp cfg failed")
		}
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ServerApp failed")
	}
	return app, nil
}

func (app *ServerApp) Run(ctx context.Context, args []string) error {
	words, err := corpus.Load(app.Filename)
	if err != nil {
		return errors.Wrap(err, "load corpus failed")
	}
	logger.WithFields(logrus.Fields{
		"filename": app.Filename,
		"words":    words.Len(),
	}).Info("corpus loaded")

	cfgs := []server.Cfg{
		server.WithCorpus(words),
		server.WithSessionStore(session.NewMemoryStore()),
		server.WithMaxConns(app.MaxConns),
	}
	g, gctx := errgroup.WithContext(ctx)
	if app.HealthPort > 0 {
		hs := health.NewServer()
		cfgs = append(cfgs, server.WithStatusReporter(hs))
		g.Go(func() error {
			return errors.Wrap(hs.ListenAndServe(gctx, joinHostPort(app.ServerIP, app.HealthPort)), "serve health failed")
		})
	}
	s, err := server.NewServer(cfgs...)
	if err != nil {
		return errors.Wrap(err, "create server failed")
	}
	g.Go(func() error {
		return errors.Wrap(s.ListenAndServe(gctx, joinHostPort(app.ServerIP, app.ServerPort)), "serve failed")
	})
	return g.Wait()
}
