package server

import (
	"context"
	"net"

	"wordfetch/internal/pkg/corpus"
	"wordfetch/internal/pkg/handler"
	"wordfetch/internal/pkg/session"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// StatusReporter is told whether the server is accepting connections.
type StatusReporter interface {
	SetServing(serving bool)
}

// Server accepts TCP connections and serves page requests from a corpus.
type Server struct {
	corpus   *corpus.Corpus
	store    session.Store
	maxConns int
	status   StatusReporter
}

// Cfg configures a Server.
type Cfg func(*Server) error

// WithCorpus sets the corpus to serve.
func WithCorpus(c *corpus.Corpus) Cfg {
	return func(s *Server) error {
		s.corpus = c
		return nil
	}
}

// WithSessionStore sets the session store for the server.
func WithSessionStore(store session.Store) Cfg {
	return func(s *Server) error {
		s.store = store
		return nil
	}
}

// WithMaxConns bounds the number of connections served at once.
// 1 serves connections strictly one after another; 0 removes the bound.
func WithMaxConns(n int) Cfg {
	return func(s *Server) error {
		if n < 0 {
			return errors.Errorf("max conns %d must not be negative", n)
		}
		s.maxConns = n
		return nil
	}
}

// WithStatusReporter sets a reporter notified when the accept loop starts and stops.
func WithStatusReporter(r StatusReporter) Cfg {
	return func(s *Server) error {
		s.status = r
		return nil
	}
}

// NewServer creates a new Server with the given configuration.
func NewServer(cfgs ...Cfg) (*Server, error) {
	server := &Server{
		store: session.NewMemoryStore(),
	}
	for _, cfg := range cfgs {
		if err := cfg(server); err != nil {
			return nil, errors.Wrap(err, "apply Server cfg failed")
		}
	}
	if server.corpus == nil {
		return nil, ErrMissingCorpus
	}
	return server, nil
}

// Active returns the number of connections currently being served.
func (s *Server) Active() int {
	return s.store.Len()
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s failed", addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and hands each to its own handler.
// It returns once ctx is cancelled and every handler has finished. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	if s.maxConns > 0 {
		g.SetLimit(s.maxConns)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})
	defer stop()

	s.setServing(true)
	defer s.setServing(false)
	logger.WithFields(logrus.Fields{
		"addr":      ln.Addr().String(),
		"words":     s.corpus.Len(),
		"max_conns": s.maxConns,
	}).Info("server listening")

	var acceptErr error
	for {
		conn, err := ln.Accept()
		if err != nil {
			if parent.Err() == nil {
				acceptErr = errors.Wrap(err, "accept connection failed")
			}
			break
		}
		h, err := handler.NewHandler(
			handler.WithCorpus(s.corpus),
			handler.WithSessionStore(s.store),
		)
		if err != nil {
			_ = conn.Close()
			acceptErr = errors.Wrap(err, "new handler failed")
			break
		}
		logger.WithFields(logrus.Fields{
			"session": h.ID().String(),
			"remote":  conn.RemoteAddr().String(),
			"active":  s.Active(),
		}).Info("new connection established")
		// blocks while maxConns connections are being served
		g.Go(func() error {
			if err := h.Run(gctx, conn); err != nil {
				logger.WithField("session", h.ID().String()).WithError(err).Warn("session ended with error")
			}
			return nil
		})
	}
	// open connections are closed along with the listener
	cancel()
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "wait for handlers failed")
	}
	return acceptErr
}

func (s *Server) setServing(serving bool) {
	if s.status != nil {
		s.status.SetServing(serving)
	}
}
