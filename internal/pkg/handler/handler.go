package handler

import (
	"context"
	"io"
	"net"

	"wordfetch/internal/pkg/corpus"
	"wordfetch/internal/pkg/log"
	"wordfetch/internal/pkg/protocol"
	"wordfetch/internal/pkg/session"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// Pager answers page requests.
type Pager interface {
	Page(req protocol.Request) protocol.Response
}

type handler struct {
	id      uuid.UUID
	pager   Pager
	session session.Store
}

// HandlerCfg configures a handler.
type HandlerCfg func(*handler) error

// WithSessionStore sets the session store.
func WithSessionStore(store session.Store) HandlerCfg {
	return func(h *handler) error {
		h.session = store
		return nil
	}
}

// WithCorpus sets the corpus that requests are answered from.
func WithCorpus(c *corpus.Corpus) HandlerCfg {
	return func(h *handler) error {
		if c == nil {
			return errors.New("nil corpus")
		}
		h.pager = c
		return nil
	}
}

// WithPager sets the pager that requests are answered from.
func WithPager(p Pager) HandlerCfg {
	return func(h *handler) error {
		h.pager = p
		return nil
	}
}

// NewHandler creates a new handler.
func NewHandler(cfgs ...HandlerCfg) (*handler, error) {
	h := &handler{
		id:      uuid.New(),
		session: session.NewMemoryStore(),
	}
	for _, cfg := range cfgs {
		if err := cfg(h); err != nil {
			return nil, errors.Wrap(err, "apply handler cfg failed")
		}
	}
	if h.pager == nil {
		return nil, errors.New("handler requires a corpus")
	}
	return h, nil
}

// ID identifies the session served by this handler.
func (h *handler) ID() uuid.UUID {
	return h.id
}

func (h *handler) handleLine(line string) protocol.Response {
	req, err := protocol.ParseRequest(line)
	if err != nil {
		logger.WithField("session", h.id.String()).WithError(err).Debug("invalid request")
		return protocol.InvalidRequest()
	}
	resp := h.pager.Page(req)
	logger.WithFields(log.RequestToFields(req)).WithFields(log.ResponseToFields(resp)).Trace("served request")
	return resp
}

// Run serves requests on conn until the peer closes it, a read or write
// fails, or ctx is cancelled. conn is always closed on return.
func (h *handler) Run(ctx context.Context, conn net.Conn) error {
	c := protocol.NewConn(conn)
	stop := context.AfterFunc(ctx, func() {
		_ = c.Close()
	})
	defer stop()
	defer c.Close()

	if err := h.session.New(h.id, conn.RemoteAddr().String()); err != nil {
		return errors.Wrap(err, "new session failed")
	}
	defer func() {
		if sess, err := h.session.Get(h.id); err == nil {
			logger.WithFields(log.SessionToFields(h.id, sess)).Info("session closed")
		}
		_ = h.session.Clear(h.id)
	}()

	for {
		line, err := c.ReadLine()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			if errors.Is(err, protocol.ErrLineTooLong) {
				return errors.Wrap(err, "read request failed")
			}
			// connection resets and the like end the session like a clean close
			logger.WithField("session", h.id.String()).WithError(err).Debug("read request failed")
			return nil
		}
		resp := h.handleLine(line)
		if err := h.session.Record(h.id, resp.Kind); err != nil {
			return errors.Wrap(err, "record request failed")
		}
		if err := c.WriteLine(resp.String()); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.WithField("session", h.id.String()).WithError(err).Debug("write response failed")
			return nil
		}
	}
}
