package client

import (
	"context"
	"net"
	"time"

	"wordfetch/internal/pkg/log"
	"wordfetch/internal/pkg/protocol"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// Transport carries one request and one response at a time.
type Transport interface {
	Send(req protocol.Request) error
	Recv() (protocol.Response, error)
	Close() error
}

// State is a step of the client session.
type State uint8

const (
	StateRequesting State = iota
	StateAwaitingResponse
	StateMoreData
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRequesting:
		return "REQUESTING"
	case StateAwaitingResponse:
		return "AWAITING_RESPONSE"
	case StateMoreData:
		return "MORE_DATA"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of a completed session.
type Result struct {
	Words   []string
	Elapsed time.Duration
}

// Client implements the client behaviour of the wordfetch protocol.
type Client struct {
	serverAddr string
	pageSize   int
	offset     int

	state     State
	words     []string
	transport Transport
}

// Cfg configures a Client.
type Cfg func(*Client) error

// WithServerAddr sets the server address to connect to.
func WithServerAddr(addr string) Cfg {
	return func(c *Client) error {
		c.serverAddr = addr
		return nil
	}
}

// WithPageSize sets the number of words requested per page.
func WithPageSize(k int) Cfg {
	return func(c *Client) error {
		if k < 1 {
			return errors.Wrapf(ErrInvalidPageSize, "page size %d", k)
		}
		c.pageSize = k
		return nil
	}
}

// WithOffset sets the offset of the first requested page.
func WithOffset(p int) Cfg {
	return func(c *Client) error {
		c.offset = p
		return nil
	}
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfgs ...Cfg) (*Client, error) {
	client := &Client{
		pageSize: 1,
	}
	for _, cfg := range cfgs {
		if err := cfg(client); err != nil {
			return nil, errors.Wrap(err, "apply Client cfg failed")
		}
	}
	return client, nil
}

// Connect establishes the connection to the server.
func (c *Client) Connect(ctx context.Context) error {
	if c.transport != nil {
		return ErrAlreadyConnected
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.serverAddr)
	if err != nil {
		return errors.Wrapf(err, "connect to %s failed", c.serverAddr)
	}
	c.transport = newLineTransport(conn)
	return nil
}

// State returns the current session state.
func (c *Client) State() State {
	return c.state
}

// Words returns the words accumulated so far.
func (c *Client) Words() []string {
	return c.words
}

// step advances the session by one state transition.
func (c *Client) step() {
	switch c.state {
	case StateRequesting:
		req := protocol.Request{Offset: c.offset, PageSize: c.pageSize}
		if err := c.transport.Send(req); err != nil {
			logger.WithError(err).Debug("send request failed, ending session")
			c.state = StateDone
			return
		}
		logger.WithFields(log.RequestToFields(req)).Trace("sent request")
		c.state = StateAwaitingResponse
	case StateAwaitingResponse:
		resp, err := c.transport.Recv()
		if err != nil {
			// a dropped stream ends the session like the end marker does
			logger.WithError(err).Debug("receive response failed, ending session")
			c.state = StateDone
			return
		}
		logger.WithFields(log.ResponseToFields(resp)).Trace("received response")
		c.words = append(c.words, resp.Tokens...)
		if resp.Terminal() {
			c.state = StateDone
			return
		}
		c.state = StateMoreData
	case StateMoreData:
		c.offset += c.pageSize
		c.state = StateRequesting
	}
}

// Run runs the client-side protocol until the server signals the end of the
// corpus or the stream ends, then closes the connection.
func (c *Client) Run(ctx context.Context) error {
	if c.transport == nil {
		return ErrNotConnected
	}
	stop := context.AfterFunc(ctx, func() {
		_ = c.transport.Close()
	})
	defer stop()
	defer c.transport.Close()

	for c.state != StateDone {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "session cancelled")
		}
		c.step()
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "session cancelled")
	}
	logger.WithFields(logrus.Fields{
		"words":  len(c.words),
		"offset": c.offset,
	}).Info("client completed successfully")
	return nil
}

// Fetch connects, runs the session and reports the words received along
// with the wall-clock time spent from dialing to the end of the session.
func (c *Client) Fetch(ctx context.Context) (*Result, error) {
	start := time.Now()
	if err := c.Connect(ctx); err != nil {
		return nil, errors.Wrap(err, "connect client failed")
	}
	if err := c.Run(ctx); err != nil {
		return nil, errors.Wrap(err, "run client failed")
	}
	return &Result{
		Words:   c.words,
		Elapsed: time.Since(start),
	}, nil
}
