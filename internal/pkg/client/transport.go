package client

import (
	"io"

	"wordfetch/internal/pkg/protocol"

	"github.com/pkg/errors"
)

// lineTransport speaks the line protocol over a byte stream.
type lineTransport struct {
	conn *protocol.Conn
}

func newLineTransport(rwc io.ReadWriteCloser) *lineTransport {
	return &lineTransport{conn: protocol.NewConn(rwc)}
}

func (t *lineTransport) Send(req protocol.Request) error {
	return errors.Wrap(t.conn.WriteLine(req.String()), "send request failed")
}

func (t *lineTransport) Recv() (protocol.Response, error) {
	line, err := t.conn.ReadLine()
	if err != nil {
		return protocol.Response{}, err
	}
	return protocol.ParseResponse(line), nil
}

func (t *lineTransport) Close() error {
	return t.conn.Close()
}
