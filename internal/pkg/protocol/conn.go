package protocol

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Delimiter terminates every request and response line.
const Delimiter = '\n'

// MaxLineSize bounds a single line, delimiter included.
const MaxLineSize = 16 << 20

// Conn frames lines over a byte stream.
//
// Reads are buffered: a line is complete only once the delimiter has been
// seen, and bytes after it are kept for the next ReadLine. This makes the
// framing independent of how the transport splits or merges writes.
type Conn struct {
	rwc     io.ReadWriteCloser
	scanner *bufio.Scanner
	writer  *bufio.Writer
}

// NewConn wraps rwc. The Conn owns rwc and closes it on Close.
func NewConn(rwc io.ReadWriteCloser) *Conn {
	scanner := bufio.NewScanner(rwc)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineSize)
	scanner.Split(bufio.ScanLines)
	return &Conn{
		rwc:     rwc,
		scanner: scanner,
		writer:  bufio.NewWriter(rwc),
	}
}

// ReadLine returns the next line without its delimiter (and without a trailing '\r').
// It returns io.EOF once the peer has closed the stream.
func (c *Conn) ReadLine() (string, error) {
	if c.scanner.Scan() {
		return c.scanner.Text(), nil
	}
	err := c.scanner.Err()
	if err == nil {
		return "", io.EOF
	}
	if errors.Is(err, bufio.ErrTooLong) {
		return "", ErrLineTooLong
	}
	return "", errors.Wrap(err, "read line failed")
}

// WriteLine writes line followed by the delimiter and flushes it.
func (c *Conn) WriteLine(line string) error {
	if _, err := c.writer.WriteString(line); err != nil {
		return errors.Wrap(err, "write line failed")
	}
	if err := c.writer.WriteByte(Delimiter); err != nil {
		return errors.Wrap(err, "write delimiter failed")
	}
	return errors.Wrap(c.writer.Flush(), "flush line failed")
}

// Close closes the underlying stream.
func (c *Conn) Close() error {
	return c.rwc.Close()
}
