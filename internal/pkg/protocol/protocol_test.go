package protocol

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest("10,5")
	require.NoError(t, err)
	require.Equal(t, Request{Offset: 10, PageSize: 5}, req)

	req, err = ParseRequest(" -3 , 2 ")
	require.NoError(t, err)
	require.Equal(t, Request{Offset: -3, PageSize: 2}, req)

	for _, line := range []string{"", "10", "a,5", "10,b", "1,2,3", "10,0", "10,-1"} {
		_, err := ParseRequest(line)
		require.Truef(t, errors.Is(err, ErrMalformedRequest), "line %q", line)
	}
}

func TestRequestString(t *testing.T) {
	require.Equal(t, "0,2", Request{Offset: 0, PageSize: 2}.String())
}

func TestResponseRoundTripEmptyTokens(t *testing.T) {
	for _, resp := range []Response{
		Page("a", ""),
		Page("", "b"),
		Page(""),
		EndOfData(""),
		EndOfData("", "c", ""),
	} {
		require.Equal(t, resp, ParseResponse(resp.String()), resp.String())
	}
}

func TestResponseString(t *testing.T) {
	require.Equal(t, "a,b", Page("a", "b").String())
	require.Equal(t, "e,EOF", EndOfData("e").String())
	require.Equal(t, "EOF", EndOfData().String())
	require.Equal(t, "EOF", InvalidRequest().String())
}

func TestParseResponse(t *testing.T) {
	require.Equal(t, Page("a", "b"), ParseResponse("a,b"))
	require.Equal(t, EndOfData("e"), ParseResponse("e,EOF"))

	resp := ParseResponse("EOF")
	require.Equal(t, KindEndOfData, resp.Kind)
	require.Empty(t, resp.Tokens)

	require.Equal(t, EndOfData(""), ParseResponse(",EOF"))
	require.Equal(t, EndOfData("c", ""), ParseResponse("c,,EOF"))
	require.Equal(t, Page("a", "", "b"), ParseResponse("a,,b"))
	require.Equal(t, Page(""), ParseResponse(""))

	require.True(t, ParseResponse("x,EOF").Terminal())
	require.False(t, ParseResponse("x,y").Terminal())
}

type rwc struct {
	io.Reader
	io.Writer
}

func (rwc) Close() error { return nil }

func TestConnReadLineFragmented(t *testing.T) {
	in := strings.NewReader("a,b\nc,d\r\ne,EOF\n")
	c := NewConn(rwc{Reader: iotest.OneByteReader(in), Writer: io.Discard})
	for _, want := range []string{"a,b", "c,d", "e,EOF"} {
		line, err := c.ReadLine()
		require.NoError(t, err)
		require.Equal(t, want, line)
	}
	_, err := c.ReadLine()
	require.ErrorIs(t, err, io.EOF)
}

func TestConnReadLineCoalesced(t *testing.T) {
	// Both requests arrive in one read.
	c := NewConn(rwc{Reader: bytes.NewBufferString("0,2\n2,2\n"), Writer: io.Discard})
	line, err := c.ReadLine()
	require.NoError(t, err)
	require.Equal(t, "0,2", line)
	line, err = c.ReadLine()
	require.NoError(t, err)
	require.Equal(t, "2,2", line)
}

func TestConnReadLineTooLong(t *testing.T) {
	long := strings.Repeat("x", MaxLineSize+1)
	c := NewConn(rwc{Reader: strings.NewReader(long), Writer: io.Discard})
	_, err := c.ReadLine()
	require.ErrorIs(t, err, ErrLineTooLong)
}

func TestConnWriteLine(t *testing.T) {
	var out bytes.Buffer
	c := NewConn(rwc{Reader: strings.NewReader(""), Writer: &out})
	require.NoError(t, c.WriteLine(Request{Offset: 4, PageSize: 2}.String()))
	require.NoError(t, c.WriteLine(EndOfData().String()))
	require.Equal(t, "4,2\nEOF\n", out.String())
}
