// Package protocol implements the wordfetch wire format.
//
// Requests and responses are single text lines terminated by '\n':
//
//	request:  <offset>,<page_size>
//	response: <t1>,<t2>,...,<tN>        a full page, more data may remain
//	          <t1>,...,<tM>,EOF         the final, possibly empty, partial page
//	          EOF                       nothing at or after the offset
//
// Internally a Response keeps apart the three reasons a server can answer
// with the end marker. On the wire they all encode as EOF.
package protocol

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// EndMarker terminates the last response of a session.
const EndMarker = "EOF"

// Separator joins the fields of a request and the tokens of a response.
const Separator = ","

// Request asks for up to PageSize tokens starting at Offset.
type Request struct {
	Offset   int
	PageSize int
}

// String encodes the request without the line delimiter.
func (r Request) String() string {
	return strconv.Itoa(r.Offset) + Separator + strconv.Itoa(r.PageSize)
}

// ParseRequest decodes a request line. The line delimiter must already be stripped.
func ParseRequest(line string) (Request, error) {
	fields := strings.Split(strings.TrimSpace(line), Separator)
	if len(fields) != 2 {
		return Request{}, errors.Wrapf(ErrMalformedRequest, "expected 2 fields, got %d", len(fields))
	}
	offset, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Request{}, errors.Wrap(ErrMalformedRequest, "parse offset failed")
	}
	pageSize, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Request{}, errors.Wrap(ErrMalformedRequest, "parse page size failed")
	}
	if pageSize < 1 {
		return Request{}, errors.Wrapf(ErrMalformedRequest, "page size %d must be positive", pageSize)
	}
	return Request{Offset: offset, PageSize: pageSize}, nil
}

// Kind classifies a Response.
type Kind uint8

const (
	// KindPage is a full page; the client should ask for the next one.
	KindPage Kind = iota
	// KindEndOfData means the corpus ends within or before the requested page.
	KindEndOfData
	// KindInvalidRequest means the request could not be parsed.
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindPage:
		return "PAGE"
	case KindEndOfData:
		return "END_OF_DATA"
	case KindInvalidRequest:
		return "INVALID_REQUEST"
	default:
		return "UNKNOWN"
	}
}

// Response is the answer to a single Request.
type Response struct {
	Kind   Kind
	Tokens []string
}

// Page builds a full page response.
func Page(tokens ...string) Response {
	return Response{Kind: KindPage, Tokens: tokens}
}

// EndOfData builds a terminal response carrying the trailing partial page.
func EndOfData(tokens ...string) Response {
	return Response{Kind: KindEndOfData, Tokens: tokens}
}

// InvalidRequest builds the response to a malformed request.
func InvalidRequest() Response {
	return Response{Kind: KindInvalidRequest}
}

// Terminal reports whether the response ends the session.
func (r Response) Terminal() bool {
	return r.Kind != KindPage
}

// String encodes the response without the line delimiter.
func (r Response) String() string {
	switch r.Kind {
	case KindPage:
		return strings.Join(r.Tokens, Separator)
	case KindEndOfData:
		if len(r.Tokens) == 0 {
			return EndMarker
		}
		return strings.Join(r.Tokens, Separator) + Separator + EndMarker
	default:
		return EndMarker
	}
}

// ParseResponse decodes a response line. The line delimiter must already be stripped.
//
// A line whose last field is the end marker decodes as KindEndOfData and the
// fields before it are the final tokens; a bare marker carries none. Empty
// fields are tokens like any other, so ",EOF" is a final page holding one
// empty token. String never writes that form for an empty page.
func ParseResponse(line string) Response {
	fields := strings.Split(line, Separator)
	kind := KindPage
	if fields[len(fields)-1] == EndMarker {
		kind = KindEndOfData
		fields = fields[:len(fields)-1]
	}
	return Response{Kind: kind, Tokens: fields}
}
