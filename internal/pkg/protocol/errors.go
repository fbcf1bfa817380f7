package protocol

import "github.com/pkg/errors"

// ErrMalformedRequest indicates that a request line is not "<offset>,<page_size>".
var ErrMalformedRequest = errors.New("malformed request")

// ErrLineTooLong indicates that a peer sent more than MaxLineSize bytes without a delimiter.
var ErrLineTooLong = errors.New("line too long")
