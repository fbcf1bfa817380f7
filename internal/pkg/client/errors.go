package client

import "github.com/pkg/errors"

// ErrNotConnected indicates that Run was called before Connect.
var ErrNotConnected = errors.New("not connected")

// ErrAlreadyConnected indicates that Connect was called twice.
var ErrAlreadyConnected = errors.New("already connected")

// ErrInvalidPageSize indicates a page size below 1.
var ErrInvalidPageSize = errors.New("invalid page size")
