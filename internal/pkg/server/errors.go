package server

import "github.com/pkg/errors"

// ErrMissingCorpus indicates that a Server was created without a corpus.
var ErrMissingCorpus = errors.New("missing corpus")
