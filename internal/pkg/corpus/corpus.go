// Package corpus holds the word list served by a wordfetch server.
package corpus

import (
	"os"
	"strings"

	"wordfetch/internal/pkg/protocol"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// line breaks inside the content separate tokens like commas do
var lineBreaks = strings.NewReplacer("\r\n", protocol.Separator, "\n", protocol.Separator, "\r", protocol.Separator)

// Corpus is an immutable, 0-indexed sequence of tokens.
// It is safe to share between goroutines without locking.
type Corpus struct {
	tokens []string
}

// New creates a Corpus holding a copy of tokens.
func New(tokens ...string) *Corpus {
	cpy := make([]string, len(tokens))
	copy(cpy, tokens)
	return &Corpus{tokens: cpy}
}

// Parse splits comma-separated content into a Corpus.
// Whitespace around the whole content is ignored; empty content is an empty Corpus.
// Line breaks inside the content are separators, so no token ever holds the
// protocol's line delimiter.
func Parse(content string) *Corpus {
	content = strings.TrimSpace(content)
	if content == "" {
		return &Corpus{}
	}
	return &Corpus{tokens: strings.Split(lineBreaks.Replace(content), protocol.Separator)}
}

// Load reads the file at path into a Corpus.
func Load(path string) (*Corpus, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read corpus %s failed", path)
	}
	content := string(b)
	if strings.ContainsAny(strings.TrimSpace(content), "\r\n") {
		logger.WithField("path", path).Warn("corpus spans several lines, treating line breaks as separators")
	}
	return Parse(content), nil
}

// Len returns the number of tokens.
func (c *Corpus) Len() int {
	return len(c.tokens)
}

// Page answers req.
//
// An offset outside [0, Len) yields an empty EndOfData. A page that fits
// before the end of the corpus, including one that ends exactly on it, is a
// full Page. A page that would run past the end yields the remaining tokens
// as EndOfData.
func (c *Corpus) Page(req protocol.Request) protocol.Response {
	if req.PageSize < 1 {
		return protocol.InvalidRequest()
	}
	if req.Offset < 0 || req.Offset >= len(c.tokens) {
		return protocol.EndOfData()
	}
	remaining := len(c.tokens) - req.Offset
	if req.PageSize <= remaining {
		return protocol.Page(c.tokens[req.Offset : req.Offset+req.PageSize]...)
	}
	return protocol.EndOfData(c.tokens[req.Offset:]...)
}
