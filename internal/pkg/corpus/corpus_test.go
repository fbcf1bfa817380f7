package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"wordfetch/internal/pkg/protocol"

	"github.com/stretchr/testify/require"
)

var words = []string{"a", "b", "c", "d", "e"}

func TestPage(t *testing.T) {
	c := New(words...)
	require.Equal(t, 5, c.Len())

	require.Equal(t, protocol.Page("a", "b"), c.Page(protocol.Request{Offset: 0, PageSize: 2}))
	require.Equal(t, protocol.Page("c", "d"), c.Page(protocol.Request{Offset: 2, PageSize: 2}))
	require.Equal(t, protocol.EndOfData("e"), c.Page(protocol.Request{Offset: 4, PageSize: 2}))
}

func TestPageBoundaries(t *testing.T) {
	c := New(words...)

	// offset == N
	resp := c.Page(protocol.Request{Offset: 5, PageSize: 3})
	require.Equal(t, protocol.KindEndOfData, resp.Kind)
	require.Empty(t, resp.Tokens)
	require.Equal(t, "EOF", resp.String())

	// offset == N-1, page size > 1
	resp = c.Page(protocol.Request{Offset: 4, PageSize: 3})
	require.Equal(t, protocol.EndOfData("e"), resp)
	require.Equal(t, "e,EOF", resp.String())

	// page ending exactly on N carries no marker
	resp = c.Page(protocol.Request{Offset: 3, PageSize: 2})
	require.Equal(t, protocol.Page("d", "e"), resp)

	// negative offset
	resp = c.Page(protocol.Request{Offset: -1, PageSize: 2})
	require.Equal(t, protocol.KindEndOfData, resp.Kind)
	require.Empty(t, resp.Tokens)

	// page size past the int range of remaining tokens
	resp = c.Page(protocol.Request{Offset: 1, PageSize: int(^uint(0) >> 1)})
	require.Equal(t, protocol.EndOfData("b", "c", "d", "e"), resp)

	require.Equal(t, protocol.KindInvalidRequest, c.Page(protocol.Request{Offset: 0, PageSize: 0}).Kind)
}

func TestPagingReproducesCorpus(t *testing.T) {
	c := New(words...)
	for k := 1; k <= len(words)+2; k++ {
		var got []string
		for offset := 0; ; offset += k {
			resp := c.Page(protocol.Request{Offset: offset, PageSize: k})
			got = append(got, resp.Tokens...)
			if resp.Terminal() {
				break
			}
		}
		require.Equalf(t, words, got, "k=%d", k)
	}
}

func TestParse(t *testing.T) {
	require.Equal(t, 0, Parse("").Len())
	require.Equal(t, 0, Parse(" \n").Len())
	c := Parse("a,b,c,d,e\n")
	require.Equal(t, protocol.Page("a", "b", "c", "d", "e"), c.Page(protocol.Request{Offset: 0, PageSize: 5}))

	c = Parse("a,,b,c,")
	require.Equal(t, protocol.Page("a", "", "b", "c", ""), c.Page(protocol.Request{Offset: 0, PageSize: 5}))
}

func TestParseLineBreaks(t *testing.T) {
	for _, content := range []string{"a,b\nc,d", "a,b\r\nc,d\n", "a\nb\rc\r\nd"} {
		c := Parse(content)
		require.Equalf(t, protocol.EndOfData("a", "b", "c", "d"), c.Page(protocol.Request{Offset: 0, PageSize: 5}), "content %q", content)
	}
	// a line break next to a comma leaves an empty token rather than a joined one
	c := Parse("a,\nb")
	require.Equal(t, protocol.EndOfData("a", "", "b"), c.Page(protocol.Request{Offset: 0, PageSize: 4}))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c,d,e"), 0o600))
	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())

	require.NoError(t, os.WriteFile(path, []byte("a,b\nc,d\n"), 0o600))
	c, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, protocol.EndOfData("a", "b", "c", "d"), c.Page(protocol.Request{Offset: 0, PageSize: 5}))

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
