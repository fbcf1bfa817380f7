package freq

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// Counts maps a token to the number of times it was received.
type Counts map[string]int

// Count tallies words. Empty words are not counted.
func Count(words []string) Counts {
	counts := make(Counts)
	for _, w := range words {
		if w == "" {
			continue
		}
		counts[w]++
	}
	return counts
}

// Keys returns the counted tokens in ascending order.
func (c Counts) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteTo writes one "token,count" line per token, in ascending token order.
func (c Counts) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, k := range c.Keys() {
		n, err := fmt.Fprintf(w, "%s,%d\n", k, c[k])
		total += int64(n)
		if err != nil {
			return total, errors.Wrap(err, "write count failed")
		}
	}
	return total, nil
}
