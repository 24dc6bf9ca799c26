package gotenberg

import (
	"fmt"
	"strconv"
	"strings"
)

// PageRange is a validated print-range expression such as "1,3-5,7".
//
// The grammar is `range ("," range)*` where `range := N | N-N` and the start
// of a span may not exceed its end. The zero value selects all pages and is
// never emitted on the wire.
//
// Construct via ParsePageRange; a malformed expression fails with
// ErrInvalidOptionValue before any request is sent.
type PageRange struct {
	chunks []pageChunk
}

// pageChunk is one comma-separated element: a single page when start == end,
// otherwise an inclusive span.
type pageChunk struct {
	start, end int
}

// ParsePageRange validates and parses a page-range expression. The empty
// string is valid and means all pages.
func ParsePageRange(s string) (PageRange, error) {
	if s == "" {
		return PageRange{}, nil
	}

	var chunks []pageChunk
	for _, raw := range strings.Split(s, ",") {
		chunk, err := parsePageChunk(strings.TrimSpace(raw))
		if err != nil {
			return PageRange{}, fmt.Errorf("%w: page range %q: %v", ErrInvalidOptionValue, s, err)
		}
		chunks = append(chunks, chunk)
	}
	return PageRange{chunks: chunks}, nil
}

func parsePageChunk(s string) (pageChunk, error) {
	if from, to, ok := strings.Cut(s, "-"); ok {
		start, err := parsePageNumber(from)
		if err != nil {
			return pageChunk{}, err
		}
		end, err := parsePageNumber(to)
		if err != nil {
			return pageChunk{}, err
		}
		if start > end {
			return pageChunk{}, fmt.Errorf("start %d greater than end %d", start, end)
		}
		return pageChunk{start: start, end: end}, nil
	}

	page, err := parsePageNumber(s)
	if err != nil {
		return pageChunk{}, err
	}
	return pageChunk{start: page, end: page}, nil
}

func parsePageNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid page number %q", strings.TrimSpace(s))
	}
	return n, nil
}

// String renders the range in the wire grammar, e.g. "1,3-5,7". The zero
// value renders as the empty string.
func (r PageRange) String() string {
	parts := make([]string, len(r.chunks))
	for i, c := range r.chunks {
		if c.start == c.end {
			parts[i] = strconv.Itoa(c.start)
		} else {
			parts[i] = strconv.Itoa(c.start) + "-" + strconv.Itoa(c.end)
		}
	}
	return strings.Join(parts, ",")
}

// IsZero reports whether the range selects all pages.
func (r PageRange) IsZero() bool { return len(r.chunks) == 0 }

// Contains reports whether page falls within the range. An empty range
// contains every page.
func (r PageRange) Contains(page int) bool {
	if len(r.chunks) == 0 {
		return true
	}
	for _, c := range r.chunks {
		if page >= c.start && page <= c.end {
			return true
		}
	}
	return false
}
