package gotenberg

import (
	"net/http"
	"strings"
)

// defaultFailStatusCodes mirrors the server-side default of the
// failOnHttpStatusCodes option: all 4xx and 5xx responses fail.
var defaultFailStatusCodes = []int{499, 599}

// inFailStatusSet reports whether code is covered by the fail-on set, where
// an entry ending in 99 covers its whole hundred block (499 means every
// status from 400 to 499). A nil set means the default {499, 599}.
//
// The wildcard rule is applied to the explicit entries only; it never
// extends beyond the entry's own block.
func inFailStatusSet(code int, set []int) bool {
	if set == nil {
		set = defaultFailStatusCodes
	}
	for _, s := range set {
		if s == code {
			return true
		}
		if s%100 == 99 && code >= s-99 && code <= s {
			return true
		}
	}
	return false
}

// classify turns a transport response into the uniform result contract: nil
// for any 2xx status, otherwise a *ServiceError carrying the status, the
// response body as message, and the trace for correlation. Used identically
// by the blocking, async and streaming variants; the status never downgrades
// to a partial success.
func classify(status int, header http.Header, body []byte, sentTrace string) error {
	if status >= 200 && status < 300 {
		return nil
	}
	trace := header.Get(TraceHeader)
	if trace == "" {
		trace = sentTrace
	}
	return &ServiceError{
		Status:  status,
		TraceID: trace,
		Message: strings.TrimSpace(string(body)),
	}
}
