package main

import (
	"testing"

	gotenberg "github.com/alnah/go-gotenberg"
)

func newTestClient(t *testing.T, url string) *gotenberg.Client {
	t.Helper()
	return gotenberg.New(url)
}
