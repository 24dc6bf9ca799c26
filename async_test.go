package gotenberg

// Notes:
// - a resolved future returns the same bytes as the blocking call
// - Wait is idempotent and respects its own context independently of the
//   request's context
// - failures resolve to the same *ServiceError as the blocking variant

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAsync_MatchesBlocking(t *testing.T) {
	t.Parallel()

	srv := newPDFServer(t)
	client := New(srv.URL)
	ctx := context.Background()

	blocking, err := client.PDFFromHTML(ctx, "<html></html>", WebOptions{})
	if err != nil {
		t.Fatalf("blocking: %v", err)
	}

	fut := client.Async().PDFFromHTML(ctx, "<html></html>", WebOptions{})
	async, err := fut.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !bytes.Equal(async, blocking) {
		t.Error("async result differs from blocking result")
	}

	// Waiting again returns the same resolved result.
	again, err := fut.Wait(ctx)
	if err != nil || !bytes.Equal(again, async) {
		t.Errorf("second Wait = (%d bytes, %v), want same result", len(again), err)
	}
}

func TestAsync_FailureResolvesToServiceError(t *testing.T) {
	t.Parallel()

	srv := newPDFServer(t)
	srv.status = 599
	srv.body = "engine crashed"
	client := New(srv.URL)

	fut := client.Async().PDFFromURL(context.Background(), "https://example.com", WebOptions{TraceID: "t-7"})
	_, err := fut.Wait(context.Background())

	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("error = %T (%v), want *ServiceError", err, err)
	}
	if se.Status != 599 || se.Message != "engine crashed" {
		t.Errorf("ServiceError = %+v", se)
	}
}

func TestAsync_WaitContextCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		w.Write(samplePDF)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	client := New(srv.URL)
	fut := client.Async().PDFFromURL(context.Background(), "https://example.com", WebOptions{})

	waitCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := fut.Wait(waitCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait error = %v, want context.DeadlineExceeded", err)
	}
}

func TestAsync_ValidationResolvesImmediately(t *testing.T) {
	t.Parallel()

	client := New("http://127.0.0.1:0") // never reached
	fut := client.Async().PDFFromURL(context.Background(), "https://example.com", WebOptions{
		Scale: Float64(99),
	})
	if _, err := fut.Wait(context.Background()); !errors.Is(err, ErrInvalidOptionValue) {
		t.Errorf("error = %v, want ErrInvalidOptionValue", err)
	}
}
