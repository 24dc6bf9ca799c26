package gotenberg

// Notes:
// - a chunked response reassembles byte-for-byte identical to the blocking
//   result
// - failures classify eagerly: the caller gets an error, never a stream
// - stream metadata mirrors the response headers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStreaming_ReassemblesIdentically(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("0123456789abcdef"), 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		flusher := w.(http.Flusher)
		for i := 0; i < len(payload); i += 1024 {
			w.Write(payload[i : i+1024])
			flusher.Flush()
		}
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL)

	blocking, err := client.PDFFromURL(context.Background(), "https://example.com", WebOptions{})
	if err != nil {
		t.Fatalf("blocking: %v", err)
	}

	stream, err := client.Streaming().PDFFromURL(context.Background(), "https://example.com", WebOptions{})
	if err != nil {
		t.Fatalf("streaming: %v", err)
	}
	defer stream.Close()

	streamed, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("reading stream: %v", err)
	}
	if !bytes.Equal(streamed, blocking) {
		t.Errorf("streamed %d bytes differ from blocking %d bytes", len(streamed), len(blocking))
	}
	if !bytes.Equal(streamed, payload) {
		t.Error("streamed bytes differ from source payload")
	}
}

func TestStreaming_FailureYieldsErrorNotStream(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(TraceHeader, r.Header.Get(TraceHeader))
		w.WriteHeader(599)
		w.Write([]byte("engine crashed"))
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL)
	stream, err := client.Streaming().PDFFromURL(context.Background(), "https://example.com", WebOptions{TraceID: "t-9"})
	if stream != nil {
		stream.Close()
		t.Fatal("got a stream for a failed conversion")
	}

	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("error = %T (%v), want *ServiceError", err, err)
	}
	if se.Status != 599 || se.Message != "engine crashed" || se.TraceID != "t-9" {
		t.Errorf("ServiceError = %+v", se)
	}
}

func TestStreaming_Metadata(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", "4")
		w.Write([]byte("data"))
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL)
	stream, err := client.Streaming().ScreenshotURL(context.Background(), "https://example.com", ScreenshotOptions{TraceID: "t-3"})
	if err != nil {
		t.Fatalf("ScreenshotURL: %v", err)
	}
	defer stream.Close()

	if got := stream.ContentType(); got != "image/png" {
		t.Errorf("ContentType = %q", got)
	}
	if got := stream.ContentLength(); got != 4 {
		t.Errorf("ContentLength = %d, want 4", got)
	}
	if got := stream.TraceID(); got != "t-3" {
		t.Errorf("TraceID = %q, want t-3", got)
	}
}

func TestStreaming_ValidationFailsBeforeNetwork(t *testing.T) {
	t.Parallel()

	client := New("http://127.0.0.1:0") // never reached
	_, err := client.Streaming().PDFFromURL(context.Background(), "https://example.com", WebOptions{
		Scale: Float64(99),
	})
	if !errors.Is(err, ErrInvalidOptionValue) {
		t.Errorf("error = %v, want ErrInvalidOptionValue", err)
	}
}

func TestStreaming_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server watches the connection and cancels
		// r.Context() when the client disconnects; without this the handler
		// never wakes and Close in the cleanup deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := New(srv.URL)
	if _, err := client.Streaming().PDFFromURL(ctx, "https://example.com", WebOptions{}); err == nil {
		t.Error("expected error from cancelled context")
	}
}
