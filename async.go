package gotenberg

import "context"

// Async exposes the conversion operations as futures. Each call starts the
// request immediately in its own goroutine and returns a Future; validation,
// encoding and classification are the exact same pipeline as the blocking
// client.
//
//	fut := client.Async().PDFFromURL(ctx, "https://example.com", opts)
//	// ... other work ...
//	pdf, err := fut.Wait(ctx)
type Async struct {
	c *Client
}

// Async returns the asynchronous variant of the client.
func (c *Client) Async() *Async { return &Async{c: c} }

// Future is the pending result of an asynchronous conversion.
type Future struct {
	done chan struct{}
	data []byte
	err  error
}

// Wait suspends until the conversion finishes or ctx is cancelled. Waiting
// again after completion returns the same result. Cancelling the context
// passed to the originating call aborts the request itself; cancelling the
// context passed to Wait only abandons the wait.
func (f *Future) Wait(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
		return f.data, f.err
	}
}

func (a *Async) start(fn func() ([]byte, error)) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		f.data, f.err = fn()
		close(f.done)
	}()
	return f
}

// PDFFromURL converts the page at url to a PDF using the Chromium engine.
func (a *Async) PDFFromURL(ctx context.Context, url string, opts WebOptions) *Future {
	return a.start(func() ([]byte, error) { return a.c.PDFFromURL(ctx, url, opts) })
}

// PDFFromHTML converts an HTML document to a PDF using the Chromium engine.
func (a *Async) PDFFromHTML(ctx context.Context, html string, opts WebOptions) *Future {
	return a.start(func() ([]byte, error) { return a.c.PDFFromHTML(ctx, html, opts) })
}

// PDFFromMarkdown converts a set of markdown files to a PDF using the
// Chromium engine.
func (a *Async) PDFFromMarkdown(ctx context.Context, template string, files map[string]string, opts WebOptions) *Future {
	return a.start(func() ([]byte, error) { return a.c.PDFFromMarkdown(ctx, template, files, opts) })
}

// PDFFromDocument converts an office document to a PDF using the
// LibreOffice engine.
func (a *Async) PDFFromDocument(ctx context.Context, filename string, document []byte, opts DocumentOptions) *Future {
	return a.start(func() ([]byte, error) { return a.c.PDFFromDocument(ctx, filename, document, opts) })
}

// ScreenshotURL captures the page at url using the Chromium engine.
func (a *Async) ScreenshotURL(ctx context.Context, url string, opts ScreenshotOptions) *Future {
	return a.start(func() ([]byte, error) { return a.c.ScreenshotURL(ctx, url, opts) })
}

// ScreenshotHTML captures an HTML document using the Chromium engine.
func (a *Async) ScreenshotHTML(ctx context.Context, html string, opts ScreenshotOptions) *Future {
	return a.start(func() ([]byte, error) { return a.c.ScreenshotHTML(ctx, html, opts) })
}

// ScreenshotMarkdown captures a set of markdown files wrapped by template
// using the Chromium engine.
func (a *Async) ScreenshotMarkdown(ctx context.Context, template string, files map[string]string, opts ScreenshotOptions) *Future {
	return a.start(func() ([]byte, error) { return a.c.ScreenshotMarkdown(ctx, template, files, opts) })
}
