package gotenberg

import (
	"context"
	"io"
)

// maxErrorBodySize bounds how much of a failed response is buffered for the
// error message.
const maxErrorBodySize = 64 << 10

// Streaming exposes the conversion operations as incremental byte streams.
// Validation, encoding and classification are the exact same pipeline as the
// blocking client; classification happens eagerly on the response headers,
// so a failed call returns an error and never a partially valid stream.
type Streaming struct {
	c *Client
}

// Streaming returns the streaming variant of the client.
func (c *Client) Streaming() *Streaming { return &Streaming{c: c} }

// DocumentStream delivers a converted payload incrementally. It holds the
// underlying connection open until Close is called: the connection's
// lifetime is exactly the consumer's iteration lifetime, so always Close,
// also when abandoning the stream early.
type DocumentStream struct {
	body        io.ReadCloser
	trace       string
	contentType string
	length      int64
}

// Read delivers the next chunk, blocking until the transport has more bytes
// or the stream ends.
func (s *DocumentStream) Read(p []byte) (int, error) { return s.body.Read(p) }

// Close releases the underlying connection.
func (s *DocumentStream) Close() error { return s.body.Close() }

// TraceID is the trace sent with (or generated for) the request.
func (s *DocumentStream) TraceID() string { return s.trace }

// ContentType of the payload, e.g. application/pdf or image/png.
func (s *DocumentStream) ContentType() string { return s.contentType }

// ContentLength in bytes, or -1 when the server did not announce it.
func (s *DocumentStream) ContentLength() int64 { return s.length }

// open sends the request and classifies on headers before handing out the
// stream. On failure the body is drained into the error and the connection
// released here.
func (st *Streaming) open(ctx context.Context, path string, src source, opts formOptions) (*DocumentStream, error) {
	fields, err := encodeRequest(src, opts)
	if err != nil {
		return nil, err
	}
	resp, trace, err := st.c.send(ctx, path, fields, opts.trace())
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		resp.Body.Close()
		st.c.log.Warn().Str("path", path).Str("trace", trace).Int("status", resp.StatusCode).Msg("conversion failed")
		return nil, classify(resp.StatusCode, resp.Header, body, trace)
	}

	return &DocumentStream{
		body:        resp.Body,
		trace:       trace,
		contentType: resp.Header.Get("Content-Type"),
		length:      resp.ContentLength,
	}, nil
}

// PDFFromURL converts the page at url to a PDF using the Chromium engine.
func (st *Streaming) PDFFromURL(ctx context.Context, url string, opts WebOptions) (*DocumentStream, error) {
	return st.open(ctx, epConvertURL, urlSource(url), &opts)
}

// PDFFromHTML converts an HTML document to a PDF using the Chromium engine.
func (st *Streaming) PDFFromHTML(ctx context.Context, html string, opts WebOptions) (*DocumentStream, error) {
	return st.open(ctx, epConvertHTML, htmlSource(html), &opts)
}

// PDFFromMarkdown converts a set of markdown files to a PDF using the
// Chromium engine.
func (st *Streaming) PDFFromMarkdown(ctx context.Context, template string, files map[string]string, opts WebOptions) (*DocumentStream, error) {
	return st.open(ctx, epConvertMarkdown, markdownSource(template, files), &opts)
}

// PDFFromDocument converts an office document to a PDF using the
// LibreOffice engine.
func (st *Streaming) PDFFromDocument(ctx context.Context, filename string, document []byte, opts DocumentOptions) (*DocumentStream, error) {
	return st.open(ctx, epConvertOffice, documentSource(filename, document), &opts)
}

// ScreenshotURL captures the page at url using the Chromium engine.
func (st *Streaming) ScreenshotURL(ctx context.Context, url string, opts ScreenshotOptions) (*DocumentStream, error) {
	return st.open(ctx, epScreenshotURL, urlSource(url), &opts)
}

// ScreenshotHTML captures an HTML document using the Chromium engine.
func (st *Streaming) ScreenshotHTML(ctx context.Context, html string, opts ScreenshotOptions) (*DocumentStream, error) {
	return st.open(ctx, epScreenshotHTML, htmlSource(html), &opts)
}

// ScreenshotMarkdown captures a set of markdown files wrapped by template
// using the Chromium engine.
func (st *Streaming) ScreenshotMarkdown(ctx context.Context, template string, files map[string]string, opts ScreenshotOptions) (*DocumentStream, error) {
	return st.open(ctx, epScreenshotMarkdown, markdownSource(template, files), &opts)
}
