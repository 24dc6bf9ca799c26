package gotenberg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Endpoint paths, fixed by the Gotenberg v8 API.
const (
	epConvertURL         = "forms/chromium/convert/url"
	epConvertHTML        = "forms/chromium/convert/html"
	epConvertMarkdown    = "forms/chromium/convert/markdown"
	epScreenshotURL      = "forms/chromium/screenshot/url"
	epScreenshotHTML     = "forms/chromium/screenshot/html"
	epScreenshotMarkdown = "forms/chromium/screenshot/markdown"
	epConvertOffice      = "forms/libreoffice/convert"
	epPDFEnginesConvert  = "forms/pdfengines/convert"
	epMetadataRead       = "forms/pdfengines/metadata/read"
	epMetadataWrite      = "forms/pdfengines/metadata/write"
)

// defaultTimeout bounds a whole conversion call when no custom HTTP client
// is supplied.
const defaultTimeout = 30 * time.Second

// Client talks to a Gotenberg server. The blocking methods buffer the whole
// response before returning; use Async for futures or Streaming for
// incremental delivery. A Client is safe for concurrent use: every call is
// self-contained from validation through classification, sends at most one
// request, and never retries.
type Client struct {
	baseURL  string
	httpc    *http.Client
	username string
	password string
	log      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to tune the
// connection pool or TLS. Timeouts are a transport concern, configured here
// per client instance, never per call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithTimeout sets the per-call timeout on the default HTTP client.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("gotenberg: WithTimeout duration must be positive")
	}
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithBasicAuth sends HTTP basic auth with every request, for servers
// started with --api-enable-basic-auth.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithLogger attaches a logger. The client logs one debug line per request
// and a warning per remote failure; the default logger discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the Gotenberg server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// send assembles and sends one multipart request, returning the raw response
// and the trace that was sent. The caller owns the response body.
func (c *Client) send(ctx context.Context, path string, fields []formField, trace string) (*http.Response, string, error) {
	if trace == "" {
		trace = newTraceID()
	}
	req, err := buildRequest(ctx, c.baseURL, path, fields, trace)
	if err != nil {
		return nil, "", err
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	c.log.Debug().Str("path", path).Str("trace", trace).Msg("sending conversion request")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("sending request: %w", err)
	}
	return resp, trace, nil
}

// post runs the full blocking pipeline: send, buffer, classify.
func (c *Client) post(ctx context.Context, path string, fields []formField, trace string) ([]byte, error) {
	resp, trace, err := c.send(ctx, path, fields, trace)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if err := classify(resp.StatusCode, resp.Header, body, trace); err != nil {
		c.log.Warn().Str("path", path).Str("trace", trace).Int("status", resp.StatusCode).Msg("conversion failed")
		return nil, err
	}
	return body, nil
}

// convert encodes source and options and runs the blocking pipeline.
func (c *Client) convert(ctx context.Context, path string, src source, opts formOptions) ([]byte, error) {
	fields, err := encodeRequest(src, opts)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, path, fields, opts.trace())
}

// PDFFromURL converts the page at url to a PDF using the Chromium engine.
func (c *Client) PDFFromURL(ctx context.Context, url string, opts WebOptions) ([]byte, error) {
	return c.convert(ctx, epConvertURL, urlSource(url), &opts)
}

// PDFFromHTML converts an HTML document to a PDF using the Chromium engine.
func (c *Client) PDFFromHTML(ctx context.Context, html string, opts WebOptions) ([]byte, error) {
	return c.convert(ctx, epConvertHTML, htmlSource(html), &opts)
}

// PDFFromMarkdown converts a set of markdown files to a PDF using the
// Chromium engine. The template is an HTML document wrapping the markdown
// via `{{ toHTML "file.md" }}`; files maps filenames (which must end in
// .md) to their content.
func (c *Client) PDFFromMarkdown(ctx context.Context, template string, files map[string]string, opts WebOptions) ([]byte, error) {
	return c.convert(ctx, epConvertMarkdown, markdownSource(template, files), &opts)
}

// PDFFromDocument converts an office document (docx, xlsx, odt, ...) to a
// PDF using the LibreOffice engine. The filename extension selects the
// input format.
func (c *Client) PDFFromDocument(ctx context.Context, filename string, document []byte, opts DocumentOptions) ([]byte, error) {
	return c.convert(ctx, epConvertOffice, documentSource(filename, document), &opts)
}

// ScreenshotURL captures the page at url using the Chromium engine.
func (c *Client) ScreenshotURL(ctx context.Context, url string, opts ScreenshotOptions) ([]byte, error) {
	return c.convert(ctx, epScreenshotURL, urlSource(url), &opts)
}

// ScreenshotHTML captures an HTML document using the Chromium engine.
func (c *Client) ScreenshotHTML(ctx context.Context, html string, opts ScreenshotOptions) ([]byte, error) {
	return c.convert(ctx, epScreenshotHTML, htmlSource(html), &opts)
}

// ScreenshotMarkdown captures a set of markdown files wrapped by template
// using the Chromium engine.
func (c *Client) ScreenshotMarkdown(ctx context.Context, template string, files map[string]string, opts ScreenshotOptions) ([]byte, error) {
	return c.convert(ctx, epScreenshotMarkdown, markdownSource(template, files), &opts)
}

// ConvertPDF transforms an existing PDF into the given PDF/A profile and/or
// PDF/UA. An empty pdfa leaves the profile unchanged.
func (c *Client) ConvertPDF(ctx context.Context, pdf []byte, pdfa PDFFormat, pdfua bool) ([]byte, error) {
	if err := pdfa.validate(); err != nil {
		return nil, err
	}
	if err := validatePDFAUA(pdfa, &pdfua); err != nil {
		return nil, err
	}
	fields := []formField{fileField("file.pdf", pdf, "file.pdf", "application/pdf")}
	if pdfa != "" {
		fields = append(fields, textField("pdfa", string(pdfa)))
	}
	fields = append(fields, textField("pdfua", strconv.FormatBool(pdfua)))
	return c.post(ctx, epPDFEnginesConvert, fields, "")
}

// ReadMetadata reads the metadata of a PDF file.
func (c *Client) ReadMetadata(ctx context.Context, pdf []byte) (map[string]any, error) {
	fields := []formField{fileField("file.pdf", pdf, "file.pdf", "application/pdf")}
	body, err := c.post(ctx, epMetadataRead, fields, "")
	if err != nil {
		return nil, err
	}

	// The server keys the result by the uploaded filename.
	var container map[string]map[string]any
	if err := json.Unmarshal(body, &container); err != nil {
		return nil, fmt.Errorf("parsing metadata response: %w", err)
	}
	return container["file.pdf"], nil
}

// WriteMetadata writes metadata into a PDF file and returns the result.
// Not all metadata keys are writable; writing metadata may compromise PDF/A
// compliance.
func (c *Client) WriteMetadata(ctx context.Context, pdf []byte, metadata map[string]any) ([]byte, error) {
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata: %v", ErrInvalidOptionValue, err)
	}
	fields := []formField{
		fileField("file.pdf", pdf, "file.pdf", "application/pdf"),
		textField("metadata", string(encoded)),
	}
	return c.post(ctx, epMetadataWrite, fields, "")
}

// get fetches a non-conversion endpoint (health, version, metrics).
func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// Version returns the version string of the Gotenberg server.
func (c *Client) Version(ctx context.Context) (string, error) {
	body, status, err := c.get(ctx, "version")
	if err != nil {
		return "", err
	}
	if err := classify(status, nil, body, ""); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// Metrics returns the Prometheus metrics of the Gotenberg server as raw
// multi-line text.
func (c *Client) Metrics(ctx context.Context) (string, error) {
	body, status, err := c.get(ctx, "prometheus/metrics")
	if err != nil {
		return "", err
	}
	if err := classify(status, nil, body, ""); err != nil {
		return "", err
	}
	return string(body), nil
}
