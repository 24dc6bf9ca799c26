package gotenberg

// Notes:
// - blocking pipeline against httptest servers: success bytes, endpoint
//   paths, form fields on the wire, trace propagation, basic auth
// - invalid options fail before any request leaves the process
// - remote failures surface as *ServiceError with the server's message
// - the utility endpoints: health, version, metrics, pdfengines

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

var samplePDF = []byte("%PDF-1.7 fake payload")

// pdfServer answers every POST with samplePDF and records the last request's
// parsed form and trace.
type pdfServer struct {
	*httptest.Server
	path   atomic.Value
	trace  atomic.Value
	form   atomic.Value
	status int
	body   string
}

func newPDFServer(t *testing.T) *pdfServer {
	t.Helper()

	s := &pdfServer{status: http.StatusOK}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.path.Store(r.URL.Path)
		s.trace.Store(r.Header.Get(TraceHeader))
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			s.form.Store(r.MultipartForm)
		}
		if s.status != http.StatusOK {
			w.Header().Set(TraceHeader, r.Header.Get(TraceHeader))
			w.WriteHeader(s.status)
			w.Write([]byte(s.body))
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(samplePDF)
	}))
	t.Cleanup(s.Close)
	return s
}

func TestClient_PDFFromURL(t *testing.T) {
	t.Parallel()

	srv := newPDFServer(t)
	client := New(srv.URL)

	pdf, err := client.PDFFromURL(context.Background(), "https://example.com", WebOptions{
		Landscape: Bool(true),
	})
	if err != nil {
		t.Fatalf("PDFFromURL: %v", err)
	}
	if string(pdf) != string(samplePDF) {
		t.Errorf("payload = %q, want sample pdf", pdf)
	}
	if got := srv.path.Load(); got != "/forms/chromium/convert/url" {
		t.Errorf("path = %v", got)
	}
	if got := srv.trace.Load().(string); got == "" {
		t.Error("trace header missing, want generated id")
	}

	form := srv.form.Load().(*multipart.Form)
	if got := form.Value["url"]; len(got) != 1 || got[0] != "https://example.com" {
		t.Errorf("url field = %v", got)
	}
	if got := form.Value["landscape"]; len(got) != 1 || got[0] != "true" {
		t.Errorf("landscape field = %v", got)
	}
}

func TestClient_PDFFromHTML(t *testing.T) {
	t.Parallel()

	srv := newPDFServer(t)
	client := New(srv.URL)

	if _, err := client.PDFFromHTML(context.Background(), "<html></html>", WebOptions{}); err != nil {
		t.Fatalf("PDFFromHTML: %v", err)
	}
	if got := srv.path.Load(); got != "/forms/chromium/convert/html" {
		t.Errorf("path = %v", got)
	}
	form := srv.form.Load().(*multipart.Form)
	if len(form.File["index.html"]) != 1 {
		t.Errorf("index.html parts = %d, want 1", len(form.File["index.html"]))
	}
}

func TestClient_PDFFromDocument(t *testing.T) {
	t.Parallel()

	srv := newPDFServer(t)
	client := New(srv.URL)

	if _, err := client.PDFFromDocument(context.Background(), "report.docx", []byte("doc"), DocumentOptions{}); err != nil {
		t.Fatalf("PDFFromDocument: %v", err)
	}
	if got := srv.path.Load(); got != "/forms/libreoffice/convert" {
		t.Errorf("path = %v", got)
	}
	form := srv.form.Load().(*multipart.Form)
	files := form.File["files"]
	if len(files) != 1 || files[0].Filename != "report.docx" {
		t.Errorf("files parts = %+v", files)
	}
}

func TestClient_ScreenshotURL(t *testing.T) {
	t.Parallel()

	srv := newPDFServer(t)
	client := New(srv.URL)

	if _, err := client.ScreenshotURL(context.Background(), "https://example.com", ScreenshotOptions{
		Format: FormatPNG,
	}); err != nil {
		t.Fatalf("ScreenshotURL: %v", err)
	}
	if got := srv.path.Load(); got != "/forms/chromium/screenshot/url" {
		t.Errorf("path = %v", got)
	}
	form := srv.form.Load().(*multipart.Form)
	if got := form.Value["format"]; len(got) != 1 || got[0] != "png" {
		t.Errorf("format field = %v", got)
	}
}

func TestClient_TracePropagation(t *testing.T) {
	t.Parallel()

	srv := newPDFServer(t)
	client := New(srv.URL)

	_, err := client.PDFFromURL(context.Background(), "https://example.com", WebOptions{
		TraceID: "caller-trace",
	})
	if err != nil {
		t.Fatalf("PDFFromURL: %v", err)
	}
	if got := srv.trace.Load().(string); got != "caller-trace" {
		t.Errorf("trace = %q, want caller-trace", got)
	}
}

func TestClient_ValidationFailsBeforeNetwork(t *testing.T) {
	t.Parallel()

	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL)
	_, err := client.PDFFromURL(context.Background(), "https://example.com", WebOptions{
		Scale: Float64(99),
	})
	if !errors.Is(err, ErrInvalidOptionValue) {
		t.Fatalf("error = %v, want ErrInvalidOptionValue", err)
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("server saw %d requests, want 0", n)
	}
}

func TestClient_ServiceError(t *testing.T) {
	t.Parallel()

	srv := newPDFServer(t)
	srv.status = 599
	srv.body = "engine crashed"
	client := New(srv.URL)

	_, err := client.PDFFromURL(context.Background(), "https://example.com", WebOptions{TraceID: "t-1"})

	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("error = %T (%v), want *ServiceError", err, err)
	}
	if se.Status != 599 || se.Message != "engine crashed" || se.TraceID != "t-1" {
		t.Errorf("ServiceError = %+v", se)
	}
}

func TestClient_BasicAuth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write(samplePDF)
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL, WithBasicAuth("alice", "s3cret"))
	if _, err := client.PDFFromURL(context.Background(), "https://example.com", WebOptions{}); err != nil {
		t.Fatalf("PDFFromURL with auth: %v", err)
	}

	unauth := New(srv.URL)
	_, err := unauth.PDFFromURL(context.Background(), "https://example.com", WebOptions{})
	var se *ServiceError
	if !errors.As(err, &se) || se.Status != http.StatusUnauthorized {
		t.Errorf("error = %v, want 401 ServiceError", err)
	}
}

func TestClient_ConvertPDF(t *testing.T) {
	t.Parallel()

	srv := newPDFServer(t)
	client := New(srv.URL)

	if _, err := client.ConvertPDF(context.Background(), []byte("%PDF"), PDFA2b, true); err != nil {
		t.Fatalf("ConvertPDF: %v", err)
	}
	if got := srv.path.Load(); got != "/forms/pdfengines/convert" {
		t.Errorf("path = %v", got)
	}
	form := srv.form.Load().(*multipart.Form)
	if got := form.Value["pdfa"]; len(got) != 1 || got[0] != "PDF/A-2b" {
		t.Errorf("pdfa field = %v", got)
	}
	if got := form.Value["pdfua"]; len(got) != 1 || got[0] != "true" {
		t.Errorf("pdfua field = %v", got)
	}

	if _, err := client.ConvertPDF(context.Background(), []byte("%PDF"), PDFA1b, true); !errors.Is(err, ErrConflictingOptions) {
		t.Errorf("PDF/A-1b with PDF/UA error = %v, want ErrConflictingOptions", err)
	}
}

func TestClient_Metadata(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/forms/pdfengines/metadata/read":
			json.NewEncoder(w).Encode(map[string]map[string]any{
				"file.pdf": {"Title": "Quarterly Report", "PageCount": float64(12)},
			})
		case "/forms/pdfengines/metadata/write":
			w.Write(samplePDF)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client := New(srv.URL)

	meta, err := client.ReadMetadata(context.Background(), []byte("%PDF"))
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if meta["Title"] != "Quarterly Report" {
		t.Errorf("Title = %v", meta["Title"])
	}

	out, err := client.WriteMetadata(context.Background(), []byte("%PDF"), map[string]any{"Author": "alice"})
	if err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}
	if string(out) != string(samplePDF) {
		t.Errorf("payload = %q", out)
	}
}

func TestClient_Health(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		// Degraded answers still carry a parseable body.
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{
			"status": "down",
			"details": {
				"chromium": {"status": "up", "timestamp": "2026-01-02T15:04:05Z"},
				"libreoffice": {"status": "down", "timestamp": "2026-01-02T15:04:05Z", "error": "process not responding"}
			}
		}`))
	}))
	t.Cleanup(srv.Close)

	h, err := New(srv.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Status != HealthDown {
		t.Errorf("Status = %q, want down", h.Status)
	}
	if h.Details.Chromium.Status != HealthUp {
		t.Errorf("Chromium = %q, want up", h.Details.Chromium.Status)
	}
	if h.Details.LibreOffice.Error != "process not responding" {
		t.Errorf("LibreOffice error = %q", h.Details.LibreOffice.Error)
	}
}

func TestClient_Version(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/version" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("8.5.0\n"))
	}))
	t.Cleanup(srv.Close)

	v, err := New(srv.URL).Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != "8.5.0" {
		t.Errorf("Version = %q, want 8.5.0", v)
	}
}

func TestClient_Metrics(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prometheus/metrics" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("gotenberg_chromium_requests_queue_size 0\n"))
	}))
	t.Cleanup(srv.Close)

	m, err := New(srv.URL).Metrics(context.Background())
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if m == "" {
		t.Error("empty metrics payload")
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	srv := newPDFServer(t)
	client := New(srv.URL + "/")
	if _, err := client.PDFFromURL(context.Background(), "https://example.com", WebOptions{}); err != nil {
		t.Fatalf("PDFFromURL: %v", err)
	}
	if got := srv.path.Load(); got != "/forms/chromium/convert/url" {
		t.Errorf("path = %v", got)
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}
