package gotenberg

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/rs/xid"
)

// TraceHeader carries the request trace: sent with every request and echoed
// by the server, so client and server logs can be correlated.
const TraceHeader = "Gotenberg-Trace"

// newTraceID generates a trace for requests where the caller did not supply
// one.
func newTraceID() string { return xid.New().String() }

// quoteEscaper escapes filenames for Content-Disposition, mirroring
// mime/multipart.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildRequest assembles the multipart body and headers for one call against
// the given endpoint path. Text fields keep the multipart default content
// type; file parts carry their real MIME type when known.
func buildRequest(ctx context.Context, baseURL, path string, fields []formField, trace string) (*http.Request, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range fields {
		if !f.isFile() {
			if err := mw.WriteField(f.name, f.value); err != nil {
				return nil, fmt.Errorf("writing form field %q: %w", f.name, err)
			}
			continue
		}
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.name), quoteEscaper.Replace(f.filename)))
		if f.contentType != "" {
			hdr.Set("Content-Type", f.contentType)
		}
		pw, err := mw.CreatePart(hdr)
		if err != nil {
			return nil, fmt.Errorf("creating form part %q: %w", f.name, err)
		}
		if _, err := pw.Write(f.data); err != nil {
			return nil, fmt.Errorf("writing form part %q: %w", f.name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/"+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(TraceHeader, trace)
	return req, nil
}
