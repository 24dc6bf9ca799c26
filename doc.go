// Package gotenberg is a client for the Gotenberg v8 document-conversion
// API: it turns URLs, HTML, Markdown and office documents into PDFs or
// screenshots rendered by a remote Gotenberg server.
//
// # Quick Start
//
// Create a client and convert:
//
//	client := gotenberg.New("http://localhost:3000")
//
//	pdf, err := client.PDFFromURL(ctx, "https://example.com", gotenberg.WebOptions{
//	    PrintBackground: gotenberg.Bool(true),
//	    Landscape:       gotenberg.Bool(true),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", pdf, 0644)
//
// # Options
//
// Each conversion kind has its own option model: WebOptions for Chromium
// page rendering, ScreenshotOptions for captures and DocumentOptions for
// LibreOffice conversions. Every field is optional; unset fields are never
// sent, so the server defaults apply. Optional booleans and numbers are
// pointers, set via the Bool, Int and Float64 helpers, keeping "unset" and
// "explicit false" distinct. Options are validated before any request is
// sent: out-of-range values fail with ErrInvalidOptionValue, jointly
// impossible combinations with ErrConflictingOptions.
//
//	opts := gotenberg.WebOptions{}
//	opts.SetPaperFormat(gotenberg.PaperA4)
//	opts.MarginTop = gotenberg.Dim(gotenberg.Inches(1))
//	opts.NativePageRanges, _ = gotenberg.ParsePageRange("1-5,8")
//
// # Execution Models
//
// All conversion operations exist in three variants sharing one pipeline:
//
//   - blocking: methods on Client return the buffered result
//   - asynchronous: Client.Async() returns futures, resolved via Wait
//   - streaming: Client.Streaming() returns a DocumentStream delivering
//     the payload in chunks; Close releases the connection
//
// # Errors
//
// Remote failures are *ServiceError values carrying the HTTP status, the
// server's message and a trace id. Every request sends a Gotenberg-Trace
// header (caller-supplied via the options' TraceID, otherwise generated)
// which the server echoes, so failures can be correlated with server logs.
// Transport failures are returned wrapped; there are no retries and no
// partial results.
package gotenberg
