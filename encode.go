package gotenberg

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// formField is one encoded multipart part: either a plain text field or a
// named file part carrying a content type. The sequence of fields for a
// request is fully determined before anything touches the network.
type formField struct {
	name        string
	value       string
	data        []byte
	filename    string
	contentType string
}

func textField(name, value string) formField {
	return formField{name: name, value: value}
}

func fileField(name string, data []byte, filename, contentType string) formField {
	return formField{name: name, data: data, filename: filename, contentType: contentType}
}

// isFile reports whether the field is a file part.
func (f formField) isFile() bool { return f.filename != "" }

// sourceKind tags the source union.
type sourceKind int

const (
	sourceURL sourceKind = iota
	sourceHTML
	sourceMarkdown
	sourceDocument
)

// source is the tagged union of convertible content. Each kind maps to one
// encoder branch.
type source struct {
	kind     sourceKind
	url      string
	html     string
	template string
	markdown map[string]string
	filename string
	document []byte
}

func urlSource(u string) source    { return source{kind: sourceURL, url: u} }
func htmlSource(h string) source   { return source{kind: sourceHTML, html: h} }
func markdownSource(template string, files map[string]string) source {
	return source{kind: sourceMarkdown, template: template, markdown: files}
}
func documentSource(filename string, data []byte) source {
	return source{kind: sourceDocument, filename: filename, document: data}
}

// encode maps the source content to its file and text parts. Markdown files
// are emitted in filename order so the part sequence is deterministic.
func (s source) encode() ([]formField, error) {
	switch s.kind {
	case sourceURL:
		return []formField{textField("url", s.url)}, nil

	case sourceHTML:
		return []formField{fileField("index.html", []byte(s.html), "index.html", "text/html")}, nil

	case sourceMarkdown:
		if len(s.markdown) == 0 {
			return nil, fmt.Errorf("%w: markdown source requires at least one file", ErrInvalidOptionValue)
		}
		fields := []formField{fileField("index.html", []byte(s.template), "index.html", "text/html")}
		names := make([]string, 0, len(s.markdown))
		for name := range s.markdown {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !strings.HasSuffix(name, ".md") || name == ".md" {
				return nil, fmt.Errorf("%w: markdown filename %q must end in .md", ErrInvalidFilename, name)
			}
			fields = append(fields, fileField(name, []byte(s.markdown[name]), name, "text/markdown"))
		}
		return fields, nil

	case sourceDocument:
		if s.filename == "" {
			return nil, fmt.Errorf("%w: document requires a filename", ErrInvalidFilename)
		}
		return []formField{fileField("files", s.document, s.filename, "")}, nil
	}
	return nil, fmt.Errorf("%w: unknown source kind %d", ErrInvalidOptionValue, s.kind)
}

// formOptions is implemented by the three option models. encode validates
// first, so invalid or conflicting options never reach the network.
type formOptions interface {
	encode() ([]formField, error)
	trace() string
}

// encodeRequest is the single entry point from source content plus options
// to the ordered part sequence sent to the server.
func encodeRequest(src source, opts formOptions) ([]formField, error) {
	fields, err := src.encode()
	if err != nil {
		return nil, err
	}
	optFields, err := opts.encode()
	if err != nil {
		return nil, err
	}
	return append(fields, optFields...), nil
}

// fieldWriter accumulates encoded fields. The append helpers emit nothing
// for unset values, so an all-defaults option model adds zero fields.
type fieldWriter struct {
	fields []formField
	err    error
}

func (w *fieldWriter) bool(name string, v *bool) {
	if v != nil {
		w.fields = append(w.fields, textField(name, strconv.FormatBool(*v)))
	}
}

func (w *fieldWriter) int(name string, v *int) {
	if v != nil {
		w.fields = append(w.fields, textField(name, strconv.Itoa(*v)))
	}
}

func (w *fieldWriter) float(name string, v *float64) {
	if v != nil {
		w.fields = append(w.fields, textField(name, strconv.FormatFloat(*v, 'f', -1, 64)))
	}
}

func (w *fieldWriter) string(name, v string) {
	if v != "" {
		w.fields = append(w.fields, textField(name, v))
	}
}

func (w *fieldWriter) dimension(name string, v *Dimension) {
	if v != nil {
		w.fields = append(w.fields, textField(name, v.String()))
	}
}

// millis encodes a duration as whole milliseconds with the unit suffix,
// e.g. "2500ms".
func (w *fieldWriter) millis(name string, v int64) {
	if v != 0 {
		w.fields = append(w.fields, textField(name, strconv.FormatInt(v, 10)+"ms"))
	}
}

// json encodes a list or map value as a single JSON string field.
func (w *fieldWriter) json(name string, v any) {
	if w.err != nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("%w: %s: %v", ErrInvalidOptionValue, name, err)
		return
	}
	w.fields = append(w.fields, textField(name, string(b)))
}

func (w *fieldWriter) htmlFile(filename, content string) {
	if content != "" {
		w.fields = append(w.fields, fileField(filename, []byte(content), filename, "text/html"))
	}
}

func (o *WebOptions) trace() string { return o.TraceID }

func (o *WebOptions) encode() ([]formField, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	w := &fieldWriter{}
	w.bool("singlePage", o.SinglePage)
	w.dimension("paperWidth", o.PaperWidth)
	w.dimension("paperHeight", o.PaperHeight)
	w.dimension("marginTop", o.MarginTop)
	w.dimension("marginBottom", o.MarginBottom)
	w.dimension("marginLeft", o.MarginLeft)
	w.dimension("marginRight", o.MarginRight)
	w.bool("preferCssPageSize", o.PreferCSSPageSize)
	w.bool("generateDocumentOutline", o.GenerateDocumentOutline)
	w.bool("printBackground", o.PrintBackground)
	w.bool("omitBackground", o.OmitBackground)
	w.bool("landscape", o.Landscape)
	w.float("scale", o.Scale)
	if !o.NativePageRanges.IsZero() {
		w.string("nativePageRanges", o.NativePageRanges.String())
	}
	w.htmlFile("header.html", o.HeaderHTML)
	w.htmlFile("footer.html", o.FooterHTML)
	w.millis("waitDelay", o.WaitDelay.Milliseconds())
	w.string("waitForExpression", o.WaitForExpression)
	w.string("emulatedMediaType", string(o.EmulatedMediaType))
	if len(o.Cookies) > 0 {
		w.json("cookies", o.Cookies)
	}
	w.bool("skipNetworkIdleEvents", o.SkipNetworkIdleEvents)
	w.string("userAgent", o.UserAgent)
	if len(o.ExtraHTTPHeaders) > 0 {
		w.json("extraHttpHeaders", o.ExtraHTTPHeaders)
	}
	w.string("pdfa", string(o.PDFA))
	w.bool("pdfua", o.PDFUA)
	if len(o.Metadata) > 0 {
		w.json("metadata", o.Metadata)
	}
	if len(o.FailOnHTTPStatusCodes) > 0 {
		w.json("failOnHttpStatusCodes", o.FailOnHTTPStatusCodes)
	}
	if len(o.FailOnResourceHTTPStatusCodes) > 0 {
		w.json("failOnResourceHttpStatusCodes", o.FailOnResourceHTTPStatusCodes)
	}
	w.bool("failOnResourceLoadingFailed", o.FailOnResourceLoadingFailed)
	w.bool("failOnConsoleExceptions", o.FailOnConsoleExceptions)
	return w.fields, w.err
}

func (o *ScreenshotOptions) trace() string { return o.TraceID }

func (o *ScreenshotOptions) encode() ([]formField, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	w := &fieldWriter{}
	w.int("width", o.Width)
	w.int("height", o.Height)
	w.bool("clip", o.Clip)
	w.string("format", string(o.Format))
	w.int("quality", o.Quality)
	w.bool("omitBackground", o.OmitBackground)
	w.bool("optimizeForSpeed", o.OptimizeForSpeed)
	w.millis("waitDelay", o.WaitDelay.Milliseconds())
	w.string("waitForExpression", o.WaitForExpression)
	w.string("emulatedMediaType", string(o.EmulatedMediaType))
	if len(o.Cookies) > 0 {
		w.json("cookies", o.Cookies)
	}
	w.bool("skipNetworkIdleEvents", o.SkipNetworkIdleEvents)
	w.string("userAgent", o.UserAgent)
	if len(o.ExtraHTTPHeaders) > 0 {
		w.json("extraHttpHeaders", o.ExtraHTTPHeaders)
	}
	if len(o.FailOnHTTPStatusCodes) > 0 {
		w.json("failOnHttpStatusCodes", o.FailOnHTTPStatusCodes)
	}
	if len(o.FailOnResourceHTTPStatusCodes) > 0 {
		w.json("failOnResourceHttpStatusCodes", o.FailOnResourceHTTPStatusCodes)
	}
	w.bool("failOnResourceLoadingFailed", o.FailOnResourceLoadingFailed)
	w.bool("failOnConsoleExceptions", o.FailOnConsoleExceptions)
	return w.fields, w.err
}

func (o *DocumentOptions) trace() string { return o.TraceID }

func (o *DocumentOptions) encode() ([]formField, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	w := &fieldWriter{}
	w.string("password", o.Password)
	w.bool("landscape", o.Landscape)
	if !o.NativePageRanges.IsZero() {
		w.string("nativePageRanges", o.NativePageRanges.String())
	}
	w.bool("exportFormFields", o.ExportFormFields)
	w.bool("allowDuplicateFieldNames", o.AllowDuplicateFieldNames)
	w.bool("exportBookmarks", o.ExportBookmarks)
	w.bool("exportBookmarksToPdfDestination", o.ExportBookmarksToPDFDestination)
	w.bool("exportPlaceholders", o.ExportPlaceholders)
	w.bool("exportNotes", o.ExportNotes)
	w.bool("exportNotesPages", o.ExportNotesPages)
	w.bool("exportOnlyNotesPages", o.ExportOnlyNotesPages)
	w.bool("exportNotesInMargin", o.ExportNotesInMargin)
	w.bool("convertOooTargetToPdfTarget", o.ConvertOOOTargetToPDFTarget)
	w.bool("exportLinksRelativeFsys", o.ExportLinksRelativeFsys)
	w.bool("exportHiddenSlides", o.ExportHiddenSlides)
	w.bool("skipEmptyPages", o.SkipEmptyPages)
	w.bool("addOriginalDocumentAsStream", o.AddOriginalDocumentAsStream)
	w.bool("singlePageSheets", o.SinglePageSheets)
	w.bool("losslessImageCompression", o.LosslessImageCompression)
	w.int("quality", o.Quality)
	w.bool("reduceImageResolution", o.ReduceImageResolution)
	w.int("maxImageResolution", o.MaxImageResolution)
	w.string("pdfa", string(o.PDFA))
	w.bool("pdfua", o.PDFUA)
	return w.fields, w.err
}
