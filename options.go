package gotenberg

import (
	"fmt"
	"time"
)

// Chromium clamps the page render scale to this range.
const (
	minScale = 0.1
	maxScale = 2.0
)

// JPEG quality bounds, shared by screenshots and LibreOffice image export.
const (
	minQuality = 1
	maxQuality = 100
)

// WebOptions configures PDF rendering of web content (URL, HTML or Markdown
// sources) by the Chromium engine.
//
// Every field is optional. An unset field is never emitted on the wire and
// the server default listed per field applies. The zero value is always
// valid; Validate runs at encode time.
type WebOptions struct {
	// TraceID is echoed by the server in the Gotenberg-Trace header. When
	// empty, a random trace is generated per request.
	TraceID string

	// SinglePage prints the entire content on one single page. Default: false.
	SinglePage *bool

	// PaperWidth and PaperHeight set the paper size. Defaults: 8.5in x 11in.
	// Use SetPaperFormat to apply a named preset.
	PaperWidth  *Dimension
	PaperHeight *Dimension

	// Margins. Default: 0.39in on every side.
	MarginTop    *Dimension
	MarginBottom *Dimension
	MarginLeft   *Dimension
	MarginRight  *Dimension

	// PreferCSSPageSize gives the CSS-declared page size precedence over
	// PaperWidth/PaperHeight. Default: false.
	PreferCSSPageSize *bool

	// GenerateDocumentOutline embeds the document outline into the PDF.
	// Default: false.
	GenerateDocumentOutline *bool

	// PrintBackground prints background graphics. Default: false.
	PrintBackground *bool

	// OmitBackground hides the default white background, allowing PDFs with
	// transparency. Default: false.
	OmitBackground *bool

	// Landscape sets landscape orientation. Default: false.
	Landscape *bool

	// Scale of the page rendering, between 0.1 and 2.0. Default: 1.0.
	Scale *float64

	// NativePageRanges selects the pages to print. Empty means all pages.
	NativePageRanges PageRange

	// HeaderHTML and FooterHTML hold complete HTML documents printed on each
	// page. The classes date, title, url, pageNumber and totalPages inject
	// printing values. No JavaScript or external resources.
	HeaderHTML string
	FooterHTML string

	// WaitDelay pauses after page load before converting. Default: none.
	WaitDelay time.Duration

	// WaitForExpression is a JavaScript expression the conversion waits on
	// until it returns true.
	WaitForExpression string

	// EmulatedMediaType is the CSS media type to emulate. Default: print.
	EmulatedMediaType MediaType

	// Cookies to store in the Chromium cookie jar.
	Cookies []Cookie

	// SkipNetworkIdleEvents skips waiting for the Chromium network to be
	// idle. Default: true. Set to an explicit false when pages render
	// incompletely.
	SkipNetworkIdleEvents *bool

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// ExtraHTTPHeaders are sent by Chromium with every request.
	ExtraHTTPHeaders map[string]string

	// PDFA converts the resulting PDF into the given PDF/A profile.
	PDFA PDFFormat

	// PDFUA enables PDF for Universal Access. Incompatible with PDFA1b.
	PDFUA *bool

	// Metadata writes PDF metadata. Writing metadata may compromise PDF/A
	// compliance.
	Metadata map[string]any

	// FailOnHTTPStatusCodes fails the conversion when the main page status
	// is in the set. An X99 entry covers its whole hundred block (499 means
	// 400-499). Default: [499, 599].
	FailOnHTTPStatusCodes []int

	// FailOnResourceHTTPStatusCodes fails the conversion when any resource
	// status is in the set, with the same X99 convention. Default: none.
	FailOnResourceHTTPStatusCodes []int

	// FailOnResourceLoadingFailed fails the conversion when Chromium fails
	// to load at least one resource. Default: false.
	FailOnResourceLoadingFailed *bool

	// FailOnConsoleExceptions fails the conversion on Chromium console
	// exceptions. Default: false.
	FailOnConsoleExceptions *bool
}

// SetPaperFormat applies a named paper preset, setting PaperWidth and
// PaperHeight atomically. Assigning either field afterwards overrides that
// field only.
func (o *WebOptions) SetPaperFormat(f PaperFormat) {
	o.PaperWidth = Dim(f.Width())
	o.PaperHeight = Dim(f.Height())
}

// Validate checks every set field and the combinations between them. It is
// called by the encoder before any request is assembled.
func (o *WebOptions) Validate() error {
	dims := []struct {
		name string
		d    *Dimension
	}{
		{"paperWidth", o.PaperWidth},
		{"paperHeight", o.PaperHeight},
		{"marginTop", o.MarginTop},
		{"marginBottom", o.MarginBottom},
		{"marginLeft", o.MarginLeft},
		{"marginRight", o.MarginRight},
	}
	for _, f := range dims {
		if f.d == nil {
			continue
		}
		if err := f.d.validate(f.name); err != nil {
			return err
		}
	}
	if o.PaperWidth != nil && o.PaperWidth.Value == 0 {
		return fmt.Errorf("%w: paperWidth: zero size", ErrInvalidOptionValue)
	}
	if o.PaperHeight != nil && o.PaperHeight.Value == 0 {
		return fmt.Errorf("%w: paperHeight: zero size", ErrInvalidOptionValue)
	}
	if o.Scale != nil && (*o.Scale < minScale || *o.Scale > maxScale) {
		return fmt.Errorf("%w: scale %v (must be between %v and %v)", ErrInvalidOptionValue, *o.Scale, minScale, maxScale)
	}
	if o.WaitDelay < 0 {
		return fmt.Errorf("%w: negative wait delay %s", ErrInvalidOptionValue, o.WaitDelay)
	}
	if err := o.EmulatedMediaType.validate(); err != nil {
		return err
	}
	for _, c := range o.Cookies {
		if err := c.validate(); err != nil {
			return err
		}
	}
	if err := validateStatusCodes("failOnHttpStatusCodes", o.FailOnHTTPStatusCodes); err != nil {
		return err
	}
	if err := validateStatusCodes("failOnResourceHttpStatusCodes", o.FailOnResourceHTTPStatusCodes); err != nil {
		return err
	}
	if err := o.PDFA.validate(); err != nil {
		return err
	}
	return validatePDFAUA(o.PDFA, o.PDFUA)
}

// Clear scrubs sensitive field values in place: cookie values and extra HTTP
// headers. Call it once the conversion has returned; the options must not be
// reused afterwards.
func (o *WebOptions) Clear() {
	for i := range o.Cookies {
		o.Cookies[i].Value = ""
	}
	for k := range o.ExtraHTTPHeaders {
		delete(o.ExtraHTTPHeaders, k)
	}
}

// ScreenshotOptions configures screenshots of web content (URL, HTML or
// Markdown sources) taken by the Chromium engine.
//
// Every field is optional; unset fields are never emitted on the wire.
type ScreenshotOptions struct {
	// TraceID is echoed by the server in the Gotenberg-Trace header. When
	// empty, a random trace is generated per request.
	TraceID string

	// Width and Height are the device screen size in pixels.
	// Defaults: 800 x 600.
	Width  *int
	Height *int

	// Clip the screenshot to the device dimensions. Default: false.
	Clip *bool

	// Format of the image. Default: png.
	Format ImageFormat

	// Quality is the compression quality from 1 to 100, jpeg only.
	// Default: 100.
	Quality *int

	// OmitBackground hides the default white background, allowing
	// screenshots with transparency. Default: false.
	OmitBackground *bool

	// OptimizeForSpeed favors encoding speed over output size.
	// Default: false.
	OptimizeForSpeed *bool

	// WaitDelay pauses after page load before capturing. Default: none.
	WaitDelay time.Duration

	// WaitForExpression is a JavaScript expression the capture waits on
	// until it returns true.
	WaitForExpression string

	// EmulatedMediaType is the CSS media type to emulate. Default: print.
	EmulatedMediaType MediaType

	// Cookies to store in the Chromium cookie jar.
	Cookies []Cookie

	// SkipNetworkIdleEvents skips waiting for the Chromium network to be
	// idle. Default: true.
	SkipNetworkIdleEvents *bool

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// ExtraHTTPHeaders are sent by Chromium with every request.
	ExtraHTTPHeaders map[string]string

	// FailOnHTTPStatusCodes fails the capture when the main page status is
	// in the set, with the X99 block convention. Default: [499, 599].
	FailOnHTTPStatusCodes []int

	// FailOnResourceHTTPStatusCodes fails the capture when any resource
	// status is in the set. Default: none.
	FailOnResourceHTTPStatusCodes []int

	// FailOnResourceLoadingFailed fails the capture when Chromium fails to
	// load at least one resource. Default: false.
	FailOnResourceLoadingFailed *bool

	// FailOnConsoleExceptions fails the capture on Chromium console
	// exceptions. Default: false.
	FailOnConsoleExceptions *bool
}

// Validate checks every set field and the combinations between them.
func (o *ScreenshotOptions) Validate() error {
	if o.Width != nil && *o.Width <= 0 {
		return fmt.Errorf("%w: width %d", ErrInvalidOptionValue, *o.Width)
	}
	if o.Height != nil && *o.Height <= 0 {
		return fmt.Errorf("%w: height %d", ErrInvalidOptionValue, *o.Height)
	}
	if err := o.Format.validate(); err != nil {
		return err
	}
	if o.Quality != nil {
		if *o.Quality < minQuality || *o.Quality > maxQuality {
			return fmt.Errorf("%w: quality %d (must be between %d and %d)", ErrInvalidOptionValue, *o.Quality, minQuality, maxQuality)
		}
		// Quality applies to jpeg encoding only.
		if o.Format != "" && o.Format != FormatJPEG {
			return fmt.Errorf("%w: quality is jpeg-only, format is %q", ErrConflictingOptions, o.Format)
		}
	}
	if o.WaitDelay < 0 {
		return fmt.Errorf("%w: negative wait delay %s", ErrInvalidOptionValue, o.WaitDelay)
	}
	if err := o.EmulatedMediaType.validate(); err != nil {
		return err
	}
	for _, c := range o.Cookies {
		if err := c.validate(); err != nil {
			return err
		}
	}
	if err := validateStatusCodes("failOnHttpStatusCodes", o.FailOnHTTPStatusCodes); err != nil {
		return err
	}
	return validateStatusCodes("failOnResourceHttpStatusCodes", o.FailOnResourceHTTPStatusCodes)
}

// Clear scrubs sensitive field values in place: cookie values and extra HTTP
// headers.
func (o *ScreenshotOptions) Clear() {
	for i := range o.Cookies {
		o.Cookies[i].Value = ""
	}
	for k := range o.ExtraHTTPHeaders {
		delete(o.ExtraHTTPHeaders, k)
	}
}

// Valid DPI values for DocumentOptions.MaxImageResolution.
var validImageResolutions = []int{75, 150, 300, 600, 1200}

// DocumentOptions configures PDF conversion of office documents by the
// LibreOffice engine.
//
// Every field is optional; unset fields are never emitted on the wire.
type DocumentOptions struct {
	// TraceID is echoed by the server in the Gotenberg-Trace header. When
	// empty, a random trace is generated per request.
	TraceID string

	// Password for opening the source file. Treat as sensitive: call Clear
	// after the request returns.
	Password string

	// Landscape sets landscape orientation. Default: false.
	Landscape *bool

	// NativePageRanges selects the pages to convert. Empty means all pages.
	NativePageRanges PageRange

	// ExportFormFields exports form fields as widgets instead of their
	// fixed print representation. Default: true.
	ExportFormFields *bool

	// AllowDuplicateFieldNames allows multiple exported form fields with
	// the same name. Default: false.
	AllowDuplicateFieldNames *bool

	// ExportBookmarks exports bookmarks to the PDF. Default: true.
	ExportBookmarks *bool

	// ExportBookmarksToPDFDestination exports bookmarks as Named
	// Destinations. Default: false.
	ExportBookmarksToPDFDestination *bool

	// ExportPlaceholders exports the visual markings of placeholder fields
	// only. Default: false.
	ExportPlaceholders *bool

	// ExportNotes exports notes to the PDF. Default: false.
	ExportNotes *bool

	// ExportNotesPages exports notes pages (Impress only). Default: false.
	ExportNotesPages *bool

	// ExportOnlyNotesPages exports only notes pages, when ExportNotesPages
	// is set. Default: false.
	ExportOnlyNotesPages *bool

	// ExportNotesInMargin exports notes in the margin. Default: false.
	ExportNotesInMargin *bool

	// ConvertOOOTargetToPDFTarget changes .od[tpgs] link targets to .pdf in
	// exported links. Default: false.
	ConvertOOOTargetToPDFTarget *bool

	// ExportLinksRelativeFsys exports file:// hyperlinks relative to the
	// source document location. Default: false.
	ExportLinksRelativeFsys *bool

	// ExportHiddenSlides exports Impress slides excluded from slide shows.
	// Default: false.
	ExportHiddenSlides *bool

	// SkipEmptyPages suppresses automatically inserted empty pages (Writer
	// only). Default: false.
	SkipEmptyPages *bool

	// AddOriginalDocumentAsStream embeds the original document for
	// archiving. Default: false.
	AddOriginalDocumentAsStream *bool

	// SinglePageSheets puts every sheet on exactly one page (Calc only).
	// Default: false.
	SinglePageSheets *bool

	// LosslessImageCompression exports images losslessly (PNG) instead of
	// JPEG. Default: false. Incompatible with Quality.
	LosslessImageCompression *bool

	// Quality of the JPEG export, from 1 to 100. Default: 90.
	Quality *int

	// ReduceImageResolution reduces each image to MaxImageResolution.
	// Default: false.
	ReduceImageResolution *bool

	// MaxImageResolution is the target DPI when ReduceImageResolution is
	// set. One of 75, 150, 300, 600 or 1200. Default: 300.
	MaxImageResolution *int

	// PDFA converts the resulting PDF into the given PDF/A profile.
	PDFA PDFFormat

	// PDFUA enables PDF for Universal Access. Incompatible with PDFA1b.
	PDFUA *bool
}

// Validate checks every set field and the combinations between them.
func (o *DocumentOptions) Validate() error {
	if o.Quality != nil {
		if *o.Quality < minQuality || *o.Quality > maxQuality {
			return fmt.Errorf("%w: quality %d (must be between %d and %d)", ErrInvalidOptionValue, *o.Quality, minQuality, maxQuality)
		}
		if o.LosslessImageCompression != nil && *o.LosslessImageCompression {
			return fmt.Errorf("%w: quality has no effect with lossless image compression", ErrConflictingOptions)
		}
	}
	if o.MaxImageResolution != nil {
		if !validResolution(*o.MaxImageResolution) {
			return fmt.Errorf("%w: maxImageResolution %d (must be one of %v)", ErrInvalidOptionValue, *o.MaxImageResolution, validImageResolutions)
		}
		if o.ReduceImageResolution != nil && !*o.ReduceImageResolution {
			return fmt.Errorf("%w: maxImageResolution has no effect with image resolution reduction disabled", ErrConflictingOptions)
		}
	}
	if err := o.PDFA.validate(); err != nil {
		return err
	}
	return validatePDFAUA(o.PDFA, o.PDFUA)
}

// Clear scrubs the document password in place.
func (o *DocumentOptions) Clear() {
	o.Password = ""
}

func validResolution(dpi int) bool {
	for _, v := range validImageResolutions {
		if dpi == v {
			return true
		}
	}
	return false
}

// validatePDFAUA rejects the PDF/A-1b profile combined with PDF/UA: the
// PDF/A-1 standard predates Universal Access and the engines refuse the pair.
func validatePDFAUA(pdfa PDFFormat, pdfua *bool) error {
	if pdfa == PDFA1b && pdfua != nil && *pdfua {
		return fmt.Errorf("%w: %s does not allow PDF/UA", ErrConflictingOptions, PDFA1b)
	}
	return nil
}

// validateStatusCodes checks a fail-on set: plain HTTP status codes in
// 100-599, where codes ending in 99 cover their hundred block.
func validateStatusCodes(field string, codes []int) error {
	for _, c := range codes {
		if c < 100 || c > 599 {
			return fmt.Errorf("%w: %s: status code %d", ErrInvalidOptionValue, field, c)
		}
	}
	return nil
}
