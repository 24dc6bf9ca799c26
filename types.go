package gotenberg

import "fmt"

// Bool returns a pointer to v, for setting optional boolean options. Unset
// (nil) fields are never emitted on the wire; a pointer to false is emitted
// as the literal "false".
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for setting optional integer options.
func Int(v int) *int { return &v }

// Float64 returns a pointer to v, for setting optional float options.
func Float64(v float64) *float64 { return &v }

// Dim returns a pointer to d, for setting optional dimension options.
func Dim(d Dimension) *Dimension { return &d }

// MediaType is the CSS media type Chromium emulates while rendering.
type MediaType string

// Media types. The server default is print.
const (
	MediaScreen MediaType = "screen"
	MediaPrint  MediaType = "print"
)

func (m MediaType) validate() error {
	switch m {
	case "", MediaScreen, MediaPrint:
		return nil
	}
	return fmt.Errorf("%w: emulated media type %q", ErrInvalidOptionValue, m)
}

// ImageFormat is the encoding of a screenshot.
type ImageFormat string

// Screenshot image formats. The server default is png.
const (
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpeg"
	FormatWebP ImageFormat = "webp"
)

func (f ImageFormat) validate() error {
	switch f {
	case "", FormatPNG, FormatJPEG, FormatWebP:
		return nil
	}
	return fmt.Errorf("%w: image format %q", ErrInvalidOptionValue, f)
}

// PDFFormat is a PDF/A archival profile the resulting PDF is converted into.
type PDFFormat string

// PDF/A profiles.
const (
	PDFA1b PDFFormat = "PDF/A-1b" // ISO 19005-1:2005
	PDFA2b PDFFormat = "PDF/A-2b" // ISO 19005-2:2011
	PDFA3b PDFFormat = "PDF/A-3b" // ISO 19005-3:2012
)

func (f PDFFormat) validate() error {
	switch f {
	case "", PDFA1b, PDFA2b, PDFA3b:
		return nil
	}
	return fmt.Errorf("%w: PDF/A format %q", ErrInvalidOptionValue, f)
}

// SameSite is the SameSite cookie attribute.
type SameSite string

// SameSite attribute values.
const (
	SameSiteStrict SameSite = "Strict"
	SameSiteLax    SameSite = "Lax"
	SameSiteNone   SameSite = "None"
)

// Cookie is stored in the Chromium cookie jar before the page loads. Name,
// value and domain are required; the remaining attributes are optional.
//
// Cookies are serialized as a single JSON field on the wire. Treat cookie
// values as sensitive: call Clear on the options after the request returns.
type Cookie struct {
	Name     string   `json:"name"`
	Value    string   `json:"value"`
	Domain   string   `json:"domain"`
	Path     string   `json:"path,omitempty"`
	Secure   bool     `json:"secure,omitempty"`
	HTTPOnly bool     `json:"httpOnly,omitempty"`
	SameSite SameSite `json:"sameSite,omitempty"`
}

func (c Cookie) validate() error {
	if c.Name == "" || c.Value == "" || c.Domain == "" {
		return fmt.Errorf("%w: cookie requires name, value and domain", ErrInvalidOptionValue)
	}
	switch c.SameSite {
	case "", SameSiteStrict, SameSiteLax, SameSiteNone:
		return nil
	}
	return fmt.Errorf("%w: cookie %q: sameSite %q", ErrInvalidOptionValue, c.Name, c.SameSite)
}
