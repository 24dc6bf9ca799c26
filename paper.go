package gotenberg

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is the measurement unit of a Dimension. Chromium accepts the CSS
// length units; a unitless value is interpreted by the server as inches.
type Unit string

// Supported dimension units.
const (
	UnitNone       Unit = ""
	UnitMillimeter Unit = "mm"
	UnitCentimeter Unit = "cm"
	UnitInch       Unit = "in"
	UnitPixel      Unit = "px"
	UnitPoint      Unit = "pt"
	UnitPica       Unit = "pc"
)

// Dimension is a length with a unit tag, e.g. 8.27in or 21cm. The zero value
// is not a valid dimension; option fields hold *Dimension so that unset and
// explicit zero stay distinct.
type Dimension struct {
	Value float64
	Unit  Unit
}

// Constructors for the supported units.

func Millimeters(v float64) Dimension { return Dimension{Value: v, Unit: UnitMillimeter} }
func Centimeters(v float64) Dimension { return Dimension{Value: v, Unit: UnitCentimeter} }
func Inches(v float64) Dimension      { return Dimension{Value: v, Unit: UnitInch} }
func Pixels(v float64) Dimension      { return Dimension{Value: v, Unit: UnitPixel} }
func Points(v float64) Dimension      { return Dimension{Value: v, Unit: UnitPoint} }
func Picas(v float64) Dimension       { return Dimension{Value: v, Unit: UnitPica} }

// String renders the dimension in the wire format: the numeric value
// immediately followed by the unit suffix, e.g. "8.27in".
func (d Dimension) String() string {
	return strconv.FormatFloat(d.Value, 'f', -1, 64) + string(d.Unit)
}

// validate checks the unit tag and sign. Margins may be zero, so only
// negative values are rejected here; paper sizes are additionally checked
// for zero by the option validation.
func (d Dimension) validate(field string) error {
	switch d.Unit {
	case UnitNone, UnitMillimeter, UnitCentimeter, UnitInch, UnitPixel, UnitPoint, UnitPica:
	default:
		return fmt.Errorf("%w: %s: unknown unit %q", ErrInvalidOptionValue, field, d.Unit)
	}
	if d.Value < 0 {
		return fmt.Errorf("%w: %s: negative dimension %s", ErrInvalidOptionValue, field, d)
	}
	return nil
}

// ParseDimension parses a wire-format dimension string such as "11.7in",
// "25.4mm" or a bare number (unitless, meaning inches server-side).
func ParseDimension(s string) (Dimension, error) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if c >= '0' && c <= '9' || c == '.' {
			break
		}
		i--
	}
	value, suffix := s[:i], s[i:]

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return Dimension{}, fmt.Errorf("%w: dimension %q: invalid number", ErrInvalidOptionValue, s)
	}
	switch u := Unit(suffix); u {
	case UnitNone, UnitMillimeter, UnitCentimeter, UnitInch, UnitPixel, UnitPoint, UnitPica:
		return Dimension{Value: v, Unit: u}, nil
	default:
		return Dimension{}, fmt.Errorf("%w: dimension %q: unknown unit %q", ErrInvalidOptionValue, s, suffix)
	}
}

// PaperFormat is a named paper-size preset. Applying a preset sets the paper
// width and height fields atomically to the documented pair below.
type PaperFormat string

// Supported paper formats.
const (
	PaperA0      PaperFormat = "A0"
	PaperA1      PaperFormat = "A1"
	PaperA2      PaperFormat = "A2"
	PaperA3      PaperFormat = "A3"
	PaperA4      PaperFormat = "A4"
	PaperA5      PaperFormat = "A5"
	PaperA6      PaperFormat = "A6"
	PaperLedger  PaperFormat = "Ledger"
	PaperLegal   PaperFormat = "Legal"
	PaperLetter  PaperFormat = "Letter"
	PaperTabloid PaperFormat = "Tabloid"
)

// paperSizes maps each preset to its width/height pair.
var paperSizes = map[PaperFormat][2]Dimension{
	PaperA0:      {Centimeters(33.1), Centimeters(46.8)},
	PaperA1:      {Centimeters(23.4), Centimeters(33.1)},
	PaperA2:      {Centimeters(16.54), Centimeters(23.4)},
	PaperA3:      {Centimeters(11.7), Centimeters(16.54)},
	PaperA4:      {Inches(8.27), Inches(11.7)},
	PaperA5:      {Inches(5.83), Inches(8.27)},
	PaperA6:      {Inches(4.13), Inches(5.83)},
	PaperLedger:  {Inches(17), Inches(11)},
	PaperLegal:   {Inches(8.5), Inches(14)},
	PaperLetter:  {Inches(8.5), Inches(11)},
	PaperTabloid: {Inches(11), Inches(17)},
}

// Width returns the preset's paper width.
func (f PaperFormat) Width() Dimension { return paperSizes[f][0] }

// Height returns the preset's paper height.
func (f PaperFormat) Height() Dimension { return paperSizes[f][1] }

// ParsePaperFormat parses a preset name such as "A4" or "Letter".
func ParsePaperFormat(s string) (PaperFormat, error) {
	for f := range paperSizes {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown paper format %q", ErrInvalidOptionValue, s)
}
