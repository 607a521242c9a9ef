// Package units renders byte counts for humans.
package units

import "fmt"

// Style selects the unit family used by automatic unit selection
type Style int

const (
	// Decimal uses B, KB, MB ... PB (powers of 1000)
	Decimal Style = iota
	// Metric uses the bare prefixes K, M ... P
	Metric
	// Binary uses B, KiB, MiB ... PiB (powers of 1024)
	Binary
)

const defaultDecimals = 2

var factors = map[string]float64{
	"":    1,
	"K":   1e3,
	"M":   1e6,
	"G":   1e9,
	"T":   1e12,
	"P":   1e15,
	"B":   1,
	"KB":  1e3,
	"MB":  1e6,
	"GB":  1e9,
	"TB":  1e12,
	"PB":  1e15,
	"KiB": 1 << 10,
	"MiB": 1 << 20,
	"GiB": 1 << 30,
	"TiB": 1 << 40,
	"PiB": 1 << 50,
}

// largest first
var families = map[Style][]string{
	Decimal: {"PB", "TB", "GB", "MB", "KB", "B"},
	Metric:  {"P", "T", "G", "M", "K", ""},
	Binary:  {"PiB", "TiB", "GiB", "MiB", "KiB", "B"},
}

// UnitError is returned for a unit name that is not known
type UnitError struct {
	Unit string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.Unit)
}

// FormatBytes renders value in the largest decimal unit it exceeds, with two
// decimals: 256052966400 is "256.05GB". Values that exceed no unit are shown
// as whole bytes.
func FormatBytes(value int64) string {
	return Format(value, Decimal)
}

// Format is FormatBytes for any unit family
func Format(value int64, style Style) string {
	family, ok := families[style]
	if !ok {
		family = families[Decimal]
	}

	unit := family[len(family)-1]
	for _, candidate := range family {
		if float64(value)/factors[candidate] > 1 {
			unit = candidate
			break
		}
	}
	return render(value, unit, defaultDecimals)
}

// FormatBytesAs renders value in an explicit unit. decimals outside 0..9
// fall back to two; bytes are always whole.
func FormatBytesAs(value int64, unit string, decimals int) (string, error) {
	if _, ok := factors[unit]; !ok {
		return "", &UnitError{Unit: unit}
	}
	if decimals < 0 || decimals > 9 {
		decimals = defaultDecimals
	}
	return render(value, unit, decimals), nil
}

func render(value int64, unit string, decimals int) string {
	if unit == "B" || unit == "" {
		decimals = 0
	}
	return fmt.Sprintf("%.*f%s", decimals, float64(value)/factors[unit], unit)
}

// Formatter renders byte counts in an automatically chosen unit of one
// family, or always in one fixed unit. The zero value is FormatBytes.
type Formatter struct {
	style Style
	unit  string
	fixed bool
}

// ParseFormatter accepts a family name (decimal, binary, metric) or a unit
// such as GB or MiB. An empty name selects the decimal family.
func ParseFormatter(name string) (Formatter, error) {
	switch name {
	case "", "decimal":
		return Formatter{style: Decimal}, nil
	case "binary":
		return Formatter{style: Binary}, nil
	case "metric":
		return Formatter{style: Metric}, nil
	}
	if _, ok := factors[name]; !ok {
		return Formatter{}, &UnitError{Unit: name}
	}
	return Formatter{unit: name, fixed: true}, nil
}

// Format renders value
func (f Formatter) Format(value int64) string {
	if f.fixed {
		// the unit was checked by ParseFormatter
		s, _ := FormatBytesAs(value, f.unit, defaultDecimals)
		return s
	}
	return Format(value, f.style)
}
