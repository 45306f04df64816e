package wire

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the gateway's fixed timestamp format, e.g.
// "11/16/2015 04:31:19 PM".
const dateLayout = "01/02/2006 03:04:05 PM"

// ToBool parses the gateway's case-insensitive "true"/"false" literals.
// Any other input is a contract violation and returns an error.
func ToBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("wire: invalid boolean %q", s)
}

// ToInt parses a digit string. The gateway inserts a hyphen into some
// document and boleto numbers ("1432-2"); hyphens are stripped and the
// remaining digits parsed as one integer.
func ToInt(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("wire: invalid integer %q", s)
	}
	return v, nil
}

// ToAmount parses a wire amount into integer minor currency units.
// Amounts are always integers of minor units on the wire; there is no
// decimal point to interpret.
func ToAmount(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("wire: invalid amount %q", s)
	}
	return v, nil
}

// FormatAmount renders integer minor units for the wire.
func FormatAmount(v int64) string {
	return strconv.FormatInt(v, 10)
}

// MinorFromMajor converts whole currency units to minor units. This is
// the single conversion path between major-unit values and the integer
// minor-unit representation used everywhere internally.
func MinorFromMajor(v int64) int64 {
	return v * 100
}

// ToDate parses the gateway's timestamp format. Empty or non-conforming
// input returns an error; the caller decides whether absence is legal.
func ToDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("wire: invalid date %q", s)
	}
	return t, nil
}

// guidGroups is the dash-grouped length pattern of a gateway identifier.
var guidGroups = []int{8, 4, 4, 4, 12}

// IsValidGUID reports whether s is a well-formed gateway identifier:
// hexadecimal characters in exactly the 8-4-4-4-12 grouping. Used as a
// precondition before building any request keyed by an identifier.
func IsValidGUID(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		case r == '-':
		default:
			return false
		}
	}
	parts := strings.Split(s, "-")
	if len(parts) != len(guidGroups) {
		return false
	}
	for i, p := range parts {
		if len(p) != guidGroups[i] {
			return false
		}
	}
	return true
}

var (
	escaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	unescaper = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&amp;", "&",
	)
)

// Escape encodes XML character entities in a text value.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape decodes XML character entities without going through a full
// XML parser. Only the five predefined entities are handled; that is
// all the gateway ever emits.
func Unescape(s string) string {
	return unescaper.Replace(s)
}

// Spaceless strips inter-tag whitespace from a multi-line XML document,
// joining it into a single line. The gateway's legacy SOAP endpoint is
// whitespace-sensitive.
func Spaceless(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, line := range strings.Split(s, "\n") {
		b.WriteString(strings.TrimSpace(line))
	}
	return b.String()
}
