// Package redact masks card data in raw XML text before it reaches any
// log sink. No unmasked card number or security code may ever be logged.
package redact

import (
	"regexp"
	"strings"
)

// Tag names may carry a namespace prefix when the fragment is embedded
// in a larger document.
var (
	cardNumberRe   = regexp.MustCompile(`(<(?:[A-Za-z0-9_]+:)?CardNumber>)([^<]*)(</(?:[A-Za-z0-9_]+:)?CardNumber>)`)
	securityCodeRe = regexp.MustCompile(`(<(?:[A-Za-z0-9_]+:)?CardSecurityCode>)([^<]*)(</(?:[A-Za-z0-9_]+:)?CardSecurityCode>)`)
)

// XML masks every CardNumber and CardSecurityCode element in the given
// text. Card numbers keep the first six and last four digits with six
// asterisks in between; security codes become asterisks of the same
// length. Text without matching elements is returned unchanged.
func XML(s string) string {
	s = cardNumberRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := cardNumberRe.FindStringSubmatch(m)
		return parts[1] + maskNumber(parts[2]) + parts[3]
	})
	s = securityCodeRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := securityCodeRe.FindStringSubmatch(m)
		return parts[1] + strings.Repeat("*", len(parts[2])) + parts[3]
	})
	return s
}

// maskNumber keeps the BIN and the last four digits. Values too short
// to expose either are masked entirely.
func maskNumber(n string) string {
	if len(n) < 10 {
		return strings.Repeat("*", len(n))
	}
	return n[:6] + "******" + n[len(n)-4:]
}
