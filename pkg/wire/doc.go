// Package wire converts between the gateway's wire-format strings and
// native Go values. Every amount, boolean, integer and date that crosses
// the wire goes through these functions; call sites never do their own
// string conversion.
package wire
