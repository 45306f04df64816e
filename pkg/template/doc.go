// Package template renders the gateway's SOAP request documents.
//
// Each operation has one fixed XML template. The renderer injects the
// configured merchant identifier, generates a request id when the caller
// did not supply one, and strips inter-tag whitespace so the rendered
// document is a single line. Rendering is purely data to text; the
// package performs no network I/O.
package template
