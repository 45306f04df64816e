// Package pagador is a client for the Braspag Pagador SOAP payment
// gateway. It turns typed operations (authorize, capture, void, refund,
// billet issuance, queries, protected-card flows) into single-line XML
// request documents, posts them to the gateway, and parses the SOAP
// responses into typed results with normalized amounts, status labels
// and error lists.
//
// The client holds no state beyond read-only configuration; every call
// is independent and a single client may be shared freely across
// goroutines. It performs no retries: a gateway-declined payment comes
// back as data (Success=false plus error records), while transport
// timeouts, other transport failures, validation failures and contract
// mismatches are distinct error kinds the caller can test with
// errors.Is and errors.As.
package pagador
