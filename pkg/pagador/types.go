package pagador

import (
	"strconv"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/paymentsbr/pagador/pkg/wire"
)

// TransactionType selects how the gateway captures a charge.
type TransactionType int

// Transaction types (Pagador manual, table 13.1).
const (
	PreAuthorization TransactionType = iota + 1
	AutomaticCapture
	PreAuthorizationWithAuthentication
	AutomaticCaptureWithAuthentication
	RecurrentPreAuthorization
	RecurrentAutomaticCapture
)

// PaymentPlan selects who carries the installments.
type PaymentPlan int

// Payment plans.
const (
	NoInstallments PaymentPlan = iota
	InstallmentsByEstablishment
	InstallmentsByIssuer
)

// softDescriptorMax is the gateway limit for statement text.
const softDescriptorMax = 13

// Transaction is one charge line within an authorization request. Card
// identity is either full card data or a previously issued card token;
// the token wins when both are set, but card-field validation still
// runs whenever a card number is present.
type Transaction struct {
	// Amount in integer minor currency units.
	Amount int64

	// PaymentMethod is a code from the payment-method registry.
	PaymentMethod int

	Currency string // default BRL
	Country  string // default BRA

	// NumberOfPayments defaults to 1. PaymentPlan, when zero-valued,
	// is derived from it: more than one payment means installments by
	// the issuing bank.
	NumberOfPayments int
	PaymentPlan      PaymentPlan

	Type TransactionType // default AutomaticCapture

	CardHolder       string
	CardNumber       string
	CardSecurityCode string
	CardExpiration   string
	CardToken        string

	// SaveCard asks the gateway to store the card and return a token.
	SaveCard bool

	// SoftDescriptor is shown on the cardholder statement; it is
	// truncated to 13 characters and transliterated to ASCII.
	SoftDescriptor string
}

// normalize validates the line item and fills defaults, returning a
// copy ready for rendering. The receiver is not modified.
func (t Transaction) normalize() (Transaction, error) {
	if t.Amount < 0 {
		return t, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	if t.CardNumber == "" && t.CardToken == "" {
		return t, &ValidationError{Field: "card", Reason: "card number or card token is required"}
	}
	if t.CardNumber != "" {
		if t.CardHolder == "" || t.CardSecurityCode == "" || t.CardExpiration == "" {
			return t, &ValidationError{
				Field:  "card",
				Reason: "card transactions require holder, number, security code and expiration",
			}
		}
	}

	if t.NumberOfPayments == 0 {
		t.NumberOfPayments = 1
	}
	if t.NumberOfPayments < 1 {
		return t, &ValidationError{Field: "number_of_payments", Reason: "must be a positive integer"}
	}

	if t.PaymentPlan == NoInstallments && t.NumberOfPayments > 1 {
		t.PaymentPlan = InstallmentsByIssuer
	}
	if t.Currency == "" {
		t.Currency = "BRL"
	}
	if t.Country == "" {
		t.Country = "BRA"
	}
	if t.Type == 0 {
		t.Type = AutomaticCapture
	}

	t.SoftDescriptor = normalizeSoftDescriptor(t.SoftDescriptor)
	return t, nil
}

// normalizeSoftDescriptor truncates to the gateway limit and strips
// diacritics down to plain ASCII, mirroring what the gateway itself
// does to statement text.
func normalizeSoftDescriptor(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) > softDescriptorMax {
		r = r[:softDescriptorMax]
	}

	strip := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(strip, string(r))
	if err != nil {
		out = string(r)
	}

	ascii := make([]rune, 0, len(out))
	for _, c := range out {
		if c < 128 {
			ascii = append(ascii, c)
		}
	}
	return string(ascii)
}

// AuthorizationRequest authorizes one or more charges for an order.
type AuthorizationRequest struct {
	// OrderID identifies the order in later gateway calls.
	OrderID string

	// CustomerID is the customer's CPF/CNPJ.
	CustomerID    string
	CustomerName  string
	CustomerEmail string

	// RequestID is the client-supplied correlation key, echoed back as
	// CorrelationId. Generated when empty.
	RequestID string

	Transactions []Transaction
}

// TransactionRequest keys a capture, void or refund to an authorized
// transaction. Amount zero means the entire transaction.
type TransactionRequest struct {
	TransactionID string
	Amount        int64
	RequestID     string
}

// BilletRequest issues a boleto for an order.
type BilletRequest struct {
	OrderID        string
	CustomerID     string
	CustomerName   string
	CustomerEmail  string
	Amount         int64
	Currency       string // default BRL
	Country        string // default BRA
	PaymentMethod  int
	SoftDescriptor string
	RequestID      string
}

// AddCardRequest stores a card with the protected-card service.
type AddCardRequest struct {
	CustomerIdentification string
	CustomerName           string
	CardHolder             string
	CardNumber             string
	CardExpiration         string
	RequestID              string
}

// renderTransaction is the template-facing shape of a normalized line
// item; all values are already wire-formatted.
type renderTransaction struct {
	Amount           string
	Currency         string
	Country          string
	NumberOfPayments int
	PaymentPlan      int
	TransactionType  int
	PaymentMethod    int
	CardHolder       string
	CardNumber       string
	CardSecurityCode string
	CardExpiration   string
	CardToken        string
	SaveCard         string
	SoftDescriptor   string
}

func (t Transaction) forRender() renderTransaction {
	return renderTransaction{
		Amount:           wire.FormatAmount(t.Amount),
		Currency:         t.Currency,
		Country:          t.Country,
		NumberOfPayments: t.NumberOfPayments,
		PaymentPlan:      int(t.PaymentPlan),
		TransactionType:  int(t.Type),
		PaymentMethod:    t.PaymentMethod,
		CardHolder:       t.CardHolder,
		CardNumber:       t.CardNumber,
		CardSecurityCode: t.CardSecurityCode,
		CardExpiration:   t.CardExpiration,
		CardToken:        t.CardToken,
		SaveCard:         strconv.FormatBool(t.SaveCard),
		SoftDescriptor:   t.SoftDescriptor,
	}
}
