package pagador

import "time"

// ErrorReport is one gateway-reported error. A populated error list
// together with Success=false is a normal business outcome (declined
// card, unknown order), not a client fault.
type ErrorReport struct {
	Code    string
	Message string
}

// Response carries the fields common to every gateway reply.
type Response struct {
	Success       bool
	CorrelationID string
	Errors        []ErrorReport
}

// TransactionResult is one per-transaction record inside a response.
// Several fields are only populated when the gateway sent the matching
// element for that particular transaction; their zero value means
// absent, which is normal.
type TransactionResult struct {
	TransactionID         string // gateway-assigned (BraspagTransactionId)
	AcquirerTransactionID string
	AuthorizationCode     string
	Amount                int64
	Status                int
	StatusMessage         string
	ProofOfSale           string

	MaskedCardNumber  string
	ReturnCode        string
	ReturnMessage     string
	PaymentMethod     int
	PaymentMethodName string
	CardToken         string
	TransactionType   int
	ReceivedDate      time.Time
	CapturedDate      time.Time
	VoidedDate        time.Time
	OrderID           string
}

// AuthorizationResponse is the result of Authorize. Transactions appear
// in the order the line items were submitted.
type AuthorizationResponse struct {
	Response
	BraspagOrderID string
	OrderID        string
	Transactions   []TransactionResult
}

// CaptureResponse is the result of Capture.
type CaptureResponse struct {
	Response
	Transactions []TransactionResult
}

// VoidResponse is the result of Void.
type VoidResponse struct {
	Response
	Transactions []TransactionResult
}

// RefundResponse is the result of Refund.
type RefundResponse struct {
	Response
	Transactions []TransactionResult
}

// OrderDataResponse is the result of GetOrderData.
type OrderDataResponse struct {
	Response
	Transactions []TransactionResult
}

// OrderRecord pairs a gateway order id with one of its transactions.
type OrderRecord struct {
	BraspagOrderID string
	TransactionID  string
}

// OrderIDGroupResponse is the result of GetBraspagOrderIDByOrder.
type OrderIDGroupResponse struct {
	Response
	Orders []OrderRecord
}

// OrderIDResponse is the result of GetOrderIDByTransactionID.
type OrderIDResponse struct {
	Response
	BraspagOrderID string
	TransactionID  string
	Amount         int64
}

// CustomerDataResponse is the result of GetCustomerData.
type CustomerDataResponse struct {
	Response
	TransactionID    string
	Amount           int64
	CustomerIdentity string
	CustomerName     string
	CustomerEmail    string
	Street           string
	Number           string
	Complement       string
	District         string
	ZipCode          string
	City             string
	State            string
	Country          string
}

// TransactionDataResponse is the result of GetTransactionData.
type TransactionDataResponse struct {
	Response
	TransactionID         string
	Amount                int64
	OrderID               string
	AcquirerTransactionID string
	PaymentMethod         int
	PaymentMethodName     string
	ErrorCode             string
	ErrorMessage          string
	AuthorizationCode     string
	NumberOfPayments      int
	Currency              string
	Country               string
	TransactionType       string
	Status                int
	ReceivedDate          time.Time
	CapturedDate          time.Time
	VoidedDate            time.Time
	CardToken             string
}

// BilletResponse is the result of IssueBillet.
type BilletResponse struct {
	Response
	TransactionID  string
	Amount         int64
	BilletURL      string
	BilletNumber   string
	DocumentNumber int64
	ExpirationDate string
}

// BilletDataResponse is the result of GetBilletData.
type BilletDataResponse struct {
	Response
	TransactionID  string
	Amount         int64
	BilletURL      string
	BilletNumber   string
	DocumentNumber int64
	ExpirationDate string
}

// AddCardResponse is the result of AddCard. JustClickKey identifies the
// stored card in later charges and protected-card calls.
type AddCardResponse struct {
	Response
	JustClickKey string
}

// InvalidateCardResponse is the result of InvalidateCard.
type InvalidateCardResponse struct {
	Response
}

// GetCardResponse is the result of GetCard.
type GetCardResponse struct {
	Response
	CardHolder       string
	CardNumber       string
	MaskedCardNumber string
	CardExpiration   string
}

// Status-label tables. Each response family owns its own table; the
// same numeric code means different things across families, so they are
// never shared. An unmapped code is a ParseError, never a default.
var (
	authorizeStatus = map[int]string{
		0: "Captured",
		1: "Authorized",
		2: "Not Authorized",
		3: "Disqualifying Error",
		4: "Waiting for Answer",
	}
	voidStatus = map[int]string{
		0: "Void Confirmed",
		1: "Void Denied",
		2: "Invalid Transaction",
	}
	refundStatus = map[int]string{
		0: "Refund Confirmed",
		1: "Refund Denied",
		2: "Invalid Transaction",
	}
	orderDataStatus = map[int]string{
		0: "Unknown",
		1: "Captured",
		2: "Authorized",
		3: "Not Authorized",
		4: "Voided",
		5: "Refunded",
		6: "Waiting",
		7: "Unqualified",
	}
)
