package pagador

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/paymentsbr/pagador/pkg/wire"
)

// envelopeShape describes the fixed envelope of one response family:
// the path from the SOAP Body to the result element, the transaction
// and error collections inside it, and the family's status table.
type envelopeShape struct {
	op      string
	path    []string  // Body -> ... -> result element
	txColl  [2]string // collection element, item element ("" = none)
	errColl [2]string // error collection element, item element
	status  map[int]string
}

// childByLocal returns the first child whose local (namespace-stripped)
// tag matches name.
func childByLocal(el *etree.Element, name string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.Tag == name {
			return c
		}
	}
	return nil
}

// childrenByLocal returns every child with the given local tag. A
// single object and an array serialize identically here, so callers
// always get a normalized slice.
func childrenByLocal(el *etree.Element, name string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == name {
			out = append(out, c)
		}
	}
	return out
}

// childText returns the trimmed text of a named child and whether the
// child exists at all.
func childText(el *etree.Element, name string) (string, bool) {
	c := childByLocal(el, name)
	if c == nil {
		return "", false
	}
	// etree keeps surrounding whitespace from pretty-printed documents.
	return strings.TrimSpace(c.Text()), true
}

// parseEnvelope descends to the result element and reads the common
// Success/CorrelationId fields plus the error collection. The result
// element is returned so family parsers can pick up their own fields.
func parseEnvelope(shape envelopeShape, raw []byte) (*etree.Element, Response, error) {
	var resp Response

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, resp, &ParseError{Op: shape.op, Reason: fmt.Sprintf("invalid XML: %v", err)}
	}
	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return nil, resp, &ParseError{Op: shape.op, Reason: "missing SOAP envelope"}
	}
	body := childByLocal(root, "Body")
	if body == nil {
		return nil, resp, &ParseError{Op: shape.op, Reason: "missing SOAP body"}
	}

	result := body
	for _, name := range shape.path {
		result = childByLocal(result, name)
		if result == nil {
			return nil, resp, &ParseError{Op: shape.op, Reason: "missing element " + name}
		}
	}

	successText, ok := childText(result, "Success")
	if !ok {
		return nil, resp, &ParseError{Op: shape.op, Reason: "missing Success flag"}
	}
	success, err := wire.ToBool(successText)
	if err != nil {
		return nil, resp, &ParseError{Op: shape.op, Reason: err.Error()}
	}
	resp.Success = success
	resp.CorrelationID, _ = childText(result, "CorrelationId")

	if !success {
		coll := childByLocal(result, shape.errColl[0])
		if coll == nil {
			return nil, resp, &ParseError{Op: shape.op, Reason: "missing element " + shape.errColl[0]}
		}
		for _, item := range childrenByLocal(coll, shape.errColl[1]) {
			code, _ := childText(item, "ErrorCode")
			msg, _ := childText(item, "ErrorMessage")
			resp.Errors = append(resp.Errors, ErrorReport{Code: code, Message: msg})
		}
	}

	return result, resp, nil
}

// parseTransactions reads the family's transaction collection from the
// result element and maps every entry through the field table.
func parseTransactions(shape envelopeShape, result *etree.Element) ([]TransactionResult, error) {
	coll := childByLocal(result, shape.txColl[0])
	if coll == nil {
		return nil, &ParseError{Op: shape.op, Reason: "missing element " + shape.txColl[0]}
	}
	items := childrenByLocal(coll, shape.txColl[1])
	out := make([]TransactionResult, 0, len(items))
	for _, item := range items {
		tx, err := mapTransaction(shape, item)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, nil
}

// txField binds one wire tag to its slot on TransactionResult. The
// tables below are build-time constants; nothing mutates them per
// instance or per call.
type txField struct {
	tag string
	set func(*TransactionResult, string) error
}

var txFields = []txField{
	{"BraspagTransactionId", func(t *TransactionResult, s string) error { t.TransactionID = s; return nil }},
	{"AcquirerTransactionId", func(t *TransactionResult, s string) error { t.AcquirerTransactionID = s; return nil }},
	{"AuthorizationCode", func(t *TransactionResult, s string) error { t.AuthorizationCode = s; return nil }},
	{"ProofOfSale", func(t *TransactionResult, s string) error { t.ProofOfSale = s; return nil }},
	{"Amount", func(t *TransactionResult, s string) error {
		v, err := wire.ToAmount(s)
		if err != nil {
			return err
		}
		t.Amount = v
		return nil
	}},
	{"MaskedCreditCardNumber", func(t *TransactionResult, s string) error { t.MaskedCardNumber = s; return nil }},
	{"ReturnCode", func(t *TransactionResult, s string) error { t.ReturnCode = s; return nil }},
	{"ReturnMessage", func(t *TransactionResult, s string) error { t.ReturnMessage = s; return nil }},
	{"PaymentMethod", func(t *TransactionResult, s string) error {
		v, err := wire.ToInt(s)
		if err != nil {
			return err
		}
		t.PaymentMethod = int(v)
		return nil
	}},
	{"PaymentMethodName", func(t *TransactionResult, s string) error { t.PaymentMethodName = s; return nil }},
	{"CreditCardToken", func(t *TransactionResult, s string) error { t.CardToken = s; return nil }},
	{"TransactionType", func(t *TransactionResult, s string) error {
		v, err := wire.ToInt(s)
		if err != nil {
			return err
		}
		t.TransactionType = int(v)
		return nil
	}},
	{"ReceivedDate", func(t *TransactionResult, s string) error {
		d, err := wire.ToDate(s)
		if err != nil {
			return err
		}
		t.ReceivedDate = d
		return nil
	}},
	{"CapturedDate", func(t *TransactionResult, s string) error {
		d, err := wire.ToDate(s)
		if err != nil {
			return err
		}
		t.CapturedDate = d
		return nil
	}},
	{"VoidedDate", func(t *TransactionResult, s string) error {
		d, err := wire.ToDate(s)
		if err != nil {
			return err
		}
		t.VoidedDate = d
		return nil
	}},
	{"OrderId", func(t *TransactionResult, s string) error { t.OrderID = s; return nil }},
}

// mapTransaction fills one TransactionResult from an item element.
// Fields are conditional: only elements actually present are applied.
// Status is mandatory and must resolve through the family table.
func mapTransaction(shape envelopeShape, item *etree.Element) (TransactionResult, error) {
	var tx TransactionResult

	for _, f := range txFields {
		text, ok := childText(item, f.tag)
		if !ok {
			continue
		}
		if err := f.set(&tx, text); err != nil {
			return tx, &ParseError{Op: shape.op, Reason: fmt.Sprintf("field %s: %v", f.tag, err)}
		}
	}

	statusText, ok := childText(item, "Status")
	if !ok {
		return tx, &ParseError{Op: shape.op, Reason: "transaction record missing Status"}
	}
	status, err := wire.ToInt(statusText)
	if err != nil {
		return tx, &ParseError{Op: shape.op, Reason: err.Error()}
	}
	label, ok := shape.status[int(status)]
	if !ok {
		return tx, &ParseError{Op: shape.op, Reason: fmt.Sprintf("unknown status code %d", status)}
	}
	tx.Status = int(status)
	tx.StatusMessage = label
	return tx, nil
}

// pagadorErrColl is the error collection used by every Pagador-service
// response; the protected-card service uses a different pair.
var (
	pagadorErrColl = [2]string{"ErrorReportDataCollection", "ErrorReportDataResponse"}
	cardErrColl    = [2]string{"ErrorReportCollection", "ErrorReport"}
)

func parseAuthorization(raw []byte) (*AuthorizationResponse, error) {
	shape := envelopeShape{
		op:      "authorize",
		path:    []string{"AuthorizeTransactionResponse", "AuthorizeTransactionResult"},
		txColl:  [2]string{"PaymentDataCollection", "PaymentDataResponse"},
		errColl: pagadorErrColl,
		status:  authorizeStatus,
	}
	result, resp, err := parseEnvelope(shape, raw)
	if err != nil {
		return nil, err
	}
	out := &AuthorizationResponse{Response: resp}
	if !resp.Success {
		return out, nil
	}

	orderData := childByLocal(result, "OrderData")
	if orderData == nil {
		return nil, &ParseError{Op: shape.op, Reason: "missing element OrderData"}
	}
	out.BraspagOrderID, _ = childText(orderData, "BraspagOrderId")
	out.OrderID, _ = childText(orderData, "OrderId")

	out.Transactions, err = parseTransactions(shape, result)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func parseCapture(raw []byte) (*CaptureResponse, error) {
	shape := envelopeShape{
		op:      "capture",
		path:    []string{"CaptureCreditCardTransactionResponse", "CaptureCreditCardTransactionResult"},
		txColl:  [2]string{"TransactionDataCollection", "TransactionDataResponse"},
		errColl: pagadorErrColl,
		status:  authorizeStatus,
	}
	result, resp, err := parseEnvelope(shape, raw)
	if err != nil {
		return nil, err
	}
	out := &CaptureResponse{Response: resp}
	if resp.Success {
		if out.Transactions, err = parseTransactions(shape, result); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseVoid(raw []byte) (*VoidResponse, error) {
	shape := envelopeShape{
		op:      "void",
		path:    []string{"VoidCreditCardTransactionResponse", "VoidCreditCardTransactionResult"},
		txColl:  [2]string{"TransactionDataCollection", "TransactionDataResponse"},
		errColl: pagadorErrColl,
		status:  voidStatus,
	}
	result, resp, err := parseEnvelope(shape, raw)
	if err != nil {
		return nil, err
	}
	out := &VoidResponse{Response: resp}
	if resp.Success {
		if out.Transactions, err = parseTransactions(shape, result); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseRefund(raw []byte) (*RefundResponse, error) {
	shape := envelopeShape{
		op:      "refund",
		path:    []string{"RefundCreditCardTransactionResponse", "RefundCreditCardTransactionResult"},
		txColl:  [2]string{"TransactionDataCollection", "TransactionDataResponse"},
		errColl: pagadorErrColl,
		status:  refundStatus,
	}
	result, resp, err := parseEnvelope(shape, raw)
	if err != nil {
		return nil, err
	}
	out := &RefundResponse{Response: resp}
	if resp.Success {
		if out.Transactions, err = parseTransactions(shape, result); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseOrderData(raw []byte) (*OrderDataResponse, error) {
	shape := envelopeShape{
		op:      "get_order_data",
		path:    []string{"GetOrderDataResponse", "GetOrderDataResult"},
		txColl:  [2]string{"TransactionDataCollection", "OrderTransactionDataResponse"},
		errColl: pagadorErrColl,
		status:  orderDataStatus,
	}
	result, resp, err := parseEnvelope(shape, raw)
	if err != nil {
		return nil, err
	}
	out := &OrderDataResponse{Response: resp}
	if resp.Success {
		if out.Transactions, err = parseTransactions(shape, result); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseOrderIDGroup(raw []byte) (*OrderIDGroupResponse, error) {
	shape := envelopeShape{
		op:      "get_braspag_order_id_by_order",
		path:    []string{"GetOrderIdDataResponse", "GetOrderIdDataResult"},
		errColl: pagadorErrColl,
	}
	result, resp, err := parseEnvelope(shape, raw)
	if err != nil {
		return nil, err
	}
	out := &OrderIDGroupResponse{Response: resp}
	if !resp.Success {
		return out, nil
	}

	coll := childByLocal(result, "OrderIdDataCollection")
	if coll == nil {
		return nil, &ParseError{Op: shape.op, Reason: "missing element OrderIdDataCollection"}
	}
	for _, item := range childrenByLocal(coll, "OrderIdTransactionResponse") {
		rec := OrderRecord{}
		rec.BraspagOrderID, _ = childText(item, "BraspagOrderId")
		// The transaction id nests one level deeper as a guid element.
		if txID := childByLocal(item, "BraspagTransactionId"); txID != nil {
			rec.TransactionID, _ = childText(txID, "guid")
		}
		out.Orders = append(out.Orders, rec)
	}
	return out, nil
}

func parseAddCard(raw []byte) (*AddCardResponse, error) {
	shape := envelopeShape{
		op:      "add_card",
		path:    []string{"SaveCreditCardResponse", "SaveCreditCardResult"},
		errColl: cardErrColl,
	}
	result, resp, err := parseEnvelope(shape, raw)
	if err != nil {
		return nil, err
	}
	out := &AddCardResponse{Response: resp}
	if resp.Success {
		out.JustClickKey, _ = childText(result, "JustClickKey")
	}
	return out, nil
}

func parseInvalidateCard(raw []byte) (*InvalidateCardResponse, error) {
	shape := envelopeShape{
		op:      "invalidate_card",
		path:    []string{"InvalidateCreditCardResponse", "InvalidateCreditCardResult"},
		errColl: cardErrColl,
	}
	_, resp, err := parseEnvelope(shape, raw)
	if err != nil {
		return nil, err
	}
	return &InvalidateCardResponse{Response: resp}, nil
}

func parseGetCard(raw []byte) (*GetCardResponse, error) {
	shape := envelopeShape{
		op:      "get_card",
		path:    []string{"GetCreditCardResponse", "GetCreditCardResult"},
		errColl: cardErrColl,
	}
	result, resp, err := parseEnvelope(shape, raw)
	if err != nil {
		return nil, err
	}
	out := &GetCardResponse{Response: resp}
	if resp.Success {
		out.CardHolder, _ = childText(result, "CardHolder")
		out.CardNumber, _ = childText(result, "CardNumber")
		out.MaskedCardNumber, _ = childText(result, "MaskedCardNumber")
		out.CardExpiration, _ = childText(result, "CardExpiration")
	}
	return out, nil
}
