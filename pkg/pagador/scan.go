package pagador

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/paymentsbr/pagador/pkg/wire"
)

// The tag-scan strategy walks every element of the document exactly
// once and assigns any element whose local tag is registered in the
// response's field table. It is used for the flat query responses
// (order id, customer data, transaction data, billet data), where the
// envelope shape varies but tag names are unambiguous. Error-report
// elements and SOAP fault strings are recognized as error carriers no
// matter which response is being parsed.

// scanFields maps a local tag name to its setter. Tables are built per
// parse call from closures over the output struct but their key sets
// are fixed at compile time.
type scanFields map[string]func(string) error

// scanDocument walks the tree once, applying registered fields and
// collecting error reports.
func scanDocument(op string, raw []byte, fields scanFields) ([]ErrorReport, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, &ParseError{Op: op, Reason: fmt.Sprintf("invalid XML: %v", err)}
	}
	root := doc.Root()
	if root == nil {
		return nil, &ParseError{Op: op, Reason: "empty document"}
	}

	var errs []ErrorReport
	var walk func(el *etree.Element) error
	walk = func(el *etree.Element) error {
		switch el.Tag {
		case "ErrorReportDataResponse":
			errs = appendError(errs, scanErrorReport(el))
			return nil
		case "faultstring":
			errs = appendError(errs, ErrorReport{Code: "0", Message: strings.TrimSpace(el.Text())})
			return nil
		}
		if set, ok := fields[el.Tag]; ok {
			if err := set(strings.TrimSpace(el.Text())); err != nil {
				return &ParseError{Op: op, Reason: fmt.Sprintf("field %s: %v", el.Tag, err)}
			}
		}
		for _, c := range el.ChildElements() {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return errs, nil
}

func scanErrorReport(el *etree.Element) ErrorReport {
	var rep ErrorReport
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "ErrorCode":
			rep.Code = strings.TrimSpace(c.Text())
		case "ErrorMessage":
			rep.Message = strings.TrimSpace(c.Text())
		}
	}
	return rep
}

// appendError deduplicates repeated reports; the gateway repeats the
// same error element in some fault envelopes.
func appendError(errs []ErrorReport, rep ErrorReport) []ErrorReport {
	for _, e := range errs {
		if e == rep {
			return errs
		}
	}
	return append(errs, rep)
}

// commonFields registers the fields present on every flat response.
func commonFields(resp *Response, txID *string, amount *int64) scanFields {
	return scanFields{
		"BraspagTransactionId": func(s string) error { *txID = s; return nil },
		"CorrelationId":        func(s string) error { resp.CorrelationID = s; return nil },
		"Amount": func(s string) error {
			v, err := wire.ToAmount(s)
			if err != nil {
				return err
			}
			*amount = v
			return nil
		},
		"Success": func(s string) error {
			v, err := wire.ToBool(s)
			if err != nil {
				return err
			}
			resp.Success = v
			return nil
		},
	}
}

func merge(base scanFields, extra scanFields) scanFields {
	for tag, set := range extra {
		base[tag] = set
	}
	return base
}

func parseOrderID(raw []byte) (*OrderIDResponse, error) {
	out := &OrderIDResponse{}
	fields := merge(commonFields(&out.Response, &out.TransactionID, &out.Amount), scanFields{
		"BraspagOrderId": func(s string) error { out.BraspagOrderID = s; return nil },
	})
	errs, err := scanDocument("get_order_id_by_transaction_id", raw, fields)
	if err != nil {
		return nil, err
	}
	out.Errors = errs
	return out, nil
}

func parseCustomerData(raw []byte) (*CustomerDataResponse, error) {
	out := &CustomerDataResponse{}
	fields := merge(commonFields(&out.Response, &out.TransactionID, &out.Amount), scanFields{
		"CustomerIdentity": func(s string) error { out.CustomerIdentity = s; return nil },
		"CustomerName":     func(s string) error { out.CustomerName = s; return nil },
		"CustomerEmail":    func(s string) error { out.CustomerEmail = s; return nil },
		"Street":           func(s string) error { out.Street = s; return nil },
		"Number":           func(s string) error { out.Number = s; return nil },
		"Complement":       func(s string) error { out.Complement = s; return nil },
		"District":         func(s string) error { out.District = s; return nil },
		"ZipCode":          func(s string) error { out.ZipCode = s; return nil },
		"City":             func(s string) error { out.City = s; return nil },
		"State":            func(s string) error { out.State = s; return nil },
		"Country":          func(s string) error { out.Country = s; return nil },
	})
	errs, err := scanDocument("get_customer_data", raw, fields)
	if err != nil {
		return nil, err
	}
	out.Errors = errs
	return out, nil
}

func parseTransactionData(raw []byte) (*TransactionDataResponse, error) {
	out := &TransactionDataResponse{}
	fields := merge(commonFields(&out.Response, &out.TransactionID, &out.Amount), scanFields{
		"OrderId":               func(s string) error { out.OrderID = s; return nil },
		"AcquirerTransactionId": func(s string) error { out.AcquirerTransactionID = s; return nil },
		"PaymentMethod": func(s string) error {
			v, err := wire.ToInt(s)
			if err != nil {
				return err
			}
			out.PaymentMethod = int(v)
			return nil
		},
		"PaymentMethodName": func(s string) error { out.PaymentMethodName = s; return nil },
		"ErrorCode":         func(s string) error { out.ErrorCode = s; return nil },
		"ErrorMessage":      func(s string) error { out.ErrorMessage = s; return nil },
		"AuthorizationCode": func(s string) error { out.AuthorizationCode = s; return nil },
		"NumberOfPayments": func(s string) error {
			v, err := wire.ToInt(s)
			if err != nil {
				return err
			}
			out.NumberOfPayments = int(v)
			return nil
		},
		"Currency":        func(s string) error { out.Currency = s; return nil },
		"Country":         func(s string) error { out.Country = s; return nil },
		"TransactionType": func(s string) error { out.TransactionType = s; return nil },
		"Status": func(s string) error {
			v, err := wire.ToInt(s)
			if err != nil {
				return err
			}
			out.Status = int(v)
			return nil
		},
		"ReceivedDate": func(s string) error {
			d, err := wire.ToDate(s)
			if err != nil {
				return err
			}
			out.ReceivedDate = d
			return nil
		},
		"CapturedDate": func(s string) error {
			d, err := wire.ToDate(s)
			if err != nil {
				return err
			}
			out.CapturedDate = d
			return nil
		},
		"VoidedDate": func(s string) error {
			d, err := wire.ToDate(s)
			if err != nil {
				return err
			}
			out.VoidedDate = d
			return nil
		},
		"CreditCardToken": func(s string) error { out.CardToken = s; return nil },
	})
	errs, err := scanDocument("get_transaction_data", raw, fields)
	if err != nil {
		return nil, err
	}
	out.Errors = errs
	return out, nil
}

func billetFields(resp *Response, txID *string, amount *int64, url, number *string, doc *int64, exp *string) scanFields {
	return merge(commonFields(resp, txID, amount), scanFields{
		"BoletoUrl":    func(s string) error { *url = s; return nil },
		"BoletoNumber": func(s string) error { *number = s; return nil },
		"DocumentNumber": func(s string) error {
			v, err := wire.ToInt(s)
			if err != nil {
				return err
			}
			*doc = v
			return nil
		},
		"ExpirationDate": func(s string) error { *exp = s; return nil },
	})
}

func parseBillet(raw []byte) (*BilletResponse, error) {
	out := &BilletResponse{}
	fields := billetFields(&out.Response, &out.TransactionID, &out.Amount,
		&out.BilletURL, &out.BilletNumber, &out.DocumentNumber, &out.ExpirationDate)
	errs, err := scanDocument("issue_billet", raw, fields)
	if err != nil {
		return nil, err
	}
	out.Errors = errs
	return out, nil
}

func parseBilletData(raw []byte) (*BilletDataResponse, error) {
	out := &BilletDataResponse{}
	fields := billetFields(&out.Response, &out.TransactionID, &out.Amount,
		&out.BilletURL, &out.BilletNumber, &out.DocumentNumber, &out.ExpirationDate)
	errs, err := scanDocument("get_billet_data", raw, fields)
	if err != nil {
		return nil, err
	}
	out.Errors = errs
	return out, nil
}
