package pagador

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beevik/etree"

	"github.com/paymentsbr/pagador/pkg/fetch"
	"github.com/paymentsbr/pagador/pkg/redact"
	"github.com/paymentsbr/pagador/pkg/template"
	"github.com/paymentsbr/pagador/pkg/util"
	"github.com/paymentsbr/pagador/pkg/wire"
)

const contentType = "text/xml; charset=UTF-8"

// Gateway endpoints. The Pagador transaction and query services share a
// host; the protected-card service lives on its own.
const (
	productionHost      = "https://www.pagador.com.br"
	homologationHost    = "https://homologacao.pagador.com.br"
	productionCardURL   = "https://www.cartaoprotegido.com.br/Services/CartaoProtegido.asmx"
	homologationCardURL = "https://homologacao.braspag.com.br/Services/CartaoProtegido.asmx"

	transactionPath = "/webservice/pagadorTransaction.asmx"
	queryPath       = "/services/pagadorQuery.asmx"
)

// Client talks to the gateway on behalf of a single merchant. All of
// its state is read-only after construction, so one Client may be
// shared across goroutines; each call's document and result are local
// to that call.
type Client struct {
	transactionURL string
	queryURL       string
	cardURL        string
	timeout        time.Duration
	fetcher        fetch.Fetcher
	renderer       *template.Renderer
	templateSource template.Source
	log            *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHomologation points the client at the gateway's test environment.
func WithHomologation() Option {
	return func(c *Client) {
		c.transactionURL = homologationHost + transactionPath
		c.queryURL = homologationHost + queryPath
		c.cardURL = homologationCardURL
	}
}

// WithEndpoints overrides the three service URLs, for test doubles or
// proxies.
func WithEndpoints(transaction, query, card string) Option {
	return func(c *Client) {
		c.transactionURL = transaction
		c.queryURL = query
		c.cardURL = card
	}
}

// WithTimeout sets the default fetcher's per-request timeout. It has no
// effect when a custom fetcher is supplied.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithFetcher replaces the HTTP transport.
func WithFetcher(f fetch.Fetcher) Option {
	return func(c *Client) {
		c.fetcher = f
	}
}

// WithLogger sets the logger receiving the two redacted debug lines
// emitted per call. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithTemplateSource overrides the compiled-in request templates.
func WithTemplateSource(s template.Source) Option {
	return func(c *Client) {
		c.templateSource = s
	}
}

// New creates a Client for the given merchant, pointed at production.
func New(merchantID string, opts ...Option) *Client {
	c := &Client{
		transactionURL: productionHost + transactionPath,
		queryURL:       productionHost + queryPath,
		cardURL:        productionCardURL,
		timeout:        30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		c.fetcher = fetch.NewHTTPFetcher(c.timeout)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	rOpts := []template.Option{}
	if c.templateSource != nil {
		rOpts = append(rOpts, template.WithSource(c.templateSource))
	}
	c.renderer = template.NewRenderer(merchantID, rOpts...)
	return c
}

// Authorize submits one or more charges for an order. Line items are
// validated and normalized before any network call.
func (c *Client) Authorize(ctx context.Context, req *AuthorizationRequest) (*AuthorizationResponse, error) {
	switch {
	case req.OrderID == "":
		return nil, &ValidationError{Field: "order_id", Reason: "must not be empty"}
	case req.CustomerID == "":
		return nil, &ValidationError{Field: "customer_id", Reason: "must not be empty"}
	case req.CustomerName == "":
		return nil, &ValidationError{Field: "customer_name", Reason: "must not be empty"}
	case req.CustomerEmail == "":
		return nil, &ValidationError{Field: "customer_email", Reason: "must not be empty"}
	case len(req.Transactions) == 0:
		return nil, &ValidationError{Field: "transactions", Reason: "at least one line item is required"}
	}

	items := make([]renderTransaction, 0, len(req.Transactions))
	for _, tx := range req.Transactions {
		normalized, err := tx.normalize()
		if err != nil {
			return nil, err
		}
		items = append(items, normalized.forRender())
	}

	raw, err := c.roundTrip(ctx, "authorize", c.transactionURL, "authorize.xml", map[string]any{
		"RequestId":     req.RequestID,
		"OrderId":       req.OrderID,
		"CustomerId":    req.CustomerID,
		"CustomerName":  req.CustomerName,
		"CustomerEmail": req.CustomerEmail,
		"Transactions":  items,
	})
	if err != nil {
		return nil, err
	}
	return parseAuthorization(raw)
}

// Capture settles a previously authorized transaction.
func (c *Client) Capture(ctx context.Context, req *TransactionRequest) (*CaptureResponse, error) {
	raw, err := c.baseTransaction(ctx, "Capture", req)
	if err != nil {
		return nil, err
	}
	return parseCapture(raw)
}

// Void returns funds for a transaction made less than 24 hours ago.
// Amount zero voids the entire transaction.
func (c *Client) Void(ctx context.Context, req *TransactionRequest) (*VoidResponse, error) {
	raw, err := c.baseTransaction(ctx, "Void", req)
	if err != nil {
		return nil, err
	}
	return parseVoid(raw)
}

// Refund returns funds for a transaction made at least 24 hours ago.
// Amount zero refunds the entire transaction.
func (c *Client) Refund(ctx context.Context, req *TransactionRequest) (*RefundResponse, error) {
	raw, err := c.baseTransaction(ctx, "Refund", req)
	if err != nil {
		return nil, err
	}
	return parseRefund(raw)
}

func (c *Client) baseTransaction(ctx context.Context, kind string, req *TransactionRequest) ([]byte, error) {
	if !wire.IsValidGUID(req.TransactionID) {
		return nil, &ValidationError{Field: "transaction_id", Reason: "not a well-formed identifier"}
	}
	if req.Amount < 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	return c.roundTrip(ctx, kind, c.transactionURL, "base.xml", map[string]any{
		"Type":          kind,
		"RequestId":     req.RequestID,
		"TransactionId": req.TransactionID,
		"Amount":        wire.FormatAmount(req.Amount),
	})
}

// IssueBillet issues a boleto for an order.
func (c *Client) IssueBillet(ctx context.Context, req *BilletRequest) (*BilletResponse, error) {
	switch {
	case req.OrderID == "":
		return nil, &ValidationError{Field: "order_id", Reason: "must not be empty"}
	case req.CustomerID == "":
		return nil, &ValidationError{Field: "customer_id", Reason: "must not be empty"}
	case req.Amount < 0:
		return nil, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	currency := req.Currency
	if currency == "" {
		currency = "BRL"
	}
	country := req.Country
	if country == "" {
		country = "BRA"
	}

	raw, err := c.roundTrip(ctx, "issue_billet", c.transactionURL, "authorize_billet.xml", map[string]any{
		"RequestId":      req.RequestID,
		"OrderId":        req.OrderID,
		"CustomerId":     req.CustomerID,
		"CustomerName":   req.CustomerName,
		"CustomerEmail":  req.CustomerEmail,
		"Amount":         wire.FormatAmount(req.Amount),
		"Currency":       currency,
		"Country":        country,
		"PaymentMethod":  req.PaymentMethod,
		"SoftDescriptor": normalizeSoftDescriptor(req.SoftDescriptor),
	})
	if err != nil {
		return nil, err
	}
	return parseBillet(raw)
}

// GetBilletData fetches the boleto issued for a transaction.
func (c *Client) GetBilletData(ctx context.Context, transactionID string) (*BilletDataResponse, error) {
	raw, err := c.queryByTransaction(ctx, "get_billet_data", "get_billet_data.xml", transactionID)
	if err != nil {
		return nil, err
	}
	return parseBilletData(raw)
}

// GetOrderIDByTransactionID resolves the gateway order id that owns a
// transaction.
func (c *Client) GetOrderIDByTransactionID(ctx context.Context, transactionID string) (*OrderIDResponse, error) {
	raw, err := c.queryByTransaction(ctx, "get_order_id_by_transaction_id", "get_braspag_order_id.xml", transactionID)
	if err != nil {
		return nil, err
	}
	return parseOrderID(raw)
}

// GetOrderData lists the transactions of a gateway order.
func (c *Client) GetOrderData(ctx context.Context, orderID string) (*OrderDataResponse, error) {
	if orderID == "" {
		return nil, &ValidationError{Field: "order_id", Reason: "must not be empty"}
	}
	raw, err := c.roundTrip(ctx, "get_order_data", c.queryURL, "get_braspag_order_data.xml", map[string]any{
		"OrderId": orderID,
	})
	if err != nil {
		return nil, err
	}
	return parseOrderData(raw)
}

// GetBraspagOrderIDByOrder resolves the gateway order ids recorded for
// a merchant order id.
func (c *Client) GetBraspagOrderIDByOrder(ctx context.Context, orderID string) (*OrderIDGroupResponse, error) {
	if orderID == "" {
		return nil, &ValidationError{Field: "order_id", Reason: "must not be empty"}
	}
	raw, err := c.roundTrip(ctx, "get_braspag_order_id_by_order", c.queryURL, "get_order_id_data.xml", map[string]any{
		"OrderId": orderID,
	})
	if err != nil {
		return nil, err
	}
	return parseOrderIDGroup(raw)
}

// GetCustomerData fetches the customer recorded on a gateway order.
func (c *Client) GetCustomerData(ctx context.Context, orderID string) (*CustomerDataResponse, error) {
	if !wire.IsValidGUID(orderID) {
		return nil, &ValidationError{Field: "order_id", Reason: "not a well-formed identifier"}
	}
	raw, err := c.roundTrip(ctx, "get_customer_data", c.queryURL, "get_customer_data.xml", map[string]any{
		"OrderId": orderID,
	})
	if err != nil {
		return nil, err
	}
	return parseCustomerData(raw)
}

// GetTransactionData fetches the full record of one transaction.
func (c *Client) GetTransactionData(ctx context.Context, transactionID string) (*TransactionDataResponse, error) {
	raw, err := c.queryByTransaction(ctx, "get_transaction_data", "get_transaction_data.xml", transactionID)
	if err != nil {
		return nil, err
	}
	return parseTransactionData(raw)
}

func (c *Client) queryByTransaction(ctx context.Context, op, tmpl, transactionID string) ([]byte, error) {
	if !wire.IsValidGUID(transactionID) {
		return nil, &ValidationError{Field: "transaction_id", Reason: "not a well-formed identifier"}
	}
	return c.roundTrip(ctx, op, c.queryURL, tmpl, map[string]any{
		"TransactionId": transactionID,
	})
}

// AddCard stores a card with the protected-card service and returns its
// token.
func (c *Client) AddCard(ctx context.Context, req *AddCardRequest) (*AddCardResponse, error) {
	switch {
	case req.CustomerIdentification == "":
		return nil, &ValidationError{Field: "customer_identification", Reason: "must not be empty"}
	case req.CustomerName == "":
		return nil, &ValidationError{Field: "customer_name", Reason: "must not be empty"}
	case req.CardHolder == "":
		return nil, &ValidationError{Field: "card_holder", Reason: "must not be empty"}
	case req.CardNumber == "":
		return nil, &ValidationError{Field: "card_number", Reason: "must not be empty"}
	case req.CardExpiration == "":
		return nil, &ValidationError{Field: "card_expiration", Reason: "must not be empty"}
	}

	raw, err := c.roundTrip(ctx, "add_card", c.cardURL, "add_card.xml", map[string]any{
		"RequestId":              req.RequestID,
		"CustomerIdentification": req.CustomerIdentification,
		"CustomerName":           req.CustomerName,
		"CardHolder":             req.CardHolder,
		"CardNumber":             req.CardNumber,
		"CardExpiration":         req.CardExpiration,
	})
	if err != nil {
		return nil, err
	}
	return parseAddCard(raw)
}

// InvalidateCard revokes a stored card token.
func (c *Client) InvalidateCard(ctx context.Context, justClickKey string) (*InvalidateCardResponse, error) {
	if justClickKey == "" {
		return nil, &ValidationError{Field: "just_click_key", Reason: "must not be empty"}
	}
	raw, err := c.roundTrip(ctx, "invalidate_card", c.cardURL, "invalidate_card.xml", map[string]any{
		"JustClickKey": justClickKey,
	})
	if err != nil {
		return nil, err
	}
	return parseInvalidateCard(raw)
}

// GetCard fetches the card behind a stored token.
func (c *Client) GetCard(ctx context.Context, justClickKey string) (*GetCardResponse, error) {
	if justClickKey == "" {
		return nil, &ValidationError{Field: "just_click_key", Reason: "must not be empty"}
	}
	raw, err := c.roundTrip(ctx, "get_card", c.cardURL, "get_card.xml", map[string]any{
		"JustClickKey": justClickKey,
	})
	if err != nil {
		return nil, err
	}
	return parseGetCard(raw)
}

// roundTrip renders the document, posts it, and returns the raw body.
// One redacted debug line is emitted for the request and one for the
// response; raw card data never reaches the logger.
func (c *Client) roundTrip(ctx context.Context, op, url, tmpl string, data map[string]any) ([]byte, error) {
	doc, err := c.renderer.Render(tmpl, data)
	if err != nil {
		return nil, err
	}
	c.log.DebugContext(ctx, "gateway request", "operation", op, "url", url, "body", logBody(doc))

	resp, err := c.fetcher.Fetch(ctx, url, []byte(doc), map[string]string{
		"Content-Type": contentType,
	})
	if err != nil {
		return nil, newTransportError(err)
	}
	c.log.DebugContext(ctx, "gateway response", "operation", op, "status", resp.StatusCode, "body", logBody(string(resp.Body)))

	// SOAP faults arrive as 500s with a parseable body; only a bodyless
	// non-2xx is a transport-level failure.
	if len(resp.Body) == 0 && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return nil, &TransportError{Err: fmt.Errorf("status %d with empty body", resp.StatusCode)}
	}
	return resp.Body, nil
}

// logBody pretty-prints XML for the debug log, falling back to the raw
// text when the body does not parse, and masks card data either way.
// Oversized bodies are truncated after masking.
func logBody(body string) string {
	out := body
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err == nil {
		doc.Indent(2)
		if pretty, err := doc.WriteToString(); err == nil {
			out = pretty
		}
	}
	return util.TruncateBody(redact.XML(out), 0)
}
