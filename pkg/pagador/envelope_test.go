package pagador

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authorizedFixture = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <soap:Body>
    <AuthorizeTransactionResponse xmlns="https://www.pagador.com.br/webservice/pagador/">
      <AuthorizeTransactionResult>
        <Success>true</Success>
        <CorrelationId>782a56e2-2dae-11e2-b3ee-080027d29772</CorrelationId>
        <OrderData>
          <OrderId>2cf84e51-c45b-45d9-9f64-554a6e088668</OrderId>
          <BraspagOrderId>8cda7088-ca11-4b02-b958-34cea7255977</BraspagOrderId>
        </OrderData>
        <PaymentDataCollection>
          <PaymentDataResponse>
            <BraspagTransactionId>512cf68e-97e3-47e2-abd6-a24f71d11be5</BraspagTransactionId>
            <AcquirerTransactionId>0728043853882</AcquirerTransactionId>
            <Amount>100000</Amount>
            <AuthorizationCode>123456</AuthorizationCode>
            <Status>1</Status>
            <ReturnCode>4</ReturnCode>
            <ReturnMessage>Operation Successful</ReturnMessage>
            <PaymentMethod>997</PaymentMethod>
            <MaskedCreditCardNumber>000000******0001</MaskedCreditCardNumber>
            <CreditCardToken>9d914cb2-9a3a-4a18-b25c-1a1b13d24d1a</CreditCardToken>
          </PaymentDataResponse>
          <PaymentDataResponse>
            <BraspagTransactionId>a4b089e6-1316-4b33-b9b1-aa7095639a71</BraspagTransactionId>
            <AcquirerTransactionId>0728043853883</AcquirerTransactionId>
            <Amount>190099</Amount>
            <AuthorizationCode>654321</AuthorizationCode>
            <Status>1</Status>
            <ReturnCode>4</ReturnCode>
            <ReturnMessage>Operation Successful</ReturnMessage>
            <PaymentMethod>997</PaymentMethod>
          </PaymentDataResponse>
        </PaymentDataCollection>
      </AuthorizeTransactionResult>
    </AuthorizeTransactionResponse>
  </soap:Body>
</soap:Envelope>`

const authorizeFailedFixture = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <AuthorizeTransactionResponse xmlns="https://www.pagador.com.br/webservice/pagador/">
      <AuthorizeTransactionResult>
        <Success>false</Success>
        <CorrelationId>782a56e2-2dae-11e2-b3ee-080027d29772</CorrelationId>
        <ErrorReportDataCollection>
          <ErrorReportDataResponse>
            <ErrorCode>322</ErrorCode>
            <ErrorMessage>Invalid merchantId</ErrorMessage>
          </ErrorReportDataResponse>
        </ErrorReportDataCollection>
      </AuthorizeTransactionResult>
    </AuthorizeTransactionResponse>
  </soap:Body>
</soap:Envelope>`

func TestParseAuthorizationSuccess(t *testing.T) {
	resp, err := parseAuthorization([]byte(authorizedFixture))
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "782a56e2-2dae-11e2-b3ee-080027d29772", resp.CorrelationID)
	assert.Equal(t, "2cf84e51-c45b-45d9-9f64-554a6e088668", resp.OrderID)
	assert.Equal(t, "8cda7088-ca11-4b02-b958-34cea7255977", resp.BraspagOrderID)
	assert.Empty(t, resp.Errors)

	require.Len(t, resp.Transactions, 2)
	first, second := resp.Transactions[0], resp.Transactions[1]

	assert.Equal(t, "512cf68e-97e3-47e2-abd6-a24f71d11be5", first.TransactionID)
	assert.Equal(t, int64(100000), first.Amount)
	assert.Equal(t, 1, first.Status)
	assert.Equal(t, "Authorized", first.StatusMessage)
	assert.Equal(t, "4", first.ReturnCode)
	assert.Equal(t, "Operation Successful", first.ReturnMessage)
	assert.Equal(t, 997, first.PaymentMethod)
	assert.Equal(t, "000000******0001", first.MaskedCardNumber)
	assert.Equal(t, "9d914cb2-9a3a-4a18-b25c-1a1b13d24d1a", first.CardToken)

	// Order is preserved, and absent optional fields stay zero.
	assert.Equal(t, int64(190099), second.Amount)
	assert.Empty(t, second.MaskedCardNumber)
	assert.Empty(t, second.CardToken)
}

func TestParseAuthorizationFailure(t *testing.T) {
	resp, err := parseAuthorization([]byte(authorizeFailedFixture))
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Empty(t, resp.Transactions)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "322", resp.Errors[0].Code)
	assert.Equal(t, "Invalid merchantId", resp.Errors[0].Message)
}

func TestParseAuthorizationSingleTransactionNormalizedToSlice(t *testing.T) {
	fixture := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
	<AuthorizeTransactionResponse><AuthorizeTransactionResult>
	<Success>true</Success>
	<CorrelationId>c</CorrelationId>
	<OrderData><OrderId>o</OrderId><BraspagOrderId>b</BraspagOrderId></OrderData>
	<PaymentDataCollection>
	  <PaymentDataResponse><BraspagTransactionId>t1</BraspagTransactionId><Amount>500</Amount><Status>0</Status></PaymentDataResponse>
	</PaymentDataCollection>
	</AuthorizeTransactionResult></AuthorizeTransactionResponse>
	</soap:Body></soap:Envelope>`

	resp, err := parseAuthorization([]byte(fixture))
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "Captured", resp.Transactions[0].StatusMessage)
}

func TestParseAuthorizationUnknownStatusIsParseError(t *testing.T) {
	fixture := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
	<AuthorizeTransactionResponse><AuthorizeTransactionResult>
	<Success>true</Success>
	<OrderData><OrderId>o</OrderId></OrderData>
	<PaymentDataCollection>
	  <PaymentDataResponse><Amount>500</Amount><Status>9</Status></PaymentDataResponse>
	</PaymentDataCollection>
	</AuthorizeTransactionResult></AuthorizeTransactionResponse>
	</soap:Body></soap:Envelope>`

	_, err := parseAuthorization([]byte(fixture))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Reason, "unknown status code 9")
}

func TestParseAuthorizationWrongEnvelopeIsParseError(t *testing.T) {
	fixture := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
	<SomethingElseEntirely/></soap:Body></soap:Envelope>`

	_, err := parseAuthorization([]byte(fixture))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseAuthorizationMalformedSuccessFlag(t *testing.T) {
	fixture := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
	<AuthorizeTransactionResponse><AuthorizeTransactionResult>
	<Success>maybe</Success>
	</AuthorizeTransactionResult></AuthorizeTransactionResponse>
	</soap:Body></soap:Envelope>`

	_, err := parseAuthorization([]byte(fixture))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

// Void and refund own their status tables; code 0 reads differently in
// each family.
func voidFixture(status string) string {
	return `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
	<VoidCreditCardTransactionResponse><VoidCreditCardTransactionResult>
	<Success>true</Success>
	<CorrelationId>c</CorrelationId>
	<TransactionDataCollection>
	  <TransactionDataResponse><BraspagTransactionId>t1</BraspagTransactionId><Amount>1000</Amount><Status>` + status + `</Status></TransactionDataResponse>
	</TransactionDataCollection>
	</VoidCreditCardTransactionResult></VoidCreditCardTransactionResponse>
	</soap:Body></soap:Envelope>`
}

func TestParseVoidStatusTable(t *testing.T) {
	resp, err := parseVoid([]byte(voidFixture("0")))
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "Void Confirmed", resp.Transactions[0].StatusMessage)

	_, err = parseVoid([]byte(voidFixture("3")))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseRefundStatusTable(t *testing.T) {
	fixture := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
	<RefundCreditCardTransactionResponse><RefundCreditCardTransactionResult>
	<Success>true</Success>
	<TransactionDataCollection>
	  <TransactionDataResponse><Amount>1000</Amount><Status>0</Status></TransactionDataResponse>
	</TransactionDataCollection>
	</RefundCreditCardTransactionResult></RefundCreditCardTransactionResponse>
	</soap:Body></soap:Envelope>`

	resp, err := parseRefund([]byte(fixture))
	require.NoError(t, err)
	assert.Equal(t, "Refund Confirmed", resp.Transactions[0].StatusMessage)
}

func TestParseCaptureSharesAuthorizationTable(t *testing.T) {
	fixture := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
	<CaptureCreditCardTransactionResponse><CaptureCreditCardTransactionResult>
	<Success>true</Success>
	<TransactionDataCollection>
	  <TransactionDataResponse><Amount>10000</Amount><Status>0</Status><ReturnCode>6</ReturnCode></TransactionDataResponse>
	</TransactionDataCollection>
	</CaptureCreditCardTransactionResult></CaptureCreditCardTransactionResponse>
	</soap:Body></soap:Envelope>`

	resp, err := parseCapture([]byte(fixture))
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "Captured", resp.Transactions[0].StatusMessage)
	assert.Equal(t, int64(10000), resp.Transactions[0].Amount)
}

func TestParseOrderDataWithDates(t *testing.T) {
	fixture := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
	<GetOrderDataResponse><GetOrderDataResult>
	<Success>true</Success>
	<CorrelationId>c</CorrelationId>
	<TransactionDataCollection>
	  <OrderTransactionDataResponse>
	    <BraspagTransactionId>t1</BraspagTransactionId>
	    <Amount>100000</Amount>
	    <Status>1</Status>
	    <ReceivedDate>11/16/2015 04:31:19 PM</ReceivedDate>
	    <CapturedDate>11/16/2015 04:35:04 PM</CapturedDate>
	  </OrderTransactionDataResponse>
	</TransactionDataCollection>
	</GetOrderDataResult></GetOrderDataResponse>
	</soap:Body></soap:Envelope>`

	resp, err := parseOrderData([]byte(fixture))
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	tx := resp.Transactions[0]
	assert.Equal(t, "Captured", tx.StatusMessage)
	assert.Equal(t, 16, tx.ReceivedDate.Day())
	assert.Equal(t, 16, tx.ReceivedDate.Hour())
	assert.True(t, tx.VoidedDate.IsZero())
}

func TestParseOrderIDGroup(t *testing.T) {
	fixture := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
	<GetOrderIdDataResponse><GetOrderIdDataResult>
	<Success>true</Success>
	<CorrelationId>c</CorrelationId>
	<OrderIdDataCollection>
	  <OrderIdTransactionResponse>
	    <BraspagOrderId>8cda7088-ca11-4b02-b958-34cea7255977</BraspagOrderId>
	    <BraspagTransactionId><guid>512cf68e-97e3-47e2-abd6-a24f71d11be5</guid></BraspagTransactionId>
	  </OrderIdTransactionResponse>
	  <OrderIdTransactionResponse>
	    <BraspagOrderId>9ada7088-ca11-4b02-b958-34cea7255978</BraspagOrderId>
	    <BraspagTransactionId><guid>612cf68e-97e3-47e2-abd6-a24f71d11be6</guid></BraspagTransactionId>
	  </OrderIdTransactionResponse>
	</OrderIdDataCollection>
	</GetOrderIdDataResult></GetOrderIdDataResponse>
	</soap:Body></soap:Envelope>`

	resp, err := parseOrderIDGroup([]byte(fixture))
	require.NoError(t, err)
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, "8cda7088-ca11-4b02-b958-34cea7255977", resp.Orders[0].BraspagOrderID)
	assert.Equal(t, "512cf68e-97e3-47e2-abd6-a24f71d11be5", resp.Orders[0].TransactionID)
}

func TestParseAddCard(t *testing.T) {
	success := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
	<SaveCreditCardResponse xmlns="http://www.cartaoprotegido.com.br/WebService/"><SaveCreditCardResult>
	<Success>true</Success>
	<CorrelationId>c</CorrelationId>
	<JustClickKey>370a402b-e21b-4d51-b346-a5a22b1e65de</JustClickKey>
	</SaveCreditCardResult></SaveCreditCardResponse>
	</soap:Body></soap:Envelope>`

	resp, err := parseAddCard([]byte(success))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "370a402b-e21b-4d51-b346-a5a22b1e65de", resp.JustClickKey)
}

func TestParseInvalidateCardFailure(t *testing.T) {
	failure := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
	<InvalidateCreditCardResponse><InvalidateCreditCardResult>
	<Success>false</Success>
	<ErrorReportCollection>
	  <ErrorReport><ErrorCode>701</ErrorCode><ErrorMessage>Merchant key can not be null</ErrorMessage></ErrorReport>
	</ErrorReportCollection>
	</InvalidateCreditCardResult></InvalidateCreditCardResponse>
	</soap:Body></soap:Envelope>`

	resp, err := parseInvalidateCard([]byte(failure))
	require.NoError(t, err)
	assert.False(t, resp.Success)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "701", resp.Errors[0].Code)
}

func TestParseGetCard(t *testing.T) {
	fixture := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
	<GetCreditCardResponse><GetCreditCardResult>
	<Success>true</Success>
	<CardHolder>Jose da Silva</CardHolder>
	<CardNumber>0000000000000001</CardNumber>
	<MaskedCardNumber>000000******0001</MaskedCardNumber>
	<CardExpiration>05/2018</CardExpiration>
	</GetCreditCardResult></GetCreditCardResponse>
	</soap:Body></soap:Envelope>`

	resp, err := parseGetCard([]byte(fixture))
	require.NoError(t, err)
	assert.Equal(t, "0000000000000001", resp.CardNumber)
	assert.Equal(t, "05/2018", resp.CardExpiration)
}

func TestParseNotXMLIsParseError(t *testing.T) {
	_, err := parseAuthorization([]byte("definitely not xml <"))
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}
