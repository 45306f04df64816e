package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXMLMasksCardNumber(t *testing.T) {
	in := "<CardNumber>1234567890123456</CardNumber>"
	assert.Equal(t, "<CardNumber>123456******3456</CardNumber>", XML(in))
}

func TestXMLMasksSecurityCode(t *testing.T) {
	in := "<CardSecurityCode>123</CardSecurityCode>"
	assert.Equal(t, "<CardSecurityCode>***</CardSecurityCode>", XML(in))

	in = "<CardSecurityCode>1234</CardSecurityCode>"
	assert.Equal(t, "<CardSecurityCode>****</CardSecurityCode>", XML(in))
}

func TestXMLEmbeddedInLargerDocument(t *testing.T) {
	in := `<soap:Envelope><soap:Body><web:PaymentDataRequest>` +
		`<web:CardHolder>Jose da Silva</web:CardHolder>` +
		`<web:CardNumber>0000000000000001</web:CardNumber>` +
		`<web:CardSecurityCode>123</web:CardSecurityCode>` +
		`</web:PaymentDataRequest></soap:Body></soap:Envelope>`

	out := XML(in)
	assert.Contains(t, out, "<web:CardNumber>000000******0001</web:CardNumber>")
	assert.Contains(t, out, "<web:CardSecurityCode>***</web:CardSecurityCode>")
	assert.Contains(t, out, "Jose da Silva")
	assert.NotContains(t, out, "0000000000000001")
}

func TestXMLNoMatchingTagsUnchanged(t *testing.T) {
	in := "<Order><Amount>1000</Amount></Order>"
	assert.Equal(t, in, XML(in))
	assert.Equal(t, "", XML(""))
}

func TestXMLIdempotent(t *testing.T) {
	in := "<CardNumber>1234567890123456</CardNumber><CardSecurityCode>123</CardSecurityCode>"
	once := XML(in)
	assert.Equal(t, once, XML(once))
}
