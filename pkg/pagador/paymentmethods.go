package pagador

// paymentMethods maps acquirer and brand to the gateway's payment
// method code. The client treats the code as opaque; this table only
// exists so callers can fill Transaction.PaymentMethod without hunting
// through the gateway manual.
var paymentMethods = map[string]map[string]int{
	"Cielo": {
		"Visa Electron": 123,
		"Visa":          500,
		"MasterCard":    501,
		"Amex":          502,
		"Diners":        503,
		"Elo":           504,
	},
	"Banorte": {
		"Visa":       505,
		"MasterCard": 506,
		"Diners":     507,
		"Amex":       508,
	},
	"Redecard": {
		"Visa":       509,
		"MasterCard": 510,
		"Diners":     511,
	},
	"PagosOnLine": {
		"Visa":       512,
		"MasterCard": 513,
		"Amex":       514,
		"Diners":     515,
	},
	"Payvision": {
		"Visa":       516,
		"MasterCard": 517,
		"Diners":     518,
		"Amex":       519,
	},
	"Banorte Cargos Automaticos": {
		"Visa":       520,
		"MasterCard": 521,
		"Diners":     522,
	},
	"Amex": {
		"2P": 523,
	},
	"SITEF": {
		"Visa":                 524,
		"MasterCard":           525,
		"Amex":                 526,
		"Diners":               527,
		"HiperCard":            528,
		"Leader":               529,
		"Aura":                 530,
		"Santander Visa":       531,
		"Santander MasterCard": 532,
	},
	"Simulated": {
		"USD": 995,
		"EUR": 996,
		"BRL": 997,
	},
}

// PaymentMethod looks up the code for an acquirer/brand pair.
func PaymentMethod(acquirer, brand string) (int, bool) {
	brands, ok := paymentMethods[acquirer]
	if !ok {
		return 0, false
	}
	code, ok := brands[brand]
	return code, ok
}
