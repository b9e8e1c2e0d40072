package payeer

import (
	"encoding/base64"

	"github.com/shopspring/decimal"
)

// Field is a single named form parameter. Order matters to the processor, so
// the request carries a slice rather than a map.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PaymentRequest holds everything a client needs to send the backer to the
// processor: the merchant endpoint and the ordered hidden form fields,
// m_sign included.
type PaymentRequest struct {
	Endpoint  string  `json:"endpoint"`
	Fields    []Field `json:"fields"`
	Signature string  `json:"signature"`
}

// BuildPaymentRequest assembles and signs the outbound form parameters.
// The amount is rendered with exactly two decimal digits and the description
// is base64-encoded per the protocol.
func BuildPaymentRequest(merchantID, merchantURL, secret, orderID string, amount decimal.Decimal, currency, description string) PaymentRequest {
	signed := []string{
		merchantID,
		orderID,
		amount.StringFixed(2),
		currency,
		base64.StdEncoding.EncodeToString([]byte(description)),
	}
	sign := Sign(signed, secret)

	return PaymentRequest{
		Endpoint: merchantURL,
		Fields: []Field{
			{Name: FieldShop, Value: signed[0]},
			{Name: FieldOrderID, Value: signed[1]},
			{Name: FieldAmount, Value: signed[2]},
			{Name: FieldCurrency, Value: signed[3]},
			{Name: FieldDescription, Value: signed[4]},
			{Name: FieldSign, Value: sign},
		},
		Signature: sign,
	}
}
