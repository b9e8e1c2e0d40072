// Package payeer implements the Payeer merchant protocol: the signature
// scheme, the outbound payment form parameters and the inbound notification
// field set. Field names and their order are fixed by the processor and must
// not change.
package payeer

const (
	ServiceProvider = "Payeer"
	ServiceAlias    = "payeer"

	// StatusSuccess is the literal success marker the processor sends in
	// m_status. Anything else normalizes to a failed transaction.
	StatusSuccess = "success"
)

// Inbound notification field names.
const (
	FieldOperationID      = "m_operation_id"
	FieldOperationPS      = "m_operation_ps"
	FieldOperationDate    = "m_operation_date"
	FieldOperationPayDate = "m_operation_pay_date"
	FieldShop             = "m_shop"
	FieldOrderID          = "m_orderid"
	FieldAmount           = "m_amount"
	FieldCurrency         = "m_curr"
	FieldDescription      = "m_desc"
	FieldStatus           = "m_status"
	FieldSign             = "m_sign"
)

// ExtraDataKeys lists every raw field retained on the transaction record for
// audit. The passthrough keys at the end are stored but never validated.
var ExtraDataKeys = []string{
	FieldDescription, FieldOrderID, FieldAmount, FieldCurrency, FieldStatus,
	FieldShop, FieldSign, FieldOperationID, FieldOperationPS,
	FieldOperationDate, FieldOperationPayDate,
	"summa_out", "transfer_id", "payment_date",
}

// inboundSignFields is the signed field order for notifications. The secret
// is appended last before hashing.
var inboundSignFields = []string{
	FieldOperationID,
	FieldOperationPS,
	FieldOperationDate,
	FieldOperationPayDate,
	FieldShop,
	FieldOrderID,
	FieldAmount,
	FieldCurrency,
	FieldDescription,
	FieldStatus,
}
