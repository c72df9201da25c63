package models

// Payment methods accepted by the back office.
const (
	PaymentBankTransfer = "bank_transfer"
	PaymentCash         = "cash"
	PaymentCard         = "card"
	PaymentOther        = "other"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentBankTransfer, PaymentCash, PaymentCard, PaymentOther:
		return true
	default:
		return false
	}
}

// Payment is one recorded installment against a pre-booking. Rows are only
// ever added or deleted, never mutated.
type Payment struct {
	ID              int64   `json:"id"`
	BookingID       int64   `json:"booking_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	PaymentMethod   string  `json:"payment_method"`
	PaymentDate     string  `json:"payment_date"`
	ReferenceNumber string  `json:"reference_number,omitempty"`
	RecordedBy      int64   `json:"recorded_by,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

// Payment aggregation statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)
