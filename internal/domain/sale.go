package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodPix    = "pix"
	PaymentMethodCredit = "credit"
)

// Sale aggregates items, a payment method and, for credit sales, the
// ordered installment sequence. The server guarantees the installment
// amounts sum to the sale total; the client displays without
// re-enforcing that.
type Sale struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	Installments  []Installment   `json:"installments,omitempty"`
}

// IsCredit reports whether the sale carries an installment plan.
func (s Sale) IsCredit() bool {
	return s.PaymentMethod == PaymentMethodCredit
}
