package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an immutable record of money applied to one installment.
// The ledger is append-only: payments are never mutated or deleted.
type Payment struct {
	ID            string          `json:"id"`
	InstallmentID string          `json:"installment_id"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaidAt        time.Time       `json:"paid_at"`
}

// CreatePaymentRequest is the body of POST /payments.
type CreatePaymentRequest struct {
	InstallmentID string          `json:"installment_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
}

// MarkOverdueResult carries the informational row count returned by
// the server's mark-overdue batch.
type MarkOverdueResult struct {
	Updated int `json:"updated"`
}
