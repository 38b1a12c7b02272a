package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment represents one scheduled obligation within a credit
// sale. The server owns its lifecycle; installments are never deleted,
// a canceled sale marks them canceled instead.
type Installment struct {
	ID              string           `json:"id"`
	SaleID          string           `json:"sale_id"`
	CustomerID      string           `json:"customer_id"`
	Number          int              `json:"installment_number"`
	Amount          decimal.Decimal  `json:"amount"`
	DueDate         time.Time        `json:"due_date"`
	Status          Status           `json:"status"`
	RemainingAmount *decimal.Decimal `json:"remaining_amount,omitempty"`
}

// EffectiveRemaining returns the collectible balance: the server's
// remaining_amount when present, the original amount otherwise.
// Settled installments contribute zero regardless.
func (i Installment) EffectiveRemaining() decimal.Decimal {
	if i.Status.IsSettled() {
		return decimal.Zero
	}
	if i.RemainingAmount != nil {
		return *i.RemainingAmount
	}
	return i.Amount
}

// IsOpen reports whether the installment still carries collectible
// balance.
func (i Installment) IsOpen() bool {
	return i.Status.IsOpen()
}

// IsOverdue trusts the server flag as-is. The client never flips
// pending to overdue from local clock data; that transition is a
// server-owned batch operation.
func (i Installment) IsOverdue() bool {
	return i.Status == StatusOverdue
}

// DueEmphasis reports whether a pending installment is past its due
// date as of the given instant. This is a cosmetic display hint only
// and never feeds aggregates or stored status.
func (i Installment) DueEmphasis(asOf time.Time) bool {
	return i.Status == StatusPending && i.DueDate.Before(asOf)
}

// InstallmentDetail is the read model combining one installment with
// its ordered payment ledger, as served by GET /installments/{id}/detail.
type InstallmentDetail struct {
	Installment
	TotalPaid decimal.Decimal `json:"total_paid"`
	Payments  []Payment       `json:"payments"`
}
