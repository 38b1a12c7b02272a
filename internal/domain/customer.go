package domain

import "github.com/shopspring/decimal"

// Customer owns zero or more sales and, transitively, installments.
// TotalDebt is computed server-side and trusted for display; the
// aggregate views re-derive it client-side for verification only.
type Customer struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	TotalDebt decimal.Decimal `json:"total_debt"`
}
