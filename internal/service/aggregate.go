package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fabianodasilvalira/tatystore-billing/internal/client"
	"github.com/fabianodasilvalira/tatystore-billing/internal/domain"
)

// OpenInstallments filters the collectible installments and orders
// them by due date ascending, tie-broken by id ascending so the output
// is deterministic.
func OpenInstallments(installments []domain.Installment) []domain.Installment {
	open := make([]domain.Installment, 0, len(installments))
	for _, inst := range installments {
		if inst.IsOpen() {
			open = append(open, inst)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		if open[i].DueDate.Equal(open[j].DueDate) {
			return open[i].ID < open[j].ID
		}
		return open[i].DueDate.Before(open[j].DueDate)
	})
	return open
}

// TotalDebt sums the effective remaining amount over open
// installments. Paid and canceled installments contribute zero.
func TotalDebt(installments []domain.Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		if inst.IsOpen() {
			total = total.Add(inst.EffectiveRemaining())
		}
	}
	return total
}

// NextDueDate returns the earliest due date among open installments.
// ok is false when there is none.
func NextDueDate(installments []domain.Installment) (next time.Time, ok bool) {
	for _, inst := range installments {
		if !inst.IsOpen() {
			continue
		}
		if !ok || inst.DueDate.Before(next) {
			next = inst.DueDate
			ok = true
		}
	}
	return next, ok
}

// OverdueTotal sums effective remaining amounts over installments the
// server flagged overdue. Pending installments past their due date do
// not count; that transition belongs to the server.
func OverdueTotal(installments []domain.Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		if inst.IsOverdue() {
			total = total.Add(inst.EffectiveRemaining())
		}
	}
	return total
}

// CustomerSummary is the customer-level rollup consumed by the CLI and
// the collection notice.
type CustomerSummary struct {
	Customer     domain.Customer      `json:"customer"`
	Open         []domain.Installment `json:"open_installments"`
	TotalDebt    decimal.Decimal      `json:"total_debt"`
	OverdueTotal decimal.Decimal      `json:"overdue_total"`
	NextDue      time.Time            `json:"next_due,omitempty"`
	HasNextDue   bool                 `json:"has_next_due"`
}

// SaleSummary is the sale-level rollup of an installment plan.
type SaleSummary struct {
	Sale       domain.Sale     `json:"sale"`
	Remaining  decimal.Decimal `json:"remaining"`
	OpenCount  int             `json:"open_count"`
	NextDue    time.Time       `json:"next_due,omitempty"`
	HasNextDue bool            `json:"has_next_due"`
}

// AggregateService folds installment lists fetched from the gateway
// into summary figures.
type AggregateService struct {
	gateway client.Gateway
	log     zerolog.Logger
}

func NewAggregateService(gateway client.Gateway, log zerolog.Logger) *AggregateService {
	return &AggregateService{
		gateway: gateway,
		log:     log.With().Str("component", "aggregate").Logger(),
	}
}

// CustomerRollup builds the customer summary. The server's total_debt
// is trusted for display, but the client-side derivation is compared
// against it and drift is logged.
func (s *AggregateService) CustomerRollup(ctx context.Context, cred client.Credential, customerID string) (*CustomerSummary, error) {
	customer, err := s.gateway.GetCustomer(ctx, cred, customerID)
	if err != nil {
		return nil, err
	}

	installments, err := s.gateway.ListCustomerInstallments(ctx, cred, customerID)
	if err != nil {
		return nil, err
	}

	summary := &CustomerSummary{
		Customer:     *customer,
		Open:         OpenInstallments(installments),
		TotalDebt:    TotalDebt(installments),
		OverdueTotal: OverdueTotal(installments),
	}
	summary.NextDue, summary.HasNextDue = NextDueDate(installments)

	if customer.TotalDebt.Sub(summary.TotalDebt).Abs().GreaterThan(consistencyEpsilon) {
		s.log.Warn().
			Str("customer_id", customerID).
			Str("server_total_debt", customer.TotalDebt.StringFixed(2)).
			Str("derived_total_debt", summary.TotalDebt.StringFixed(2)).
			Msg("customer debt rollup disagrees with server")
	}

	return summary, nil
}

// SaleRollup builds the sale summary from the sale's installment plan.
func (s *AggregateService) SaleRollup(ctx context.Context, cred client.Credential, saleID string) (*SaleSummary, error) {
	sale, err := s.gateway.GetSale(ctx, cred, saleID)
	if err != nil {
		return nil, err
	}

	summary := &SaleSummary{
		Sale:      *sale,
		Remaining: TotalDebt(sale.Installments),
		OpenCount: len(OpenInstallments(sale.Installments)),
	}
	summary.NextDue, summary.HasNextDue = NextDueDate(sale.Installments)

	return summary, nil
}
