package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fabianodasilvalira/tatystore-billing/internal/client"
	"github.com/fabianodasilvalira/tatystore-billing/internal/domain"
)

// consistencyEpsilon tolerates display rounding when comparing the
// server-reported remaining amount against the local derivation.
var consistencyEpsilon = decimal.NewFromFloat(0.01)

// LedgerService owns the read model for a single installment's payment
// ledger. It is strictly read-only; all mutation goes through the
// payment flow.
type LedgerService struct {
	gateway client.Gateway
	log     zerolog.Logger
}

func NewLedgerService(gateway client.Gateway, log zerolog.Logger) *LedgerService {
	return &LedgerService{
		gateway: gateway,
		log:     log.With().Str("component", "ledger").Logger(),
	}
}

// Load fetches the authoritative ledger for an installment. On any
// failure no partial detail is returned. Payments are ordered by
// paid_at ascending for display; the sort is stable so the server's
// ordering survives ties.
func (s *LedgerService) Load(ctx context.Context, cred client.Credential, installmentID string) (*domain.InstallmentDetail, error) {
	detail, err := s.gateway.GetInstallmentDetail(ctx, cred, installmentID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(detail.Payments, func(i, j int) bool {
		return detail.Payments[i].PaidAt.Before(detail.Payments[j].PaidAt)
	})

	s.checkConsistency(detail)
	return detail, nil
}

// ComputeRemaining derives the remaining balance from the ledger:
// max(0, amount - sum of payments). The server stays authoritative;
// this exists as a consistency check, not a source of truth.
func ComputeRemaining(detail *domain.InstallmentDetail) decimal.Decimal {
	total := decimal.Zero
	for _, p := range detail.Payments {
		total = total.Add(p.AmountPaid)
	}
	remaining := detail.Amount.Sub(total)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// checkConsistency compares the server's remaining_amount against the
// local derivation and logs when they drift beyond tolerance.
func (s *LedgerService) checkConsistency(detail *domain.InstallmentDetail) {
	if detail.RemainingAmount == nil {
		return
	}
	derived := ComputeRemaining(detail)
	if detail.RemainingAmount.Sub(derived).Abs().GreaterThan(consistencyEpsilon) {
		s.log.Warn().
			Str("installment_id", detail.ID).
			Str("server_remaining", detail.RemainingAmount.StringFixed(2)).
			Str("derived_remaining", derived.StringFixed(2)).
			Msg("ledger inconsistency between server and derived remaining amount")
	}
}
