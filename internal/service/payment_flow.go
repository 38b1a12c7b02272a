package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fabianodasilvalira/tatystore-billing/internal/client"
	"github.com/fabianodasilvalira/tatystore-billing/internal/domain"
	customError "github.com/fabianodasilvalira/tatystore-billing/pkg/errors"
	"github.com/fabianodasilvalira/tatystore-billing/pkg/format"
)

// FlowState tracks one installment's submission lifecycle within a
// session.
type FlowState string

const (
	FlowIdle       FlowState = "idle"
	FlowValidating FlowState = "validating"
	FlowSubmitting FlowState = "submitting"
	FlowSettled    FlowState = "settled"
	FlowRejected   FlowState = "rejected"
	FlowFailed     FlowState = "failed"
)

// OverpaymentEpsilon tolerates display-rounded user input: a payment
// may exceed the remaining balance by at most one cent.
var OverpaymentEpsilon = decimal.NewFromFloat(0.01)

// PaymentFlow validates and submits payments against one installment.
// Submissions are serialized per flow: while one is in flight a second
// submit intent is refused without touching the network. Different
// installments may run their flows concurrently.
type PaymentFlow struct {
	gateway  client.Gateway
	ledger   *LedgerService
	validate *validator.Validate

	// onFullyPaid fires after a reload shows the installment settled,
	// so a listener can close the payment dialog.
	onFullyPaid func(*domain.InstallmentDetail)

	mu     sync.Mutex
	busy   bool
	state  FlowState
	detail *domain.InstallmentDetail
}

func NewPaymentFlow(gateway client.Gateway, ledger *LedgerService, detail *domain.InstallmentDetail) *PaymentFlow {
	return &PaymentFlow{
		gateway:  gateway,
		ledger:   ledger,
		validate: validator.New(),
		state:    FlowIdle,
		detail:   detail,
	}
}

// OnFullyPaid registers the closure listener. At most one listener is
// supported, matching the single dialog a flow serves.
func (f *PaymentFlow) OnFullyPaid(fn func(*domain.InstallmentDetail)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onFullyPaid = fn
}

// State reports the flow's current state.
func (f *PaymentFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Detail returns the most recently loaded ledger.
func (f *PaymentFlow) Detail() *domain.InstallmentDetail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detail
}

// Submit runs one submission attempt with a user-entered amount
// (comma or dot decimal separator). Local validation failures and
// remote failures both return the flow to idle so the user can correct
// input or retry; the ledger is never mutated locally.
func (f *PaymentFlow) Submit(ctx context.Context, cred client.Credential, rawAmount string) (*domain.InstallmentDetail, error) {
	f.mu.Lock()
	if f.busy {
		id := f.detail.ID
		f.mu.Unlock()
		return nil, customError.WrapSubmissionInFlight(id)
	}
	f.busy = true
	f.state = FlowValidating
	detail := f.detail
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.busy = false
		if f.state != FlowSettled {
			f.state = FlowIdle
		}
		f.mu.Unlock()
	}()

	amount, err := f.validateAmount(detail, rawAmount)
	if err != nil {
		f.setState(FlowRejected)
		return nil, err
	}

	f.setState(FlowSubmitting)

	req := domain.CreatePaymentRequest{
		InstallmentID: detail.ID,
		Amount:        amount,
	}
	if err := f.validate.Struct(req); err != nil {
		f.setState(FlowRejected)
		return nil, customError.NewBusinessError(customError.ErrCodeValidation, "invalid payment request", err)
	}

	if err := f.gateway.CreatePayment(ctx, cred, req); err != nil {
		f.setState(FlowFailed)
		return nil, err
	}

	// The server is the only writer of truth: re-fetch instead of
	// trusting an echoed body.
	fresh, err := f.ledger.Load(ctx, cred, detail.ID)
	if err != nil {
		f.setState(FlowFailed)
		return nil, err
	}

	f.mu.Lock()
	f.detail = fresh
	f.state = FlowSettled
	fullyPaid := ComputeRemaining(fresh).LessThanOrEqual(OverpaymentEpsilon)
	listener := f.onFullyPaid
	f.mu.Unlock()

	if fullyPaid && listener != nil {
		listener(fresh)
	}

	return fresh, nil
}

// validateAmount applies the local pre-submission rules. A failure
// here guarantees no network call was made.
func (f *PaymentFlow) validateAmount(detail *domain.InstallmentDetail, rawAmount string) (decimal.Decimal, error) {
	amount, err := format.ParseAmount(rawAmount)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, customError.WrapInvalidAmount(rawAmount)
	}

	if detail.Status.IsSettled() {
		return decimal.Zero, customError.WrapAlreadySettled(detail.ID, detail.Status.String())
	}

	remaining := detail.EffectiveRemaining()
	if amount.GreaterThan(remaining.Add(OverpaymentEpsilon)) {
		return decimal.Zero, customError.WrapExceedsRemaining(amount.StringFixed(2), remaining.StringFixed(2))
	}

	return amount, nil
}

func (f *PaymentFlow) setState(state FlowState) {
	f.mu.Lock()
	f.state = state
	f.mu.Unlock()
}
