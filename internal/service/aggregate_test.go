package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fabianodasilvalira/tatystore-billing/internal/client"
	"github.com/fabianodasilvalira/tatystore-billing/internal/domain"
)

func installment(id string, status domain.Status, remaining string, due time.Time) domain.Installment {
	return domain.Installment{
		ID:              id,
		CustomerID:      "cust-1",
		Amount:          dec("100.00"),
		DueDate:         due,
		Status:          status,
		RemainingAmount: decPtr(remaining),
	}
}

func TestOpenInstallments(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("filters settled and canceled", func(t *testing.T) {
		input := []domain.Installment{
			installment("a", domain.StatusPaid, "0.00", due),
			installment("b", domain.StatusPending, "50.00", due),
			installment("c", domain.StatusCanceled, "100.00", due),
			installment("d", domain.StatusOverdue, "30.00", due.AddDate(0, 0, -10)),
			installment("e", domain.StatusUnknown, "10.00", due),
		}

		open := OpenInstallments(input)

		require.Len(t, open, 2)
		assert.Equal(t, "d", open[0].ID)
		assert.Equal(t, "b", open[1].ID)
	})

	t.Run("orders by due date then id", func(t *testing.T) {
		input := []domain.Installment{
			installment("z", domain.StatusPending, "10.00", due),
			installment("a", domain.StatusPending, "10.00", due),
			installment("m", domain.StatusPending, "10.00", due.AddDate(0, 0, -1)),
		}

		open := OpenInstallments(input)

		require.Len(t, open, 3)
		assert.Equal(t, []string{"m", "a", "z"}, []string{open[0].ID, open[1].ID, open[2].ID})
	})

	t.Run("deterministic under identical due dates", func(t *testing.T) {
		input := []domain.Installment{
			installment("b", domain.StatusPending, "10.00", due),
			installment("a", domain.StatusPending, "10.00", due),
		}

		first := OpenInstallments(input)
		second := OpenInstallments([]domain.Installment{input[1], input[0]})

		assert.Equal(t, first[0].ID, second[0].ID)
		assert.Equal(t, "a", first[0].ID)
	})
}

func TestDebtRollups(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	input := []domain.Installment{
		installment("a", domain.StatusOverdue, "40.00", due.AddDate(0, 0, -30)),
		installment("b", domain.StatusPending, "60.00", due),
		installment("c", domain.StatusPaid, "0.00", due),
	}

	assert.True(t, OverdueTotal(input).Equal(dec("40.00")))
	assert.True(t, TotalDebt(input).Equal(dec("100.00")))

	next, ok := NextDueDate(input)
	require.True(t, ok)
	assert.True(t, next.Equal(due.AddDate(0, 0, -30)))
}

func TestTotalDebt_FallsBackToAmount(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	// Server omitted remaining_amount: the original amount counts.
	noRemaining := domain.Installment{
		ID:      "a",
		Amount:  dec("75.00"),
		DueDate: due,
		Status:  domain.StatusPending,
	}

	assert.True(t, TotalDebt([]domain.Installment{noRemaining}).Equal(dec("75.00")))
}

func TestNextDueDate_Empty(t *testing.T) {
	_, ok := NextDueDate(nil)
	assert.False(t, ok)

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, ok = NextDueDate([]domain.Installment{
		installment("a", domain.StatusPaid, "0.00", due),
	})
	assert.False(t, ok)
}

func TestCustomerRollup(t *testing.T) {
	ctx := context.Background()
	cred := client.Credential{Token: "tok"}
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mockGateway := &MockGateway{}
	mockGateway.On("GetCustomer", mock.Anything, cred, "cust-1").Return(&domain.Customer{
		ID:        "cust-1",
		Name:      "Maria",
		Phone:     "+55 86 99999-0000",
		TotalDebt: dec("100.00"),
	}, nil)
	mockGateway.On("ListCustomerInstallments", mock.Anything, cred, "cust-1").Return([]domain.Installment{
		installment("a", domain.StatusOverdue, "40.00", due.AddDate(0, 0, -30)),
		installment("b", domain.StatusPending, "60.00", due),
		installment("c", domain.StatusPaid, "0.00", due),
	}, nil)

	agg := NewAggregateService(mockGateway, zerolog.Nop())
	summary, err := agg.CustomerRollup(ctx, cred, "cust-1")

	require.NoError(t, err)
	assert.True(t, summary.TotalDebt.Equal(dec("100.00")))
	assert.True(t, summary.OverdueTotal.Equal(dec("40.00")))
	assert.Len(t, summary.Open, 2)
	require.True(t, summary.HasNextDue)
	assert.True(t, summary.NextDue.Equal(due.AddDate(0, 0, -30)))
	mockGateway.AssertExpectations(t)
}

func TestSaleRollup(t *testing.T) {
	ctx := context.Background()
	cred := client.Credential{Token: "tok"}
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mockGateway := &MockGateway{}
	mockGateway.On("GetSale", mock.Anything, cred, "sale-1").Return(&domain.Sale{
		ID:            "sale-1",
		CustomerID:    "cust-1",
		Total:         dec("200.00"),
		PaymentMethod: domain.PaymentMethodCredit,
		Installments: []domain.Installment{
			installment("a", domain.StatusPaid, "0.00", due.AddDate(0, 0, -30)),
			installment("b", domain.StatusPending, "100.00", due),
		},
	}, nil)

	agg := NewAggregateService(mockGateway, zerolog.Nop())
	summary, err := agg.SaleRollup(ctx, cred, "sale-1")

	require.NoError(t, err)
	assert.True(t, summary.Remaining.Equal(dec("100.00")))
	assert.Equal(t, 1, summary.OpenCount)
	require.True(t, summary.HasNextDue)
	assert.True(t, summary.NextDue.Equal(due))
}
