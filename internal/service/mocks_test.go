package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fabianodasilvalira/tatystore-billing/internal/client"
	"github.com/fabianodasilvalira/tatystore-billing/internal/domain"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetInstallmentDetail(ctx context.Context, cred client.Credential, installmentID string) (*domain.InstallmentDetail, error) {
	args := m.Called(ctx, cred, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentDetail), args.Error(1)
}

func (m *MockGateway) CreatePayment(ctx context.Context, cred client.Credential, req domain.CreatePaymentRequest) error {
	args := m.Called(ctx, cred, req)
	return args.Error(0)
}

func (m *MockGateway) ListCustomerInstallments(ctx context.Context, cred client.Credential, customerID string) ([]domain.Installment, error) {
	args := m.Called(ctx, cred, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockGateway) GetCustomer(ctx context.Context, cred client.Credential, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, cred, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockGateway) GetSale(ctx context.Context, cred client.Credential, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, cred, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockGateway) MarkOverdue(ctx context.Context, cred client.Credential) (*domain.MarkOverdueResult, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarkOverdueResult), args.Error(1)
}
