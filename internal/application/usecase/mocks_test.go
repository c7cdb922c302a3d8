package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/model"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/port"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/valueobject"
	"github.com/UPAO-INSO/caso-agile-sub000/pkg/events"
)

func mustMedium(t *testing.T, raw string) valueobject.PaymentMedium {
	t.Helper()
	medium, err := valueobject.NewPaymentMedium(raw)
	require.NoError(t, err)
	return medium
}

// --- Mock implementations ---

type mockLoanRepository struct {
	saveFunc                func(ctx context.Context, loan model.Loan) error
	findByIDFunc            func(ctx context.Context, loanID string) (model.Loan, error)
	listActiveIDsFunc       func(ctx context.Context) ([]string, error)
	listOverdueFunc         func(ctx context.Context, asOf time.Time) ([]model.Installment, error)
	saveWithPaymentFunc     func(ctx context.Context, loan model.Loan, payment model.Payment) error
	saveWithReversalFunc    func(ctx context.Context, loan model.Loan, payment model.Payment) error
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan)
	}
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, loanID string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, loanID)
	}
	return model.Loan{}, port.ErrLoanNotFound
}

func (m *mockLoanRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	if m.listActiveIDsFunc != nil {
		return m.listActiveIDsFunc(ctx)
	}
	return nil, nil
}

func (m *mockLoanRepository) ListOverdueInstallments(ctx context.Context, asOf time.Time) ([]model.Installment, error) {
	if m.listOverdueFunc != nil {
		return m.listOverdueFunc(ctx, asOf)
	}
	return nil, nil
}

func (m *mockLoanRepository) SaveWithPayment(ctx context.Context, loan model.Loan, payment model.Payment) error {
	if m.saveWithPaymentFunc != nil {
		return m.saveWithPaymentFunc(ctx, loan, payment)
	}
	return nil
}

func (m *mockLoanRepository) SaveWithPaymentReversal(ctx context.Context, loan model.Loan, payment model.Payment) error {
	if m.saveWithReversalFunc != nil {
		return m.saveWithReversalFunc(ctx, loan, payment)
	}
	return nil
}

type mockPaymentRepository struct {
	findByIDFunc          func(ctx context.Context, paymentID string) (model.Payment, error)
	listByInstallmentFunc func(ctx context.Context, installmentID string) ([]model.Payment, error)
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, paymentID string) (model.Payment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, paymentID)
	}
	return model.Payment{}, port.ErrPaymentNotFound
}

func (m *mockPaymentRepository) ListByInstallment(ctx context.Context, installmentID string) ([]model.Payment, error) {
	if m.listByInstallmentFunc != nil {
		return m.listByInstallmentFunc(ctx, installmentID)
	}
	return nil, nil
}

type mockEventPublisher struct {
	published []events.DomainEvent
	err       error
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, evts...)
	return nil
}

type mockWatchlistLookup struct {
	listed bool
	err    error
}

func (m *mockWatchlistLookup) IsListed(_ context.Context, _ string, _ time.Time) (bool, error) {
	return m.listed, m.err
}
