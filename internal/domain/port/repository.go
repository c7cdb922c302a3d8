package port

import (
	"context"
	"errors"
	"time"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/model"
	"github.com/UPAO-INSO/caso-agile-sub000/pkg/events"
)

var (
	// ErrLoanNotFound is returned when a loan does not exist.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrPaymentNotFound is returned when a payment does not exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrVersionConflict is returned when an optimistic-lock check fails on
	// save; the caller should reload and retry.
	ErrVersionConflict = errors.New("loan was modified concurrently")
)

// LoanRepository persists loan aggregates together with their schedules.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, loanID string) (model.Loan, error)
	ListActiveIDs(ctx context.Context) ([]string, error)

	// ListOverdueInstallments returns unsettled installments across active
	// loans whose due date is strictly before asOf, ordered by due date.
	ListOverdueInstallments(ctx context.Context, asOf time.Time) ([]model.Installment, error)

	// SaveWithPayment stores the updated aggregate and the new payment
	// record in one transaction.
	SaveWithPayment(ctx context.Context, loan model.Loan, payment model.Payment) error

	// SaveWithPaymentReversal stores the restored aggregate and flags the
	// payment as reversed in one transaction.
	SaveWithPaymentReversal(ctx context.Context, loan model.Loan, payment model.Payment) error
}

// PaymentRepository reads payment records.
type PaymentRepository interface {
	FindByID(ctx context.Context, paymentID string) (model.Payment, error)
	ListByInstallment(ctx context.Context, installmentID string) ([]model.Payment, error)
}

// EventPublisher pushes domain events to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// WatchlistLookup answers whether a client appears on an external watch list
// at origination time. Implementations are injected, read-only collaborators.
type WatchlistLookup interface {
	IsListed(ctx context.Context, clientID string, at time.Time) (bool, error)
}
