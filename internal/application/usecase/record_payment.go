package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/dto"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/port"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/service"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/valueobject"
)

// RecordPaymentUseCase applies a payment to one installment of a loan. The
// installment's arrears are refreshed immediately before allocation; refresh
// and allocation never interleave with another writer because the repository
// save is guarded by the aggregate version.
type RecordPaymentUseCase struct {
	loanRepo    port.LoanRepository
	paymentRepo port.PaymentRepository
	engine      *service.ArrearsEngine
	allocator   *service.PaymentAllocator
	publisher   port.EventPublisher
}

// NewRecordPaymentUseCase wires dependencies.
func NewRecordPaymentUseCase(
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
	engine *service.ArrearsEngine,
	allocator *service.PaymentAllocator,
	publisher port.EventPublisher,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		engine:      engine,
		allocator:   allocator,
		publisher:   publisher,
	}
}

// Execute refreshes arrears, allocates the amount and persists the updated
// aggregate together with the payment record in one transaction.
func (uc *RecordPaymentUseCase) Execute(
	ctx context.Context,
	req dto.RecordPaymentRequest,
) (dto.PaymentResponse, error) {
	now := time.Now().UTC()

	medium, err := valueobject.NewPaymentMedium(req.Medium)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("parse medium: %w", err)
	}
	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}

	// 1. Retrieve the loan and the target installment.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}
	inst, err := loan.InstallmentByID(req.InstallmentID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find installment: %w", err)
	}

	// 2. Refresh arrears as of the payment date.
	history, err := uc.paymentDates(ctx, inst.ID())
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("load payment history: %w", err)
	}
	refreshed := uc.engine.Refresh(inst, loan.DueDates(), paidAt, history)
	loan, err = loan.RefreshArrears(refreshed, now)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("refresh arrears: %w", err)
	}

	// 3. Allocate: arrears first, then balance.
	updated, payment, err := uc.allocator.Apply(refreshed, req.Amount, medium, paidAt, req.Reference, req.Notes, now)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("apply payment: %w", err)
	}
	if medium.IsCash() && req.CashTendered.IsPositive() {
		payment = payment.WithCashTendered(req.CashTendered)
	}

	loan, err = loan.ApplyPayment(updated, payment, now)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("apply payment: %w", err)
	}

	// 4. Persist loan and payment atomically.
	if err := uc.loanRepo.SaveWithPayment(ctx, loan, payment); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save payment: %w", err)
	}

	// 5. Publish events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toPaymentResponse(payment, loan), nil
}

// paymentDates returns the dates of the non-reversed payments already applied
// to the installment.
func (uc *RecordPaymentUseCase) paymentDates(ctx context.Context, installmentID string) ([]time.Time, error) {
	payments, err := uc.paymentRepo.ListByInstallment(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(payments))
	for _, p := range payments {
		if p.Reversed() {
			continue
		}
		dates = append(dates, p.PaidAt())
	}
	return dates, nil
}
