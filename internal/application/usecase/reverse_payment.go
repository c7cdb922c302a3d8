package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/dto"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/model"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/port"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/service"
)

// ReversePaymentUseCase undoes a previously recorded payment, restoring the
// installment's balances. The reversal is all-or-nothing.
type ReversePaymentUseCase struct {
	loanRepo    port.LoanRepository
	paymentRepo port.PaymentRepository
	allocator   *service.PaymentAllocator
	publisher   port.EventPublisher
}

// NewReversePaymentUseCase wires dependencies.
func NewReversePaymentUseCase(
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
	allocator *service.PaymentAllocator,
	publisher port.EventPublisher,
) *ReversePaymentUseCase {
	return &ReversePaymentUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		allocator:   allocator,
		publisher:   publisher,
	}
}

// Execute reverses a payment and persists the restored aggregate together
// with the reversal flag in one transaction.
func (uc *ReversePaymentUseCase) Execute(
	ctx context.Context,
	req dto.ReversePaymentRequest,
) (dto.PaymentResponse, error) {
	now := time.Now().UTC()

	// 1. Retrieve the payment and its loan.
	payment, err := uc.paymentRepo.FindByID(ctx, req.PaymentID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find payment: %w", err)
	}
	if payment.LoanID() != req.LoanID {
		return dto.PaymentResponse{}, model.ErrUnknownInstallment
	}

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}
	inst, err := loan.InstallmentByID(payment.InstallmentID())
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find installment: %w", err)
	}

	// 2. Restore the installment's balances.
	restored, err := uc.allocator.Revert(inst, payment)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("revert payment: %w", err)
	}

	loan, err = loan.ReversePayment(restored, payment, now)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("reverse payment: %w", err)
	}
	payment = payment.MarkReversed()

	// 3. Persist loan and reversal flag atomically.
	if err := uc.loanRepo.SaveWithPaymentReversal(ctx, loan, payment); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save reversal: %w", err)
	}

	// 4. Publish events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toPaymentResponse(payment, loan), nil
}
