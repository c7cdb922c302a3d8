package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/dto"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/port"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/service"
)

// RefreshArrearsUseCase recomputes the arrears of every installment of a
// loan as of a reference date and persists the result. It backs both the
// on-demand refresh endpoint and the nightly batch job.
type RefreshArrearsUseCase struct {
	loanRepo    port.LoanRepository
	paymentRepo port.PaymentRepository
	engine      *service.ArrearsEngine
	publisher   port.EventPublisher
}

// NewRefreshArrearsUseCase wires dependencies.
func NewRefreshArrearsUseCase(
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
	engine *service.ArrearsEngine,
	publisher port.EventPublisher,
) *RefreshArrearsUseCase {
	return &RefreshArrearsUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		engine:      engine,
		publisher:   publisher,
	}
}

// Execute refreshes a whole loan. The refresh is idempotent for a fixed
// reference date and payment history.
func (uc *RefreshArrearsUseCase) Execute(
	ctx context.Context,
	req dto.RefreshArrearsRequest,
) (dto.RefreshArrearsResponse, error) {
	now := time.Now().UTC()
	refDate := req.ReferenceDate
	if refDate.IsZero() {
		refDate = now
	}

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.RefreshArrearsResponse{}, fmt.Errorf("find loan: %w", err)
	}

	dueDates := loan.DueDates()
	refreshedCount := 0
	for _, inst := range loan.Installments() {
		history, err := uc.paymentDates(ctx, inst.ID())
		if err != nil {
			return dto.RefreshArrearsResponse{}, fmt.Errorf("load payment history: %w", err)
		}

		refreshed := uc.engine.Refresh(inst, dueDates, refDate, history)
		if refreshed.ArrearsUnpaid().Equal(inst.ArrearsUnpaid()) {
			continue
		}
		loan, err = loan.RefreshArrears(refreshed, now)
		if err != nil {
			return dto.RefreshArrearsResponse{}, fmt.Errorf("refresh arrears: %w", err)
		}
		refreshedCount++
	}

	if refreshedCount > 0 {
		if err := uc.loanRepo.Save(ctx, loan); err != nil {
			return dto.RefreshArrearsResponse{}, fmt.Errorf("save loan: %w", err)
		}
		if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
			return dto.RefreshArrearsResponse{}, fmt.Errorf("publish events: %w", err)
		}
	}

	return dto.RefreshArrearsResponse{
		LoanID:        loan.ID(),
		ReferenceDate: refDate,
		ArrearsUnpaid: loan.ArrearsUnpaid(),
		Refreshed:     refreshedCount,
	}, nil
}

func (uc *RefreshArrearsUseCase) paymentDates(ctx context.Context, installmentID string) ([]time.Time, error) {
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
