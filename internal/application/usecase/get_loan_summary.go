package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/dto"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/port"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/service"
)

// GetLoanSummaryUseCase rolls a loan's repayment position up into one row.
// Arrears are refreshed in memory as of now so the figures shown are
// current; nothing is persisted on a read.
type GetLoanSummaryUseCase struct {
	loanRepo    port.LoanRepository
	paymentRepo port.PaymentRepository
	engine      *service.ArrearsEngine
}

// NewGetLoanSummaryUseCase wires dependencies.
func NewGetLoanSummaryUseCase(
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
	engine *service.ArrearsEngine,
) *GetLoanSummaryUseCase {
	return &GetLoanSummaryUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		engine:      engine,
	}
}

// Execute builds the summary.
func (uc *GetLoanSummaryUseCase) Execute(ctx context.Context, req dto.GetLoanRequest) (dto.LoanSummaryResponse, error) {
	now := time.Now().UTC()

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanSummaryResponse{}, fmt.Errorf("find loan: %w", err)
	}

	dueDates := loan.DueDates()
	var due, paid int
	var nextDue *time.Time

	for _, inst := range loan.Installments() {
		if inst.IsSettled() {
			paid++
			continue
		}
		due++
		if nextDue == nil {
			d := inst.DueDate()
			nextDue = &d
		}

		history, err := uc.paymentDates(ctx, inst.ID())
		if err != nil {
			return dto.LoanSummaryResponse{}, fmt.Errorf("load payment history: %w", err)
		}
		refreshed := uc.engine.Refresh(inst, dueDates, now, history)
		loan, err = loan.RefreshArrears(refreshed, now)
		if err != nil {
			return dto.LoanSummaryResponse{}, fmt.Errorf("refresh arrears: %w", err)
		}
	}

	return dto.LoanSummaryResponse{
		LoanID:           loan.ID(),
		Status:           loan.Status().String(),
		Principal:        loan.Principal(),
		Outstanding:      loan.Outstanding(),
		ArrearsUnpaid:    loan.ArrearsUnpaid(),
		ArrearsAssessed:  loan.ArrearsAssessed(),
		InstallmentsDue:  due,
		InstallmentsPaid: paid,
		NextDueDate:      nextDue,
	}, nil
}

func (uc *GetLoanSummaryUseCase) paymentDates(ctx context.Context, installmentID string) ([]time.Time, error) {
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
