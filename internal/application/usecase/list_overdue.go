package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/dto"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/port"
)

// ListOverdueUseCase lists unsettled installments past their due date across
// all active loans. The nightly arrears job and collection reports consume
// it.
type ListOverdueUseCase struct {
	loanRepo port.LoanRepository
}

// NewListOverdueUseCase wires dependencies.
func NewListOverdueUseCase(loanRepo port.LoanRepository) *ListOverdueUseCase {
	return &ListOverdueUseCase{loanRepo: loanRepo}
}

// Execute returns the overdue listing as of asOf, ordered by due date.
func (uc *ListOverdueUseCase) Execute(ctx context.Context, asOf time.Time) ([]dto.OverdueInstallmentResponse, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	installments, err := uc.loanRepo.ListOverdueInstallments(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("list overdue installments: %w", err)
	}

	out := make([]dto.OverdueInstallmentResponse, len(installments))
	for idx, inst := range installments {
		out[idx] = dto.OverdueInstallmentResponse{
			InstallmentID: inst.ID(),
			LoanID:        inst.LoanID(),
			Number:        inst.Number(),
			DueDate:       inst.DueDate(),
			Outstanding:   inst.Outstanding(),
			ArrearsUnpaid: inst.ArrearsUnpaid(),
		}
	}
	return out, nil
}
