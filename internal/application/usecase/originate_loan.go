package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/dto"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/model"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/port"
)

// ErrClientWatchlisted is returned when the watch-list lookup flags the
// client at origination time.
var ErrClientWatchlisted = errors.New("client appears on the watch list")

// OriginateLoanUseCase creates a loan and its amortization schedule.
type OriginateLoanUseCase struct {
	loanRepo  port.LoanRepository
	watchlist port.WatchlistLookup
	publisher port.EventPublisher
}

// NewOriginateLoanUseCase wires dependencies.
func NewOriginateLoanUseCase(
	loanRepo port.LoanRepository,
	watchlist port.WatchlistLookup,
	publisher port.EventPublisher,
) *OriginateLoanUseCase {
	return &OriginateLoanUseCase{
		loanRepo:  loanRepo,
		watchlist: watchlist,
		publisher: publisher,
	}
}

// Execute originates a loan after a watch-list screen.
func (uc *OriginateLoanUseCase) Execute(
	ctx context.Context,
	req dto.OriginateLoanRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	// 1. Screen the client.
	listed, err := uc.watchlist.IsListed(ctx, req.ClientID, now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("watchlist lookup: %w", err)
	}
	if listed {
		return dto.LoanResponse{}, ErrClientWatchlisted
	}

	// 2. Create the loan with its full schedule.
	originatedAt := req.OriginatedAt
	if originatedAt.IsZero() {
		originatedAt = now
	}
	loan, err := model.NewLoan(req.ClientID, req.Principal, req.AnnualRatePct, req.TermMonths, originatedAt, now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("originate loan: %w", err)
	}

	// 3. Persist.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 4. Publish events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}
