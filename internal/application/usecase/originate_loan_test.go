package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/dto"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/usecase"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/event"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/model"
)

func TestOriginateLoan_Execute(t *testing.T) {
	t.Run("creates loan with full schedule", func(t *testing.T) {
		var saved *model.Loan
		loanRepo := &mockLoanRepository{
			saveFunc: func(_ context.Context, loan model.Loan) error {
				saved = &loan
				return nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewOriginateLoanUseCase(loanRepo, &mockWatchlistLookup{}, publisher)

		resp, err := uc.Execute(context.Background(), dto.OriginateLoanRequest{
			ClientID:      "client-1",
			Principal:     decimal.NewFromInt(12_000),
			AnnualRatePct: decimal.NewFromInt(10),
			TermMonths:    12,
			OriginatedAt:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "ACTIVE", resp.Status)
		assert.Len(t, resp.Installments, 12)
		assert.Equal(t, resp.ID, saved.ID())

		require.Len(t, publisher.published, 1)
		_, ok := publisher.published[0].(*event.LoanOriginated)
		assert.True(t, ok)
	})

	t.Run("rejects watch-listed client", func(t *testing.T) {
		uc := usecase.NewOriginateLoanUseCase(
			&mockLoanRepository{}, &mockWatchlistLookup{listed: true}, &mockEventPublisher{},
		)

		_, err := uc.Execute(context.Background(), dto.OriginateLoanRequest{
			ClientID:   "client-1",
			Principal:  decimal.NewFromInt(1000),
			TermMonths: 6,
		})

		assert.ErrorIs(t, err, usecase.ErrClientWatchlisted)
	})

	t.Run("propagates invalid loan parameters", func(t *testing.T) {
		uc := usecase.NewOriginateLoanUseCase(
			&mockLoanRepository{}, &mockWatchlistLookup{}, &mockEventPublisher{},
		)

		_, err := uc.Execute(context.Background(), dto.OriginateLoanRequest{
			ClientID:   "client-1",
			Principal:  decimal.Zero,
			TermMonths: 6,
		})

		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}
