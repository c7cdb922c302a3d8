package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/usecase"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/model"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/port"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/service"
	"github.com/UPAO-INSO/caso-agile-sub000/pkg/events"
)

// --- Mock implementations ---

type stubLoanRepo struct {
	loan    model.Loan
	hasLoan bool
}

func (s *stubLoanRepo) Save(_ context.Context, loan model.Loan) error {
	s.loan = loan
	s.hasLoan = true
	return nil
}

func (s *stubLoanRepo) FindByID(_ context.Context, loanID string) (model.Loan, error) {
	if !s.hasLoan || s.loan.ID() != loanID {
		return model.Loan{}, port.ErrLoanNotFound
	}
	return s.loan, nil
}

func (s *stubLoanRepo) ListActiveIDs(_ context.Context) ([]string, error) {
	if !s.hasLoan {
		return nil, nil
	}
	return []string{s.loan.ID()}, nil
}

func (s *stubLoanRepo) ListOverdueInstallments(_ context.Context, asOf time.Time) ([]model.Installment, error) {
	if !s.hasLoan {
		return nil, nil
	}
	var out []model.Installment
	for _, inst := range s.loan.Installments() {
		if !inst.IsSettled() && inst.DueDate().Before(asOf) {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (s *stubLoanRepo) SaveWithPayment(_ context.Context, loan model.Loan, _ model.Payment) error {
	s.loan = loan
	s.hasLoan = true
	return nil
}

func (s *stubLoanRepo) SaveWithPaymentReversal(_ context.Context, loan model.Loan, _ model.Payment) error {
	s.loan = loan
	s.hasLoan = true
	return nil
}

type stubPaymentRepo struct{}

func (stubPaymentRepo) FindByID(_ context.Context, _ string) (model.Payment, error) {
	return model.Payment{}, port.ErrPaymentNotFound
}

func (stubPaymentRepo) ListByInstallment(_ context.Context, _ string) ([]model.Payment, error) {
	return nil, nil
}

type stubPublisher struct{}

func (stubPublisher) Publish(_ context.Context, _ ...events.DomainEvent) error { return nil }

type stubWatchlist struct {
	listed bool
}

func (s stubWatchlist) IsListed(_ context.Context, _ string, _ time.Time) (bool, error) {
	return s.listed, nil
}

// --- Helpers ---

func buildTestHandler(repo *stubLoanRepo, listed bool) *LoanHandler {
	publisher := stubPublisher{}
	paymentRepo := stubPaymentRepo{}
	engine := service.NewArrearsEngine()
	allocator := service.NewPaymentAllocator()

	return NewLoanHandler(
		usecase.NewOriginateLoanUseCase(repo, stubWatchlist{listed: listed}, publisher),
		usecase.NewGetLoanUseCase(repo),
		usecase.NewGetLoanSummaryUseCase(repo, paymentRepo, engine),
		usecase.NewRecordPaymentUseCase(repo, paymentRepo, engine, allocator, publisher),
		usecase.NewReversePaymentUseCase(repo, paymentRepo, allocator, publisher),
		usecase.NewRefreshArrearsUseCase(repo, paymentRepo, engine, publisher),
		usecase.NewListOverdueUseCase(repo),
	)
}

func seedLoan(t *testing.T, repo *stubLoanRepo) model.Loan {
	t.Helper()
	originated := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	loan, err := model.NewLoan("client-7", decimal.NewFromInt(3000), decimal.Zero, 3, originated, originated)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), loan))
	return loan
}

// --- Tests ---

func TestOriginateLoan(t *testing.T) {
	handler := buildTestHandler(&stubLoanRepo{}, false)

	resp, err := handler.OriginateLoan(context.Background(), &OriginateLoanRequest{
		ClientID:      "client-7",
		Principal:     "3000",
		AnnualRatePct: "0",
		TermMonths:    3,
		OriginatedAt:  "2026-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "ACTIVE", resp.Loan.Status)
	require.Len(t, resp.Loan.Installments, 3)
	assert.True(t, resp.Loan.Installments[0].Total.Equal(decimal.RequireFromString("1000.00")))
}

func TestOriginateLoanInvalidPrincipal(t *testing.T) {
	handler := buildTestHandler(&stubLoanRepo{}, false)

	_, err := handler.OriginateLoan(context.Background(), &OriginateLoanRequest{
		ClientID:      "client-7",
		Principal:     "not-a-number",
		AnnualRatePct: "10",
		TermMonths:    12,
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestOriginateLoanWatchlisted(t *testing.T) {
	handler := buildTestHandler(&stubLoanRepo{}, true)

	_, err := handler.OriginateLoan(context.Background(), &OriginateLoanRequest{
		ClientID:      "client-7",
		Principal:     "3000",
		AnnualRatePct: "0",
		TermMonths:    3,
	})
	require.Error(t, err)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestGetLoanNotFound(t *testing.T) {
	handler := buildTestHandler(&stubLoanRepo{}, false)

	_, err := handler.GetLoan(context.Background(), &GetLoanRequest{LoanID: "missing"})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRecordPayment(t *testing.T) {
	repo := &stubLoanRepo{}
	handler := buildTestHandler(repo, false)
	loan := seedLoan(t, repo)
	inst := loan.Installments()[0]

	resp, err := handler.RecordPayment(context.Background(), &RecordPaymentRequest{
		LoanID:        loan.ID(),
		InstallmentID: inst.ID(),
		Amount:        "1000.00",
		Medium:        "CASH",
		PaidAt:        "2026-01-15T00:00:00Z",
		CashTendered:  "1050.00",
	})
	require.NoError(t, err)

	assert.True(t, resp.Payment.Amount.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, resp.Payment.Change.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, "SETTLED", repo.loan.Installments()[0].Status().String())
}

func TestRecordPaymentInvalidAmount(t *testing.T) {
	repo := &stubLoanRepo{}
	handler := buildTestHandler(repo, false)
	loan := seedLoan(t, repo)

	_, err := handler.RecordPayment(context.Background(), &RecordPaymentRequest{
		LoanID:        loan.ID(),
		InstallmentID: loan.Installments()[0].ID(),
		Amount:        "-5",
		Medium:        "CASH",
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestReversePaymentNotFound(t *testing.T) {
	repo := &stubLoanRepo{}
	handler := buildTestHandler(repo, false)
	loan := seedLoan(t, repo)

	_, err := handler.ReversePayment(context.Background(), &ReversePaymentRequest{
		LoanID:    loan.ID(),
		PaymentID: "missing",
	})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRefreshArrearsInvalidDate(t *testing.T) {
	handler := buildTestHandler(&stubLoanRepo{}, false)

	_, err := handler.RefreshArrears(context.Background(), &RefreshArrearsRequest{
		LoanID:        "loan-1",
		ReferenceDate: "yesterday",
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestListOverdue(t *testing.T) {
	repo := &stubLoanRepo{}
	handler := buildTestHandler(repo, false)
	loan := seedLoan(t, repo)

	resp, err := handler.ListOverdue(context.Background(), &ListOverdueRequest{
		AsOf: "2026-03-15T00:00:00Z",
	})
	require.NoError(t, err)

	require.Len(t, resp.Installments, 2)
	assert.Equal(t, loan.ID(), resp.Installments[0].LoanID)
	assert.Equal(t, 1, resp.Installments[0].Number)
}