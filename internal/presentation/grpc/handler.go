package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/dto"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/usecase"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/model"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/port"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/service"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/valueobject"
)

// LoanHandler exposes the loan use cases over gRPC.
type LoanHandler struct {
	UnimplementedLoanServiceServer

	originateLoan  *usecase.OriginateLoanUseCase
	getLoan        *usecase.GetLoanUseCase
	getLoanSummary *usecase.GetLoanSummaryUseCase
	recordPayment  *usecase.RecordPaymentUseCase
	reversePayment *usecase.ReversePaymentUseCase
	refreshArrears *usecase.RefreshArrearsUseCase
	listOverdue    *usecase.ListOverdueUseCase
}

// NewLoanHandler creates a LoanHandler.
func NewLoanHandler(
	originateLoan *usecase.OriginateLoanUseCase,
	getLoan *usecase.GetLoanUseCase,
	getLoanSummary *usecase.GetLoanSummaryUseCase,
	recordPayment *usecase.RecordPaymentUseCase,
	reversePayment *usecase.ReversePaymentUseCase,
	refreshArrears *usecase.RefreshArrearsUseCase,
	listOverdue *usecase.ListOverdueUseCase,
) *LoanHandler {
	return &LoanHandler{
		originateLoan:  originateLoan,
		getLoan:        getLoan,
		getLoanSummary: getLoanSummary,
		recordPayment:  recordPayment,
		reversePayment: reversePayment,
		refreshArrears: refreshArrears,
		listOverdue:    listOverdue,
	}
}

// OriginateLoan creates a loan and its amortization schedule.
func (h *LoanHandler) OriginateLoan(ctx context.Context, req *OriginateLoanRequest) (*OriginateLoanResponse, error) {
	principal, err := decimal.NewFromString(req.Principal)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid principal: %v", err)
	}
	rate, err := decimal.NewFromString(req.AnnualRatePct)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid annual rate: %v", err)
	}
	originatedAt, err := parseTimeOrNow(req.OriginatedAt)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid originated_at: %v", err)
	}

	loan, err := h.originateLoan.Execute(ctx, dto.OriginateLoanRequest{
		ClientID:      req.ClientID,
		Principal:     principal,
		AnnualRatePct: rate,
		TermMonths:    req.TermMonths,
		OriginatedAt:  originatedAt,
	})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &OriginateLoanResponse{Loan: loan}, nil
}

// GetLoan returns a loan with its schedule.
func (h *LoanHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*GetLoanResponse, error) {
	loan, err := h.getLoan.Execute(ctx, dto.GetLoanRequest{LoanID: req.LoanID})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &GetLoanResponse{Loan: loan}, nil
}

// GetLoanSummary returns a loan roll-up with arrears recomputed as of now.
func (h *LoanHandler) GetLoanSummary(ctx context.Context, req *GetLoanSummaryRequest) (*GetLoanSummaryResponse, error) {
	summary, err := h.getLoanSummary.Execute(ctx, dto.GetLoanRequest{LoanID: req.LoanID})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &GetLoanSummaryResponse{Summary: summary}, nil
}

// RecordPayment allocates a payment against one installment.
func (h *LoanHandler) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*RecordPaymentResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}
	paidAt, err := parseTimeOrNow(req.PaidAt)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid paid_at: %v", err)
	}
	tendered := decimal.Zero
	if req.CashTendered != "" {
		tendered, err = decimal.NewFromString(req.CashTendered)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid cash_tendered: %v", err)
		}
	}

	payment, err := h.recordPayment.Execute(ctx, dto.RecordPaymentRequest{
		LoanID:        req.LoanID,
		InstallmentID: req.InstallmentID,
		Amount:        amount,
		Medium:        req.Medium,
		PaidAt:        paidAt,
		Reference:     req.Reference,
		Notes:         req.Notes,
		CashTendered:  tendered,
	})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &RecordPaymentResponse{Payment: payment}, nil
}

// ReversePayment undoes a previously recorded payment.
func (h *LoanHandler) ReversePayment(ctx context.Context, req *ReversePaymentRequest) (*ReversePaymentResponse, error) {
	payment, err := h.reversePayment.Execute(ctx, dto.ReversePaymentRequest{
		LoanID:    req.LoanID,
		PaymentID: req.PaymentID,
	})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &ReversePaymentResponse{Payment: payment}, nil
}

// RefreshArrears recomputes a loan's arrears as of a reference date.
func (h *LoanHandler) RefreshArrears(ctx context.Context, req *RefreshArrearsRequest) (*RefreshArrearsResponse, error) {
	var refDate time.Time
	if req.ReferenceDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.ReferenceDate)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid reference_date: %v", err)
		}
		refDate = parsed
	}

	result, err := h.refreshArrears.Execute(ctx, dto.RefreshArrearsRequest{
		LoanID:        req.LoanID,
		ReferenceDate: refDate,
	})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &RefreshArrearsResponse{Result: result}, nil
}

// ListOverdue lists overdue installments across active loans.
func (h *LoanHandler) ListOverdue(ctx context.Context, req *ListOverdueRequest) (*ListOverdueResponse, error) {
	asOf, err := parseTimeOrNow(req.AsOf)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid as_of: %v", err)
	}

	rows, err := h.listOverdue.Execute(ctx, asOf)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &ListOverdueResponse{Installments: rows}, nil
}

func parseTimeOrNow(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(time.RFC3339, value)
}

// statusFromError maps domain and port errors onto gRPC status codes.
func statusFromError(err error) error {
	switch {
	case errors.Is(err, port.ErrLoanNotFound),
		errors.Is(err, port.ErrPaymentNotFound),
		errors.Is(err, model.ErrUnknownInstallment):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrArithmeticDegenerate),
		errors.Is(err, valueobject.ErrInvalidRate),
		errors.Is(err, service.ErrInvalidAmount):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrLoanClosed),
		errors.Is(err, model.ErrInconsistentReversal),
		errors.Is(err, service.ErrAlreadySettled),
		errors.Is(err, service.ErrAlreadyReversed):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, usecase.ErrClientWatchlisted):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, port.ErrVersionConflict):
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
