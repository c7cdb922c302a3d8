package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// OriginateLoanRequest carries the data needed to originate a loan and its
// amortization schedule.
type OriginateLoanRequest struct {
	ClientID      string          `json:"client_id"`
	Principal     decimal.Decimal `json:"principal"`
	AnnualRatePct decimal.Decimal `json:"annual_rate_pct"`
	TermMonths    int             `json:"term_months"`
	OriginatedAt  time.Time       `json:"originated_at"`
}

// RecordPaymentRequest carries the data for a payment against one
// installment.
type RecordPaymentRequest struct {
	LoanID        string          `json:"loan_id"`
	InstallmentID string          `json:"installment_id"`
	Amount        decimal.Decimal `json:"amount"`
	Medium        string          `json:"medium"`
	PaidAt        time.Time       `json:"paid_at"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	// CashTendered is the bills handed over for a cash payment; zero for
	// digital media.
	CashTendered decimal.Decimal `json:"cash_tendered,omitempty"`
}

// ReversePaymentRequest identifies a payment to undo.
type ReversePaymentRequest struct {
	LoanID    string `json:"loan_id"`
	PaymentID string `json:"payment_id"`
}

// RefreshArrearsRequest asks for a loan's arrears to be recomputed as of a
// reference date.
type RefreshArrearsRequest struct {
	LoanID        string    `json:"loan_id"`
	ReferenceDate time.Time `json:"reference_date"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// InstallmentResponse is the external representation of one installment.
type InstallmentResponse struct {
	ID              string          `json:"id"`
	Number          int             `json:"number"`
	DueDate         time.Time       `json:"due_date"`
	Total           decimal.Decimal `json:"total"`
	Principal       decimal.Decimal `json:"principal"`
	Interest        decimal.Decimal `json:"interest"`
	PrincipalAfter  decimal.Decimal `json:"principal_after"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	PaidTotal       decimal.Decimal `json:"paid_total"`
	ArrearsUnpaid   decimal.Decimal `json:"arrears_unpaid"`
	ArrearsAssessed decimal.Decimal `json:"arrears_assessed"`
	FinalAdjusting  bool            `json:"final_adjusting"`
	Status          string          `json:"status"`
}

// LoanResponse is the external representation of a loan with its schedule.
type LoanResponse struct {
	ID            string                `json:"id"`
	ClientID      string                `json:"client_id"`
	Principal     decimal.Decimal       `json:"principal"`
	AnnualRatePct decimal.Decimal       `json:"annual_rate_pct"`
	TermMonths    int                   `json:"term_months"`
	OriginatedAt  time.Time             `json:"originated_at"`
	Status        string                `json:"status"`
	Installments  []InstallmentResponse `json:"installments"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// PaymentResponse is the external representation of a payment record.
type PaymentResponse struct {
	ID            string          `json:"id"`
	LoanID        string          `json:"loan_id"`
	InstallmentID string          `json:"installment_id"`
	Amount        decimal.Decimal `json:"amount"`
	ArrearsPaid   decimal.Decimal `json:"arrears_paid"`
	LedgerAmount  decimal.Decimal `json:"ledger_amount"`
	Adjustment    decimal.Decimal `json:"adjustment"`
	Medium        string          `json:"medium"`
	PaidAt        time.Time       `json:"paid_at"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Tendered      decimal.Decimal `json:"tendered,omitempty"`
	Change        decimal.Decimal `json:"change,omitempty"`
	Reversed      bool            `json:"reversed"`
	LoanStatus    string          `json:"loan_status"`
}

// OverdueInstallmentResponse is one row of the overdue listing.
type OverdueInstallmentResponse struct {
	InstallmentID string          `json:"installment_id"`
	LoanID        string          `json:"loan_id"`
	Number        int             `json:"number"`
	DueDate       time.Time       `json:"due_date"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	ArrearsUnpaid decimal.Decimal `json:"arrears_unpaid"`
}

// LoanSummaryResponse aggregates a loan's repayment position.
type LoanSummaryResponse struct {
	LoanID           string          `json:"loan_id"`
	Status           string          `json:"status"`
	Principal        decimal.Decimal `json:"principal"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	ArrearsUnpaid    decimal.Decimal `json:"arrears_unpaid"`
	ArrearsAssessed  decimal.Decimal `json:"arrears_assessed"`
	InstallmentsDue  int             `json:"installments_due"`
	InstallmentsPaid int             `json:"installments_paid"`
	NextDueDate      *time.Time      `json:"next_due_date,omitempty"`
}

// RefreshArrearsResponse reports the outcome of an arrears refresh.
type RefreshArrearsResponse struct {
	LoanID        string          `json:"loan_id"`
	ReferenceDate time.Time       `json:"reference_date"`
	ArrearsUnpaid decimal.Decimal `json:"arrears_unpaid"`
	Refreshed     int             `json:"refreshed"`
}
