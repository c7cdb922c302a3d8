package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/UPAO-INSO/caso-agile-sub000/pkg/events"
)

const aggregateTypeLoan = "Loan"

// LoanOriginated is published when a loan and its amortization schedule are
// created.
type LoanOriginated struct {
	events.BaseEvent
	ClientID      string          `json:"client_id"`
	Principal     decimal.Decimal `json:"principal"`
	AnnualRatePct decimal.Decimal `json:"annual_rate_pct"`
	TermMonths    int             `json:"term_months"`
	OriginatedAt  time.Time       `json:"originated_at"`
}

func NewLoanOriginated(loanID, clientID string, principal, annualRatePct decimal.Decimal, termMonths int, originatedAt time.Time) *LoanOriginated {
	return &LoanOriginated{
		BaseEvent:     events.NewBaseEvent("loan.originated", loanID, aggregateTypeLoan),
		ClientID:      clientID,
		Principal:     principal,
		AnnualRatePct: annualRatePct,
		TermMonths:    termMonths,
		OriginatedAt:  originatedAt,
	}
}

// ArrearsAccrued is published when a refresh raises the unpaid arrears on an
// installment.
type ArrearsAccrued struct {
	events.BaseEvent
	InstallmentID     string          `json:"installment_id"`
	InstallmentNumber int             `json:"installment_number"`
	Accrued           decimal.Decimal `json:"accrued"`
	Unpaid            decimal.Decimal `json:"unpaid"`
	AssessedTotal     decimal.Decimal `json:"assessed_total"`
}

func NewArrearsAccrued(loanID, installmentID string, number int, accrued, unpaid, assessedTotal decimal.Decimal) *ArrearsAccrued {
	return &ArrearsAccrued{
		BaseEvent:         events.NewBaseEvent("loan.arrears_accrued", loanID, aggregateTypeLoan),
		InstallmentID:     installmentID,
		InstallmentNumber: number,
		Accrued:           accrued,
		Unpaid:            unpaid,
		AssessedTotal:     assessedTotal,
	}
}

// PaymentRecorded is published when a payment is applied to an installment.
type PaymentRecorded struct {
	events.BaseEvent
	PaymentID     string          `json:"payment_id"`
	InstallmentID string          `json:"installment_id"`
	Amount        decimal.Decimal `json:"amount"`
	ArrearsPaid   decimal.Decimal `json:"arrears_paid"`
	Adjustment    decimal.Decimal `json:"adjustment"`
	Medium        string          `json:"medium"`
	PaidAt        time.Time       `json:"paid_at"`
}

func NewPaymentRecorded(loanID, paymentID, installmentID string, amount, arrearsPaid, adjustment decimal.Decimal, medium string, paidAt time.Time) *PaymentRecorded {
	return &PaymentRecorded{
		BaseEvent:     events.NewBaseEvent("loan.payment_recorded", loanID, aggregateTypeLoan),
		PaymentID:     paymentID,
		InstallmentID: installmentID,
		Amount:        amount,
		ArrearsPaid:   arrearsPaid,
		Adjustment:    adjustment,
		Medium:        medium,
		PaidAt:        paidAt,
	}
}

// PaymentReversed is published when a previously applied payment is undone.
type PaymentReversed struct {
	events.BaseEvent
	PaymentID     string          `json:"payment_id"`
	InstallmentID string          `json:"installment_id"`
	Amount        decimal.Decimal `json:"amount"`
}

func NewPaymentReversed(loanID, paymentID, installmentID string, amount decimal.Decimal) *PaymentReversed {
	return &PaymentReversed{
		BaseEvent:     events.NewBaseEvent("loan.payment_reversed", loanID, aggregateTypeLoan),
		PaymentID:     paymentID,
		InstallmentID: installmentID,
		Amount:        amount,
	}
}

// InstallmentSettled is published when an installment's outstanding balance
// reaches zero.
type InstallmentSettled struct {
	events.BaseEvent
	InstallmentID     string `json:"installment_id"`
	InstallmentNumber int    `json:"installment_number"`
}

func NewInstallmentSettled(loanID, installmentID string, number int) *InstallmentSettled {
	return &InstallmentSettled{
		BaseEvent:         events.NewBaseEvent("loan.installment_settled", loanID, aggregateTypeLoan),
		InstallmentID:     installmentID,
		InstallmentNumber: number,
	}
}

// LoanClosed is published when every installment of a loan is settled.
type LoanClosed struct {
	events.BaseEvent
	ClosedAt time.Time `json:"closed_at"`
}

func NewLoanClosed(loanID string, closedAt time.Time) *LoanClosed {
	return &LoanClosed{
		BaseEvent: events.NewBaseEvent("loan.closed", loanID, aggregateTypeLoan),
		ClosedAt:  closedAt,
	}
}
