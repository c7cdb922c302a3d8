package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/valueobject"
)

// Payment is the immutable record of a single payment applied to an
// installment. It captures both sides of the cash-rounding rule: the exact
// amount received and the ledger amount actually owed, with their signed
// difference kept as the rounding adjustment (ledger minus received).
type Payment struct {
	id            string
	installmentID string
	loanID        string
	amount        decimal.Decimal
	arrearsPaid   decimal.Decimal
	ledgerAmount  decimal.Decimal
	adjustment    decimal.Decimal
	medium        valueobject.PaymentMedium
	paidAt        time.Time
	reference     string
	notes         string
	tendered      decimal.Decimal
	change        decimal.Decimal
	reversed      bool
	createdAt     time.Time
}

// NewPayment mints the record for a freshly allocated payment. The allocation
// split (arrearsPaid, ledgerAmount, adjustment) is computed by the payment
// allocator and stored verbatim.
func NewPayment(
	installmentID, loanID string,
	amount, arrearsPaid, ledgerAmount, adjustment decimal.Decimal,
	medium valueobject.PaymentMedium,
	paidAt time.Time,
	reference, notes string,
	now time.Time,
) Payment {
	return Payment{
		id:            uuid.New().String(),
		installmentID: installmentID,
		loanID:        loanID,
		amount:        amount,
		arrearsPaid:   arrearsPaid,
		ledgerAmount:  ledgerAmount,
		adjustment:    adjustment,
		medium:        medium,
		paidAt:        paidAt,
		reference:     reference,
		notes:         notes,
		tendered:      decimal.Zero,
		change:        decimal.Zero,
		reversed:      false,
		createdAt:     now,
	}
}

// WithCashTendered records the bills handed over at the till and the change
// returned. Only meaningful for cash payments.
func (p Payment) WithCashTendered(tendered decimal.Decimal) Payment {
	next := p
	next.tendered = tendered
	next.change = tendered.Sub(p.amount)
	if next.change.IsNegative() {
		next.change = decimal.Zero
	}
	return next
}

// ReconstructPayment rebuilds a Payment from persistence.
func ReconstructPayment(
	id, installmentID, loanID string,
	amount, arrearsPaid, ledgerAmount, adjustment decimal.Decimal,
	medium valueobject.PaymentMedium,
	paidAt time.Time,
	reference, notes string,
	tendered, change decimal.Decimal,
	reversed bool,
	createdAt time.Time,
) Payment {
	return Payment{
		id:            id,
		installmentID: installmentID,
		loanID:        loanID,
		amount:        amount,
		arrearsPaid:   arrearsPaid,
		ledgerAmount:  ledgerAmount,
		adjustment:    adjustment,
		medium:        medium,
		paidAt:        paidAt,
		reference:     reference,
		notes:         notes,
		tendered:      tendered,
		change:        change,
		reversed:      reversed,
		createdAt:     createdAt,
	}
}

// MarkReversed returns a copy flagged as reversed. The monetary fields are
// never altered; the flag is the only mutable aspect of a payment.
func (p Payment) MarkReversed() Payment {
	next := p
	next.reversed = true
	return next
}

func (p Payment) ID() string                         { return p.id }
func (p Payment) InstallmentID() string              { return p.installmentID }
func (p Payment) LoanID() string                     { return p.loanID }
func (p Payment) Amount() decimal.Decimal            { return p.amount }
func (p Payment) ArrearsPaid() decimal.Decimal       { return p.arrearsPaid }
func (p Payment) LedgerAmount() decimal.Decimal      { return p.ledgerAmount }
func (p Payment) Adjustment() decimal.Decimal        { return p.adjustment }
func (p Payment) Medium() valueobject.PaymentMedium  { return p.medium }
func (p Payment) PaidAt() time.Time                  { return p.paidAt }
func (p Payment) Reference() string                  { return p.reference }
func (p Payment) Notes() string                      { return p.notes }
func (p Payment) Tendered() decimal.Decimal          { return p.tendered }
func (p Payment) Change() decimal.Decimal            { return p.change }
func (p Payment) Reversed() bool                     { return p.reversed }
func (p Payment) CreatedAt() time.Time               { return p.createdAt }

// BalancePaid is the portion of the received amount that went to the
// installment balance after arrears.
func (p Payment) BalancePaid() decimal.Decimal {
	return p.amount.Sub(p.arrearsPaid)
}
