package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Installment entity
// ---------------------------------------------------------------------------

var (
	// ErrUnknownInstallment is returned when a referenced installment does not
	// belong to the loan.
	ErrUnknownInstallment = errors.New("unknown installment")

	// ErrInconsistentReversal is returned when undoing a payment would leave
	// the installment's balances in an impossible state.
	ErrInconsistentReversal = errors.New("reversal would corrupt installment balances")
)

// Installment is one scheduled repayment unit of a loan (a cuota). The
// scheduled fields (amounts, due date) are fixed at origination; the running
// fields (outstanding, paid, arrears) are mutated only through the methods
// below, which return modified copies.
type Installment struct {
	id              string
	loanID          string
	number          int
	dueDate         time.Time
	total           decimal.Decimal
	principalPart   decimal.Decimal
	interestPart    decimal.Decimal
	principalAfter  decimal.Decimal
	outstanding     decimal.Decimal
	paidTotal       decimal.Decimal
	arrearsUnpaid   decimal.Decimal
	arrearsAssessed decimal.Decimal
	finalAdjusting  bool
	status          valueobject.InstallmentStatus
}

// newInstallment builds a freshly scheduled installment. Only the schedule
// generator calls it.
func newInstallment(
	loanID string,
	number int,
	dueDate time.Time,
	total, principalPart, interestPart, principalAfter decimal.Decimal,
	finalAdjusting bool,
) Installment {
	return Installment{
		id:              uuid.New().String(),
		loanID:          loanID,
		number:          number,
		dueDate:         dueDate,
		total:           total,
		principalPart:   principalPart,
		interestPart:    interestPart,
		principalAfter:  principalAfter,
		outstanding:     total,
		paidTotal:       decimal.Zero,
		arrearsUnpaid:   decimal.Zero,
		arrearsAssessed: decimal.Zero,
		finalAdjusting:  finalAdjusting,
		status:          valueobject.InstallmentStatusScheduled,
	}
}

// ReconstructInstallment rebuilds an Installment from persistence.
func ReconstructInstallment(
	id, loanID string,
	number int,
	dueDate time.Time,
	total, principalPart, interestPart, principalAfter decimal.Decimal,
	outstanding, paidTotal, arrearsUnpaid, arrearsAssessed decimal.Decimal,
	finalAdjusting bool,
	status valueobject.InstallmentStatus,
) Installment {
	return Installment{
		id:              id,
		loanID:          loanID,
		number:          number,
		dueDate:         dueDate,
		total:           total,
		principalPart:   principalPart,
		interestPart:    interestPart,
		principalAfter:  principalAfter,
		outstanding:     outstanding,
		paidTotal:       paidTotal,
		arrearsUnpaid:   arrearsUnpaid,
		arrearsAssessed: arrearsAssessed,
		finalAdjusting:  finalAdjusting,
		status:          status,
	}
}

// ---------------------------------------------------------------------------
// Mutations (return new copies)
// ---------------------------------------------------------------------------

// WithArrears replaces the unpaid arrears figure with a freshly computed fee.
// Any positive delta over the previous unpaid figure is accrued into the
// historical total, which never decreases.
func (i Installment) WithArrears(fee decimal.Decimal) Installment {
	next := i
	if fee.GreaterThan(i.arrearsUnpaid) {
		next.arrearsAssessed = i.arrearsAssessed.Add(fee.Sub(i.arrearsUnpaid))
	}
	next.arrearsUnpaid = fee
	return next
}

// TakePayment applies an already-allocated payment split: arrearsPaid is
// deducted from unpaid arrears, balancePaid from the outstanding balance.
// Only the portion of balancePaid the balance can absorb is applied and
// counted as paid; any excess is the caller's rounding adjustment and is
// recorded on the payment, not here.
func (i Installment) TakePayment(arrearsPaid, balancePaid decimal.Decimal) Installment {
	next := i
	next.arrearsUnpaid = i.arrearsUnpaid.Sub(arrearsPaid)
	if next.arrearsUnpaid.IsNegative() {
		next.arrearsUnpaid = decimal.Zero
	}
	applied := decimal.Min(balancePaid, i.outstanding)
	next.outstanding = i.outstanding.Sub(applied)
	next.paidTotal = i.paidTotal.Add(arrearsPaid).Add(applied)

	if next.outstanding.IsPositive() {
		next.status = valueobject.InstallmentStatusPartiallyPaid
	} else {
		next.status = valueobject.InstallmentStatusSettled
	}
	return next
}

// UndoPayment restores the balances a previous TakePayment consumed. The
// operation is all-or-nothing: if restoring would push unpaid arrears above
// the historical total, or any running figure below zero, nothing changes and
// ErrInconsistentReversal is returned.
func (i Installment) UndoPayment(arrearsPaid, balancePaid decimal.Decimal) (Installment, error) {
	restoredArrears := i.arrearsUnpaid.Add(arrearsPaid)
	restoredOutstanding := i.outstanding.Add(balancePaid)
	restoredPaid := i.paidTotal.Sub(arrearsPaid).Sub(balancePaid)

	if restoredArrears.GreaterThan(i.arrearsAssessed) {
		return i, ErrInconsistentReversal
	}
	if restoredOutstanding.IsNegative() || restoredPaid.IsNegative() {
		return i, ErrInconsistentReversal
	}

	next := i
	next.arrearsUnpaid = restoredArrears
	next.outstanding = restoredOutstanding
	next.paidTotal = restoredPaid

	switch {
	case !restoredOutstanding.IsPositive():
		next.status = valueobject.InstallmentStatusSettled
	case restoredPaid.IsPositive():
		next.status = valueobject.InstallmentStatusPartiallyPaid
	default:
		next.status = valueobject.InstallmentStatusScheduled
	}
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (i Installment) ID() string                                { return i.id }
func (i Installment) LoanID() string                            { return i.loanID }
func (i Installment) Number() int                               { return i.number }
func (i Installment) DueDate() time.Time                        { return i.dueDate }
func (i Installment) Total() decimal.Decimal                    { return i.total }
func (i Installment) PrincipalPart() decimal.Decimal            { return i.principalPart }
func (i Installment) InterestPart() decimal.Decimal             { return i.interestPart }
func (i Installment) PrincipalAfter() decimal.Decimal           { return i.principalAfter }
func (i Installment) Outstanding() decimal.Decimal              { return i.outstanding }
func (i Installment) PaidTotal() decimal.Decimal                { return i.paidTotal }
func (i Installment) ArrearsUnpaid() decimal.Decimal            { return i.arrearsUnpaid }
func (i Installment) ArrearsAssessed() decimal.Decimal          { return i.arrearsAssessed }
func (i Installment) FinalAdjusting() bool                      { return i.finalAdjusting }
func (i Installment) Status() valueobject.InstallmentStatus     { return i.status }

// IsSettled reports whether the installment carries no outstanding balance.
func (i Installment) IsSettled() bool {
	return !i.outstanding.IsPositive()
}

// LedgerOwed is the accounting amount currently owed on this installment:
// outstanding balance plus unpaid arrears.
func (i Installment) LedgerOwed() decimal.Decimal {
	return i.outstanding.Add(i.arrearsUnpaid)
}
