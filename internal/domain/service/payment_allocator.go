package service

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/model"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/valueobject"
)

var (
	// ErrInvalidAmount is returned when a payment amount is zero or negative.
	ErrInvalidAmount = errors.New("payment amount must be positive")

	// ErrAlreadySettled is returned when a payment targets a fully settled
	// installment.
	ErrAlreadySettled = errors.New("installment is already settled")

	// ErrAlreadyReversed is returned when a reversal targets a payment that
	// was reversed before.
	ErrAlreadyReversed = errors.New("payment is already reversed")
)

// PaymentAllocator splits an incoming payment between unpaid arrears and the
// installment's outstanding balance, arrears first. It assumes the caller has
// refreshed the installment's arrears immediately before; the allocator never
// recomputes them.
type PaymentAllocator struct{}

func NewPaymentAllocator() *PaymentAllocator {
	return &PaymentAllocator{}
}

// Apply allocates amount against the installment and mints the immutable
// payment record.
//
// Unpaid arrears are extinguished before any of the amount touches the
// balance. An amount beyond everything owed is accepted: the ledger amount is
// capped at the debt and the surplus lands in the payment's signed rounding
// adjustment (ledger minus received), so consumer-law cash rounding
// reconciles instead of being dropped. The invariant is
// received + adjustment = ledger.
func (a *PaymentAllocator) Apply(
	inst model.Installment,
	amount decimal.Decimal,
	medium valueobject.PaymentMedium,
	paidAt time.Time,
	reference, notes string,
	now time.Time,
) (model.Installment, model.Payment, error) {
	if !amount.IsPositive() {
		return inst, model.Payment{}, ErrInvalidAmount
	}
	if inst.IsSettled() {
		return inst, model.Payment{}, ErrAlreadySettled
	}

	arrearsOwed := inst.ArrearsUnpaid()
	arrearsPaid := decimal.Min(amount, arrearsOwed)
	balancePaid := amount.Sub(arrearsPaid)

	owed := inst.LedgerOwed()
	ledgerAmount := decimal.Min(amount, owed)
	adjustment := ledgerAmount.Sub(amount)

	updated := inst.TakePayment(arrearsPaid, balancePaid)
	payment := model.NewPayment(
		inst.ID(), inst.LoanID(),
		amount, arrearsPaid, ledgerAmount, adjustment,
		medium, paidAt, reference, notes, now,
	)
	return updated, payment, nil
}

// Revert undoes a previously applied payment, restoring the installment's
// balance and unpaid arrears by the reversed portions. The restore is
// all-or-nothing: a reversal that would corrupt the installment's figures
// fails with ErrInconsistentReversal and changes nothing.
//
// The balance portion restored is capped at the ledger amount so that a
// recorded overpayment surplus, which never reduced the balance, is not
// resurrected onto it.
func (a *PaymentAllocator) Revert(inst model.Installment, payment model.Payment) (model.Installment, error) {
	if payment.Reversed() {
		return inst, ErrAlreadyReversed
	}
	if payment.InstallmentID() != inst.ID() {
		return inst, model.ErrUnknownInstallment
	}

	balancePaid := payment.LedgerAmount().Sub(payment.ArrearsPaid())
	if balancePaid.IsNegative() {
		return inst, model.ErrInconsistentReversal
	}
	return inst.UndoPayment(payment.ArrearsPaid(), balancePaid)
}
