package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/event"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/valueobject"
)

func newTestLoan(t *testing.T, term int) Loan {
	t.Helper()
	loan, err := NewLoan(
		"client-1",
		decimal.NewFromInt(3000), decimal.NewFromInt(10), term,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return loan
}

func settleInstallment(t *testing.T, loan Loan, inst Installment, now time.Time) Loan {
	t.Helper()
	paid := inst.TakePayment(inst.ArrearsUnpaid(), inst.Outstanding())
	payment := NewPayment(
		inst.ID(), loan.ID(),
		inst.LedgerOwed(), inst.ArrearsUnpaid(), inst.LedgerOwed(), decimal.Zero,
		valueobject.PaymentMediumTransfer, now, "", "", now,
	)
	next, err := loan.ApplyPayment(paid, payment, now)
	require.NoError(t, err)
	return next
}

func TestNewLoan_GeneratesScheduleAndEvent(t *testing.T) {
	loan := newTestLoan(t, 6)

	assert.NotEmpty(t, loan.ID())
	assert.True(t, loan.Status().Equal(valueobject.LoanStatusActive))
	assert.Equal(t, 1, loan.Version())
	require.Len(t, loan.Installments(), 6)

	evts := loan.DomainEvents()
	require.Len(t, evts, 1)
	originated, ok := evts[0].(*event.LoanOriginated)
	require.True(t, ok)
	assert.Equal(t, loan.ID(), originated.AggregateID())
	assert.Equal(t, "client-1", originated.ClientID)
}

func TestNewLoan_RejectsMissingClient(t *testing.T) {
	_, err := NewLoan("", decimal.NewFromInt(1000), decimal.NewFromInt(10), 6, time.Now(), time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoan_InstallmentLookup(t *testing.T) {
	loan := newTestLoan(t, 6)
	third := loan.Installments()[2]

	byID, err := loan.InstallmentByID(third.ID())
	require.NoError(t, err)
	assert.Equal(t, 3, byID.Number())

	byNumber, err := loan.InstallmentByNumber(3)
	require.NoError(t, err)
	assert.Equal(t, third.ID(), byNumber.ID())

	_, err = loan.InstallmentByID("nope")
	assert.ErrorIs(t, err, ErrUnknownInstallment)
	_, err = loan.InstallmentByNumber(7)
	assert.ErrorIs(t, err, ErrUnknownInstallment)
}

func TestLoan_ApplyPaymentBumpsVersionAndRecordsEvents(t *testing.T) {
	loan := newTestLoan(t, 6).ClearEvents()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	first := loan.Installments()[0]

	paid := first.TakePayment(decimal.Zero, decimal.NewFromInt(100))
	payment := NewPayment(
		first.ID(), loan.ID(),
		decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(100), decimal.Zero,
		valueobject.PaymentMediumCash, now, "R-001", "", now,
	)

	updated, err := loan.ApplyPayment(paid, payment, now)
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Version())
	assert.True(t, updated.Status().Equal(valueobject.LoanStatusActive))

	got, err := updated.InstallmentByID(first.ID())
	require.NoError(t, err)
	assert.True(t, got.Status().Equal(valueobject.InstallmentStatusPartiallyPaid))

	evts := updated.DomainEvents()
	require.Len(t, evts, 1)
	recorded, ok := evts[0].(*event.PaymentRecorded)
	require.True(t, ok)
	assert.Equal(t, payment.ID(), recorded.PaymentID)

	// The original copy is untouched.
	assert.Equal(t, 1, loan.Version())
}

func TestLoan_ClosesWhenAllInstallmentsSettle(t *testing.T) {
	loan := newTestLoan(t, 2).ClearEvents()
	now := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	loan = settleInstallment(t, loan, loan.Installments()[0], now)
	assert.True(t, loan.Status().Equal(valueobject.LoanStatusActive))

	loan = settleInstallment(t, loan, loan.Installments()[1], now)
	assert.True(t, loan.Status().Equal(valueobject.LoanStatusClosed))
	assert.True(t, loan.Outstanding().Equal(decimal.Zero))

	var closed, settled int
	for _, evt := range loan.DomainEvents() {
		switch evt.(type) {
		case *event.LoanClosed:
			closed++
		case *event.InstallmentSettled:
			settled++
		}
	}
	assert.Equal(t, 1, closed)
	assert.Equal(t, 2, settled)
}

func TestLoan_ClosedLoanRejectsPaymentsAndReversals(t *testing.T) {
	loan := newTestLoan(t, 1).ClearEvents()
	now := time.Now()
	inst := loan.Installments()[0]

	loan = settleInstallment(t, loan, inst, now)
	require.True(t, loan.Status().Equal(valueobject.LoanStatusClosed))

	settledInst, err := loan.InstallmentByID(inst.ID())
	require.NoError(t, err)

	payment := NewPayment(
		inst.ID(), loan.ID(),
		decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(10), decimal.Zero,
		valueobject.PaymentMediumCash, now, "", "", now,
	)

	_, err = loan.ApplyPayment(settledInst, payment, now)
	assert.ErrorIs(t, err, ErrLoanClosed)

	_, err = loan.ReversePayment(settledInst, payment, now)
	assert.ErrorIs(t, err, ErrLoanClosed)
}

func TestLoan_RefreshArrearsEmitsEventOnlyOnGrowth(t *testing.T) {
	loan := newTestLoan(t, 6).ClearEvents()
	now := time.Now()
	first := loan.Installments()[0]

	withFee := first.WithArrears(decimal.NewFromFloat(5.25))
	loan, err := loan.RefreshArrears(withFee, now)
	require.NoError(t, err)

	evts := loan.DomainEvents()
	require.Len(t, evts, 1)
	accrued, ok := evts[0].(*event.ArrearsAccrued)
	require.True(t, ok)
	assert.True(t, accrued.Accrued.Equal(decimal.NewFromFloat(5.25)))

	// Re-running with the same fee accrues nothing new.
	loan = loan.ClearEvents()
	same, err := loan.InstallmentByID(first.ID())
	require.NoError(t, err)
	loan, err = loan.RefreshArrears(same.WithArrears(decimal.NewFromFloat(5.25)), now)
	require.NoError(t, err)
	assert.Empty(t, loan.DomainEvents())
}

func TestLoan_ArrearsTotals(t *testing.T) {
	loan := newTestLoan(t, 3).ClearEvents()
	now := time.Now()

	first := loan.Installments()[0]
	loan, err := loan.RefreshArrears(first.WithArrears(decimal.NewFromFloat(3.00)), now)
	require.NoError(t, err)

	assert.True(t, loan.ArrearsUnpaid().Equal(decimal.NewFromFloat(3.00)))
	assert.True(t, loan.ArrearsAssessed().Equal(decimal.NewFromFloat(3.00)))
}
