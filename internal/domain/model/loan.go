package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/event"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/valueobject"
	"github.com/UPAO-INSO/caso-agile-sub000/pkg/events"
)

// ErrLoanClosed is returned when an operation requires an active loan.
var ErrLoanClosed = errors.New("loan is closed")

// Loan is the aggregate root for a single installment loan. It owns the full
// amortization schedule and is the only place loan-level state transitions
// happen. All mutating methods return modified copies; the version field
// backs optimistic locking at the persistence layer.
type Loan struct {
	id            string
	clientID      string
	principal     decimal.Decimal
	annualRatePct decimal.Decimal
	termMonths    int
	originatedAt  time.Time
	status        valueobject.LoanStatus
	installments  []Installment
	version       int
	createdAt     time.Time
	updatedAt     time.Time

	domainEvents []events.DomainEvent
}

// NewLoan originates a loan: validates the parameters, generates the full
// schedule and records a LoanOriginated event.
func NewLoan(
	clientID string,
	principal, annualRatePct decimal.Decimal,
	termMonths int,
	originatedAt time.Time,
	now time.Time,
) (Loan, error) {
	if clientID == "" {
		return Loan{}, ErrInvalidInput
	}

	id := uuid.New().String()
	schedule, err := GenerateSchedule(id, principal, annualRatePct, termMonths, originatedAt)
	if err != nil {
		return Loan{}, err
	}

	loan := Loan{
		id:            id,
		clientID:      clientID,
		principal:     principal,
		annualRatePct: annualRatePct,
		termMonths:    termMonths,
		originatedAt:  originatedAt,
		status:        valueobject.LoanStatusActive,
		installments:  schedule,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}
	loan.domainEvents = append(loan.domainEvents, event.NewLoanOriginated(
		id, clientID, principal, annualRatePct, termMonths, originatedAt,
	))
	return loan, nil
}

// ReconstructLoan rebuilds a Loan from persistence without emitting events.
func ReconstructLoan(
	id, clientID string,
	principal, annualRatePct decimal.Decimal,
	termMonths int,
	originatedAt time.Time,
	status valueobject.LoanStatus,
	installments []Installment,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:            id,
		clientID:      clientID,
		principal:     principal,
		annualRatePct: annualRatePct,
		termMonths:    termMonths,
		originatedAt:  originatedAt,
		status:        status,
		installments:  copyInstallments(installments),
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// RefreshArrears replaces an installment after an arrears recomputation and,
// when the unpaid figure grew, records an ArrearsAccrued event.
func (l Loan) RefreshArrears(updated Installment, now time.Time) (Loan, error) {
	idx, err := l.indexOf(updated.ID())
	if err != nil {
		return l, err
	}

	previous := l.installments[idx]
	next := l.withInstallment(idx, updated, now)

	accrued := updated.ArrearsAssessed().Sub(previous.ArrearsAssessed())
	if accrued.IsPositive() {
		next.domainEvents = append(next.domainEvents, event.NewArrearsAccrued(
			l.id, updated.ID(), updated.Number(),
			accrued, updated.ArrearsUnpaid(), updated.ArrearsAssessed(),
		))
	}
	return next, nil
}

// ApplyPayment replaces the paid installment, records the payment event and,
// when the whole schedule is settled, closes the loan.
func (l Loan) ApplyPayment(updated Installment, payment Payment, now time.Time) (Loan, error) {
	if l.status.Equal(valueobject.LoanStatusClosed) {
		return l, ErrLoanClosed
	}
	idx, err := l.indexOf(updated.ID())
	if err != nil {
		return l, err
	}

	wasSettled := l.installments[idx].IsSettled()
	next := l.withInstallment(idx, updated, now)

	next.domainEvents = append(next.domainEvents, event.NewPaymentRecorded(
		l.id, payment.ID(), payment.InstallmentID(),
		payment.Amount(), payment.ArrearsPaid(), payment.Adjustment(),
		payment.Medium().String(), payment.PaidAt(),
	))
	if !wasSettled && updated.IsSettled() {
		next.domainEvents = append(next.domainEvents, event.NewInstallmentSettled(
			l.id, updated.ID(), updated.Number(),
		))
	}
	if next.allSettled() {
		next.status = valueobject.LoanStatusClosed
		next.domainEvents = append(next.domainEvents, event.NewLoanClosed(l.id, now))
	}
	return next, nil
}

// ReversePayment restores the installment a payment had been applied to and
// records a PaymentReversed event. A closed loan rejects reversals.
func (l Loan) ReversePayment(restored Installment, payment Payment, now time.Time) (Loan, error) {
	if l.status.Equal(valueobject.LoanStatusClosed) {
		return l, ErrLoanClosed
	}
	idx, err := l.indexOf(restored.ID())
	if err != nil {
		return l, err
	}

	next := l.withInstallment(idx, restored, now)
	next.domainEvents = append(next.domainEvents, event.NewPaymentReversed(
		l.id, payment.ID(), payment.InstallmentID(), payment.Amount(),
	))
	return next, nil
}

func (l Loan) withInstallment(idx int, updated Installment, now time.Time) Loan {
	next := l
	next.installments = copyInstallments(l.installments)
	next.installments[idx] = updated
	next.version = l.version + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	return next
}

func (l Loan) indexOf(installmentID string) (int, error) {
	for idx, inst := range l.installments {
		if inst.ID() == installmentID {
			return idx, nil
		}
	}
	return 0, ErrUnknownInstallment
}

func (l Loan) allSettled() bool {
	for _, inst := range l.installments {
		if !inst.IsSettled() {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                     { return l.id }
func (l Loan) ClientID() string               { return l.clientID }
func (l Loan) Principal() decimal.Decimal     { return l.principal }
func (l Loan) AnnualRatePct() decimal.Decimal { return l.annualRatePct }
func (l Loan) TermMonths() int                { return l.termMonths }
func (l Loan) OriginatedAt() time.Time        { return l.originatedAt }
func (l Loan) Status() valueobject.LoanStatus { return l.status }
func (l Loan) Version() int                   { return l.version }
func (l Loan) CreatedAt() time.Time           { return l.createdAt }
func (l Loan) UpdatedAt() time.Time           { return l.updatedAt }

// Installments returns a defensive copy of the schedule, ordered by number.
func (l Loan) Installments() []Installment {
	return copyInstallments(l.installments)
}

// InstallmentByID looks an installment up within this loan's schedule.
func (l Loan) InstallmentByID(installmentID string) (Installment, error) {
	idx, err := l.indexOf(installmentID)
	if err != nil {
		return Installment{}, err
	}
	return l.installments[idx], nil
}

// InstallmentByNumber looks an installment up by its 1-based position.
func (l Loan) InstallmentByNumber(number int) (Installment, error) {
	if number < 1 || number > len(l.installments) {
		return Installment{}, ErrUnknownInstallment
	}
	return l.installments[number-1], nil
}

// DueDates returns the ordered due dates of the full schedule.
func (l Loan) DueDates() []time.Time {
	dates := make([]time.Time, len(l.installments))
	for idx, inst := range l.installments {
		dates[idx] = inst.DueDate()
	}
	return dates
}

// Outstanding sums the unpaid scheduled balance across all installments.
func (l Loan) Outstanding() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range l.installments {
		total = total.Add(inst.Outstanding())
	}
	return total
}

// ArrearsUnpaid sums the currently unpaid arrears across all installments.
func (l Loan) ArrearsUnpaid() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range l.installments {
		total = total.Add(inst.ArrearsUnpaid())
	}
	return total
}

// ArrearsAssessed sums the historical arrears ever charged on the loan.
func (l Loan) ArrearsAssessed() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range l.installments {
		total = total.Add(inst.ArrearsAssessed())
	}
	return total
}

// DomainEvents returns the events recorded since construction or the last
// ClearEvents call.
func (l Loan) DomainEvents() []events.DomainEvent {
	return copyEvents(l.domainEvents)
}

// ClearEvents drops the recorded events, typically after publishing.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func copyInstallments(src []Installment) []Installment {
	dst := make([]Installment, len(src))
	copy(dst, src)
	return dst
}

func copyEvents(src []events.DomainEvent) []events.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]events.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
