package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/model"
)

// defaultArrearsRate is the late fee charged per overdue period, as a
// fraction of the installment's outstanding balance.
var defaultArrearsRate = decimal.NewFromFloat(0.01)

// ArrearsEngine recomputes the late fees owed on overdue installments. The
// fee is proportional to the number of whole schedule periods elapsed since
// an installment's due date: outstanding * rate * periods, rounded half up
// to two decimals. Refreshing is idempotent for a fixed reference date.
type ArrearsEngine struct {
	rate decimal.Decimal
}

// NewArrearsEngine builds an engine with the standard 1% per-period rate.
func NewArrearsEngine() *ArrearsEngine {
	return &ArrearsEngine{rate: defaultArrearsRate}
}

// NewArrearsEngineWithRate builds an engine with a custom per-period rate.
func NewArrearsEngineWithRate(rate decimal.Decimal) *ArrearsEngine {
	return &ArrearsEngine{rate: rate}
}

// Refresh recomputes the unpaid arrears on one installment as of refDate.
//
// dueDates is the loan's full ordered due-date list; paymentDates holds the
// dates of the payments already applied to this installment. Settled
// installments are frozen: their stored arrears figures never change. A
// partial payment dated within the installment's first overdue period waives
// exactly one period's fee.
func (e *ArrearsEngine) Refresh(
	inst model.Installment,
	dueDates []time.Time,
	refDate time.Time,
	paymentDates []time.Time,
) model.Installment {
	if inst.IsSettled() {
		return inst
	}
	if !refDate.After(inst.DueDate()) {
		return inst.WithArrears(decimal.Zero)
	}

	periods := e.periodsOverdue(inst, dueDates, refDate)
	if periods > 0 && paidWithinGracePeriod(inst, dueDates, paymentDates) {
		periods--
	}

	fee := inst.Outstanding().
		Mul(e.rate).
		Mul(decimal.NewFromInt(int64(periods))).
		Round(2)
	return inst.WithArrears(fee)
}

// periodsOverdue counts how many schedule due dates, starting at this
// installment's own, fall strictly before the reference date. Past the final
// scheduled date the count keeps growing at the schedule's average interval.
func (e *ArrearsEngine) periodsOverdue(inst model.Installment, dueDates []time.Time, refDate time.Time) int {
	idx := inst.Number() - 1
	if idx < 0 || idx >= len(dueDates) {
		return 0
	}

	periods := 0
	for _, due := range dueDates[idx:] {
		if due.Before(refDate) {
			periods++
		}
	}

	last := dueDates[len(dueDates)-1]
	if refDate.After(last) {
		interval := averageInterval(dueDates)
		for tick := last.Add(interval); tick.Before(refDate); tick = tick.Add(interval) {
			periods++
		}
	}
	return periods
}

// paidWithinGracePeriod reports whether any payment against the installment
// landed strictly after its due date but no later than the next scheduled due
// date.
func paidWithinGracePeriod(inst model.Installment, dueDates []time.Time, paymentDates []time.Time) bool {
	windowEnd := nextDueDate(inst, dueDates)
	for _, paid := range paymentDates {
		if paid.After(inst.DueDate()) && !paid.After(windowEnd) {
			return true
		}
	}
	return false
}

func nextDueDate(inst model.Installment, dueDates []time.Time) time.Time {
	if inst.Number() < len(dueDates) {
		return dueDates[inst.Number()]
	}
	return inst.DueDate().Add(averageInterval(dueDates))
}

// averageInterval estimates one schedule period from the spacing of the due
// dates; a degenerate schedule falls back to 30 days.
func averageInterval(dueDates []time.Time) time.Duration {
	if len(dueDates) < 2 {
		return 30 * 24 * time.Hour
	}
	span := dueDates[len(dueDates)-1].Sub(dueDates[0])
	return span / time.Duration(len(dueDates)-1)
}
