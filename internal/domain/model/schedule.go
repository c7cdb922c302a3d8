package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/valueobject"
)

// periodDays is the fixed length of a repayment period. Due dates advance in
// whole 30-day steps from the origination date rather than by calendar month.
const periodDays = 30

var (
	// ErrInvalidInput is returned when the loan parameters cannot describe a
	// repayable loan.
	ErrInvalidInput = errors.New("principal, rate and term must describe a repayable loan")

	// ErrArithmeticDegenerate is returned when the annuity denominator
	// collapses to zero for a nonzero rate.
	ErrArithmeticDegenerate = errors.New("annuity factor is degenerate for the given rate and term")
)

// GenerateSchedule builds the full French-system amortization schedule for a
// loan: a constant installment A = P*r*(1+r)^n / ((1+r)^n - 1) at the
// effective monthly rate r, with interest charged on the declining balance.
// Monetary figures are rounded half up to two decimals as they are produced;
// the last installment's principal portion absorbs the rounding residual so
// the principal portions sum to the principal exactly, and its scheduled
// total is re-derived as principal portion plus interest, never left at A.
//
// A zero annual rate degrades to straight principal division with zero
// interest throughout.
func GenerateSchedule(
	loanID string,
	principal, annualRatePct decimal.Decimal,
	termMonths int,
	originatedAt time.Time,
) ([]Installment, error) {
	if !principal.IsPositive() || termMonths <= 0 {
		return nil, ErrInvalidInput
	}

	monthlyRate, err := valueobject.EffectiveMonthlyRate(annualRatePct)
	if err != nil {
		return nil, ErrInvalidInput
	}

	installment, err := constantInstallment(principal, monthlyRate, termMonths)
	if err != nil {
		return nil, err
	}

	schedule := make([]Installment, 0, termMonths)
	balance := principal

	for number := 1; number <= termMonths; number++ {
		dueDate := originatedAt.AddDate(0, 0, periodDays*number)
		interest := balance.Mul(monthlyRate).Round(2)

		var capital, total decimal.Decimal
		final := number == termMonths
		if final {
			// Residual absorption: the closing installment repays whatever
			// balance the rounded ones left behind.
			capital = balance
			total = capital.Add(interest)
			balance = decimal.Zero
		} else {
			// The rounded installment can over-amortize a small principal
			// before the term ends; the cap keeps the balance at zero instead
			// of letting it go negative.
			capital = decimal.Min(installment.Sub(interest), balance)
			if balance.IsPositive() && !capital.IsPositive() {
				return nil, ErrArithmeticDegenerate
			}
			total = capital.Add(interest)
			balance = balance.Sub(capital)
		}

		schedule = append(schedule, newInstallment(
			loanID, number, dueDate,
			total, capital, interest, balance,
			final,
		))
	}

	return schedule, nil
}

// constantInstallment computes the fixed payment A, rounded half up to two
// decimals. A zero rate short-circuits to P/n.
func constantInstallment(principal, monthlyRate decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	n := decimal.NewFromInt(int64(termMonths))
	if monthlyRate.IsZero() {
		return principal.Div(n).Round(2), nil
	}

	factor := decimal.NewFromInt(1).Add(monthlyRate).Pow(n)
	denominator := factor.Sub(decimal.NewFromInt(1))
	if denominator.IsZero() {
		return decimal.Zero, ErrArithmeticDegenerate
	}

	return principal.Mul(monthlyRate).Mul(factor).Div(denominator).Round(2), nil
}
