package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchedule_TwelveMonthLoan(t *testing.T) {
	// S/ 12,000 at 10% effective annual for 12 months.
	principal := decimal.NewFromInt(12_000)
	rate := decimal.NewFromInt(10)
	originated := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	schedule, err := GenerateSchedule("loan-1", principal, rate, 12, originated)
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	first := schedule[0]
	assert.Equal(t, 1, first.Number())
	assert.Equal(t, originated.AddDate(0, 0, 30), first.DueDate())

	// First month interest at TEM ~0.797414%: 12000 * 0.00797414 = ~95.69.
	assert.True(t, first.InterestPart().Equal(decimal.NewFromFloat(95.69)),
		"first interest should be 95.69, got %s", first.InterestPart())

	// Constant installment from the annuity formula is ~1052.59.
	expectedPayment := decimal.NewFromFloat(1052.59)
	assert.True(t,
		first.Total().Sub(expectedPayment).Abs().LessThan(decimal.NewFromFloat(0.02)),
		"installment should be approximately 1052.59, got %s", first.Total(),
	)

	// Last installment absorbs the rounding residue and zeroes the balance.
	last := schedule[11]
	assert.True(t, last.FinalAdjusting())
	assert.True(t, last.PrincipalAfter().Equal(decimal.Zero),
		"final remaining principal should be zero, got %s", last.PrincipalAfter(),
	)
	assert.True(t, last.Total().Equal(last.PrincipalPart().Add(last.InterestPart())),
		"last total must be principal plus interest, got %s", last.Total(),
	)

	// Sum of principal portions equals the principal to the cent.
	totalPrincipal := decimal.Zero
	totalInterest := decimal.Zero
	grandTotal := decimal.Zero
	for _, inst := range schedule {
		assert.False(t, inst.FinalAdjusting() && inst.Number() != 12)
		totalPrincipal = totalPrincipal.Add(inst.PrincipalPart())
		totalInterest = totalInterest.Add(inst.InterestPart())
		grandTotal = grandTotal.Add(inst.Total())
	}
	assert.True(t, totalPrincipal.Equal(principal),
		"principal portions should sum to %s, got %s", principal, totalPrincipal)
	assert.True(t, grandTotal.Equal(principal.Add(totalInterest)),
		"totals should equal principal plus interest")
}

func TestGenerateSchedule_DueDatesAdvanceThirtyDays(t *testing.T) {
	originated := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	schedule, err := GenerateSchedule("loan-1", decimal.NewFromInt(6000), decimal.NewFromInt(12), 6, originated)
	require.NoError(t, err)

	for i, inst := range schedule {
		assert.Equal(t, originated.AddDate(0, 0, 30*(i+1)), inst.DueDate())
		assert.Equal(t, i+1, inst.Number())
	}
}

func TestGenerateSchedule_ZeroRate(t *testing.T) {
	schedule, err := GenerateSchedule("loan-1", decimal.NewFromInt(12_000), decimal.Zero, 12, time.Now())
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	for _, inst := range schedule {
		assert.True(t, inst.InterestPart().Equal(decimal.Zero),
			"zero-rate installment %d should carry no interest", inst.Number())
		assert.True(t, inst.PrincipalPart().Equal(decimal.NewFromInt(1000)),
			"zero-rate installment %d principal should be 1000.00, got %s",
			inst.Number(), inst.PrincipalPart())
	}
}

func TestGenerateSchedule_ZeroRateResidueOnLastInstallment(t *testing.T) {
	// 1000 / 3 does not divide evenly: 333.33 + 333.33 + 333.34.
	schedule, err := GenerateSchedule("loan-1", decimal.NewFromInt(1000), decimal.Zero, 3, time.Now())
	require.NoError(t, err)
	require.Len(t, schedule, 3)

	assert.True(t, schedule[0].PrincipalPart().Equal(decimal.NewFromFloat(333.33)))
	assert.True(t, schedule[1].PrincipalPart().Equal(decimal.NewFromFloat(333.33)))
	assert.True(t, schedule[2].PrincipalPart().Equal(decimal.NewFromFloat(333.34)))

	sum := decimal.Zero
	for _, inst := range schedule {
		sum = sum.Add(inst.PrincipalPart())
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(1000)))
}

func TestGenerateSchedule_SmallPrincipalLongTermKeepsBalanceNonNegative(t *testing.T) {
	// S/ 10 over 60 periods at a near-zero rate: the rounded installment of
	// 0.17 repays the principal before the term ends. The balance must stop
	// at zero, with the tail installments carrying nothing, instead of the
	// final installment being created with a negative total.
	principal := decimal.NewFromInt(10)
	rate := decimal.RequireFromString("0.01")

	schedule, err := GenerateSchedule("loan-1", principal, rate, 60, time.Now())
	require.NoError(t, err)
	require.Len(t, schedule, 60)

	totalPrincipal := decimal.Zero
	for _, inst := range schedule {
		assert.False(t, inst.PrincipalAfter().IsNegative(),
			"installment %d remaining balance is negative: %s", inst.Number(), inst.PrincipalAfter())
		assert.False(t, inst.Outstanding().IsNegative(),
			"installment %d outstanding is negative: %s", inst.Number(), inst.Outstanding())
		assert.False(t, inst.Total().IsNegative(),
			"installment %d total is negative: %s", inst.Number(), inst.Total())
		totalPrincipal = totalPrincipal.Add(inst.PrincipalPart())
	}
	assert.True(t, totalPrincipal.Equal(principal),
		"principal portions should sum to %s, got %s", principal, totalPrincipal)

	last := schedule[59]
	assert.True(t, last.FinalAdjusting())
	assert.True(t, last.Total().Equal(decimal.Zero),
		"over-amortized tail installment should owe nothing, got %s", last.Total())
	assert.True(t, last.PrincipalAfter().Equal(decimal.Zero))
}

func TestGenerateSchedule_InvalidInput(t *testing.T) {
	now := time.Now()

	_, err := GenerateSchedule("loan-1", decimal.Zero, decimal.NewFromInt(10), 12, now)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateSchedule("loan-1", decimal.NewFromInt(-500), decimal.NewFromInt(10), 12, now)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateSchedule("loan-1", decimal.NewFromInt(1000), decimal.NewFromInt(10), 0, now)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateSchedule("loan-1", decimal.NewFromInt(1000), decimal.NewFromInt(-1), 12, now)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateSchedule_NewInstallmentsStartScheduled(t *testing.T) {
	schedule, err := GenerateSchedule("loan-1", decimal.NewFromInt(5000), decimal.NewFromInt(15), 4, time.Now())
	require.NoError(t, err)

	for _, inst := range schedule {
		assert.Equal(t, "SCHEDULED", inst.Status().String())
		assert.True(t, inst.Outstanding().Equal(inst.Total()))
		assert.True(t, inst.PaidTotal().Equal(decimal.Zero))
		assert.True(t, inst.ArrearsUnpaid().Equal(decimal.Zero))
		assert.True(t, inst.ArrearsAssessed().Equal(decimal.Zero))
		assert.Equal(t, "loan-1", inst.LoanID())
		assert.NotEmpty(t, inst.ID())
	}
}
