package finance

import (
	"github.com/shopspring/decimal"
)

// MonthlyProjection extrapolates an amount observed until dayOfMonth linearly to the end of the month.
//
// On the first day of the month, and for a zero amount, the amount is returned unchanged.
func MonthlyProjection(current decimal.Decimal, daysInMonth, dayOfMonth int) decimal.Decimal {
	if dayOfMonth <= 1 || current.IsZero() {
		return current
	}

	daily := current.Div(decimal.NewFromInt(int64(dayOfMonth)))
	return current.Add(daily.Mul(decimal.NewFromInt(int64(daysInMonth - dayOfMonth))))
}

// Projection is the month-end outlook of the current month.
type Projection struct {
	ProjectedSpending decimal.Decimal `json:"projectedSpending" example:"640"`
	ProjectedIncome   decimal.Decimal `json:"projectedIncome" example:"2000"`
	ProjectedNet      decimal.Decimal `json:"projectedNet" example:"1360"`
	AverageDailySpend decimal.Decimal `json:"averageDailySpending" example:"20.65"`
	DaysPassed        int             `json:"daysPassed" example:"15"`
	DaysRemaining     int             `json:"daysRemaining" example:"16"`
	DaysInMonth       int             `json:"daysInMonth" example:"31"`
}

// ProjectionData projects spending and income of the month to its end.
func ProjectionData(totalSpent, totalIncome decimal.Decimal, daysInMonth, dayOfMonth int) Projection {
	average := decimal.Zero
	if dayOfMonth > 0 {
		average = totalSpent.Div(decimal.NewFromInt(int64(dayOfMonth)))
	}

	spending := MonthlyProjection(totalSpent, daysInMonth, dayOfMonth)
	income := MonthlyProjection(totalIncome, daysInMonth, dayOfMonth)

	return Projection{
		ProjectedSpending: spending,
		ProjectedIncome:   income,
		ProjectedNet:      income.Sub(spending),
		AverageDailySpend: average,
		DaysPassed:        dayOfMonth,
		DaysRemaining:     daysInMonth - dayOfMonth,
		DaysInMonth:       daysInMonth,
	}
}
