// Package finance derives totals, breakdowns, projections and wallet figures
// from the committed collections. Nothing in here reads the clock or touches storage.
package finance

import (
	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/types"
	"github.com/shopspring/decimal"
)

// BreakdownFilter selects whether Savings expenses take part in a category breakdown.
type BreakdownFilter int

const (
	// ExcludeSavings is used for spending statistics.
	ExcludeSavings BreakdownFilter = iota

	// IncludeSavings is used for wallet bookkeeping.
	IncludeSavings
)

func filter[T any](records []T, keep func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func sum[T any](records []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(amount(r))
	}
	return total
}

// FilterExpensesByMonth returns the expenses whose date lies in the month.
func FilterExpensesByMonth(expenses []models.Expense, month types.Month) []models.Expense {
	return filter(expenses, func(e models.Expense) bool { return month.Contains(e.Date) })
}

// FilterIncomeByMonth returns the income whose date lies in the month.
func FilterIncomeByMonth(income []models.Income, month types.Month) []models.Income {
	return filter(income, func(i models.Income) bool { return month.Contains(i.Date) })
}

// SpendingExpenses returns all expenses except Savings contributions.
func SpendingExpenses(expenses []models.Expense) []models.Expense {
	return filter(expenses, func(e models.Expense) bool { return !e.IsSavings() })
}

// SavingsExpenses returns only the Savings contributions.
func SavingsExpenses(expenses []models.Expense) []models.Expense {
	return filter(expenses, models.Expense.IsSavings)
}

// TotalExpenses sums the expense amounts. It is zero for no expenses.
func TotalExpenses(expenses []models.Expense) decimal.Decimal {
	return sum(expenses, func(e models.Expense) decimal.Decimal { return e.Amount })
}

// TotalIncome sums the income amounts. It is zero for no income.
func TotalIncome(income []models.Income) decimal.Decimal {
	return sum(income, func(i models.Income) decimal.Decimal { return i.Amount })
}

// TotalSpent is the actual spending, Savings contributions excluded.
func TotalSpent(expenses []models.Expense) decimal.Decimal {
	return TotalExpenses(SpendingExpenses(expenses))
}

// NetAmount is the income minus the spending excluding Savings.
func NetAmount(totalIncome, totalSpent decimal.Decimal) decimal.Decimal {
	return totalIncome.Sub(totalSpent)
}

// CategoryBreakdown sums expense amounts per category.
func CategoryBreakdown(expenses []models.Expense, f BreakdownFilter) map[string]decimal.Decimal {
	if f == ExcludeSavings {
		expenses = SpendingExpenses(expenses)
	}

	breakdown := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		breakdown[e.Category] = breakdown[e.Category].Add(e.Amount)
	}
	return breakdown
}

// SourceBreakdown sums income amounts per source.
func SourceBreakdown(income []models.Income) map[string]decimal.Decimal {
	breakdown := make(map[string]decimal.Decimal)
	for _, i := range income {
		breakdown[i.Source] = breakdown[i.Source].Add(i.Amount)
	}
	return breakdown
}

// NewArchive builds the archive of a month from its records.
func NewArchive(month types.Month, expenses []models.Expense, income []models.Income) models.MonthlyArchive {
	if expenses == nil {
		expenses = []models.Expense{}
	}
	if income == nil {
		income = []models.Income{}
	}

	spent := TotalSpent(expenses)
	earned := TotalIncome(income)

	return models.MonthlyArchive{
		Month:       month,
		Expenses:    expenses,
		Income:      income,
		TotalSpent:  spent,
		TotalIncome: earned,
		NetAmount:   NetAmount(earned, spent),
	}
}
