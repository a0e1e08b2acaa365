package finance

import (
	"strings"
	"time"

	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TopCategoryCount is the number of categories listed in a report.
const TopCategoryCount = 5

// CategoryTotal is the spending of one category within a month.
type CategoryTotal struct {
	Category   string               `json:"category" example:"Food"`
	Amount     decimal.Decimal      `json:"amount" example:"50"`
	Percentage decimal.Decimal      `json:"percentage" example:"62.5"` // Share of the month's spending
	Color      models.CategoryColor `json:"color"`
}

// Report summarizes a month.
type Report struct {
	Month             types.Month                `json:"month" example:"2025-01"`
	TotalSpent        decimal.Decimal            `json:"totalSpent" example:"50"` // Savings excluded
	TotalIncome       decimal.Decimal            `json:"totalIncome" example:"1000"`
	TotalSaved        decimal.Decimal            `json:"totalSaved" example:"100"`
	NetAmount         decimal.Decimal            `json:"netAmount" example:"950"`
	TransactionCount  int                        `json:"transactionCount" example:"3"`
	CategoryBreakdown map[string]decimal.Decimal `json:"categoryBreakdown"`
	SourceBreakdown   map[string]decimal.Decimal `json:"sourceBreakdown"`
	TopCategories     []CategoryTotal            `json:"topCategories"`
}

// MonthlyReport builds the report for the records of the month.
func MonthlyReport(month types.Month, expenses []models.Expense, income []models.Income) Report {
	expenses = FilterExpensesByMonth(expenses, month)
	income = FilterIncomeByMonth(income, month)

	spent := TotalSpent(expenses)
	earned := TotalIncome(income)
	breakdown := CategoryBreakdown(expenses, ExcludeSavings)

	return Report{
		Month:             month,
		TotalSpent:        spent,
		TotalIncome:       earned,
		TotalSaved:        TotalSavingsDeposited(expenses),
		NetAmount:         NetAmount(earned, spent),
		TransactionCount:  len(expenses) + len(income),
		CategoryBreakdown: breakdown,
		SourceBreakdown:   SourceBreakdown(income),
		TopCategories:     topCategories(breakdown, spent),
	}
}

func topCategories(breakdown map[string]decimal.Decimal, total decimal.Decimal) []CategoryTotal {
	categories := maps.Keys(breakdown)
	categories = slices.DeleteFunc(categories, func(c string) bool { return !breakdown[c].IsPositive() })

	slices.SortFunc(categories, func(a, b string) int {
		if c := breakdown[b].Cmp(breakdown[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	if len(categories) > TopCategoryCount {
		categories = categories[:TopCategoryCount]
	}

	top := make([]CategoryTotal, 0, len(categories))
	for _, c := range categories {
		percentage := decimal.Zero
		if total.IsPositive() {
			percentage = breakdown[c].Div(total).Mul(hundred).Round(2)
		}

		top = append(top, CategoryTotal{
			Category:   c,
			Amount:     breakdown[c],
			Percentage: percentage,
			Color:      models.ColorFor(c),
		})
	}
	return top
}

// Comparison is the change of a month against the month archived before it.
type Comparison struct {
	Month          types.Month     `json:"month" example:"2025-02"`
	PreviousMonth  *types.Month    `json:"previousMonth,omitempty" example:"2025-01"`
	SpendingChange decimal.Decimal `json:"spendingChange" example:"-12.5"`
	IncomeChange   decimal.Decimal `json:"incomeChange" example:"0"`
	NetChange      decimal.Decimal `json:"netChange" example:"12.5"`
}

// CompareMonths compares a month with the previous one. Without a previous month, all changes are zero.
func CompareMonths(current models.MonthlyArchive, previous *models.MonthlyArchive) Comparison {
	c := Comparison{
		Month:          current.Month,
		SpendingChange: decimal.Zero,
		IncomeChange:   decimal.Zero,
		NetChange:      decimal.Zero,
	}

	if previous == nil {
		return c
	}

	month := previous.Month
	c.PreviousMonth = &month
	c.SpendingChange = current.TotalSpent.Sub(previous.TotalSpent)
	c.IncomeChange = current.TotalIncome.Sub(previous.TotalIncome)
	c.NetChange = current.NetAmount.Sub(previous.NetAmount)
	return c
}

// PreviousArchive returns the latest archive of a month before the given one.
func PreviousArchive(archives []models.MonthlyArchive, month types.Month) *models.MonthlyArchive {
	var previous *models.MonthlyArchive
	for i := range archives {
		a := &archives[i]
		if !a.Month.Before(month) {
			continue
		}

		if previous == nil || a.Month.After(previous.Month) {
			previous = a
		}
	}
	return previous
}

// MonthsWithEntries lists every month that has live records or an archive, oldest first.
func MonthsWithEntries(expenses []models.Expense, income []models.Income, archives []models.MonthlyArchive) []types.Month {
	seen := make(map[string]types.Month)
	add := func(date string) {
		m, err := types.MonthOfDate(date)
		if err == nil {
			seen[m.String()] = m
		}
	}

	for _, e := range expenses {
		add(e.Date)
	}
	for _, i := range income {
		add(i.Date)
	}
	for _, a := range archives {
		seen[a.Month.String()] = a.Month
	}

	months := maps.Values(seen)
	slices.SortFunc(months, func(a, b types.Month) int {
		return strings.Compare(a.String(), b.String())
	})
	return months
}

// LastMonths returns the n months up to and including the month of now, oldest first.
func LastMonths(now time.Time, n int) []types.Month {
	current := types.MonthOf(now)

	months := make([]types.Month, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, current.AddDate(0, -i))
	}
	return months
}
