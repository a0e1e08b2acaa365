package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/goals-wallet/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Expense is money spent. Expenses in the Savings category feed the goals wallet.
type Expense struct {
	ID          int64           `json:"id" example:"1735689600000"`
	Amount      decimal.Decimal `json:"amount" example:"12.5"`
	Category    string          `json:"category" example:"Food"`
	Description string          `json:"description" example:"Lunch"`
	Date        string          `json:"date" example:"2025-01-05"` // YYYY-MM-DD
}

// IsSavings reports whether the expense is a contribution to the goals wallet.
func (e Expense) IsSavings() bool {
	return e.Category == CategorySavings
}

// Income is money received.
type Income struct {
	ID          int64           `json:"id" example:"1735689600000"`
	Amount      decimal.Decimal `json:"amount" example:"1000"`
	Source      string          `json:"source" example:"Salary"`
	Description string          `json:"description" example:"January salary"`
	Date        string          `json:"date" example:"2025-01-01"` // YYYY-MM-DD
}

// ExpenseForm is the unvalidated input for a new expense.
//
// If ID is set and an expense with that ID already exists, submitting the
// form again returns the existing expense.
type ExpenseForm struct {
	ID          int64
	Amount      string
	Category    string
	Description string
	Date        string
}

// Parse validates the form and returns the expense it describes.
// The ID is not set. An empty date means today.
func (f ExpenseForm) Parse(now time.Time) (Expense, error) {
	if err := checkID(f.ID, now); err != nil {
		return Expense{}, err
	}

	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return Expense{}, err
	}

	category := strings.TrimSpace(f.Category)
	if !IsExpenseCategory(category) {
		return Expense{}, fmt.Errorf("%w: %q", ErrExpenseCategoryUnknown, category)
	}

	date, err := parseRecordDate(f.Date, now)
	if err != nil {
		return Expense{}, err
	}

	return Expense{
		Amount:      amount,
		Category:    category,
		Description: strings.TrimSpace(f.Description),
		Date:        date,
	}, nil
}

// IncomeForm is the unvalidated input for new income.
type IncomeForm struct {
	ID          int64
	Amount      string
	Source      string
	Description string
	Date        string
}

// Parse validates the form and returns the income it describes.
func (f IncomeForm) Parse(now time.Time) (Income, error) {
	if err := checkID(f.ID, now); err != nil {
		return Income{}, err
	}

	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return Income{}, err
	}

	source := strings.TrimSpace(f.Source)
	if !IsIncomeSource(source) {
		return Income{}, fmt.Errorf("%w: %q", ErrIncomeSourceUnknown, source)
	}

	date, err := parseRecordDate(f.Date, now)
	if err != nil {
		return Income{}, err
	}

	return Income{
		Amount:      amount,
		Source:      source,
		Description: strings.TrimSpace(f.Description),
		Date:        date,
	}, nil
}

// maxIDLead is how far ahead of the clock a client supplied id may be.
const maxIDLead = 24 * time.Hour

// checkID accepts zero, which means a new id is generated, and ids that fit the
// millisecond clock. Anything further ahead would push the id sequence towards overflow.
func checkID(id int64, now time.Time) error {
	if id == 0 {
		return nil
	}

	if id < 0 || id > now.Add(maxIDLead).UnixMilli() {
		return fmt.Errorf("%w: %d", ErrIDInvalid, id)
	}

	return nil
}

func parseRecordDate(s string, now time.Time) (string, error) {
	if strings.TrimSpace(s) == "" {
		return types.FormatDate(now), nil
	}

	date, err := types.ParseDate(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrDateInvalid, s)
	}

	return date, nil
}
