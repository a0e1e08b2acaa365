package ledger

import (
	"context"

	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/store"
	"golang.org/x/exp/slices"
)

// SubmitExpense records a new expense.
//
// A Savings expense also adds a deposit of the same amount to the savings
// ledger, both are written together. If the form carries the id of an
// expense that already exists, that expense is returned and nothing changes.
func (m *Manager) SubmitExpense(ctx context.Context, form models.ExpenseForm) (models.Expense, error) {
	expense, err := form.Parse(m.now())
	if err != nil {
		return models.Expense{}, err
	}

	err = m.mutate(ctx, func(next *state) (change, error) {
		if existing, ok := findExpense(*next, form.ID); ok {
			expense = existing
			return change{}, nil
		}

		expense.ID = m.newID(form.ID)
		next.expenses = append(next.expenses, expense)

		if !expense.IsSavings() {
			return change{keys: []store.Key{store.KeyExpenses}}, nil
		}

		description := expense.Description
		if description == "" {
			description = "Savings deposit"
		}

		next.savings = append(next.savings, models.SavingsEntry{
			ID:          m.ids.Next(),
			Amount:      expense.Amount,
			Description: description,
			Date:        expense.Date,
		})

		return change{keys: []store.Key{store.KeyExpenses, store.KeySavings}}, nil
	})
	if err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

// RecordSavingsDeposit records a Savings expense and its ledger deposit.
func (m *Manager) RecordSavingsDeposit(ctx context.Context, form models.ExpenseForm) (models.Expense, error) {
	form.Category = models.CategorySavings
	return m.SubmitExpense(ctx, form)
}

// SubmitIncome records new income. Like SubmitExpense, submitting an
// existing id again returns the stored income.
func (m *Manager) SubmitIncome(ctx context.Context, form models.IncomeForm) (models.Income, error) {
	income, err := form.Parse(m.now())
	if err != nil {
		return models.Income{}, err
	}

	err = m.mutate(ctx, func(next *state) (change, error) {
		if existing, ok := findIncome(*next, form.ID); ok {
			income = existing
			return change{}, nil
		}

		income.ID = m.newID(form.ID)
		next.income = append(next.income, income)
		return change{keys: []store.Key{store.KeyIncome}}, nil
	})
	if err != nil {
		return models.Income{}, err
	}

	return income, nil
}

// DeleteExpense removes a live expense. Unknown ids are ignored.
//
// Ledger entries are never removed, deleting a Savings expense lowers the
// wallet balance.
func (m *Manager) DeleteExpense(ctx context.Context, id int64) error {
	return m.mutate(ctx, func(next *state) (change, error) {
		i := slices.IndexFunc(next.expenses, func(e models.Expense) bool { return e.ID == id })
		if i < 0 {
			return change{}, nil
		}

		next.expenses = slices.Delete(next.expenses, i, i+1)
		return change{keys: []store.Key{store.KeyExpenses}}, nil
	})
}

// DeleteIncome removes live income. Unknown ids are ignored.
func (m *Manager) DeleteIncome(ctx context.Context, id int64) error {
	return m.mutate(ctx, func(next *state) (change, error) {
		i := slices.IndexFunc(next.income, func(in models.Income) bool { return in.ID == id })
		if i < 0 {
			return change{}, nil
		}

		next.income = slices.Delete(next.income, i, i+1)
		return change{keys: []store.Key{store.KeyIncome}}, nil
	})
}

// newID returns requested if set, a new id otherwise.
func (m *Manager) newID(requested int64) int64 {
	if requested == 0 {
		return m.ids.Next()
	}

	m.ids.Observe(requested)
	return requested
}

// findExpense looks for the expense in the live collection and in the archives.
func findExpense(s state, id int64) (models.Expense, bool) {
	if id == 0 {
		return models.Expense{}, false
	}

	if i := slices.IndexFunc(s.expenses, func(e models.Expense) bool { return e.ID == id }); i >= 0 {
		return s.expenses[i], true
	}

	for _, a := range s.archives {
		if i := slices.IndexFunc(a.Expenses, func(e models.Expense) bool { return e.ID == id }); i >= 0 {
			return a.Expenses[i], true
		}
	}

	return models.Expense{}, false
}

// findIncome looks for the income in the live collection and in the archives.
func findIncome(s state, id int64) (models.Income, bool) {
	if id == 0 {
		return models.Income{}, false
	}

	if i := slices.IndexFunc(s.income, func(in models.Income) bool { return in.ID == id }); i >= 0 {
		return s.income[i], true
	}

	for _, a := range s.archives {
		if i := slices.IndexFunc(a.Income, func(in models.Income) bool { return in.ID == id }); i >= 0 {
			return a.Income[i], true
		}
	}

	return models.Income{}, false
}
