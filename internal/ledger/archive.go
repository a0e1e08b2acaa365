package ledger

import (
	"context"
	"strings"

	"github.com/goals-wallet/backend/internal/finance"
	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/store"
	"github.com/goals-wallet/backend/internal/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// ArchiveMonth moves the live records of a month into the month's archive.
//
// Records archived earlier for the same month are kept and the totals are
// recomputed. The archive and both live collections are written together.
// With no live records left for the month, an existing archive is returned
// unchanged. A month without any records gets an empty archive.
func (m *Manager) ArchiveMonth(ctx context.Context, month types.Month) (models.MonthlyArchive, error) {
	if month.IsZero() {
		return models.MonthlyArchive{}, models.ErrMonthInvalid
	}

	var archive models.MonthlyArchive
	err := m.mutate(ctx, func(next *state) (change, error) {
		expenses := finance.FilterExpensesByMonth(next.expenses, month)
		income := finance.FilterIncomeByMonth(next.income, month)

		i := archiveIndex(*next, month)
		if i >= 0 && len(expenses) == 0 && len(income) == 0 {
			archive = next.archives[i]
			return change{}, nil
		}

		if i >= 0 {
			expenses = append(append([]models.Expense(nil), next.archives[i].Expenses...), expenses...)
			income = append(append([]models.Income(nil), next.archives[i].Income...), income...)
		}

		archive = finance.NewArchive(month, expenses, income)
		archive.CreatedAt = m.now()

		if i >= 0 {
			next.archives[i] = archive
		} else {
			next.archives = append(next.archives, archive)
			slices.SortFunc(next.archives, func(a, b models.MonthlyArchive) int {
				return strings.Compare(a.Month.String(), b.Month.String())
			})
		}

		next.expenses = slices.DeleteFunc(next.expenses, func(e models.Expense) bool { return month.Contains(e.Date) })
		next.income = slices.DeleteFunc(next.income, func(in models.Income) bool { return month.Contains(in.Date) })

		return change{keys: []store.Key{store.KeyMonthlyArchives, store.KeyExpenses, store.KeyIncome}}, nil
	})
	if err != nil {
		return models.MonthlyArchive{}, err
	}

	log.Debug().Str("month", month.String()).Int("expenses", len(archive.Expenses)).Int("income", len(archive.Income)).Msg("archived month")
	return archive, nil
}

func archiveIndex(s state, month types.Month) int {
	return slices.IndexFunc(s.archives, func(a models.MonthlyArchive) bool { return a.Month.Equal(month) })
}
