package ledger

import (
	"github.com/goals-wallet/backend/internal/finance"
	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/types"
	"golang.org/x/exp/slices"
)

// Snapshot is a copy of all committed collections.
type Snapshot struct {
	Expenses []models.Expense
	Income   []models.Income
	Archives []models.MonthlyArchive
	Goals    []models.Goal
	Savings  []models.SavingsEntry
}

// MonthView is everything shown for one month.
type MonthView struct {
	Month      types.Month         `json:"month" example:"2025-01"`
	Name       string              `json:"name" example:"January 2025"`
	Current    bool                `json:"current" example:"true"`   // The calendar month of now
	Archived   bool                `json:"archived" example:"false"` // An archive exists for the month
	Expenses   []models.Expense    `json:"expenses"`
	Income     []models.Income     `json:"income"`
	Report     finance.Report      `json:"report"`
	Projection *finance.Projection `json:"projection,omitempty"` // Only for the current month
	Comparison finance.Comparison  `json:"comparison"`
}

// Overview is the view of the viewing month with the goals wallet.
type Overview struct {
	ViewingMonth MonthView      `json:"viewingMonth"`
	Wallet       finance.Wallet `json:"wallet"`
	Goals        []models.Goal  `json:"goals"`
}

// Snapshot returns a copy of the committed state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.state.clone()
	return Snapshot{
		Expenses: s.expenses,
		Income:   s.income,
		Archives: s.archives,
		Goals:    s.goals,
		Savings:  s.savings,
	}
}

// Expenses returns all live expenses.
func (m *Manager) Expenses() []models.Expense {
	return m.Snapshot().Expenses
}

// Expense returns the live or archived expense with the id.
func (m *Manager) Expense(id int64) (models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := findExpense(m.state, id)
	if !ok {
		return models.Expense{}, models.NotFound("expense", id)
	}
	return e, nil
}

// Income returns all live income.
func (m *Manager) Income() []models.Income {
	return m.Snapshot().Income
}

// IncomeRecord returns the live or archived income with the id.
func (m *Manager) IncomeRecord(id int64) (models.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := findIncome(m.state, id)
	if !ok {
		return models.Income{}, models.NotFound("income", id)
	}
	return i, nil
}

// Goals returns all goals.
func (m *Manager) Goals() []models.Goal {
	return m.Snapshot().Goals
}

// Goal returns the goal with the id.
func (m *Manager) Goal(id int64) (models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, err := goalIndex(m.state, id)
	if err != nil {
		return models.Goal{}, err
	}
	return m.state.goals[i], nil
}

// Savings returns the savings ledger.
func (m *Manager) Savings() []models.SavingsEntry {
	return m.Snapshot().Savings
}

// Archives returns all monthly archives, oldest first.
func (m *Manager) Archives() []models.MonthlyArchive {
	return m.Snapshot().Archives
}

// Archive returns the archive of the month.
func (m *Manager) Archive(month types.Month) (models.MonthlyArchive, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := archiveIndex(m.state, month)
	if i < 0 {
		return models.MonthlyArchive{}, models.NotFound("archive", month)
	}
	return m.state.archives[i], nil
}

// Wallet derives the goals wallet.
func (m *Manager) Wallet() finance.Wallet {
	s := m.Snapshot()
	return finance.NewWallet(s.Expenses, s.Archives, s.Savings)
}

// MonthsWithEntries lists the months that have records, oldest first.
func (m *Manager) MonthsWithEntries() []types.Month {
	s := m.Snapshot()
	return finance.MonthsWithEntries(s.Expenses, s.Income, s.Archives)
}

// Month builds the view of a month.
//
// Archived records of the month are read first, live records dated in the
// month are added to them.
func (m *Manager) Month(month types.Month) MonthView {
	return m.monthView(m.Snapshot(), month)
}

func (m *Manager) monthView(s Snapshot, month types.Month) MonthView {
	now := m.now()
	current := types.MonthOf(now).Equal(month)

	var expenses []models.Expense
	var income []models.Income

	archived := slices.IndexFunc(s.Archives, func(a models.MonthlyArchive) bool { return a.Month.Equal(month) })
	if archived >= 0 {
		expenses = append(expenses, s.Archives[archived].Expenses...)
		income = append(income, s.Archives[archived].Income...)
	}

	expenses = append(expenses, finance.FilterExpensesByMonth(s.Expenses, month)...)
	income = append(income, finance.FilterIncomeByMonth(s.Income, month)...)

	report := finance.MonthlyReport(month, expenses, income)

	view := MonthView{
		Month:      month,
		Name:       month.Name(),
		Current:    current,
		Archived:   archived >= 0,
		Expenses:   expenses,
		Income:     income,
		Report:     report,
		Comparison: finance.CompareMonths(finance.NewArchive(month, expenses, income), finance.PreviousArchive(s.Archives, month)),
	}

	if view.Expenses == nil {
		view.Expenses = []models.Expense{}
	}
	if view.Income == nil {
		view.Income = []models.Income{}
	}

	if current {
		projection := finance.ProjectionData(report.TotalSpent, report.TotalIncome, month.Days(), now.Day())
		view.Projection = &projection
	}

	return view
}

// SetViewingMonth selects the month shown by Overview.
func (m *Manager) SetViewingMonth(month types.Month) error {
	if month.IsZero() {
		return models.ErrViewingMonthNotSet
	}

	m.mu.Lock()
	m.viewing = month
	m.mu.Unlock()

	m.publish(Event{Type: EventChanged})
	return nil
}

// ViewingMonth returns the selected month. It starts as the current month.
func (m *Manager) ViewingMonth() types.Month {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.viewing
}

// Overview builds the view of the viewing month with the wallet and the goals.
func (m *Manager) Overview() Overview {
	s := m.Snapshot()

	return Overview{
		ViewingMonth: m.monthView(s, m.ViewingMonth()),
		Wallet:       finance.NewWallet(s.Expenses, s.Archives, s.Savings),
		Goals:        s.Goals,
	}
}

// RecentMonths returns the last n calendar months up to the current one, oldest first.
func (m *Manager) RecentMonths(n int) []types.Month {
	return finance.LastMonths(m.now(), n)
}
