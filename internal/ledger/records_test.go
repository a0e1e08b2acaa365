package ledger_test

import (
	"math"
	"sync"
	"time"

	"github.com/goals-wallet/backend/internal/ledger"
	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/store"
	"github.com/goals-wallet/backend/internal/types"
	"golang.org/x/exp/slices"
)

var january = types.NewMonth(2025, time.January)

func (suite *TestSuiteStandard) TestScenarioA() {
	suite.loadScenarioA()

	view := suite.manager.Month(january)
	suite.assertDecimal("50", view.Report.TotalSpent)
	suite.assertDecimal("1000", view.Report.TotalIncome)
	suite.assertDecimal("950", view.Report.NetAmount)
	suite.assertDecimal("100", suite.manager.Wallet().Balance)
}

func (suite *TestSuiteStandard) TestSavingsExpenseAddsDeposit() {
	expense, err := suite.manager.SubmitExpense(suite.ctx, models.ExpenseForm{Amount: "12.5", Category: "Savings", Description: "Piggy bank", Date: "2025-01-03"})
	suite.Require().Nil(err)

	entries := suite.manager.Savings()
	suite.Require().Len(entries, 1)
	suite.Assert().False(entries[0].IsAllocation())
	suite.Assert().True(expense.Amount.Equal(entries[0].Amount))
	suite.Assert().Equal("Piggy bank", entries[0].Description)
	suite.Assert().Equal("2025-01-03", entries[0].Date)
}

func (suite *TestSuiteStandard) TestRecordSavingsDeposit() {
	expense, err := suite.manager.RecordSavingsDeposit(suite.ctx, models.ExpenseForm{Amount: "20", Category: "Food"})
	suite.Require().Nil(err)

	suite.Assert().Equal(models.CategorySavings, expense.Category)
	suite.Assert().Equal("2025-01-15", expense.Date)
	suite.Assert().Equal("Savings deposit", suite.manager.Savings()[0].Description)
	suite.assertDecimal("20", suite.manager.Wallet().Balance)
}

func (suite *TestSuiteStandard) TestSubmitExpenseIdempotentByID() {
	form := models.ExpenseForm{ID: 1736899200000, Amount: "100", Category: "Savings", Date: "2025-01-10"}

	first, err := suite.manager.SubmitExpense(suite.ctx, form)
	suite.Require().Nil(err)
	second, err := suite.manager.SubmitExpense(suite.ctx, form)
	suite.Require().Nil(err)

	suite.Assert().Equal(first, second)
	suite.Assert().Equal(int64(1736899200000), first.ID)
	suite.Assert().Len(suite.manager.Expenses(), 1)
	suite.Assert().Len(suite.manager.Savings(), 1)
	suite.assertDecimal("100", suite.manager.Wallet().Balance)
}

func (suite *TestSuiteStandard) TestSubmitIncomeIdempotentByID() {
	form := models.IncomeForm{ID: 99, Amount: "10", Source: "Gift"}

	_, err := suite.manager.SubmitIncome(suite.ctx, form)
	suite.Require().Nil(err)
	_, err = suite.manager.SubmitIncome(suite.ctx, form)
	suite.Require().Nil(err)

	suite.Assert().Len(suite.manager.Income(), 1)
}

func (suite *TestSuiteStandard) TestSubmitValidation() {
	_, err := suite.manager.SubmitExpense(suite.ctx, models.ExpenseForm{Amount: "-3", Category: "Food"})
	suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)

	_, err = suite.manager.SubmitIncome(suite.ctx, models.IncomeForm{Amount: "3", Source: "Crypto"})
	suite.Assert().ErrorIs(err, models.ErrIncomeSourceUnknown)

	suite.Assert().Empty(suite.manager.Expenses())
	suite.Assert().Empty(suite.manager.Income())
}

func (suite *TestSuiteStandard) TestIDsAreUnique() {
	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		e, err := suite.manager.SubmitExpense(suite.ctx, models.ExpenseForm{Amount: "1", Category: "Savings"})
		suite.Require().Nil(err)
		suite.Assert().False(seen[e.ID])
		seen[e.ID] = true
	}

	for _, s := range suite.manager.Savings() {
		suite.Assert().False(seen[s.ID], "ledger ids do not collide with expense ids")
		seen[s.ID] = true
	}
}

func (suite *TestSuiteStandard) TestClientIDOutOfRange() {
	before := suite.createGoal("10")

	_, err := suite.manager.SubmitExpense(suite.ctx, models.ExpenseForm{ID: -5, Amount: "1", Category: "Food"})
	suite.Assert().ErrorIs(err, models.ErrValidation)

	_, err = suite.manager.SubmitExpense(suite.ctx, models.ExpenseForm{ID: math.MaxInt64, Amount: "1", Category: "Savings"})
	suite.Assert().ErrorIs(err, models.ErrIDInvalid)

	_, err = suite.manager.SubmitIncome(suite.ctx, models.IncomeForm{ID: math.MaxInt64, Amount: "1", Source: "Gift"})
	suite.Assert().ErrorIs(err, models.ErrIDInvalid)

	suite.Assert().Empty(suite.manager.Expenses())
	suite.Assert().Empty(suite.manager.Income())
	suite.Assert().Empty(suite.manager.Savings())

	after := suite.createGoal("20")
	suite.Assert().Greater(after.ID, before.ID, "rejected ids do not advance the sequence")
	suite.Assert().LessOrEqual(after.ID, now.UnixMilli()+1)
}

func (suite *TestSuiteStandard) TestDeleteRecords() {
	suite.loadScenarioA()

	expenses := suite.manager.Expenses()
	suite.Require().Nil(suite.manager.DeleteExpense(suite.ctx, expenses[0].ID))
	suite.Assert().Len(suite.manager.Expenses(), 1)

	income := suite.manager.Income()
	suite.Require().Nil(suite.manager.DeleteIncome(suite.ctx, income[0].ID))
	suite.Assert().Empty(suite.manager.Income())

	// Missing ids are no-ops
	suite.Assert().Nil(suite.manager.DeleteExpense(suite.ctx, 1))
	suite.Assert().Nil(suite.manager.DeleteIncome(suite.ctx, 1))
}

func (suite *TestSuiteStandard) TestPersistenceFailureKeepsState() {
	suite.loadScenarioA()
	goal := suite.createGoal("40")
	before := suite.manager.Snapshot()
	eventsBefore := len(suite.events.events)

	suite.gateway.fail = true

	_, err := suite.manager.SubmitExpense(suite.ctx, models.ExpenseForm{Amount: "5", Category: "Food"})
	suite.Assert().ErrorIs(err, models.ErrPersistence)

	_, err = suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("40"))
	suite.Assert().ErrorIs(err, models.ErrPersistence)

	_, err = suite.manager.ArchiveMonth(suite.ctx, january)
	suite.Assert().ErrorIs(err, models.ErrPersistence)

	suite.Assert().ErrorIs(suite.manager.DeleteGoal(suite.ctx, goal.ID), models.ErrPersistence)

	suite.Assert().Equal(before, suite.manager.Snapshot())
	suite.Assert().Len(suite.events.events, eventsBefore, "no events for failed writes")

	// Recovering the store makes the same operation succeed
	suite.gateway.fail = false
	updated, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("40"))
	suite.Require().Nil(err)
	suite.Assert().True(updated.IsCompleted)
}

func (suite *TestSuiteStandard) TestChangedEventKeys() {
	_, err := suite.manager.SubmitExpense(suite.ctx, models.ExpenseForm{Amount: "5", Category: "Savings"})
	suite.Require().Nil(err)

	suite.Require().Len(suite.events.events, 1)
	e := suite.events.events[0]
	suite.Assert().Equal(ledger.EventChanged, e.Type)
	suite.Assert().ElementsMatch([]store.Key{store.KeyExpenses, store.KeySavings}, e.Keys)
}

func (suite *TestSuiteStandard) TestDefaultGoalsSeeded() {
	goals := suite.manager.Goals()
	suite.Require().Len(goals, 2)
	suite.Assert().Equal("Emergency Fund", goals[0].Title)
	suite.Assert().Equal("Vacation Fund", goals[1].Title)

	_, ok, err := suite.gateway.Get(suite.ctx, store.KeyGoals)
	suite.Require().Nil(err)
	suite.Assert().True(ok, "default goals are persisted")

	// Deleted defaults are not seeded again
	for _, g := range goals {
		suite.Require().Nil(suite.manager.DeleteGoal(suite.ctx, g.ID))
	}

	reloaded, err := ledger.New(suite.ctx, suite.gateway)
	suite.Require().Nil(err)
	suite.Assert().Empty(reloaded.Goals())
}

func (suite *TestSuiteStandard) TestReload() {
	suite.loadScenarioA()
	goal := suite.createGoal("60")
	_, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("60"))
	suite.Require().Nil(err)
	_, err = suite.manager.ArchiveMonth(suite.ctx, january)
	suite.Require().Nil(err)

	reloaded, err := ledger.New(suite.ctx, suite.gateway, ledger.WithClock(func() time.Time { return now }))
	suite.Require().Nil(err)

	suite.Assert().True(suite.manager.Wallet().Balance.Equal(reloaded.Wallet().Balance))
	suite.assertDecimal("60", reloaded.Wallet().TotalAllocated)
	suite.Assert().Len(reloaded.Archives(), 1)
	suite.Assert().Len(reloaded.Goals(), 3)

	// New ids continue after the loaded ones
	e, err := reloaded.SubmitExpense(suite.ctx, models.ExpenseForm{Amount: "1", Category: "Food"})
	suite.Require().Nil(err)
	for _, s := range reloaded.Savings() {
		suite.Assert().Greater(e.ID, s.ID)
	}
}

func (suite *TestSuiteStandard) TestLoadCorruptCollection() {
	suite.Require().Nil(suite.gateway.Set(suite.ctx, store.KeyExpenses, []byte(`{"not":"a list"}`)))

	_, err := ledger.New(suite.ctx, suite.gateway)
	suite.Assert().ErrorIs(err, models.ErrPersistence)
}

func (suite *TestSuiteStandard) TestLoadUnavailableStore() {
	gateway := store.NewMemory()
	suite.Require().Nil(gateway.Close())

	_, err := ledger.New(suite.ctx, gateway)
	suite.Assert().ErrorIs(err, models.ErrPersistence)
	suite.Assert().ErrorIs(err, store.ErrUnavailable)
}

func (suite *TestSuiteStandard) TestEventsFollowCommitOrder() {
	entered := make(chan struct{})
	release := make(chan struct{})

	var (
		mu    sync.Mutex
		order [][]store.Key
		once  sync.Once
	)

	unsubscribe := suite.manager.Subscribe(func(e ledger.Event) {
		if e.Type != ledger.EventChanged {
			return
		}

		if slices.Contains(e.Keys, store.KeyExpenses) {
			once.Do(func() {
				close(entered)
				<-release
			})
		}

		mu.Lock()
		defer mu.Unlock()
		order = append(order, e.Keys)
	})
	defer unsubscribe()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		_, err := suite.manager.SubmitExpense(suite.ctx, models.ExpenseForm{Amount: "5", Category: "Food"})
		suite.Assert().Nil(err)
	}()

	<-entered

	go func() {
		defer wg.Done()
		_, err := suite.manager.SubmitIncome(suite.ctx, models.IncomeForm{Amount: "10", Source: "Gift"})
		suite.Assert().Nil(err)
	}()

	// The income is committed while the expense notification is still running
	suite.Eventually(func() bool { return len(suite.manager.Income()) == 1 }, time.Second, time.Millisecond)

	close(release)
	wg.Wait()

	suite.Require().Len(order, 2)
	suite.Assert().Equal([]store.Key{store.KeyExpenses}, order[0])
	suite.Assert().Equal([]store.Key{store.KeyIncome}, order[1])
}
