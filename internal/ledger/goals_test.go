package ledger_test

import (
	"errors"

	"github.com/goals-wallet/backend/internal/ledger"
	"github.com/goals-wallet/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAllocateCompletesGoal() {
	suite.loadScenarioA()
	goal := suite.createGoal("80")

	updated, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("80"))
	suite.Require().Nil(err)

	suite.assertDecimal("80", updated.CurrentAmount)
	suite.Assert().True(updated.IsCompleted)
	suite.assertDecimal("20", suite.manager.Wallet().Balance)

	completions := suite.events.completions()
	suite.Require().Len(completions, 1)
	suite.Assert().Equal(goal.ID, completions[0].ID)

	// Allocations to the completed goal do not signal again
	_, err = suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("5"))
	suite.Require().Nil(err)
	suite.Assert().Len(suite.events.completions(), 1)
}

func (suite *TestSuiteStandard) TestAllocateInsufficientBalance() {
	suite.loadScenarioA()
	first := suite.createGoal("80")
	second := suite.createGoal("500")

	_, err := suite.manager.AllocateToGoal(suite.ctx, first.ID, d("80"))
	suite.Require().Nil(err)

	before := suite.manager.Snapshot()
	_, err = suite.manager.AllocateToGoal(suite.ctx, second.ID, d("50"))

	var insufficient *models.InsufficientBalanceError
	suite.Require().True(errors.As(err, &insufficient), "wrong error: %v", err)
	suite.Assert().ErrorIs(err, models.ErrInsufficientBalance)
	suite.assertDecimal("50", insufficient.RequiredAmount)
	suite.assertDecimal("20", insufficient.CurrentBalance)
	suite.assertDecimal("30", insufficient.Shortfall)

	suite.Assert().Equal(before, suite.manager.Snapshot(), "state must not change")
}

func (suite *TestSuiteStandard) TestAllocationConservation() {
	suite.loadScenarioA()
	goal := suite.createGoal("1000")

	for _, amount := range []string{"10", "0.5", "33.33"} {
		walletBefore := suite.manager.Wallet()
		goalBefore, err := suite.manager.Goal(goal.ID)
		suite.Require().Nil(err)

		goalAfter, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d(amount))
		suite.Require().Nil(err)

		walletAfter := suite.manager.Wallet()
		suite.assertDecimal(amount, walletAfter.TotalAllocated.Sub(walletBefore.TotalAllocated))
		suite.assertDecimal(amount, goalAfter.CurrentAmount.Sub(goalBefore.CurrentAmount))
		suite.assertDecimal(amount, walletBefore.Balance.Sub(walletAfter.Balance))
	}
}

func (suite *TestSuiteStandard) TestAllocateClampsAtTarget() {
	suite.loadScenarioA()
	goal := suite.createGoal("30")

	updated, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("50"))
	suite.Require().Nil(err)

	suite.assertDecimal("30", updated.CurrentAmount)
	suite.assertDecimal("50", suite.manager.Wallet().TotalAllocated)
}

func (suite *TestSuiteStandard) TestAllocateRejectsNonPositive() {
	suite.loadScenarioA()
	goal := suite.createGoal("30")

	for _, amount := range []decimal.Decimal{decimal.Zero, d("-5")} {
		_, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, amount)
		suite.Assert().ErrorIs(err, models.ErrValidation)
	}
	suite.assertDecimal("0", suite.manager.Wallet().TotalAllocated)
}

func (suite *TestSuiteStandard) TestAllocateUnknownGoal() {
	suite.loadScenarioA()

	_, err := suite.manager.AllocateToGoal(suite.ctx, 424242, d("5"))
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Len(suite.manager.Savings(), 1, "only the deposit is in the ledger")
}

func (suite *TestSuiteStandard) TestWalletNeverNegative() {
	goal := suite.createGoal("10000")

	steps := []func() error{
		func() error {
			_, err := suite.manager.SubmitExpense(suite.ctx, models.ExpenseForm{ID: 1, Amount: "40", Category: "Savings"})
			return err
		},
		func() error {
			_, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("40"))
			return err
		},
		func() error {
			_, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("0.01"))
			return err
		},
		func() error { return suite.manager.DeleteExpense(suite.ctx, 1) },
		func() error {
			_, err := suite.manager.RecordSavingsDeposit(suite.ctx, models.ExpenseForm{Amount: "15"})
			return err
		},
	}

	for _, step := range steps {
		_ = step()
		suite.Assert().False(suite.manager.Wallet().Balance.IsNegative())
	}

	wallet := suite.manager.Wallet()
	suite.assertDecimal("15", wallet.TotalSavingsDeposited)
	suite.assertDecimal("40", wallet.TotalAllocated)
	suite.assertDecimal("0", wallet.Balance)
}

func (suite *TestSuiteStandard) TestMarkGoalCompleteAllocatesShortfall() {
	suite.loadScenarioA()
	goal := suite.createGoal("60")

	_, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("25"))
	suite.Require().Nil(err)

	completed, err := suite.manager.MarkGoalComplete(suite.ctx, goal.ID)
	suite.Require().Nil(err)

	suite.Assert().True(completed.IsCompleted)
	suite.assertDecimal("60", completed.CurrentAmount)
	suite.assertDecimal("40", suite.manager.Wallet().Balance)
	suite.Assert().Len(suite.events.completions(), 1)

	entries := suite.manager.Savings()
	last := entries[len(entries)-1]
	suite.Require().NotNil(last.AllocatedToGoal)
	suite.Assert().Equal(goal.ID, *last.AllocatedToGoal)
	suite.assertDecimal("35", last.Amount)
}

func (suite *TestSuiteStandard) TestMarkGoalCompleteInsufficientBalance() {
	suite.loadScenarioA()
	goal := suite.createGoal("130")

	before := suite.manager.Snapshot()
	_, err := suite.manager.MarkGoalComplete(suite.ctx, goal.ID)

	var insufficient *models.InsufficientBalanceError
	suite.Require().True(errors.As(err, &insufficient))
	suite.assertDecimal("130", insufficient.RequiredAmount)
	suite.assertDecimal("30", insufficient.Shortfall)
	suite.Assert().Equal(before, suite.manager.Snapshot())
	suite.Assert().Empty(suite.events.completions())
}

func (suite *TestSuiteStandard) TestMarkGoalCompleteIdempotent() {
	suite.loadScenarioA()
	goal := suite.createGoal("50")

	_, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("50"))
	suite.Require().Nil(err)

	for i := 0; i < 2; i++ {
		completed, err := suite.manager.MarkGoalComplete(suite.ctx, goal.ID)
		suite.Require().Nil(err)
		suite.Assert().True(completed.IsCompleted)
	}

	suite.Assert().Len(suite.events.completions(), 1)
	suite.assertDecimal("50", suite.manager.Wallet().TotalAllocated)
}

func (suite *TestSuiteStandard) TestUpdateGoalLowerTargetCompletes() {
	suite.loadScenarioA()
	goal := suite.createGoal("100")

	_, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("60"))
	suite.Require().Nil(err)

	updated, err := suite.manager.UpdateGoal(suite.ctx, goal.ID, models.GoalForm{Title: "Smaller", TargetAmount: "40"})
	suite.Require().Nil(err)

	suite.Assert().Equal("Smaller", updated.Title)
	suite.assertDecimal("40", updated.CurrentAmount)
	suite.Assert().True(updated.IsCompleted)
	suite.Assert().Len(suite.events.completions(), 1)
}

func (suite *TestSuiteStandard) TestUpdateGoalKeepsCompletion() {
	suite.loadScenarioA()
	goal := suite.createGoal("20")

	_, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("20"))
	suite.Require().Nil(err)

	updated, err := suite.manager.UpdateGoal(suite.ctx, goal.ID, models.GoalForm{Title: "Bigger", TargetAmount: "200", Icon: "car-outline"})
	suite.Require().Nil(err)

	suite.Assert().True(updated.IsCompleted)
	suite.assertDecimal("20", updated.CurrentAmount)
	suite.Assert().Equal("car-outline", updated.Icon)
	suite.Assert().Len(suite.events.completions(), 1)
}

func (suite *TestSuiteStandard) TestUpdateGoalValidation() {
	goal := suite.createGoal("20")

	_, err := suite.manager.UpdateGoal(suite.ctx, goal.ID, models.GoalForm{Title: "", TargetAmount: "20"})
	suite.Assert().ErrorIs(err, models.ErrGoalTitleEmpty)

	_, err = suite.manager.UpdateGoal(suite.ctx, 1234, models.GoalForm{Title: "x", TargetAmount: "20"})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDeleteGoalKeepsLedger() {
	suite.loadScenarioA()
	goal := suite.createGoal("500")

	_, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("70"))
	suite.Require().Nil(err)

	suite.Require().Nil(suite.manager.DeleteGoal(suite.ctx, goal.ID))

	_, err = suite.manager.Goal(goal.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Len(suite.manager.Savings(), 2)
	suite.assertDecimal("30", suite.manager.Wallet().Balance)

	// Deleting again is a no-op
	suite.Assert().Nil(suite.manager.DeleteGoal(suite.ctx, goal.ID))
}

func (suite *TestSuiteStandard) TestCreateGoalDefaults() {
	goal, err := suite.manager.CreateGoal(suite.ctx, models.GoalForm{Title: "Laptop", TargetAmount: "1200,50"})
	suite.Require().Nil(err)

	suite.assertDecimal("1200.5", goal.TargetAmount)
	suite.assertDecimal("0", goal.CurrentAmount)
	suite.Assert().False(goal.IsCompleted)
	suite.Assert().Equal(models.DefaultGoalColor, goal.Color)
	suite.Assert().Equal(now, goal.CreatedAt)
	suite.Assert().Len(suite.manager.Goals(), 3, "two default goals and the new one")
}

func (suite *TestSuiteStandard) TestCompletionEventCarriesGoal() {
	suite.loadScenarioA()
	goal := suite.createGoal("10")

	var received *models.Goal
	unsubscribe := suite.manager.Subscribe(func(e ledger.Event) {
		if e.Type == ledger.EventGoalCompleted {
			received = e.Goal
		}
	})

	_, err := suite.manager.AllocateToGoal(suite.ctx, goal.ID, d("10"))
	suite.Require().Nil(err)
	suite.Require().NotNil(received)
	suite.Assert().Equal(goal.ID, received.ID)

	unsubscribe()
	received = nil

	other := suite.createGoal("5")
	_, err = suite.manager.AllocateToGoal(suite.ctx, other.ID, d("5"))
	suite.Require().Nil(err)
	suite.Assert().Nil(received)
}
