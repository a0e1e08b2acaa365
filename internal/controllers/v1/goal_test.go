package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/goals-wallet/backend/internal/controllers/v1"
	"github.com/goals-wallet/backend/test"
)

func (suite *TestSuiteStandard) TestGetGoalsDefaults() {
	r := suite.request(http.MethodGet, "/v1/goals", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var goals v1.GoalListResponse
	test.DecodeResponse(suite.T(), &r, &goals)
	suite.Require().Len(goals.Data, 2)
	suite.Assert().Equal("Emergency Fund", goals.Data[0].Title)
	suite.assertDecimal("0", goals.Data[0].Progress)
	suite.assertDecimal("5000", goals.Data[0].Remaining)
}

func (suite *TestSuiteStandard) TestGoalLifecycle() {
	created := suite.createGoal(v1.GoalEditable{Title: "Bike", TargetAmount: d("40"), Category: "purchase", TargetDate: "2025-06-01"})
	suite.Assert().Equal("Bike", created.Data.Title)
	suite.Assert().Equal("2025-06-01", created.Data.TargetDate)
	suite.Assert().False(created.Data.IsCompleted)
	suite.assertDecimal("40", created.Data.Remaining)

	path := fmt.Sprintf("/v1/goals/%d", created.Data.ID)

	r := suite.request(http.MethodPatch, path, map[string]any{"title": "Road bike"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("Road bike", updated.Data.Title)
	suite.assertDecimal("40", updated.Data.TargetAmount)
	suite.Assert().Equal("purchase", string(updated.Data.Category))
	suite.Assert().Equal("2025-06-01", updated.Data.TargetDate)

	r = suite.request(http.MethodGet, path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	var fetched v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &fetched)
	suite.Assert().Equal("Road bike", fetched.Data.Title)

	r = suite.request(http.MethodDelete, path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodPatch, path, map[string]any{"title": "Gone"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGoalValidation() {
	tests := []struct {
		name string
		goal v1.GoalEditable
	}{
		{"No target", v1.GoalEditable{Title: "Bike"}},
		{"Negative target", v1.GoalEditable{Title: "Bike", TargetAmount: d("-1")}},
		{"Blank title", v1.GoalEditable{Title: "   ", TargetAmount: d("10")}},
		{"Unknown category", v1.GoalEditable{Title: "Bike", TargetAmount: d("10"), Category: "yacht"}},
		{"Unknown color", v1.GoalEditable{Title: "Bike", TargetAmount: d("10"), Color: "#000000"}},
		{"Unknown icon", v1.GoalEditable{Title: "Bike", TargetAmount: d("10"), Icon: "rocket"}},
		{"Broken target date", v1.GoalEditable{Title: "Bike", TargetAmount: d("10"), TargetDate: "June"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.engine, http.MethodPost, "http://example.com/v1/goals", tt.goal)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}

	suite.Assert().Len(suite.manager.Goals(), 2)
}

func (suite *TestSuiteStandard) TestGoalPatchValidation() {
	goal := suite.createGoal(v1.GoalEditable{TargetAmount: d("40")})

	r := suite.request(http.MethodPatch, fmt.Sprintf("/v1/goals/%d", goal.Data.ID), map[string]any{"targetAmount": 0})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	stored, err := suite.manager.Goal(goal.Data.ID)
	suite.Require().Nil(err)
	suite.assertDecimal("40", stored.TargetAmount)
}

func (suite *TestSuiteStandard) TestAllocateInsufficientBalance() {
	goal := suite.createGoal(v1.GoalEditable{TargetAmount: d("300")})
	suite.createExpense(v1.ExpenseEditable{Amount: d("100"), Category: "Savings"})

	r := suite.request(http.MethodPost, fmt.Sprintf("/v1/goals/%d/allocations", goal.Data.ID), v1.AllocationEditable{Amount: d("300")})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnprocessableEntity)

	var body struct {
		Error          string `json:"error"`
		RequiredAmount string `json:"requiredAmount"`
		CurrentBalance string `json:"currentBalance"`
		Shortfall      string `json:"shortfall"`
	}
	test.DecodeResponse(suite.T(), &r, &body)
	suite.Assert().Equal("300", body.RequiredAmount)
	suite.Assert().Equal("100", body.CurrentBalance)
	suite.Assert().Equal("200", body.Shortfall)
	suite.Assert().Contains(body.Error, "add 200.00 in savings")

	suite.assertDecimal("100", suite.manager.Wallet().Balance)
}

func (suite *TestSuiteStandard) TestAllocateAndComplete() {
	goal := suite.createGoal(v1.GoalEditable{TargetAmount: d("40")})
	suite.createExpense(v1.ExpenseEditable{Amount: d("100"), Category: "Savings"})

	path := fmt.Sprintf("/v1/goals/%d", goal.Data.ID)

	r := suite.request(http.MethodPost, path+"/allocations", v1.AllocationEditable{Amount: d("30")})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var allocated v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &allocated)
	suite.assertDecimal("30", allocated.Data.CurrentAmount)
	suite.assertDecimal("75", allocated.Data.Progress)
	suite.assertDecimal("10", allocated.Data.Remaining)
	suite.Assert().False(allocated.Data.IsCompleted)

	r = suite.request(http.MethodPost, path+"/complete", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var completed v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &completed)
	suite.Assert().True(completed.Data.IsCompleted)
	suite.assertDecimal("100", completed.Data.Progress)

	r = suite.request(http.MethodGet, "/v1/wallet", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var wallet v1.WalletResponse
	test.DecodeResponse(suite.T(), &r, &wallet)
	suite.assertDecimal("100", wallet.Data.TotalSavingsDeposited)
	suite.assertDecimal("40", wallet.Data.TotalAllocated)
	suite.assertDecimal("60", wallet.Data.Balance)
}

func (suite *TestSuiteStandard) TestAllocateValidation() {
	goal := suite.createGoal(v1.GoalEditable{TargetAmount: d("40")})
	path := fmt.Sprintf("/v1/goals/%d/allocations", goal.Data.ID)

	r := suite.request(http.MethodPost, path, v1.AllocationEditable{})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodPost, path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodPost, "/v1/goals/1/allocations", v1.AllocationEditable{Amount: d("5")})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodPost, "/v1/goals/1/complete", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCompleteWithoutBalance() {
	goal := suite.createGoal(v1.GoalEditable{TargetAmount: d("40")})

	r := suite.request(http.MethodPost, fmt.Sprintf("/v1/goals/%d/complete", goal.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnprocessableEntity)
}

func (suite *TestSuiteStandard) TestSavings() {
	r := suite.request(http.MethodPost, "/v1/savings", v1.DepositEditable{Amount: d("20"), Description: "Birthday money"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var deposit v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &deposit)
	suite.Assert().Equal("Savings", deposit.Data.Category)
	suite.Assert().Equal("2025-01-15", deposit.Data.Date)

	goal := suite.createGoal(v1.GoalEditable{TargetAmount: d("50")})
	r = suite.request(http.MethodPost, fmt.Sprintf("/v1/goals/%d/allocations", goal.Data.ID), v1.AllocationEditable{Amount: d("15")})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodGet, "/v1/savings", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var savings v1.SavingsListResponse
	test.DecodeResponse(suite.T(), &r, &savings)
	suite.Require().Len(savings.Data, 2)
	suite.Assert().Nil(savings.Data[0].AllocatedToGoal)
	suite.Require().NotNil(savings.Data[1].AllocatedToGoal)
	suite.Assert().Equal(goal.Data.ID, *savings.Data[1].AllocatedToGoal)

	r = suite.request(http.MethodPost, "/v1/savings", v1.DepositEditable{})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
