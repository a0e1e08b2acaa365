package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/goals-wallet/backend/internal/controllers/v1"
	"github.com/goals-wallet/backend/test"
)

func (suite *TestSuiteStandard) TestGetMonths() {
	suite.loadJanuary()
	suite.createExpense(v1.ExpenseEditable{Amount: d("9"), Category: "Gas", Date: "2024-11-20"})

	r := suite.request(http.MethodGet, "/v1/months", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var months v1.MonthListResponse
	test.DecodeResponse(suite.T(), &r, &months)

	suite.Require().Len(months.Data.WithEntries, 2)
	suite.Assert().Equal("2024-11", months.Data.WithEntries[0].String())
	suite.Assert().Equal("2025-01", months.Data.WithEntries[1].String())

	suite.Require().Len(months.Data.Recent, 12)
	suite.Assert().Equal("2024-02", months.Data.Recent[0].String())
	suite.Assert().Equal("2025-01", months.Data.Recent[11].String())
}

func (suite *TestSuiteStandard) TestGetMonth() {
	suite.loadJanuary()

	r := suite.request(http.MethodGet, "/v1/months/2025-01", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var month v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &month)
	suite.Assert().True(month.Data.Current)
	suite.Assert().False(month.Data.Archived)
	suite.Assert().Equal("January 2025", month.Data.Name)
	suite.assertDecimal("950", month.Data.Report.NetAmount)
	suite.Require().NotNil(month.Data.Projection)

	r = suite.request(http.MethodGet, "/v1/months/2024-06", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	var past v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &past)
	suite.Assert().Nil(past.Data.Projection)
	suite.Assert().Empty(past.Data.Expenses)

	r = suite.request(http.MethodGet, "/v1/months/June", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestViewingMonth() {
	r := suite.request(http.MethodGet, "/v1/viewing-month", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var viewing v1.ViewingMonthResponse
	test.DecodeResponse(suite.T(), &r, &viewing)
	suite.Assert().Equal("2025-01", viewing.Data.Month.String())

	r = suite.request(http.MethodPut, "/v1/viewing-month", map[string]string{"month": "2024-12"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodGet, "/v1/overview", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	var overview v1.OverviewResponse
	test.DecodeResponse(suite.T(), &r, &overview)
	suite.Assert().Equal("2024-12", overview.Data.ViewingMonth.Month.String())

	r = suite.request(http.MethodPut, "/v1/viewing-month", map[string]string{})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodPut, "/v1/viewing-month", map[string]string{"month": "december"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	suite.Assert().Equal("2024-12", suite.manager.ViewingMonth().String())
}

func (suite *TestSuiteStandard) TestGetOverview() {
	suite.loadJanuary()

	r := suite.request(http.MethodGet, "/v1/overview", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var overview v1.OverviewResponse
	test.DecodeResponse(suite.T(), &r, &overview)
	suite.assertDecimal("100", overview.Data.Wallet.Balance)
	suite.Assert().Len(overview.Data.Goals, 2)
	suite.assertDecimal("50", overview.Data.ViewingMonth.Report.TotalSpent)
}

func (suite *TestSuiteStandard) TestGetCatalog() {
	r := suite.request(http.MethodGet, "/v1/catalog", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var catalog v1.CatalogResponse
	test.DecodeResponse(suite.T(), &r, &catalog)
	suite.Assert().Contains(catalog.Data.ExpenseCategories, "Savings")
	suite.Assert().Contains(catalog.Data.IncomeSources, "Salary")
	suite.Assert().Len(catalog.Data.GoalCategories, 6)
	suite.Assert().Contains(catalog.Data.GoalColors, "#6366f1")
	suite.Assert().Contains(catalog.Data.GoalIcons, "flag-outline")
	suite.Assert().Equal("#ff6b6b", catalog.Data.Colors["Food"].Text)
	suite.Assert().Contains(catalog.Data.Colors, "Freelance")
}

func (suite *TestSuiteStandard) TestOptions() {
	goal := suite.createGoal(v1.GoalEditable{TargetAmount: d("10")})
	goalPath := "/v1/goals/" + fmt.Sprint(goal.Data.ID)

	tests := []struct {
		path   string
		status int
		allow  string
	}{
		{"/v1", http.StatusNoContent, "OPTIONS, GET"},
		{"/v1/expenses", http.StatusNoContent, "OPTIONS, GET, POST"},
		{"/v1/expenses/1", http.StatusNoContent, "OPTIONS, GET, DELETE"},
		{"/v1/income", http.StatusNoContent, "OPTIONS, GET, POST"},
		{"/v1/goals", http.StatusNoContent, "OPTIONS, GET, POST"},
		{goalPath, http.StatusNoContent, "OPTIONS, GET, PATCH, DELETE"},
		{goalPath + "/allocations", http.StatusNoContent, "OPTIONS, POST"},
		{goalPath + "/complete", http.StatusNoContent, "OPTIONS, POST"},
		{"/v1/goals/1", http.StatusNotFound, ""},
		{"/v1/goals/abc/complete", http.StatusBadRequest, ""},
		{"/v1/savings", http.StatusNoContent, "OPTIONS, GET, POST"},
		{"/v1/wallet", http.StatusNoContent, "OPTIONS, GET"},
		{"/v1/archives", http.StatusNoContent, "OPTIONS, GET, POST"},
		{"/v1/archives/2025-01/export", http.StatusNoContent, "OPTIONS, GET"},
		{"/v1/months", http.StatusNoContent, "OPTIONS, GET"},
		{"/v1/viewing-month", http.StatusNoContent, "OPTIONS, GET, PUT"},
		{"/v1/overview", http.StatusNoContent, "OPTIONS, GET"},
		{"/v1/catalog", http.StatusNoContent, "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.Run(tt.path, func() {
			r := suite.request(http.MethodOptions, tt.path, nil)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
			suite.Assert().Equal(tt.allow, r.Header().Get("allow"))
		})
	}
}
