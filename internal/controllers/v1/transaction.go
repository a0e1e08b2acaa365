package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goals-wallet/backend/internal/httputil"
	"github.com/goals-wallet/backend/internal/models"
	"github.com/shopspring/decimal"
)

// ExpenseEditable is the request body for new expenses.
type ExpenseEditable struct {
	ID          int64           `json:"id,omitempty" example:"1735689600000"` // Optional. Submitting the same id twice creates the expense once
	Amount      decimal.Decimal `json:"amount" example:"12.5"`
	Category    string          `json:"category" example:"Food"`
	Description string          `json:"description" example:"Lunch"`
	Date        string          `json:"date" example:"2025-01-05"` // YYYY-MM-DD, defaults to today
}

func (e ExpenseEditable) form() models.ExpenseForm {
	return models.ExpenseForm{
		ID:          e.ID,
		Amount:      e.Amount.String(),
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
	}
}

// IncomeEditable is the request body for new income.
type IncomeEditable struct {
	ID          int64           `json:"id,omitempty" example:"1735689600000"` // Optional. Submitting the same id twice creates the income once
	Amount      decimal.Decimal `json:"amount" example:"1000"`
	Source      string          `json:"source" example:"Salary"`
	Description string          `json:"description" example:"January salary"`
	Date        string          `json:"date" example:"2025-01-01"` // YYYY-MM-DD, defaults to today
}

func (i IncomeEditable) form() models.IncomeForm {
	return models.IncomeForm{
		ID:          i.ID,
		Amount:      i.Amount.String(),
		Source:      i.Source,
		Description: i.Description,
		Date:        i.Date,
	}
}

type ExpenseQueryFilter struct {
	Month    string `form:"month" example:"2025-01"`  // Records of this month, archived ones included
	Category string `form:"category" example:"Food"`  // Exact category
	Search   string `form:"search" example:"*lunch*"` // Glob over the description, case insensitive
}

type IncomeQueryFilter struct {
	Month  string `form:"month" example:"2025-01"`  // Records of this month, archived ones included
	Source string `form:"source" example:"Salary"`  // Exact source
	Search string `form:"search" example:"*bonus*"` // Glob over the description, case insensitive
}

type ExpenseResponse struct {
	Data models.Expense `json:"data"`
}

type ExpenseListResponse struct {
	Data []models.Expense `json:"data"`
}

type IncomeResponse struct {
	Data models.Income `json:"data"`
}

type IncomeListResponse struct {
	Data []models.Income `json:"data"`
}

func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsList)
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpense)
	}
	{
		r.OPTIONS("/:id", OptionsRecord)
		r.GET("/:id", co.GetExpense)
		r.DELETE("/:id", co.DeleteExpense)
	}
}

func (co Controller) RegisterIncomeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsList)
		r.GET("", co.GetIncomeList)
		r.POST("", co.CreateIncome)
	}
	{
		r.OPTIONS("/:id", OptionsRecord)
		r.GET("/:id", co.GetIncome)
		r.DELETE("/:id", co.DeleteIncome)
	}
}

// OptionsList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Router			/v1/expenses [options]
//	@Router			/v1/income [options]
func OptionsList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsRecord returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Param			id	path	int	true	"ID of the record"
//	@Router			/v1/expenses/{id} [options]
//	@Router			/v1/income/{id} [options]
func OptionsRecord(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// GetExpenses returns expenses
//
//	@Summary		List expenses
//	@Description	Without a month, returns the live expenses. With a month, returns its archived and live expenses.
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	ExpenseListResponse
//	@Failure		400	{object}	httpError
//	@Param			month		query	string	false	"Month in YYYY-MM format"
//	@Param			category	query	string	false	"Filter by category"
//	@Param			search		query	string	false	"Glob over the description"
//	@Router			/v1/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		abort(c, httputil.ErrInvalidBody)
		return
	}

	expenses := co.Ledger.Expenses()
	if filter.Month != "" {
		month, err := parseMonth(filter.Month)
		if err != nil {
			abort(c, err)
			return
		}
		expenses = co.Ledger.Month(month).Expenses
	}

	data := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if !matches(filter.Search, e.Description) {
			continue
		}
		data = append(data, e)
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: data})
}

// CreateExpense records an expense
//
//	@Summary		Create expense
//	@Description	Records an expense. Expenses in the Savings category also deposit into the goals wallet.
//	@Tags			Transactions
//	@Produce		json
//	@Success		201		{object}	ExpenseResponse
//	@Failure		400		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			expense	body		ExpenseEditable	true	"Expense"
//	@Router			/v1/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	var editable ExpenseEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abort(c, err)
		return
	}

	expense, err := co.Ledger.SubmitExpense(c.Request.Context(), editable.form())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Data: expense})
}

// GetExpense returns a specific expense
//
//	@Summary		Get expense
//	@Description	Returns a live or archived expense
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	ExpenseResponse
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Param			id	path		int	true	"ID of the expense"
//	@Router			/v1/expenses/{id} [get]
func (co Controller) GetExpense(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}

	expense, err := co.Ledger.Expense(id)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: expense})
}

// DeleteExpense deletes a live expense
//
//	@Summary		Delete expense
//	@Description	Deletes a live expense. Unknown ids are ignored.
//	@Tags			Transactions
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		int	true	"ID of the expense"
//	@Router			/v1/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}

	if err := co.Ledger.DeleteExpense(c.Request.Context(), id); err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetIncomeList returns income
//
//	@Summary		List income
//	@Description	Without a month, returns the live income. With a month, returns its archived and live income.
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	IncomeListResponse
//	@Failure		400	{object}	httpError
//	@Param			month	query	string	false	"Month in YYYY-MM format"
//	@Param			source	query	string	false	"Filter by source"
//	@Param			search	query	string	false	"Glob over the description"
//	@Router			/v1/income [get]
func (co Controller) GetIncomeList(c *gin.Context) {
	var filter IncomeQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		abort(c, httputil.ErrInvalidBody)
		return
	}

	income := co.Ledger.Income()
	if filter.Month != "" {
		month, err := parseMonth(filter.Month)
		if err != nil {
			abort(c, err)
			return
		}
		income = co.Ledger.Month(month).Income
	}

	data := make([]models.Income, 0, len(income))
	for _, i := range income {
		if filter.Source != "" && i.Source != filter.Source {
			continue
		}
		if !matches(filter.Search, i.Description) {
			continue
		}
		data = append(data, i)
	}

	c.JSON(http.StatusOK, IncomeListResponse{Data: data})
}

// CreateIncome records income
//
//	@Summary		Create income
//	@Description	Records income
//	@Tags			Transactions
//	@Produce		json
//	@Success		201		{object}	IncomeResponse
//	@Failure		400		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			income	body		IncomeEditable	true	"Income"
//	@Router			/v1/income [post]
func (co Controller) CreateIncome(c *gin.Context) {
	var editable IncomeEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abort(c, err)
		return
	}

	income, err := co.Ledger.SubmitIncome(c.Request.Context(), editable.form())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, IncomeResponse{Data: income})
}

// GetIncome returns a specific income record
//
//	@Summary		Get income
//	@Description	Returns a live or archived income record
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	IncomeResponse
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Param			id	path		int	true	"ID of the income"
//	@Router			/v1/income/{id} [get]
func (co Controller) GetIncome(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}

	income, err := co.Ledger.IncomeRecord(id)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, IncomeResponse{Data: income})
}

// DeleteIncome deletes a live income record
//
//	@Summary		Delete income
//	@Description	Deletes a live income record. Unknown ids are ignored.
//	@Tags			Transactions
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		int	true	"ID of the income"
//	@Router			/v1/income/{id} [delete]
func (co Controller) DeleteIncome(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}

	if err := co.Ledger.DeleteIncome(c.Request.Context(), id); err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
