package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goals-wallet/backend/internal/finance"
	"github.com/goals-wallet/backend/internal/httputil"
	"github.com/goals-wallet/backend/internal/models"
	"github.com/shopspring/decimal"
)

// DepositEditable is the request body for a savings deposit.
type DepositEditable struct {
	ID          int64           `json:"id,omitempty" example:"1735689600000"`
	Amount      decimal.Decimal `json:"amount" example:"100"`
	Description string          `json:"description" example:"Birthday money"`
	Date        string          `json:"date" example:"2025-01-10"` // YYYY-MM-DD, defaults to today
}

type SavingsListResponse struct {
	Data []models.SavingsEntry `json:"data"`
}

type WalletResponse struct {
	Data finance.Wallet `json:"data"`
}

func (co Controller) RegisterSavingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSavings)
	r.GET("", co.GetSavings)
	r.POST("", co.CreateDeposit)
}

func (co Controller) RegisterWalletRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsWallet)
	r.GET("", co.GetWallet)
}

// OptionsSavings returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Savings
//	@Success		204
//	@Router			/v1/savings [options]
func OptionsSavings(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// GetSavings returns the savings ledger
//
//	@Summary		Get savings ledger
//	@Description	Returns all deposits and allocations in the order they happened
//	@Tags			Savings
//	@Produce		json
//	@Success		200	{object}	SavingsListResponse
//	@Router			/v1/savings [get]
func (co Controller) GetSavings(c *gin.Context) {
	c.JSON(http.StatusOK, SavingsListResponse{Data: co.Ledger.Savings()})
}

// CreateDeposit records a savings deposit
//
//	@Summary		Deposit savings
//	@Description	Records an expense in the Savings category, which deposits into the goals wallet
//	@Tags			Savings
//	@Produce		json
//	@Success		201		{object}	ExpenseResponse
//	@Failure		400		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			deposit	body		DepositEditable	true	"Deposit"
//	@Router			/v1/savings [post]
func (co Controller) CreateDeposit(c *gin.Context) {
	var editable DepositEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abort(c, err)
		return
	}

	expense, err := co.Ledger.RecordSavingsDeposit(c.Request.Context(), models.ExpenseForm{
		ID:          editable.ID,
		Amount:      editable.Amount.String(),
		Description: editable.Description,
		Date:        editable.Date,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Data: expense})
}

// OptionsWallet returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Savings
//	@Success		204
//	@Router			/v1/wallet [options]
func OptionsWallet(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetWallet returns the goals wallet
//
//	@Summary		Get goals wallet
//	@Description	Returns the total deposited, the total allocated and the balance available for goals
//	@Tags			Savings
//	@Produce		json
//	@Success		200	{object}	WalletResponse
//	@Router			/v1/wallet [get]
func (co Controller) GetWallet(c *gin.Context) {
	c.JSON(http.StatusOK, WalletResponse{Data: co.Ledger.Wallet()})
}
