// Package v1 serves the goals wallet over HTTP.
package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goals-wallet/backend/internal/httputil"
	"github.com/goals-wallet/backend/internal/ledger"
	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/types"
	"github.com/ryanuber/go-glob"
)

// Controller holds the ledger all handlers work on.
type Controller struct {
	Ledger *ledger.Manager
}

// RegisterRoutes registers all v1 resources on the group.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)

	co.RegisterExpenseRoutes(r.Group("/expenses"))
	co.RegisterIncomeRoutes(r.Group("/income"))
	co.RegisterGoalRoutes(r.Group("/goals"))
	co.RegisterSavingsRoutes(r.Group("/savings"))
	co.RegisterWalletRoutes(r.Group("/wallet"))
	co.RegisterArchiveRoutes(r.Group("/archives"))
	co.RegisterMonthRoutes(r.Group("/months"))
	co.RegisterViewingMonthRoutes(r.Group("/viewing-month"))
	co.RegisterOverviewRoutes(r.Group("/overview"))
	RegisterCatalogRoutes(r.Group("/catalog"))
}

var errLanguageInvalid = fmt.Errorf("%w: the lang parameter must be a BCP 47 language tag", models.ErrValidation)

type httpError struct {
	Error string `json:"error" example:"the amount must be larger than zero"`
}

// insufficientBalance is the 422 body. It tells the user how much more to save.
type insufficientBalance struct {
	Error          string `json:"error" example:"insufficient balance in the goals wallet: 300.00 required, 100.00 available, add 200.00 in savings"`
	RequiredAmount string `json:"requiredAmount" example:"300"`
	CurrentBalance string `json:"currentBalance" example:"100"`
	Shortfall      string `json:"shortfall" example:"200"`
}

// abort writes the error response for err.
func abort(c *gin.Context, err error) {
	var balanceErr *models.InsufficientBalanceError
	if errors.As(err, &balanceErr) {
		c.JSON(http.StatusUnprocessableEntity, insufficientBalance{
			Error:          err.Error(),
			RequiredAmount: balanceErr.RequiredAmount.String(),
			CurrentBalance: balanceErr.CurrentBalance.String(),
			Shortfall:      balanceErr.Shortfall.String(),
		})
		return
	}

	c.JSON(httputil.Status(err), httpError{
		Error: httputil.ErrorMessage(c, err),
	})
}

// parseMonth parses a month from a path or query parameter.
func parseMonth(s string) (types.Month, error) {
	month, err := types.ParseMonth(s)
	if err != nil {
		return types.Month{}, fmt.Errorf("%w: %q", models.ErrMonthInvalid, s)
	}
	return month, nil
}

// matches reports whether text matches the search glob, ignoring case.
// A search without wildcards matches anywhere in the text.
func matches(search, text string) bool {
	if search == "" {
		return true
	}

	pattern := strings.ToLower(search)
	if !strings.Contains(pattern, glob.GLOB) {
		pattern = glob.GLOB + pattern + glob.GLOB
	}

	return glob.Glob(pattern, strings.ToLower(text))
}

type RootResponse struct {
	Links RootLinks `json:"links"` // Links for the v1 API
}

type RootLinks struct {
	Expenses     string `json:"expenses" example:"https://example.com/api/v1/expenses"`          // URL of expense list endpoint
	Income       string `json:"income" example:"https://example.com/api/v1/income"`              // URL of income list endpoint
	Goals        string `json:"goals" example:"https://example.com/api/v1/goals"`                // URL of goal list endpoint
	Savings      string `json:"savings" example:"https://example.com/api/v1/savings"`            // URL of the savings ledger
	Wallet       string `json:"wallet" example:"https://example.com/api/v1/wallet"`              // URL of the goals wallet
	Archives     string `json:"archives" example:"https://example.com/api/v1/archives"`          // URL of archive list endpoint
	Months       string `json:"months" example:"https://example.com/api/v1/months"`              // URL of month list endpoint
	ViewingMonth string `json:"viewingMonth" example:"https://example.com/api/v1/viewing-month"` // URL of the viewing month
	Overview     string `json:"overview" example:"https://example.com/api/v1/overview"`          // URL of the overview
	Catalog      string `json:"catalog" example:"https://example.com/api/v1/catalog"`            // URL of the catalog
}

// GetRoot returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	RootResponse
//	@Router			/v1 [get]
func GetRoot(c *gin.Context) {
	url := httputil.BaseURL(c) + "/v1"

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Expenses:     url + "/expenses",
			Income:       url + "/income",
			Goals:        url + "/goals",
			Savings:      url + "/savings",
			Wallet:       url + "/wallet",
			Archives:     url + "/archives",
			Months:       url + "/months",
			ViewingMonth: url + "/viewing-month",
			Overview:     url + "/overview",
			Catalog:      url + "/catalog",
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}
