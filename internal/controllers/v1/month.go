package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goals-wallet/backend/internal/httputil"
	"github.com/goals-wallet/backend/internal/ledger"
	"github.com/goals-wallet/backend/internal/types"
)

// recentMonths is the number of months offered for selection.
const recentMonths = 12

type MonthList struct {
	WithEntries []types.Month `json:"withEntries" swaggertype:"array,string" example:"2024-12,2025-01"` // Months with live or archived records
	Recent      []types.Month `json:"recent" swaggertype:"array,string" example:"2024-02,2025-01"`      // The last twelve months, oldest first
}

type MonthListResponse struct {
	Data MonthList `json:"data"`
}

type MonthResponse struct {
	Data ledger.MonthView `json:"data"`
}

// ViewingMonthEditable is the request body for selecting the viewing month.
type ViewingMonthEditable struct {
	Month types.Month `json:"month" swaggertype:"string" example:"2025-01"`
}

type ViewingMonthResponse struct {
	Data ViewingMonthEditable `json:"data"`
}

type OverviewResponse struct {
	Data ledger.Overview `json:"data"`
}

func (co Controller) RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsMonths)
	r.GET("", co.GetMonths)
	r.OPTIONS("/:month", OptionsMonths)
	r.GET("/:month", co.GetMonth)
}

func (co Controller) RegisterViewingMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsViewingMonth)
	r.GET("", co.GetViewingMonth)
	r.PUT("", co.SetViewingMonth)
}

func (co Controller) RegisterOverviewRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsOverview)
	r.GET("", co.GetOverview)
}

// OptionsMonths returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Months
//	@Success		204
//	@Router			/v1/months [options]
//	@Router			/v1/months/{month} [options]
func OptionsMonths(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetMonths returns the months to choose from
//
//	@Summary		List months
//	@Description	Returns the months with records and the last twelve months
//	@Tags			Months
//	@Produce		json
//	@Success		200	{object}	MonthListResponse
//	@Router			/v1/months [get]
func (co Controller) GetMonths(c *gin.Context) {
	c.JSON(http.StatusOK, MonthListResponse{
		Data: MonthList{
			WithEntries: co.Ledger.MonthsWithEntries(),
			Recent:      co.Ledger.RecentMonths(recentMonths),
		},
	})
}

// GetMonth returns the view of a month
//
//	@Summary		Get month
//	@Description	Returns the records, report and comparison with the previous archive for a month.
//	@Description	The current month also has a projection.
//	@Tags			Months
//	@Produce		json
//	@Success		200		{object}	MonthResponse
//	@Failure		400		{object}	httpError
//	@Param			month	path		string	true	"Month in YYYY-MM format"
//	@Router			/v1/months/{month} [get]
func (co Controller) GetMonth(c *gin.Context) {
	month, err := parseMonth(c.Param("month"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, MonthResponse{Data: co.Ledger.Month(month)})
}

// OptionsViewingMonth returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Months
//	@Success		204
//	@Router			/v1/viewing-month [options]
func OptionsViewingMonth(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// GetViewingMonth returns the viewing month
//
//	@Summary		Get viewing month
//	@Description	Returns the month the overview shows
//	@Tags			Months
//	@Produce		json
//	@Success		200	{object}	ViewingMonthResponse
//	@Router			/v1/viewing-month [get]
func (co Controller) GetViewingMonth(c *gin.Context) {
	c.JSON(http.StatusOK, ViewingMonthResponse{Data: ViewingMonthEditable{Month: co.Ledger.ViewingMonth()}})
}

// SetViewingMonth selects the viewing month
//
//	@Summary		Set viewing month
//	@Description	Selects the month the overview shows
//	@Tags			Months
//	@Produce		json
//	@Success		200		{object}	ViewingMonthResponse
//	@Failure		400		{object}	httpError
//	@Param			month	body		ViewingMonthEditable	true	"Month"
//	@Router			/v1/viewing-month [put]
func (co Controller) SetViewingMonth(c *gin.Context) {
	var editable ViewingMonthEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abort(c, err)
		return
	}

	if err := co.Ledger.SetViewingMonth(editable.Month); err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, ViewingMonthResponse{Data: editable})
}

// OptionsOverview returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Months
//	@Success		204
//	@Router			/v1/overview [options]
func OptionsOverview(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetOverview returns the overview
//
//	@Summary		Get overview
//	@Description	Returns the view of the viewing month together with the goals wallet and all goals
//	@Tags			Months
//	@Produce		json
//	@Success		200	{object}	OverviewResponse
//	@Router			/v1/overview [get]
func (co Controller) GetOverview(c *gin.Context) {
	c.JSON(http.StatusOK, OverviewResponse{Data: co.Ledger.Overview()})
}
