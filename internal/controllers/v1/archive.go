package v1

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/goals-wallet/backend/internal/export"
	"github.com/goals-wallet/backend/internal/httputil"
	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// ArchiveEditable is the request body for archiving a month.
type ArchiveEditable struct {
	Month types.Month `json:"month" swaggertype:"string" example:"2025-01"`
}

type ArchiveResponse struct {
	Data models.MonthlyArchive `json:"data"`
}

type ArchiveListResponse struct {
	Data []models.MonthlyArchive `json:"data"`
}

type ExportQuery struct {
	Format string `form:"format" example:"report"` // ynab (default) or report
	Lang   string `form:"lang" example:"de"`       // Locale for amounts in the report format, defaults to English
}

func (co Controller) RegisterArchiveRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsArchives)
		r.GET("", co.GetArchives)
		r.POST("", co.CreateArchive)
	}
	{
		r.OPTIONS("/:month", OptionsArchiveDetail)
		r.GET("/:month", co.GetArchive)
		r.OPTIONS("/:month/export", OptionsArchiveDetail)
		r.GET("/:month/export", co.ExportArchive)
	}
}

// OptionsArchives returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Archives
//	@Success		204
//	@Router			/v1/archives [options]
func OptionsArchives(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsArchiveDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Archives
//	@Success		204
//	@Param			month	path	string	true	"Month in YYYY-MM format"
//	@Router			/v1/archives/{month} [options]
//	@Router			/v1/archives/{month}/export [options]
func OptionsArchiveDetail(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetArchives returns all monthly archives
//
//	@Summary		Get archives
//	@Description	Returns all monthly archives, oldest first
//	@Tags			Archives
//	@Produce		json
//	@Success		200	{object}	ArchiveListResponse
//	@Router			/v1/archives [get]
func (co Controller) GetArchives(c *gin.Context) {
	c.JSON(http.StatusOK, ArchiveListResponse{Data: co.Ledger.Archives()})
}

// CreateArchive archives a month
//
//	@Summary		Archive month
//	@Description	Moves the month's records into its archive. Archiving a month again adds records recorded since.
//	@Tags			Archives
//	@Produce		json
//	@Success		201		{object}	ArchiveResponse
//	@Failure		400		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			archive	body		ArchiveEditable	true	"Month to archive"
//	@Router			/v1/archives [post]
func (co Controller) CreateArchive(c *gin.Context) {
	var editable ArchiveEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abort(c, err)
		return
	}

	archive, err := co.Ledger.ArchiveMonth(c.Request.Context(), editable.Month)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, ArchiveResponse{Data: archive})
}

// archive returns the archive of the month path parameter. It writes the error response if there is none.
func (co Controller) archive(c *gin.Context) (models.MonthlyArchive, bool) {
	month, err := parseMonth(c.Param("month"))
	if err != nil {
		abort(c, err)
		return models.MonthlyArchive{}, false
	}

	archive, err := co.Ledger.Archive(month)
	if err != nil {
		abort(c, err)
		return models.MonthlyArchive{}, false
	}

	return archive, true
}

// GetArchive returns the archive of a month
//
//	@Summary		Get archive
//	@Description	Returns the archive of a month
//	@Tags			Archives
//	@Produce		json
//	@Success		200		{object}	ArchiveResponse
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Param			month	path		string	true	"Month in YYYY-MM format"
//	@Router			/v1/archives/{month} [get]
func (co Controller) GetArchive(c *gin.Context) {
	archive, ok := co.archive(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ArchiveResponse{Data: archive})
}

// ExportArchive returns the archive of a month as CSV
//
//	@Summary		Export archive
//	@Description	Returns the archive as CSV. The ynab format can be imported into YNAB.
//	@Tags			Archives
//	@Produce		text/csv
//	@Success		200
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Param			month	path		string	true	"Month in YYYY-MM format"
//	@Param			format	query		string	false	"ynab or report"
//	@Param			lang	query		string	false	"BCP 47 language tag for report amounts"
//	@Router			/v1/archives/{month}/export [get]
func (co Controller) ExportArchive(c *gin.Context) {
	var query ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abort(c, httputil.ErrInvalidBody)
		return
	}

	format, err := export.ParseFormat(query.Format)
	if err != nil {
		abort(c, err)
		return
	}

	tag := language.English
	if query.Lang != "" {
		tag, err = language.Parse(query.Lang)
		if err != nil {
			abort(c, errLanguageInvalid)
			return
		}
	}

	archive, ok := co.archive(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(archive.Month, format)+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	if err := export.Write(c.Writer, archive, format, tag); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Str("month", archive.Month.String()).Msg("export failed")
	}
}
