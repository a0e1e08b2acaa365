package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goals-wallet/backend/internal/httputil"
	"github.com/goals-wallet/backend/internal/models"
)

// Catalog lists the values forms accept and the palettes to render them.
type Catalog struct {
	ExpenseCategories []string                        `json:"expenseCategories"`
	IncomeSources     []string                        `json:"incomeSources"`
	GoalCategories    []models.GoalCategory           `json:"goalCategories"`
	GoalColors        []string                        `json:"goalColors"`
	GoalIcons         []string                        `json:"goalIcons"`
	Colors            map[string]models.CategoryColor `json:"colors"` // Palette per expense category and income source
}

type CatalogResponse struct {
	Data Catalog `json:"data"`
}

func RegisterCatalogRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsCatalog)
	r.GET("", GetCatalog)
}

// OptionsCatalog returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Catalog
//	@Success		204
//	@Router			/v1/catalog [options]
func OptionsCatalog(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetCatalog returns the catalog
//
//	@Summary		Get catalog
//	@Description	Returns expense categories, income sources, goal categories, goal colors, goal icons and category palettes
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	CatalogResponse
//	@Router			/v1/catalog [get]
func GetCatalog(c *gin.Context) {
	colors := make(map[string]models.CategoryColor, len(models.ExpenseCategories)+len(models.IncomeSources))
	for _, name := range models.ExpenseCategories {
		colors[name] = models.ColorFor(name)
	}
	for _, name := range models.IncomeSources {
		colors[name] = models.ColorFor(name)
	}

	c.JSON(http.StatusOK, CatalogResponse{
		Data: Catalog{
			ExpenseCategories: models.ExpenseCategories,
			IncomeSources:     models.IncomeSources,
			GoalCategories:    models.GoalCategories,
			GoalColors:        models.GoalColors,
			GoalIcons:         models.GoalIcons,
			Colors:            colors,
		},
	})
}
