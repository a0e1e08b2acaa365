package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goals-wallet/backend/internal/finance"
	"github.com/goals-wallet/backend/internal/httputil"
	"github.com/goals-wallet/backend/internal/models"
	"github.com/shopspring/decimal"
)

// GoalEditable is the request body for creating and updating goals.
//
// On updates, fields missing from the body keep their current value.
type GoalEditable struct {
	Title        string          `json:"title" example:"New TV"`
	Description  string          `json:"description" example:"Replace the old one before the holidays"`
	TargetAmount decimal.Decimal `json:"targetAmount" example:"750"`
	Category     string          `json:"category" example:"purchase"`
	TargetDate   string          `json:"targetDate" example:"2025-12-01"`
	Color        string          `json:"color" example:"#6366f1"`
	Icon         string          `json:"icon" example:"flag-outline"`
}

func newGoalEditable(g models.Goal) GoalEditable {
	return GoalEditable{
		Title:        g.Title,
		Description:  g.Description,
		TargetAmount: g.TargetAmount,
		Category:     string(g.Category),
		TargetDate:   g.TargetDate,
		Color:        g.Color,
		Icon:         g.Icon,
	}
}

func (e GoalEditable) form() models.GoalForm {
	return models.GoalForm{
		Title:        e.Title,
		Description:  e.Description,
		TargetAmount: e.TargetAmount.String(),
		Category:     e.Category,
		TargetDate:   e.TargetDate,
		Color:        e.Color,
		Icon:         e.Icon,
	}
}

// Goal is a goal with its progress.
type Goal struct {
	models.Goal
	Progress  decimal.Decimal `json:"progress" example:"16"`   // Percent of the target reached, 0 to 100
	Remaining decimal.Decimal `json:"remaining" example:"630"` // Amount still missing
}

func newGoal(g models.Goal) Goal {
	return Goal{
		Goal:      g,
		Progress:  finance.GoalProgress(g.CurrentAmount, g.TargetAmount),
		Remaining: g.Remaining(),
	}
}

type GoalResponse struct {
	Data Goal `json:"data"`
}

type GoalListResponse struct {
	Data []Goal `json:"data"`
}

// AllocationEditable is the request body for an allocation.
type AllocationEditable struct {
	Amount decimal.Decimal `json:"amount" example:"50"`
}

func (co Controller) RegisterGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsGoals)
		r.GET("", co.GetGoals)
		r.POST("", co.CreateGoal)
	}
	{
		r.OPTIONS("/:id", co.OptionsGoalDetail)
		r.GET("/:id", co.GetGoal)
		r.PATCH("/:id", co.UpdateGoal)
		r.DELETE("/:id", co.DeleteGoal)
	}
	{
		r.OPTIONS("/:id/allocations", co.OptionsGoalAction)
		r.POST("/:id/allocations", co.AllocateToGoal)
		r.OPTIONS("/:id/complete", co.OptionsGoalAction)
		r.POST("/:id/complete", co.CompleteGoal)
	}
}

// OptionsGoals returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Goals
//	@Success		204
//	@Router			/v1/goals [options]
func OptionsGoals(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsGoalDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Goals
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Param			id	path		int	true	"ID of the goal"
//	@Router			/v1/goals/{id} [options]
func (co Controller) OptionsGoalDetail(c *gin.Context) {
	if _, ok := co.goal(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// OptionsGoalAction returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Goals
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Param			id	path		int	true	"ID of the goal"
//	@Router			/v1/goals/{id}/allocations [options]
//	@Router			/v1/goals/{id}/complete [options]
func (co Controller) OptionsGoalAction(c *gin.Context) {
	if _, ok := co.goal(c); !ok {
		return
	}

	httputil.OptionsPost(c)
}

// goal returns the goal of the id path parameter. It writes the error response if there is none.
func (co Controller) goal(c *gin.Context) (models.Goal, bool) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		abort(c, err)
		return models.Goal{}, false
	}

	goal, err := co.Ledger.Goal(id)
	if err != nil {
		abort(c, err)
		return models.Goal{}, false
	}

	return goal, true
}

// GetGoals returns all goals
//
//	@Summary		Get goals
//	@Description	Returns all goals with their progress
//	@Tags			Goals
//	@Produce		json
//	@Success		200	{object}	GoalListResponse
//	@Router			/v1/goals [get]
func (co Controller) GetGoals(c *gin.Context) {
	goals := co.Ledger.Goals()

	data := make([]Goal, 0, len(goals))
	for _, g := range goals {
		data = append(data, newGoal(g))
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: data})
}

// CreateGoal creates a goal
//
//	@Summary		Create goal
//	@Description	Creates a new goal with nothing allocated to it
//	@Tags			Goals
//	@Produce		json
//	@Success		201		{object}	GoalResponse
//	@Failure		400		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			goal	body		GoalEditable	true	"Goal"
//	@Router			/v1/goals [post]
func (co Controller) CreateGoal(c *gin.Context) {
	var editable GoalEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abort(c, err)
		return
	}

	goal, err := co.Ledger.CreateGoal(c.Request.Context(), editable.form())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, GoalResponse{Data: newGoal(goal)})
}

// GetGoal returns a specific goal
//
//	@Summary		Get goal
//	@Description	Returns a specific goal with its progress
//	@Tags			Goals
//	@Produce		json
//	@Success		200	{object}	GoalResponse
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Param			id	path		int	true	"ID of the goal"
//	@Router			/v1/goals/{id} [get]
func (co Controller) GetGoal(c *gin.Context) {
	goal, ok := co.goal(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: newGoal(goal)})
}

// UpdateGoal updates a goal
//
//	@Summary		Update goal
//	@Description	Updates a goal. Only values to be updated need to be specified.
//	@Description	Lowering the target to or below the current amount completes the goal.
//	@Tags			Goals
//	@Produce		json
//	@Success		200		{object}	GoalResponse
//	@Failure		400		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			id		path		int				true	"ID of the goal"
//	@Param			goal	body		GoalEditable	true	"Goal"
//	@Router			/v1/goals/{id} [patch]
func (co Controller) UpdateGoal(c *gin.Context) {
	current, ok := co.goal(c)
	if !ok {
		return
	}

	editable := newGoalEditable(current)
	if err := httputil.BindData(c, &editable); err != nil {
		abort(c, err)
		return
	}

	goal, err := co.Ledger.UpdateGoal(c.Request.Context(), current.ID, editable.form())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: newGoal(goal)})
}

// DeleteGoal deletes a goal
//
//	@Summary		Delete goal
//	@Description	Deletes a goal. Money allocated to it stays allocated. Unknown ids are ignored.
//	@Tags			Goals
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		int	true	"ID of the goal"
//	@Router			/v1/goals/{id} [delete]
func (co Controller) DeleteGoal(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}

	if err := co.Ledger.DeleteGoal(c.Request.Context(), id); err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AllocateToGoal moves money from the goals wallet to a goal
//
//	@Summary		Allocate to goal
//	@Description	Moves money from the goals wallet to the goal. The goal never exceeds its target.
//	@Tags			Goals
//	@Produce		json
//	@Success		200			{object}	GoalResponse
//	@Failure		400			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		422			{object}	insufficientBalance
//	@Failure		500			{object}	httpError
//	@Param			id			path		int					true	"ID of the goal"
//	@Param			allocation	body		AllocationEditable	true	"Allocation"
//	@Router			/v1/goals/{id}/allocations [post]
func (co Controller) AllocateToGoal(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}

	var allocation AllocationEditable
	if err := httputil.BindData(c, &allocation); err != nil {
		abort(c, err)
		return
	}

	goal, err := co.Ledger.AllocateToGoal(c.Request.Context(), id, allocation.Amount)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: newGoal(goal)})
}

// CompleteGoal marks a goal as completed
//
//	@Summary		Complete goal
//	@Description	Allocates the remaining amount from the goals wallet and marks the goal as completed
//	@Tags			Goals
//	@Produce		json
//	@Success		200	{object}	GoalResponse
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		422	{object}	insufficientBalance
//	@Failure		500	{object}	httpError
//	@Param			id	path		int	true	"ID of the goal"
//	@Router			/v1/goals/{id}/complete [post]
func (co Controller) CompleteGoal(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}

	goal, err := co.Ledger.MarkGoalComplete(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: newGoal(goal)})
}
