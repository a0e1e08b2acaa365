package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goals-wallet/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Goal is a financial goal funded from the goals wallet.
type Goal struct {
	ID            int64           `json:"id" example:"1735689600000"`
	Title         string          `json:"title" example:"New TV"`
	Description   string          `json:"description" example:"Replace the old one before the holidays"`
	TargetAmount  decimal.Decimal `json:"targetAmount" example:"750"`
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"120"`
	Category      GoalCategory    `json:"category" example:"purchase"`
	TargetDate    string          `json:"targetDate,omitempty" example:"2025-12-01"` // YYYY-MM-DD
	CreatedAt     time.Time       `json:"createdAt" example:"2025-01-01T10:00:00Z"`
	IsCompleted   bool            `json:"isCompleted" example:"false"`
	Color         string          `json:"color" example:"#6366f1"`
	Icon          string          `json:"icon" example:"flag-outline"`
}

// Remaining returns the amount still missing to reach the target. It is never negative.
func (g Goal) Remaining() decimal.Decimal {
	r := g.TargetAmount.Sub(g.CurrentAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Reached reports whether the current amount reaches the target.
func (g Goal) Reached() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// GoalForm is the unvalidated input for creating or editing a goal.
type GoalForm struct {
	Title        string
	Description  string
	TargetAmount string
	Category     string
	TargetDate   string
	Color        string
	Icon         string
}

// GoalFields are the validated, user editable fields of a goal.
type GoalFields struct {
	Title        string
	Description  string
	TargetAmount decimal.Decimal
	Category     GoalCategory
	TargetDate   string
	Color        string
	Icon         string
}

// Parse validates the form. Empty category, color and icon get their defaults.
func (f GoalForm) Parse() (GoalFields, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return GoalFields{}, ErrGoalTitleEmpty
	}

	target, err := ParseAmount(f.TargetAmount)
	if errors.Is(err, ErrAmountNotPositive) {
		return GoalFields{}, ErrGoalTargetNotPositive
	}
	if err != nil {
		return GoalFields{}, err
	}

	category := GoalCategory(strings.TrimSpace(f.Category))
	if category == "" {
		category = GoalCategorySavings
	}
	if !IsGoalCategory(category) {
		return GoalFields{}, fmt.Errorf("%w: %q", ErrGoalCategoryUnknown, category)
	}

	color := strings.TrimSpace(f.Color)
	if color == "" {
		color = DefaultGoalColor
	}
	if !slices.Contains(GoalColors, color) {
		return GoalFields{}, fmt.Errorf("%w: %q", ErrGoalColorUnknown, color)
	}

	icon := strings.TrimSpace(f.Icon)
	if icon == "" {
		icon = DefaultGoalIcon
	}
	if !slices.Contains(GoalIcons, icon) {
		return GoalFields{}, fmt.Errorf("%w: %q", ErrGoalIconUnknown, icon)
	}

	var targetDate string
	if strings.TrimSpace(f.TargetDate) != "" {
		targetDate, err = parseRecordDate(f.TargetDate, time.Time{})
		if err != nil {
			return GoalFields{}, err
		}
	}

	return GoalFields{
		Title:        title,
		Description:  strings.TrimSpace(f.Description),
		TargetAmount: target,
		Category:     category,
		TargetDate:   targetDate,
		Color:        color,
		Icon:         icon,
	}, nil
}

// Apply sets the editable fields on the goal. Progress and completion are not touched.
func (fields GoalFields) Apply(g Goal) Goal {
	g.Title = fields.Title
	g.Description = fields.Description
	g.TargetAmount = fields.TargetAmount
	g.Category = fields.Category
	g.TargetDate = fields.TargetDate
	g.Color = fields.Color
	g.Icon = fields.Icon
	return g
}

// DefaultGoals returns the starter goals created on first load.
func DefaultGoals(now time.Time) []Goal {
	return []Goal{
		{
			ID:            1,
			Title:         "Emergency Fund",
			Description:   "Build a safety net for unexpected expenses",
			TargetAmount:  decimal.NewFromInt(5000),
			CurrentAmount: decimal.Zero,
			Category:      GoalCategoryEmergency,
			TargetDate:    types.FormatDate(now.AddDate(0, 0, 365)),
			CreatedAt:     now,
			Color:         "#ef4444",
			Icon:          "shield-checkmark-outline",
		},
		{
			ID:            2,
			Title:         "Vacation Fund",
			Description:   "Save for a dream vacation",
			TargetAmount:  decimal.NewFromInt(2000),
			CurrentAmount: decimal.Zero,
			Category:      GoalCategorySavings,
			TargetDate:    types.FormatDate(now.AddDate(0, 0, 180)),
			CreatedAt:     now,
			Color:         "#10b981",
			Icon:          "airplane-outline",
		},
	}
}
