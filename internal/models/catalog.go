package models

import "golang.org/x/exp/slices"

// CategorySavings marks an expense as a contribution to the goals wallet.
const CategorySavings = "Savings"

// ExpenseCategories are the categories an expense can be recorded in, in display order.
var ExpenseCategories = []string{
	"Food", "Transportation", "Shopping", "Entertainment",
	"Bills & Utilities", "Healthcare", "Education", "Personal Care",
	"Groceries", "Coffee & Snacks", "Gas", CategorySavings, "Other",
}

// IncomeSources are the sources income can be recorded from, in display order.
var IncomeSources = []string{
	"Salary", "Freelance", "Business", "Investment", "Bonus",
	"Side Hustle", "Rental", "Gift", "Refund", "Other",
}

// CategoryColor is the palette used to render a category.
type CategoryColor struct {
	Background string    `json:"bg" example:"#1a1a2e"`
	Text       string    `json:"text" example:"#ff6b6b"`
	Gradient   [2]string `json:"gradient"`
}

var categoryColors = map[string]CategoryColor{
	"Food":              {"#1a1a2e", "#ff6b6b", [2]string{"#ff6b6b", "#ee5a52"}},
	"Transportation":    {"#16213e", "#4ecdc4", [2]string{"#4ecdc4", "#44a08d"}},
	"Shopping":          {"#2d1b69", "#a8e6cf", [2]string{"#a8e6cf", "#88d8c0"}},
	"Entertainment":     {"#3c1361", "#ffd93d", [2]string{"#ffd93d", "#ff9f43"}},
	"Bills & Utilities": {"#8b1538", "#6c5ce7", [2]string{"#6c5ce7", "#a29bfe"}},
	"Healthcare":        {"#0f4c75", "#00b894", [2]string{"#00b894", "#00a085"}},
	"Education":         {"#2c2c54", "#fd79a8", [2]string{"#fd79a8", "#e84393"}},
	"Personal Care":     {"#40407a", "#ffeaa7", [2]string{"#ffeaa7", "#fdcb6e"}},
	"Groceries":         {"#2d3436", "#55a3ff", [2]string{"#55a3ff", "#3742fa"}},
	"Coffee & Snacks":   {"#6c5ce7", "#a29bfe", [2]string{"#a29bfe", "#74b9ff"}},
	"Gas":               {"#2f3640", "#ff9f43", [2]string{"#ff9f43", "#ee5a52"}},
	CategorySavings:     {"#0f4c75", "#00b894", [2]string{"#00b894", "#00a085"}},
	"Other":             {"#57606f", "#7bed9f", [2]string{"#7bed9f", "#5f27cd"}},
}

// ColorFor returns the palette for a category or income source.
// Unknown keys get the palette of "Other".
func ColorFor(category string) CategoryColor {
	if c, ok := categoryColors[category]; ok {
		return c
	}

	return categoryColors["Other"]
}

// GoalCategory is the closed set of goal categories.
type GoalCategory string

const (
	GoalCategorySavings    GoalCategory = "savings"
	GoalCategoryDebt       GoalCategory = "debt"
	GoalCategoryInvestment GoalCategory = "investment"
	GoalCategoryEmergency  GoalCategory = "emergency"
	GoalCategoryPurchase   GoalCategory = "purchase"
	GoalCategoryOther      GoalCategory = "other"
)

var GoalCategories = []GoalCategory{
	GoalCategorySavings, GoalCategoryDebt, GoalCategoryInvestment,
	GoalCategoryEmergency, GoalCategoryPurchase, GoalCategoryOther,
}

var GoalColors = []string{
	"#6366f1", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#06b6d4", "#84cc16", "#f97316",
}

var GoalIcons = []string{
	"flag-outline", "trending-up-outline", "shield-checkmark-outline", "home-outline",
	"car-outline", "airplane-outline", "gift-outline", "star-outline",
}

const (
	DefaultGoalColor = "#6366f1"
	DefaultGoalIcon  = "flag-outline"
)

// IsExpenseCategory reports whether the category is a known expense category.
func IsExpenseCategory(category string) bool {
	return slices.Contains(ExpenseCategories, category)
}

// IsIncomeSource reports whether the source is a known income source.
func IsIncomeSource(source string) bool {
	return slices.Contains(IncomeSources, source)
}

// IsGoalCategory reports whether c is one of GoalCategories.
func IsGoalCategory(c GoalCategory) bool {
	return slices.Contains(GoalCategories, c)
}
