package models

import (
	"time"

	"github.com/goals-wallet/backend/internal/types"
	"github.com/shopspring/decimal"
)

// MonthlyArchive is the snapshot of a finished month's records.
//
// Once a month is archived, its records only live here.
type MonthlyArchive struct {
	Month       types.Month     `json:"month" example:"2025-01"`
	Expenses    []Expense       `json:"expenses"`
	Income      []Income        `json:"income"`
	TotalSpent  decimal.Decimal `json:"totalSpent" example:"50"` // Excludes Savings expenses
	TotalIncome decimal.Decimal `json:"totalIncome" example:"1000"`
	NetAmount   decimal.Decimal `json:"netAmount" example:"950"`
	CreatedAt   time.Time       `json:"createdAt" example:"2025-02-01T03:00:00Z"`
}
