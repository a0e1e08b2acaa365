package models

import (
	"github.com/shopspring/decimal"
)

// SavingsEntry is an append-only record in the savings ledger.
//
// Entries without AllocatedToGoal are deposits, recorded together with a
// Savings expense of the same amount. Entries with AllocatedToGoal move
// wallet money to that goal.
type SavingsEntry struct {
	ID              int64           `json:"id" example:"1735689600000"`
	Amount          decimal.Decimal `json:"amount" example:"100"`
	Description     string          `json:"description" example:"Allocated to goal"`
	Date            string          `json:"date" example:"2025-01-10"` // YYYY-MM-DD
	AllocatedToGoal *int64          `json:"allocatedToGoal,omitempty" example:"1735689600000"`
}

// IsAllocation reports whether the entry moved money to a goal.
func (s SavingsEntry) IsAllocation() bool {
	return s.AllocatedToGoal != nil
}
