package finance

import (
	"github.com/goals-wallet/backend/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Wallet is the state of the goals wallet.
type Wallet struct {
	TotalSavingsDeposited decimal.Decimal `json:"totalSavingsDeposited" example:"100"`
	TotalAllocated        decimal.Decimal `json:"totalAllocated" example:"80"`
	Balance               decimal.Decimal `json:"balance" example:"20"`
}

// TotalSavingsDeposited sums all Savings expenses.
func TotalSavingsDeposited(expenses []models.Expense) decimal.Decimal {
	return TotalExpenses(SavingsExpenses(expenses))
}

// TotalAllocated sums the ledger entries that moved money to a goal.
func TotalAllocated(entries []models.SavingsEntry) decimal.Decimal {
	return sum(filter(entries, models.SavingsEntry.IsAllocation), func(s models.SavingsEntry) decimal.Decimal { return s.Amount })
}

// WalletBalance is the unallocated part of the deposits. It is never negative.
func WalletBalance(deposited, allocated decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, deposited.Sub(allocated))
}

// NewWallet derives the wallet from all expenses ever recorded, live and archived,
// and the savings ledger.
func NewWallet(expenses []models.Expense, archives []models.MonthlyArchive, entries []models.SavingsEntry) Wallet {
	deposited := TotalSavingsDeposited(expenses)
	for _, a := range archives {
		deposited = deposited.Add(TotalSavingsDeposited(a.Expenses))
	}

	allocated := TotalAllocated(entries)

	return Wallet{
		TotalSavingsDeposited: deposited,
		TotalAllocated:        allocated,
		Balance:               WalletBalance(deposited, allocated),
	}
}

// GoalProgress returns the progress towards the target in percent, between 0 and 100.
// A zero target counts as reached.
func GoalProgress(current, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return hundred
	}

	ratio := decimal.Min(current.Div(target), decimal.NewFromInt(1))
	return decimal.Max(decimal.Zero, ratio.Mul(hundred))
}
