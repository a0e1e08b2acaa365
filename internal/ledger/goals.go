package ledger

import (
	"context"

	"github.com/goals-wallet/backend/internal/finance"
	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/store"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// CreateGoal adds a new goal without progress.
func (m *Manager) CreateGoal(ctx context.Context, form models.GoalForm) (models.Goal, error) {
	fields, err := form.Parse()
	if err != nil {
		return models.Goal{}, err
	}

	var goal models.Goal
	err = m.mutate(ctx, func(next *state) (change, error) {
		goal = fields.Apply(models.Goal{
			ID:            m.ids.Next(),
			CurrentAmount: decimal.Zero,
			CreatedAt:     m.now(),
		})

		next.goals = append(next.goals, goal)
		return change{keys: []store.Key{store.KeyGoals}}, nil
	})
	if err != nil {
		return models.Goal{}, err
	}

	return goal, nil
}

// UpdateGoal replaces the editable fields of a goal.
//
// Progress is clamped to the new target. A goal whose progress reaches the
// new target is completed. A completed goal stays completed when its target
// is raised.
func (m *Manager) UpdateGoal(ctx context.Context, id int64, form models.GoalForm) (models.Goal, error) {
	fields, err := form.Parse()
	if err != nil {
		return models.Goal{}, err
	}

	var goal models.Goal
	err = m.mutate(ctx, func(next *state) (change, error) {
		i, err := goalIndex(*next, id)
		if err != nil {
			return change{}, err
		}

		before := next.goals[i]
		goal = fields.Apply(before)
		goal.CurrentAmount = decimal.Min(goal.CurrentAmount, goal.TargetAmount)
		if goal.Reached() {
			goal.IsCompleted = true
		}
		next.goals[i] = goal

		return change{
			keys:   []store.Key{store.KeyGoals},
			events: completion(before, goal),
		}, nil
	})
	if err != nil {
		return models.Goal{}, err
	}

	return goal, nil
}

// DeleteGoal removes a goal. Its allocations stay in the savings ledger
// and are not returned to the wallet. Unknown ids are ignored.
func (m *Manager) DeleteGoal(ctx context.Context, id int64) error {
	return m.mutate(ctx, func(next *state) (change, error) {
		i := slices.IndexFunc(next.goals, func(g models.Goal) bool { return g.ID == id })
		if i < 0 {
			return change{}, nil
		}

		next.goals = slices.Delete(next.goals, i, i+1)
		return change{keys: []store.Key{store.KeyGoals}}, nil
	})
}

// AllocateToGoal moves amount from the wallet to the goal.
//
// The amount must be positive and must not exceed the wallet balance,
// otherwise a *models.InsufficientBalanceError is returned and nothing
// changes. The goal's progress never exceeds its target.
func (m *Manager) AllocateToGoal(ctx context.Context, goalID int64, amount decimal.Decimal) (models.Goal, error) {
	if _, err := models.CheckAmount(amount); err != nil {
		return models.Goal{}, err
	}

	var goal models.Goal
	err := m.mutate(ctx, func(next *state) (change, error) {
		i, err := goalIndex(*next, goalID)
		if err != nil {
			return change{}, err
		}

		c, err := m.allocate(next, i, amount)
		goal = next.goals[i]
		return c, err
	})
	if err != nil {
		return models.Goal{}, err
	}

	return goal, nil
}

// MarkGoalComplete completes a goal.
//
// If the goal has not reached its target yet, the missing amount is
// allocated from the wallet first. Completing a completed goal that has
// reached its target changes nothing.
func (m *Manager) MarkGoalComplete(ctx context.Context, goalID int64) (models.Goal, error) {
	var goal models.Goal
	err := m.mutate(ctx, func(next *state) (change, error) {
		i, err := goalIndex(*next, goalID)
		if err != nil {
			return change{}, err
		}

		before := next.goals[i]
		shortfall := before.TargetAmount.Sub(before.CurrentAmount)

		if shortfall.IsPositive() {
			c, err := m.allocate(next, i, shortfall)
			goal = next.goals[i]
			return c, err
		}

		goal = before
		if before.IsCompleted {
			return change{}, nil
		}

		goal.CurrentAmount = goal.TargetAmount
		goal.IsCompleted = true
		next.goals[i] = goal

		return change{
			keys:   []store.Key{store.KeyGoals},
			events: completion(before, goal),
		}, nil
	})
	if err != nil {
		return models.Goal{}, err
	}

	return goal, nil
}

// allocate appends an allocation entry and adds the amount to the goal at index i.
func (m *Manager) allocate(next *state, i int, amount decimal.Decimal) (change, error) {
	wallet := finance.NewWallet(next.expenses, next.archives, next.savings)
	if amount.GreaterThan(wallet.Balance) {
		return change{}, models.NewInsufficientBalanceError(amount, wallet.Balance)
	}

	before := next.goals[i]
	goalID := before.ID

	next.savings = append(next.savings, models.SavingsEntry{
		ID:              m.ids.Next(),
		Amount:          amount,
		Description:     "Allocated to " + before.Title,
		Date:            m.today(),
		AllocatedToGoal: &goalID,
	})

	goal := before
	goal.CurrentAmount = decimal.Min(goal.CurrentAmount.Add(amount), goal.TargetAmount)
	if goal.Reached() {
		goal.IsCompleted = true
	}
	next.goals[i] = goal

	return change{
		keys:   []store.Key{store.KeyGoals, store.KeySavings},
		events: completion(before, goal),
	}, nil
}

// completion returns the completion event if the goal just became completed.
func completion(before, after models.Goal) []Event {
	if before.IsCompleted || !after.IsCompleted {
		return nil
	}

	return []Event{{Type: EventGoalCompleted, Goal: &after}}
}

func goalIndex(s state, id int64) (int, error) {
	i := slices.IndexFunc(s.goals, func(g models.Goal) bool { return g.ID == id })
	if i < 0 {
		return -1, models.NotFound("goal", id)
	}
	return i, nil
}
