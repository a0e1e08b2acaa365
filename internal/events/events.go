// Package events publishes goal completions outside of the process.
package events

import (
	"context"
	"time"

	"github.com/goals-wallet/backend/internal/ledger"
	"github.com/goals-wallet/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PublishTimeout bounds a single publish call.
const PublishTimeout = 5 * time.Second

// GoalCompleted is the message sent when a goal reaches its target.
type GoalCompleted struct {
	MessageID    string          `json:"messageId"`
	GoalID       int64           `json:"goalId"`
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	CompletedAt  time.Time       `json:"completedAt"`
}

// NewGoalCompleted builds the message for a completed goal.
func NewGoalCompleted(goal models.Goal, at time.Time) GoalCompleted {
	return GoalCompleted{
		MessageID:    uuid.New().String(),
		GoalID:       goal.ID,
		Title:        goal.Title,
		TargetAmount: goal.TargetAmount,
		CompletedAt:  at,
	}
}

// Publisher sends goal completion messages.
type Publisher interface {
	PublishGoalCompleted(ctx context.Context, msg GoalCompleted) error
	Close() error
}

// Forward publishes every goal completion of the manager.
//
// Failed publishes are logged, they never fail the mutation that completed the goal.
func Forward(m *ledger.Manager, p Publisher) (unsubscribe func()) {
	return m.Subscribe(func(e ledger.Event) {
		if e.Type != ledger.EventGoalCompleted || e.Goal == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		msg := NewGoalCompleted(*e.Goal, time.Now())
		if err := p.PublishGoalCompleted(ctx, msg); err != nil {
			log.Error().Err(err).Int64("goal", msg.GoalID).Msg("could not publish goal completion")
		}
	})
}

// LogPublisher writes completions to the log. It is used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) PublishGoalCompleted(_ context.Context, msg GoalCompleted) error {
	log.Info().
		Str("message", msg.MessageID).
		Int64("goal", msg.GoalID).
		Str("title", msg.Title).
		Str("target", msg.TargetAmount.String()).
		Msg("goal completed, congratulations")
	return nil
}

func (LogPublisher) Close() error {
	return nil
}
