package ledger

import (
	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/store"
)

// EventType tells observers what happened.
type EventType string

const (
	// EventChanged is sent after every committed mutation.
	EventChanged EventType = "changed"

	// EventGoalCompleted is sent once when a goal becomes completed.
	EventGoalCompleted EventType = "goalCompleted"
)

// Event is a notification about committed state.
type Event struct {
	Type EventType
	Keys []store.Key  // Collections written, set for EventChanged
	Goal *models.Goal // The completed goal, set for EventGoalCompleted
}

// Subscribe registers fn to be called for every event. Calling the
// returned function removes the subscription.
//
// fn is called synchronously after the mutation has been committed and the
// manager is unlocked, so it may read from the manager. Events arrive in
// commit order, the next mutation's events wait until fn returns. fn must
// not mutate the manager.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subscribers, id)
	}
}

func (m *Manager) publish(events ...Event) {
	m.subMu.Lock()
	subscribers := make([]func(Event), 0, len(m.subscribers))
	for i := 0; i < m.nextSub; i++ {
		if fn, ok := m.subscribers[i]; ok {
			subscribers = append(subscribers, fn)
		}
	}
	m.subMu.Unlock()

	for _, e := range events {
		for _, fn := range subscribers {
			fn(e)
		}
	}
}
