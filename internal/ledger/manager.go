// Package ledger holds the committed collections of the goals wallet and
// implements every mutation on them.
//
// All mutations are serialized. A mutation works on a copy of the state,
// writes every collection it touched with a single store.Gateway.SetMany
// call and only replaces the in-memory state once that write succeeded.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/store"
	"github.com/goals-wallet/backend/internal/types"
	"github.com/rs/zerolog/log"
)

// Manager owns the collections of the goals wallet.
type Manager struct {
	mu      sync.Mutex
	gateway store.Gateway
	now     func() time.Time
	ids     *Sequence
	state   state
	viewing types.Month

	subMu       sync.Mutex
	subscribers map[int]func(Event)
	nextSub     int

	commits uint64 // guarded by mu

	// Events are published in commit order, each commit waits for its turn.
	pubMu     sync.Mutex
	pubTurn   *sync.Cond
	published uint64
}

type state struct {
	expenses []models.Expense
	income   []models.Income
	archives []models.MonthlyArchive
	goals    []models.Goal
	savings  []models.SavingsEntry
}

func (s state) clone() state {
	return state{
		expenses: append(make([]models.Expense, 0, len(s.expenses)), s.expenses...),
		income:   append(make([]models.Income, 0, len(s.income)), s.income...),
		archives: append(make([]models.MonthlyArchive, 0, len(s.archives)), s.archives...),
		goals:    append(make([]models.Goal, 0, len(s.goals)), s.goals...),
		savings:  append(make([]models.SavingsEntry, 0, len(s.savings)), s.savings...),
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock used for record dates, ids and the current month.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// New loads all collections from the gateway.
//
// Keys that have never been written are empty collections. If goals have
// never been written, the default goals are created and persisted.
func New(ctx context.Context, gateway store.Gateway, opts ...Option) (*Manager, error) {
	m := &Manager{
		gateway:     gateway,
		now:         time.Now,
		subscribers: make(map[int]func(Event)),
	}
	m.pubTurn = sync.NewCond(&m.pubMu)

	for _, opt := range opts {
		opt(m)
	}

	m.ids = NewSequence(m.now)
	m.viewing = types.MonthOf(m.now())

	seed, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	if seed {
		goals := models.DefaultGoals(m.now())
		value, err := encode(goals)
		if err != nil {
			return nil, err
		}

		if err := gateway.Set(ctx, store.KeyGoals, value); err != nil {
			log.Error().Err(err).Msg("could not persist default goals")
			return nil, fmt.Errorf("%w: %w", models.ErrPersistence, err)
		}

		m.state.goals = goals
		log.Info().Int("count", len(goals)).Msg("created default goals")
	}

	m.observeIDs()
	return m, nil
}

// load reads all keys and reports whether goals need to be seeded.
func (m *Manager) load(ctx context.Context) (seed bool, err error) {
	targets := map[store.Key]any{
		store.KeyExpenses:        &m.state.expenses,
		store.KeyIncome:          &m.state.income,
		store.KeyMonthlyArchives: &m.state.archives,
		store.KeyGoals:           &m.state.goals,
		store.KeySavings:         &m.state.savings,
	}

	for _, key := range store.Keys {
		value, ok, err := m.gateway.Get(ctx, key)
		if err != nil {
			log.Error().Err(err).Str("key", string(key)).Msg("could not load collection")
			return false, fmt.Errorf("%w: %w", models.ErrPersistence, err)
		}

		if !ok {
			seed = seed || key == store.KeyGoals
			continue
		}

		if err := json.Unmarshal(value, targets[key]); err != nil {
			log.Error().Err(err).Str("key", string(key)).Msg("could not decode collection")
			return false, fmt.Errorf("%w: collection %s is corrupt: %w", models.ErrPersistence, key, err)
		}
	}

	return seed, nil
}

func (m *Manager) observeIDs() {
	for _, e := range m.state.expenses {
		m.ids.Observe(e.ID)
	}
	for _, i := range m.state.income {
		m.ids.Observe(i.ID)
	}
	for _, a := range m.state.archives {
		for _, e := range a.Expenses {
			m.ids.Observe(e.ID)
		}
		for _, i := range a.Income {
			m.ids.Observe(i.ID)
		}
	}
	for _, g := range m.state.goals {
		m.ids.Observe(g.ID)
	}
	for _, s := range m.state.savings {
		m.ids.Observe(s.ID)
	}
}

// change is what a mutation did to the state copy.
type change struct {
	keys   []store.Key
	events []Event
}

// mutate runs fn on a copy of the state and commits the copy if fn changed any keys.
func (m *Manager) mutate(ctx context.Context, fn func(next *state) (change, error)) error {
	m.mu.Lock()

	next := m.state.clone()
	c, err := fn(&next)
	if err != nil || len(c.keys) == 0 {
		m.mu.Unlock()
		return err
	}

	if err := m.persist(ctx, next, c.keys); err != nil {
		m.mu.Unlock()
		return err
	}

	m.state = next
	turn := m.commits
	m.commits++
	m.mu.Unlock()

	m.waitTurn(turn)
	defer m.endTurn()

	for _, e := range c.events {
		if e.Type == EventGoalCompleted {
			log.Info().Int64("goal", e.Goal.ID).Str("title", e.Goal.Title).Msg("goal completed")
		}
	}

	m.publish(append([]Event{{Type: EventChanged, Keys: c.keys}}, c.events...)...)
	return nil
}

func (m *Manager) waitTurn(turn uint64) {
	m.pubMu.Lock()
	defer m.pubMu.Unlock()

	for m.published != turn {
		m.pubTurn.Wait()
	}
}

func (m *Manager) endTurn() {
	m.pubMu.Lock()
	defer m.pubMu.Unlock()

	m.published++
	m.pubTurn.Broadcast()
}

func (m *Manager) persist(ctx context.Context, s state, keys []store.Key) error {
	values := make(map[store.Key][]byte, len(keys))
	for _, key := range keys {
		var (
			value []byte
			err   error
		)

		switch key {
		case store.KeyExpenses:
			value, err = encode(s.expenses)
		case store.KeyIncome:
			value, err = encode(s.income)
		case store.KeyMonthlyArchives:
			value, err = encode(s.archives)
		case store.KeyGoals:
			value, err = encode(s.goals)
		case store.KeySavings:
			value, err = encode(s.savings)
		}

		if err != nil {
			return fmt.Errorf("%w: %w", models.ErrPersistence, err)
		}
		values[key] = value
	}

	if err := m.gateway.SetMany(ctx, values); err != nil {
		log.Error().Err(err).Interface("keys", keys).Msg("could not persist changes")
		return fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}

	return nil
}

// encode serializes a collection. Empty collections are written as [].
func encode[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	return json.Marshal(records)
}

// today is the calendar date of the manager's clock.
func (m *Manager) today() string {
	return types.FormatDate(m.now())
}
