// Package store persists the serialized collections of the goals wallet.
package store

import (
	"context"
	"errors"
)

// Key names one persisted collection.
type Key string

const (
	KeyExpenses        Key = "expenses"
	KeyIncome          Key = "income"
	KeyMonthlyArchives Key = "monthlyArchives"
	KeyGoals           Key = "goals"
	KeySavings         Key = "savings"
)

// Keys lists all collections in load order.
var Keys = []Key{KeyExpenses, KeyIncome, KeyMonthlyArchives, KeyGoals, KeySavings}

// ErrUnavailable is returned when the backend cannot be reached or has been closed.
var ErrUnavailable = errors.New("the store is not available")

// Gateway is a key value store for serialized collections.
//
// Get reports a key that has never been written with ok == false and a nil error.
// SetMany writes all values or none of them.
type Gateway interface {
	Get(ctx context.Context, key Key) (value []byte, ok bool, err error)
	Set(ctx context.Context, key Key, value []byte) error
	SetMany(ctx context.Context, values map[Key][]byte) error
	Ping(ctx context.Context) error
	Close() error
}
