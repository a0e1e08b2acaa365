package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// record is one serialized collection.
type record struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

func (record) TableName() string {
	return "records"
}

// SQLite stores collections in a single table of an SQLite database.
type SQLite struct {
	db *gorm.DB
}

var _ Gateway = (*SQLite)(nil)

// OpenSQLite opens the SQLite database at dsn and migrates the schema.
func OpenSQLite(dsn string) (*SQLite, error) {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(&record{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection prevents SQLITE_BUSY errors and makes
	// in-memory databases survive between queries.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = db.Callback().Query().After("*").Register("goals_wallet:after_query", generalCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Create().After("*").Register("goals_wallet:after_create", generalCallback)
	if err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// generalCallback replaces driver errors with ErrUnavailable.
//
// The details do not help clients, they are logged for server admins.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	db.Error = translate(db.Error)
}

func translate(err error) error {
	if err == nil || errors.Is(err, ErrUnavailable) {
		return err
	}

	var sqliteErr *go_sqlite.Error

	// "sql: database is closed" is hard-coded in the sql module
	if err.Error() == "sql: database is closed" || errors.As(err, &sqliteErr) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return err
}

func (s *SQLite) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	var r record
	err := s.db.WithContext(ctx).Where(&record{Key: string(key)}).Take(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, translate(err)
	}

	return r.Value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key Key, value []byte) error {
	return translate(upsert(s.db.WithContext(ctx), key, value))
}

// SetMany writes all values in one transaction.
func (s *SQLite) SetMany(ctx context.Context, values map[Key][]byte) error {
	keys := maps.Keys(values)
	slices.Sort(keys)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			if err := upsert(tx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})

	return translate(err)
}

func upsert(db *gorm.DB, key Key, value []byte) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record{Key: string(key), Value: value, UpdatedAt: time.Now()}).Error
}

func (s *SQLite) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return translate(err)
	}

	return translate(sqlDB.PingContext(ctx))
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
