package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xjtian/monarch-sankeymatic/internal/model"
)

// CategorySum is the net signed amount for one leaf category.
type CategorySum struct {
	Category string
	Total    decimal.Decimal
}

// RecordStore is the scratch table transactions are loaded into before
// aggregation. Each run replaces the previous load wholesale; the store is
// never authoritative, it just makes the loaded data inspectable.
type RecordStore interface {
	// Replace clears any previously loaded transactions and inserts txns.
	Replace(ctx context.Context, txns []model.Transaction) error
	// SumByCategory returns net amounts grouped by category, ordered by
	// category name, skipping transactions matched by ex.
	SumByCategory(ctx context.Context, ex model.Exclusions) ([]CategorySum, error)
	Close() error
}

// InMemory is the db_file value selecting the in-memory store.
const InMemory = ":memory:"

// Open selects a store implementation from the configured db_file:
// empty or ":memory:" for in-memory, anything else a SQLite file path.
func Open(dbFile string) (RecordStore, error) {
	if dbFile == "" || dbFile == InMemory {
		return NewMemoryStore(), nil
	}
	return NewSQLiteStore(dbFile)
}
