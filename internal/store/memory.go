package store

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/xjtian/monarch-sankeymatic/internal/model"
)

// MemoryStore keeps loaded transactions in a slice.
type MemoryStore struct {
	txns []model.Transaction
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Replace implements RecordStore.
func (s *MemoryStore) Replace(_ context.Context, txns []model.Transaction) error {
	s.txns = append([]model.Transaction(nil), txns...)
	return nil
}

// SumByCategory implements RecordStore.
func (s *MemoryStore) SumByCategory(_ context.Context, ex model.Exclusions) ([]CategorySum, error) {
	totals := make(map[string]decimal.Decimal)
	for _, t := range s.txns {
		if ex.Matches(t) {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	sums := make([]CategorySum, 0, len(names))
	for _, name := range names {
		sums = append(sums, CategorySum{Category: name, Total: totals[name]})
	}
	return sums, nil
}

// Close implements RecordStore.
func (s *MemoryStore) Close() error { return nil }
