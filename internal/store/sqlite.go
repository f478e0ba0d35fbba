package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xjtian/monarch-sankeymatic/internal/model"

	_ "modernc.org/sqlite"
)

const dateFormat = "2006-01-02"

const createTable = `
CREATE TABLE IF NOT EXISTS transactions (
	date TEXT NOT NULL,
	merchant TEXT NOT NULL,
	category TEXT NOT NULL,
	account TEXT NOT NULL,
	original_statement TEXT NOT NULL,
	notes TEXT NOT NULL,
	amount_cents INTEGER NOT NULL,
	tags TEXT NOT NULL
)`

// SQLiteStore is a file-backed RecordStore. Amounts are stored as integer
// cents so sums stay exact.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite database at dbPath and
// ensures the transactions table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating transactions table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close implements RecordStore.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Replace implements RecordStore.
func (s *SQLiteStore) Replace(ctx context.Context, txns []model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clearing transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (date, merchant, category, account, original_statement, notes, amount_cents, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range txns {
		_, err := stmt.ExecContext(ctx,
			t.Date.Format(dateFormat),
			t.Merchant,
			t.Category,
			t.Account,
			t.Statement,
			t.Notes,
			t.Amount.Shift(2).Round(0).IntPart(),
			t.Tags,
		)
		if err != nil {
			return fmt.Errorf("inserting transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load: %w", err)
	}

	slog.InfoContext(ctx, "transactions loaded into sqlite", "count", len(txns))
	return nil
}

// SumByCategory implements RecordStore.
func (s *SQLiteStore) SumByCategory(ctx context.Context, ex model.Exclusions) ([]CategorySum, error) {
	query := `SELECT category, SUM(amount_cents) FROM transactions`
	var clauses []string
	var args []any
	appendNotIn(&clauses, &args, "category", ex.Categories)
	appendNotIn(&clauses, &args, "account", ex.Accounts)
	appendNotIn(&clauses, &args, "tags", ex.Tags)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " GROUP BY category ORDER BY category"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summing by category: %w", err)
	}
	defer rows.Close()

	var sums []CategorySum
	for rows.Next() {
		var category string
		var cents int64
		if err := rows.Scan(&category, &cents); err != nil {
			return nil, fmt.Errorf("scanning category sum: %w", err)
		}
		sums = append(sums, CategorySum{
			Category: category,
			Total:    decimal.New(cents, -2),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category sums: %w", err)
	}
	return sums, nil
}

// appendNotIn adds a "col NOT IN (?, ...)" clause when values is non-empty.
func appendNotIn(clauses *[]string, args *[]any, col string, values []string) {
	if len(values) == 0 {
		return
	}
	placeholders := strings.Repeat("?, ", len(values)-1) + "?"
	*clauses = append(*clauses, fmt.Sprintf("%s NOT IN (%s)", col, placeholders))
	for _, v := range values {
		*args = append(*args, v)
	}
}
