package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xjtian/monarch-sankeymatic/internal/model"
)

// MonarchParser parses Monarch Money transaction CSV exports.
type MonarchParser struct{}

const (
	monarchDateFormat = "2006-01-02"
	monarchNumFields  = 8
	monarchColDate    = 0
	monarchColMerch   = 1
	monarchColCat     = 2
	monarchColAcct    = 3
	monarchColStmt    = 4
	monarchColNotes   = 5
	monarchColAmount  = 6
	monarchColTags    = 7
)

// Format returns the parser name.
func (p *MonarchParser) Format() string { return "monarch" }

// Parse reads a Monarch CSV export and returns Transactions.
func (p *MonarchParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = monarchNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading monarch CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := parseMonarchRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseMonarchRow(rec []string) (model.Transaction, error) {
	date, err := time.Parse(monarchDateFormat, rec[monarchColDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rec[monarchColDate], err)
	}

	amount, err := decimal.NewFromString(rec[monarchColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[monarchColAmount], err)
	}

	return model.Transaction{
		Date:      date,
		Merchant:  rec[monarchColMerch],
		Category:  rec[monarchColCat],
		Account:   rec[monarchColAcct],
		Statement: rec[monarchColStmt],
		Notes:     rec[monarchColNotes],
		Amount:    amount,
		Tags:      rec[monarchColTags],
	}, nil
}
