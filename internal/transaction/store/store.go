// Package store persists transactions in a flat CSV file. The file is the
// source of truth: every call re-reads it and every mutation rewrites it in
// full through a temp file rename. There is no locking; concurrent writers
// race with last-write-wins semantics, which is acceptable for the intended
// single-user local deployment.
package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

var header = []string{"id", "date", "type", "amount", "category"}

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	txs, err := s.readAll()
	if err != nil {
		return nil, err
	}

	if filter.Year == nil && filter.Month == nil && filter.Category == nil {
		return txs, nil
	}

	filtered := make([]*transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if matches(tx, filter) {
			filtered = append(filtered, tx)
		}
	}

	return filtered, nil
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	txs, err := s.readAll()
	if err != nil {
		return nil, err
	}

	for _, tx := range txs {
		if tx.ID == id {
			return tx, nil
		}
	}

	return nil, transaction.ErrNotFound
}

// CreateTransaction assigns the next sequential id and persists the full file.
func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	txs, err := s.readAll()
	if err != nil {
		return err
	}

	tx.ID = nextID(txs)

	return s.writeAll(append(txs, tx))
}

// CreateTransactions appends a batch of records in a single rewrite,
// assigning consecutive ids.
func (s *Store) CreateTransactions(ctx context.Context, newTxs []*transaction.Transaction) error {
	txs, err := s.readAll()
	if err != nil {
		return err
	}

	id := nextID(txs)
	for _, tx := range newTxs {
		tx.ID = id
		id++
	}

	return s.writeAll(append(txs, newTxs...))
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	txs, err := s.readAll()
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(txs, func(t *transaction.Transaction) bool { return t.ID == tx.ID })
	if idx < 0 {
		return transaction.ErrNotFound
	}

	txs[idx] = tx

	return s.writeAll(txs)
}

func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	txs, err := s.readAll()
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(txs, func(t *transaction.Transaction) bool { return t.ID == id })
	if idx < 0 {
		return transaction.ErrNotFound
	}

	return s.writeAll(slices.Delete(txs, idx, idx+1))
}

func nextID(txs []*transaction.Transaction) int64 {
	var maxID int64

	for _, tx := range txs {
		if tx.ID > maxID {
			maxID = tx.ID
		}
	}

	return maxID + 1
}

func matches(tx *transaction.Transaction, filter transaction.ListFilter) bool {
	if filter.Year != nil && tx.Date.Year() != *filter.Year {
		return false
	}

	if filter.Month != nil && tx.Date.Month() != *filter.Month {
		return false
	}

	if filter.Category != nil && tx.Category != *filter.Category {
		return false
	}

	return true
}

// readAll parses every row of the backing file. A missing file is an empty
// store. A row that cannot be parsed aborts the load with a
// MalformedRowError: mutations rewrite the file from the parsed rows, so
// skipping would destroy the bad row on the next write.
func (s *Store) readAll() ([]*transaction.Transaction, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // field count is validated per row below

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	if !slices.Equal(records[0], header) {
		return nil, &transaction.MalformedRowError{Row: 1, Err: fmt.Errorf("unexpected header %v", records[0])}
	}

	txs := make([]*transaction.Transaction, 0, len(records)-1)
	seen := make(map[int64]struct{}, len(records)-1)

	for i, record := range records[1:] {
		rowNum := i + 2

		tx, err := parseRecord(record)
		if err != nil {
			return nil, &transaction.MalformedRowError{Row: rowNum, Err: err}
		}

		if _, dup := seen[tx.ID]; dup {
			return nil, &transaction.MalformedRowError{Row: rowNum, Err: fmt.Errorf("duplicate id %d", tx.ID)}
		}

		seen[tx.ID] = struct{}{}

		txs = append(txs, tx)
	}

	return txs, nil
}

func parseRecord(record []string) (*transaction.Transaction, error) {
	if len(record) != len(header) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(header), len(record))
	}

	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid id %q", record[0])
	}

	date, err := time.Parse(time.DateOnly, record[1])
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", record[1])
	}

	amount, err := money.Parse(record[3])
	if err != nil {
		return nil, err
	}

	if amount == 0 {
		return nil, fmt.Errorf("zero amount")
	}

	category, err := transaction.ParseCategory(record[4])
	if err != nil {
		return nil, err
	}

	return &transaction.Transaction{
		ID:       id,
		Date:     date,
		Type:     record[2],
		Amount:   amount,
		Category: category,
	}, nil
}

// writeAll rewrites the backing file atomically: a temp file in the same
// directory is renamed over the original once fully flushed.
func (s *Store) writeAll(txs []*transaction.Transaction) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, ".tally-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	w := csv.NewWriter(tmp)

	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		record := []string{
			strconv.FormatInt(tx.ID, 10),
			tx.Date.Format(time.DateOnly),
			tx.Type,
			money.Format(tx.Amount),
			string(tx.Category),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing row for id %d: %w", tx.ID, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", s.path, err)
	}

	// The data file is user-editable; don't leave it with temp-file perms.
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	return nil
}
