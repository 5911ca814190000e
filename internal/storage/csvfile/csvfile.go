// Package csvfile provides a flat-file implementation of the
// storage.Store interface: one CSV per table, with a header row, the
// same artifacts the tasting has always been kept in. A missing file is
// the empty table; every mutation rewrites the whole file.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tvdberg/wijnproef/internal/models"
	"github.com/tvdberg/wijnproef/internal/storage"
)

// Ensure CSVStore implements storage.Store
var _ storage.Store = (*CSVStore)(nil)

var (
	wineHeader  = []string{"Wijnnaam", "Prijs"}
	orderHeader = []string{"Naam", "Wijnnaam", "Aantal", "Prijs_per_stuk"}
)

// CSVStore implements storage.Store using two CSV files.
type CSVStore struct {
	winePath  string
	orderPath string
}

// New creates a CSVStore backed by the given file paths. The parent
// directories are created; the files themselves are only written once
// something is saved.
func New(winePath, orderPath string) (*CSVStore, error) {
	for _, p := range []string{winePath, orderPath} {
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create storage directory: %w", err)
			}
		}
	}
	return &CSVStore{winePath: winePath, orderPath: orderPath}, nil
}

// Close is a no-op; the store holds no open handles between operations.
func (s *CSVStore) Close() error {
	return nil
}

// LoadWines reads the catalog file. A missing file is an empty catalog.
func (s *CSVStore) LoadWines(ctx context.Context) ([]models.WineEntry, error) {
	records, err := readTable(s.winePath, wineHeader)
	if err != nil {
		return nil, err
	}

	wines := make([]models.WineEntry, 0, len(records))
	for i, rec := range records {
		price, err := decimal.NewFromString(rec[1])
		if err != nil {
			return nil, fmt.Errorf("failed to parse price in %s row %d: %w", s.winePath, i+1, err)
		}
		wines = append(wines, models.WineEntry{Name: rec[0], Price: price})
	}
	return wines, nil
}

// ReplaceWines overwrites the catalog file with the given entries.
func (s *CSVStore) ReplaceWines(ctx context.Context, wines []models.WineEntry) error {
	records := make([][]string, 0, len(wines))
	for _, w := range wines {
		records = append(records, []string{w.Name, w.Price.String()})
	}
	if err := writeTable(s.winePath, wineHeader, records); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

// LoadOrders reads the order file. A missing file is an empty log.
func (s *CSVStore) LoadOrders(ctx context.Context) ([]models.OrderLine, error) {
	records, err := readTable(s.orderPath, orderHeader)
	if err != nil {
		return nil, err
	}

	orders := make([]models.OrderLine, 0, len(records))
	for i, rec := range records {
		qty, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("failed to parse quantity in %s row %d: %w", s.orderPath, i+1, err)
		}
		price, err := decimal.NewFromString(rec[3])
		if err != nil {
			return nil, fmt.Errorf("failed to parse unit price in %s row %d: %w", s.orderPath, i+1, err)
		}
		orders = append(orders, models.OrderLine{
			Person:    rec[0],
			Wine:      rec[1],
			Quantity:  qty,
			UnitPrice: price,
		})
	}
	return orders, nil
}

// AppendOrder adds one line and rewrites the order file.
func (s *CSVStore) AppendOrder(ctx context.Context, line models.OrderLine) error {
	orders, err := s.LoadOrders(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, line)

	records := make([][]string, 0, len(orders))
	for _, l := range orders {
		records = append(records, []string{
			l.Person,
			l.Wine,
			strconv.Itoa(l.Quantity),
			l.UnitPrice.String(),
		})
	}
	if err := writeTable(s.orderPath, orderHeader, records); err != nil {
		return fmt.Errorf("failed to save orders: %w", err)
	}
	return nil
}

// ClearOrders removes the order file itself, so the log ceases to exist
// until the next order is added. Clearing a missing file is a no-op.
func (s *CSVStore) ClearOrders(ctx context.Context) error {
	if err := os.Remove(s.orderPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove order file: %w", err)
	}
	return nil
}

// readTable reads a headered CSV file and returns its data rows.
// A missing file yields no rows; a wrong header or ragged row fails.
func readTable(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	for i, col := range header {
		if records[0][i] != col {
			return nil, fmt.Errorf("unexpected header in %s: got %v, want %v", path, records[0], header)
		}
	}
	return records[1:], nil
}

// writeTable rewrites a headered CSV file in one shot. The write goes
// to a temp file in the same directory first, then renames over the
// target, so a crash mid-write never leaves a half-written table.
func writeTable(path string, header []string, records [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush rows: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
