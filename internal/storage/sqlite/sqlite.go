// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface, for keeping the tasting in a single database
// file instead of loose CSVs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/tvdberg/wijnproef/internal/models"
	"github.com/tvdberg/wijnproef/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadWines retrieves the full catalog in rowid order.
func (s *SQLiteStore) LoadWines(ctx context.Context) ([]models.WineEntry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, price FROM wines ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to get wines: %w", err)
	}
	defer rows.Close()

	wines := make([]models.WineEntry, 0)
	for rows.Next() {
		var (
			wine  models.WineEntry
			price string
		)
		if err := rows.Scan(&wine.Name, &price); err != nil {
			return nil, fmt.Errorf("failed to scan wine: %w", err)
		}
		if wine.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("failed to parse price for %q: %w", wine.Name, err)
		}
		wines = append(wines, wine)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wines: %w", err)
	}

	return wines, nil
}

// ReplaceWines swaps the whole catalog for the given entries in one
// transaction.
func (s *SQLiteStore) ReplaceWines(ctx context.Context, wines []models.WineEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM wines"); err != nil {
		return fmt.Errorf("failed to clear wines: %w", err)
	}
	for _, w := range wines {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO wines (id, name, price) VALUES (?, ?, ?)",
			uuid.New().String(), w.Name, w.Price.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert wine: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadOrders retrieves the order log in insertion order.
func (s *SQLiteStore) LoadOrders(ctx context.Context) ([]models.OrderLine, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT person, wine, quantity, unit_price FROM orders ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.OrderLine, 0)
	for rows.Next() {
		var (
			line  models.OrderLine
			price string
		)
		if err := rows.Scan(&line.Person, &line.Wine, &line.Quantity, &price); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if line.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("failed to parse unit price for %q: %w", line.Person, err)
		}
		orders = append(orders, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, nil
}

// AppendOrder inserts one order line at the end of the log.
func (s *SQLiteStore) AppendOrder(ctx context.Context, line models.OrderLine) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO orders (id, person, wine, quantity, unit_price, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		uuid.New().String(), line.Person, line.Wine, line.Quantity, line.UnitPrice.String(), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// ClearOrders deletes every order row. Already-empty is a no-op.
func (s *SQLiteStore) ClearOrders(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM orders"); err != nil {
		return fmt.Errorf("failed to clear orders: %w", err)
	}
	return nil
}
