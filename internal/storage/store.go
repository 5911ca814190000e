// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/tvdberg/wijnproef/internal/models"
)

// Store defines the interface for catalog and order-log persistence.
// This abstraction allows swapping storage backends (CSV flat files,
// SQLite) without changing the service layer.
//
// Missing backing storage is never an error: load operations return an
// empty slice when nothing has been persisted yet.
type Store interface {
	// LoadWines returns all catalog entries, or an empty slice when no
	// catalog has been saved.
	LoadWines(ctx context.Context) ([]models.WineEntry, error)

	// ReplaceWines overwrites the persisted catalog with the given
	// entries. The whole table is replaced in one write; there is no
	// row-level diffing.
	ReplaceWines(ctx context.Context, wines []models.WineEntry) error

	// LoadOrders returns all order lines in the order they were added,
	// or an empty slice when no orders have been persisted.
	LoadOrders(ctx context.Context) ([]models.OrderLine, error)

	// AppendOrder persists one new order line at the end of the log.
	AppendOrder(ctx context.Context, line models.OrderLine) error

	// ClearOrders removes the entire order log, including its backing
	// artifact where the backend has one. Clearing an already-empty log
	// is a no-op.
	ClearOrders(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
