// Package service holds the tasting session: the catalog and order log
// loaded in memory, written through to storage on every mutation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tvdberg/wijnproef/internal/aggregate"
	"github.com/tvdberg/wijnproef/internal/models"
	"github.com/tvdberg/wijnproef/internal/storage"
)

var (
	// ErrEmptyCatalog is returned when an order is entered before any
	// wines exist; the UI should block entry and show a warning instead.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrUnknownWine is returned when the ordered wine is not in the
	// current catalog.
	ErrUnknownWine = errors.New("wine not in catalog")

	// ErrInvalidOrder is returned for a blank person name or a quantity
	// below one.
	ErrInvalidOrder = errors.New("invalid order")
)

// Tasting is the session state for one tasting evening. It is
// constructed once at startup with both tables eagerly loaded and is
// the single writer to its storage backend. A mutex serializes
// mutations so concurrent HTTP requests cannot interleave a read-modify-
// write.
type Tasting struct {
	mu     sync.Mutex
	store  storage.Store
	wines  []models.WineEntry
	orders []models.OrderLine
}

// NewTasting loads both tables from the store and returns the session.
// Absent storage loads as empty tables; malformed storage fails here.
func NewTasting(ctx context.Context, store storage.Store) (*Tasting, error) {
	wines, err := store.LoadWines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	orders, err := store.LoadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	slog.Info("Tasting session loaded", "wines", len(wines), "orders", len(orders))
	return &Tasting{store: store, wines: wines, orders: orders}, nil
}

// Wines returns a copy of the current catalog.
func (t *Tasting) Wines() []models.WineEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.WineEntry, len(t.wines))
	copy(out, t.wines)
	return out
}

// Orders returns a copy of the current order log.
func (t *Tasting) Orders() []models.OrderLine {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.OrderLine, len(t.orders))
	copy(out, t.orders)
	return out
}

// ReplaceWines swaps the whole catalog for the edited table and writes
// it through to storage. Row inserts, edits and deletions all arrive as
// one full replace; existing order lines keep their snapshotted prices
// regardless of what changes here. Duplicate names are accepted, as the
// editor always has, but logged since order entry will resolve them to
// the first match.
func (t *Tasting) ReplaceWines(ctx context.Context, edited []models.WineEntry) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	seen := make(map[string]bool, len(edited))
	for _, w := range edited {
		if seen[w.Name] {
			slog.Warn("Catalog contains duplicate wine name; first match wins at order entry", "name", w.Name)
		}
		seen[w.Name] = true
	}

	if err := t.store.ReplaceWines(ctx, edited); err != nil {
		return err
	}
	t.wines = make([]models.WineEntry, len(edited))
	copy(t.wines, edited)

	slog.Info("Catalog replaced", "wines", len(t.wines))
	return nil
}

// AddOrder validates one order, snapshots the wine's current price, and
// appends the line to the log with a write-through to storage. The
// catalog itself is never mutated.
func (t *Tasting) AddOrder(ctx context.Context, person, wine string, quantity int) (models.OrderLine, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.wines) == 0 {
		return models.OrderLine{}, ErrEmptyCatalog
	}
	if person == "" {
		return models.OrderLine{}, fmt.Errorf("%w: person name is required", ErrInvalidOrder)
	}
	if quantity < 1 {
		return models.OrderLine{}, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidOrder, quantity)
	}

	entry, ok := t.findWine(wine)
	if !ok {
		return models.OrderLine{}, fmt.Errorf("%w: %q", ErrUnknownWine, wine)
	}

	line := models.OrderLine{
		Person:    person,
		Wine:      entry.Name,
		Quantity:  quantity,
		UnitPrice: entry.Price,
	}
	if err := t.store.AppendOrder(ctx, line); err != nil {
		return models.OrderLine{}, err
	}
	t.orders = append(t.orders, line)

	slog.Info("Order added", "person", person, "wine", entry.Name, "quantity", quantity, "unit_price", entry.Price)
	return line, nil
}

// Reset clears the order log and removes its backing artifact, giving
// the evening a clean start. Resetting an empty log is a no-op.
func (t *Tasting) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.ClearOrders(ctx); err != nil {
		return err
	}
	cleared := len(t.orders)
	t.orders = nil

	slog.Info("Tasting reset", "cleared_orders", cleared)
	return nil
}

// Summary aggregates the current order log.
func (t *Tasting) Summary() models.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return aggregate.Summarize(t.orders)
}

// findWine returns the first catalog entry with the given name.
func (t *Tasting) findWine(name string) (models.WineEntry, bool) {
	for _, w := range t.wines {
		if w.Name == name {
			return w, true
		}
	}
	return models.WineEntry{}, false
}
