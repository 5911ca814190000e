package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tvdberg/wijnproef/internal/models"
	"github.com/tvdberg/wijnproef/internal/storage/csvfile"
)

func newTestTasting(t *testing.T) *Tasting {
	t.Helper()
	dir := t.TempDir()
	store, err := csvfile.New(filepath.Join(dir, "wijnen.csv"), filepath.Join(dir, "proeverij.csv"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	tasting, err := NewTasting(context.Background(), store)
	if err != nil {
		t.Fatalf("Failed to create tasting: %v", err)
	}
	return tasting
}

func testCatalog() []models.WineEntry {
	return []models.WineEntry{
		{Name: "Merlot", Price: decimal.RequireFromString("10.00")},
		{Name: "Shiraz", Price: decimal.RequireFromString("12.00")},
	}
}

func TestAddOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("empty catalog blocks entry", func(t *testing.T) {
		tasting := newTestTasting(t)

		_, err := tasting.AddOrder(ctx, "Alice", "Merlot", 1)
		if !errors.Is(err, ErrEmptyCatalog) {
			t.Errorf("err = %v, want ErrEmptyCatalog", err)
		}
	})

	t.Run("snapshots the current price", func(t *testing.T) {
		tasting := newTestTasting(t)
		if err := tasting.ReplaceWines(ctx, testCatalog()); err != nil {
			t.Fatalf("ReplaceWines failed: %v", err)
		}

		line, err := tasting.AddOrder(ctx, "Alice", "Merlot", 2)
		if err != nil {
			t.Fatalf("AddOrder failed: %v", err)
		}
		if !line.UnitPrice.Equal(decimal.RequireFromString("10.00")) {
			t.Errorf("unit price = %s, want 10.00", line.UnitPrice)
		}
		if !line.LineTotal().Equal(decimal.RequireFromString("20.00")) {
			t.Errorf("line total = %s, want 20.00", line.LineTotal())
		}
	})

	t.Run("unknown wine is rejected", func(t *testing.T) {
		tasting := newTestTasting(t)
		if err := tasting.ReplaceWines(ctx, testCatalog()); err != nil {
			t.Fatalf("ReplaceWines failed: %v", err)
		}

		_, err := tasting.AddOrder(ctx, "Alice", "Beaujolais", 1)
		if !errors.Is(err, ErrUnknownWine) {
			t.Errorf("err = %v, want ErrUnknownWine", err)
		}
	})

	t.Run("invalid quantity and blank name are rejected", func(t *testing.T) {
		tasting := newTestTasting(t)
		if err := tasting.ReplaceWines(ctx, testCatalog()); err != nil {
			t.Fatalf("ReplaceWines failed: %v", err)
		}

		if _, err := tasting.AddOrder(ctx, "Alice", "Merlot", 0); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("quantity 0: err = %v, want ErrInvalidOrder", err)
		}
		if _, err := tasting.AddOrder(ctx, "", "Merlot", 1); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("blank name: err = %v, want ErrInvalidOrder", err)
		}
	})

	t.Run("duplicate catalog names resolve to the first match", func(t *testing.T) {
		tasting := newTestTasting(t)
		err := tasting.ReplaceWines(ctx, []models.WineEntry{
			{Name: "Merlot", Price: decimal.RequireFromString("10.00")},
			{Name: "Merlot", Price: decimal.RequireFromString("99.00")},
		})
		if err != nil {
			t.Fatalf("ReplaceWines failed: %v", err)
		}

		line, err := tasting.AddOrder(ctx, "Alice", "Merlot", 1)
		if err != nil {
			t.Fatalf("AddOrder failed: %v", err)
		}
		if !line.UnitPrice.Equal(decimal.RequireFromString("10.00")) {
			t.Errorf("unit price = %s, want the first row's 10.00", line.UnitPrice)
		}
	})
}

func TestSnapshotSemantics(t *testing.T) {
	ctx := context.Background()
	tasting := newTestTasting(t)
	if err := tasting.ReplaceWines(ctx, testCatalog()); err != nil {
		t.Fatalf("ReplaceWines failed: %v", err)
	}

	if _, err := tasting.AddOrder(ctx, "Alice", "Merlot", 2); err != nil {
		t.Fatalf("AddOrder failed: %v", err)
	}

	// Re-price Merlot and drop Shiraz entirely.
	err := tasting.ReplaceWines(ctx, []models.WineEntry{
		{Name: "Merlot", Price: decimal.RequireFromString("14.00")},
	})
	if err != nil {
		t.Fatalf("ReplaceWines failed: %v", err)
	}

	orders := tasting.Orders()
	if len(orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders))
	}
	if !orders[0].UnitPrice.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("existing order price = %s, want the snapshotted 10.00", orders[0].UnitPrice)
	}

	// Removing a wine never invalidates an order that references it.
	err = tasting.ReplaceWines(ctx, []models.WineEntry{
		{Name: "Chablis", Price: decimal.RequireFromString("15.00")},
	})
	if err != nil {
		t.Fatalf("ReplaceWines failed: %v", err)
	}
	orders = tasting.Orders()
	if len(orders) != 1 || orders[0].Wine != "Merlot" {
		t.Errorf("orphaned order should survive catalog removal, got %+v", orders)
	}

	// New orders use the new catalog.
	line, err := tasting.AddOrder(ctx, "Bob", "Chablis", 1)
	if err != nil {
		t.Fatalf("AddOrder failed: %v", err)
	}
	if !line.UnitPrice.Equal(decimal.RequireFromString("15.00")) {
		t.Errorf("new order price = %s, want 15.00", line.UnitPrice)
	}
}

func TestResetThenAdd(t *testing.T) {
	ctx := context.Background()
	tasting := newTestTasting(t)
	if err := tasting.ReplaceWines(ctx, testCatalog()); err != nil {
		t.Fatalf("ReplaceWines failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := tasting.AddOrder(ctx, "Alice", "Merlot", 1); err != nil {
			t.Fatalf("AddOrder failed: %v", err)
		}
	}

	if err := tasting.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if got := tasting.Orders(); len(got) != 0 {
		t.Fatalf("got %d orders after reset, want 0", len(got))
	}

	// Reset on an already-empty log is a no-op.
	if err := tasting.Reset(ctx); err != nil {
		t.Fatalf("Reset on empty log failed: %v", err)
	}

	if _, err := tasting.AddOrder(ctx, "Bob", "Shiraz", 2); err != nil {
		t.Fatalf("AddOrder failed: %v", err)
	}
	orders := tasting.Orders()
	if len(orders) != 1 {
		t.Fatalf("got %d orders after reset+add, want 1", len(orders))
	}
	if orders[0].Person != "Bob" {
		t.Errorf("order person = %q, want %q with no trace of prior state", orders[0].Person, "Bob")
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	tasting := newTestTasting(t)
	if err := tasting.ReplaceWines(ctx, testCatalog()); err != nil {
		t.Fatalf("ReplaceWines failed: %v", err)
	}

	for _, o := range []struct {
		person string
		wine   string
		qty    int
	}{
		{"Alice", "Merlot", 2},
		{"Bob", "Merlot", 1},
		{"Alice", "Shiraz", 3},
	} {
		if _, err := tasting.AddOrder(ctx, o.person, o.wine, o.qty); err != nil {
			t.Fatalf("AddOrder(%s) failed: %v", o.person, err)
		}
	}

	s := tasting.Summary()
	if s.TotalBottles != 6 {
		t.Errorf("TotalBottles = %d, want 6", s.TotalBottles)
	}
	if !s.TotalAmount.Equal(decimal.RequireFromString("56.00").Add(decimal.RequireFromString("10.00"))) {
		t.Errorf("TotalAmount = %s, want 66.00", s.TotalAmount)
	}
	if s.FreeBottles != 1 {
		t.Errorf("FreeBottles = %d, want 1", s.FreeBottles)
	}
}

func TestSessionReloadsPersistedState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	winePath := filepath.Join(dir, "wijnen.csv")
	orderPath := filepath.Join(dir, "proeverij.csv")

	store, err := csvfile.New(winePath, orderPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	tasting, err := NewTasting(ctx, store)
	if err != nil {
		t.Fatalf("Failed to create tasting: %v", err)
	}
	if err := tasting.ReplaceWines(ctx, testCatalog()); err != nil {
		t.Fatalf("ReplaceWines failed: %v", err)
	}
	if _, err := tasting.AddOrder(ctx, "Alice", "Merlot", 2); err != nil {
		t.Fatalf("AddOrder failed: %v", err)
	}

	// A new session over the same files sees the same state.
	store2, err := csvfile.New(winePath, orderPath)
	if err != nil {
		t.Fatalf("Failed to create second store: %v", err)
	}
	reloaded, err := NewTasting(ctx, store2)
	if err != nil {
		t.Fatalf("Failed to reload tasting: %v", err)
	}
	if got := reloaded.Wines(); len(got) != 2 {
		t.Errorf("reloaded catalog has %d wines, want 2", len(got))
	}
	if got := reloaded.Orders(); len(got) != 1 {
		t.Errorf("reloaded log has %d orders, want 1", len(got))
	}
}
