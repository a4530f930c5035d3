package repository

import (
	"context"
	"testing"

	apperrors "qrmenu/internal/errors"
	"qrmenu/internal/testutil"
)

func TestFindByID_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	placeID := testutil.SeedPlace(t, db, 10, "Trattoria")

	repo := NewMySQLPlaceRepository(db)
	ctx := context.Background()

	place, err := repo.FindByID(ctx, placeID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if place.OwnerID != 10 || place.Name != "Trattoria" {
		t.Errorf("unexpected place: %+v", place)
	}
	if !place.IsOwnedBy(10) || place.IsOwnedBy(11) {
		t.Error("ownership check misbehaves")
	}

	_, err = repo.FindByID(ctx, 999999)
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestFindTable_ScopedToPlace_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	placeID := testutil.SeedPlace(t, db, 10, "Trattoria")
	otherID := testutil.SeedPlace(t, db, 11, "Bistro")
	tableID := testutil.SeedTable(t, db, placeID, "Window 3")

	repo := NewMySQLPlaceRepository(db)
	ctx := context.Background()

	table, err := repo.FindTable(ctx, tableID, placeID)
	if err != nil {
		t.Fatalf("FindTable failed: %v", err)
	}
	if table.Label != "Window 3" {
		t.Errorf("unexpected table: %+v", table)
	}

	// the same table id is invisible through another place
	_, err = repo.FindTable(ctx, tableID, otherID)
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError for cross-place lookup, got %v", err)
	}
}

func TestStats_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	placeID := testutil.SeedPlace(t, db, 10, "Trattoria")
	testutil.SeedTable(t, db, placeID, "T1")
	testutil.SeedTable(t, db, placeID, "T2")

	// one order created now counts in both windows, one aged ten days
	// ago counts in neither
	if _, err := db.Exec(
		`INSERT INTO Orders (placeId, tableLabel, status, totalAmount) VALUES (?, 'T1', 'pending', 450)`,
		placeID,
	); err != nil {
		t.Fatalf("seeding order: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO Orders (placeId, tableLabel, status, totalAmount, createdAt) VALUES (?, 'T2', 'served', 900, NOW() - INTERVAL 10 DAY)`,
		placeID,
	); err != nil {
		t.Fatalf("seeding old order: %v", err)
	}

	repo := NewMySQLPlaceRepository(db)

	stats, err := repo.Stats(context.Background(), placeID)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.TablesCount != 2 {
		t.Errorf("expected 2 tables, got %d", stats.TablesCount)
	}
	if stats.OrdersToday != 1 {
		t.Errorf("expected 1 order today, got %d", stats.OrdersToday)
	}
	if stats.OrdersWeek != 1 {
		t.Errorf("expected 1 order this week, got %d", stats.OrdersWeek)
	}
}
