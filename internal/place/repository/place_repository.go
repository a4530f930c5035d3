package repository

import (
	"context"
	"database/sql"
	"fmt"

	"qrmenu/internal/domain"
	"qrmenu/internal/dto"
	"qrmenu/internal/errors"
)

type MySQLPlaceRepository struct {
	db *sql.DB
}

func NewMySQLPlaceRepository(db *sql.DB) *MySQLPlaceRepository {
	return &MySQLPlaceRepository{db: db}
}

func (r *MySQLPlaceRepository) FindByID(ctx context.Context, id uint64) (*domain.Place, error) {
	query := `
		SELECT id, ownerId, name, createdAt, updatedAt
		FROM Places
		WHERE id = ?
	`

	var place domain.Place
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&place.ID, &place.OwnerID, &place.Name, &place.CreatedAt, &place.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("place with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying place by id: %w", err)
	}

	return &place, nil
}

// FindTable resolves a table reference scoped to a place so a request
// cannot attach an order to another restaurant's table.
func (r *MySQLPlaceRepository) FindTable(ctx context.Context, tableID, placeID uint64) (*domain.Table, error) {
	query := `SELECT id, placeId, label FROM Tables WHERE id = ? AND placeId = ?`

	var table domain.Table
	err := r.db.QueryRowContext(ctx, query, tableID, placeID).Scan(&table.ID, &table.PlaceID, &table.Label)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("table with id %d not found", tableID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying table by id: %w", err)
	}

	return &table, nil
}

// Stats recomputes the place:stats view from the store. "Today" is
// server-local midnight; the week window is the trailing 7 days.
func (r *MySQLPlaceRepository) Stats(ctx context.Context, placeID uint64) (*dto.PlaceStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM Tables WHERE placeId = ?),
			(SELECT COUNT(*) FROM Orders WHERE placeId = ? AND createdAt >= CURDATE()),
			(SELECT COUNT(*) FROM Orders WHERE placeId = ? AND createdAt >= NOW() - INTERVAL 7 DAY)
	`

	var stats dto.PlaceStats
	err := r.db.QueryRowContext(ctx, query, placeID, placeID, placeID).
		Scan(&stats.TablesCount, &stats.OrdersToday, &stats.OrdersWeek)
	if err != nil {
		return nil, fmt.Errorf("querying place stats: %w", err)
	}

	return &stats, nil
}
