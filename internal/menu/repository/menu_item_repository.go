package repository

import (
	"context"
	"database/sql"
	"fmt"

	"qrmenu/internal/domain"
	"qrmenu/internal/dto"
	"qrmenu/internal/errors"
)

type MySQLMenuItemRepository struct {
	db *sql.DB
}

func NewMySQLMenuItemRepository(db *sql.DB) *MySQLMenuItemRepository {
	return &MySQLMenuItemRepository{db: db}
}

// FindByID is the price authority lookup used during order creation.
func (r *MySQLMenuItemRepository) FindByID(ctx context.Context, id uint64) (*domain.MenuItem, error) {
	query := `
		SELECT id, placeId, categoryId, name, description, price, isAvailable, createdAt, updatedAt
		FROM MenuItems
		WHERE id = ?
	`

	var item domain.MenuItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.PlaceID, &item.CategoryID, &item.Name, &item.Description,
		&item.Price, &item.IsAvailable, &item.CreatedAt, &item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("menu item with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying menu item by id: %w", err)
	}

	return &item, nil
}

// PublicMenu builds the diner-facing place/category/available-item
// tree, the producer for the menu:public cache entry.
func (r *MySQLMenuItemRepository) PublicMenu(ctx context.Context, placeID uint64) (*dto.PublicMenu, error) {
	var menu dto.PublicMenu
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM Places WHERE id = ?`, placeID).
		Scan(&menu.PlaceID, &menu.PlaceName)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("place with id %d not found", placeID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying place: %w", err)
	}

	query := `
		SELECT c.id, c.name, mi.id, mi.name, mi.description, mi.price
		FROM Categories c
		LEFT JOIN MenuItems mi
		  ON mi.categoryId = c.id
		 AND (mi.isAvailable IS NULL OR mi.isAvailable = 1)
		WHERE c.placeId = ?
		ORDER BY c.id, mi.id
	`

	rows, err := r.db.QueryContext(ctx, query, placeID)
	if err != nil {
		return nil, fmt.Errorf("querying public menu: %w", err)
	}
	defer rows.Close()

	menu.Categories = []dto.PublicCategory{}
	for rows.Next() {
		var (
			categoryID   uint64
			categoryName string
			itemID       sql.NullInt64
			itemName     sql.NullString
			itemDesc     sql.NullString
			itemPrice    sql.NullFloat64
		)
		if err := rows.Scan(&categoryID, &categoryName, &itemID, &itemName, &itemDesc, &itemPrice); err != nil {
			return nil, fmt.Errorf("scanning public menu row: %w", err)
		}

		n := len(menu.Categories)
		if n == 0 || menu.Categories[n-1].ID != categoryID {
			menu.Categories = append(menu.Categories, dto.PublicCategory{
				ID:    categoryID,
				Name:  categoryName,
				Items: []dto.PublicMenuItem{},
			})
			n++
		}

		if itemID.Valid {
			menu.Categories[n-1].Items = append(menu.Categories[n-1].Items, dto.PublicMenuItem{
				ID:          uint64(itemID.Int64),
				Name:        itemName.String,
				Description: itemDesc.String,
				Price:       itemPrice.Float64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating public menu rows: %w", err)
	}

	return &menu, nil
}
