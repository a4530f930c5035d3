package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"qrmenu/internal/domain"
	"qrmenu/internal/errors"
)

type MySQLOrderRepository struct {
	db        *sql.DB
	txTimeout time.Duration
}

func NewMySQLOrderRepository(db *sql.DB, txTimeout time.Duration) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db, txTimeout: txTimeout}
}

// CreateWithItems inserts the order row and all of its line items in
// one transaction. Either everything commits or nothing is visible to
// readers; there are no orphan line items.
func (r *MySQLOrderRepository) CreateWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) (uint64, error) {
	txCtx, cancel := context.WithTimeout(ctx, r.txTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	// Rollback after a successful commit is a no-op for MySQL.
	defer tx.Rollback()

	result, err := tx.ExecContext(txCtx, `
		INSERT INTO Orders (placeId, tableId, tableLabel, status, customerNotes, totalAmount)
		VALUES (?, ?, ?, ?, ?, ?)`,
		order.PlaceID, order.TableID, order.TableLabel, string(order.Status), order.CustomerNotes, order.TotalAmount,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	orderID := uint64(lastInsertID)

	for _, item := range items {
		if err := insertItem(txCtx, tx, orderID, item); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing order creation: %w", err)
	}

	return orderID, nil
}

// AppendItems adds line items to an existing order and recomputes the
// stored total from all persisted items, atomically.
func (r *MySQLOrderRepository) AppendItems(ctx context.Context, orderID uint64, items []domain.OrderItem) error {
	txCtx, cancel := context.WithTimeout(ctx, r.txTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		if err := insertItem(txCtx, tx, orderID, item); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(txCtx, `
		UPDATE Orders
		SET totalAmount = (
			SELECT COALESCE(SUM(quantity * unitPrice), 0) FROM OrderItems WHERE orderId = ?
		)
		WHERE id = ?`,
		orderID, orderID,
	)
	if err != nil {
		return fmt.Errorf("recomputing order total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item append: %w", err)
	}

	return nil
}

func insertItem(ctx context.Context, tx *sql.Tx, orderID uint64, item domain.OrderItem) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO OrderItems (orderId, menuItemId, quantity, unitPrice, specialRequest)
		VALUES (?, ?, ?, ?, ?)`,
		orderID, item.MenuItemID, item.Quantity, item.UnitPrice, item.SpecialRequest,
	)
	if err != nil {
		return fmt.Errorf("inserting order item: %w", err)
	}
	return nil
}

func (r *MySQLOrderRepository) FindByIDWithItems(ctx context.Context, id uint64) (*domain.Order, error) {
	query := `
		SELECT id, placeId, tableId, tableLabel, status, customerNotes, totalAmount, createdAt, updatedAt
		FROM Orders
		WHERE id = ?
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.PlaceID, &order.TableID, &order.TableLabel, &order.Status,
		&order.CustomerNotes, &order.TotalAmount, &order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	items, err := r.itemsByOrder(ctx, []uint64{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}

	return &order, nil
}

// ListByPlace returns a place's orders, newest first, optionally
// filtered by status. Line items are attached in one extra query.
func (r *MySQLOrderRepository) ListByPlace(ctx context.Context, placeID uint64, status domain.OrderStatus) ([]domain.Order, error) {
	query := `
		SELECT id, placeId, tableId, tableLabel, status, customerNotes, totalAmount, createdAt, updatedAt
		FROM Orders
		WHERE placeId = ?
	`
	args := []interface{}{placeID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY createdAt DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	ids := []uint64{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.PlaceID, &order.TableID, &order.TableLabel, &order.Status,
			&order.CustomerNotes, &order.TotalAmount, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		order.Items = []domain.OrderItem{}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.itemsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if got := items[orders[i].ID]; got != nil {
			orders[i].Items = got
		}
	}

	return orders, nil
}

func (r *MySQLOrderRepository) itemsByOrder(ctx context.Context, orderIDs []uint64) (map[uint64][]domain.OrderItem, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(orderIDs)), ",")
	query := fmt.Sprintf(`
		SELECT oi.id, oi.orderId, oi.menuItemId, COALESCE(mi.name, ''), oi.quantity, oi.unitPrice, oi.specialRequest
		FROM OrderItems oi
		LEFT JOIN MenuItems mi ON mi.id = oi.menuItemId
		WHERE oi.orderId IN (%s)
		ORDER BY oi.id`, placeholders)

	args := make([]interface{}, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	result := make(map[uint64][]domain.OrderItem)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.MenuItemID, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.SpecialRequest,
		); err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return result, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	query := `UPDATE Orders SET status = ?, updatedAt = NOW() WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

// Delete removes the order row; line items go with it via the foreign
// key cascade.
func (r *MySQLOrderRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}
