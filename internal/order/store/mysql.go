package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"orderflow/internal/domain"
)

const mysqlDuplicateEntry = 1062

// MySQLStore persists order aggregates in the Orders and OrderItems tables.
// CompareAndSwap locks the order row for the duration of the transaction, so
// transitions on the same id are serialized by the database.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) Put(ctx context.Context, order domain.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	insertOrder := `
		INSERT INTO Orders (id, status, totalAmount, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, insertOrder,
		order.ID, order.Status.String(), order.TotalAmount, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrConflict
		}
		return fmt.Errorf("inserting order: %w", err)
	}

	insertItem := `
		INSERT INTO OrderItems (orderId, position, productId, quantity, unitPrice, subtotal)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for i, item := range order.Items {
		_, err = tx.ExecContext(ctx, insertItem,
			order.ID, i, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("inserting order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *MySQLStore) Get(ctx context.Context, id string) (domain.Order, error) {
	order, err := scanOrder(ctx, s.db, id, false)
	if err != nil {
		return domain.Order{}, err
	}

	items, err := scanItems(ctx, s.db, id)
	if err != nil {
		return domain.Order{}, err
	}

	order.Items = items
	return order, nil
}

func (s *MySQLStore) CompareAndSwap(ctx context.Context, id string, expected domain.Status, mutate func(domain.Order) domain.Order) (domain.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	order, err := scanOrder(ctx, tx, id, true)
	if err != nil {
		return domain.Order{}, err
	}

	if order.Status != expected {
		return domain.Order{}, &StatusMismatchError{Current: order.Status}
	}

	items, err := scanItems(ctx, tx, id)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items

	next := mutate(order)

	// Items and the total are immutable after Put; only the status and
	// UpdatedAt are written back.
	update := `UPDATE Orders SET status = ?, updatedAt = ? WHERE id = ?`
	result, err := tx.ExecContext(ctx, update, next.Status.String(), next.UpdatedAt, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("updating order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Order{}, fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.Order{}, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("committing transaction: %w", err)
	}

	return next, nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanOrder(ctx context.Context, q rowQuerier, id string, forUpdate bool) (domain.Order, error) {
	query := `
		SELECT id, status, totalAmount, createdAt, updatedAt
		FROM Orders
		WHERE id = ?
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var order domain.Order
	var status string
	err := q.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &status, &order.TotalAmount, &order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.Order{}, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("querying order by id: %w", err)
	}

	order.Status = domain.Status(status)
	return order, nil
}

func scanItems(ctx context.Context, q rowQuerier, orderID string) ([]domain.OrderItem, error) {
	query := `
		SELECT productId, quantity, unitPrice, subtotal
		FROM OrderItems
		WHERE orderId = ?
		ORDER BY position
	`

	rows, err := q.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return items, nil
}
