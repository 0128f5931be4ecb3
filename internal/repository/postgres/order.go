package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jazzypay/internal/domain"
	"jazzypay/internal/repository"
)

// OrderRepository is a PostgreSQL implementation of repository.OrderRepository.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, currency, total, first_name, last_name, email, phone, status
		FROM orders WHERE id = $1
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.Currency,
		&order.Total,
		&order.Billing.FirstName,
		&order.Billing.LastName,
		&order.Billing.Email,
		&order.Billing.Phone,
		&order.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &order, nil
}

// SetStatus transitions an order from an expected prior status to a new
// one and records a note, atomically. The WHERE clause on the prior
// status is what makes concurrent transitions for one order linearizable:
// a racing caller sees ErrStaleStatus instead of silently overwriting.
func (r *OrderRepository) SetStatus(ctx context.Context, id string, from, to domain.OrderStatus, note string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		// Distinguish a missing order from a lost race.
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrStaleStatus
	}

	if note != "" {
		if err := insertNote(ctx, tx, id, note); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// AddNote appends an order note without changing status.
func (r *OrderRepository) AddNote(ctx context.Context, id string, note string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}

	if err := insertNote(ctx, tx, id, note); err != nil {
		return err
	}

	return tx.Commit()
}

// ReduceStock decrements reserved inventory for every line item on the
// order, in one statement so a crash cannot leave items half-reduced.
func (r *OrderRepository) ReduceStock(ctx context.Context, id string) error {
	query := `
		UPDATE products p
		SET stock = p.stock - oi.quantity
		FROM order_items oi
		WHERE oi.order_id = $1 AND p.id = oi.product_id
	`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to reduce stock for order %s: %w", id, err)
	}

	return nil
}

func insertNote(ctx context.Context, q Querier, orderID, note string) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO order_notes (order_id, note, created_at) VALUES ($1, $2, NOW())`,
		orderID, note,
	)
	return err
}
