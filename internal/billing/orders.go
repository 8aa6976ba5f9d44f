package billing

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sanctify-api/internal/models"
)

// OrderLog is the audit-grade record of payment orders. Unlike the
// usage ledger it lives in MySQL: billing rows are relational,
// queryable history, not mutable profile state.
type OrderLog interface {
	Record(ctx context.Context, o models.Order) error
	MarkCaptured(ctx context.Context, orderID, status string, at time.Time) error
	ListByUser(ctx context.Context, uid string) ([]models.Order, error)
}

// MySQLOrderLog implements OrderLog on an orders table.
type MySQLOrderLog struct {
	db *sql.DB
}

var _ OrderLog = (*MySQLOrderLog)(nil)

func NewMySQLOrderLog(db *sql.DB) *MySQLOrderLog {
	return &MySQLOrderLog{db: db}
}

// Init creates the orders table.
func (l *MySQLOrderLog) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS orders (
		order_id VARCHAR(64) PRIMARY KEY,
		user_id VARCHAR(128) NOT NULL,
		reference VARCHAR(64) NOT NULL,
		amount VARCHAR(16) NOT NULL,
		currency VARCHAR(8) NOT NULL,
		status VARCHAR(32) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		captured_at TIMESTAMP NULL,
		INDEX idx_user_id (user_id),
		INDEX idx_created_at (created_at)
	) ENGINE=InnoDB`

	if _, err := l.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	return nil
}

func (l *MySQLOrderLog) Record(ctx context.Context, o models.Order) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO orders (order_id, user_id, reference, amount, currency, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		o.OrderID, o.UserID, o.Reference, o.Amount, o.Currency, o.Status)
	if err != nil {
		return fmt.Errorf("record order %s: %w", o.OrderID, err)
	}
	return nil
}

func (l *MySQLOrderLog) MarkCaptured(ctx context.Context, orderID, status string, at time.Time) error {
	_, err := l.db.ExecContext(ctx, `
		UPDATE orders SET status = ?, captured_at = ? WHERE order_id = ?`,
		status, at, orderID)
	if err != nil {
		return fmt.Errorf("mark order %s captured: %w", orderID, err)
	}
	return nil
}

func (l *MySQLOrderLog) ListByUser(ctx context.Context, uid string) ([]models.Order, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT order_id, user_id, reference, amount, currency, status, created_at, captured_at
		FROM orders WHERE user_id = ? ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		var capturedAt sql.NullTime
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.Reference, &o.Amount, &o.Currency, &o.Status, &o.CreatedAt, &capturedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if capturedAt.Valid {
			t := capturedAt.Time
			o.CapturedAt = &t
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
