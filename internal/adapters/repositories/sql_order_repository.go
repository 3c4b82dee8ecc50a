package repositories

import (
	"context"
	"database/sql"
	"drone-flight-planner/internal/domain"
	"drone-flight-planner/internal/platform/db"
	"drone-flight-planner/internal/platform/obs"
	"errors"
	"fmt"
	"time"
)

// SQL-backed implementation of the OrderRepository port.
type SQLOrderRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLOrderRepository(conn *sql.DB, dialect db.Dialect) *SQLOrderRepository {
	return &SQLOrderRepository{DB: conn, Dialect: dialect}
}

// ListOrders returns the orders due on date, ordered by order number,
// each with its items in the order they were placed.
func (s *SQLOrderRepository) ListOrders(ctx context.Context, date string) (_ []*domain.Order, err error) {
	defer obs.Time(ctx, "orders.ListOrders")(&err)

	if s.DB == nil {
		return nil, errors.New("sql order repository: DB is nil")
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, fmt.Errorf("list orders: invalid date %q: %w", date, err)
	}

	query := `
	SELECT
		o.order_no,
		o.customer,
		o.deliver_to,
		d.item
	FROM orders o
	LEFT JOIN order_details d ON d.order_no = o.order_no
	WHERE o.delivery_date = ?
	ORDER BY o.order_no, d.position;
	`
	rows, err := s.DB.QueryContext(ctx, s.Dialect.Rebind(query), date)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 32)
	var current *domain.Order
	for rows.Next() {
		var orderNo, customer, deliverTo string
		var item sql.NullString
		if err := rows.Scan(&orderNo, &customer, &deliverTo, &item); err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}

		if current == nil || current.OrderNo != orderNo {
			current = &domain.Order{
				OrderNo:      orderNo,
				DeliveryDate: date,
				Customer:     customer,
				DeliverTo:    deliverTo,
			}
			orders = append(orders, current)
		}
		if item.Valid {
			current.Items = append(current.Items, item.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return orders, nil
}
