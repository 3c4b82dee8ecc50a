package repositories

import (
	"context"
	"database/sql"
	"drone-flight-planner/internal/platform/db"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// InitSchema creates the order and cache tables if they do not exist yet.
func InitSchema(ctx context.Context, conn *sql.DB, dialect db.Dialect) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	dateType := "TEXT"
	if dialect == db.Postgres {
		dateType = "DATE"
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOrdersQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS orders (
		order_no CHAR(8) PRIMARY KEY,
		delivery_date %s NOT NULL,
		customer CHAR(8) NOT NULL,
		deliver_to VARCHAR(19) NOT NULL
	);
	`, dateType)

	createOrderDetailsQuery := `
	CREATE TABLE IF NOT EXISTS order_details (
		order_no CHAR(8) NOT NULL,
		position INTEGER NOT NULL,
		item VARCHAR(58) NOT NULL,
		PRIMARY KEY (order_no, position)
	);
	`

	createWordCacheQuery := `
	CREATE TABLE IF NOT EXISTS word_cache (
		word VARCHAR(64) PRIMARY KEY,
		lng DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_delivery_date
	ON orders(delivery_date);
	`

	statements := []string{
		createOrdersQuery,
		createOrderDetailsQuery,
		createWordCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type OrderSeed struct {
	OrderNo      string   `json:"order_no"`
	DeliveryDate string   `json:"delivery_date"`
	Customer     string   `json:"customer"`
	DeliverTo    string   `json:"deliver_to"`
	Items        []string `json:"items"`
}

// SeedFromJSON loads orders and their items from a JSON file, replacing
// any order with the same number.
func SeedFromJSON(ctx context.Context, conn *sql.DB, dialect db.Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed orders: read %q: %w", jsonPath, err)
	}

	var data []OrderSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed orders: parse json: %w", err)
	}

	rows := make([]OrderSeed, 0, len(data))
	for i, item := range data {
		orderNo := strings.TrimSpace(item.OrderNo)
		if orderNo == "" {
			return fmt.Errorf("seed orders: item at index %d: order_no cannot be empty", i+1)
		}
		if _, err := time.Parse(time.DateOnly, item.DeliveryDate); err != nil {
			return fmt.Errorf("seed orders: order %s: invalid delivery_date %q: %w", orderNo, item.DeliveryDate, err)
		}
		dest := strings.TrimSpace(item.DeliverTo)
		if dest == "" {
			return fmt.Errorf("seed orders: order %s: deliver_to cannot be empty", orderNo)
		}
		if len(item.Items) == 0 {
			return fmt.Errorf("seed orders: order %s: items cannot be empty", orderNo)
		}

		item.OrderNo = orderNo
		item.DeliverTo = dest
		rows = append(rows, item)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed orders: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteDetails, err := tx.PrepareContext(ctx, dialect.Rebind(`DELETE FROM order_details WHERE order_no = ?;`))
	if err != nil {
		return fmt.Errorf("seed orders: prepare delete: %w", err)
	}
	defer deleteDetails.Close()

	insertOrder, err := tx.PrepareContext(ctx, dialect.Rebind(`
	INSERT INTO orders (
		order_no,
		delivery_date,
		customer,
		deliver_to
	)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (order_no) DO UPDATE
	SET delivery_date = excluded.delivery_date,
		customer = excluded.customer,
		deliver_to = excluded.deliver_to;
	`))
	if err != nil {
		return fmt.Errorf("seed orders: prepare order insert: %w", err)
	}
	defer insertOrder.Close()

	insertItem, err := tx.PrepareContext(ctx, dialect.Rebind(`
	INSERT INTO order_details (order_no, position, item)
	VALUES (?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("seed orders: prepare item insert: %w", err)
	}
	defer insertItem.Close()

	for _, o := range rows {
		if _, err := insertOrder.ExecContext(ctx, o.OrderNo, o.DeliveryDate, o.Customer, o.DeliverTo); err != nil {
			return fmt.Errorf("seed orders: insert order_no=%s: %w", o.OrderNo, err)
		}
		if _, err := deleteDetails.ExecContext(ctx, o.OrderNo); err != nil {
			return fmt.Errorf("seed orders: clear items order_no=%s: %w", o.OrderNo, err)
		}
		for pos, item := range o.Items {
			if _, err := insertItem.ExecContext(ctx, o.OrderNo, pos, item); err != nil {
				return fmt.Errorf("seed orders: insert item order_no=%s position=%d: %w", o.OrderNo, pos, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed orders: commit tx: %w", err)
	}

	return nil
}
