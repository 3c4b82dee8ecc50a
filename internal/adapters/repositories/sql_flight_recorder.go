package repositories

import (
	"context"
	"database/sql"
	"drone-flight-planner/internal/domain"
	"drone-flight-planner/internal/platform/db"
	"drone-flight-planner/internal/platform/obs"
	"errors"
	"fmt"
)

// SQLFlightRecorder implements FlightRecorder.
// Each save drops and recreates its table, so only the latest run is kept.
type SQLFlightRecorder struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLFlightRecorder(conn *sql.DB, dialect db.Dialect) *SQLFlightRecorder {
	return &SQLFlightRecorder{DB: conn, Dialect: dialect}
}

func (s *SQLFlightRecorder) SaveDeliveries(ctx context.Context, records []domain.DeliveryRecord) (err error) {
	defer obs.Time(ctx, "recorder.SaveDeliveries")(&err)

	create := `
	CREATE TABLE deliveries (
		order_no CHAR(8),
		delivered_to VARCHAR(19),
		cost_in_pence INTEGER
	);
	`
	insert := `
	INSERT INTO deliveries (order_no, delivered_to, cost_in_pence)
	VALUES (?, ?, ?);
	`

	return s.replaceTable(ctx, "deliveries", create, insert, len(records), func(i int) []any {
		r := records[i]
		return []any{r.OrderNo, r.DeliverTo, r.PriceInPence}
	})
}

func (s *SQLFlightRecorder) SaveFlightPath(ctx context.Context, events []domain.FlightEvent) (err error) {
	defer obs.Time(ctx, "recorder.SaveFlightPath")(&err)

	create := `
	CREATE TABLE flightpath (
		order_no CHAR(8),
		from_longitude DOUBLE PRECISION,
		from_latitude DOUBLE PRECISION,
		angle INTEGER,
		to_longitude DOUBLE PRECISION,
		to_latitude DOUBLE PRECISION
	);
	`
	insert := `
	INSERT INTO flightpath (
		order_no,
		from_longitude,
		from_latitude,
		angle,
		to_longitude,
		to_latitude
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`

	return s.replaceTable(ctx, "flightpath", create, insert, len(events), func(i int) []any {
		e := events[i]
		return []any{e.OrderTag, e.From.Lng, e.From.Lat, e.Heading, e.To.Lng, e.To.Lat}
	})
}

// replaceTable recreates table and inserts n rows in one transaction.
func (s *SQLFlightRecorder) replaceTable(
	ctx context.Context,
	table, create, insert string,
	n int,
	row func(i int) []any,
) error {
	if s.DB == nil {
		return errors.New("sql flight recorder: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save %s: begin tx: %w", table, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+";"); err != nil {
		return fmt.Errorf("save %s: drop table: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("save %s: create table: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, s.Dialect.Rebind(insert))
	if err != nil {
		return fmt.Errorf("save %s: prepare insert: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			return fmt.Errorf("save %s: insert row %d: %w", table, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save %s: commit tx: %w", table, err)
	}

	return nil
}
