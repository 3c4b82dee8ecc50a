package db

import "testing"

func TestRebind(t *testing.T) {
	q := "INSERT INTO deliveries (order_no, delivered_to, cost_in_pence) VALUES (?, ?, ?)"

	if got := SQLite.Rebind(q); got != q {
		t.Fatalf("sqlite rebind = %q, want unchanged", got)
	}

	want := "INSERT INTO deliveries (order_no, delivered_to, cost_in_pence) VALUES ($1, $2, $3)"
	if got := Postgres.Rebind(q); got != want {
		t.Fatalf("postgres rebind = %q, want %q", got, want)
	}
}

func TestOpenSQLiteMemory(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE t (x INTEGER)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO t (x) VALUES (1)`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}
