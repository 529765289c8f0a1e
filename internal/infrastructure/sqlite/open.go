// Package sqlite guarda el log de decisiones en una base SQLite embebida (modernc.org/sqlite, sin cgo).
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// pragmas por conexión. synchronous(FULL): un append confirmado sobrevive a un corte de energía.
const pragmas = "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)&_pragma=busy_timeout(5000)"

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
  seq             INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id      TEXT    NOT NULL,
  product_name    TEXT    NOT NULL,
  decided_at      TEXT    NOT NULL,
  observed_stock  INTEGER NOT NULL,
  daily_demand    REAL    NOT NULL,
  days_of_stock   REAL    NOT NULL,
  lead_time_days  INTEGER NOT NULL,
  risk_factor     REAL    NOT NULL,
  risk_level      TEXT    NOT NULL,
  action          TEXT    NOT NULL,
  reorder_qty     INTEGER NOT NULL CHECK (reorder_qty >= 0),
  reason          TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_decisions_product ON decisions(product_id, seq);
`

// Open abre (o crea) la base en path y asegura el esquema.
// path ":memory:" o un DSN "file:..." se usan tal cual.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := path
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?%s", path, pragmas)
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open: %w", err)
	}

	// Una sola conexión: un solo escritor y la base en memoria no se pierde al reciclar conexiones.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}
