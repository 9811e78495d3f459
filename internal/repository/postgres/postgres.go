// Package postgres implements the service repository interfaces against
// PostgreSQL via database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func joinComma(parts []string) string {
	return strings.Join(parts, ", ")
}

// setBuilder accumulates SET clauses for a partial update.
type setBuilder struct {
	sets []string
	args []interface{}
	idx  int
}

func newSetBuilder() *setBuilder { return &setBuilder{idx: 1} }

func (b *setBuilder) add(col string, val interface{}) {
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", col, b.idx))
	b.args = append(b.args, val)
	b.idx++
}

func (b *setBuilder) empty() bool { return len(b.sets) == 0 }
