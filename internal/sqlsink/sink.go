package sqlsink

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mqtli-go/mqtli/internal/sparkplug"
)

// Sink is one configured SqlStorage target: a driver, a connection, and the
// insert-statement template it expands on every dispatch.
type Sink struct {
	db       *sqlx.DB
	driver   Driver
	Template string
}

// Open connects to the database identified by dsn using driver's registered
// database/sql driver (go-sqlite3, go-sql-driver/mysql, or lib/pq,
// registered via blank import above).
func Open(driver Driver, dsn, template string) (*Sink, error) {
	db, err := sqlx.Open(driver.sqlxDriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlsink: open %s: %w", driver.sqlxDriverName(), err)
	}
	return &Sink{db: db, driver: driver, Template: template}, nil
}

func (s *Sink) Close() error { return s.db.Close() }

// Dispatch expands Template against ctx and executes it, once per metric
// when metrics is non-empty (the Sparkplug fan-out from spec.md §4.7),
// or once overall otherwise.
func (s *Sink) Dispatch(ctx context.Context, dctx DispatchContext, metrics []sparkplug.Metric) ([]Statement, error) {
	statements := BuildStatements(s.Template, s.driver, dctx, metrics)

	for _, st := range statements {
		if _, err := s.db.ExecContext(ctx, st.SQL, st.Args...); err != nil {
			return statements, fmt.Errorf("sqlsink: exec: %w", err)
		}
	}
	return statements, nil
}

// BuildStatements expands tmpl without touching the database, so the
// expansion rules can be tested and so the engine can log what would run.
func BuildStatements(tmpl string, driver Driver, dctx DispatchContext, metrics []sparkplug.Metric) []Statement {
	if len(metrics) == 0 {
		return []Statement{Expand(tmpl, driver, dctx, nil)}
	}

	out := make([]Statement, 0, len(metrics))
	for _, m := range metrics {
		binding := &metricBinding{name: m.Name, value: m.Bytes()}
		out = append(out, Expand(tmpl, driver, dctx, binding))
	}
	return out
}
