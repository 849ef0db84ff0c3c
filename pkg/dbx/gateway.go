// Package dbx is the boundary between repositories and PostgreSQL.
//
// Repositories talk to a Gateway, which executes one parameterized
// statement and hands back the rows as column -> value maps. Failures are
// returned as errors and are never folded into an empty result.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/jmoiron/sqlx"
)

// Row is one result row keyed by column name
type Row map[string]any

// Gateway executes parameterized statements
type Gateway interface {
	// Query runs query with positional args and returns every row.
	// Statements without a result set return an empty slice.
	Query(ctx context.Context, query string, args ...any) ([]Row, error)

	// WithTx runs fn against a gateway bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Gateway) error) error
}

// SQLXGateway implements Gateway on top of sqlx
type SQLXGateway struct {
	db        *sqlx.DB
	q         sqlx.QueryerContext
	slowQuery time.Duration
	traceSQL  bool
}

// Option configures a SQLXGateway
type Option func(*SQLXGateway)

// WithSlowQueryThreshold logs statements slower than d at warn level
func WithSlowQueryThreshold(d time.Duration) Option {
	return func(g *SQLXGateway) { g.slowQuery = d }
}

// WithStatementLogging logs every statement at debug level
func WithStatementLogging(enabled bool) Option {
	return func(g *SQLXGateway) { g.traceSQL = enabled }
}

// NewSQLXGateway wraps an open sqlx pool
func NewSQLXGateway(db *sqlx.DB, opts ...Option) *SQLXGateway {
	g := &SQLXGateway{db: db, q: db}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *SQLXGateway) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	start := time.Now()
	defer g.observe(query, args, start)

	rows, err := g.q.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Row, 0)
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		result = append(result, Row(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (g *SQLXGateway) WithTx(ctx context.Context, fn func(tx Gateway) error) (err error) {
	// already inside a transaction
	if g.db == nil {
		return fn(g)
	}

	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logx.Errorf("rollback failed: %v", rbErr)
			}
		}
	}()

	txGateway := &SQLXGateway{q: tx, slowQuery: g.slowQuery, traceSQL: g.traceSQL}
	if err = fn(txGateway); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (g *SQLXGateway) observe(query string, args []any, start time.Time) {
	elapsed := time.Since(start)

	if g.slowQuery > 0 && elapsed > g.slowQuery {
		logx.Logger().Warn().
			Str("sql", query).
			Int("args", len(args)).
			Dur("elapsed", elapsed).
			Msg("slow query")
		return
	}
	if g.traceSQL {
		logx.Logger().Debug().
			Str("sql", query).
			Interface("args", args).
			Dur("elapsed", elapsed).
			Msg("query")
	}
}
