package allocation

import (
	"context"
	"database/sql"
)

// DBExecutor интерфейс исполнителя запросов (общий для *sql.DB и *sql.Tx)
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
