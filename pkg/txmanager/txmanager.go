// Package txmanager менеджер транзакций поверх database/sql
//
// Сериализуемые транзакции используются use case'ами, которым нужна
// согласованность "прочитал — решил — записал" по одному ресурсу: решение
// допуска и запись аллокации происходят под одной транзакцией.
package txmanager

import (
	"context"
	"database/sql"
	"fmt"
)

type txKey struct{}

// TransactionManager исполняет функции внутри транзакции БД
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри SERIALIZABLE-транзакции
// Транзакция кладётся в контекст; репозитории достают её через Executor
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("txmanager: rollback after %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}
	return nil
}

// Executor интерфейс, общий для *sql.DB и *sql.Tx
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// GetExecutor возвращает транзакцию из контекста, если она там есть,
// иначе переданный по умолчанию executor
func GetExecutor(ctx context.Context, def Executor) Executor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return def
}
