package cancel_allocation

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AllocationRepository интерфейс репозитория аллокаций
type AllocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Allocation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AllocationStatus) error
}

// TxManager интерфейс менеджера транзакций
// Сериализуемая транзакция исключает гонку отмены с конкурирующим допуском
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
