package policies

import (
	"context"

	storage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/policy"
)

// PolicyRepository интерфейс репозитория версий политик
type PolicyRepository interface {
	Create(ctx context.Context, resourceID, hash, canonical string) (*storage.Version, error)
	GetLatest(ctx context.Context, resourceID string) (*storage.Version, error)
	GetByHash(ctx context.Context, resourceID, hash string) (*storage.Version, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
