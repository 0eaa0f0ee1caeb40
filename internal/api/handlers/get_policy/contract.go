package get_policy

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/policies/models"
)

// PolicyService интерфейс сервиса политик
type PolicyService interface {
	GetActive(ctx context.Context, resourceID string) (*models.PolicySnapshot, error)
	GetVersion(ctx context.Context, resourceID, hash string) (*models.PolicySnapshot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
