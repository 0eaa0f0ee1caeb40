package update_policy

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/policies/models"
)

// PolicyService интерфейс сервиса политик
type PolicyService interface {
	Upsert(ctx context.Context, req *models.UpsertPolicyRequest) (*models.PolicyVersionResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
