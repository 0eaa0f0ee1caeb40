package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/policies/models"
)

// AllocationRepository интерфейс репозитория аллокаций
type AllocationRepository interface {
	// ListActiveInRange возвращает активные аллокации, чей эффективный интервал пересекает [start, end)
	ListActiveInRange(ctx context.Context, resourceID string, start, end, now time.Time) ([]*domain.Allocation, error)
}

// PolicyProvider интерфейс получения активного снимка политики ресурса
type PolicyProvider interface {
	GetActive(ctx context.Context, resourceID string) (*models.PolicySnapshot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
