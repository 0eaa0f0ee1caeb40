package get_available_slots

import (
	"context"

	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

// GetAvailableSlotsUseCase интерфейс use case получения доступных слотов
type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlotsUC.Request) (*getAvailableSlotsUC.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
