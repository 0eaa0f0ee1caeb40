package get_free_windows

import (
	"context"

	getFreeWindowsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_free_windows"
)

// GetFreeWindowsUseCase интерфейс use case получения свободных окон
type GetFreeWindowsUseCase interface {
	Execute(ctx context.Context, req *getFreeWindowsUC.Request) (*getFreeWindowsUC.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
