package cancel_allocation

import (
	"context"

	cancelAllocationUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/cancel_allocation"
)

// CancelAllocationUseCase интерфейс use case отмены аллокации
type CancelAllocationUseCase interface {
	Execute(ctx context.Context, req *cancelAllocationUC.Request) (*cancelAllocationUC.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
