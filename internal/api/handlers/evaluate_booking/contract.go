package evaluate_booking

import (
	"context"

	evaluateBookingUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/evaluate_booking"
)

// EvaluateBookingUseCase интерфейс use case решения о допуске
type EvaluateBookingUseCase interface {
	Execute(ctx context.Context, req *evaluateBookingUC.Request) (*evaluateBookingUC.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
