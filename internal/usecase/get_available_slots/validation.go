package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Ширина диапазона ограничивается снаружи ядра: внутри движка нет
// ни отмены, ни таймаутов, дешевизну цикла по датам обеспечивает вызывающий
func validateRequest(req *Request) error {
	if req.ResourceID == "" {
		return fmt.Errorf("%w: resourceID is required", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.To.After(req.From) {
		return fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	if req.DurationMs <= 0 {
		return fmt.Errorf("%w: durationMs must be positive", ErrInvalidInput)
	}

	if req.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidInput)
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
	}

	maxRange := time.Duration(domain.MaxSlotQueryDays) * 24 * time.Hour
	if req.To.Sub(req.From) > maxRange {
		return fmt.Errorf("%w: at most %d days per slot query", ErrRangeTooWide, domain.MaxSlotQueryDays)
	}

	return nil
}
