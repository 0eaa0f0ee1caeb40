package get_free_windows

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
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

	if req.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidInput)
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
	}

	maxRange := time.Duration(domain.MaxWindowQueryDays) * 24 * time.Hour
	if req.To.Sub(req.From) > maxRange {
		return fmt.Errorf("%w: at most %d days per window query", ErrRangeTooWide, domain.MaxWindowQueryDays)
	}

	return nil
}
