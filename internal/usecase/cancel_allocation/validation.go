package cancel_allocation

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.AllocationID <= 0 {
		return fmt.Errorf("%w: allocationID must be positive", ErrInvalidInput)
	}

	return nil
}
