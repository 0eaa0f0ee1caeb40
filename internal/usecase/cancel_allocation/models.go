package cancel_allocation

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на отмену аллокации
type Request struct {
	UserID       int64 // ID пользователя, владеющего аллокацией
	AllocationID int64 // ID отменяемой аллокации
}

// Response модель ответа с результатом отмены
type Response struct {
	AllocationID int64                   `json:"allocationId"`
	Status       domain.AllocationStatus `json:"status"`
}
