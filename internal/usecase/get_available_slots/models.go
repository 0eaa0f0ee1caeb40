package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ResourceID string    // ID ресурса
	From       time.Time // Начало диапазона запроса [включительно)
	To         time.Time // Конец диапазона запроса (исключительно)
	DurationMs int64     // Запрашиваемая длительность слота в миллисекундах
	Timezone   string    // Таймзона политики ресурса (IANA)

	// IncludeUnavailable вернуть также занятые кандидаты с пометкой статуса
	IncludeUnavailable bool
}

// Response модель ответа со списком слотов
type Response struct {
	ResourceID string        `json:"resourceId"`
	From       time.Time     `json:"from"`
	To         time.Time     `json:"to"`
	DurationMs int64         `json:"durationMs"`
	Slots      []domain.Slot `json:"slots"`
}
