package get_free_windows

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на получение непрерывных свободных окон
type Request struct {
	ResourceID string    // ID ресурса
	From       time.Time // Начало диапазона запроса [включительно)
	To         time.Time // Конец диапазона запроса (исключительно)
	Timezone   string    // Таймзона политики ресурса (IANA)

	// IncludeUnavailable вернуть также занятые интервалы с пометкой статуса
	IncludeUnavailable bool
}

// Response модель ответа со списком окон
type Response struct {
	ResourceID string          `json:"resourceId"`
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	Windows    []domain.Window `json:"windows"`
}
