package evaluate_booking

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на допуск бронирования
type Request struct {
	UserID     int64     // ID пользователя, создающего бронь
	ResourceID string    // ID ресурса
	StartTime  time.Time // Запрашиваемое начало [включительно)
	EndTime    time.Time // Запрашиваемый конец (исключительно)
	Timezone   string    // Таймзона политики ресурса (IANA)

	// SkipPolicy аварийный обход политики: допускается с базовыми буферами
	SkipPolicy bool

	// DryRun только решение, без записи аллокации
	DryRun bool
}

// Response модель ответа с решением допуска
type Response struct {
	Allowed bool `json:"allowed"`

	// AllocationID заполняется при допуске без DryRun
	AllocationID *int64 `json:"allocationId,omitempty"`

	// EffectiveStart/EffectiveEnd буферно-расширенный интервал, блокирующий ресурс
	EffectiveStart *time.Time `json:"effectiveStart,omitempty"`
	EffectiveEnd   *time.Time `json:"effectiveEnd,omitempty"`
	BufferBeforeMs int64      `json:"bufferBeforeMs"`
	BufferAfterMs  int64      `json:"bufferAfterMs"`

	// PolicyHash версия политики, по которой принято решение (пусто, если политики нет)
	PolicyHash string `json:"policyHash,omitempty"`

	// Rejection заполняется при отказе: стабильный код, сообщение, детали
	Rejection *domain.Rejection `json:"rejection,omitempty"`
}
