package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// SlotQuery входные данные генератора дискретных слотов
//
// Allocations — предварительно отфильтрованный персистентным слоем список
// активных блокирующих интервалов; Now — момент принятия решения, захваченный
// вызывающей стороной один раз.
type SlotQuery struct {
	Days               []domain.ResolvedDay
	Allocations        []domain.BlockingInterval
	DurationMs         int64
	Now                time.Time
	Location           *time.Location
	IncludeUnavailable bool
	QueryStart         time.Time
	QueryEnd           time.Time
}

// WindowQuery входные данные вычисления непрерывных свободных окон
type WindowQuery struct {
	Days               []domain.ResolvedDay
	Allocations        []domain.BlockingInterval
	Now                time.Time
	Location           *time.Location
	IncludeUnavailable bool
	QueryStart         time.Time
	QueryEnd           time.Time
}
