// Package availability вычисляет производную доступность ресурса поверх
// разрешённых дней: дискретные слоты по сетке и непрерывные свободные окна.
// Все вычисления чистые: входы по значению, без часов, без I/O.
package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/localtime"
)

// GenerateSlots produces the discrete grid-aligned booking candidates of a
// fixed duration within the resolved-open days.
//
// Per window the walk starts at the window's local offset and steps by the
// day's grid interval; with no grid configured the step equals the
// requested duration, making candidates non-overlapping by default.
//
// Per-candidate checks, in order: the candidate must lie inside the
// caller's queried instant range (discarded silently otherwise, not marked
// unavailable); buffer-expanded conflict against the supplied blocking
// allocations; minimum lead time; booking horizon. In available-only mode
// failing candidates are omitted with no status field; with
// IncludeUnavailable every surviving candidate is emitted tagged
// available/unavailable.
func GenerateSlots(q SlotQuery) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0)
	duration := time.Duration(q.DurationMs) * time.Millisecond

	for _, day := range q.Days {
		// Дневной предчек: если конфигурация дня отвергает запрошенную
		// длительность, кандидаты по этому дню не генерируются вовсе
		if day.Config.Duration.CheckDuration(q.DurationMs) != domain.DurationOK {
			continue
		}

		step := day.Config.GridIntervalMs()
		if step <= 0 {
			step = q.DurationMs
		}
		if step <= 0 {
			continue
		}

		before := day.Config.BufferBeforeMs()
		after := day.Config.BufferAfterMs()

		for _, w := range day.Windows {
			for offset := w.StartMs; offset+q.DurationMs <= w.EndMs; offset += step {
				start, err := localtime.Instant(day.Date, offset, q.Location)
				if err != nil {
					return nil, fmt.Errorf("availability: slot instant for %s: %w", day.Date, err)
				}
				end := start.Add(duration)

				// Кандидаты вне запрошенного диапазона молча отбрасываются
				if start.Before(q.QueryStart) || end.After(q.QueryEnd) {
					continue
				}

				available := !hasConflict(start, end, before, after, q.Allocations) &&
					leadTimePermits(start, q.Now, day.Config.LeadTime)

				if !available && !q.IncludeUnavailable {
					continue
				}

				slot := domain.Slot{StartTime: start, EndTime: end}
				if q.IncludeUnavailable {
					slot.Status = domain.SlotAvailable
					if !available {
						slot.Status = domain.SlotUnavailable
					}
				}
				slots = append(slots, slot)
			}
		}
	}

	return slots, nil
}

// hasConflict проверяет буферно-расширенного кандидата на полуоткрытое
// пересечение с каждым блокирующим интервалом
func hasConflict(start, end time.Time, beforeMs, afterMs int64, allocations []domain.BlockingInterval) bool {
	expandedStart := start.Add(-time.Duration(beforeMs) * time.Millisecond)
	expandedEnd := end.Add(time.Duration(afterMs) * time.Millisecond)

	for _, a := range allocations {
		if a.StartTime.Before(expandedEnd) && a.EndTime.After(expandedStart) {
			return true
		}
	}
	return false
}

// leadTimePermits проверяет минимальный lead time и горизонт для начала слота
func leadTimePermits(start, now time.Time, lead *domain.LeadTimeConfig) bool {
	if lead == nil {
		return true
	}
	leadMs := start.Sub(now).Milliseconds()
	if lead.MinMs != nil && leadMs < *lead.MinMs {
		return false
	}
	if lead.MaxMs != nil && leadMs > *lead.MaxMs {
		return false
	}
	return true
}
