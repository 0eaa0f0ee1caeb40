package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/interval"
	"github.com/m04kA/SMC-AvailabilityService/pkg/localtime"
)

// dayInterval абсолютный интервал расписания с конфигурацией породившего дня
type dayInterval struct {
	span   interval.Span
	config domain.ConstraintConfig
}

// ComputeWindows derives the continuous free-time ranges for non-grid
// (rental-style) use.
//
// Buffers shrink a gap only at edges touching a real allocation: a gap edge
// that coincides with a schedule boundary is never shrunk. A gap between
// two allocations shrinks from both sides and is discarded when it
// collapses. Lead time trims the gap start forward, the horizon trims the
// end back; surviving gaps are re-merged since trimming can make
// previously separate gaps adjacent.
func ComputeWindows(q WindowQuery) ([]domain.Window, error) {
	// 1. Окна разрешённых дней → абсолютные интервалы, ограниченные
	// диапазоном запроса; пустые отбрасываются, конфигурация дня сохраняется
	dayIntervals, err := scheduleIntervals(q)
	if err != nil {
		return nil, err
	}

	spans := make([]interval.Span, 0, len(dayIntervals))
	for _, di := range dayIntervals {
		spans = append(spans, di.span)
	}

	// 2–3. Слитое расписание и слитая занятость
	schedule := interval.Merge(spans)
	busy := interval.Merge(blockingSpans(q.Allocations))

	// 4. Сырые промежутки: расписание минус занятость
	gaps := interval.Subtract(schedule, busy)

	// 5–8. Буферное сжатие, минимальная длительность, lead/горизонт
	var survivors []interval.Span
	for _, gap := range gaps {
		trimmed, keep := trimGap(gap, busy, dayIntervals, q.Now)
		if keep {
			survivors = append(survivors, trimmed)
		}
	}

	// 9. Повторное слияние: после обрезки соседние промежутки могли сомкнуться
	available := interval.Merge(survivors)

	windows := make([]domain.Window, 0, len(available))
	for _, s := range available {
		w := domain.Window{StartTime: s.Start, EndTime: s.End}
		if q.IncludeUnavailable {
			w.Status = domain.SlotAvailable
		}
		windows = append(windows, w)
	}

	// 10. По запросу: занятость внутри расписания, хронологически
	// перемежаемая со свободными окнами
	if q.IncludeUnavailable {
		for _, s := range interval.Intersect(busy, schedule) {
			windows = append(windows, domain.Window{
				StartTime: s.Start,
				EndTime:   s.End,
				Status:    domain.SlotUnavailable,
			})
		}
		sort.Slice(windows, func(i, j int) bool {
			return windows[i].StartTime.Before(windows[j].StartTime)
		})
	}

	return windows, nil
}

func scheduleIntervals(q WindowQuery) ([]dayInterval, error) {
	var out []dayInterval
	for _, day := range q.Days {
		for _, w := range day.Windows {
			start, err := localtime.Instant(day.Date, w.StartMs, q.Location)
			if err != nil {
				return nil, fmt.Errorf("availability: window start for %s: %w", day.Date, err)
			}
			end, err := localtime.Instant(day.Date, w.EndMs, q.Location)
			if err != nil {
				return nil, fmt.Errorf("availability: window end for %s: %w", day.Date, err)
			}

			span := interval.Span{Start: start, End: end}
			if span.Start.Before(q.QueryStart) {
				span.Start = q.QueryStart
			}
			if span.End.After(q.QueryEnd) {
				span.End = q.QueryEnd
			}
			if span.IsEmpty() {
				continue
			}
			out = append(out, dayInterval{span: span, config: day.Config})
		}
	}
	return out, nil
}

func blockingSpans(allocations []domain.BlockingInterval) []interval.Span {
	spans := make([]interval.Span, 0, len(allocations))
	for _, a := range allocations {
		spans = append(spans, interval.Span{Start: a.StartTime, End: a.EndTime})
	}
	return spans
}

// trimGap применяет к одному промежутку шаги 5–8: асимметричное буферное
// сжатие, минимальную длительность и lead/горизонт
func trimGap(gap interval.Span, busy []interval.Span, days []dayInterval, now time.Time) (interval.Span, bool) {
	// 5. Сжатие только на краях, граничащих с реальной аллокацией:
	// край, совпадающий с границей расписания, не сжимается
	cfg := configAt(gap.Start, days)
	if touchesBusyEnd(gap.Start, busy) {
		gap.Start = gap.Start.Add(time.Duration(cfg.BufferBeforeMs()) * time.Millisecond)
	}
	if touchesBusyStart(gap.End, busy) {
		gap.End = gap.End.Add(-time.Duration(cfg.BufferAfterMs()) * time.Millisecond)
	}
	if gap.IsEmpty() {
		return gap, false
	}

	// 6. Минимальная длительность по конфигурации нового начала
	cfg = configAt(gap.Start, days)
	if gap.End.Sub(gap.Start).Milliseconds() < cfg.Duration.MinDurationMs() {
		return gap, false
	}

	// 7. Lead time: подрезаем начало вперёд до ближайшего допустимого момента
	if cfg.LeadTime != nil && cfg.LeadTime.MinMs != nil {
		earliest := now.Add(time.Duration(*cfg.LeadTime.MinMs) * time.Millisecond)
		if gap.Start.Before(earliest) {
			gap.Start = earliest
			if gap.IsEmpty() {
				return gap, false
			}
		}
	}
	// Горизонт: подрезаем конец назад; если даже начало за горизонтом — отбрасываем
	if cfg.LeadTime != nil && cfg.LeadTime.MaxMs != nil {
		horizon := now.Add(time.Duration(*cfg.LeadTime.MaxMs) * time.Millisecond)
		if gap.Start.After(horizon) {
			return gap, false
		}
		if gap.End.After(horizon) {
			gap.End = horizon
		}
	}

	// 8. Повторная проверка минимальной длительности после обрезки
	cfg = configAt(gap.Start, days)
	if gap.IsEmpty() || gap.End.Sub(gap.Start).Milliseconds() < cfg.Duration.MinDurationMs() {
		return gap, false
	}

	return gap, true
}

// configAt возвращает конфигурацию дневного интервала, содержащего момент t
// Fallback — конфигурация первого дня
func configAt(t time.Time, days []dayInterval) domain.ConstraintConfig {
	for _, di := range days {
		if !di.span.Start.After(t) && di.span.End.After(t) {
			return di.config
		}
	}
	if len(days) > 0 {
		return days[0].config
	}
	return domain.ConstraintConfig{}
}

// touchesBusyEnd проверяет, совпадает ли момент с концом занятого интервала
func touchesBusyEnd(t time.Time, busy []interval.Span) bool {
	for _, b := range busy {
		if b.End.Equal(t) {
			return true
		}
	}
	return false
}

// touchesBusyStart проверяет, совпадает ли момент с началом занятого интервала
func touchesBusyStart(t time.Time, busy []interval.Span) bool {
	for _, b := range busy {
		if b.Start.Equal(t) {
			return true
		}
	}
	return false
}
