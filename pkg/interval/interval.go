// Package interval алгебра полуоткрытых интервалов [Start, End) на абсолютной
// временной оси: слияние, вычитание, пересечение. Все функции чистые и
// возвращают новые срезы.
package interval

import (
	"sort"
	"time"
)

// Span полуоткрытый интервал [Start, End)
type Span struct {
	Start time.Time
	End   time.Time
}

// IsEmpty returns true if the span contains no instants
func (s Span) IsEmpty() bool {
	return !s.End.After(s.Start)
}

// Overlaps проверяет реальное пересечение с other
// Граничащие интервалы (конец одного равен началу другого) НЕ пересекаются
func (s Span) Overlaps(other Span) bool {
	return s.Start.Before(other.End) && s.End.After(other.Start)
}

// Merge sorts spans by start and combines overlapping or adjacent ones.
// Empty spans are dropped. Merging an already-merged sorted list is a no-op.
func Merge(spans []Span) []Span {
	work := make([]Span, 0, len(spans))
	for _, s := range spans {
		if !s.IsEmpty() {
			work = append(work, s)
		}
	}
	if len(work) == 0 {
		return nil
	}

	sort.Slice(work, func(i, j int) bool {
		if !work[i].Start.Equal(work[j].Start) {
			return work[i].Start.Before(work[j].Start)
		}
		return work[i].End.Before(work[j].End)
	})

	merged := []Span{work[0]}
	for _, s := range work[1:] {
		last := &merged[len(merged)-1]
		// Смежные интервалы (s.Start == last.End) тоже склеиваются —
		// это обеспечивает непрерывность окон через полночь
		if !s.Start.After(last.End) {
			if s.End.After(last.End) {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// Subtract removes every busy span from every base span and returns the
// remaining gaps. Both inputs are expected sorted and merged (see Merge).
func Subtract(base, busy []Span) []Span {
	var gaps []Span
	for _, b := range base {
		cursor := b.Start
		for _, u := range busy {
			if !u.End.After(cursor) {
				continue
			}
			if !u.Start.Before(b.End) {
				break
			}
			if u.Start.After(cursor) {
				gaps = append(gaps, Span{Start: cursor, End: u.Start})
			}
			if u.End.After(cursor) {
				cursor = u.End
			}
		}
		if cursor.Before(b.End) {
			gaps = append(gaps, Span{Start: cursor, End: b.End})
		}
	}
	return gaps
}

// Intersect возвращает попарные пересечения интервалов a и b
// Оба списка ожидаются отсортированными и слитыми (см. Merge)
func Intersect(a, b []Span) []Span {
	var out []Span
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		start := a[i].Start
		if b[j].Start.After(start) {
			start = b[j].Start
		}
		end := a[i].End
		if b[j].End.Before(end) {
			end = b[j].End
		}
		if end.After(start) {
			out = append(out, Span{Start: start, End: end})
		}
		if a[i].End.Before(b[j].End) {
			i++
		} else {
			j++
		}
	}
	return out
}
