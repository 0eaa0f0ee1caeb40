// Package localtime реализует DST-корректную конвертацию между абсолютными
// моментами времени и локальными (дата + миллисекунды от полуночи) в заданной
// таймзоне. Использует таблицы правил из системной базы таймзон, никогда не
// фиксированные смещения.
package localtime

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"

	// MsPerDay полные сутки в миллисекундах
	MsPerDay int64 = 86_400_000

	// maxZoneShift покрывает весь диапазон реальных смещений зон (−12h..+14h)
	maxZoneShift = 15 * time.Hour
)

// Split converts an absolute instant into the zone's wall-clock rendering:
// the local calendar date and milliseconds since local midnight.
func Split(t time.Time, loc *time.Location) (date string, msOfDay int64) {
	lt := t.In(loc)
	date = lt.Format(dateLayout)
	msOfDay = int64(lt.Hour())*3_600_000 +
		int64(lt.Minute())*60_000 +
		int64(lt.Second())*1_000 +
		int64(lt.Nanosecond())/1_000_000
	return date, msOfDay
}

// Instant converts a local calendar date plus milliseconds-of-day in a zone
// into the absolute instant (the harder direction).
//
// Метод: для каждого смещения зоны, действующего в окне ±maxZoneShift вокруг
// искомого момента, строится кандидат wanted − offset. Кандидат валиден, если
// фактическое смещение зоны в этот момент совпадает с порождающим: такой
// кандидат по построению отображается обратно ровно в (date, msOfDay).
//
// Ambiguous times (repeated during fall-back) yield two valid candidates;
// the earlier-UTC occurrence wins. Nonexistent times (skipped during
// spring-forward) yield none; the latest candidate is the collapse forward
// across the gap, independent of the sign of the zone offset.
//
// msOfDay >= MsPerDay (в частности "24:00") рекурсивно нормализуется на
// следующую дату.
func Instant(date string, msOfDay int64, loc *time.Location) (time.Time, error) {
	if msOfDay >= MsPerDay {
		next, err := AddDays(date, 1)
		if err != nil {
			return time.Time{}, err
		}
		return Instant(next, msOfDay-MsPerDay, loc)
	}

	base, err := parseDate(date)
	if err != nil {
		return time.Time{}, err
	}

	// Искомое локальное время, закодированное как момент UTC
	wanted := base.Add(time.Duration(msOfDay) * time.Millisecond)

	var valid, candidates []time.Time
	for _, off := range offsetsAround(wanted, loc) {
		cand := wanted.Add(-off)
		candidates = append(candidates, cand)
		if offsetAt(cand, loc) == off {
			valid = append(valid, cand)
		}
	}

	if len(valid) > 0 {
		return earliest(valid), nil
	}
	return latest(candidates), nil
}

// offsetsAround перечисляет смещения зоны, действующие в окне
// [t−maxZoneShift, t+maxZoneShift]; истинное смещение искомого момента
// всегда среди них. Интервалы зоны обходятся через ZoneBounds.
func offsetsAround(t time.Time, loc *time.Location) []time.Duration {
	hi := t.Add(maxZoneShift)

	var offsets []time.Duration
	for cur := t.Add(-maxZoneShift); ; {
		off := offsetAt(cur, loc)
		seen := false
		for _, o := range offsets {
			if o == off {
				seen = true
				break
			}
		}
		if !seen {
			offsets = append(offsets, off)
		}

		_, end := cur.In(loc).ZoneBounds()
		if end.IsZero() || !end.After(cur) || !end.Before(hi) {
			break
		}
		cur = end
	}
	return offsets
}

func offsetAt(t time.Time, loc *time.Location) time.Duration {
	_, sec := t.In(loc).Zone()
	return time.Duration(sec) * time.Second
}

func earliest(ts []time.Time) time.Time {
	m := ts[0]
	for _, t := range ts[1:] {
		if t.Before(m) {
			m = t
		}
	}
	return m
}

func latest(ts []time.Time) time.Time {
	m := ts[0]
	for _, t := range ts[1:] {
		if t.After(m) {
			m = t
		}
	}
	return m
}

// AddDays сдвигает календарную дату на n дней
func AddDays(date string, n int) (string, error) {
	t, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(dateLayout), nil
}

// Weekday returns the lowercase weekday name of a calendar date
func Weekday(date string) (string, error) {
	t, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return strings.ToLower(t.Weekday().String()), nil
}

// DatesBetween expands a [start, end) instant range into every local
// calendar date it overlaps in the zone. The last overlapped date is taken
// from end − 1ms, since end is exclusive. Empty for end <= start.
func DatesBetween(start, end time.Time, loc *time.Location) []string {
	if !end.After(start) {
		return nil
	}
	first, _ := Split(start, loc)
	last, _ := Split(end.Add(-time.Millisecond), loc)

	dates := []string{first}
	for cur := first; cur < last; {
		next, err := AddDays(cur, 1)
		if err != nil {
			break
		}
		dates = append(dates, next)
		cur = next
	}
	return dates
}

func parseDate(date string) (time.Time, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("localtime: invalid date %q: %v", date, err)
	}
	return t, nil
}
