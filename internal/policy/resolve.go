package policy

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/localtime"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// matches предикат соответствия правила дате — закрытое множество видов,
// добавление вида означает расширение этого switch
func matches(m domain.RuleMatch, date, weekday string) bool {
	switch m.Kind {
	case domain.MatchWeekly:
		return containsDay(m.Days, weekday)
	case domain.MatchDate:
		return m.Date == date
	case domain.MatchDateRange:
		// Включительные границы; нормализованные YYYY-MM-DD сравниваются как строки
		if date < m.From || date > m.To {
			return false
		}
		return len(m.Days) == 0 || containsDay(m.Days, weekday)
	default:
		return false
	}
}

func containsDay(days []string, weekday string) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}

// ResolveDay is the single source of truth for "is this resource open on
// this date, within which windows, under which config".
//
// Strict order:
//  1. no policy — fully open, 24h window, empty config;
//  2. blackout pass: any closed rule matching the date closes it outright,
//     short-circuiting ordinary matching;
//  3. ordinary pass: first non-closed matching rule wins;
//  4. matched rule with windows opens only those windows, without windows
//     the full 24h;
//  5. no rule matched — the policy default decides;
//  6. effective config = base config with the matched rule's sections
//     replacing base sections wholesale.
//
// Returns nil for a closed date: "closed" is an ordinary outcome, not an
// error.
func ResolveDay(cfg *domain.PolicyConfig, date string) (*domain.ResolvedDay, error) {
	if cfg == nil {
		return &domain.ResolvedDay{
			Date:    date,
			Windows: []domain.DayWindow{fullDayWindow()},
		}, nil
	}

	weekday, err := localtime.Weekday(date)
	if err != nil {
		return nil, err
	}

	// 1. Blackout-проход: закрытые правила выигрывают у любых открытых
	for i := range cfg.Rules {
		rule := &cfg.Rules[i]
		if rule.IsBlackout() && matches(rule.Match, date, weekday) {
			return nil, nil
		}
	}

	// 2. Обычный проход: первое совпавшее не-закрытое правило
	var matched *domain.Rule
	for i := range cfg.Rules {
		rule := &cfg.Rules[i]
		if !rule.IsBlackout() && matches(rule.Match, date, weekday) {
			matched = rule
			break
		}
	}

	if matched == nil {
		if cfg.Default != domain.DefaultOpen {
			return nil, nil
		}
		return &domain.ResolvedDay{
			Date:    date,
			Windows: []domain.DayWindow{fullDayWindow()},
			Config:  domain.MergeConfig(cfg.Config, nil),
		}, nil
	}

	windows, err := resolveWindows(matched, date)
	if err != nil {
		return nil, err
	}

	return &domain.ResolvedDay{
		Date:    date,
		Windows: windows,
		Config:  domain.MergeConfig(cfg.Config, matched.Config),
	}, nil
}

// ResolveServiceDays expands a [start, end) instant range in a timezone
// into every local calendar date it overlaps, resolves each date and
// returns the open ones. The last overlapped date comes from end − 1ms,
// end being exclusive.
func ResolveServiceDays(cfg *domain.PolicyConfig, start, end time.Time, loc *time.Location) ([]domain.ResolvedDay, error) {
	var days []domain.ResolvedDay
	for _, date := range localtime.DatesBetween(start, end, loc) {
		day, err := ResolveDay(cfg, date)
		if err != nil {
			return nil, fmt.Errorf("resolve day %s: %w", date, err)
		}
		if day != nil {
			days = append(days, *day)
		}
	}
	return days, nil
}

// resolveWindows переводит окна правила в миллисекундные смещения от полуночи
// Правило без окон открывает дату на полные сутки
func resolveWindows(rule *domain.Rule, date string) ([]domain.DayWindow, error) {
	if !rule.HasWindows() {
		return []domain.DayWindow{fullDayWindow()}, nil
	}

	windows := make([]domain.DayWindow, 0, len(rule.Windows))
	for _, w := range rule.Windows {
		startMs, err := types.TimeString(w.Start).Ms()
		if err != nil {
			return nil, fmt.Errorf("window start for %s: %w", date, err)
		}
		endMs, err := types.TimeString(w.End).Ms()
		if err != nil {
			return nil, fmt.Errorf("window end for %s: %w", date, err)
		}
		windows = append(windows, domain.DayWindow{StartMs: startMs, EndMs: endMs})
	}
	return windows, nil
}

func fullDayWindow() domain.DayWindow {
	return domain.DayWindow{StartMs: 0, EndMs: localtime.MsPerDay}
}
