package policy

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/localtime"
)

// Evaluate makes the single admission decision for one [start, end)
// booking request against a policy snapshot.
//
// Short-circuiting pipeline: the first failed check determines the
// rejection code. The decision is always a value — any unanticipated
// internal fault is downgraded to a generic evaluation_error rejection so
// one request's failure never destabilizes concurrent evaluations.
//
// DecisionTime is never read internally: the caller captures it once,
// typically under whatever lock serializes writes to the resource.
func Evaluate(cfg *domain.PolicyConfig, req domain.BookingRequest, ectx domain.EvaluationContext) (decision *domain.Decision) {
	defer func() {
		if r := recover(); r != nil {
			decision = domain.RejectedDecision(domain.RejectEvaluationError,
				"internal error during policy evaluation", map[string]any{
					"cause": fmt.Sprint(r),
				})
		}
	}()

	// 1. Версия схемы
	if cfg != nil && cfg.SchemaVersion != domain.SupportedSchemaVersion {
		return domain.RejectedDecision(domain.RejectSchemaVersionUnsupported,
			fmt.Sprintf("unsupported policy schema version %d", cfg.SchemaVersion),
			map[string]any{"schema_version": cfg.SchemaVersion})
	}

	var baseCfg *domain.ConstraintConfig
	if cfg != nil {
		baseCfg = cfg.Config
	}

	// 2. Аварийный обход: разрешаем, применяя только базовые буферы
	if ectx.SkipPolicy {
		return allowWithBuffers(req, domain.MergeConfig(baseCfg, nil))
	}

	// Без политики ресурс полностью открыт
	if cfg == nil {
		return allowWithBuffers(req, domain.ConstraintConfig{})
	}

	loc, err := time.LoadLocation(ectx.Timezone)
	if err != nil {
		return domain.RejectedDecision(domain.RejectEvaluationError,
			fmt.Sprintf("unknown timezone %q", ectx.Timezone),
			map[string]any{"timezone": ectx.Timezone})
	}

	// 3. Локальные даты и времена начала/конца запроса
	startDate, startMs := localtime.Split(req.StartTime, loc)
	endDate, endMs := localtime.Split(req.EndTime, loc)

	effectiveEndMs := endMs
	spansMultipleDays := startDate != endDate
	if spansMultipleDays && endMs == 0 {
		// Конец ровно в локальную полночь следующей даты: считаем запрос
		// однодневным с эффективным концом суток в 1440 минут
		if next, err := localtime.AddDays(startDate, 1); err == nil && next == endDate {
			spansMultipleDays = false
			effectiveEndMs = localtime.MsPerDay
		}
	}

	// 4. Blackout-проход по каждой локальной дате, перекрытой запросом
	for _, date := range localtime.DatesBetween(req.StartTime, req.EndTime, loc) {
		weekday, err := localtime.Weekday(date)
		if err != nil {
			return domain.RejectedDecision(domain.RejectEvaluationError,
				fmt.Sprintf("invalid request date %s", date), nil)
		}
		for i := range cfg.Rules {
			rule := &cfg.Rules[i]
			if rule.IsBlackout() && matches(rule.Match, date, weekday) {
				return domain.RejectedDecision(domain.RejectResourceClosed,
					fmt.Sprintf("resource is closed on %s", date),
					map[string]any{"date": date, "rule_index": i})
			}
		}
	}

	// 5. Разрешение правила только по дате начала
	startWeekday, err := localtime.Weekday(startDate)
	if err != nil {
		return domain.RejectedDecision(domain.RejectEvaluationError,
			fmt.Sprintf("invalid request date %s", startDate), nil)
	}
	var matched *domain.Rule
	for i := range cfg.Rules {
		rule := &cfg.Rules[i]
		if !rule.IsBlackout() && matches(rule.Match, startDate, startWeekday) {
			matched = rule
			break
		}
	}

	// 6. Окна
	switch {
	case matched != nil && matched.HasWindows():
		// Оконные правила не выражают ночёвки через границу суток
		if spansMultipleDays {
			return domain.RejectedDecision(domain.RejectMultiDayNotAllowed,
				"request spans multiple days but the matched rule restricts booking to time windows",
				map[string]any{"start_date": startDate, "end_date": endDate})
		}
		windows, err := resolveWindows(matched, startDate)
		if err != nil {
			return domain.RejectedDecision(domain.RejectEvaluationError,
				"invalid window configuration in matched rule", nil)
		}
		if !fitsAnyWindow(startMs, effectiveEndMs, windows) {
			return domain.RejectedDecision(domain.RejectOutsideWindow,
				"requested time does not fit within any open window",
				map[string]any{"date": startDate, "start_ms": startMs, "end_ms": effectiveEndMs})
		}
	case matched == nil && cfg.Default != domain.DefaultOpen:
		return domain.RejectedDecision(domain.RejectResourceClosed,
			fmt.Sprintf("resource is closed on %s", startDate),
			map[string]any{"date": startDate})
		// Совпавшее правило без окон, либо default=open: открыто круглосуточно
	}

	// 7. Эффективная конфигурация: посекционная замена базы правилом
	var overrides *domain.ConstraintConfig
	if matched != nil {
		overrides = matched.Config
	}
	merged := domain.MergeConfig(baseCfg, overrides)

	// 8. Длительность
	durationMs := req.EndTime.Sub(req.StartTime).Milliseconds()
	switch merged.Duration.CheckDuration(durationMs) {
	case domain.DurationNotAllowed:
		return domain.RejectedDecision(domain.RejectDurationNotAllowed,
			fmt.Sprintf("duration %dms is not allowed", durationMs),
			map[string]any{"duration_ms": durationMs})
	case domain.DurationTooShort:
		return domain.RejectedDecision(domain.RejectDurationTooShort,
			fmt.Sprintf("duration %dms is below the minimum %dms", durationMs, *merged.Duration.MinMs),
			map[string]any{"duration_ms": durationMs, "min_ms": *merged.Duration.MinMs})
	case domain.DurationTooLong:
		return domain.RejectedDecision(domain.RejectDurationTooLong,
			fmt.Sprintf("duration %dms exceeds the maximum %dms", durationMs, *merged.Duration.MaxMs),
			map[string]any{"duration_ms": durationMs, "max_ms": *merged.Duration.MaxMs})
	}

	// 9. Выравнивание по сетке
	if grid := merged.GridIntervalMs(); grid > 0 && startMs%grid != 0 {
		return domain.RejectedDecision(domain.RejectGridMisaligned,
			fmt.Sprintf("start time is not aligned to the %dms grid", grid),
			map[string]any{"start_ms": startMs, "interval_ms": grid})
	}

	leadMs := req.StartTime.Sub(ectx.DecisionTime).Milliseconds()

	// 10. Минимальный lead time
	if merged.LeadTime != nil && merged.LeadTime.MinMs != nil && leadMs < *merged.LeadTime.MinMs {
		return domain.RejectedDecision(domain.RejectLeadTimeTooShort,
			fmt.Sprintf("booking starts in %dms, minimum lead time is %dms", leadMs, *merged.LeadTime.MinMs),
			map[string]any{"lead_ms": leadMs, "min_ms": *merged.LeadTime.MinMs})
	}

	// 11. Горизонт бронирования
	if merged.LeadTime != nil && merged.LeadTime.MaxMs != nil && leadMs > *merged.LeadTime.MaxMs {
		return domain.RejectedDecision(domain.RejectHorizonExceeded,
			fmt.Sprintf("booking starts in %dms, horizon is %dms", leadMs, *merged.LeadTime.MaxMs),
			map[string]any{"lead_ms": leadMs, "max_ms": *merged.LeadTime.MaxMs})
	}

	// 12. Буферы никогда не отклоняют: расширяем эффективный интервал
	return allowWithBuffers(req, merged)
}

// allowWithBuffers строит положительное решение с буферно-расширенным
// эффективным интервалом
func allowWithBuffers(req domain.BookingRequest, cfg domain.ConstraintConfig) *domain.Decision {
	before := cfg.BufferBeforeMs()
	after := cfg.BufferAfterMs()
	return domain.AllowedDecision(
		req.StartTime.Add(-time.Duration(before)*time.Millisecond),
		req.EndTime.Add(time.Duration(after)*time.Millisecond),
		before,
		after,
		cfg,
	)
}

// fitsAnyWindow проверяет, что запрос целиком помещается хотя бы в одно окно
func fitsAnyWindow(startMs, endMs int64, windows []domain.DayWindow) bool {
	for _, w := range windows {
		if startMs >= w.StartMs && endMs <= w.EndMs {
			return true
		}
	}
	return false
}
