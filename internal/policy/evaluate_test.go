package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// weekdayPolicy будни 09:00-17:00, закрытый default
func weekdayPolicy() *domain.PolicyConfig {
	return &domain.PolicyConfig{
		SchemaVersion: 1,
		Default:       domain.DefaultClosed,
		Rules: []domain.Rule{
			{
				Match: domain.RuleMatch{
					Kind: domain.MatchWeekly,
					Days: []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
				},
				Windows: []domain.TimeWindow{{Start: "09:00", End: "17:00"}},
			},
		},
	}
}

func evalCtx(decisionTime time.Time) domain.EvaluationContext {
	return domain.EvaluationContext{
		DecisionTime: decisionTime,
		Timezone:     "UTC",
	}
}

func bookingReq(start, end time.Time) domain.BookingRequest {
	return domain.BookingRequest{StartTime: start, EndTime: end}
}

func TestEvaluate_AllowedWithBuffers(t *testing.T) {
	cfg := weekdayPolicy()
	cfg.Config = &domain.ConstraintConfig{
		Buffers: &domain.BufferConfig{
			BeforeMs: ptr.Ptr(int64(900_000)), // 15 минут
			AfterMs:  ptr.Ptr(int64(600_000)), // 10 минут
		},
	}

	// Понедельник 2026-03-02, 10:00-11:00 UTC
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	d := Evaluate(cfg, bookingReq(start, end), evalCtx(now))

	require.True(t, d.Allowed)
	assert.True(t, d.EffectiveStart.Equal(time.Date(2026, 3, 2, 9, 45, 0, 0, time.UTC)))
	assert.True(t, d.EffectiveEnd.Equal(time.Date(2026, 3, 2, 11, 10, 0, 0, time.UTC)))
	assert.Equal(t, int64(900_000), d.BufferBeforeMs)
	assert.Equal(t, int64(600_000), d.BufferAfterMs)
}

func TestEvaluate_UnsupportedSchemaVersion(t *testing.T) {
	cfg := weekdayPolicy()
	cfg.SchemaVersion = 2

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	d := Evaluate(cfg, bookingReq(start, start.Add(time.Hour)), evalCtx(start.Add(-24*time.Hour)))

	require.False(t, d.Allowed)
	assert.Equal(t, domain.RejectSchemaVersionUnsupported, d.Rejection.Code)
}

func TestEvaluate_SkipPolicyAllowsWithBaseBuffers(t *testing.T) {
	cfg := weekdayPolicy()
	cfg.Config = &domain.ConstraintConfig{
		Buffers: &domain.BufferConfig{AfterMs: ptr.Ptr(int64(600_000))},
	}

	// Воскресенье: политика отклонила бы resource_closed
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	ectx := evalCtx(start.Add(-time.Hour))
	ectx.SkipPolicy = true

	d := Evaluate(cfg, bookingReq(start, end), ectx)

	require.True(t, d.Allowed)
	assert.True(t, d.EffectiveEnd.Equal(end.Add(10*time.Minute)))
}

func TestEvaluate_NilPolicyAllows(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	d := Evaluate(nil, bookingReq(start, start.Add(time.Hour)), evalCtx(start.Add(-time.Hour)))

	require.True(t, d.Allowed)
	assert.Equal(t, int64(0), d.BufferBeforeMs)
}

func TestEvaluate_UnknownTimezone(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ectx := domain.EvaluationContext{DecisionTime: start.Add(-time.Hour), Timezone: "Not/AZone"}

	d := Evaluate(weekdayPolicy(), bookingReq(start, start.Add(time.Hour)), ectx)

	require.False(t, d.Allowed)
	assert.Equal(t, domain.RejectEvaluationError, d.Rejection.Code)
}

func TestEvaluate_ResourceClosedOnWeekend(t *testing.T) {
	// Воскресенье 2026-03-01
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	d := Evaluate(weekdayPolicy(), bookingReq(start, start.Add(time.Hour)), evalCtx(start.Add(-24*time.Hour)))

	require.False(t, d.Allowed)
	assert.Equal(t, domain.RejectResourceClosed, d.Rejection.Code)
}

func TestEvaluate_BlackoutOnAnyOverlappedDate(t *testing.T) {
	cfg := &domain.PolicyConfig{
		SchemaVersion: 1,
		Default:       domain.DefaultOpen,
		Rules: []domain.Rule{
			{Match: domain.RuleMatch{Kind: domain.MatchDate, Date: "2026-03-03"}, Closed: true},
		},
	}

	// Запрос начинается 2 марта, но перекрывает закрытое 3 марта
	start := time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 3, 2, 0, 0, 0, time.UTC)

	d := Evaluate(cfg, bookingReq(start, end), evalCtx(start.Add(-time.Hour)))

	require.False(t, d.Allowed)
	assert.Equal(t, domain.RejectResourceClosed, d.Rejection.Code)
	assert.Equal(t, "2026-03-03", d.Rejection.Details["date"])
}

func TestEvaluate_OutsideWindow(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	d := Evaluate(weekdayPolicy(), bookingReq(start, start.Add(time.Hour)), evalCtx(start.Add(-24*time.Hour)))

	require.False(t, d.Allowed)
	assert.Equal(t, domain.RejectOutsideWindow, d.Rejection.Code)
}

func TestEvaluate_MultiDayRejectedByWindowedRule(t *testing.T) {
	cfg := &domain.PolicyConfig{
		SchemaVersion: 1,
		Default:       domain.DefaultClosed,
		Rules: []domain.Rule{
			{
				Match:   domain.RuleMatch{Kind: domain.MatchWeekly, Days: []string{"monday", "tuesday"}},
				Windows: []domain.TimeWindow{{Start: "09:00", End: "17:00"}},
			},
		},
	}

	start := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	d := Evaluate(cfg, bookingReq(start, end), evalCtx(start.Add(-time.Hour)))

	require.False(t, d.Allowed)
	assert.Equal(t, domain.RejectMultiDayNotAllowed, d.Rejection.Code)
}

func TestEvaluate_MidnightEndIsSingleDay(t *testing.T) {
	// Конец ровно в полночь следующей даты трактуется как конец суток
	cfg := &domain.PolicyConfig{
		SchemaVersion: 1,
		Default:       domain.DefaultClosed,
		Rules: []domain.Rule{
			{
				Match:   domain.RuleMatch{Kind: domain.MatchWeekly, Days: []string{"monday"}},
				Windows: []domain.TimeWindow{{Start: "20:00", End: "24:00"}},
			},
		},
	}

	start := time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	d := Evaluate(cfg, bookingReq(start, end), evalCtx(start.Add(-time.Hour)))

	assert.True(t, d.Allowed, "rejection: %+v", d.Rejection)
}

func TestEvaluate_DurationVerdicts(t *testing.T) {
	cfg := weekdayPolicy()
	cfg.Config = &domain.ConstraintConfig{
		Duration: &domain.DurationConfig{
			MinMs: ptr.Ptr(int64(1_800_000)),
			MaxMs: ptr.Ptr(int64(7_200_000)),
		},
	}

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	now := start.Add(-24 * time.Hour)

	d := Evaluate(cfg, bookingReq(start, start.Add(15*time.Minute)), evalCtx(now))
	require.False(t, d.Allowed)
	assert.Equal(t, domain.RejectDurationTooShort, d.Rejection.Code)

	d = Evaluate(cfg, bookingReq(start, start.Add(3*time.Hour)), evalCtx(now))
	require.False(t, d.Allowed)
	assert.Equal(t, domain.RejectDurationTooLong, d.Rejection.Code)

	d = Evaluate(cfg, bookingReq(start, start.Add(time.Hour)), evalCtx(now))
	assert.True(t, d.Allowed)
}

func TestEvaluate_AllowedMsDisablesMinMax(t *testing.T) {
	cfg := weekdayPolicy()
	cfg.Config = &domain.ConstraintConfig{
		Duration: &domain.DurationConfig{
			MinMs:     ptr.Ptr(int64(60_000)),
			MaxMs:     ptr.Ptr(int64(120_000)),
			AllowedMs: []int64{3_600_000},
		},
	}

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	now := start.Add(-24 * time.Hour)

	// Час разрешён membership-проверкой, хотя max_ms = 2 минуты
	d := Evaluate(cfg, bookingReq(start, start.Add(time.Hour)), evalCtx(now))
	assert.True(t, d.Allowed)

	// Две минуты внутри min/max, но вне allowed_ms
	d = Evaluate(cfg, bookingReq(start, start.Add(2*time.Minute)), evalCtx(now))
	require.False(t, d.Allowed)
	assert.Equal(t, domain.RejectDurationNotAllowed, d.Rejection.Code)
}

func TestEvaluate_GridMisaligned(t *testing.T) {
	cfg := weekdayPolicy()
	cfg.Config = &domain.ConstraintConfig{
		Grid: &domain.GridConfig{IntervalMs: ptr.Ptr(int64(1_800_000))},
	}

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	start := time.Date(2026, 3, 2, 10, 10, 0, 0, time.UTC)
	d := Evaluate(cfg, bookingReq(start, start.Add(time.Hour)), evalCtx(now))
	require.False(t, d.Allowed)
	assert.Equal(t, domain.RejectGridMisaligned, d.Rejection.Code)

	start = time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	d = Evaluate(cfg, bookingReq(start, start.Add(time.Hour)), evalCtx(now))
	assert.True(t, d.Allowed)
}

func TestEvaluate_LeadTimeAndHorizon(t *testing.T) {
	cfg := weekdayPolicy()
	cfg.Config = &domain.ConstraintConfig{
		LeadTime: &domain.LeadTimeConfig{
			MinMs: ptr.Ptr(int64(3_600_000)),           // 1 час
			MaxMs: ptr.Ptr(int64(14 * 24 * 3_600_000)), // 14 дней
		},
	}

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	req := bookingReq(start, start.Add(time.Hour))

	d := Evaluate(cfg, req, evalCtx(start.Add(-30*time.Minute)))
	require.False(t, d.Allowed)
	assert.Equal(t, domain.RejectLeadTimeTooShort, d.Rejection.Code)

	d = Evaluate(cfg, req, evalCtx(start.Add(-20*24*time.Hour)))
	require.False(t, d.Allowed)
	assert.Equal(t, domain.RejectHorizonExceeded, d.Rejection.Code)

	d = Evaluate(cfg, req, evalCtx(start.Add(-48*time.Hour)))
	assert.True(t, d.Allowed)
}

func TestEvaluate_RuleOverridesReplaceSections(t *testing.T) {
	cfg := weekdayPolicy()
	cfg.Config = &domain.ConstraintConfig{
		Duration: &domain.DurationConfig{MaxMs: ptr.Ptr(int64(3_600_000))},
	}
	cfg.Rules[0].Config = &domain.ConstraintConfig{
		Duration: &domain.DurationConfig{MaxMs: ptr.Ptr(int64(10_800_000))},
	}

	// Три часа запрещены базой, но разрешены override-секцией правила
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	d := Evaluate(cfg, bookingReq(start, start.Add(3*time.Hour)), evalCtx(start.Add(-24*time.Hour)))

	assert.True(t, d.Allowed, "rejection: %+v", d.Rejection)
}
