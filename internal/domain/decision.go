package domain

import "time"

// RejectionCode stable machine-readable admission rejection reason.
// External clients branch on these values: a code for a given logical
// failure must never change across releases.
type RejectionCode string

const (
	RejectSchemaVersionUnsupported RejectionCode = "schema_version_unsupported"
	RejectResourceClosed           RejectionCode = "resource_closed"
	RejectOutsideWindow            RejectionCode = "outside_window"
	RejectMultiDayNotAllowed       RejectionCode = "multi_day_not_allowed"
	RejectDurationNotAllowed       RejectionCode = "duration_not_allowed"
	RejectDurationTooShort         RejectionCode = "duration_too_short"
	RejectDurationTooLong          RejectionCode = "duration_too_long"
	RejectGridMisaligned           RejectionCode = "grid_misaligned"
	RejectLeadTimeTooShort         RejectionCode = "lead_time_too_short"
	RejectHorizonExceeded          RejectionCode = "horizon_exceeded"
	RejectSlotConflict             RejectionCode = "slot_conflict"
	RejectEvaluationError          RejectionCode = "evaluation_error"
)

// EvaluationContext caller-supplied context for a single admission decision.
// DecisionTime is captured once by the caller (typically right after
// acquiring the lock that serializes writes to the resource) and never read
// internally.
type EvaluationContext struct {
	DecisionTime time.Time
	Timezone     string

	// SkipPolicy аварийный обход политики: решение allowed, применяются
	// только базовые буферы, все остальные проверки пропускаются
	SkipPolicy bool
}

// BookingRequest запрашиваемый интервал [StartTime, EndTime)
type BookingRequest struct {
	StartTime time.Time
	EndTime   time.Time
}

// Rejection typed admission refusal: stable code, human message and
// optional structured details. Always a value, never an error.
type Rejection struct {
	Code    RejectionCode  `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Decision outcome of one policy evaluation.
//
// On admission EffectiveStart/EffectiveEnd carry the buffer-expanded
// interval callers treat as resource-blocking, while the original request
// times stay the customer-visible commitment.
type Decision struct {
	Allowed bool

	EffectiveStart time.Time
	EffectiveEnd   time.Time
	BufferBeforeMs int64
	BufferAfterMs  int64
	ResolvedConfig ConstraintConfig

	Rejection *Rejection
}

// Allowed строит положительное решение
func AllowedDecision(effectiveStart, effectiveEnd time.Time, bufferBeforeMs, bufferAfterMs int64, cfg ConstraintConfig) *Decision {
	return &Decision{
		Allowed:        true,
		EffectiveStart: effectiveStart,
		EffectiveEnd:   effectiveEnd,
		BufferBeforeMs: bufferBeforeMs,
		BufferAfterMs:  bufferAfterMs,
		ResolvedConfig: cfg,
	}
}

// Rejected строит отрицательное решение
func RejectedDecision(code RejectionCode, message string, details map[string]any) *Decision {
	return &Decision{
		Allowed: false,
		Rejection: &Rejection{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
