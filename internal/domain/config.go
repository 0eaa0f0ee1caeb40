package domain

// ConstraintConfig booking constraint sections of a policy.
// Each section is independently replaceable: when a rule overrides a
// section, that section fully replaces the base one (no field-by-field
// deep merge within a section).
type ConstraintConfig struct {
	Duration *DurationConfig `json:"duration,omitempty"`
	Grid     *GridConfig     `json:"grid,omitempty"`
	LeadTime *LeadTimeConfig `json:"lead_time,omitempty"`
	Buffers  *BufferConfig   `json:"buffers,omitempty"`
	Hold     *HoldConfig     `json:"hold,omitempty"`
}

// DurationConfig ограничения длительности бронирования
// Непустой AllowedMs полностью отключает проверки MinMs/MaxMs (только membership)
type DurationConfig struct {
	MinMs     *int64  `json:"min_ms,omitempty"`
	MaxMs     *int64  `json:"max_ms,omitempty"`
	AllowedMs []int64 `json:"allowed_ms,omitempty"`
}

// GridConfig шаг сетки для генерации дискретных слотов
type GridConfig struct {
	IntervalMs *int64 `json:"interval_ms,omitempty"`
}

// LeadTimeConfig минимальный и максимальный зазор между "сейчас" и началом брони
type LeadTimeConfig struct {
	MinMs *int64 `json:"min_ms,omitempty"`
	MaxMs *int64 `json:"max_ms,omitempty"`
}

// BufferConfig дополнительное блокируемое время до и после брони
type BufferConfig struct {
	BeforeMs *int64 `json:"before_ms,omitempty"`
	AfterMs  *int64 `json:"after_ms,omitempty"`
}

// HoldConfig время жизни неподтверждённой брони
type HoldConfig struct {
	DurationMs *int64 `json:"duration_ms,omitempty"`
}

// MergeConfig applies a rule's override sections on top of a base config.
// Replace-not-deepmerge: an overridden section wins wholesale, sections the
// override does not mention are taken from the base. Both inputs may be nil.
//
// The same function backs the day resolver, the evaluator and the
// availability generators, so the section-replace semantics stay consistent
// everywhere.
func MergeConfig(base, override *ConstraintConfig) ConstraintConfig {
	var merged ConstraintConfig
	if base != nil {
		merged = *base
	}
	if override == nil {
		return merged
	}
	if override.Duration != nil {
		merged.Duration = override.Duration
	}
	if override.Grid != nil {
		merged.Grid = override.Grid
	}
	if override.LeadTime != nil {
		merged.LeadTime = override.LeadTime
	}
	if override.Buffers != nil {
		merged.Buffers = override.Buffers
	}
	if override.Hold != nil {
		merged.Hold = override.Hold
	}
	return merged
}

// DurationVerdict результат проверки длительности против секции duration
type DurationVerdict int

const (
	DurationOK DurationVerdict = iota
	DurationNotAllowed
	DurationTooShort
	DurationTooLong
)

// CheckDuration validates a requested duration against the section.
// A non-empty AllowedMs is a membership test that fully disables the
// min/max bounds (mutually exclusive, not additive). A nil section
// permits any positive duration.
func (d *DurationConfig) CheckDuration(durationMs int64) DurationVerdict {
	if durationMs <= 0 {
		return DurationNotAllowed
	}
	if d == nil {
		return DurationOK
	}
	if len(d.AllowedMs) > 0 {
		for _, allowed := range d.AllowedMs {
			if allowed == durationMs {
				return DurationOK
			}
		}
		return DurationNotAllowed
	}
	if d.MinMs != nil && durationMs < *d.MinMs {
		return DurationTooShort
	}
	if d.MaxMs != nil && durationMs > *d.MaxMs {
		return DurationTooLong
	}
	return DurationOK
}

// MinDurationMs минимальная длительность для непрерывных окон
// (0, если секции нет или действует allowed_ms)
func (d *DurationConfig) MinDurationMs() int64 {
	if d == nil || len(d.AllowedMs) > 0 || d.MinMs == nil {
		return 0
	}
	return *d.MinMs
}

// BufferBeforeMs возвращает буфер перед бронью (0, если не задан)
func (c *ConstraintConfig) BufferBeforeMs() int64 {
	if c == nil || c.Buffers == nil || c.Buffers.BeforeMs == nil {
		return 0
	}
	return *c.Buffers.BeforeMs
}

// BufferAfterMs возвращает буфер после брони (0, если не задан)
func (c *ConstraintConfig) BufferAfterMs() int64 {
	if c == nil || c.Buffers == nil || c.Buffers.AfterMs == nil {
		return 0
	}
	return *c.Buffers.AfterMs
}

// GridIntervalMs возвращает шаг сетки (0, если сетка не настроена)
func (c *ConstraintConfig) GridIntervalMs() int64 {
	if c == nil || c.Grid == nil || c.Grid.IntervalMs == nil {
		return 0
	}
	return *c.Grid.IntervalMs
}

// HoldDurationMs возвращает время жизни hold (0, если не задано)
func (c *ConstraintConfig) HoldDurationMs() int64 {
	if c == nil || c.Hold == nil || c.Hold.DurationMs == nil {
		return 0
	}
	return *c.Hold.DurationMs
}
