package domain

// DefaultAvailability определяет поведение политики для дат, не попавших ни под одно правило
type DefaultAvailability string

const (
	DefaultOpen   DefaultAvailability = "open"
	DefaultClosed DefaultAvailability = "closed"
)

// MatchKind тип условия соответствия правила дате
type MatchKind string

const (
	MatchWeekly    MatchKind = "weekly"
	MatchDate      MatchKind = "date"
	MatchDateRange MatchKind = "date_range"
)

// SupportedSchemaVersion единственная поддерживаемая версия схемы конфигурации политики
const SupportedSchemaVersion = 1

// PolicyConfig versioned booking policy for a resource: default availability,
// base constraint config and an ordered rule list.
//
// Rules order is semantic (first-match-wins), the list must never be
// reordered. A PolicyConfig is immutable once normalized and hashed: a new
// version is a new content hash, never a mutation in place.
type PolicyConfig struct {
	SchemaVersion int                 `json:"schema_version"`
	Default       DefaultAvailability `json:"default"`
	Config        *ConstraintConfig   `json:"config,omitempty"`
	Rules         []Rule              `json:"rules,omitempty"`
	Metadata      map[string]any      `json:"metadata,omitempty"`
}

// Rule ordered policy entry matching a date condition.
// Either Closed is true (blackout) or the rule opens matched dates,
// optionally restricted to Windows and with section-level config overrides.
type Rule struct {
	Match   RuleMatch         `json:"match"`
	Closed  bool              `json:"closed,omitempty"`
	Windows []TimeWindow      `json:"windows,omitempty"`
	Config  *ConstraintConfig `json:"config,omitempty"`
}

// RuleMatch tagged variant describing which dates a rule applies to.
// Exactly one kind is active; the predicate per kind lives in the policy
// package (closed set, switch on Kind).
type RuleMatch struct {
	Kind MatchKind `json:"kind"`

	// Days weekday names для kind=weekly, опциональный фильтр для kind=date_range
	Days []string `json:"days,omitempty"`

	// Date дата YYYY-MM-DD для kind=date
	Date string `json:"date,omitempty"`

	// From/To включительные границы диапазона для kind=date_range
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// TimeWindow локальный интервал времени суток, в течение которого ресурс открыт
// Start и End в формате HH:MM, "24:00" допустимо как конец суток
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsBlackout returns true if the rule marks matched dates fully closed
func (r *Rule) IsBlackout() bool {
	return r.Closed
}

// HasWindows returns true if the rule restricts matched dates to time windows
func (r *Rule) HasWindows() bool {
	return len(r.Windows) > 0
}
