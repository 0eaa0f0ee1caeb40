package domain

// WarningCode stable code of a non-fatal policy configuration warning
type WarningCode string

const (
	// WarnUnreachableDays более позднее weekly-правило перекрыто днями более ранних weekly-правил
	WarnUnreachableDays WarningCode = "unreachable_days"

	// WarnDuplicateDateRule более позднее date-правило дублирует дату более раннего
	WarnDuplicateDateRule WarningCode = "duplicate_date_rule"

	// WarnImplicitFullDayOpen правило с overrides без closed и без windows при default=closed
	// открывает совпавшие даты на 24 часа — вероятно, не намеренно
	WarnImplicitFullDayOpen WarningCode = "implicit_full_day_open"

	// WarnOpenDefaultWithWindows default=open в сочетании с оконными правилами неоднозначен
	WarnOpenDefaultWithWindows WarningCode = "open_default_with_windows"
)

// Warning semantic misconfiguration notice. Warnings never block
// processing: structural errors are handled upstream, everything this
// validator finds is advisory.
type Warning struct {
	Code    WarningCode    `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
