package policy

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Validate runs the semantic lint over a decoded policy config. It returns
// warnings and never rejects: structural errors are caught upstream, and a
// warned config still evaluates exactly as written.
//
// Checks are independent of each other:
//   - a later weekly rule whose days are already claimed by earlier weekly
//     rules can never win those days (first-match-wins);
//   - a later exact-date rule duplicating an earlier exact date is dead;
//   - a rule carrying only config overrides under a closed default silently
//     opens matched dates for 24h;
//   - an open default combined with windowed rules is ambiguous (unmatched
//     dates are open round the clock while matched ones are windowed).
func Validate(cfg *domain.PolicyConfig) []domain.Warning {
	if cfg == nil {
		return nil
	}

	var warnings []domain.Warning
	warnings = append(warnings, checkUnreachableWeeklyDays(cfg)...)
	warnings = append(warnings, checkDuplicateDates(cfg)...)
	warnings = append(warnings, checkImplicitFullDayOpen(cfg)...)
	warnings = append(warnings, checkOpenDefaultWithWindows(cfg)...)
	return warnings
}

func checkUnreachableWeeklyDays(cfg *domain.PolicyConfig) []domain.Warning {
	var warnings []domain.Warning
	claimed := make(map[string]int) // день недели → индекс правила, забравшего его

	for i, rule := range cfg.Rules {
		if rule.Match.Kind != domain.MatchWeekly {
			continue
		}
		var overlap []string
		for _, day := range rule.Match.Days {
			if _, taken := claimed[day]; taken {
				overlap = append(overlap, day)
			} else {
				claimed[day] = i
			}
		}
		if len(overlap) > 0 {
			warnings = append(warnings, domain.Warning{
				Code: domain.WarnUnreachableDays,
				Message: fmt.Sprintf("rule %d: days [%s] are already claimed by an earlier weekly rule and can never match",
					i, strings.Join(overlap, ", ")),
				Details: map[string]any{
					"rule_index": i,
					"days":       overlap,
				},
			})
		}
	}
	return warnings
}

func checkDuplicateDates(cfg *domain.PolicyConfig) []domain.Warning {
	var warnings []domain.Warning
	seen := make(map[string]int)

	for i, rule := range cfg.Rules {
		if rule.Match.Kind != domain.MatchDate {
			continue
		}
		if first, dup := seen[rule.Match.Date]; dup {
			warnings = append(warnings, domain.Warning{
				Code: domain.WarnDuplicateDateRule,
				Message: fmt.Sprintf("rule %d: date %s is already matched by rule %d and can never match",
					i, rule.Match.Date, first),
				Details: map[string]any{
					"rule_index":  i,
					"date":        rule.Match.Date,
					"first_index": first,
				},
			})
			continue
		}
		seen[rule.Match.Date] = i
	}
	return warnings
}

func checkImplicitFullDayOpen(cfg *domain.PolicyConfig) []domain.Warning {
	if cfg.Default != domain.DefaultClosed {
		return nil
	}

	var warnings []domain.Warning
	for i, rule := range cfg.Rules {
		if rule.Closed || rule.HasWindows() || rule.Config == nil {
			continue
		}
		warnings = append(warnings, domain.Warning{
			Code: domain.WarnImplicitFullDayOpen,
			Message: fmt.Sprintf("rule %d: has config overrides but neither closed nor windows; under a closed default it opens matched dates for the full 24h",
				i),
			Details: map[string]any{
				"rule_index": i,
			},
		})
	}
	return warnings
}

func checkOpenDefaultWithWindows(cfg *domain.PolicyConfig) []domain.Warning {
	if cfg.Default != domain.DefaultOpen {
		return nil
	}

	var windowed []int
	for i, rule := range cfg.Rules {
		if rule.HasWindows() {
			windowed = append(windowed, i)
		}
	}
	if len(windowed) == 0 {
		return nil
	}

	return []domain.Warning{{
		Code: domain.WarnOpenDefaultWithWindows,
		Message: "default is open while windowed rules are present: unmatched dates stay open round the clock, which is usually not intended",
		Details: map[string]any{
			"rule_indexes": windowed,
		},
	}}
}
