package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func weeklyRule(days ...string) domain.Rule {
	return domain.Rule{
		Match: domain.RuleMatch{Kind: domain.MatchWeekly, Days: days},
	}
}

func findWarnings(warnings []domain.Warning, code domain.WarningCode) []domain.Warning {
	var out []domain.Warning
	for _, w := range warnings {
		if w.Code == code {
			out = append(out, w)
		}
	}
	return out
}

func TestValidate_NilConfig(t *testing.T) {
	assert.Nil(t, Validate(nil))
}

func TestValidate_CleanConfigNoWarnings(t *testing.T) {
	cfg := &domain.PolicyConfig{
		SchemaVersion: 1,
		Default:       domain.DefaultClosed,
		Rules: []domain.Rule{
			{
				Match:   domain.RuleMatch{Kind: domain.MatchWeekly, Days: []string{"monday"}},
				Windows: []domain.TimeWindow{{Start: "09:00", End: "17:00"}},
			},
		},
	}

	assert.Empty(t, Validate(cfg))
}

func TestValidate_UnreachableWeeklyDays(t *testing.T) {
	cfg := &domain.PolicyConfig{
		Default: domain.DefaultClosed,
		Rules: []domain.Rule{
			weeklyRule("monday", "tuesday"),
			weeklyRule("tuesday", "wednesday"),
		},
	}

	warnings := findWarnings(Validate(cfg), domain.WarnUnreachableDays)
	require.Len(t, warnings, 1)
	assert.Equal(t, 1, warnings[0].Details["rule_index"])
	assert.Equal(t, []string{"tuesday"}, warnings[0].Details["days"])
}

func TestValidate_UnreachableDaysAccumulateAcrossRules(t *testing.T) {
	// Третье правило затенено объединением дней первых двух
	cfg := &domain.PolicyConfig{
		Default: domain.DefaultClosed,
		Rules: []domain.Rule{
			weeklyRule("monday"),
			weeklyRule("tuesday"),
			weeklyRule("monday", "tuesday"),
		},
	}

	warnings := findWarnings(Validate(cfg), domain.WarnUnreachableDays)
	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Details["rule_index"])
	assert.Equal(t, []string{"monday", "tuesday"}, warnings[0].Details["days"])
}

func TestValidate_DuplicateDateRule(t *testing.T) {
	cfg := &domain.PolicyConfig{
		Default: domain.DefaultClosed,
		Rules: []domain.Rule{
			{Match: domain.RuleMatch{Kind: domain.MatchDate, Date: "2026-05-01"}},
			{Match: domain.RuleMatch{Kind: domain.MatchDate, Date: "2026-05-01"}, Closed: true},
		},
	}

	warnings := findWarnings(Validate(cfg), domain.WarnDuplicateDateRule)
	require.Len(t, warnings, 1)
	assert.Equal(t, 1, warnings[0].Details["rule_index"])
	assert.Equal(t, 0, warnings[0].Details["first_index"])
}

func TestValidate_ImplicitFullDayOpen(t *testing.T) {
	cfg := &domain.PolicyConfig{
		Default: domain.DefaultClosed,
		Rules: []domain.Rule{
			{
				Match:  domain.RuleMatch{Kind: domain.MatchWeekly, Days: []string{"monday"}},
				Config: &domain.ConstraintConfig{},
			},
		},
	}

	warnings := findWarnings(Validate(cfg), domain.WarnImplicitFullDayOpen)
	require.Len(t, warnings, 1)
	assert.Equal(t, 0, warnings[0].Details["rule_index"])
}

func TestValidate_ImplicitFullDayOpenNotUnderOpenDefault(t *testing.T) {
	cfg := &domain.PolicyConfig{
		Default: domain.DefaultOpen,
		Rules: []domain.Rule{
			{
				Match:  domain.RuleMatch{Kind: domain.MatchWeekly, Days: []string{"monday"}},
				Config: &domain.ConstraintConfig{},
			},
		},
	}

	assert.Empty(t, findWarnings(Validate(cfg), domain.WarnImplicitFullDayOpen))
}

func TestValidate_OpenDefaultWithWindows(t *testing.T) {
	cfg := &domain.PolicyConfig{
		Default: domain.DefaultOpen,
		Rules: []domain.Rule{
			{
				Match:   domain.RuleMatch{Kind: domain.MatchWeekly, Days: []string{"monday"}},
				Windows: []domain.TimeWindow{{Start: "09:00", End: "17:00"}},
			},
			weeklyRule("tuesday"),
			{
				Match:   domain.RuleMatch{Kind: domain.MatchWeekly, Days: []string{"friday"}},
				Windows: []domain.TimeWindow{{Start: "10:00", End: "16:00"}},
			},
		},
	}

	warnings := findWarnings(Validate(cfg), domain.WarnOpenDefaultWithWindows)
	require.Len(t, warnings, 1)
	assert.Equal(t, []int{0, 2}, warnings[0].Details["rule_indexes"])
}
