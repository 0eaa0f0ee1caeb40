package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func TestPrepareConfig_FullPipeline(t *testing.T) {
	raw := map[string]any{
		"schema_version": float64(1),
		"default":        "closed",
		"config": map[string]any{
			"duration": map[string]any{
				"min_minutes": float64(30),
			},
		},
		"rules": []any{
			map[string]any{
				"match": map[string]any{
					"kind": "weekly",
					"days": []any{"weekdays"},
				},
				"windows": []any{
					map[string]any{"start": "09:00", "end": "17:00"},
				},
			},
		},
	}

	prepared, err := PrepareConfig(raw)
	require.NoError(t, err)

	assert.Equal(t, 1, prepared.Config.SchemaVersion)
	assert.Equal(t, domain.DefaultClosed, prepared.Config.Default)
	require.Len(t, prepared.Config.Rules, 1)
	assert.Equal(t, []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		prepared.Config.Rules[0].Match.Days)

	require.NotNil(t, prepared.Config.Config.Duration.MinMs)
	assert.Equal(t, int64(1_800_000), *prepared.Config.Config.Duration.MinMs)

	assert.Len(t, prepared.Hash, 64)
	assert.NotEmpty(t, prepared.Canonical)
	assert.Empty(t, prepared.Warnings)
}

func TestPrepareConfig_EmptyConfig(t *testing.T) {
	_, err := PrepareConfig(nil)
	assert.ErrorIs(t, err, ErrEmptyConfig)

	_, err = PrepareConfig(map[string]any{})
	assert.ErrorIs(t, err, ErrEmptyConfig)
}

func TestPrepareConfig_EquivalentInputsShareHash(t *testing.T) {
	a, err := PrepareConfig(map[string]any{
		"default": "closed",
		"config": map[string]any{
			"grid": map[string]any{"interval_minutes": float64(30)},
		},
	})
	require.NoError(t, err)

	b, err := PrepareConfig(map[string]any{
		"config": map[string]any{
			"grid": map[string]any{"interval_ms": float64(1_800_000)},
		},
		"default": "closed",
	})
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.Equal(t, a.Canonical, b.Canonical)
}

func TestPrepareConfig_CarriesWarnings(t *testing.T) {
	prepared, err := PrepareConfig(map[string]any{
		"default": "closed",
		"rules": []any{
			map[string]any{"match": map[string]any{"kind": "weekly", "days": []any{"monday"}}},
			map[string]any{"match": map[string]any{"kind": "weekly", "days": []any{"monday"}}},
		},
	})
	require.NoError(t, err)

	require.Len(t, prepared.Warnings, 1)
	assert.Equal(t, domain.WarnUnreachableDays, prepared.Warnings[0].Code)
}

func TestDecodeConfig_RoundTrip(t *testing.T) {
	prepared, err := PrepareConfig(map[string]any{
		"schema_version": float64(1),
		"default":        "open",
	})
	require.NoError(t, err)

	decoded, err := DecodeConfig(prepared.Canonical)
	require.NoError(t, err)
	assert.Equal(t, prepared.Config, decoded)
}

func TestDecodeConfig_Invalid(t *testing.T) {
	_, err := DecodeConfig("{not json")
	assert.ErrorIs(t, err, ErrDecodeConfig)
}
