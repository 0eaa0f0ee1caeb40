package policy

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// PreparedConfig результат подготовки одной версии политики
//
// Canonical и Hash — содержимое и идентификатор версии; Config —
// типизированный снимок для вычислителя; Warnings — некритичные замечания
// семантической валидации.
type PreparedConfig struct {
	Config    *domain.PolicyConfig
	Canonical string
	Hash      string
	Warnings  []domain.Warning
}

// PrepareConfig is the authoring-time orchestrator: normalize the raw
// authored config, canonicalize and hash it, decode the typed snapshot and
// lint it. Invoked once when a policy version is created; the evaluator
// and the generators consume the already-prepared snapshot and never
// re-normalize on read.
func PrepareConfig(raw map[string]any) (*PreparedConfig, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyConfig
	}

	normalized := Normalize(raw)
	canonical := Canonicalize(normalized)

	var cfg domain.PolicyConfig
	if err := json.Unmarshal([]byte(canonical), &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeConfig, err)
	}

	return &PreparedConfig{
		Config:    &cfg,
		Canonical: canonical,
		Hash:      Hash(canonical),
		Warnings:  Validate(&cfg),
	}, nil
}

// DecodeConfig восстанавливает типизированный снимок из канонической формы
// (путь чтения: хранится именно каноническая строка)
func DecodeConfig(canonical string) (*domain.PolicyConfig, error) {
	var cfg domain.PolicyConfig
	if err := json.Unmarshal([]byte(canonical), &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeConfig, err)
	}
	return &cfg, nil
}
