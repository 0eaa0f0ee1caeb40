package policy

import (
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// unitSuffixes распознаваемые авторские единицы и их множители в миллисекунды
// Порядок фиксирован: суффиксы проверяются от самого длинного к самому короткому
var unitSuffixes = []struct {
	suffix     string
	multiplier int64
}{
	{"_minutes", domain.MsPerMinute},
	{"_hours", domain.MsPerHour},
	{"_days", domain.MsPerDay},
}

// constraintSections секции конфигурации, внутри которых применяется
// конвертация авторских единиц
var constraintSections = []string{"duration", "grid", "lead_time", "buffers", "hold"}

// Normalize converts an authored policy config into its canonical-unit
// form: friendly-unit fields (`_minutes`, `_hours`, `_days`) become `_ms`
// siblings, day shorthands expand to explicit weekday lists.
//
// The input map is never mutated; a deep copy is transformed and returned.
// Unit conversion applies only inside the recognized constraint sections,
// at the policy base level and inside each rule's override section. If a
// canonical `_ms` sibling already exists for the same prefix it wins and
// the friendly field is dropped silently.
func Normalize(raw map[string]any) map[string]any {
	out, _ := deepCopyValue(raw).(map[string]any)
	if out == nil {
		return map[string]any{}
	}

	if cfg, ok := out["config"].(map[string]any); ok {
		normalizeSections(cfg)
	}
	if rules, ok := out["rules"].([]any); ok {
		for _, r := range rules {
			rule, ok := r.(map[string]any)
			if !ok {
				continue
			}
			if cfg, ok := rule["config"].(map[string]any); ok {
				normalizeSections(cfg)
			}
		}
	}

	expandDayShorthands(out)
	return out
}

// normalizeSections конвертирует единицы внутри распознанных секций
func normalizeSections(cfg map[string]any) {
	for _, name := range constraintSections {
		if section, ok := cfg[name].(map[string]any); ok {
			normalizeUnits(section)
		}
	}
}

// normalizeUnits заменяет поля с авторскими единицами на канонические _ms
func normalizeUnits(section map[string]any) {
	keys := make([]string, 0, len(section))
	for k := range section {
		keys = append(keys, k)
	}

	for _, key := range keys {
		for _, unit := range unitSuffixes {
			if !strings.HasSuffix(key, unit.suffix) {
				continue
			}
			prefix := strings.TrimSuffix(key, unit.suffix)
			msKey := prefix + "_ms"

			// Каноническое поле побеждает: авторское молча отбрасывается
			if _, exists := section[msKey]; !exists {
				if converted, ok := convertToMs(section[key], unit.multiplier); ok {
					section[msKey] = converted
				}
			}
			delete(section, key)
			break
		}
	}
}

// convertToMs умножает числовое значение (или каждый элемент массива) на множитель
func convertToMs(value any, multiplier int64) (any, bool) {
	if arr, ok := value.([]any); ok {
		out := make([]any, 0, len(arr))
		for _, el := range arr {
			n, ok := asNumber(el)
			if !ok {
				return nil, false
			}
			out = append(out, n*float64(multiplier))
		}
		return out, true
	}
	n, ok := asNumber(value)
	if !ok {
		return nil, false
	}
	return n * float64(multiplier), true
}

// expandDayShorthands рекурсивно раскрывает сокращения в каждом days-массиве
// Раскрытие дедуплицирует, сохраняя порядок первого вхождения
func expandDayShorthands(node any) {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			if key == "days" {
				if arr, ok := child.([]any); ok {
					v[key] = expandDays(arr)
					continue
				}
			}
			expandDayShorthands(child)
		}
	case []any:
		for _, child := range v {
			expandDayShorthands(child)
		}
	}
}

func expandDays(days []any) []any {
	out := make([]any, 0, len(days))
	seen := make(map[string]bool)

	appendDay := func(day string) {
		if !seen[day] {
			seen[day] = true
			out = append(out, day)
		}
	}

	for _, el := range days {
		day, ok := el.(string)
		if !ok {
			out = append(out, el)
			continue
		}
		if expansion, isShorthand := domain.DayShorthands[day]; isShorthand {
			for _, d := range expansion {
				appendDay(d)
			}
			continue
		}
		appendDay(day)
	}
	return out
}

// deepCopyValue глубокое копирование дерева JSON-значений
func deepCopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			out[k] = deepCopyValue(child)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = deepCopyValue(child)
		}
		return out
	default:
		return v
	}
}

// asNumber приводит JSON-число к float64
func asNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
