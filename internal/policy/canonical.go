package policy

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Canonicalize produces the byte-stable serialization of a normalized
// policy config used for content hashing.
//
// Object keys sort alphabetically at every level. Arrays keep their order
// with three key-scoped exceptions: `days` sorts into fixed weekday order
// (unknown values after known ones, stable), `windows` sorts ascending by
// (start, end), `allowed_ms` dedupes and sorts ascending numerically.
// `rules` arrays always keep original order — it is semantic. The output
// carries no insignificant whitespace.
//
// Contract: configs differing only in key order, days order, windows order
// or whitespace canonicalize identically; configs differing in rules order
// canonicalize differently.
func Canonicalize(normalized map[string]any) string {
	var b strings.Builder
	writeCanonical(&b, normalized, "")
	return b.String()
}

// Hash returns the hex digest of the canonical string — the
// content-addressed version id of a policy.
func Hash(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// HashConfig канонизирует и хеширует за один вызов
func HashConfig(normalized map[string]any) string {
	return Hash(Canonicalize(normalized))
}

func writeCanonical(b *strings.Builder, node any, key string) {
	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeLeaf(b, k)
			b.WriteByte(':')
			writeCanonical(b, v[k], k)
		}
		b.WriteByte('}')

	case []any:
		b.WriteByte('[')
		for i, el := range orderArray(v, key) {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, el, "")
		}
		b.WriteByte(']')

	default:
		writeLeaf(b, v)
	}
}

// orderArray применяет порядок, зависящий от имени ключа массива
func orderArray(arr []any, key string) []any {
	switch key {
	case "days":
		return sortDays(arr)
	case "windows":
		return sortWindows(arr)
	case "allowed_ms":
		return sortAllowed(arr)
	default:
		// В том числе "rules": порядок правил семантичен и сохраняется
		return arr
	}
}

// sortDays сортирует дни недели в фиксированном порядке monday..sunday
// Неизвестные значения стабильно уходят в конец
func sortDays(arr []any) []any {
	out := append([]any(nil), arr...)
	sort.SliceStable(out, func(i, j int) bool {
		return dayRank(out[i]) < dayRank(out[j])
	})
	return out
}

func dayRank(el any) int {
	day, ok := el.(string)
	if !ok {
		return len(domain.WeekdayOrder)
	}
	rank, known := domain.WeekdayRank[day]
	if !known {
		return len(domain.WeekdayOrder)
	}
	return rank
}

// sortWindows сортирует окна по возрастанию (start, end)
func sortWindows(arr []any) []any {
	out := append([]any(nil), arr...)
	sort.SliceStable(out, func(i, j int) bool {
		si, ei := windowBounds(out[i])
		sj, ej := windowBounds(out[j])
		if si != sj {
			return si < sj
		}
		return ei < ej
	})
	return out
}

func windowBounds(el any) (start, end string) {
	w, ok := el.(map[string]any)
	if !ok {
		return "", ""
	}
	start, _ = w["start"].(string)
	end, _ = w["end"].(string)
	return start, end
}

// sortAllowed дедуплицирует и сортирует по возрастанию числовые значения
func sortAllowed(arr []any) []any {
	seen := make(map[float64]bool)
	nums := make([]float64, 0, len(arr))
	var rest []any
	for _, el := range arr {
		n, ok := asNumber(el)
		if !ok {
			rest = append(rest, el)
			continue
		}
		if !seen[n] {
			seen[n] = true
			nums = append(nums, n)
		}
	}
	sort.Float64s(nums)

	out := make([]any, 0, len(nums)+len(rest))
	for _, n := range nums {
		out = append(out, n)
	}
	return append(out, rest...)
}

// writeLeaf сериализует скалярное значение через encoding/json
// (экранирование строк, каноничный формат чисел)
func writeLeaf(b *strings.Builder, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		// Недопустимое скалярное значение в конфиге: фиксируем как null,
		// структурная валидация выше по стеку не должна была это пропустить
		b.WriteString("null")
		return
	}
	b.Write(data)
}
