package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Millisecond unit multipliers for friendly authoring units
const (
	MsPerMinute int64 = 60_000
	MsPerHour   int64 = 3_600_000
	MsPerDay    int64 = 86_400_000
)

// MinutesPerDay полные сутки в минутах; "24:00" нормализуется ровно к этому значению
const MinutesPerDay = 1440

// WeekdayOrder каноничный порядок дней недели для канонизации days-массивов
var WeekdayOrder = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// WeekdayRank позиция дня недели в каноничном порядке
// Неизвестные значения сортируются после известных (стабильно)
var WeekdayRank = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// DayShorthands раскрытие сокращений в явные списки дней недели
var DayShorthands = map[string][]string{
	"weekdays": {"monday", "tuesday", "wednesday", "thursday", "friday"},
	"weekends": {"saturday", "sunday"},
	"everyday": {"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
}

// Query range bounds enforced by the outer use cases (the engine itself has
// no cancellation or timeout concept, callers keep the per-date loop cheap)
const (
	MaxSlotQueryDays   = 7
	MaxWindowQueryDays = 31
)
