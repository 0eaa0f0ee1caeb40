package domain

import "time"

// DayWindow окно открытости в миллисекундах от локальной полуночи
type DayWindow struct {
	StartMs int64
	EndMs   int64
}

// ResolvedDay answer of the day resolver for one local calendar date:
// the date is open within Windows under the merged Config.
//
// Ephemeral: computed per request, never persisted.
type ResolvedDay struct {
	Date    string
	Windows []DayWindow
	Config  ConstraintConfig
}

// SlotStatus доступность сгенерированного слота
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotUnavailable SlotStatus = "unavailable"
)

// Slot дискретный кандидат для бронирования
// Status заполняется только в режиме includeUnavailable
type Slot struct {
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
	Status    SlotStatus `json:"status,omitempty"`
}

// Window непрерывный интервал свободного (или занятого) времени
// Status заполняется только в режиме includeUnavailable
type Window struct {
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
	Status    SlotStatus `json:"status,omitempty"`
}
