package evaluate_booking

import "time"

// RequestBody тело запроса на допуск бронирования
type RequestBody struct {
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Timezone   string    `json:"timezone"`
	SkipPolicy bool      `json:"skipPolicy,omitempty"`
	DryRun     bool      `json:"dryRun,omitempty"`
}
