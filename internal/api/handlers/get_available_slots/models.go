package get_available_slots

import (
	"strconv"
	"time"

	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

// ToUseCaseRequest формирует запрос к use case из URL и query параметров
func ToUseCaseRequest(resourceID string, query map[string]string) (*getAvailableSlotsUC.Request, error) {
	from, err := time.Parse(time.RFC3339, query["from"])
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(time.RFC3339, query["to"])
	if err != nil {
		return nil, err
	}
	durationMs, err := strconv.ParseInt(query["durationMs"], 10, 64)
	if err != nil {
		return nil, err
	}

	includeUnavailable := false
	if v := query["includeUnavailable"]; v != "" {
		includeUnavailable, err = strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableSlotsUC.Request{
		ResourceID:         resourceID,
		From:               from,
		To:                 to,
		DurationMs:         durationMs,
		Timezone:           query["timezone"],
		IncludeUnavailable: includeUnavailable,
	}, nil
}
