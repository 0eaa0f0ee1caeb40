package get_free_windows

import (
	"strconv"
	"time"

	getFreeWindowsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_free_windows"
)

// ToUseCaseRequest формирует запрос к use case из URL и query параметров
func ToUseCaseRequest(resourceID string, query map[string]string) (*getFreeWindowsUC.Request, error) {
	from, err := time.Parse(time.RFC3339, query["from"])
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(time.RFC3339, query["to"])
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

	return &getFreeWindowsUC.Request{
		ResourceID:         resourceID,
		From:               from,
		To:                 to,
		Timezone:           query["timezone"],
		IncludeUnavailable: includeUnavailable,
	}, nil
}
