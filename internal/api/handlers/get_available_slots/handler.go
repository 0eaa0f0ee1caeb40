package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidParams     = "некорректные параметры запроса"
	msgRangeTooWide      = "слишком широкий диапазон запроса"
)

type Handler struct {
	usecase GetAvailableSlotsUseCase
	metrics *metrics.Metrics
	logger  Logger
}

// NewHandler создает handler получения слотов
// metrics может быть nil, если сбор метрик выключен
func NewHandler(usecase GetAvailableSlotsUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		metrics: m,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/available-slots
// Query params: from, to (RFC3339), durationMs, timezone, includeUnavailable (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]
	if resourceID == "" {
		h.logger.Warn("GET /resources/{id}/available-slots - Missing resource ID")
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	q := r.URL.Query()
	req, err := ToUseCaseRequest(resourceID, map[string]string{
		"from":               q.Get("from"),
		"to":                 q.Get("to"),
		"durationMs":         q.Get("durationMs"),
		"timezone":           q.Get("timezone"),
		"includeUnavailable": q.Get("includeUnavailable"),
	})
	if err != nil {
		h.logger.Warn("GET /resources/{id}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.usecase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlotsUC.ErrRangeTooWide):
			h.logger.Warn("GET /resources/{id}/available-slots - Range too wide: resource_id=%s", resourceID)
			handlers.RespondBadRequest(w, msgRangeTooWide)
		case errors.Is(err, getAvailableSlotsUC.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/available-slots - Invalid params: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
		default:
			h.logger.Error("GET /resources/{id}/available-slots - Failed: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.SlotsGenerated.Observe(float64(len(result.Slots)))
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
