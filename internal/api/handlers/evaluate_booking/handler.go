package evaluate_booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	evaluateBookingUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/evaluate_booking"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	usecase EvaluateBookingUseCase
	metrics *metrics.Metrics
	logger  Logger
}

// NewHandler создает handler решения о допуске
// metrics может быть nil, если сбор метрик выключен
func NewHandler(usecase EvaluateBookingUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/resources/{resourceId}/evaluate
// Требует X-User-ID header
//
// Отказ в допуске — это ответ 200 со структурированным rejection,
// а не ошибка HTTP: стабильные коды отказов являются частью контракта
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]
	if resourceID == "" {
		h.logger.Warn("POST /resources/{id}/evaluate - Missing resource ID")
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	var body RequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warn("POST /resources/{id}/evaluate - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.usecase.Execute(r.Context(), &evaluateBookingUC.Request{
		UserID:     userID,
		ResourceID: resourceID,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
		Timezone:   body.Timezone,
		SkipPolicy: body.SkipPolicy,
		DryRun:     body.DryRun,
	})
	if err != nil {
		if errors.Is(err, evaluateBookingUC.ErrInvalidInput) {
			h.logger.Warn("POST /resources/{id}/evaluate - Invalid params: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("POST /resources/{id}/evaluate - Evaluation failed: resource_id=%s, error=%v", resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	if h.metrics != nil {
		outcome := "allowed"
		if !result.Allowed {
			outcome = string(result.Rejection.Code)
		}
		h.metrics.ObserveEvaluation(outcome)
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
