package get_free_windows

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getFreeWindowsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_free_windows"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidParams     = "некорректные параметры запроса"
	msgRangeTooWide      = "слишком широкий диапазон запроса"
)

type Handler struct {
	usecase GetFreeWindowsUseCase
	logger  Logger
}

func NewHandler(usecase GetFreeWindowsUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/free-windows
// Query params: from, to (RFC3339), timezone, includeUnavailable (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]
	if resourceID == "" {
		h.logger.Warn("GET /resources/{id}/free-windows - Missing resource ID")
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	q := r.URL.Query()
	req, err := ToUseCaseRequest(resourceID, map[string]string{
		"from":               q.Get("from"),
		"to":                 q.Get("to"),
		"timezone":           q.Get("timezone"),
		"includeUnavailable": q.Get("includeUnavailable"),
	})
	if err != nil {
		h.logger.Warn("GET /resources/{id}/free-windows - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.usecase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getFreeWindowsUC.ErrRangeTooWide):
			h.logger.Warn("GET /resources/{id}/free-windows - Range too wide: resource_id=%s", resourceID)
			handlers.RespondBadRequest(w, msgRangeTooWide)
		case errors.Is(err, getFreeWindowsUC.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/free-windows - Invalid params: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
		default:
			h.logger.Error("GET /resources/{id}/free-windows - Failed: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
