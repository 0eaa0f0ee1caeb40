package get_policy

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/policies"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/policies/models"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgPolicyNotFound    = "политика ресурса не найдена"
)

// Response активная версия политики ресурса
// Config — каноническая форма как есть, без повторной сериализации
type Response struct {
	ResourceID string          `json:"resourceId"`
	Hash       string          `json:"hash"`
	Config     json.RawMessage `json:"config"`
}

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/policy
// Публичный endpoint - без авторизации
//
// Query-параметр hash выбирает конкретную сохранённую версию вместо активной
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]
	if resourceID == "" {
		h.logger.Warn("GET /resources/{id}/policy - Missing resource ID")
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	var snapshot *models.PolicySnapshot
	var err error
	if hash := r.URL.Query().Get("hash"); hash != "" {
		snapshot, err = h.service.GetVersion(r.Context(), resourceID, hash)
	} else {
		snapshot, err = h.service.GetActive(r.Context(), resourceID)
	}
	if err != nil {
		if errors.Is(err, policies.ErrPolicyNotFound) {
			h.logger.Info("GET /resources/{id}/policy - Policy not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgPolicyNotFound)
			return
		}
		h.logger.Error("GET /resources/{id}/policy - Failed to get policy: resource_id=%s, error=%v", resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		ResourceID: snapshot.ResourceID,
		Hash:       snapshot.Hash,
		Config:     json.RawMessage(snapshot.Canonical),
	})
}
