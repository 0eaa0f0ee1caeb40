package update_policy

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/policies"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/policies/models"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidConfig     = "некорректная конфигурация политики"
)

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

// Handle PUT /api/v1/resources/{resourceId}/policy
// Тело запроса — сырая авторская конфигурация политики (JSON-объект)
// Требует X-User-ID header
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]
	if resourceID == "" {
		h.logger.Warn("PUT /resources/{id}/policy - Missing resource ID")
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	var rawConfig map[string]any
	if err := json.NewDecoder(r.Body).Decode(&rawConfig); err != nil {
		h.logger.Warn("PUT /resources/{id}/policy - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), &models.UpsertPolicyRequest{
		ResourceID: resourceID,
		UserID:     userID,
		Config:     rawConfig,
	})
	if err != nil {
		if errors.Is(err, policies.ErrInvalidConfig) {
			h.logger.Warn("PUT /resources/{id}/policy - Invalid config: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)
			return
		}
		h.logger.Error("PUT /resources/{id}/policy - Failed to upsert policy: resource_id=%s, error=%v", resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /resources/{id}/policy - Policy version stored: resource_id=%s, hash=%s",
		resourceID, result.Hash)
	handlers.RespondJSON(w, http.StatusOK, result)
}
