package cancel_allocation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	cancelAllocationUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/cancel_allocation"
)

const (
	msgInvalidAllocationID = "некорректный ID аллокации"
	msgInvalidParams       = "некорректные параметры запроса"
	msgAllocationNotFound  = "аллокация не найдена"
	msgNotOwner            = "аллокация принадлежит другому пользователю"
	msgNotCancellable      = "аллокация не может быть отменена"
)

type Handler struct {
	usecase CancelAllocationUseCase
	logger  Logger
}

func NewHandler(usecase CancelAllocationUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle POST /api/v1/allocations/{allocationId}/cancel
// Требует X-User-ID header
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	allocationID, err := strconv.ParseInt(mux.Vars(r)["allocationId"], 10, 64)
	if err != nil || allocationID <= 0 {
		h.logger.Warn("POST /allocations/{id}/cancel - Invalid allocation ID: %s", mux.Vars(r)["allocationId"])
		handlers.RespondBadRequest(w, msgInvalidAllocationID)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	result, err := h.usecase.Execute(r.Context(), &cancelAllocationUC.Request{
		UserID:       userID,
		AllocationID: allocationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelAllocationUC.ErrInvalidInput):
			h.logger.Warn("POST /allocations/{id}/cancel - Invalid params: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
		case errors.Is(err, cancelAllocationUC.ErrAllocationNotFound):
			h.logger.Info("POST /allocations/{id}/cancel - Not found: allocation_id=%d", allocationID)
			handlers.RespondNotFound(w, msgAllocationNotFound)
		case errors.Is(err, cancelAllocationUC.ErrNotOwner):
			h.logger.Warn("POST /allocations/{id}/cancel - Not owner: allocation_id=%d, user_id=%d", allocationID, userID)
			handlers.RespondForbidden(w, msgNotOwner)
		case errors.Is(err, cancelAllocationUC.ErrNotCancellable):
			h.logger.Info("POST /allocations/{id}/cancel - Not cancellable: allocation_id=%d", allocationID)
			handlers.RespondConflict(w, msgNotCancellable)
		default:
			h.logger.Error("POST /allocations/{id}/cancel - Failed: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
