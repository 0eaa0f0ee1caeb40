package cancel_allocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	cancelAllocationUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/cancel_allocation"
)

type fakeUseCase struct {
	req  *cancelAllocationUC.Request
	resp *cancelAllocationUC.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *cancelAllocationUC.Request) (*cancelAllocationUC.Response, error) {
	f.req = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	sub := r.PathPrefix("/api/v1").Subrouter()
	sub.Use(middleware.Auth)
	sub.HandleFunc("/allocations/{allocationId}/cancel", h.Handle).Methods(http.MethodPost)
	return r
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{
		resp: &cancelAllocationUC.Response{AllocationID: 7, Status: domain.AllocationCancelled},
	}
	router := newRouter(NewHandler(uc, nopLogger{}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations/7/cancel", nil)
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, int64(42), uc.req.UserID)
	assert.Equal(t, int64(7), uc.req.AllocationID)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandle_MissingUserID(t *testing.T) {
	router := newRouter(NewHandler(&fakeUseCase{}, nopLogger{}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations/7/cancel", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InvalidAllocationID(t *testing.T) {
	router := newRouter(NewHandler(&fakeUseCase{}, nopLogger{}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations/abc/cancel", nil)
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", cancelAllocationUC.ErrAllocationNotFound, http.StatusNotFound},
		{"not owner", cancelAllocationUC.ErrNotOwner, http.StatusForbidden},
		{"not cancellable", cancelAllocationUC.ErrNotCancellable, http.StatusConflict},
		{"internal", cancelAllocationUC.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations/7/cancel", nil)
			req.Header.Set("X-User-ID", "42")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
