// Package middleware HTTP middleware сервиса
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

type userIDKey struct{}

// Auth проверяет наличие заголовка X-User-ID и кладёт ID пользователя в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			handlers.RespondJSON(w, http.StatusUnauthorized, handlers.ErrorResponse{Error: "missing X-User-ID header"})
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondJSON(w, http.StatusUnauthorized, handlers.ErrorResponse{Error: "invalid X-User-ID header"})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID достаёт ID пользователя из контекста запроса
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}
