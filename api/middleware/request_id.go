package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hiddenspringfield/shop-backend/pkg/logger"
	"github.com/hiddenspringfield/shop-backend/pkg/types"
)

const maxRequestIDLen = 128

// RequestID reuses a caller supplied id when it is short enough, otherwise mints one.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := strings.TrimSpace(r.Header.Get(types.RequestIDHeader))
			if reqID == "" || len(reqID) > maxRequestIDLen {
				reqID = uuid.NewString()
			}

			w.Header().Set(types.RequestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
