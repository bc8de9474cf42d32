package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hiddenspringfield/shop-backend/api/responses"
	"github.com/hiddenspringfield/shop-backend/internal/cart"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

// CartSessionHeader carries the anonymous cart identifier between the storefront and
// the API.
const CartSessionHeader = "X-Cart-Session"

// CartSession resolves the cart session from the request header, minting one when the
// client has none yet. The resolved id is echoed on the response.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := strings.TrimSpace(r.Header.Get(CartSessionHeader))
			if session == "" {
				session = uuid.NewString()
			}
			if err := cart.ValidateSession(session); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			w.Header().Set(CartSessionHeader, session)

			ctx := WithCartSession(r.Context(), session)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, session)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
