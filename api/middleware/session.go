package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/buildmat/buildmat-backend/pkg/logger"
)

const sessionHeader = "X-Cart-Session"

type contextKey string

const ctxSessionKey contextKey = "cart_session"

// SessionKeyFromContext returns the cart session key injected by CartSession.
func SessionKeyFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionKey).(string); ok {
		return v
	}
	return ""
}

// WithSessionKey injects the cart session key into the context.
func WithSessionKey(ctx context.Context, key string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionKey, key)
}

// CartSession reads the X-Cart-Session header, minting a new key when the
// client has none yet. The key is echoed back so the client can persist it.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(sessionHeader)
			if key == "" {
				key = uuid.NewString()
			}

			w.Header().Set(sessionHeader, key)

			ctx := WithSessionKey(r.Context(), key)
			if logg != nil {
				ctx = logg.WithCartKey(ctx, key)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
