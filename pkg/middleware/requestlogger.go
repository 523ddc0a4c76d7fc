package middleware

import (
	"log/slog"
	"net/http"

	"github.com/devconnector/devconnector/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context, enriched with
// whatever identity the request carries by the time it runs: correlation id,
// the authenticated user id, and the active trace/span ids. Handlers retrieve
// it with logger.FromContext.
//
// Mount after RequestLogging (correlation id) and Tracing (span context);
// the token gate runs later, so user_id only appears on routes where the
// gate re-enriches the context.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userID := UserIDFromContext(ctx); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
