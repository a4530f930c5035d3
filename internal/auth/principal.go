package auth

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey struct{}

// HeaderUserID carries the principal verified by the upstream auth
// layer. Token verification itself happens before requests reach this
// service.
const HeaderUserID = "X-User-ID"

// Middleware lifts the verified principal from the request header into
// the context. Routes that require an owner check for its presence via
// ActorFrom; public routes ignore it.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get(HeaderUserID); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
				r = r.WithContext(context.WithValue(r.Context(), contextKey{}, id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func ActorFrom(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(contextKey{}).(uint64)
	return id, ok
}

// WithActor is used by tests to simulate an authenticated request.
func WithActor(ctx context.Context, userID uint64) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}
