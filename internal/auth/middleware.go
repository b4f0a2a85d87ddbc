package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity returns a context carrying the verified identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the identity the gate attached. Handlers mounted
// behind RequireAuth can rely on ok being true.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

const bearerPrefix = "Bearer "

// RequireAuth returns the request gate mounted ahead of every protected
// route group. It rejects before the downstream handler runs, so a denied
// request produces zero handler side effects. Every verification failure
// collapses into one flat 401; the underlying cause is only logged.
func RequireAuth(svc *Service, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				reject(w, "No token, authorization denied")
				return
			}
			if !strings.HasPrefix(header, bearerPrefix) {
				reject(w, "Token is not valid")
				return
			}
			identity, err := svc.Verify(r.Context(), header[len(bearerPrefix):])
			if err != nil {
				logger.Debugw("token rejected", "path", r.URL.Path, "err", err)
				reject(w, "Token is not valid")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func reject(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
