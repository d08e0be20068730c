package core

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	UserIDHeader                 = "X-User-Id"
	SessionContextKey contextKey = "session"
)

type ContextSession struct {
	UserID uuid.UUID
}

// RequestUserMiddleware resolves the calling user from the request. Identity
// and session management live outside this service, so the upstream gateway
// is trusted to put the authenticated user id on the request.
func RequestUserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.Header.Get(UserIDHeader))
		if err != nil {
			WriteUnauthorized(w, r, nil)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, ContextSession{UserID: userID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func Session(ctx context.Context) ContextSession {
	session, ok := ctx.Value(SessionContextKey).(ContextSession)
	if !ok {
		return ContextSession{}
	}

	return session
}
