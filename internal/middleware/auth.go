package middleware

import (
	"context"
	"net/http"

	"github.com/and161185/ventas/internal/session"
)

type SessionReader interface {
	Snapshot() session.Snapshot
}

type contextKey string

const SessionContextKey contextKey = "session"

// RequireSession rejects requests while nobody is logged in and puts the
// current snapshot into the request context.
func RequireSession(store SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := store.Snapshot()
			if !snap.LoggedIn() {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, snap)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap, ok := SnapshotFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !snap.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func SnapshotFrom(ctx context.Context) (session.Snapshot, bool) {
	snap, ok := ctx.Value(SessionContextKey).(session.Snapshot)
	return snap, ok
}
