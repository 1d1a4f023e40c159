package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/raushankrgupta/shoplungu/session"
	"github.com/raushankrgupta/shoplungu/utils"
	"go.uber.org/zap"
)

// TokenHeader carries the session token on every response
const TokenHeader = "X-Session-Token"

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession resolves the bearer token into a session. A missing or invalid
// token starts a new session; either way the token in use is sent back.
func (h *Handler) WithSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)

		var sess *session.Session
		var err error
		if token != "" {
			sess, err = h.Sessions.Resolve(r.Context(), token)
			if err != nil {
				h.Logger.Debug("Discarding session token", zap.Error(err))
			}
		}
		if sess == nil {
			sess, token, err = h.Sessions.Issue(r.Context())
			if err != nil {
				h.Logger.Error("Failed to start session", zap.Error(err))
				utils.RespondError(w, nil, "Failed to start session", http.StatusInternalServerError)
				return
			}
		}

		w.Header().Set(TokenHeader, token)
		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next(w, r.WithContext(ctx))
	}
}

// WithOptionalSession attaches the session named by a valid bearer token and
// echoes the token. Without one the request goes through anonymously and no
// session is started.
func (h *Handler) WithOptionalSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next(w, r)
			return
		}
		sess, err := h.Sessions.Resolve(r.Context(), token)
		if err != nil {
			h.Logger.Debug("Ignoring session token", zap.Error(err))
			next(w, r)
			return
		}
		w.Header().Set(TokenHeader, token)
		next(w, r.WithContext(context.WithValue(r.Context(), sessionContextKey, sess)))
	}
}

// GetSessionFromContext returns the session attached by WithSession
func GetSessionFromContext(ctx context.Context) (*session.Session, error) {
	sess, ok := ctx.Value(sessionContextKey).(*session.Session)
	if !ok || sess == nil {
		return nil, errors.New("session not found in context")
	}
	return sess, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
