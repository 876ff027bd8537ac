package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyMemberEmail stores the authenticated member's email
const ContextKeyMemberEmail ContextKey = "member_email"

// RequireAccessToken validates the presented access token: it must carry
// a valid signature, be unexpired, and not be blacklisted by a previous
// logout. The member's email is placed on the request context.
func (s *Server) RequireAccessToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawToken := r.Header.Get(headerAccessToken)
		if rawToken == "" {
			writeMessage(w, http.StatusUnauthorized, "missing access token")
			return
		}

		email, err := s.auth.Authenticate(r.Context(), rawToken)
		if err != nil {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("access token rejected")
			writeMessage(w, http.StatusUnauthorized, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyMemberEmail, email)
		next(w, r.WithContext(ctx))
	}
}

func memberEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(ContextKeyMemberEmail).(string)
	return email
}
