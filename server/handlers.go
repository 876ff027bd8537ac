package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/quickqueue/member-auth/auth"
	"github.com/quickqueue/member-auth/members"
	"github.com/quickqueue/member-auth/token"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"

	// Token placement matches the historic client contract: both tokens
	// are delivered and presented via headers with a Bearer scheme.
	headerAccessToken  = "ACCESS-TOKEN"
	headerRefreshToken = "REFRESH-TOKEN"
	bearerScheme       = "Bearer "
)

type messageResponse struct {
	Message string `json:"message"`
}

type signupRequest struct {
	Email       string         `json:"email"`
	Password    string         `json:"password"`
	Name        string         `json:"name"`
	Gender      members.Gender `json:"gender"`
	Birth       time.Time      `json:"birth"`
	PhoneNumber string         `json:"phone_number"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupHandler registers a new member. No tokens are issued at signup.
func (s *Server) SignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := s.auth.Signup(auth.SignupRequest{
			Email:       req.Email,
			Password:    req.Password,
			Name:        req.Name,
			Gender:      req.Gender,
			Birth:       req.Birth,
			PhoneNumber: req.PhoneNumber,
		})
		if err != nil {
			s.writeAuthError(w, err)
			return
		}

		writeMessage(w, http.StatusOK, "signup success")
	}
}

// LoginHandler authenticates credentials and returns the minted token
// pair in the ACCESS-TOKEN and REFRESH-TOKEN response headers.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		pair, err := s.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeAuthError(w, err)
			return
		}

		w.Header().Set(headerAccessToken, bearerScheme+pair.AccessToken)
		w.Header().Set(headerRefreshToken, bearerScheme+pair.RefreshToken)
		writeMessage(w, http.StatusOK, "login success")
	}
}

// LogoutHandler blacklists the presented access token for its remaining
// lifetime and clears the stored refresh token.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := memberEmailFromContext(r.Context())
		rawToken := r.Header.Get(headerAccessToken)

		if err := s.auth.Logout(r.Context(), email, rawToken); err != nil {
			s.writeAuthError(w, err)
			return
		}

		writeMessage(w, http.StatusOK, "logout success")
	}
}

// WithdrawHandler soft-deletes the authenticated member's account.
func (s *Server) WithdrawHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := memberEmailFromContext(r.Context())

		if err := s.auth.Withdraw(r.Context(), email); err != nil {
			s.writeAuthError(w, err)
			return
		}

		writeMessage(w, http.StatusOK, "withdrawal success")
	}
}

// writeAuthError maps the service error taxonomy onto HTTP statuses. The
// error text doubles as the client message; it never contains passwords
// or hashes.
func (s *Server) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrDuplicateEmail), errors.Is(err, auth.ErrWithdrawnEmail):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrTokenInvalidated),
		errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, token.ErrExpiredToken):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrAccountNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("authentication operation failed")
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(messageResponse{Message: message})
}
