package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/services"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      *services.AuthService
}

func newAuthHandler(auth *services.AuthService) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      auth,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signIn exchanges credentials for a session token
func (h authHandler) signIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		token, user, err := h.auth.SignIn(req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		isAdmin, err := h.auth.IsAdmin(user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"token":    token,
			"user":     user,
			"is_admin": isAdmin,
		})
	}
}

// signUp creates an account and self-promotes it onto the allow-list
func (h authHandler) signUp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		token, user, err := h.auth.SignUp(req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]any{
			"token":    token,
			"user":     user,
			"is_admin": true,
		})
	}
}

// promote elevates the bearer identity to admin. Promoting an identity
// that is already an admin is a no-op success; a storage failure is
// reported distinctly so the caller can render an actionable message.
func (h authHandler) promote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing session token"))
			return
		}

		userID, err := h.auth.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		created, err := h.auth.Promote(userID, req.Email)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message := "already admin"
		if created {
			message = "promoted to admin"
		}
		h.responder.WriteJSON(w, map[string]any{
			"status":  "success",
			"created": created,
			"message": message,
		})
	}
}
