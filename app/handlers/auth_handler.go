package handlers

import (
	"net/http"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/Rakhulsr/asili-market/app/schema"
	"github.com/Rakhulsr/asili-market/app/utils/sessions"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	render       *render.Render
	validator    *schema.Validator
	userRepo     repositories.UserRepositoryImpl
	sessionStore sessions.SessionStore
}

func NewAuthHandler(
	render *render.Render,
	validator *schema.Validator,
	userRepo repositories.UserRepositoryImpl,
	sessionStore sessions.SessionStore,
) *AuthHandler {
	return &AuthHandler{
		render:       render,
		validator:    validator,
		userRepo:     userRepo,
		sessionStore: sessionStore,
	}
}

// Login only opens sessions for admins; the storefront itself needs none.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	var req schema.LoginRequest
	if err := helpers.DecodeJSONBody(w, r, &req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		fields, _ := err.(schema.FieldErrors)
		helpers.RespondValidation(h.render, w, "Username and password are required", fields)
		return
	}

	user, err := h.userRepo.FindByUsername(r.Context(), req.Username)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "Login: failed to load user")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		log.Info().Str("username", req.Username).Msg("Login: invalid credentials")
		helpers.RespondError(h.render, w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsAdmin {
		log.Warn().Str("username", user.Username).Msg("Login: non-admin login refused")
		helpers.RespondError(h.render, w, http.StatusForbidden, "Admin access required")
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		helpers.RespondInternal(h.render, w, r, err, "Login: failed to save session")
		return
	}

	log.Info().Uint("user_id", user.ID).Msg("Login: admin signed in")
	h.render.JSON(w, http.StatusOK, user.Profile())
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := h.sessionStore.GetUserID(r)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "Me: failed to load session")
		return
	}
	if userID == 0 {
		helpers.RespondError(h.render, w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "Me: failed to load user")
		return
	}
	if user == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "User not found")
		return
	}
	h.render.JSON(w, http.StatusOK, user.Profile())
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		helpers.RespondInternal(h.render, w, r, err, "Logout: failed to clear session")
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
