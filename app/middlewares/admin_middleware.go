package middlewares

import (
	"net/http"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/Rakhulsr/asili-market/app/utils/sessions"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

// AdminAuthMiddleware lets a request through only when its session belongs
// to an admin. No session or an unknown user is 401, a non-admin is 403.
func AdminAuthMiddleware(rdr *render.Render, sessionStore sessions.SessionStore, userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := zerolog.Ctx(r.Context())

			userID, err := sessionStore.GetUserID(r)
			if err != nil {
				log.Error().Err(err).Msg("AdminAuthMiddleware: failed to load session")
				rdr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
				return
			}
			if userID == 0 {
				rdr.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				log.Error().Err(err).Uint("user_id", userID).Msg("AdminAuthMiddleware: failed to load user")
				rdr.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
				return
			}
			if user == nil {
				rdr.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
				return
			}

			if !user.IsAdmin {
				log.Warn().Uint("user_id", user.ID).Str("username", user.Username).Msg("AdminAuthMiddleware: non-admin attempted admin route")
				rdr.JSON(w, http.StatusForbidden, map[string]string{"error": "Admin access required"})
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithUser(r.Context(), user)))
		})
	}
}
