package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/legal-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
)

// New возвращает обработчик профиля текущего пользователя.
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.me.New"

		principal, ok := middlewarectx.PrincipalFromContext(r.Context())
		if !ok {
			log.Error("principal missing", slog.String("op", op))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Err(response.CodeTokenRequired, "authorization token required"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"uid":    principal.UID,
			"role":   principal.Role,
			"plan":   principal.Plan,
			"active": principal.Active,
		}))
	}
}
