package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/legal-assistant/internal/models"
	authservice "github.com/magabrotheeeer/legal-assistant/internal/services/auth"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

// Request описывает тело запроса входа.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Loginer interface {
	Login(ctx context.Context, username, rawPassword string) (string, *models.User, error)
}

// New возвращает обработчик входа пользователя.
func New(log *slog.Logger, loginer Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Err(response.CodeValidationError, "failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		token, user, err := loginer.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, authservice.ErrInvalidCredentials) || errors.Is(err, storage.ErrNotFound) {
				log.Warn("invalid credentials", slog.String("username", req.Username))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Err(response.CodeInvalidToken, "invalid credentials"))
				return
			}
			log.Error("failed to login", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to login"))
			return
		}
		log.Info("user logged in", slog.String("uid", user.UID))

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"token": token,
			"user": map[string]any{
				"uid":      user.UID,
				"username": user.Username,
				"email":    user.Email,
				"role":     user.Role,
				"plan":     user.Plan,
			},
		}))
	}
}
