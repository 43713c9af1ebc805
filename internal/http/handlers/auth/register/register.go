package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/sl"
)

// Request описывает тело запроса регистрации.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type Registrar interface {
	Register(ctx context.Context, email, username, rawPassword string) (string, error)
}

// New возвращает обработчик регистрации пользователя.
func New(log *slog.Logger, registrar Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.register.New"

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

		uid, err := registrar.Register(r.Context(), req.Email, req.Username, req.Password)
		if err != nil {
			log.Error("failed to register user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to register user"))
			return
		}
		log.Info("registered new user", slog.String("uid", uid))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"uid": uid,
		}))
	}
}
