package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/legal-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/sl"
)

// Request содержит данные для создания диалога.
type Request struct {
	Title string `json:"title" validate:"max=200"`
}

type Starter interface {
	StartConversation(ctx context.Context, userUID, title string) (int, error)
}

// New возвращает обработчик создания диалога с помощником.
func New(log *slog.Logger, starter Starter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.chat.create.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		principal, ok := middlewarectx.PrincipalFromContext(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Err(response.CodeTokenRequired, "authorization token required"))
			return
		}

		var req Request
		if r.ContentLength > 0 {
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
		}

		id, err := starter.StartConversation(r.Context(), principal.UID, req.Title)
		if err != nil {
			log.Error("failed to create conversation", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to create conversation"))
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"id": id,
		}))
	}
}
