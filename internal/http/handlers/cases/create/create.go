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
	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

type Creater interface {
	Create(ctx context.Context, userUID string, req models.DummyCase) (int, error)
}

// New возвращает обработчик создания дела.
func New(log *slog.Logger, creater Creater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cases.create.New"

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

		var req models.DummyCase
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

		id, err := creater.Create(r.Context(), principal.UID, req)
		if err != nil {
			log.Error("failed to create case", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to create case"))
			return
		}
		log.Info("created case", slog.Int("id", id))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"id": id,
		}))
	}
}
