package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/legal-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/legal-assistant/internal/models"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

type Reader interface {
	Read(ctx context.Context, id int, userUID string) (*models.Case, error)
}

// New возвращает обработчик чтения дела по ID.
func New(log *slog.Logger, reader Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cases.read.New"

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

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("failed to decode id from url", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Err(response.CodeValidationError, "failed to decode id from url"))
			return
		}

		result, err := reader.Read(r.Context(), id, principal.UID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Err(response.CodeNotFound, "case not found"))
				return
			}
			log.Error("failed to read case", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to read case"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(result))
	}
}
