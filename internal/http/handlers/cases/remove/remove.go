package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/legal-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/sl"
)

type Remover interface {
	Remove(ctx context.Context, id int, userUID string) (int, error)
}

// New возвращает обработчик удаления дела.
func New(log *slog.Logger, remover Remover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cases.remove.New"

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

		count, err := remover.Remove(r.Context(), id, principal.UID)
		if err != nil {
			log.Error("failed to remove case", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to remove case"))
			return
		}
		if count == 0 {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Err(response.CodeNotFound, "case not found"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"removed": count,
		}))
	}
}
