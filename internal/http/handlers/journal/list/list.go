package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/legal-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

type Lister interface {
	List(ctx context.Context, f models.JournalFilter) ([]*models.JournalEntry, error)
}

// New возвращает обработчик списка записей журнала.
func New(log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.journal.list.New"

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

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		f := models.JournalFilter{
			UserUID: principal.UID,
			Search:  r.URL.Query().Get("search"),
			Limit:   limit,
			Offset:  offset,
		}

		result, err := lister.List(r.Context(), f)
		if err != nil {
			log.Error("failed to list journal entries", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to list journal entries"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"count":   len(result),
			"entries": result,
		}))
	}
}
