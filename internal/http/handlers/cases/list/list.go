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
	List(ctx context.Context, f models.CaseFilter) ([]*models.Case, error)
}

// New возвращает обработчик списка дел с фильтрами и пагинацией.
func New(log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cases.list.New"

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
		filter := models.CaseFilter{
			UserUID: principal.UID,
			Status:  r.URL.Query().Get("status"),
			Search:  r.URL.Query().Get("search"),
			Limit:   limit,
			Offset:  offset,
		}

		result, err := lister.List(r.Context(), filter)
		if err != nil {
			log.Error("failed to list cases", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to list cases"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"count": len(result),
			"cases": result,
		}))
	}
}
