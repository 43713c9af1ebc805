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
	List(ctx context.Context, userUID string, caseID *int, limit, offset int) ([]*models.Document, error)
}

// New возвращает обработчик списка документов пользователя.
func New(log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.documents.list.New"

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

		var caseID *int
		if raw := r.URL.Query().Get("case_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Err(response.CodeValidationError, "case_id must be an integer"))
				return
			}
			caseID = &id
		}

		result, err := lister.List(r.Context(), principal.UID, caseID, limit, offset)
		if err != nil {
			log.Error("failed to list documents", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to list documents"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"count":     len(result),
			"documents": result,
		}))
	}
}
