package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/legal-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/legal-assistant/internal/services/resources"
)

type Lister interface {
	List(ctx context.Context, category string) ([]resources.Resource, error)
}

// New возвращает обработчик справочника юридических ресурсов.
// Маршрут публичный: аутентификация необязательна, но при наличии
// токена в ответ добавляется тариф пользователя.
func New(log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.resources.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		category := r.URL.Query().Get("category")

		result, err := lister.List(r.Context(), category)
		if err != nil {
			log.Error("failed to list resources", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to list resources"))
			return
		}

		data := map[string]any{
			"count":     len(result),
			"resources": result,
		}
		if principal, ok := middlewarectx.PrincipalFromContext(r.Context()); ok {
			data["plan"] = principal.Plan
		}

		render.JSON(w, r, response.StatusOKWithData(data))
	}
}
