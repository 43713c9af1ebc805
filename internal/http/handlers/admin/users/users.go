package users

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

type Lister interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// New возвращает обработчик списка пользователей. Маршрут закрыт
// административным гейтом, поэтому проверка роли здесь не дублируется.
func New(log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.users.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 || limit > 200 {
			limit = 50
		}
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if offset < 0 {
			offset = 0
		}

		result, err := lister.ListUsers(r.Context(), limit, offset)
		if err != nil {
			log.Error("failed to list users", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to list users"))
			return
		}

		// Пароли наружу не отдаются.
		principals := make([]*models.Principal, 0, len(result))
		for _, u := range result {
			principals = append(principals, models.NewPrincipal(u))
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"count": len(principals),
			"users": principals,
		}))
	}
}
