// Package health реализует обработчик проверки живости сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

// New возвращает обработчик, проверяющий готовность базы данных.
func New(log *slog.Logger, db *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.health.New"

		if err := storage.CheckDatabaseReady(db); err != nil {
			log.Error("database not ready", slog.String("op", op), slog.Any("err", err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Err(response.CodeInternalError, "database not ready"))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"status": "healthy",
		}))
	}
}
