package messages

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

type MessageLister interface {
	Messages(ctx context.Context, conversationID int, userUID string, limit, offset int) ([]*models.Message, error)
}

// New возвращает обработчик истории сообщений диалога.
func New(log *slog.Logger, lister MessageLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.chat.messages.New"

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

		conversationID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("failed to decode id from url", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Err(response.CodeValidationError, "failed to decode id from url"))
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		result, err := lister.Messages(r.Context(), conversationID, principal.UID, limit, offset)
		if errors.Is(err, storage.ErrNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Err(response.CodeNotFound, "conversation not found"))
			return
		}
		if err != nil {
			log.Error("failed to list messages", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to list messages"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"count":    len(result),
			"messages": result,
		}))
	}
}
