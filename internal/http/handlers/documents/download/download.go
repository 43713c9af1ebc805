package download

import (
	"context"
	"errors"
	"fmt"
	"io"
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

type Opener interface {
	Open(ctx context.Context, id int, userUID string) (*models.Document, io.ReadCloser, error)
}

// New возвращает обработчик скачивания содержимого документа.
func New(log *slog.Logger, opener Opener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.documents.download.New"

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

		doc, rc, err := opener.Open(r.Context(), id, principal.UID)
		if errors.Is(err, storage.ErrNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Err(response.CodeNotFound, "document not found"))
			return
		}
		if err != nil {
			log.Error("failed to open document", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to open document"))
			return
		}
		defer func() { _ = rc.Close() }()

		w.Header().Set("Content-Type", doc.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
		if doc.SizeBytes > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(doc.SizeBytes, 10))
		}
		if _, err := io.Copy(w, rc); err != nil {
			log.Error("failed to stream document", sl.Err(err))
		}
	}
}
