package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/legal-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/sl"
)

// maxUploadBytes ограничивает размер одного загружаемого файла.
const maxUploadBytes = 32 << 20

type Uploader interface {
	Upload(ctx context.Context, userUID, fileName, contentType string, size int64, caseID *int, r io.Reader) (int, error)
}

// New возвращает обработчик загрузки документа из multipart-формы.
func New(log *slog.Logger, uploader Uploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.documents.upload.New"

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

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			log.Error("failed to parse multipart form", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Err(response.CodeValidationError, "failed to parse multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			log.Error("missing file field", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Err(response.CodeValidationError, "file field is required"))
			return
		}
		defer func() { _ = file.Close() }()

		var caseID *int
		if raw := r.FormValue("case_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Err(response.CodeValidationError, "case_id must be an integer"))
				return
			}
			caseID = &id
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		id, err := uploader.Upload(r.Context(), principal.UID, header.Filename, contentType, header.Size, caseID, file)
		if err != nil {
			log.Error("failed to upload document", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Err(response.CodeInternalError, "failed to upload document"))
			return
		}

		log.Info("document uploaded", slog.Int("id", id))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"id": id,
		}))
	}
}
