package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
)

// PublicRateLimit возвращает общий лимит для неаутентифицированных
// маршрутов (регистрация, вход). Это грубая защита от перебора,
// отдельная от пользовательского скользящего лимита.
func PublicRateLimit(limiter *rate.Limiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Warn("too many requests on public endpoint")
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Err(response.CodeRateLimitExceeded, "too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
