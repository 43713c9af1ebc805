package middlewarectx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/legal-assistant/internal/models"
	"github.com/magabrotheeeer/legal-assistant/internal/ratelimit"
)

// Guard — одна проверка авторизации: либо пропускает запрос,
// либо возвращает ошибку с кодом и статусом. Гварды независимы,
// их порядок задаёт маршрут; все они требуют пройденной аутентификации.
type Guard func(r *http.Request, p *models.Principal) *response.APIError

// Require собирает цепочку гвардов в chi middleware. Без Principal
// в контексте запрос отклоняется как неаутентифицированный.
func Require(log *slog.Logger, guards ...Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Err(response.CodeTokenRequired, "authorization token required"))
				return
			}
			for _, guard := range guards {
				if apiErr := guard(r, principal); apiErr != nil {
					log.Warn("request rejected by guard", sl.Code(apiErr.Code),
						slog.String("user_uid", principal.UID))
					render.Status(r, apiErr.HTTPStatus())
					render.JSON(w, r, apiErr)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ResourceLoader достаёт проверяемый ресурс для гварда владения.
// nil означает, что ресурс недоступен.
type ResourceLoader func(r *http.Request) map[string]any

// BodyResource читает ресурс из JSON-тела запроса, восстанавливая тело
// для последующего обработчика.
func BodyResource() ResourceLoader {
	return func(r *http.Request) map[string]any {
		if r.Body == nil {
			return nil
		}
		raw, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(raw))
		if err != nil {
			return nil
		}

		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var resource map[string]any
		if err := dec.Decode(&resource); err != nil {
			return nil
		}
		return resource
	}
}

// Ownership возвращает гвард, сравнивающий поле ресурса (по умолчанию
// user_uid) с идентификатором принципала. Сравнение выполняется после
// приведения обоих значений к строке, поскольку идентификаторы могут
// приходить в разных представлениях.
//
// Отсутствие ресурса — RESOURCE_NOT_FOUND; несовпадение присутствующих
// идентификаторов — ACCESS_DENIED; отсутствие поля пропускает запрос.
func Ownership(field string, load ResourceLoader) Guard {
	if field == "" {
		field = "user_uid"
	}
	return func(r *http.Request, p *models.Principal) *response.APIError {
		resource := load(r)
		if resource == nil {
			return response.Err(response.CodeResourceNotFound, "resource not found")
		}
		value, ok := resource[field]
		if !ok {
			return nil
		}
		if normalizeID(value) != p.UID {
			return response.Err(response.CodeAccessDenied, "access denied")
		}
		return nil
	}
}

// normalizeID приводит идентификатор к каноничной строке. json.Number
// и числа сводятся к десятичной записи без экспоненты, чтобы 42 и "42"
// считались одним идентификатором.
func normalizeID(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case json.Number:
		return value.String()
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}

// RequirePlan возвращает гвард, требующий план не ниже указанного.
// План принципала сравнивается по рангу; точное совпадение проходит.
func RequirePlan(required models.Plan) Guard {
	return func(_ *http.Request, p *models.Principal) *response.APIError {
		if p.Plan.AtLeast(required) {
			return nil
		}
		apiErr := response.Err(response.CodeSubscriptionRequired,
			fmt.Sprintf("subscription plan %s or higher required", required))
		apiErr.RequiredLevel = string(required)
		apiErr.CurrentLevel = string(p.Plan)
		return apiErr
	}
}

// AdminOnly возвращает гвард, пропускающий только роль admin.
func AdminOnly() Guard {
	return func(_ *http.Request, p *models.Principal) *response.APIError {
		if !p.IsAdmin() {
			return response.Err(response.CodeAdminRequired, "admin role required")
		}
		return nil
	}
}

// RateLimit возвращает гвард скользящего лимита запросов на пользователя.
// При отказе в ответ попадает retryAfter — секунды до выхода самой
// старой записи окна за его границу, а не фиксированная пауза.
func RateLimit(store ratelimit.Store, max int, window time.Duration) Guard {
	if max <= 0 {
		max = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return func(r *http.Request, p *models.Principal) *response.APIError {
		decision, err := store.Take(r.Context(), p.UID, time.Now(), max, window)
		if err != nil {
			return response.Err(response.CodeInternalError, "rate limit check failed")
		}
		if !decision.Allowed {
			apiErr := response.Err(response.CodeRateLimitExceeded, "too many requests")
			apiErr.RetryAfter = int(decision.RetryAfter / time.Second)
			return apiErr
		}
		return nil
	}
}
