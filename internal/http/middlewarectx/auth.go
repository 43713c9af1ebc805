// Package middlewarectx содержит HTTP middleware проверки подлинности
// и цепочку guard-проверок авторизации.
//
// Authenticate проверяет JWT в заголовке Authorization, разрешает его
// в активного пользователя и кладёт Principal в контекст запроса.
// Гварды (владение, подписка, роль admin, лимит запросов) выполняются
// после аутентификации и до бизнес-обработчика.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	jwtlib "github.com/magabrotheeeer/legal-assistant/internal/lib/jwt"
	"github.com/magabrotheeeer/legal-assistant/internal/http/response"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/legal-assistant/internal/models"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// PrincipalKey — ключ для Principal в контексте запроса.
const PrincipalKey Key = "principal"

// UserProvider описывает контракт поиска пользователя по UID.
// Возвращаемая запись не должна нести секретных полей дальше middleware:
// в Principal попадают только uid, роль, план и признак активности.
type UserProvider interface {
	FindByUID(ctx context.Context, userUID string) (*models.User, error)
}

// PrincipalFromContext возвращает Principal текущего запроса, если
// аутентификация была пройдена.
func PrincipalFromContext(ctx context.Context) (*models.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(*models.Principal)
	return p, ok
}

// Authenticate возвращает middleware, которое проверяет JWT в заголовке
// Authorization и разрешает его в Principal.
//
// Ошибки различаются кодами: отсутствие токена — TOKEN_REQUIRED,
// истёкший токен — TOKEN_EXPIRED, дефектный токен, неизвестный или
// неактивный пользователь — INVALID_TOKEN, сбой хранилища —
// TOKEN_VERIFICATION_FAILED.
func Authenticate(maker jwtlib.Maker, users UserProvider, log *slog.Logger, production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticate"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			principal, apiErr := resolvePrincipal(r, maker, users, production)
			if apiErr != nil {
				log.Error("authentication failed", sl.Code(apiErr.Code))
				render.Status(r, apiErr.HTTPStatus())
				render.JSON(w, r, apiErr)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthenticate выполняет ту же проверку, но любая неудача
// проглатывается: запрос продолжается без Principal. Используется для
// маршрутов, доступных анонимно, но персонализирующих ответ.
func OptionalAuthenticate(maker jwtlib.Maker, users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.OptionalAuthenticate"

			principal, apiErr := resolvePrincipal(r, maker, users, true)
			if apiErr != nil {
				log.Debug("anonymous request",
					slog.String("op", op),
					sl.Code(apiErr.Code))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolvePrincipal — общая логика проверки токена и разрешения пользователя.
func resolvePrincipal(r *http.Request, maker jwtlib.Maker, users UserProvider, production bool) (*models.Principal, *response.APIError) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, response.Err(response.CodeTokenRequired, "authorization token required")
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := maker.ParseToken(tokenStr)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, response.Err(response.CodeTokenExpired, "token has expired")
		}
		return nil, response.Err(response.CodeInvalidToken, "invalid token")
	}

	user, err := users.FindByUID(r.Context(), claims.UserUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, response.Err(response.CodeInvalidToken, "invalid token")
		}
		apiErr := response.Err(response.CodeTokenVerificationFailed, "token verification failed")
		if !production {
			apiErr.Message = err.Error()
		}
		return nil, apiErr
	}
	if !user.Active {
		return nil, response.Err(response.CodeInvalidToken, "invalid token")
	}

	return models.NewPrincipal(user), nil
}
