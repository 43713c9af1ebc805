package legalassistant

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	adminusers "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/admin/users"
	"github.com/magabrotheeeer/legal-assistant/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/legal-assistant/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/legal-assistant/internal/http/handlers/auth/register"
	casescreate "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/cases/create"
	caseslist "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/cases/list"
	casesread "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/cases/read"
	casesremove "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/cases/remove"
	casesupdate "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/cases/update"
	chatcreate "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/chat/create"
	chatlist "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/chat/list"
	chatmessages "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/chat/messages"
	chatsend "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/chat/send"
	docsdownload "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/documents/download"
	docslist "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/documents/list"
	docsremove "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/documents/remove"
	docsupload "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/documents/upload"
	"github.com/magabrotheeeer/legal-assistant/internal/http/handlers/health"
	journalcreate "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/journal/create"
	journallist "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/journal/list"
	journalread "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/journal/read"
	journalremove "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/journal/remove"
	resourceslist "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/resources/list"
	riskassess "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/risk/assess"
	riskhistory "github.com/magabrotheeeer/legal-assistant/internal/http/handlers/risk/history"
	"github.com/magabrotheeeer/legal-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/legal-assistant/internal/http/mware"

	"github.com/magabrotheeeer/legal-assistant/internal/config"
	jwtlib "github.com/magabrotheeeer/legal-assistant/internal/lib/jwt"
	"github.com/magabrotheeeer/legal-assistant/internal/models"
	"github.com/magabrotheeeer/legal-assistant/internal/ratelimit"
	authservice "github.com/magabrotheeeer/legal-assistant/internal/services/auth"
	casesservice "github.com/magabrotheeeer/legal-assistant/internal/services/cases"
	chatservice "github.com/magabrotheeeer/legal-assistant/internal/services/chat"
	documentsservice "github.com/magabrotheeeer/legal-assistant/internal/services/documents"
	journalservice "github.com/magabrotheeeer/legal-assistant/internal/services/journal"
	resourcesservice "github.com/magabrotheeeer/legal-assistant/internal/services/resources"
	riskservice "github.com/magabrotheeeer/legal-assistant/internal/services/risk"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

// Deps — собранные зависимости маршрутов.
type Deps struct {
	Config    *config.Config
	Storage   *storage.Storage
	Maker     jwtlib.Maker
	LimitStor ratelimit.Store
	Auth      *authservice.Service
	Cases     *casesservice.Service
	Documents *documentsservice.Service
	Journal   *journalservice.Service
	Chat      *chatservice.Service
	Risk      *riskservice.Engine
	Resources *resourcesservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		mware.Metrics,
	)

	production := deps.Config.IsProduction()
	publicLimiter := rate.NewLimiter(5, 10)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.PublicRateLimit(publicLimiter, logger))
			r.Post("/register", register.New(logger, deps.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, deps.Auth).ServeHTTP)
		})

		// Справочник доступен и без токена, но при его наличии
		// ответ дополняется данными принципала.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalAuthenticate(deps.Maker, deps.Storage, logger))
			r.Get("/resources", resourceslist.New(logger, deps.Resources).ServeHTTP)
		})

		// Группа с JWT аутентификацией и общим лимитом запросов
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Authenticate(deps.Maker, deps.Storage, logger, production))
			r.Use(middlewarectx.Require(logger,
				middlewarectx.RateLimit(deps.LimitStor, deps.Config.RateLimit.MaxRequests, deps.Config.RateLimit.Window),
			))

			r.Get("/me", me.New(logger).ServeHTTP)

			r.Post("/cases", casescreate.New(logger, deps.Cases).ServeHTTP)
			r.Get("/cases", caseslist.New(logger, deps.Cases).ServeHTTP)
			r.Get("/cases/{id}", casesread.New(logger, deps.Cases).ServeHTTP)
			r.With(middlewarectx.Require(logger,
				middlewarectx.Ownership("", middlewarectx.BodyResource()),
			)).Put("/cases/{id}", casesupdate.New(logger, deps.Cases).ServeHTTP)
			r.Delete("/cases/{id}", casesremove.New(logger, deps.Cases).ServeHTTP)

			r.Post("/journal", journalcreate.New(logger, deps.Journal).ServeHTTP)
			r.Get("/journal", journallist.New(logger, deps.Journal).ServeHTTP)
			r.Get("/journal/{id}", journalread.New(logger, deps.Journal).ServeHTTP)
			r.Delete("/journal/{id}", journalremove.New(logger, deps.Journal).ServeHTTP)

			r.Post("/conversations", chatcreate.New(logger, deps.Chat).ServeHTTP)
			r.Get("/conversations", chatlist.New(logger, deps.Chat).ServeHTTP)
			r.Get("/conversations/{id}/messages", chatmessages.New(logger, deps.Chat).ServeHTTP)
			r.Post("/conversations/{id}/messages", chatsend.New(logger, deps.Chat).ServeHTTP)

			r.Post("/risk/assess", riskassess.New(logger, deps.Risk, deps.Storage, deps.Storage).ServeHTTP)
			r.Get("/cases/{id}/risk", riskhistory.New(logger, deps.Storage).ServeHTTP)

			// Работа с документами доступна с тарифа premium.
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.Require(logger,
					middlewarectx.RequirePlan(models.PlanPremium),
				))
				r.Post("/documents", docsupload.New(logger, deps.Documents).ServeHTTP)
				r.Get("/documents", docslist.New(logger, deps.Documents).ServeHTTP)
				r.Get("/documents/{id}/download", docsdownload.New(logger, deps.Documents).ServeHTTP)
				r.Delete("/documents/{id}", docsremove.New(logger, deps.Documents).ServeHTTP)
			})

			// Администрирование
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.Require(logger, middlewarectx.AdminOnly()))
				r.Get("/admin/users", adminusers.New(logger, deps.Storage).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, deps.Storage).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
