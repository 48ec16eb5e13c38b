package soma

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/franchu01/soma/internal/config"
	"github.com/franchu01/soma/internal/http/handlers/auth/login"
	deactivationcreate "github.com/franchu01/soma/internal/http/handlers/deactivation/create"
	deactivationlist "github.com/franchu01/soma/internal/http/handlers/deactivation/list"
	deactivationremove "github.com/franchu01/soma/internal/http/handlers/deactivation/remove"
	"github.com/franchu01/soma/internal/http/handlers/export"
	"github.com/franchu01/soma/internal/http/handlers/health"
	membercreate "github.com/franchu01/soma/internal/http/handlers/member/create"
	memberlist "github.com/franchu01/soma/internal/http/handlers/member/list"
	memberremove "github.com/franchu01/soma/internal/http/handlers/member/remove"
	memberstatus "github.com/franchu01/soma/internal/http/handlers/member/status"
	memberupdate "github.com/franchu01/soma/internal/http/handlers/member/update"
	"github.com/franchu01/soma/internal/http/handlers/payment/paymentcreate"
	"github.com/franchu01/soma/internal/http/handlers/payment/paymentlist"
	"github.com/franchu01/soma/internal/http/handlers/stats/series"
	"github.com/franchu01/soma/internal/http/handlers/stats/summary"
	"github.com/franchu01/soma/internal/http/middlewarectx"
	"github.com/franchu01/soma/internal/lib/jwt"
	deactivationservice "github.com/franchu01/soma/internal/services/deactivation"
	memberservice "github.com/franchu01/soma/internal/services/member"
	paymentservice "github.com/franchu01/soma/internal/services/payment"
	statsservice "github.com/franchu01/soma/internal/services/stats"
	"github.com/franchu01/soma/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, jwtMaker jwt.Maker,
	db *repository.Storage,
	memberSvc *memberservice.Service,
	paymentSvc *paymentservice.Service,
	deactivationSvc *deactivationservice.Service,
	statsSvc *statsservice.Service) {
	// Глобальные middleware. URLFormat здесь нельзя: он отрезает
	// суффикс после точки и ломает email в {email}-маршрутах.
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, cfg.Admin, jwtMaker).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/members", membercreate.New(logger, memberSvc).ServeHTTP)
			r.Get("/members", memberlist.New(logger, memberSvc).ServeHTTP)
			r.Get("/members/status", memberstatus.New(logger, statsSvc).ServeHTTP)
			r.Put("/members/{email}", memberupdate.New(logger, memberSvc).ServeHTTP)
			r.Delete("/members/{email}", memberremove.New(logger, memberSvc).ServeHTTP)

			r.Post("/payments", paymentcreate.New(logger, paymentSvc).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, paymentSvc).ServeHTTP)

			r.Post("/deactivations", deactivationcreate.New(logger, deactivationSvc).ServeHTTP)
			r.Get("/deactivations", deactivationlist.New(logger, deactivationSvc).ServeHTTP)
			r.Delete("/deactivations/{email}", deactivationremove.New(logger, deactivationSvc).ServeHTTP)

			r.Get("/stats/summary", summary.New(logger, statsSvc).ServeHTTP)
			r.Get("/stats/series", series.New(logger, statsSvc).ServeHTTP)

			r.Get("/export/{entity}", export.New(logger, db).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
