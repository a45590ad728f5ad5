package console

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "github.com/magabrotheeeer/pandda-console/docs"
	"github.com/magabrotheeeer/pandda-console/internal/console/views"
	"github.com/magabrotheeeer/pandda-console/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/pandda-console/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/pandda-console/internal/http/handlers/auth/session"
	"github.com/magabrotheeeer/pandda-console/internal/http/handlers/entity"
	"github.com/magabrotheeeer/pandda-console/internal/http/handlers/health"
	"github.com/magabrotheeeer/pandda-console/internal/http/handlers/subscription/renew"
	"github.com/magabrotheeeer/pandda-console/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pandda-console/internal/models"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, limiter *rate.Limiter) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))

		// Открытые конечные точки
		r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Post("/logout", logout.New(logger, svc.Auth).ServeHTTP)
		r.Get("/session", session.New(svc.Auth).ServeHTTP)
		r.Get("/health", health.New().ServeHTTP)

		// Группа с проверкой токена сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(svc.Auth, logger))

			mount(r, logger, "/clients", models.KindClient, entity.New[models.Client, models.ClientInput, models.ClientPatch](logger, models.KindClient, svc.Clients))
			mount(r, logger, "/plans", models.KindPlan, entity.New[models.Plan, models.PlanInput, models.PlanPatch](logger, models.KindPlan, svc.Plans))
			mount(r, logger, "/apps", models.KindApp, entity.New[models.App, models.AppInput, models.AppPatch](logger, models.KindApp, svc.Apps))
			mount(r, logger, "/servers", models.KindServer, entity.New[models.Server, models.ServerInput, models.ServerPatch](logger, models.KindServer, svc.Servers))
			mount(r, logger, "/subscriptions", models.KindSubscription, entity.New[models.Subscription, models.SubscriptionInput, models.SubscriptionPatch](logger, models.KindSubscription, svc.Subscriptions))
			mount(r, logger, "/users", models.KindUser, entity.New[models.User, models.UserInput, models.UserPatch](logger, models.KindUser, svc.Users))

			r.With(middlewarectx.RequireEdit(models.KindSubscription, logger)).
				Post("/subscriptions/{id}/renew", renew.New(logger, svc.Subscriptions).ServeHTTP)
		})
	})

	r.Route(views.BasePath, func(r chi.Router) {
		h := svc.Console
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/forms/{kind}", h.Form)
		r.Post("/forms/{kind}", h.Submit)
		r.Post("/delete/{kind}/{id}", h.Delete)
		r.Get("/", h.Page)
		r.Get("/*", h.Page)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

func mount[T, In, P any](r chi.Router, logger *slog.Logger, path, kind string, h *entity.Handler[T, In, P]) {
	edit := middlewarectx.RequireEdit(kind, logger)
	del := middlewarectx.RequireDelete(kind, logger)

	r.Get(path, h.List)
	r.Get(path+"/{id}", h.Get)
	r.With(edit).Post(path, h.Create)
	r.With(edit).Patch(path+"/{id}", h.Update)
	r.With(del).Delete(path+"/{id}", h.Delete)
}
