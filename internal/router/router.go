package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"devblog-api/internal/config"
	"devblog-api/internal/handler"
	"devblog-api/internal/middleware"
	"devblog-api/internal/model"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Article      *handler.ArticleHandler
	Comment      *handler.CommentHandler
	Category     *handler.CategoryHandler
	Subscription *handler.SubscriptionHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	requireAuth := authMiddleware.RequireAuth
	requireAuthor := authMiddleware.RequireRole(model.RoleAuthor)
	requireAdmin := authMiddleware.RequireRole(model.RoleAdmin)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.With(requireAuth).Get("/me", h.Auth.Me)
			auth.Post("/forgot-password", h.Auth.ForgotPassword)
			auth.Post("/reset-password/{token}", h.Auth.ResetPassword)
		})

		api.Route("/users", func(users chi.Router) {
			users.With(requireAuth, requireAdmin).Get("/", h.User.List)
			users.Get("/{id}", h.User.Get)
			users.With(requireAuth).Put("/{id}", h.User.UpdateProfile)
			users.With(requireAuth, requireAdmin).Patch("/{id}/role", h.User.SetRole)
			users.With(requireAuth, requireAdmin).Delete("/{id}", h.User.Delete)
		})

		api.Route("/articles", func(articles chi.Router) {
			articles.Get("/", h.Article.List)
			articles.Get("/{id}", h.Article.Get)
			articles.With(requireAuth, requireAuthor).Post("/", h.Article.Create)
			articles.With(requireAuth, requireAuthor).Put("/{id}", h.Article.Update)
			articles.With(requireAuth, requireAuthor).Delete("/{id}", h.Article.Delete)

			articles.Get("/{id}/comments", h.Comment.ListByArticle)
			articles.With(requireAuth).Post("/{id}/comments", h.Comment.Create)
		})

		api.With(requireAuth).Delete("/comments/{id}", h.Comment.Delete)

		api.Route("/categories", func(categories chi.Router) {
			categories.Get("/", h.Category.List)
			categories.With(requireAuth, requireAdmin).Post("/", h.Category.Create)
			categories.With(requireAuth, requireAdmin).Put("/{id}", h.Category.Update)
			categories.With(requireAuth, requireAdmin).Delete("/{id}", h.Category.Delete)
		})

		api.Route("/subscriptions", func(subs chi.Router) {
			subs.With(requireAuth).Get("/", h.Subscription.List)
			subs.Get("/{authorID}/count", h.Subscription.SubscriberCount)
			subs.With(requireAuth).Post("/{authorID}", h.Subscription.Subscribe)
			subs.With(requireAuth).Delete("/{authorID}", h.Subscription.Unsubscribe)
		})
	})

	return r
}
