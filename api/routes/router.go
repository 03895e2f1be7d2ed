package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kamalsite/backend/api/controllers"
	"github.com/kamalsite/backend/api/middleware"
	"github.com/kamalsite/backend/internal/cart"
	"github.com/kamalsite/backend/internal/catalog"
	"github.com/kamalsite/backend/internal/discounts"
	"github.com/kamalsite/backend/internal/likes"
	"github.com/kamalsite/backend/internal/orders"
	"github.com/kamalsite/backend/internal/sessions"
	"github.com/kamalsite/backend/pkg/auth"
	"github.com/kamalsite/backend/pkg/config"
	"github.com/kamalsite/backend/pkg/db"
	"github.com/kamalsite/backend/pkg/logger"
	"github.com/kamalsite/backend/pkg/redis"
)

type Services struct {
	Catalog      catalog.Service
	CatalogAdmin catalog.AdminService
	Cart         cart.Service
	Orders       orders.Service
	Finalizer    orders.Finalizer
	Likes        likes.Service
	Discounts    discounts.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionStore *sessions.Store,
	verifier *auth.Verifier,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(verifier, logg))
		r.Use(middleware.SessionMiddleware(sessionStore, cfg.Session.CookieName, cfg.Session.TTL, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(svcs.Catalog, logg))
			r.Get("/price-bounds", controllers.CatalogPriceBounds(svcs.Catalog, logg))
			r.Get("/{productId}", controllers.CatalogDetail(svcs.Catalog, logg))
			r.Post("/filter", controllers.CatalogFilter(svcs.Catalog, logg))
			r.Post("/sort", controllers.CatalogSort(svcs.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Post("/", controllers.CartAdd(svcs.Cart, logg))
			r.Patch("/items/{additionId}", controllers.CartSetQuantity(svcs.Cart, logg))
			r.Delete("/items/{additionId}", controllers.CartRemove(svcs.Cart, logg))
		})

		r.Post("/likes/{productId}/toggle", controllers.LikeToggle(svcs.Likes, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(svcs.Orders, svcs.Finalizer, svcs.Cart, logg))
			r.Get("/{orderId}/amount", controllers.OrderAmount(svcs.Orders, logg))
			r.Post("/{orderId}/finalize", controllers.OrderFinalize(svcs.Finalizer, logg))
			r.Post("/{orderId}/purchase", controllers.OrderPurchase(svcs.Finalizer, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(verifier, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductList(svcs.CatalogAdmin, logg))
			r.Post("/", controllers.AdminProductCreate(svcs.CatalogAdmin, logg))
			r.Get("/{productId}", controllers.AdminProductGet(svcs.CatalogAdmin, logg))
			r.Put("/{productId}", controllers.AdminProductUpdate(svcs.CatalogAdmin, logg))
			r.Delete("/{productId}", controllers.AdminProductRetire(svcs.CatalogAdmin, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminCategoryList(svcs.CatalogAdmin, logg))
			r.Post("/", controllers.AdminCategoryCreate(svcs.CatalogAdmin, logg))
			r.Put("/{categoryId}", controllers.AdminCategoryUpdate(svcs.CatalogAdmin, logg))
			r.Delete("/{categoryId}", controllers.AdminCategoryDelete(svcs.CatalogAdmin, logg))
		})

		r.Route("/discounts", func(r chi.Router) {
			r.Get("/", controllers.AdminDiscountList(svcs.Discounts, logg))
			r.Post("/", controllers.AdminDiscountCreate(svcs.Discounts, logg))
			r.Get("/{discountId}", controllers.AdminDiscountGet(svcs.Discounts, logg))
			r.Put("/{discountId}", controllers.AdminDiscountUpdate(svcs.Discounts, logg))
			r.Delete("/{discountId}", controllers.AdminDiscountDelete(svcs.Discounts, logg))
		})
	})

	return r
}
