package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/buildmat/buildmat-backend/api/controllers"
	cartcontrollers "github.com/buildmat/buildmat-backend/api/controllers/cart"
	ordercontrollers "github.com/buildmat/buildmat-backend/api/controllers/orders"
	"github.com/buildmat/buildmat-backend/api/middleware"
	cartsvc "github.com/buildmat/buildmat-backend/internal/cart"
	"github.com/buildmat/buildmat-backend/internal/catalog"
	checkoutsvc "github.com/buildmat/buildmat-backend/internal/checkout"
	"github.com/buildmat/buildmat-backend/internal/schedule"
	"github.com/buildmat/buildmat-backend/pkg/config"
	"github.com/buildmat/buildmat-backend/pkg/db"
	"github.com/buildmat/buildmat-backend/pkg/logger"
	"github.com/buildmat/buildmat-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	requirements := schedule.Requirements{
		RequireTime:    cfg.Delivery.RequireTime,
		RequireVehicle: cfg.Delivery.RequireVehicle,
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(catalogService, logg))
		})

		r.Get("/delivery/vehicles", controllers.VehicleOptions(cfg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.Fetch(cartService, logg))
				r.Delete("/", cartcontrollers.Clear(cartService, logg))

				r.Get("/validation", cartcontrollers.Validate(cartService, requirements, logg))
				r.Get("/schedule", cartcontrollers.Schedule(cartService, cfg.Delivery.Country, logg))

				r.Route("/items", func(r chi.Router) {
					r.Post("/", cartcontrollers.ItemAdd(cartService, logg))
					r.Route("/{productId}", func(r chi.Router) {
						r.Delete("/", cartcontrollers.ItemRemove(cartService, logg))
						r.Patch("/quantity", cartcontrollers.ItemUpdateQuantity(cartService, logg))
						r.Patch("/note", cartcontrollers.ItemUpdateNote(cartService, logg))

						r.Route("/slots", func(r chi.Router) {
							r.Post("/", cartcontrollers.SlotAdd(cartService, logg))
							r.Patch("/{slotId}", cartcontrollers.SlotUpdate(cartService, logg))
							r.Delete("/{slotId}", cartcontrollers.SlotRemove(cartService, logg))
						})
					})
				})
			})

			r.Post("/orders", ordercontrollers.Submit(checkoutService, logg))
		})
	})

	return r
}
