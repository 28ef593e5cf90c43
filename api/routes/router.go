package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/retailops-backend/api/controllers"
	"github.com/angelmondragon/retailops-backend/api/middleware"
	"github.com/angelmondragon/retailops-backend/api/responses"
	"github.com/angelmondragon/retailops-backend/internal/inventory"
	products "github.com/angelmondragon/retailops-backend/internal/products"
	"github.com/angelmondragon/retailops-backend/internal/revenue"
	"github.com/angelmondragon/retailops-backend/internal/sales"
	"github.com/angelmondragon/retailops-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
	"github.com/angelmondragon/retailops-backend/pkg/metrics"
)

// Services bundles the domain services exposed over HTTP.
type Services struct {
	Products  products.Service
	Sales     sales.Service
	Revenue   revenue.Service
	Inventory inventory.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	readiness map[string]controllers.Pinger,
	svc Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg, readiness))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svc.Products, logg))
			r.Post("/", controllers.CreateProduct(svc.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(svc.Products, logg))
			r.Patch("/{productId}", controllers.UpdateProduct(svc.Products, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(svc.Products, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.ListSales(svc.Sales, logg))
			r.Post("/", controllers.RecordSale(svc.Sales, logg))
			r.Get("/{saleId}", controllers.GetSale(svc.Sales, logg))
		})

		r.Route("/revenue", func(r chi.Router) {
			r.Get("/daily", controllers.DailyRevenue(svc.Revenue, logg))
			r.Get("/weekly", controllers.WeeklyRevenue(svc.Revenue, logg))
			r.Get("/monthly", controllers.MonthlyRevenue(svc.Revenue, logg))
			r.Get("/annual", controllers.AnnualRevenue(svc.Revenue, logg))
			r.Get("/summary", controllers.RevenueSummary(svc.Revenue, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.ListInventory(svc.Inventory, logg))
			r.Get("/low-stock", controllers.ListLowStock(svc.Inventory, logg))
			r.Get("/reorder", controllers.ListNeedingReorder(svc.Inventory, logg))
			r.Get("/{productId}", controllers.GetInventory(svc.Inventory, logg))
			r.Patch("/{productId}", controllers.UpdateInventory(svc.Inventory, logg))
			r.Post("/{productId}/adjust", controllers.AdjustStock(svc.Inventory, logg))
			r.Post("/{productId}/restock", controllers.Restock(svc.Inventory, logg))
		})
	})

	return r
}
