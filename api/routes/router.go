package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/warelinehq/wareline-backend/api/controllers"
	catalogcontrollers "github.com/warelinehq/wareline-backend/api/controllers/catalog"
	dashboardcontrollers "github.com/warelinehq/wareline-backend/api/controllers/dashboard"
	ordercontrollers "github.com/warelinehq/wareline-backend/api/controllers/orders"
	uploadcontrollers "github.com/warelinehq/wareline-backend/api/controllers/uploads"
	"github.com/warelinehq/wareline-backend/api/middleware"
	"github.com/warelinehq/wareline-backend/internal/catalog"
	"github.com/warelinehq/wareline-backend/internal/dashboard"
	"github.com/warelinehq/wareline-backend/internal/orders"
	"github.com/warelinehq/wareline-backend/internal/uploads"
	"github.com/warelinehq/wareline-backend/pkg/config"
	"github.com/warelinehq/wareline-backend/pkg/db"
	"github.com/warelinehq/wareline-backend/pkg/enums"
	"github.com/warelinehq/wareline-backend/pkg/logger"
	"github.com/warelinehq/wareline-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	registry *prometheus.Registry,
	httpStats *metrics.HTTPMetrics,
	ordersSvc orders.Service,
	uploadsSvc uploads.Service,
	dashboardSvc dashboard.Service,
	catalogSvc catalog.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpStats),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		uploaders := middleware.RequireRole(logg,
			enums.UserRoleAdmin.String(),
			enums.UserRoleManager.String(),
		)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordercontrollers.List(ordersSvc, logg))
			r.With(uploaders).Post("/upload", uploadcontrollers.OrderUpload(uploadsSvc, cfg.Upload, logg))
			r.Get("/{orderId}", ordercontrollers.Detail(ordersSvc, logg))
			r.Post("/{orderId}/status", ordercontrollers.UpdateStatus(ordersSvc, logg))
			r.Post("/{orderId}/packing", ordercontrollers.RecordPacking(ordersSvc, logg))
			r.Post("/{orderId}/dispatch", ordercontrollers.MoveToDispatch(ordersSvc, logg))
			r.Post("/{orderId}/complete", ordercontrollers.CompleteDispatch(ordersSvc, logg))
		})

		r.With(uploaders).Post("/invoices/upload", uploadcontrollers.InvoiceUpload(uploadsSvc, cfg.Upload, logg))

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/status-counts", dashboardcontrollers.StatusCounts(dashboardSvc, logg))
			r.Get("/orders/recent", dashboardcontrollers.RecentOrders(dashboardSvc, logg))
		})

		r.Get("/warehouses", catalogcontrollers.ListWarehouses(catalogSvc, logg))
		r.Get("/companies", catalogcontrollers.ListCompanies(catalogSvc, logg))
	})

	return r
}
