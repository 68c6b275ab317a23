package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/craftsign/signquote-backend/api/controllers"
	"github.com/craftsign/signquote-backend/api/middleware"
	coefficientsvc "github.com/craftsign/signquote-backend/internal/coefficients"
	materialsvc "github.com/craftsign/signquote-backend/internal/materials"
	quotesvc "github.com/craftsign/signquote-backend/internal/quotes"
	"github.com/craftsign/signquote-backend/pkg/config"
	"github.com/craftsign/signquote-backend/pkg/db"
	"github.com/craftsign/signquote-backend/pkg/logger"
	"github.com/craftsign/signquote-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	quoteService quotesvc.Service,
	materialService materialsvc.Service,
	coefficientService coefficientsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Tenant(logg))

		r.Route("/materials", func(r chi.Router) {
			r.Post("/", controllers.CreateMaterial(materialService, logg))
			r.Get("/", controllers.ListMaterials(materialService, logg))
			r.Get("/{materialId}", controllers.GetMaterial(materialService, logg))
			r.Put("/{materialId}", controllers.UpdateMaterial(materialService, logg))
		})

		r.Route("/character-coefficients", func(r chi.Router) {
			r.Get("/", controllers.ListCoefficients(coefficientService, logg))
			r.Post("/", controllers.CreateCoefficient(coefficientService, logg))
			r.Put("/{coefficientId}", controllers.UpdateCoefficient(coefficientService, logg))
			r.Delete("/{coefficientId}", controllers.DeleteCoefficient(coefficientService, logg))
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Post("/", controllers.CreateQuote(quoteService, logg))
			r.Post("/preview", controllers.PreviewQuote(quoteService, logg))
			r.Get("/", controllers.ListQuotes(quoteService, logg))
			r.Get("/{quoteId}", controllers.GetQuote(quoteService, logg))
			r.Put("/{quoteId}/line-items", controllers.ReplaceQuoteLineItems(quoteService, logg))
			r.Patch("/{quoteId}/status", controllers.UpdateQuoteStatus(quoteService, logg))
		})
	})

	return r
}
