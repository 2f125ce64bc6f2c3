package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/loci-canvas-api/pkg/middleware"
	"github.com/FACorreiaa/loci-canvas-api/pkg/observability"
)

// SetupRouter configures all routes and returns the HTTP handler
func SetupRouter(deps *Dependencies) http.Handler {
	mux := http.NewServeMux()

	registerAPIRoutes(mux, deps)
	registerUtilityRoutes(mux, deps)

	chain := []func(http.Handler) http.Handler{
		middleware.NewRequestID("X-Request-ID"),
		middleware.NewRecovery(deps.Logger),
		middleware.NewLogging(deps.Logger),
	}
	if deps.Config.Server.RateLimitPerSecond > 0 && deps.Config.Server.RateLimitBurst > 0 {
		limiter := rate.NewLimiter(
			rate.Limit(float64(deps.Config.Server.RateLimitPerSecond)),
			deps.Config.Server.RateLimitBurst,
		)
		chain = append(chain, middleware.NewRateLimit(limiter))
	}
	chain = append(chain,
		observability.NewMetricsMiddleware(),
		middleware.NewSession(deps.CookieStore, deps.Logger),
	)

	var handler http.Handler = mux
	for i := len(chain) - 1; i >= 0; i-- {
		handler = chain[i](handler)
	}

	// Enable CORS for browser clients (local frontend)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept-Encoding",
			"Content-Type",
			"X-Request-ID",
		},
		AllowCredentials: true,
	})

	return corsHandler.Handler(handler)
}

// registerAPIRoutes registers the resolve / recommend / generate flows and
// the session surfaces
func registerAPIRoutes(mux *http.ServeMux, deps *Dependencies) {
	mux.HandleFunc("POST /v1/locations/resolve", deps.LocationHandler.Resolve)
	mux.HandleFunc("GET /v1/locations/recent", deps.LocationHandler.Recent)

	mux.HandleFunc("POST /v1/styles/recommend", deps.StyleHandler.Recommend)

	mux.HandleFunc("POST /v1/visuals/generate", deps.VisualHandler.Generate)
	mux.HandleFunc("GET /v1/visuals/recent", deps.VisualHandler.Recent)

	mux.HandleFunc("GET /v1/sessions/current", deps.SessionHandler.Current)
	mux.HandleFunc("GET /v1/sessions/current/activity", deps.SessionHandler.Activity)
	mux.HandleFunc("GET /v1/deeplink", deps.SessionHandler.DeepLink)
	mux.HandleFunc("POST /v1/share", deps.SessionHandler.CreateShare)
	mux.HandleFunc("GET /v1/share/{token}", deps.SessionHandler.ResolveShare)

	deps.Logger.Info("API routes configured")
}

// registerUtilityRoutes registers health check, metrics, and other utility routes
func registerUtilityRoutes(mux *http.ServeMux, deps *Dependencies) {
	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := deps.DB.Health(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unhealthy"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	deps.Logger.Info("registered health check", "path", "/health")

	// Readiness check endpoint
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := deps.DB.Health(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("not ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})
	deps.Logger.Info("registered readiness check", "path", "/ready")

	// Metrics endpoint (Prometheus)
	if deps.Config.Observability.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		deps.Logger.Info("registered metrics endpoint", "path", "/metrics")
	}
}
