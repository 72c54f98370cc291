package httpapi

import (
	"net/http"
	"time"

	"server/internal/http/handlers"
	appmw "server/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the HTTP surface for the studio UI.
func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		appmw.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		appmw.Logger(app.Logger),
		appmw.CORS(app.Config.AllowedOrigins),
		appmw.I18N(app.Config.DefaultLocale),
		appmw.SessionID,
	)

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(appmw.RateLimit(app.Config.RateLimitPerMin, time.Minute))

		r.Route("/v1/images", func(r chi.Router) {
			r.Post("/generate", app.ImagesGenerate)
			r.Post("/enhance-prompt", app.EnhancePrompt)
		})

		r.Route("/v1/edits", func(r chi.Router) {
			r.Post("/lifestyle-shot-text", app.LifestyleShotByText)
			r.Post("/lifestyle-shot-image", app.LifestyleShotByImage)
			r.Post("/generative-fill", app.GenerativeFill)
			r.Post("/erase-foreground", app.EraseForeground)
			r.Post("/shadow", app.AddShadow)
			r.Post("/packshot", app.CreatePackshot)
		})
	})

	r.Route("/v1/assets", func(r chi.Router) {
		r.Get("/", app.ListAssets)
		r.Get("/zip", app.ZipAssets)
		r.Get("/{id}/download", app.DownloadAsset)
	})

	r.Route("/v1/metrics", func(r chi.Router) {
		r.Get("/summary", app.MetricsSummary)
		r.Get("/history", app.MetricsHistory)
	})

	staticDir := http.Dir(app.Files.BasePath())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(staticDir)))

	return r
}
