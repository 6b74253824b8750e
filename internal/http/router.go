package http

import (
	"context"
	"log/slog"

	"github.com/geocoder89/eventnudges/internal/config"
	"github.com/geocoder89/eventnudges/internal/http/handlers"
	"github.com/geocoder89/eventnudges/internal/http/middlewares"
	"github.com/geocoder89/eventnudges/internal/observability"
	"github.com/geocoder89/eventnudges/internal/uploads"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const apiPrefix = "/api/v3/app"

// Deps is everything the router needs from main. Prom and Gatherer may be
// nil, in which case metrics are neither recorded nor exposed.
type Deps struct {
	Events   handlers.EventsStore
	Nudges   handlers.NudgesStore
	Uploads  *uploads.DiskStore
	Ping     func(ctx context.Context) error
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
}

func NewRouter(log *slog.Logger, deps Deps, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	if cfg.TracingEnabled() {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders("/uploads/"))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	}
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	if cfg.MaxBodyBytes > 0 {
		r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	}

	// health
	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/", h.Welcome)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// stored images, under the same path the documents reference
	r.Static("/uploads", deps.Uploads.Dir())

	eventsHandler := handlers.NewEventsHandler(deps.Events)
	nudgesHandler := handlers.NewNudgesHandler(deps.Nudges)
	image := middlewares.SingleUpload(deps.Uploads, "image", deps.Prom)

	api := r.Group(apiPrefix)
	{
		api.GET("/events", eventsHandler.GetEvents)
		api.POST("/events", image, eventsHandler.CreateEvent)

		api.POST("/nudges", image, nudgesHandler.CreateNudge)
		api.GET("/nudges", nudgesHandler.GetNudges)
		api.PUT("/nudges/:id", image, nudgesHandler.UpdateNudge)
		api.DELETE("/nudges/:id", nudgesHandler.DeleteNudge)
	}

	return r
}
