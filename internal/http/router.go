package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"bookingslots/internal/auth"
	"bookingslots/internal/config"
	"bookingslots/internal/gate"
	"bookingslots/internal/http/handlers"
	"bookingslots/internal/http/middlewares"
	"bookingslots/internal/notify"
	"bookingslots/internal/observability"
)

type RouterDeps struct {
	Cfg      config.Config
	Log      *slog.Logger
	Events   handlers.EventsRepository
	Engine   handlers.BookingEngine
	Queue    *notify.Queue
	Gate     *gate.Gate
	Tokens   *auth.Manager
	Prom     *observability.Prom
	Registry *prometheus.Registry
	Ping     func() error
}

func NewRouter(d RouterDeps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Cfg.AllowedOrigins))
	r.Use(otelgin.Middleware("bookingslots"))
	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.RequireJSON())

	session := middlewares.NewSessionMiddleware(d.Tokens)

	loginLimiter := middlewares.NewRateLimiter(5, time.Minute)
	bookingLimiter := middlewares.NewRateLimiter(30, time.Minute)

	// health
	h := handlers.NewHealthHandler(d.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// wire up handlers
	var bookingResults *prometheus.CounterVec
	if d.Prom != nil {
		bookingResults = d.Prom.BookingsTotal
	}

	eventsHandler := handlers.NewEventsHandler(d.Events, d.Queue)
	bookingsHandler := handlers.NewBookingsHandler(d.Engine, d.Queue, bookingResults)
	sessionHandler := handlers.NewSessionHandler(d.Gate)
	notificationsHandler := handlers.NewNotificationsHandler(d.Queue, d.Log)

	// visitor surface
	r.GET("/events", session.Attach(), eventsHandler.ListEvents)
	r.GET("/events/:id", eventsHandler.GetEventByID)
	r.POST("/events/:id/bookings", bookingLimiter.Middleware(middlewares.KeyByIP), bookingsHandler.Book)

	// admin surface
	admin := r.Group("", session.RequireAdmin())
	admin.POST("/events", eventsHandler.CreateEvent)
	admin.PUT("/events/:id", eventsHandler.UpdateEvent)
	admin.DELETE("/events/:id", eventsHandler.DeleteEvent)
	admin.DELETE("/events/:id/bookings/:bookingId", bookingsHandler.Cancel)

	// session gate
	r.POST("/session/login", loginLimiter.Middleware(middlewares.KeyByIP), sessionHandler.Login)
	r.POST("/session/logout", sessionHandler.Logout)
	r.GET("/session", sessionHandler.Current)

	// notifications
	r.GET("/notifications", notificationsHandler.List)
	r.GET("/notifications/ws", notificationsHandler.Stream)

	return r
}
