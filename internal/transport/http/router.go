package http

import (
	"net/http"

	"github.com/detailing-api/internal/application/audience"
	"github.com/detailing-api/internal/application/booking"
	"github.com/detailing-api/internal/application/broadcast"
	"github.com/detailing-api/internal/application/inbox"
	"github.com/detailing-api/internal/application/notification"
	"github.com/detailing-api/internal/application/schedule"
	"github.com/detailing-api/internal/config"
	"github.com/detailing-api/internal/domain"
	"github.com/detailing-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/detailing-api/internal/infrastructure/jwt"
	s3infra "github.com/detailing-api/internal/infrastructure/s3"
	snsinfra "github.com/detailing-api/internal/infrastructure/sns"
	"github.com/detailing-api/internal/transport/http/handler"
	appmiddleware "github.com/detailing-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	BookingRepo      *dynamo.BookingRepo
	NotificationRepo *dynamo.NotificationRepo
	BroadcastRepo    *dynamo.BroadcastRepo
	AuditRepo        *dynamo.AuditRepo
	UserRepo         *dynamo.UserRepo
	S3Store          *s3infra.Store
	Publisher        snsinfra.Publisher
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10, applied to the public intake endpoint.
	intakeRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	bookingSvc := booking.NewService(deps.BookingRepo)
	scheduleSvc := schedule.NewService(deps.BookingRepo)
	resolver := audience.NewResolver(deps.UserRepo)
	broadcastSvc := broadcast.NewService(broadcast.ServiceDeps{
		Notifications: deps.NotificationRepo,
		Broadcasts:    deps.BroadcastRepo,
		Audits:        deps.AuditRepo,
		Resolver:      resolver,
		Publisher:     deps.Publisher,
	})
	inboxSvc := inbox.NewService(deps.AuditRepo)
	notifSvc := notification.NewService(deps.NotificationRepo)

	healthH := handler.NewHealthHandler()
	bookingH := handler.NewBookingHandler(bookingSvc)
	scheduleH := handler.NewScheduleHandler(scheduleSvc)
	broadcastH := handler.NewBroadcastHandler(broadcastSvc)
	inboxH := handler.NewInboxHandler(inboxSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	exportH := handler.NewExportHandler(scheduleSvc, nil)
	if deps.S3Store != nil {
		exportH = handler.NewExportHandler(scheduleSvc, deps.S3Store)
	}

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.Get("/test", healthH.Test)
		r.Post("/test", healthH.Test)
		// Customer self-service intake shares the operator intake path.
		r.With(intakeRL.Limit).Post("/bookings", bookingH.Create)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			// Any authenticated user: their own notification feed
			r.Get("/notifications", notifH.ListUnread)
			r.Put("/notifications/{id}/read", notifH.MarkRead)
			r.Delete("/notifications", notifH.ClearAll)

			// Operator-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/bookings", scheduleH.List)
				r.Get("/bookings/{id}", bookingH.Get)
				r.Put("/bookings/{id}/approve", bookingH.Approve)
				r.Put("/bookings/{id}/reject", bookingH.Reject)
				r.Put("/bookings/{id}/complete", bookingH.Complete)
				r.Put("/bookings/{id}/undo", bookingH.Undo)
				r.Delete("/bookings/{id}", bookingH.Delete)

				r.Get("/schedule", scheduleH.OnDate)

				r.Post("/broadcasts", broadcastH.Dispatch)
				r.Get("/broadcasts", broadcastH.History)
				r.Delete("/broadcasts/{id}", broadcastH.Delete)

				r.Get("/inbox", inboxH.List)
				r.Get("/inbox/unread-count", inboxH.UnreadCount)
				r.Put("/inbox/{id}/read", inboxH.MarkRead)
				r.Delete("/inbox", inboxH.ClearAll)

				r.Get("/exports/bookings", exportH.ExportArchive)
			})
		})
	})

	return r
}
