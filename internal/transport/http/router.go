package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pacpro-api/internal/application/announcement"
	"github.com/pacpro-api/internal/application/auth"
	"github.com/pacpro-api/internal/application/deadline"
	"github.com/pacpro-api/internal/application/event"
	"github.com/pacpro-api/internal/application/invoice"
	"github.com/pacpro-api/internal/application/notification"
	"github.com/pacpro-api/internal/application/report"
	"github.com/pacpro-api/internal/application/settings"
	"github.com/pacpro-api/internal/application/store"
	"github.com/pacpro-api/internal/application/user"
	"github.com/pacpro-api/internal/config"
	"github.com/pacpro-api/internal/domain"
	"github.com/pacpro-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/pacpro-api/internal/infrastructure/jwt"
	s3infra "github.com/pacpro-api/internal/infrastructure/s3"
	"github.com/pacpro-api/internal/infrastructure/smtp"
	"github.com/pacpro-api/internal/transport/http/handler"
	appmiddleware "github.com/pacpro-api/internal/transport/http/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	InvoiceRepo      *dynamo.InvoiceRepo
	NotificationRepo *dynamo.NotificationRepo
	StoreRepo        *dynamo.StoreRepo
	DeadlineRepo     *dynamo.DeadlineRepo
	AnnouncementRepo *dynamo.AnnouncementRepo
	SettingsRepo     *dynamo.SettingsRepo
	TotalsRepo       *dynamo.TotalsRepo
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	JWTProvider      *jwtinfra.Provider
	Dispatcher       *event.Dispatcher
	Logger           *zap.Logger
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Timeout(60 * time.Second))
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

	// 5 requests/second, burst of 10 on the login endpoint.
	loginRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(deps.UserRepo, deps.JWTProvider)
	invoiceSvc := invoice.NewService(invoice.ServiceDeps{
		InvoiceRepo: deps.InvoiceRepo,
		ImageStore:  deps.S3Store,
		Emitter:     deps.Dispatcher,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo: deps.UserRepo,
		Mailer:   deps.Mailer,
		Emitter:  deps.Dispatcher,
		AppURL:   cfg.AppBaseURL,
	})
	notifSvc := notification.NewService(deps.NotificationRepo)
	reportSvc := report.NewService(deps.InvoiceRepo, deps.TotalsRepo, deps.Logger)
	storeSvc := store.NewService(deps.StoreRepo)
	deadlineSvc := deadline.NewService(deps.DeadlineRepo)
	announcementSvc := announcement.NewService(deps.AnnouncementRepo)
	settingsSvc := settings.NewService(deps.SettingsRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	reportH := handler.NewReportHandler(reportSvc)
	storeH := handler.NewStoreHandler(storeSvc)
	deadlineH := handler.NewDeadlineHandler(deadlineSvc)
	announcementH := handler.NewAnnouncementHandler(announcementSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	userH := handler.NewUserHandler(userSvc)

	r.Route("/api/pac", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Check)
		r.With(loginRL.Limit).Post("/auth/login", authH.Login)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/invoices", invoiceH.Submit)
			r.Get("/invoices", invoiceH.List)
			r.Get("/invoices/{id}", invoiceH.Get)
			r.Delete("/invoices/{id}", invoiceH.Delete)

			r.Get("/notifications", notifH.List)
			r.Put("/notifications/read-all", notifH.MarkAllRead)
			r.Put("/notifications/{id}/read", notifH.MarkAsRead)

			r.Get("/reports/{storeID}/{yearMonth}", reportH.MonthlyTotals)

			r.Get("/deadlines", deadlineH.List)
			r.Get("/deadlines/upcoming", deadlineH.Upcoming)

			r.Get("/announcements", announcementH.List)

			r.Get("/stores", storeH.List)
			r.Get("/stores/{id}", storeH.Get)

			r.Get("/settings/notifications", settingsH.GetNotificationSettings)
			r.Get("/settings/invoice-categories", settingsH.ListCategories)

			// Admin-only routes. Both raw supervisor role variants are
			// accepted; stored roles are not normalised.
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.AdminRoleVariants...))

				r.Post("/reports/recompute", reportH.Recompute)

				r.Post("/deadlines", deadlineH.Create)
				r.Put("/deadlines/{id}", deadlineH.Update)
				r.Delete("/deadlines/{id}", deadlineH.Delete)

				r.Post("/announcements", announcementH.Create)
				r.Delete("/announcements/{id}", announcementH.Delete)

				r.Post("/stores", storeH.Create)
				r.Put("/stores/{id}", storeH.Update)
				r.Delete("/stores/{id}", storeH.Delete)
				r.Get("/stores/deleted/list", storeH.ListDeleted)
				r.Post("/stores/deleted/{id}/restore", storeH.Restore)

				r.Post("/settings/notifications", settingsH.UpdateNotificationSettings)
				r.Put("/settings/invoice-categories/{id}", settingsH.UpdateCategory)

				r.Get("/users", userH.List)
				r.Get("/users/{id}", userH.Get)
				r.Post("/users", userH.Create)
				r.Put("/users/{id}", userH.Update)
				r.Delete("/users/{id}", userH.Delete)
				r.Post("/users/invite", userH.Invite)
			})
		})
	})

	return r
}
