package careconnect

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/careconnect/internal/http/handlers/appointments"
	"github.com/magabrotheeeer/careconnect/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/careconnect/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/careconnect/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/careconnect/internal/http/handlers/doctordashboard"
	chathandler "github.com/magabrotheeeer/careconnect/internal/http/handlers/chat"
	"github.com/magabrotheeeer/careconnect/internal/http/handlers/doctors"
	emergencyhandler "github.com/magabrotheeeer/careconnect/internal/http/handlers/emergency"
	"github.com/magabrotheeeer/careconnect/internal/http/handlers/health"
	profilehandler "github.com/magabrotheeeer/careconnect/internal/http/handlers/profile"
	"github.com/magabrotheeeer/careconnect/internal/http/handlers/records"
	"github.com/magabrotheeeer/careconnect/internal/http/handlers/visits"
	"github.com/magabrotheeeer/careconnect/internal/http/middlewarectx"
)

// AuthService операции с аккаунтами, нужные HTTP-слою.
type AuthService interface {
	register.Service
	login.Service
	logout.Service
	profilehandler.Deactivator
	middlewarectx.Service
}

// Services бизнес-логика, на которую опираются маршруты.
type Services struct {
	Auth         AuthService
	Profile      profilehandler.Service
	Appointments appointments.Service
	Doctors      doctors.Service
	Dashboard    doctordashboard.Service
	Records      records.Service
	Emergency    emergencyhandler.Service
	Visits       visits.Service
	Chat         chathandler.Service
	Health       map[string]health.Pinger
}

// RouteOptions настройки маршрутизации.
type RouteOptions struct {
	ChatRequireAuth bool
	ChatRateLimit   rate.Limit
	ChatRateBurst   int
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, opts RouteOptions) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	requireAuth := middlewarectx.JWTMiddleware(svc.Auth, logger)

	// Открытые конечные точки
	r.Get("/health", health.New(logger, "careconnect", svc.Health).ServeHTTP)
	r.Post("/auth/register", register.New(logger, svc.Auth).ServeHTTP)
	r.Post("/auth/login", login.New(logger, svc.Auth).ServeHTTP)

	doc := doctors.New(logger, svc.Doctors)
	r.Get("/doctors", doc.List)
	r.Get("/doctors/{id}/available-slots", doc.Slots)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/auth/logout", logout.New(logger, svc.Auth).ServeHTTP)

		p := profilehandler.New(logger, svc.Profile, svc.Auth)
		r.Get("/profile", p.Get)
		r.Delete("/profile", p.Deactivate)
		r.Put("/profile/update", p.Update)
		r.Put("/profile/emergency-contact", p.SetEmergencyContact)

		a := appointments.New(logger, svc.Appointments)
		r.Get("/appointments", a.List)
		r.Post("/appointments", a.Book)
		r.Get("/appointments/upcoming", a.Upcoming)
		r.Get("/appointments/{id}", a.Get)
		r.Put("/appointments/{id}", a.Reschedule)
		r.Delete("/appointments/{id}", a.Cancel)
		r.Post("/appointments/{id}/complete", a.Complete)

		rec := records.New(logger, svc.Records)
		r.Get("/medical-records", rec.List)
		r.Post("/medical-records/entry", rec.Add)
		r.Put("/medical-records/{id}", rec.Update)
		r.Delete("/medical-records/{id}", rec.Deactivate)
		r.Delete("/medical-records/{id}/permanent", rec.Delete)

		e := emergencyhandler.New(logger, svc.Emergency)
		r.Post("/emergency", e.Create)
		r.Get("/emergency", e.List)
		r.Put("/emergency/{id}/status", e.UpdateStatus)

		v := visits.New(logger, svc.Visits)
		r.Get("/visits/all", v.All)
		r.Get("/visits/recent", v.Recent)

		dd := doctordashboard.New(logger, svc.Dashboard)
		r.Get("/doctor/patients", dd.Patients)
		r.Get("/doctor/schedule", dd.Schedule)
	})

	c := chathandler.New(logger, svc.Chat)
	r.Route("/chat", func(r chi.Router) {
		r.Get("/health", c.Health)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, rate.NewLimiter(opts.ChatRateLimit, opts.ChatRateBurst)))
			if opts.ChatRequireAuth {
				r.Use(requireAuth)
			} else {
				r.Use(middlewarectx.OptionalJWTMiddleware(svc.Auth, logger))
			}
			r.Post("/", c.Message)
			r.Post("/symptom-check", c.SymptomCheck)
			r.Delete("/conversation", c.ClearConversation)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
