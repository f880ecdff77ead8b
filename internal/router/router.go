// Package router wires the gateway's pages onto an Echo instance. Routes are
// grouped by who may reach them: public pages, pages that need a login, and
// the role-gated admin and host dashboards.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/molticket/webgate/internal/config"
	"github.com/molticket/webgate/internal/handler"
	"github.com/molticket/webgate/internal/middleware"
	"github.com/molticket/webgate/internal/model"
	"github.com/molticket/webgate/internal/session"
	"github.com/molticket/webgate/internal/upstream"
	"github.com/molticket/webgate/internal/view"
)

// Handlers collects every page handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Events   *handler.EventHandler
	Queue    *handler.QueueHandler
	Booking  *handler.BookingHandler
	Bookings *handler.BookingsHandler
	Payment  *handler.PaymentHandler
	Admin    *handler.AdminHandler
	Host     *handler.HostHandler
}

// Register mounts all routes and the shared middleware chain. Every request
// passes through session resolution; mutating requests additionally pass the
// rate limiter.
func Register(e *echo.Echo, cfg config.Config, store *session.Store, rdb *redis.Client, h Handlers) {
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.ResolveSession(store, cfg.SessionCookie))
	e.Use(middleware.RateLimitPosts(cfg.RateLimit, rdb))

	// Operational endpoints sit outside the page chrome.
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.StaticFS("/static", view.StaticFS())

	// Public pages.
	e.GET("/", h.Events.Home)
	e.GET("/login", h.Auth.LoginForm)
	e.POST("/login", h.Auth.Login)
	e.GET("/signup", h.Auth.SignUpForm)
	e.POST("/signup", h.Auth.SignUp)
	e.GET("/signup/host", h.Auth.SignUpHostForm)
	e.POST("/signup/host", h.Auth.SignUpHost)
	e.GET("/events", h.Events.List)
	e.GET("/events/:eventId", h.Events.Detail)
	// Joining the queue checks login itself so it can flash a hint instead
	// of silently bouncing.
	e.POST("/events/:eventId/queue", h.Events.JoinQueue)

	// Payment returns arrive from the provider's redirect; the booking they
	// refer to is shown without requiring a fresh login round-trip.
	e.GET("/payment/success", h.Payment.Success)
	e.GET("/payment/cancel", h.Payment.Cancel)
	e.GET("/payment/fail", h.Payment.Fail)

	// Pages that need a signed-in session.
	authed := e.Group("", middleware.RequireAuth())
	authed.GET("/queue/:eventId", h.Queue.Status)
	authed.GET("/booking/:eventId", h.Booking.Page)
	authed.POST("/booking/:eventId", h.Booking.Create)
	authed.GET("/bookings", h.Bookings.List)
	authed.GET("/bookings/:bookingId", h.Bookings.Detail)
	authed.POST("/bookings/:bookingId/cancel", h.Bookings.Cancel)
	authed.POST("/logout", h.Auth.Logout)

	admin := e.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	admin.GET("", h.Admin.Dashboard)
	admin.POST("/hosts/:hostId/:action", h.Admin.HostAction)

	host := e.Group("/host", middleware.RequireRole(model.RoleHost))
	host.GET("", h.Host.Dashboard)
	host.POST("/events", h.Host.CreateEvent)
	host.POST("/places", h.Host.CreatePlace)
	host.POST("/places/:placeId/delete", h.Host.DeletePlace)
}

// NewHandlers builds the full handler set from the shared dependencies.
func NewHandlers(cfg config.Config, store *session.Store, api *upstream.Client) Handlers {
	p := handler.Pages{Store: store}
	return Handlers{
		Auth:     handler.NewAuthHandler(p, api),
		Events:   handler.NewEventHandler(p, api),
		Queue:    handler.NewQueueHandler(p, api, cfg.QueuePollBase, cfg.QueuePollCap),
		Booking:  handler.NewBookingHandler(p, api),
		Bookings: handler.NewBookingsHandler(p, api),
		Payment:  handler.NewPaymentHandler(p),
		Admin:    handler.NewAdminHandler(p, api),
		Host:     handler.NewHostHandler(p, api),
	}
}
