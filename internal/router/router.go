package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/handler"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/middleware"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems probe this endpoint to
	// verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware. Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Session bootstrap: none of these require an existing token.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access issues a new
	// access token while reusing the existing refresh token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token (revoke all sessions) or a
	// refresh_token in the body (revoke one), so it stays outside the
	// JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	auth.GET("/me", a.Me)

	// Alias kept for clients that call logout at the top level.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints. The
// PublicHandler returns sanitized hall data, so no JWT or role middleware
// applies here. Cacheable read endpoints take the Redis response cache
// when one is configured.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	// List all active halls.
	e.GET("/v1/halls", p.GetPublicHalls, cache)
	// Hall details by id.
	e.GET("/v1/halls/:id", p.GetPublicHall, cache)
	// Free slots of a hall for ?date=YYYY-MM-DD. Not cached: bookings
	// change it between requests.
	e.GET("/v1/halls/:id/availability", p.GetHallAvailability)
}

// RegisterBookings registers the authenticated booking endpoints and the
// assistant endpoint. Both roles may book; admins additionally get the
// review endpoints from RegisterAdmin.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, as *handler.AssistantHandler, jwtSecret string) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleUser))

	auth.POST("/bookings", b.Create)
	auth.GET("/my-bookings", b.ListMine)
	auth.GET("/bookings/:id", b.GetOne)
	auth.DELETE("/bookings/:id", b.Cancel)

	auth.POST("/assistant", as.Chat)
}

// RegisterAdmin registers the admin review endpoints behind the ADMIN
// role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminBookingHandler, jwtSecret string) {
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.GET("/bookings", a.List)
	admin.PATCH("/bookings/:id/status", a.Decide)
}
