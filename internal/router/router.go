// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/11shadownevermore11/Hackaton/internal/handler"
	"github.com/11shadownevermore11/Hackaton/internal/middleware"
)

// RegisterRoutes registers routes that need no handler state: the landing
// index and the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Index)
	e.GET("/health", handler.Health)
}

// RegisterAuth registers authentication, profile and admin routes.
// Unauthenticated operations (register, login, refresh, logout, public
// profiles) take no middleware; /auth/me and password changes require a
// valid access token; the admin group additionally requires the admin role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	g.GET("/users/:id", a.GetUser)

	me := e.Group("/auth", middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
	me.PUT("/me", a.UpdateMe)
	me.POST("/change-password", a.ChangePassword)

	admin := e.Group("/auth/admin", middleware.JWTAuth(jwtSecret), middleware.RequireRole("admin"))
	admin.GET("/users", a.ListUsers)
	admin.POST("/users/:id/deactivate", a.DeactivateUser)
}

// RegisterLocations registers the location catalog routes and the upload
// file server.
func RegisterLocations(e *echo.Echo, h *handler.LocationHandler) {
	g := e.Group("/locations")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/search", h.Search)
	g.POST("/uploadfile", h.Upload)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/contacts", h.Contacts)
	g.GET("/:id/details", h.Details)

	e.GET("/uploads/:filename", h.ServeUpload)
}

// RegisterVoting registers the rating routes. They carry no auth
// middleware: the handler resolves the voter from a bearer token or the
// anonymous session cookie itself.
func RegisterVoting(e *echo.Echo, h *handler.VotingHandler) {
	g := e.Group("/voting")
	g.GET("/top-rated", h.TopRated)
	g.GET("/recent-votes", h.RecentVotes)
	g.POST("/:id/rate", h.Rate)
	g.GET("/:id/stats", h.Stats)
	g.GET("/:id/my-rating", h.MyRating)
	g.PUT("/:id/update-rating", h.UpdateRating)
	g.DELETE("/:id/remove-rating", h.RemoveRating)
}
