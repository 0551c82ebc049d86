package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports service liveness for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": "tourist-app",
	})
}

// Index lists the public API surface.
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "welcome to the tourist app",
		"endpoints": echo.Map{
			"authentication": echo.Map{
				"register": "/auth/register",
				"login":    "/auth/login",
				"refresh":  "/auth/refresh",
				"logout":   "/auth/logout",
				"profile":  "/auth/me",
			},
			"locations": echo.Map{
				"all_locations":    "/locations",
				"get_location":     "/locations/:id",
				"create_location":  "/locations",
				"search_locations": "/locations/search",
			},
			"voting": echo.Map{
				"rate_location":  "/voting/:id/rate",
				"location_stats": "/voting/:id/stats",
				"my_rating":      "/voting/:id/my-rating",
				"top_rated":      "/voting/top-rated",
				"recent_votes":   "/voting/recent-votes",
			},
		},
	})
}
