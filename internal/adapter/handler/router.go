package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	Rides     *RideHandler
	Bookings  *BookingHandler
	JWTSecret []byte
	Log       *logrus.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(cfg.Log))

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := Authenticate(cfg.JWTSecret)

	rides := api.Group("/rides")
	rides.GET("", cfg.Rides.Search)
	rides.GET("/me", auth, cfg.Rides.ListMine)
	rides.GET("/:id", cfg.Rides.Get)
	rides.POST("", auth, cfg.Rides.Publish)
	rides.DELETE("/:id", auth, cfg.Rides.Cancel)

	bookings := api.Group("/bookings", auth)
	bookings.POST("", cfg.Bookings.Create)
	bookings.GET("/me", cfg.Bookings.ListMine)
	bookings.GET("/ride/:rideId", cfg.Bookings.ListForRide)
	bookings.POST("/:id/accept", cfg.Bookings.Accept)
	bookings.POST("/:id/reject", cfg.Bookings.Reject)
	bookings.POST("/:id/cancel", cfg.Bookings.Cancel)

	return r
}
