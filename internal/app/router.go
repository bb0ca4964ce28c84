package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"autonomo/internal/handler"
	"autonomo/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler    *handler.RideHandler
	VehicleHandler *handler.VehicleHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.POST("", deps.RideHandler.RequestRide)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.POST("/:id/schedule", deps.RideHandler.ScheduleRide)
			rides.POST("/:id/pickup", deps.RideHandler.ConfirmPickup)
			rides.POST("/:id/dropoff", deps.RideHandler.EndRide)
			rides.POST("/:id/cancel", deps.RideHandler.CancelRide)
			rides.POST("/:id/rebuild", deps.RideHandler.RebuildRide)
		}

		// Vehicle routes.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.POST("", deps.VehicleHandler.AddVehicle)
			vehicles.GET("/:vin", deps.VehicleHandler.GetVehicle)
			vehicles.POST("/:vin/available", deps.VehicleHandler.MakeAvailable)
			vehicles.POST("/:vin/occupy", deps.VehicleHandler.MarkOccupied)
			vehicles.POST("/:vin/unoccupy", deps.VehicleHandler.MarkUnoccupied)
			vehicles.POST("/:vin/request-return", deps.VehicleHandler.RequestReturn)
			vehicles.POST("/:vin/confirm-return", deps.VehicleHandler.ConfirmReturn)
			vehicles.POST("/:vin/rebuild", deps.VehicleHandler.RebuildVehicle)
			vehicles.DELETE("/:vin", deps.VehicleHandler.RemoveVehicle)
		}
	}

	return router
}
