package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/controllers"
	"github.com/yeremiapane/restaurant-reservation/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	reservationCtrl := controllers.NewReservationController(db)
	tableCtrl := controllers.NewTableController(db)

	// Rate limiter untuk endpoint yang menulis data
	writeLimiter := middlewares.NewWriteRateLimiter()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Endpoint WebSocket untuk dashboard real-time
	r.GET("/events/ws", controllers.EventsHandler)

	// -- RESERVATIONS --
	reservations := r.Group("/reservations")
	{
		reservations.GET("", reservationCtrl.GetAllReservations)
		reservations.POST("", writeLimiter, reservationCtrl.CreateReservation)
		reservations.GET("/:reservation_id", reservationCtrl.GetReservationByID)
		reservations.PUT("/:reservation_id", writeLimiter, reservationCtrl.UpdateReservation)
		reservations.PUT("/:reservation_id/status", writeLimiter, reservationCtrl.UpdateReservationStatus)
		reservations.PUT("/:reservation_id/cancel", writeLimiter, reservationCtrl.CancelReservation)
	}

	// -- TABLES --
	tables := r.Group("/tables")
	{
		tables.GET("", tableCtrl.GetAllTables)
		tables.POST("", writeLimiter, tableCtrl.CreateTable)
		tables.GET("/:table_id", tableCtrl.GetTableByID)
		tables.PUT("/:table_id/seat", writeLimiter, tableCtrl.SeatTable)
		tables.DELETE("/:table_id/seat", writeLimiter, tableCtrl.ReleaseTable)
	}

	return r
}
