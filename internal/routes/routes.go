package routes

import (
	"github.com/gin-gonic/gin"

	"estatecrm/internal/authz"
	"estatecrm/internal/handlers"
	"estatecrm/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	leadHandler *handlers.LeadHandler,
	assignmentHandler *handlers.AssignmentHandler,
	bookingHandler *handlers.BookingHandler,
	statusHandler *handlers.StatusHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))

	leads := r.Group("/leads")
	{
		leads.POST("/", leadHandler.Create)
		leads.GET("/", leadHandler.List)
		leads.GET("/booked",
			middleware.RequireRoles(authz.RoleBuilder, authz.RoleSalesManager),
			bookingHandler.ListBooked)
		leads.GET("/:id", leadHandler.GetByID)
		leads.POST("/:id/status", leadHandler.UpdateStatus)
		leads.GET("/:id/updates", leadHandler.Timeline)
		leads.POST("/:id/assign", assignmentHandler.Assign)
		leads.POST("/:id/book", bookingHandler.Book)
	}

	employees := r.Group("/employees")
	{
		employees.GET("/assignable", assignmentHandler.EligibleTargets)
	}

	r.GET("/lead-statuses", statusHandler.List)

	return r
}
