package api

import (
	"log"
	stdhttp "net/http"

	intconfig "agencyportal/internal/config"
	"agencyportal/internal/domain"
	"agencyportal/internal/http/handlers"
	"agencyportal/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h := handlers.New(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.Auth([]byte(env.JWTSecret))
	backOffice := middleware.RequireRoles(domain.RoleAdmin, domain.RoleSuperadmin, domain.RoleOperator)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin, domain.RoleSuperadmin)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)

		// Catalog (public reads)
		api.GET("/circuits", h.ListCircuits)
		api.GET("/circuits/:slug", h.GetCircuit)

		// Agency self-service
		agency := api.Group("/agency", auth)
		agency.GET("/profile", h.AgencyProfile)
		agency.PATCH("/profile", h.UpdateAgencyProfile)

		// Pre-bookings
		bookings := api.Group("/bookings", auth)
		bookings.POST("/quote", h.QuoteBooking)
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.GET("/:id/payment-status", h.BookingPaymentStatus)
		bookings.GET("/:id/confirmation", h.BookingConfirmationPDF)
		bookings.GET("/:id/invoice", h.BookingInvoicePDF)
		bookings.POST("/:id/approve", backOffice, h.ApproveBooking)
		bookings.POST("/:id/reject", backOffice, h.RejectBooking)

		// Payments
		payments := api.Group("/payments", auth)
		payments.GET("", h.ListPayments)
		payments.POST("", backOffice, h.CreatePayment)
		payments.DELETE("/:id", adminOnly, h.DeletePayment)

		// Documents
		documents := api.Group("/documents", auth)
		documents.GET("", h.ListDocuments)
		documents.POST("", h.UploadDocument)
		documents.GET("/:id", h.DownloadDocument)
		documents.DELETE("/:id", adminOnly, h.DeleteDocument)

		// Back office
		admin := api.Group("/admin", auth, backOffice)
		{
			agencies := admin.Group("/agencies")
			agencies.GET("", h.ListAgencies)
			agencies.POST("/activate", h.ActivateAgency)
			agencies.POST("/suspend", h.SuspendAgency)
			agencies.PATCH("/update", h.UpdateAgency)

			circuits := admin.Group("/circuits")
			circuits.POST("", h.CreateCircuit)
			circuits.PUT("/:id", h.UpdateCircuit)
			circuits.DELETE("/:id", h.DeleteCircuit)
			circuits.POST("/:id/departures", h.CreateDeparture)

			departures := admin.Group("/departures")
			departures.PUT("/:id", h.UpdateDeparture)
			departures.DELETE("/:id", h.DeleteDeparture)

			admin.GET("/reports/overview", h.ReportsOverview)
		}
	}

	return r
}
