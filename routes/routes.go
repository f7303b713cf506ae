package routes

import (
	"net/http"
	"time"

	"innkeep/handlers"
	"innkeep/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoomRoutes registers room inventory endpoints.
func RegisterRoomRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/rooms")
	{
		// Public listing for the website booking form.
		api.GET("", hb.Rooms.List)

		api.Use(middleware.StaffAuthMiddleware())
		api.POST("", hb.Rooms.Create)
		api.GET("/:id", hb.Rooms.Get)
		api.PATCH("/:id", hb.Rooms.Update)
		api.PATCH("/:id/status", hb.Rooms.SetStatus)
		api.DELETE("/:id", middleware.RequireRoles("admin", "manager"), hb.Rooms.Delete)
		api.POST("/availability", hb.Rooms.CheckAvailability)
	}
}

// RegisterReservationRoutes registers reservation lifecycle endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		// Public booking form posts land here too, tagged by source.
		api.POST("", hb.Reservations.Create)

		api.Use(middleware.StaffAuthMiddleware())
		api.GET("", hb.Reservations.List)
		api.GET("/:id", hb.Reservations.Get)
		api.PATCH("/:id", hb.Reservations.Swap)
		api.PATCH("/:id/confirm", hb.Reservations.Confirm)
		api.DELETE("/:id/cancel", hb.Reservations.Cancel)
		api.DELETE("/:id", hb.Reservations.Delete)
	}
}

// RegisterGuestRoutes registers guest stay lifecycle endpoints.
func RegisterGuestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/guests")
	{
		api.Use(middleware.StaffAuthMiddleware())
		api.POST("", hb.Guests.CheckIn)
		api.GET("", hb.Guests.List)
		api.GET("/:id", hb.Guests.Get)
		api.PATCH("/:id", hb.Guests.UpdateProfile)
		api.PATCH("/:id/extend", hb.Guests.Extend)
		api.PATCH("/:id/checkout", hb.Guests.Checkout)
	}
}

// RegisterInvoiceRoutes registers invoice read endpoints.
func RegisterInvoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/invoices")
	{
		api.Use(middleware.StaffAuthMiddleware())
		api.GET("", hb.Invoices.List)
		api.GET("/:id", hb.Invoices.Get)
		api.GET("/guest/:guestId", hb.Invoices.GetByGuest)
	}
}

// RegisterDecorRoutes registers the decor order workflow endpoints.
func RegisterDecorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/decor")
	{
		// Packages are publicly browsable from the website.
		api.GET("/packages", hb.Decor.ListPackages)

		api.Use(middleware.StaffAuthMiddleware())
		api.POST("/packages", hb.Decor.CreatePackage)
		api.GET("/packages/:id", hb.Decor.GetPackage)
		api.DELETE("/packages/:id", hb.Decor.DeletePackage)

		api.POST("/orders", hb.Decor.CreateOrder)
		api.GET("/orders", hb.Decor.ListOrders)
		api.GET("/orders/:id", hb.Decor.GetOrder)
		api.PUT("/orders/:id/complete", hb.Decor.BillOrder)
		api.DELETE("/orders/:id", hb.Decor.CancelOrder)
	}
}

// RegisterTransactionRoutes registers ledger endpoints.
func RegisterTransactionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/transactions")
	{
		api.Use(middleware.StaffAuthMiddleware())
		api.POST("", hb.Transactions.Add)
		api.GET("", hb.Transactions.List)
	}
}

// RegisterInventoryRoutes registers stock item endpoints.
func RegisterInventoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/inventory")
	{
		api.Use(middleware.StaffAuthMiddleware())
		api.POST("/items", hb.Inventory.CreateItem)
		api.GET("/items", hb.Inventory.ListItems)
		api.GET("/items/:id", hb.Inventory.GetItem)
		api.PATCH("/items/:id/stock", hb.Inventory.AdjustStock)
		api.GET("/usage", hb.Inventory.ListUsage)
	}
}

// RegisterDiscountRoutes registers discount and promo administration.
func RegisterDiscountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	discounts := r.Group("/api/discounts")
	{
		discounts.Use(middleware.StaffAuthMiddleware(), middleware.RequireRoles("admin", "manager"))
		discounts.POST("", hb.Discounts.CreateDiscount)
		discounts.GET("", hb.Discounts.ListDiscounts)
		discounts.DELETE("/:id", hb.Discounts.DeactivateDiscount)
	}
	promos := r.Group("/api/promos")
	{
		promos.Use(middleware.StaffAuthMiddleware(), middleware.RequireRoles("admin", "manager"))
		promos.POST("", hb.Discounts.CreatePromo)
		promos.GET("", hb.Discounts.ListPromos)
		promos.DELETE("/:id", hb.Discounts.DeactivatePromo)
	}
}

// RegisterSettingsRoutes registers the billing settings endpoints.
func RegisterSettingsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/settings")
	{
		api.Use(middleware.StaffAuthMiddleware())
		api.GET("", hb.Settings.Get)
		api.PUT("", middleware.RequireRoles("admin", "manager"), hb.Settings.Update)
	}
}

// RegisterStorageRoutes registers image storage endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	{
		api.Use(middleware.StaffAuthMiddleware())
		api.POST("/upload/:bucket", hb.Storage.UploadImage)
		api.GET("/url/:bucket/:filename", hb.Storage.GetImageURL)
		api.DELETE("/:id", hb.Storage.DeleteImage)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Innkeep"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterRoomRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterGuestRoutes(r, hb)
	RegisterInvoiceRoutes(r, hb)
	RegisterDecorRoutes(r, hb)
	RegisterTransactionRoutes(r, hb)
	RegisterInventoryRoutes(r, hb)
	RegisterDiscountRoutes(r, hb)
	RegisterSettingsRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
}
