package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/lezzet/internal/cart"
	"github.com/example/lezzet/internal/config"
	"github.com/example/lezzet/internal/handlers"
	"github.com/example/lezzet/internal/middleware"
	"github.com/example/lezzet/internal/models"
	"github.com/example/lezzet/internal/notify"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cartStore *cart.Store, cfg *config.Config) {
	pushClient := notify.NewPushClient(cfg.PushEndpoint)
	fanout := notify.NewFanout(db, pushClient)

	authHandler := handlers.NewAuthHandler(db, cfg)
	restaurantHandler := handlers.NewRestaurantHandler(db)
	cartHandler := handlers.NewCartHandler(db, cartStore)
	orderHandler := handlers.NewOrderHandler(db, cartStore, fanout, cfg)
	promoHandler := handlers.NewPromoHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db, fanout)
	profileHandler := handlers.NewProfileHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Public restaurant browsing
	api.Get("/restaurants", restaurantHandler.ListRestaurants)
	api.Get("/restaurants/:id", restaurantHandler.GetRestaurant)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	// Restaurant management
	protected.Post("/restaurants", middleware.RequireRole(models.RoleAdmin), restaurantHandler.CreateRestaurant)
	protected.Put("/restaurants/:id", middleware.RequireRole(models.RoleAdmin, models.RoleSeller), restaurantHandler.UpdateRestaurant)
	protected.Post("/restaurants/:id/menu", middleware.RequireRole(models.RoleAdmin, models.RoleSeller), restaurantHandler.CreateMenuItem)
	protected.Put("/restaurants/:id/menu/:itemId", middleware.RequireRole(models.RoleAdmin, models.RoleSeller), restaurantHandler.UpdateMenuItem)
	protected.Delete("/restaurants/:id/menu/:itemId", middleware.RequireRole(models.RoleAdmin, models.RoleSeller), restaurantHandler.DeleteMenuItem)
	protected.Get("/restaurants/:id/orders", middleware.RequireRole(models.RoleAdmin, models.RoleSeller), orderHandler.ListRestaurantOrders)

	// Cart
	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Put("/cart/items/:index", cartHandler.SetQuantity)
	protected.Delete("/cart", cartHandler.ClearCart)

	// Orders
	protected.Post("/orders", orderHandler.Checkout)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)
	protected.Patch("/orders/:id/status", middleware.RequireRole(models.RoleSeller), orderHandler.UpdateStatus)
	protected.Post("/orders/:id/cancel", middleware.RequireRole(models.RoleCustomer), orderHandler.CancelOrder)

	// Promotions
	protected.Get("/promos", promoHandler.ListPromos)
	protected.Post("/promos/validate", promoHandler.ValidatePromo)
	protected.Get("/promos/all", middleware.RequireRole(models.RoleAdmin), promoHandler.ListAllPromos)
	protected.Post("/promos", middleware.RequireRole(models.RoleAdmin), promoHandler.CreatePromo)
	protected.Delete("/promos/:code", middleware.RequireRole(models.RoleAdmin), promoHandler.DeletePromo)

	// Notifications
	protected.Get("/notifications", notificationHandler.ListNotifications)
	protected.Post("/notifications/read", notificationHandler.MarkAllRead)
	protected.Post("/notifications", middleware.RequireRole(models.RoleAdmin), notificationHandler.CreateNotification)

	// Admin dashboard
	admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.Get("/stats", adminHandler.DashboardStats)
	admin.Get("/orders", adminHandler.ListAllOrders)
	admin.Get("/users", adminHandler.ListAllUsers)

	// Profile
	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)
	protected.Get("/profile/addresses", profileHandler.ListAddresses)
	protected.Post("/profile/addresses", profileHandler.CreateAddress)
	protected.Put("/profile/addresses/:id", profileHandler.UpdateAddress)
	protected.Delete("/profile/addresses/:id", profileHandler.DeleteAddress)
	protected.Post("/profile/push-tokens", profileHandler.RegisterPushToken)
}
