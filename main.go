package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"gofermarket/internal/config"
	"gofermarket/internal/database"
	"gofermarket/internal/handlers"
	"gofermarket/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureListingIndexes(db); err != nil {
		log.Printf("listing index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	r := gin.Default()
	r.Static("/public", config.AppEnv.UploadDir)

	r.POST("/auth/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.POST("/auth/login", handlers.Login(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))
	r.POST("/auth/refresh", handlers.Refresh(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/logout", handlers.Logout(db))

	r.GET("/listings", handlers.GetOpenListings(db))

	auth := r.Group("/")
	auth.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		auth.GET("/listings/mine", handlers.GetMyListings(db))
		auth.POST("/listings", handlers.CreateListing(db))
		auth.DELETE("/listings/:id", handlers.DeleteListing(db))

		auth.POST("/orders", handlers.AcceptListing(db))
		auth.GET("/orders", handlers.GetMyOrders(db))
		auth.DELETE("/orders/:id", handlers.CancelOrder(db))

		auth.POST("/uploads", handlers.UploadImage(config.AppEnv.UploadDir))
		auth.PUT("/user/avatar", handlers.UpdateAvatar(db, config.AppEnv.UploadDir))

		auth.GET("/user/addresses", handlers.GetUserAddresses(db))
		auth.POST("/user/addresses", handlers.CreateUserAddress(db))
		auth.PUT("/user/addresses/:id", handlers.UpdateUserAddress(db))
		auth.DELETE("/user/addresses/:id", handlers.DeleteUserAddress(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
