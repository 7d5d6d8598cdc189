package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/akashthakur2701/GitWrite/internal/config"
	"github.com/akashthakur2701/GitWrite/internal/db"
	"github.com/akashthakur2701/GitWrite/internal/handlers"
	"github.com/akashthakur2701/GitWrite/internal/middleware"
	"github.com/akashthakur2701/GitWrite/internal/services"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	database, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Background counter repair
	reconciler := services.NewReconciler(database)
	reconciler.Start(cfg.ReconcileInterval)
	defer reconciler.Stop()

	engagement := services.NewEngagementService(database)
	blog := services.NewBlogService(database)
	search := services.NewSearchService(database)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "GitWrite API is running successfully",
			"version":   version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	authHandler := handlers.NewAuthHandler(database, cfg.JWTSecret)
	blogHandler := handlers.NewBlogHandler(blog)
	commentHandler := handlers.NewCommentHandler(blog)
	likeHandler := handlers.NewLikeHandler(engagement, reconciler)
	bookmarkHandler := handlers.NewBookmarkHandler(engagement, reconciler)
	followHandler := handlers.NewFollowHandler(engagement)
	searchHandler := handlers.NewSearchHandler(search)

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	throttled := middleware.RateLimit(limiter)

	api := router.Group("/api/v1")

	user := api.Group("/user")
	{
		user.POST("/signup", authHandler.Signup)
		user.POST("/signin", authHandler.Signin)
	}

	authorized := api.Group("/")
	authorized.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		authorized.POST("/blog", blogHandler.Create)
		authorized.PUT("/blog/:id", blogHandler.Update)
		authorized.GET("/blog/bulk", blogHandler.Bulk)
		authorized.GET("/blog/:id", blogHandler.Get)

		authorized.POST("/comment", commentHandler.Create)
		authorized.GET("/comment/post/:postId", commentHandler.ListForPost)
		authorized.DELETE("/comment/:commentId", commentHandler.Delete)

		authorized.POST("/like/:postId", throttled, likeHandler.Toggle)
		authorized.GET("/like/:postId/status", likeHandler.Status)

		authorized.POST("/bookmark/:postId", throttled, bookmarkHandler.Toggle)
		authorized.GET("/bookmark/:postId/status", bookmarkHandler.Status)
		authorized.GET("/bookmark/my-bookmarks", bookmarkHandler.MyBookmarks)

		authorized.POST("/follow/:targetUserId", throttled, followHandler.Toggle)
		authorized.GET("/follow/:targetUserId/status", followHandler.Status)
		authorized.GET("/follow/followers/:userId", followHandler.Followers)
		authorized.GET("/follow/following/:userId", followHandler.Following)

		authorized.GET("/search/blogs", searchHandler.Blogs)
		authorized.GET("/search/users", searchHandler.Users)
		authorized.GET("/search/suggestions", searchHandler.Suggestions)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("GitWrite server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
