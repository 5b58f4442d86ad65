package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jwhan/playgrid-backend/config"
	"github.com/jwhan/playgrid-backend/internal/app/controller"
	"github.com/jwhan/playgrid-backend/internal/middleware"
)

type Router struct {
	authController        *controller.AuthController
	userController        *controller.UserController
	gameController        *controller.GameController
	tagController         *controller.TagController
	devController         *controller.DevController
	libraryController     *controller.LibraryController
	friendshipController  *controller.FriendshipController
	reviewController      *controller.ReviewController
	saveController        *controller.SaveController
	eventController       *controller.EventController
	achievementController *controller.AchievementController
	newsController        *controller.NewsController
	uploadController      *controller.UploadController
	realtimeController    *controller.RealtimeController
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	gameController *controller.GameController,
	tagController *controller.TagController,
	devController *controller.DevController,
	libraryController *controller.LibraryController,
	friendshipController *controller.FriendshipController,
	reviewController *controller.ReviewController,
	saveController *controller.SaveController,
	eventController *controller.EventController,
	achievementController *controller.AchievementController,
	newsController *controller.NewsController,
	uploadController *controller.UploadController,
	realtimeController *controller.RealtimeController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:        authController,
		userController:        userController,
		gameController:        gameController,
		tagController:         tagController,
		devController:         devController,
		libraryController:     libraryController,
		friendshipController:  friendshipController,
		reviewController:      reviewController,
		saveController:        saveController,
		eventController:       eventController,
		achievementController: achievementController,
		newsController:        newsController,
		uploadController:      uploadController,
		realtimeController:    realtimeController,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "PLAYGRID API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate())
		{
			users.GET("", r.authMiddleware.RequireRole("admin"), r.userController.ListUsers)
			users.POST("/setup", r.authMiddleware.RequireRole("admin"), r.userController.CreateWithSetup)
			users.GET("/:id", r.userController.GetUser)
			users.PATCH("/:id", r.userController.UpdateUser)
			users.DELETE("/:id", r.authMiddleware.RequireRole("admin"), r.userController.DeleteUser)
		}

		games := v1.Group("/games")
		{
			games.GET("", r.gameController.ListGames)
			games.GET("/:id", r.gameController.GetGame)
			games.GET("/:id/reviews", r.reviewController.GetGameReviews)
			games.GET("/:id/achievements", r.achievementController.ListGameAchievements)
			games.GET("/:id/events", r.eventController.ListGameEvents)
			games.GET("/:id/news", r.newsController.ListGameNews)

			admin := games.Group("")
			admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
			{
				admin.POST("", r.gameController.CreateGame)
				admin.POST("/complete", r.gameController.CreateCompleteGame)
				admin.PATCH("/:id", r.gameController.UpdateGame)
				admin.DELETE("/:id", r.gameController.DeleteGame)
				admin.POST("/:id/tags/:tagId", r.gameController.AddTag)
				admin.DELETE("/:id/tags/:tagId", r.gameController.RemoveTag)
				admin.POST("/:id/devs/:devId", r.gameController.AddDev)
				admin.DELETE("/:id/devs/:devId", r.gameController.RemoveDev)
				admin.POST("/:id/achievements", r.achievementController.CreateAchievement)
				admin.POST("/:id/news", r.newsController.PublishNews)
			}

			authed := games.Group("")
			authed.Use(r.authMiddleware.Authenticate())
			{
				authed.POST("/:id/reviews", r.reviewController.CreateReview)
				authed.PATCH("/:id/reviews", r.reviewController.UpdateReview)
				authed.DELETE("/:id/reviews", r.reviewController.DeleteReview)
			}
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", r.tagController.ListTags)
			tags.GET("/:id", r.tagController.GetTag)

			admin := tags.Group("")
			admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
			{
				admin.POST("", r.tagController.CreateTag)
				admin.PATCH("/:id", r.tagController.UpdateTag)
				admin.DELETE("/:id", r.tagController.DeleteTag)
			}
		}

		devs := v1.Group("/devs")
		{
			devs.GET("", r.devController.ListDevs)
			devs.GET("/:id", r.devController.GetDev)

			admin := devs.Group("")
			admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
			{
				admin.POST("", r.devController.CreateDev)
				admin.PATCH("/:id", r.devController.UpdateDev)
				admin.DELETE("/:id", r.devController.DeleteDev)
			}
		}

		library := v1.Group("/library")
		library.Use(r.authMiddleware.Authenticate())
		{
			library.GET("", r.libraryController.GetLibrary)
			library.POST("", r.libraryController.AddToLibrary)
			library.PATCH("/:gameId", r.libraryController.UpdateEntry)
			library.DELETE("/:gameId", r.libraryController.RemoveFromLibrary)
		}

		friends := v1.Group("/friends")
		friends.Use(r.authMiddleware.Authenticate())
		{
			friends.GET("", r.friendshipController.ListFriendships)
			friends.POST("", r.friendshipController.SendRequest)
			friends.POST("/:friendId/accept", r.friendshipController.AcceptRequest)
			friends.POST("/:friendId/block", r.friendshipController.BlockUser)
			friends.DELETE("/:friendId", r.friendshipController.RemoveFriendship)
		}

		saves := v1.Group("/saves")
		saves.Use(r.authMiddleware.Authenticate())
		{
			saves.GET("", r.saveController.ListSaves)
			saves.GET("/:gameId", r.saveController.GetSave)
			saves.POST("/:gameId", r.saveController.CreateSave)
			saves.PUT("/:gameId", r.saveController.UpdateSave)
			saves.DELETE("/:gameId", r.saveController.DeleteSave)
		}

		events := v1.Group("/events")
		{
			events.GET("", r.eventController.ListActiveEvents)
			events.GET("/:id", r.eventController.GetEvent)

			admin := events.Group("")
			admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
			{
				admin.POST("", r.eventController.CreateEvent)
				admin.PATCH("/:id", r.eventController.UpdateEvent)
				admin.DELETE("/:id", r.eventController.DeleteEvent)
			}
		}

		achievements := v1.Group("/achievements")
		achievements.Use(r.authMiddleware.Authenticate())
		{
			achievements.GET("/unlocked", r.achievementController.ListMyUnlocks)
			achievements.POST("/:id/unlock", r.achievementController.Unlock)
			achievements.DELETE("/:id/unlock", r.achievementController.RemoveUnlock)
			achievements.DELETE("/:id", r.authMiddleware.RequireRole("admin"), r.achievementController.DeleteAchievement)
		}

		news := v1.Group("/news")
		{
			news.GET("/:id", r.newsController.GetNews)

			admin := news.Group("")
			admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
			{
				admin.PATCH("/:id", r.newsController.UpdateNews)
				admin.DELETE("/:id", r.newsController.DeleteNews)
			}
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}

		v1.GET("/ws", r.authMiddleware.Authenticate(), r.realtimeController.Connect)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
