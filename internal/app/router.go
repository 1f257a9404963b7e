package app

import (
	"log"
	"time"

	"socialite/internal/config"
	"socialite/internal/middleware"
	"socialite/internal/model"
	"socialite/internal/repository"
	"socialite/internal/service"
	"socialite/internal/util"
	"socialite/internal/websocket"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	if cfg.ServerPort == "5000" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(corsMiddleware(cfg.ClientURL))

	if cfg.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		r.Use(rateLimiter.Middleware())
		log.Printf("Rate limiting enabled: %d req/sec, burst: %d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	db, err := initDB(cfg)
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.FriendRequest{},
		&model.Friendship{},
		&model.Block{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
		&model.Message{},
		&model.MessageReaction{},
		&model.Notification{},
	); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	redisClient := initRedisWithRetry(cfg)
	rabbitMQ := initRabbitMQWithRetry(cfg)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db, redisClient)
	commentRepo := repository.NewCommentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	store := repository.NewStore(db, redisClient)

	// WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("WebSocket hub started")

	// Cloudinary is optional; uploads are rejected when not configured.
	var cloudinaryClient *util.CloudinaryClient
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cloudinaryClient, err = util.NewCloudinaryClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v. Media uploads will be disabled.", err)
		} else {
			log.Println("Cloudinary initialized successfully")
		}
	} else {
		log.Println("Cloudinary credentials not configured. Media uploads will be disabled.")
	}

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	userService := service.NewUserService(userRepo)
	notificationService := service.NewNotificationService(notificationRepo, rabbitMQ)
	friendService := service.NewFriendService(store, userRepo, notificationService)
	blockService := service.NewBlockService(store, userRepo)
	visibility := service.NewVisibilityResolver(store.Friendships)
	postService := service.NewPostService(postRepo, userRepo, likeRepo, commentRepo, store.Friendships, visibility)
	messageService := service.NewMessageService(messageRepo, userRepo, store, notificationService)

	if rabbitMQ != nil {
		notificationWorker := service.NewNotificationWorker(rabbitMQ, wsHub)
		if err := notificationWorker.Start(); err != nil {
			log.Printf("Warning: Failed to start notification worker: %v", err)
		} else {
			log.Println("Notification worker started successfully")
		}
	} else {
		log.Println("Notification worker not started - RabbitMQ connection failed. Notifications are stored but not pushed.")
	}

	// Handlers
	authHandler := NewAuthHandler(authService, userService)
	userHandler := NewUserHandler(userService, cloudinaryClient)
	friendHandler := NewFriendHandler(friendService, blockService)
	postHandler := NewPostHandler(postService, cloudinaryClient)
	messageHandler := NewMessageHandler(messageService, cloudinaryClient)
	notificationHandler := NewNotificationHandler(notificationService)

	authRequired := middleware.Auth(cfg.JWTSecret)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", authRequired, authHandler.GetMe)
		}

		users := api.Group("/users")
		users.Use(authRequired)
		{
			users.GET("/search", userHandler.SearchUsers)
			users.GET("/search/phone", userHandler.SearchByPhone)
			users.PUT("/me", userHandler.UpdateProfile)
			users.POST("/me/avatar", userHandler.UploadAvatar)
			users.GET("/:id", userHandler.GetUser)
		}

		friends := api.Group("/friends")
		friends.Use(authRequired)
		{
			friends.GET("", friendHandler.GetFriends)
			friends.GET("/status/:userID", friendHandler.GetFriendStatus)
			friends.POST("/requests", friendHandler.SendRequest)
			friends.GET("/requests", friendHandler.GetPendingRequests)
			friends.POST("/requests/:id/accept", friendHandler.AcceptRequest)
			friends.POST("/requests/:id/reject", friendHandler.RejectRequest)
			friends.DELETE("/requests/:receiverID", friendHandler.CancelRequest)
			friends.POST("/blocks", friendHandler.Block)
			friends.GET("/blocks", friendHandler.GetBlockedUsers)
			friends.DELETE("/blocks/:userID", friendHandler.Unblock)
			friends.DELETE("/:userID", friendHandler.Unfriend)
		}

		posts := api.Group("/posts")
		posts.Use(authRequired)
		{
			posts.POST("", postHandler.CreatePost)
			posts.POST("/upload", postHandler.CreatePostWithImage)
			posts.GET("/feed", postHandler.GetFeed)
			posts.GET("/explore", postHandler.GetExploreFeed)
			posts.GET("/user/:userID", postHandler.GetPostsByUser)
			posts.GET("/:id/comments", postHandler.GetComments)
			posts.POST("/:id/comments", postHandler.AddComment)
			posts.POST("/:id/like", postHandler.LikePost)
			posts.DELETE("/:id/like", postHandler.UnlikePost)
			posts.PUT("/:id/privacy", postHandler.UpdatePrivacy)
			posts.GET("/:id", postHandler.GetPost)
			posts.DELETE("/:id", postHandler.DeletePost)
		}

		messages := api.Group("/messages")
		messages.Use(authRequired)
		{
			messages.POST("", messageHandler.SendMessage)
			messages.POST("/media", messageHandler.SendMediaMessage)
			messages.GET("/unread/count", messageHandler.GetUnreadCount)
			messages.POST("/:id/reactions", messageHandler.React)
			messages.GET("/:userID", messageHandler.GetConversation)
		}

		notifications := api.Group("/notifications")
		notifications.Use(authRequired)
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.GET("/unread/count", notificationHandler.GetUnreadCount)
			notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
			notifications.PUT("/read-all", notificationHandler.MarkAllAsRead)
		}
	}

	r.GET("/ws", func(c *gin.Context) {
		websocket.ServeWS(wsHub, cfg.JWTSecret)(c.Writer, c.Request)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// initRedisWithRetry attempts to connect to Redis with exponential backoff.
// Returns nil after exhausting retries; repositories fall back to the
// database when caching is unavailable.
func initRedisWithRetry(cfg *config.Config) *util.RedisClient {
	maxRetries := 10
	initialDelay := 2 * time.Second
	maxDelay := 30 * time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		redisClient, err := util.NewRedisClient(cfg)
		if err == nil {
			log.Printf("Redis connected successfully on attempt %d", attempt)
			return redisClient
		}

		if attempt < maxRetries {
			delay := initialDelay * time.Duration(1<<uint(attempt-1))
			if delay > maxDelay {
				delay = maxDelay
			}
			log.Printf("Failed to connect to Redis (attempt %d/%d): %v. Retrying in %v...", attempt, maxRetries, err, delay)
			time.Sleep(delay)
		} else {
			log.Printf("Warning: Failed to connect to Redis after %d attempts: %v. Caching will be disabled.", maxRetries, err)
		}
	}

	return nil
}

// initRabbitMQWithRetry attempts to connect to RabbitMQ with exponential
// backoff. Returns nil after exhausting retries; notifications are then
// persisted without the realtime push.
func initRabbitMQWithRetry(cfg *config.Config) *util.RabbitMQClient {
	maxRetries := 10
	initialDelay := 2 * time.Second
	maxDelay := 30 * time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		rabbitMQ, err := util.NewRabbitMQClient(cfg)
		if err == nil {
			log.Printf("RabbitMQ connected successfully on attempt %d", attempt)
			return rabbitMQ
		}

		if attempt < maxRetries {
			delay := initialDelay * time.Duration(1<<uint(attempt-1))
			if delay > maxDelay {
				delay = maxDelay
			}
			log.Printf("Failed to connect to RabbitMQ (attempt %d/%d): %v. Retrying in %v...", attempt, maxRetries, err, delay)
			time.Sleep(delay)
		} else {
			log.Printf("Warning: Failed to connect to RabbitMQ after %d attempts: %v. Realtime notifications will be disabled.", maxRetries, err)
		}
	}

	return nil
}

func corsMiddleware(clientURL string) gin.HandlerFunc {
	allowedOrigins := []string{
		clientURL,
		"http://localhost:3000",
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", clientURL)
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
