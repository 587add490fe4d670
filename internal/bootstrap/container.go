package bootstrap

import (
	"context"
	"log"

	"journal-be/internal/config"
	"journal-be/internal/controller"
	"journal-be/internal/pkg/logger"
	"journal-be/internal/pkg/mailer"
	"journal-be/internal/pkg/serverutils"
	"journal-be/internal/repository/memory"
	"journal-be/internal/repository/redisstore"
	"journal-be/internal/repository/unitofwork"
	"journal-be/internal/service"
	"journal-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	UserController  controller.IUserController
	EntryController controller.IEntryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Auth middleware for protected route groups
	JwtMiddleware fiber.Handler

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Session Store (Redis, with in-memory fallback for local dev)
	var sessionStore store.SessionStore

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Sessions held in memory", err)
		sessionStore = memory.NewSessionRepository()
	} else {
		sessionStore = redisstore.NewSessionRepository(rdb)
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Topics.Activity, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.Activity,
		uowFactory,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, sessionStore, emailService, publisherService)
	userService := service.NewUserService(uowFactory, publisherService)
	entryService := service.NewEntryService(uowFactory, publisherService)

	// 5. Controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService)
	entryController := controller.NewEntryController(entryService)

	return &Container{
		AuthController:  authController,
		UserController:  userController,
		EntryController: entryController,
		ConsumerService: consumerService,
		JwtMiddleware:   serverutils.NewJwtMiddleware(sessionStore),
		Logger:          sysLogger,
	}
}
