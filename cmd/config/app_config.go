package config

import (
	"context"
	"os"
	"path/filepath"

	"SlimMom-Backend/internal/api/handlers"
	"SlimMom-Backend/internal/api/routes"
	"SlimMom-Backend/internal/metrics"
	"SlimMom-Backend/internal/middleware"
	"SlimMom-Backend/internal/utils"
	"SlimMom-Backend/internal/utils/mailing"
	"SlimMom-Backend/internal/utils/ratelimit"
	"SlimMom-Backend/internal/utils/storage"
	"SlimMom-Backend/pkg/contact"
	"SlimMom-Backend/pkg/diary"
	"SlimMom-Backend/pkg/jwt"
	"SlimMom-Backend/pkg/product"
	"SlimMom-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	cfg := utils.Get()
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging, metrics and limiter
	err := os.MkdirAll(cfg.LogDir, os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		filepath.Join(cfg.LogDir, "app.log"),
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(middlewares.LoggerMiddleware(file))

	appMetrics := metrics.NewMetrics("slimmom")
	app.Use(appMetrics.Middleware())

	var limiterStorage fiber.Storage
	if cfg.RedisAddr != "" {
		redisStorage, err := ratelimit.NewRedisStorage(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warnw("rate limiter falls back to memory storage", "error", err)
		} else {
			limiterStorage = redisStorage
		}
	}
	app.Use(middlewares.RateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, limiterStorage))

	// utils
	var mailer mailing.Mailer
	if cfg.SMTPHost != "" {
		mailer, err = mailing.NewSMTPMailer(mailing.LoadMailConfig())
		if err != nil {
			log.Warnw("verification emails disabled", "error", err)
		}
	}

	var s3 storage.AwsS3
	if cfg.AWSS3Bucket != "" {
		s3, err = storage.NewAwsS3(context.Background(), storage.LoadS3Config())
		if err != nil {
			log.Warnw("avatar uploads disabled", "error", err)
		}
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	productRepository := product.NewProductRepository(db)
	diaryRepository := diary.NewDiaryRepository(db)
	contactRepository := contact.NewContactRepository(db)

	// Service
	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	userService := user.NewUserService(userRepository, jwtService, mailer, s3, user.LoadUserConfig())
	productService := product.NewProductService(productRepository)
	diaryService := diary.NewDiaryService(diaryRepository, productRepository)
	contactService := contact.NewContactService(contactRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	productHandler := handlers.NewProductHandler(productService, validator)
	diaryHandler := handlers.NewDiaryHandler(diaryService, productService, validator)
	contactHandler := handlers.NewContactHandler(contactService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		ProductHandler: productHandler,
		DiaryHandler:   diaryHandler,
		ContactHandler: contactHandler,
		Middleware:     middlewares,
		UserService:    userService,
		Metrics:        appMetrics,
	}
	routesConfig.Setup()
	return app, nil
}
