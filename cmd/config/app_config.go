package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"payroll-receipts-backend/internal/api/handlers"
	"payroll-receipts-backend/internal/api/routes"
	"payroll-receipts-backend/internal/middleware"
	"payroll-receipts-backend/internal/utils"
	"payroll-receipts-backend/internal/utils/storage"
	"payroll-receipts-backend/pkg/export"
	"payroll-receipts-backend/pkg/jwt"
	"payroll-receipts-backend/pkg/payslip"
	"payroll-receipts-backend/pkg/user"
	"payroll-receipts-backend/pkg/watermark"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "America/Argentina/Buenos_Aires",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	payslipRepository := payslip.NewPayslipRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	payslipService := payslip.NewPayslipService(payslipRepository, s3)
	exportService := export.NewExportService(payslipRepository)
	watermarkService := watermark.NewWatermarkService()

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	payslipHandler := handlers.NewPayslipHandler(payslipService, exportService, watermarkService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		PayslipHandler: payslipHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
