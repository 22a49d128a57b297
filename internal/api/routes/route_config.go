package routes

import (
	"github.com/gofiber/fiber/v2"

	"payroll-receipts-backend/internal/api/handlers"
	"payroll-receipts-backend/internal/middleware"
	"payroll-receipts-backend/pkg/jwt"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	PayslipHandler handlers.PayslipHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Payslips()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Payslips() {
	payslips := c.App.Group("/api/v1/payslips", c.Middleware.AuthMiddleware(c.JWTService))

	// Listing and exports are shared by both roles; the scope comes from the
	// token (admins see owned records, employees see their own).
	payslips.Get("", c.PayslipHandler.GetPayslips)
	payslips.Get("/export/xlsx", c.PayslipHandler.ExportXLSX)
	payslips.Get("/export/pdf", c.PayslipHandler.ExportPDF)

	// Admin record management
	payslips.Post("", c.Middleware.AdminOnly(), c.PayslipHandler.CreatePayslip)
	payslips.Put("/:id", c.Middleware.AdminOnly(), c.PayslipHandler.UpdatePayslip)
	payslips.Delete("/:id", c.Middleware.AdminOnly(), c.PayslipHandler.DeletePayslip)
	payslips.Get("/lookup/:cuil", c.Middleware.AdminOnly(), c.PayslipHandler.LookupCUIL)

	// Employee actions
	payslips.Patch("/:id/sign", c.PayslipHandler.SignPayslip)
	payslips.Get("/:id/view", c.PayslipHandler.ViewPayslip)
}
