package server

import (
	"notes-api/internal/config"
	"notes-api/internal/controller"
	"notes-api/internal/pkg/serverutils"
	"notes-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const accessLogFormat = "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}\n"

// NewApp wires middleware and routes into a fiber app. Middleware order is
// request id, access log, CORS, then the error boundary, so CORS headers and
// the access log cover rendered errors too.
func NewApp(cfg config.ServerConfig, noteService service.INoteService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "notes-api",
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          serverutils.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{Format: accessLogFormat}))
	app.Use(serverutils.CorsMiddleware())
	app.Use(serverutils.ErrorHandlerMiddleware())

	controller.NewHealthController().RegisterRoutes(app)
	controller.NewNoteController(noteService).RegisterRoutes(app)

	return app
}
