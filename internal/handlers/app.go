package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-resume-expert/internal/handlers/views"
	"alfredoptarigan/ats-resume-expert/internal/models"
	"alfredoptarigan/ats-resume-expert/internal/services"
)

// The transport limit sits well above the upload cap so that oversized resumes
// reach ReadUpload and come back as a warning instead of a dropped connection.
const (
	minBodyLimit    = 64 << 20
	bodyLimitFactor = 8
)

func bodyLimit(maxFileSize int64) int {
	limit := maxFileSize * bodyLimitFactor
	if limit < minBodyLimit {
		limit = minBodyLimit
	}
	return int(limit)
}

// NewApp wires the page, the JSON API and the middleware around one dispatcher.
func NewApp(dispatcher services.Dispatcher, maxFileSize int64) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "ATS Resume Expert",
		Views:        html.NewFileSystem(http.FS(views.FS), ".html"),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    bodyLimit(maxFileSize),
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestLogger())

	pageHandler := NewPageHandler(dispatcher, maxFileSize)
	analyzeHandler := NewAnalyzeHandler(dispatcher, maxFileSize)

	app.Get("/", pageHandler.HandleIndex)
	app.Post("/", pageHandler.HandleSubmit)

	api := app.Group("/api/v1", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	api.Post("/analyze", analyzeHandler.HandleAnalyze)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

// requestLogger logs every request with zerolog
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var e *fiber.Error
			if errors.As(err, &e) {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg(fmt.Sprintf("%s %s", c.Method(), c.Path()))

		return err
	}
}
