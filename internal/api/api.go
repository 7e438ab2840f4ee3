// Package api exposes the statement parser over HTTP.
package api

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cleared-dev/statements/internal/buildinfo"
	"github.com/cleared-dev/statements/internal/importer"
	"github.com/cleared-dev/statements/internal/model"
)

// MaxUploadSize caps request bodies accepted by the parse endpoint.
const MaxUploadSize = 10 << 20

// Handler holds the HTTP handlers for the API.
type Handler struct {
	engine *importer.Engine
	logger *slog.Logger
}

// NewHandler creates a Handler backed by engine.
func NewHandler(engine *importer.Engine, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{engine: engine, logger: logger}
}

// NewApp builds a fiber app with all routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "statements " + buildinfo.Version,
		BodyLimit:             MaxUploadSize,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(h.logRequests)
	h.Register(app)
	return app
}

// Register mounts the API routes on router.
func (h *Handler) Register(router fiber.Router) {
	api := router.Group("/api")
	api.Get("/health", h.Health)
	api.Post("/parse", h.Parse)
}

func (h *Handler) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	h.logger.Info("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return err
}

// Health reports liveness and the build version.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// Parse accepts a statement as the raw request body or as the multipart
// field "file" and responds with the parse result.
func (h *Handler) Parse(c *fiber.Ctx) error {
	raw, err := h.readStatement(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	content, err := importer.DecodeText(raw)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(content) == "" {
		return writeError(c, fiber.StatusBadRequest, "request contained no statement content")
	}

	result := h.engine.Parse(content)
	h.logger.Debug("parsed statement",
		"bank", result.BankDetected,
		"success", result.Success,
		"transactions", len(result.Transactions),
	)
	return c.JSON(result)
}

func (h *Handler) readStatement(c *fiber.Ctx) ([]byte, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return c.Body(), nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("no file uploaded, use form field 'file'")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	return data, nil
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(model.ParseResult{
		Success:      false,
		Transactions: []model.ParsedTransaction{},
		BankDetected: model.FormatGeneric,
		Error:        msg,
	})
}
