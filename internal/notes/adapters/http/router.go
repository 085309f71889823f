// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"notekeeper/internal/notes/adapters/http/middleware"
	"notekeeper/internal/notes/adapters/http/notes"
	"notekeeper/internal/notes/ports/api"
)

// MsgServerRunning - ответ корневого маршрута.
const MsgServerRunning = "Server is Running! 🚀"

// NewApp создает fiber-приложение с централизованным обработчиком ошибок.
func NewApp(cfg fiber.Config) *fiber.App {
	cfg.ErrorHandler = ErrorHandler
	return fiber.New(cfg)
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, notesService api.NoteService) {
	notesHandler := notes.NewHandler(notesService)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware(StatusOf))
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString(MsgServerRunning)
	})

	notesRoutes := app.Group("/api/notes")
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Get("/stats", notesHandler.Stats)
	notesRoutes.Get("/:id", notesHandler.GetNote)
	notesRoutes.Put("/:id", notesHandler.UpdateNote)
	notesRoutes.Patch("/:id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:id", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found: "+c.Method()+" "+c.OriginalURL())
	})
}
