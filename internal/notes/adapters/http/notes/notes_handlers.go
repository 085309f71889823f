// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/notes/adapters/http/middleware"
	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/app/dto"
	"notekeeper/internal/notes/ports/api"
	"notekeeper/pkg/logger"
)

// Константы сообщений ответов и логирования.
const (
	MsgNoteCreated   = "Note created successfully"
	MsgNotesListed   = "Notes retrieved successfully"
	MsgNoteRetrieved = "Note retrieved successfully"
	MsgNoteUpdated   = "Note updated successfully"
	MsgNoteDeleted   = "Note deleted successfully"
	MsgStatsComputed = "Notes statistics retrieved successfully"

	ErrMsgInvalidRequestBody = "Invalid request body"

	LogAPICall = "api call"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notesService api.NoteService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notesService api.NoteService) *Handler {
	return &Handler{
		notesService: notesService,
	}
}

// CreateNote обрабатывает POST /api/notes.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	requestCtx := middleware.RequestContext(ctx)
	note, err := h.notesService.CreateNote(requestCtx, req.Title, req.Content)
	if err != nil {
		return err
	}

	logAPICall(ctx, req, note)
	return send(ctx, fiber.StatusCreated, dto.OK(MsgNoteCreated, note))
}

// ListNotes обрабатывает GET /api/notes.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	notes, err := h.notesService.ListNotes(middleware.RequestContext(ctx))
	if err != nil {
		return err
	}

	logAPICall(ctx, nil, zap.Int("count", len(notes)))
	return send(ctx, fiber.StatusOK, dto.OKWithCount(MsgNotesListed, notes, len(notes)))
}

// GetNote обрабатывает GET /api/notes/:id.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	note, err := h.notesService.GetNote(middleware.RequestContext(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	logAPICall(ctx, nil, note)
	return send(ctx, fiber.StatusOK, dto.OK(MsgNoteRetrieved, note))
}

// UpdateNote обрабатывает PUT /api/notes/:id.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	var req dto.UpdateNoteRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	note, err := h.notesService.UpdateNote(middleware.RequestContext(ctx), ctx.Params("id"), req.Patch())
	if err != nil {
		return err
	}

	logAPICall(ctx, req, note)
	return send(ctx, fiber.StatusOK, dto.OK(MsgNoteUpdated, note))
}

// DeleteNote обрабатывает DELETE /api/notes/:id.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	note, err := h.notesService.DeleteNote(middleware.RequestContext(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	logAPICall(ctx, nil, note)
	return send(ctx, fiber.StatusOK, dto.OK(MsgNoteDeleted, note))
}

// Stats обрабатывает GET /api/notes/stats.
func (h *Handler) Stats(ctx fiber.Ctx) error {
	stats, err := h.notesService.Stats(middleware.RequestContext(ctx))
	if err != nil {
		return err
	}

	logAPICall(ctx, nil, stats)
	return send(ctx, fiber.StatusOK, dto.OK(MsgStatsComputed, stats))
}

// bindBody разбирает JSON-тело; пустое тело оставляет значения по умолчанию.
func bindBody(ctx fiber.Ctx, out any) error {
	if len(ctx.Body()) == 0 {
		return nil
	}
	if err := ctx.Bind().Body(out); err != nil {
		return app.NewValidationError(ErrMsgInvalidRequestBody)
	}
	return nil
}

func send(ctx fiber.Ctx, status int, body dto.Response) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func logAPICall(ctx fiber.Ctx, request, result any) {
	requestCtx := middleware.RequestContext(ctx)
	fields := []zap.Field{
		zap.String("endpoint", ctx.Path()),
		zap.String("method", ctx.Method()),
	}
	if request != nil {
		fields = append(fields, zap.Any("request", request))
	}
	if field, ok := result.(zap.Field); ok {
		fields = append(fields, field)
	} else if result != nil {
		fields = append(fields, zap.Any("response", result))
	}
	logger.Log(requestCtx).Debug(requestCtx, LogAPICall, fields...)
}
