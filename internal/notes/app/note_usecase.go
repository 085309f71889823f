// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/api"
	"notekeeper/internal/notes/ports/repositories"
	"notekeeper/pkg/logger"
)

// NoteUseCase проверяет входные данные и делегирует операции хранилищу.
// Валидация всегда выполняется до изменения хранилища.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
	now      func() time.Time
}

var _ api.NoteService = (*NoteUseCase)(nil)

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) *NoteUseCase {
	return &NoteUseCase{
		noteRepo: noteRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateNote создает заметку; хотя бы одно из полей должно быть непустым.
func (uc *NoteUseCase) CreateNote(ctx context.Context, title, content string) (*entities.Note, error) {
	if title == "" && content == "" {
		return nil, NewValidationError(MsgEmptyNote)
	}

	note, err := uc.noteRepo.Create(ctx, title, content)
	if err != nil {
		return nil, uc.internal(ctx, "create", err)
	}
	return note, nil
}

// ListNotes возвращает все заметки в порядке создания.
func (uc *NoteUseCase) ListNotes(ctx context.Context) ([]entities.Note, error) {
	notes, err := uc.noteRepo.FindAll(ctx)
	if err != nil {
		return nil, uc.internal(ctx, "list", err)
	}
	return notes, nil
}

// GetNote возвращает заметку по идентификатору.
func (uc *NoteUseCase) GetNote(ctx context.Context, id string) (*entities.Note, error) {
	if !entities.IsValidID(id) {
		return nil, invalidID(id)
	}

	note, err := uc.noteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, uc.internal(ctx, "get", err)
	}
	if note == nil {
		return nil, noteNotFound(id)
	}
	return note, nil
}

// UpdateNote применяет частичное обновление.
// Порядок проверок: формат id, существование заметки, наличие непустого поля.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, id string, patch entities.NotePatch) (*entities.Note, error) {
	if !entities.IsValidID(id) {
		return nil, invalidID(id)
	}

	existing, err := uc.noteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, uc.internal(ctx, "update", err)
	}
	if existing == nil {
		return nil, noteNotFound(id)
	}

	if !patch.HasValue() {
		return nil, NewValidationError(MsgEmptyNote)
	}

	updated, err := uc.noteRepo.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, uc.internal(ctx, "update", err)
	}
	if updated == nil {
		// удалена между проверкой и обновлением
		return nil, noteNotFound(id)
	}
	return updated, nil
}

// DeleteNote удаляет заметку и возвращает удаленное значение.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, id string) (*entities.Note, error) {
	if !entities.IsValidID(id) {
		return nil, invalidID(id)
	}

	deleted, err := uc.noteRepo.DeleteByID(ctx, id)
	if err != nil {
		return nil, uc.internal(ctx, "delete", err)
	}
	if deleted == nil {
		return nil, noteNotFound(id)
	}
	return deleted, nil
}

// Stats считает статистику по свежему снимку заметок;
// totalNotes берется из счетчика хранилища.
func (uc *NoteUseCase) Stats(ctx context.Context) (entities.Stats, error) {
	notes, err := uc.noteRepo.FindAll(ctx)
	if err != nil {
		return entities.Stats{}, uc.internal(ctx, "stats", err)
	}

	total, err := uc.Count(ctx)
	if err != nil {
		return entities.Stats{}, err
	}

	stats := entities.ComputeStats(notes, uc.now())
	stats.TotalNotes = total
	return stats, nil
}

// Count возвращает количество заметок в хранилище.
func (uc *NoteUseCase) Count(ctx context.Context) (int, error) {
	count, err := uc.noteRepo.Count(ctx)
	if err != nil {
		return 0, uc.internal(ctx, "count", err)
	}
	return count, nil
}

func (uc *NoteUseCase) internal(ctx context.Context, op string, err error) error {
	logger.Log(ctx).Error(ctx, "note repository failure", zap.String("operation", op), zap.Error(err))
	return NewInternalError(err)
}
