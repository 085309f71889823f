// Package memory provides the in-process NoteRepository implementation.
package memory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/repositories"
	"notekeeper/pkg/logger"
)

// NoteRepository хранит заметки в памяти в порядке добавления.
// Мутации выполняются под эксклюзивной блокировкой, чтение - под разделяемой.
type NoteRepository struct {
	mu    sync.RWMutex
	notes []entities.Note
	now   func() time.Time
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// Option настраивает NoteRepository.
type Option func(*NoteRepository)

// WithClock задает источник времени для createdAt и updatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *NoteRepository) {
		r.now = now
	}
}

// NewNoteRepository создает пустое хранилище.
func NewNoteRepository(opts ...Option) *NoteRepository {
	r := &NoteRepository{
		notes: make([]entities.Note, 0),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create добавляет новую заметку.
func (r *NoteRepository) Create(ctx context.Context, title, content string) (*entities.Note, error) {
	r.mu.Lock()
	note := entities.NewNote(title, content, r.now())
	r.notes = append(r.notes, note)
	r.mu.Unlock()

	logger.Log(ctx).Debug(ctx, "note stored", zap.String("method", "memory.Create"), zap.String("noteID", note.ID))
	return &note, nil
}

// FindAll возвращает снимок всех заметок.
func (r *NoteRepository) FindAll(_ context.Context) ([]entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Note, len(r.notes))
	copy(out, r.notes)
	return out, nil
}

// FindByID ищет заметку по идентификатору.
func (r *NoteRepository) FindByID(_ context.Context, id string) (*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, nil
	}
	note := r.notes[idx]
	return &note, nil
}

// UpdateByID применяет патч к заметке.
func (r *NoteRepository) UpdateByID(ctx context.Context, id string, patch entities.NotePatch) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, nil
	}

	updated := patch.Apply(r.notes[idx], r.now())
	r.notes[idx] = updated

	logger.Log(ctx).Debug(ctx, "note replaced", zap.String("method", "memory.UpdateByID"), zap.String("noteID", id))
	return &updated, nil
}

// DeleteByID удаляет заметку и возвращает удаленное значение.
func (r *NoteRepository) DeleteByID(ctx context.Context, id string) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, nil
	}

	deleted := r.notes[idx]
	r.notes = append(r.notes[:idx], r.notes[idx+1:]...)

	logger.Log(ctx).Debug(ctx, "note removed", zap.String("method", "memory.DeleteByID"), zap.String("noteID", id))
	return &deleted, nil
}

// Count возвращает количество заметок.
func (r *NoteRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notes), nil
}

// Clear удаляет все заметки.
func (r *NoteRepository) Clear() {
	r.mu.Lock()
	r.notes = make([]entities.Note, 0)
	r.mu.Unlock()
}

// indexOf вызывается под блокировкой.
func (r *NoteRepository) indexOf(id string) int {
	for i := range r.notes {
		if r.notes[i].ID == id {
			return i
		}
	}
	return -1
}
