// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"

	"notekeeper/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс хранилища заметок.
//
// FindByID, UpdateByID и DeleteByID возвращают (nil, nil), если заметки нет.
// Возвращаемые значения являются копиями: их изменение не влияет на хранилище.
type NoteRepository interface {
	Create(ctx context.Context, title, content string) (*entities.Note, error)
	FindAll(ctx context.Context) ([]entities.Note, error)
	FindByID(ctx context.Context, id string) (*entities.Note, error)
	UpdateByID(ctx context.Context, id string, patch entities.NotePatch) (*entities.Note, error)
	DeleteByID(ctx context.Context, id string) (*entities.Note, error)
	Count(ctx context.Context) (int, error)
}
