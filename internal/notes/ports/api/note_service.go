// Package api определяет интерфейсы сервиса заметок, используемые транспортным уровнем.
package api

import (
	"context"

	"notekeeper/internal/notes/domain/entities"
)

// NoteService определяет операции над заметками, доступные через API.
type NoteService interface {
	CreateNote(ctx context.Context, title, content string) (*entities.Note, error)
	ListNotes(ctx context.Context) ([]entities.Note, error)
	GetNote(ctx context.Context, id string) (*entities.Note, error)
	UpdateNote(ctx context.Context, id string, patch entities.NotePatch) (*entities.Note, error)
	DeleteNote(ctx context.Context, id string) (*entities.Note, error)
	Stats(ctx context.Context) (entities.Stats, error)
}
