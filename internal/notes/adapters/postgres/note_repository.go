// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/repositories"
	"notekeeper/pkg/logger"
)

const noteColumns = `id, title, content, created_at, updated_at`

// NoteRepository реализует интерфейс repositories.NoteRepository поверх Postgres.
type NoteRepository struct {
	db DBTX
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(db DBTX) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, title, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))

	note := entities.NewNote(title, content, time.Now().UTC())
	log.Debug(ctx, "creating new note", zap.String("noteID", note.ID))

	_, err := r.db.Exec(ctx,
		`INSERT INTO notes (id, title, content, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		note.ID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return &note, nil
}

// FindAll возвращает все заметки в порядке добавления.
func (r *NoteRepository) FindAll(ctx context.Context) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.FindAll"))

	rows, err := r.db.Query(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY seq`)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// FindByID получает заметку по ID.
func (r *NoteRepository) FindByID(ctx context.Context, id string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.FindByID"))

	row := r.db.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)
	return r.singleRow(ctx, log, row, id, "failed to get note")
}

// UpdateByID обновляет переданные поля одним запросом.
func (r *NoteRepository) UpdateByID(ctx context.Context, id string, patch entities.NotePatch) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.UpdateByID"))
	log.Debug(ctx, "updating note", zap.String("noteID", id))

	row := r.db.QueryRow(ctx,
		`UPDATE notes SET title = COALESCE($2, title), content = COALESCE($3, content), updated_at = $4
         WHERE id = $1
         RETURNING `+noteColumns,
		id, patch.Title, patch.Content, time.Now().UTC(),
	)
	return r.singleRow(ctx, log, row, id, "failed to update note")
}

// DeleteByID удаляет заметку и возвращает удаленную строку.
func (r *NoteRepository) DeleteByID(ctx context.Context, id string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.DeleteByID"))
	log.Debug(ctx, "deleting note", zap.String("noteID", id))

	row := r.db.QueryRow(ctx, `DELETE FROM notes WHERE id = $1 RETURNING `+noteColumns, id)
	return r.singleRow(ctx, log, row, id, "failed to delete note")
}

// Count возвращает количество заметок.
func (r *NoteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count); err != nil {
		logger.Log(ctx).Error(ctx, "failed to count notes", zap.Error(err))
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}

func (r *NoteRepository) singleRow(ctx context.Context, log *logger.Logger, row pgx.Row, id, errMsg string) (*entities.Note, error) {
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", id))
			return nil, nil
		}
		log.Error(ctx, errMsg, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &note, nil
}

func scanNote(row pgx.Row) (entities.Note, error) {
	var note entities.Note
	err := row.Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	note.CreatedAt = note.CreatedAt.UTC()
	note.UpdatedAt = note.UpdatedAt.UTC()
	return note, err
}
