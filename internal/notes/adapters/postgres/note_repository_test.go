package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/adapters/postgres"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/repositories"
)

const (
	insertQuery = `INSERT INTO notes \(id, title, content, created_at, updated_at\) VALUES \(\$1, \$2, \$3, \$4, \$5\)`
	selectAll   = `SELECT id, title, content, created_at, updated_at FROM notes ORDER BY seq`
	selectByID  = `SELECT id, title, content, created_at, updated_at FROM notes WHERE id = \$1`
	updateQuery = `UPDATE notes SET title = COALESCE\(\$2, title\), content = COALESCE\(\$3, content\), updated_at = \$4`
	deleteQuery = `DELETE FROM notes WHERE id = \$1 RETURNING`
	countQuery  = `SELECT COUNT\(\*\) FROM notes`

	noteID = "3fa85f64-5717-4562-b3fc-2c963f66afa6"
)

var (
	errDatabaseConnection = errors.New("database connection failed")
	columns               = []string{"id", "title", "content", "created_at", "updated_at"}
	createdAt             = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
)

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *postgres.NoteRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return mock, postgres.NewNoteRepository(mock)
}

func ptr(s string) *string { return &s }

func TestNewNoteRepository(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := postgres.NewNoteRepository(mock)
	assert.Implements(t, (*repositories.NoteRepository)(nil), repo)
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("successful note creation", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec(insertQuery).
			WithArgs(pgxmock.AnyArg(), "Test Note", "", pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		note, err := repo.Create(ctx, "Test Note", "")
		require.NoError(t, err)
		require.NotNil(t, note)
		assert.True(t, entities.IsValidID(note.ID))
		assert.Equal(t, "Test Note", note.Title)
		assert.Equal(t, note.CreatedAt, note.UpdatedAt)
	})

	t.Run("database error is wrapped", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec(insertQuery).
			WithArgs(pgxmock.AnyArg(), "t", "c", pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errDatabaseConnection)

		note, err := repo.Create(ctx, "t", "c")
		require.Error(t, err)
		assert.Nil(t, note)
		assert.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), "failed to create note")
	})
}

func TestNoteRepository_FindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("rows are returned in query order", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(selectAll).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(noteID, "first", "", createdAt, createdAt).
				AddRow("9b2f4f0e-8a1f-4f5e-9a43-1c2d3e4f5a6b", "", "second", createdAt, createdAt))

		notes, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "first", notes[0].Title)
		assert.Equal(t, "second", notes[1].Content)
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(selectAll).WillReturnRows(pgxmock.NewRows(columns))

		notes, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("query error", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(selectAll).WillReturnError(errDatabaseConnection)

		notes, err := repo.FindAll(ctx)
		require.Error(t, err)
		assert.Nil(t, notes)
		assert.Contains(t, err.Error(), "failed to list notes")
	})

	t.Run("row iteration error", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(selectAll).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(noteID, "first", "", createdAt, createdAt).
				RowError(0, errDatabaseConnection))

		notes, err := repo.FindAll(ctx)
		require.Error(t, err)
		assert.Nil(t, notes)
	})
}

func TestNoteRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(selectByID).
			WithArgs(noteID).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(noteID, "t", "c", createdAt, createdAt))

		note, err := repo.FindByID(ctx, noteID)
		require.NoError(t, err)
		require.NotNil(t, note)
		assert.Equal(t, entities.Note{ID: noteID, Title: "t", Content: "c", CreatedAt: createdAt, UpdatedAt: createdAt}, *note)
	})

	t.Run("no rows means absent", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(selectByID).WithArgs(noteID).WillReturnError(pgx.ErrNoRows)

		note, err := repo.FindByID(ctx, noteID)
		require.NoError(t, err)
		assert.Nil(t, note)
	})

	t.Run("database error", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(selectByID).WithArgs(noteID).WillReturnError(errDatabaseConnection)

		note, err := repo.FindByID(ctx, noteID)
		require.Error(t, err)
		assert.Nil(t, note)
		assert.Contains(t, err.Error(), "failed to get note")
	})
}

func TestNoteRepository_UpdateByID(t *testing.T) {
	ctx := context.Background()
	updatedAt := createdAt.Add(time.Minute)

	t.Run("only passed fields are sent", func(t *testing.T) {
		mock, repo := newMock(t)
		patch := entities.NotePatch{Title: ptr("x")}
		mock.ExpectQuery(updateQuery).
			WithArgs(noteID, patch.Title, (*string)(nil), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(noteID, "x", "kept", createdAt, updatedAt))

		note, err := repo.UpdateByID(ctx, noteID, patch)
		require.NoError(t, err)
		require.NotNil(t, note)
		assert.Equal(t, "x", note.Title)
		assert.Equal(t, "kept", note.Content)
		assert.Equal(t, createdAt, note.CreatedAt)
		assert.Equal(t, updatedAt, note.UpdatedAt)
	})

	t.Run("missing note is absent", func(t *testing.T) {
		mock, repo := newMock(t)
		patch := entities.NotePatch{Content: ptr("c")}
		mock.ExpectQuery(updateQuery).
			WithArgs(noteID, (*string)(nil), patch.Content, pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		note, err := repo.UpdateByID(ctx, noteID, patch)
		require.NoError(t, err)
		assert.Nil(t, note)
	})

	t.Run("database error", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(updateQuery).
			WithArgs(noteID, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errDatabaseConnection)

		note, err := repo.UpdateByID(ctx, noteID, entities.NotePatch{Title: ptr("x")})
		require.Error(t, err)
		assert.Nil(t, note)
		assert.Contains(t, err.Error(), "failed to update note")
	})
}

func TestNoteRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns deleted row", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(deleteQuery).
			WithArgs(noteID).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(noteID, "t", "", createdAt, createdAt))

		note, err := repo.DeleteByID(ctx, noteID)
		require.NoError(t, err)
		require.NotNil(t, note)
		assert.Equal(t, noteID, note.ID)
	})

	t.Run("missing note is absent", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(deleteQuery).WithArgs(noteID).WillReturnError(pgx.ErrNoRows)

		note, err := repo.DeleteByID(ctx, noteID)
		require.NoError(t, err)
		assert.Nil(t, note)
	})
}

func TestNoteRepository_Count(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(countQuery).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("error", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(countQuery).WillReturnError(errDatabaseConnection)

		count, err := repo.Count(ctx)
		require.Error(t, err)
		assert.Zero(t, count)
	})
}
