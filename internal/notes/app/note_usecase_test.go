package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/adapters/memory"
	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/domain/entities"
)

var errStorage = errors.New("storage unavailable")

func ptr(s string) *string { return &s }

func sampleNote() *entities.Note {
	now := time.Now().UTC()
	return &entities.Note{ID: uuid.NewString(), Title: "t", Content: "c", CreatedAt: now, UpdatedAt: now}
}

func TestCreateNote(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		title      string
		content    string
		setupMocks func(repo *mockNoteRepository)
		wantKind   error
	}{
		{
			name:  "title only",
			title: "A",
			setupMocks: func(repo *mockNoteRepository) {
				repo.On("Create", mock.Anything, "A", "").Return(sampleNote(), nil)
			},
		},
		{
			name:    "content only",
			content: "body",
			setupMocks: func(repo *mockNoteRepository) {
				repo.On("Create", mock.Anything, "", "body").Return(sampleNote(), nil)
			},
		},
		{
			name:       "both empty is rejected before storage",
			setupMocks: func(*mockNoteRepository) {},
			wantKind:   app.ErrValidation,
		},
		{
			name:  "storage failure becomes internal error",
			title: "A",
			setupMocks: func(repo *mockNoteRepository) {
				repo.On("Create", mock.Anything, "A", "").Return(nil, errStorage)
			},
			wantKind: app.ErrInternal,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockNoteRepository)
			tc.setupMocks(repo)
			uc := app.NewNoteUseCase(repo)

			note, err := uc.CreateNote(ctx, tc.title, tc.content)
			if tc.wantKind != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantKind)
				assert.Nil(t, note)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, note)
			}
			repo.AssertExpectations(t)
		})
	}

	t.Run("validation message", func(t *testing.T) {
		uc := app.NewNoteUseCase(new(mockNoteRepository))
		_, err := uc.CreateNote(ctx, "", "")

		var appErr *app.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, app.MsgEmptyNote, appErr.Message)
	})

	t.Run("internal error keeps cause", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("Create", mock.Anything, "A", "").Return(nil, errStorage)
		uc := app.NewNoteUseCase(repo)

		_, err := uc.CreateNote(ctx, "A", "")
		assert.ErrorIs(t, err, errStorage)
	})
}

func TestGetNote(t *testing.T) {
	ctx := context.Background()
	existing := sampleNote()

	t.Run("malformed id never reaches storage", func(t *testing.T) {
		repo := new(mockNoteRepository)
		uc := app.NewNoteUseCase(repo)

		_, err := uc.GetNote(ctx, "not-a-uuid")
		require.ErrorIs(t, err, app.ErrValidation)
		assert.Equal(t, "Invalid UUID format: not-a-uuid", err.Error())
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown id", func(t *testing.T) {
		id := uuid.NewString()
		repo := new(mockNoteRepository)
		repo.On("FindByID", mock.Anything, id).Return(nil, nil)

		_, err := app.NewNoteUseCase(repo).GetNote(ctx, id)
		require.ErrorIs(t, err, app.ErrNotFound)
		assert.Equal(t, "Note not found with id: "+id, err.Error())
	})

	t.Run("found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

		note, err := app.NewNoteUseCase(repo).GetNote(ctx, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, existing, note)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("FindByID", mock.Anything, existing.ID).Return(nil, errStorage)

		_, err := app.NewNoteUseCase(repo).GetNote(ctx, existing.ID)
		assert.ErrorIs(t, err, app.ErrInternal)
	})
}

func TestUpdateNote(t *testing.T) {
	ctx := context.Background()
	existing := sampleNote()

	t.Run("invalid id checked first", func(t *testing.T) {
		repo := new(mockNoteRepository)
		_, err := app.NewNoteUseCase(repo).UpdateNote(ctx, "bad", entities.NotePatch{})
		assert.ErrorIs(t, err, app.ErrValidation)
		repo.AssertExpectations(t)
	})

	t.Run("missing note checked before payload", func(t *testing.T) {
		id := uuid.NewString()
		repo := new(mockNoteRepository)
		repo.On("FindByID", mock.Anything, id).Return(nil, nil)

		_, err := app.NewNoteUseCase(repo).UpdateNote(ctx, id, entities.NotePatch{})
		assert.ErrorIs(t, err, app.ErrNotFound)
		repo.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty payload is rejected", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

		_, err := app.NewNoteUseCase(repo).UpdateNote(ctx, existing.ID, entities.NotePatch{Title: ptr("")})
		assert.ErrorIs(t, err, app.ErrValidation)
		repo.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("patch is forwarded", func(t *testing.T) {
		patch := entities.NotePatch{Title: ptr("x"), Content: ptr("")}
		want := *existing
		want.Title = "x"
		want.Content = ""

		repo := new(mockNoteRepository)
		repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("UpdateByID", mock.Anything, existing.ID, patch).Return(&want, nil)

		got, err := app.NewNoteUseCase(repo).UpdateNote(ctx, existing.ID, patch)
		require.NoError(t, err)
		assert.Equal(t, &want, got)
		repo.AssertExpectations(t)
	})

	t.Run("note removed concurrently", func(t *testing.T) {
		patch := entities.NotePatch{Title: ptr("x")}
		repo := new(mockNoteRepository)
		repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("UpdateByID", mock.Anything, existing.ID, patch).Return(nil, nil)

		_, err := app.NewNoteUseCase(repo).UpdateNote(ctx, existing.ID, patch)
		assert.ErrorIs(t, err, app.ErrNotFound)
	})
}

func TestDeleteNote(t *testing.T) {
	ctx := context.Background()
	existing := sampleNote()

	tests := []struct {
		name     string
		id       string
		deleted  *entities.Note
		repoErr  error
		wantKind error
	}{
		{name: "invalid id", id: "123", wantKind: app.ErrValidation},
		{name: "missing", id: existing.ID, wantKind: app.ErrNotFound},
		{name: "storage failure", id: existing.ID, repoErr: errStorage, wantKind: app.ErrInternal},
		{name: "deleted", id: existing.ID, deleted: existing},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockNoteRepository)
			if entities.IsValidID(tc.id) {
				var ret any
				if tc.deleted != nil {
					ret = tc.deleted
				}
				repo.On("DeleteByID", mock.Anything, tc.id).Return(ret, tc.repoErr)
			}

			got, err := app.NewNoteUseCase(repo).DeleteNote(ctx, tc.id)
			if tc.wantKind != nil {
				assert.ErrorIs(t, err, tc.wantKind)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.deleted, got)
		})
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()

	t.Run("counts over a real store", func(t *testing.T) {
		uc := app.NewNoteUseCase(memory.NewNoteRepository())

		_, err := uc.CreateNote(ctx, "A", "")
		require.NoError(t, err)
		_, err = uc.CreateNote(ctx, "B", "body")
		require.NoError(t, err)

		stats, err := uc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TotalNotes)
		assert.Equal(t, 2, stats.NotesWithTitle)
		assert.Equal(t, 1, stats.NotesWithContent)
		assert.Equal(t, 0, stats.EmptyNotes)
		assert.WithinDuration(t, time.Now(), stats.CreatedAt, time.Minute)
	})

	t.Run("note emptied by update is counted as empty", func(t *testing.T) {
		uc := app.NewNoteUseCase(memory.NewNoteRepository())

		note, err := uc.CreateNote(ctx, "A", "")
		require.NoError(t, err)
		_, err = uc.UpdateNote(ctx, note.ID, entities.NotePatch{Title: ptr(""), Content: ptr("x")})
		require.NoError(t, err)
		_, err = uc.UpdateNote(ctx, note.ID, entities.NotePatch{Title: ptr("y"), Content: ptr("")})
		require.NoError(t, err)

		stats, err := uc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.NotesWithTitle)
		assert.Equal(t, 0, stats.NotesWithContent)
	})

	t.Run("total comes from store count", func(t *testing.T) {
		notes := []entities.Note{
			{ID: uuid.NewString(), Title: "A"},
			{ID: uuid.NewString(), Content: "body"},
		}
		repo := new(mockNoteRepository)
		repo.On("FindAll", mock.Anything).Return(notes, nil)
		repo.On("Count", mock.Anything).Return(2, nil)

		stats, err := app.NewNoteUseCase(repo).Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TotalNotes)
		assert.Equal(t, 1, stats.NotesWithTitle)
		assert.Equal(t, 1, stats.NotesWithContent)
		repo.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("FindAll", mock.Anything).Return(nil, errStorage)

		_, err := app.NewNoteUseCase(repo).Stats(ctx)
		assert.ErrorIs(t, err, app.ErrInternal)
	})

	t.Run("count failure", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("FindAll", mock.Anything).Return([]entities.Note{}, nil)
		repo.On("Count", mock.Anything).Return(0, errStorage)

		_, err := app.NewNoteUseCase(repo).Stats(ctx)
		assert.ErrorIs(t, err, app.ErrInternal)
	})
}

func TestListAndCountAgree(t *testing.T) {
	ctx := context.Background()
	uc := app.NewNoteUseCase(memory.NewNoteRepository())

	for _, title := range []string{"a", "b", "c"} {
		_, err := uc.CreateNote(ctx, title, "")
		require.NoError(t, err)
	}

	notes, err := uc.ListNotes(ctx)
	require.NoError(t, err)
	count, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, count)
}
