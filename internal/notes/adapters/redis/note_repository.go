// Package redis provides a Redis-backed NoteRepository that lets several
// service instances share one collection.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/repositories"
	"notekeeper/pkg/logger"
)

// Константы для ошибок.
const (
	ErrMsgCreate = "failed to create note"
	ErrMsgList   = "failed to list notes"
	ErrMsgGet    = "failed to get note"
	ErrMsgUpdate = "failed to update note"
	ErrMsgDelete = "failed to delete note"
	ErrMsgCount  = "failed to count notes"
	ErrMsgDecode = "failed to decode note"

	maxUpdateRetries = 10
)

// ErrTooManyRetries возвращается, если оптимистичное обновление не удалось
// из-за постоянных конкурентных изменений.
var ErrTooManyRetries = errors.New("too many concurrent modifications")

// NoteRepository хранит каждую заметку JSON-строкой под ключом <prefix>note:<id>,
// порядок добавления - в списке <prefix>order.
type NoteRepository struct {
	client   redis.UniversalClient
	orderKey string
	prefix   string
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository создает репозиторий с префиксом ключей keyPrefix.
func NewNoteRepository(client redis.UniversalClient, keyPrefix string) *NoteRepository {
	return &NoteRepository{
		client:   client,
		orderKey: keyPrefix + "order",
		prefix:   keyPrefix + "note:",
	}
}

func (r *NoteRepository) noteKey(id string) string {
	return r.prefix + id
}

// Create сохраняет заметку и добавляет ее в конец списка порядка.
func (r *NoteRepository) Create(ctx context.Context, title, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "redis.Create"))

	note := entities.NewNote(title, content, time.Now().UTC())
	payload, err := json.Marshal(note)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreate, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.noteKey(note.ID), payload, 0)
		pipe.RPush(ctx, r.orderKey, note.ID)
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrMsgCreate, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrMsgCreate, err)
	}

	log.Debug(ctx, "note stored", zap.String("noteID", note.ID))
	return &note, nil
}

// FindAll читает список порядка и все заметки одним MGET.
func (r *NoteRepository) FindAll(ctx context.Context) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "redis.FindAll"))

	ids, err := r.client.LRange(ctx, r.orderKey, 0, -1).Result()
	if err != nil {
		log.Error(ctx, ErrMsgList, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrMsgList, err)
	}

	notes := make([]entities.Note, 0, len(ids))
	if len(ids) == 0 {
		return notes, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.noteKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		log.Error(ctx, ErrMsgList, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrMsgList, err)
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// ключ удален между LRANGE и MGET
			continue
		}
		note, err := decode(raw)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, nil
}

// FindByID получает заметку по ID.
func (r *NoteRepository) FindByID(ctx context.Context, id string) (*entities.Note, error) {
	raw, err := r.client.Get(ctx, r.noteKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logger.Log(ctx).Error(ctx, ErrMsgGet, zap.String("noteID", id), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrMsgGet, err)
	}

	note, err := decode(raw)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateByID применяет патч в транзакции WATCH/MULTI с повтором при конфликте.
func (r *NoteRepository) UpdateByID(ctx context.Context, id string, patch entities.NotePatch) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "redis.UpdateByID"), zap.String("noteID", id))
	key := r.noteKey(id)

	var updated *entities.Note
	txf := func(tx *redis.Tx) error {
		updated = nil

		raw, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}

		current, err := decode(raw)
		if err != nil {
			return err
		}

		next := patch.Apply(current, time.Now().UTC())
		payload, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err == nil {
			updated = &next
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			log.Debug(ctx, "optimistic lock conflict, retrying", zap.Int("attempt", attempt+1))
			continue
		}
		log.Error(ctx, ErrMsgUpdate, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdate, err)
	}

	log.Error(ctx, ErrMsgUpdate, zap.Error(ErrTooManyRetries))
	return nil, fmt.Errorf("%s: %w", ErrMsgUpdate, ErrTooManyRetries)
}

// DeleteByID удаляет заметку и ее позицию в списке порядка.
func (r *NoteRepository) DeleteByID(ctx context.Context, id string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "redis.DeleteByID"), zap.String("noteID", id))
	key := r.noteKey(id)

	var getCmd *redis.StringCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		getCmd = pipe.Get(ctx, key)
		pipe.Del(ctx, key)
		pipe.LRem(ctx, r.orderKey, 1, id)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Error(ctx, ErrMsgDelete, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrMsgDelete, err)
	}

	raw, err := getCmd.Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgDelete, err)
	}

	note, err := decode(raw)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Count возвращает длину списка порядка.
func (r *NoteRepository) Count(ctx context.Context) (int, error) {
	n, err := r.client.LLen(ctx, r.orderKey).Result()
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrMsgCount, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrMsgCount, err)
	}
	return int(n), nil
}

func decode(raw string) (entities.Note, error) {
	var note entities.Note
	if err := json.Unmarshal([]byte(raw), &note); err != nil {
		return entities.Note{}, fmt.Errorf("%s: %w", ErrMsgDecode, err)
	}
	return note, nil
}
