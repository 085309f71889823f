// Package entities defines the domain entities for the notes service.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// Note представляет собой заметку.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewNote создает заметку с новым идентификатором; обе метки времени равны now.
func NewNote(title, content string, now time.Time) Note {
	return Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasTitle сообщает, что заголовок не пуст.
func (n Note) HasTitle() bool { return n.Title != "" }

// HasContent сообщает, что содержимое не пусто.
func (n Note) HasContent() bool { return n.Content != "" }

// IsEmpty сообщает, что и заголовок, и содержимое пусты.
func (n Note) IsEmpty() bool { return !n.HasTitle() && !n.HasContent() }

// NotePatch описывает частичное обновление. nil означает "поле не передано".
type NotePatch struct {
	Title   *string
	Content *string
}

// IsZero сообщает, что ни одно поле не передано.
func (p NotePatch) IsZero() bool {
	return p.Title == nil && p.Content == nil
}

// HasValue сообщает, что хотя бы одно переданное поле не пусто.
func (p NotePatch) HasValue() bool {
	return (p.Title != nil && *p.Title != "") || (p.Content != nil && *p.Content != "")
}

// Apply возвращает новую заметку с примененными полями патча.
// ID и CreatedAt сохраняются, UpdatedAt выставляется в now.
func (p NotePatch) Apply(n Note, now time.Time) Note {
	updated := n
	if p.Title != nil {
		updated.Title = *p.Title
	}
	if p.Content != nil {
		updated.Content = *p.Content
	}
	updated.UpdatedAt = now
	return updated
}

// Stats содержит агрегированную статистику по заметкам.
type Stats struct {
	TotalNotes       int       `json:"totalNotes"`
	NotesWithTitle   int       `json:"notesWithTitle"`
	NotesWithContent int       `json:"notesWithContent"`
	EmptyNotes       int       `json:"emptyNotes"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ComputeStats считает статистику по снимку заметок.
func ComputeStats(notes []Note, now time.Time) Stats {
	stats := Stats{TotalNotes: len(notes), CreatedAt: now}
	for _, n := range notes {
		if n.HasTitle() {
			stats.NotesWithTitle++
		}
		if n.HasContent() {
			stats.NotesWithContent++
		}
		if n.IsEmpty() {
			stats.EmptyNotes++
		}
	}
	return stats
}

// IsValidID проверяет формат идентификатора: UUID вида 8-4-4-4-12.
func IsValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
