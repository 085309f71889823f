// Package dto содержит структуры запросов и ответов HTTP API заметок.
package dto

import "notekeeper/internal/notes/domain/entities"

// CreateNoteRequest содержит данные для создания заметки.
// Отсутствующие поля считаются пустыми строками.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteRequest содержит данные для обновления заметки.
// nil означает, что поле не передано и не изменяется.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Patch переводит запрос в доменный патч.
func (r UpdateNoteRequest) Patch() entities.NotePatch {
	return entities.NotePatch{Title: r.Title, Content: r.Content}
}

// Response - единый конверт ответа API.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse - конверт ответа с ошибкой.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK создает успешный конверт с данными.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// OKWithCount создает успешный конверт со списком и его длиной.
func OKWithCount(message string, data any, count int) Response {
	return Response{Success: true, Message: message, Count: &count, Data: data}
}

// Failure создает конверт ошибки.
func Failure(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}
