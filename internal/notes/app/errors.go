package app

import (
	"errors"
	"fmt"
)

// Виды ошибок уровня бизнес-логики.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)

// Сообщения для пользователя.
const (
	MsgEmptyNote     = "Note must have either title or content"
	MsgInvalidID     = "Invalid UUID format: %s"
	MsgNoteNotFound  = "Note not found with id: %s"
	MsgInternalError = "Internal server error"
)

// Error - ошибка с видом и сообщением для клиента.
type Error struct {
	Kind    error
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Is позволяет сравнивать ошибку с видом через errors.Is.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewValidationError создает ошибку валидации (400).
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

// NewNotFoundError создает ошибку отсутствия записи (404).
func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// NewInternalError оборачивает непредвиденную ошибку (500).
func NewInternalError(cause error) *Error {
	return &Error{Kind: ErrInternal, Message: MsgInternalError, cause: cause}
}

func invalidID(id string) *Error {
	return NewValidationError(fmt.Sprintf(MsgInvalidID, id))
}

func noteNotFound(id string) *Error {
	return NewNotFoundError(fmt.Sprintf(MsgNoteNotFound, id))
}
