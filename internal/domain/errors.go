package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreFull — временное хранилище исчерпало ёмкость.
	ErrStoreFull = errors.New("staging store is full")
	// ErrItemNotFound — удалённый API не знает такой предмет (404).
	ErrItemNotFound = errors.New("item not found")
	// ErrSessionRequired — отсутствует или некорректен идентификатор сессии.
	ErrSessionRequired = errors.New("session id is required")
)

// StorageError — хранилище недоступно или переполнено. Фатально для текущей операции.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// FetchError — невосстановимый HTTP-статус при загрузке страницы.
type FetchError struct {
	LocationID int64
	Page       int
	Status     int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch location=%d page=%d status=%d: %v", e.LocationID, e.Page, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch location=%d page=%d status=%d", e.LocationID, e.Page, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// AlreadyFetchingError — по этой локации уже идёт загрузка.
type AlreadyFetchingError struct {
	Key string
}

func (e *AlreadyFetchingError) Error() string {
	return fmt.Sprintf("location %s is already being fetched", e.Key)
}

// AuthRequiredError — для structure-локаций нужен корректный токен.
type AuthRequiredError struct {
	Reason string
}

func (e *AuthRequiredError) Error() string {
	return "auth required: " + e.Reason
}
