package domain

import (
	"strings"

	"github.com/google/uuid"
)

// SessionID — явный токен одного прогона сравнения.
// Все чанки во временном хранилище разделены по нему.
type SessionID string

// NewSessionID — новый идентификатор сессии.
func NewSessionID() SessionID { return SessionID(uuid.NewString()) }

// ParseSessionID — проверка, что строка похожа на идентификатор сессии.
func ParseSessionID(s string) (SessionID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrSessionRequired
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", ErrSessionRequired
	}
	return SessionID(s), nil
}

func (s SessionID) String() string { return string(s) }
