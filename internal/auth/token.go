// Пакет auth — проверка формы bearer-токена для structure-локаций.
// Получение и обновление токена — забота внешнего провайдера; здесь только «похоже ли на JWT».
package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

type header struct {
	Typ string `json:"typ"`
}

// ValidateToken — токен должен состоять из трёх сегментов через точку,
// а первый сегмент — быть base64url JSON-объектом с typ = "JWT".
// Иначе возвращается *domain.AuthRequiredError.
func ValidateToken(token string) error {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return &domain.AuthRequiredError{Reason: "token is missing"}
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return &domain.AuthRequiredError{Reason: "token must have three segments"}
	}

	raw, err := decodeSegment(parts[0])
	if err != nil {
		return &domain.AuthRequiredError{Reason: "token header is not base64url"}
	}

	var h header
	if err := json.Unmarshal(raw, &h); err != nil {
		return &domain.AuthRequiredError{Reason: "token header is not a JSON object"}
	}
	if !strings.EqualFold(h.Typ, "JWT") {
		return &domain.AuthRequiredError{Reason: "token type is not JWT"}
	}
	return nil
}

// decodeSegment — base64url с паддингом и без.
func decodeSegment(seg string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(seg); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(seg)
}
