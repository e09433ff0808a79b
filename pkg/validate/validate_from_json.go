package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

// RequestFromJSON — строгий разбор запроса сравнения и его валидация.
// Ошибки разбора тоже оборачиваются в ErrInvalidRequest: такое сообщение не исправится повтором.
func RequestFromJSON(v *RequestValidator, raw []byte) (*domain.ComparisonRequest, error) {
	var req domain.ComparisonRequest
	if err := decodeStrict(raw, &req); err != nil {
		return nil, err
	}
	if err := v.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// FilterFromJSON — строгий разбор конфигурации фильтра (пустой ввод — фильтр по умолчанию).
func FilterFromJSON(v *RequestValidator, raw []byte) (domain.FilterConfiguration, error) {
	var cfg domain.FilterConfiguration
	if len(bytes.TrimSpace(raw)) == 0 {
		return cfg, nil
	}
	if err := decodeStrict(raw, &cfg); err != nil {
		return domain.FilterConfiguration{}, err
	}
	if err := v.ValidateFilter(&cfg); err != nil {
		return domain.FilterConfiguration{}, err
	}
	return cfg, nil
}

func decodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json: %v", ErrInvalidRequest, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return fmt.Errorf("%w: invalid json: trailing data", ErrInvalidRequest)
	}
	return nil
}
