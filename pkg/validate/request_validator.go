package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

// ErrInvalidRequest — базовая (sentinel error) ошибка валидации запроса.
var ErrInvalidRequest = errors.New("request validation failed")

// RequestValidator — проверка запросов сравнения и конфигураций фильтра по тегам validate.
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator — конструктор; регистрирует проверку min_price <= max_price.
// Возвращает ErrInvalidRequest (с обёрнутой причиной) при любой проблеме.
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterStructValidation(priceBounds, domain.FilterConfiguration{})
	return &RequestValidator{v: v}
}

// Validate — проверка запроса целиком.
func (r *RequestValidator) Validate(req *domain.ComparisonRequest) error {
	if req == nil {
		return fmt.Errorf("%w: запрос не может быть nil", ErrInvalidRequest)
	}
	if err := r.v.Struct(req); err != nil {
		return formatError(err)
	}
	return nil
}

// ValidateFilter — проверка только фильтра (пересчёт без перезагрузки).
func (r *RequestValidator) ValidateFilter(cfg *domain.FilterConfiguration) error {
	if err := r.v.Struct(cfg); err != nil {
		return formatError(err)
	}
	return nil
}

// ValidateLocation — проверка адреса рынка.
func (r *RequestValidator) ValidateLocation(loc *domain.Location) error {
	if err := r.v.Struct(loc); err != nil {
		return formatError(err)
	}
	return nil
}

func priceBounds(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(domain.FilterConfiguration)
	if cfg.MinPrice != nil && cfg.MaxPrice != nil && *cfg.MinPrice > *cfg.MaxPrice {
		sl.ReportError(cfg.MaxPrice, "MaxPrice", "max_price", "gtefield", "MinPrice")
	}
}

// formatError — ошибки validator в читаемом виде, обёрнутые в ErrInvalidRequest.
func formatError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Namespace(), e.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}
