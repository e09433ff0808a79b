package ports

import (
	"context"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

// ComparisonService — операции, доступные внешнему UI-слою.
type ComparisonService interface {
	NewSession(ctx context.Context) domain.SessionID
	EndSession(ctx context.Context, session domain.SessionID) error

	// FetchLocation — полная загрузка стакана локации во временное хранилище.
	FetchLocation(ctx context.Context, session domain.SessionID, loc domain.Location, token string) (int, error)

	// Recalculate — пересчёт по уже загруженным данным, без сетевых запросов за заявками.
	Recalculate(ctx context.Context, session domain.SessionID, source, dest domain.Location,
		cfg domain.FilterConfiguration) ([]domain.Opportunity, error)

	// Compare — загрузка обеих локаций и пересчёт.
	Compare(ctx context.Context, session domain.SessionID, source, dest domain.Location,
		cfg domain.FilterConfiguration, token string) ([]domain.Opportunity, error)

	// Opportunities — страница последнего сохранённого результата.
	Opportunities(ctx context.Context, session domain.SessionID, source, dest domain.Location,
		limit, offset int) ([]domain.Opportunity, error)
}

// ResultPublisher — публикация результатов сравнения во внешнюю систему.
type ResultPublisher interface {
	Publish(ctx context.Context, result domain.ComparisonResult) error
	Close() error
}
