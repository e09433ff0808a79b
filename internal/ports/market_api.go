package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

// PageResponse — ответ удалённого API на запрос одной страницы.
// Статус не превращается в ошибку: решение принимает оркестратор.
type PageResponse struct {
	Status int
	Orders []domain.Order
	// TotalPages — значение X-Pages (0, если заголовка нет).
	TotalPages int
	// ErrorLimitRemain — остаток лимита ошибок (-1, если заголовка нет).
	ErrorLimitRemain int
	// ResetAfter — задержка до сброса лимита, присланная сервером (0, если нет).
	ResetAfter time.Duration
}

// OrderBookAPI — удалённый API стакана заявок. Принимает только region и structure.
type OrderBookAPI interface {
	FetchOrdersPage(ctx context.Context, loc domain.Location, page int, token string) (*PageResponse, error)
}

// ItemAPI — удалённый API метаданных предметов.
// Возвращает domain.ErrItemNotFound, если предмета нет.
type ItemAPI interface {
	FetchItem(ctx context.Context, itemID int64) (*domain.ItemInfo, error)
}
