//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeOrders — n заявок на продажу одного предмета в локации с растущей ценой.
func MakeOrders(locationID, itemID int64, n int, opts ...func(*domain.Order)) []domain.Order {
	out := make([]domain.Order, 0, n)
	for i := 0; i < n; i++ {
		o := domain.Order{
			OrderID:         int64(1_000_000 + i),
			ItemID:          itemID,
			Price:           float64(100 + i),
			VolumeRemaining: 10,
			LocationID:      locationID,
		}
		for _, fn := range opts {
			fn(&o)
		}
		out = append(out, o)
	}
	return out
}

// WithBuy — делает заявку заявкой на покупку.
func WithBuy() func(*domain.Order) {
	return func(o *domain.Order) { o.IsBuyOrder = true }
}

// WithPrice — фиксированная цена.
func WithPrice(p float64) func(*domain.Order) {
	return func(o *domain.Order) { o.Price = p }
}
