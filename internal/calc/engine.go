// Пакет calc — расчёт возможностей арбитража: хеш-соединение двух наборов заявок по предмету.
package calc

import (
	"sort"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

// best — лучшая (самая дешёвая) заявка по предмету.
type best struct {
	price  float64
	volume int64
}

// bestByItem — минимальная цена по каждому предмету; при равной цене — больший объём.
// Результат не зависит от порядка входа.
func bestByItem(orders []domain.Order) map[int64]best {
	out := make(map[int64]best, len(orders)/4+1)
	for i := range orders {
		o := &orders[i]
		cur, ok := out[o.ItemID]
		if !ok || o.Price < cur.price || (o.Price == cur.price && o.VolumeRemaining > cur.volume) {
			out[o.ItemID] = best{price: o.Price, volume: o.VolumeRemaining}
		}
	}
	return out
}

// Calculate — по одной возможности на каждый предмет источника, за O(n+m).
// Предметы без предложения в точке назначения попадают в результат только при
// IncludeMissingAtDestination; для остальных сразу применяются MinProfit и MinProfitPercent.
// Порядок результата — по ItemID.
func Calculate(source, dest []domain.Order, cfg domain.FilterConfiguration) []domain.Opportunity {
	src := bestByItem(source)
	dst := bestByItem(dest)

	out := make([]domain.Opportunity, 0, len(src))
	for itemID, s := range src {
		d, ok := dst[itemID]
		if !ok {
			if !cfg.IncludeMissingAtDestination {
				continue
			}
			out = append(out, domain.Opportunity{
				ItemID:       itemID,
				SourcePrice:  s.price,
				SourceVolume: s.volume,
				Status:       domain.StatusMissingAtDestination,
			})
			continue
		}

		profit := d.price - s.price
		percent := 0.0
		if s.price != 0 {
			percent = profit / s.price * 100
		}
		if cfg.MinProfit != nil && profit < *cfg.MinProfit {
			continue
		}
		if cfg.MinProfitPercent != nil && percent < *cfg.MinProfitPercent {
			continue
		}

		out = append(out, domain.Opportunity{
			ItemID:        itemID,
			SourcePrice:   s.price,
			DestPrice:     domain.Float(d.price),
			Profit:        domain.Float(profit),
			ProfitPercent: domain.Float(percent),
			SourceVolume:  s.volume,
			DestVolume:    domain.Int(d.volume),
			Status:        domain.StatusProfitable,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}
