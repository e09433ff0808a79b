// Пакет filter — чистый конвейер предикатов над рассчитанными возможностями.
package filter

import (
	"sort"
	"strings"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

// predicate — один шаг конвейера.
type predicate func(o *domain.Opportunity) bool

// Apply — конъюнкция предикатов в фиксированном порядке, затем сортировка:
// прибыль по убыванию (nil в конце), при равенстве ItemID по возрастанию.
// Вход не меняется, результат — новый слайс.
func Apply(opps []domain.Opportunity, cfg domain.FilterConfiguration) []domain.Opportunity {
	preds := build(cfg)

	out := make([]domain.Opportunity, 0, len(opps))
next:
	for i := range opps {
		for _, p := range preds {
			if !p(&opps[i]) {
				continue next
			}
		}
		out = append(out, opps[i])
	}

	Sort(out)
	return out
}

// Sort — порядок выдачи на месте: прибыль по убыванию, nil в конце, затем ItemID.
// Порядок полный, поэтому результат не зависит от порядка входа.
func Sort(opps []domain.Opportunity) {
	sort.SliceStable(opps, func(i, j int) bool { return less(&opps[i], &opps[j]) })
}

func build(cfg domain.FilterConfiguration) []predicate {
	preds := make([]predicate, 0, 6)

	if len(cfg.ExcludeGroupIDs) > 0 {
		excluded := toSet(cfg.ExcludeGroupIDs)
		preds = append(preds, func(o *domain.Opportunity) bool {
			if o.GroupID == nil {
				return true
			}
			_, hit := excluded[*o.GroupID]
			return !hit
		})
	}

	if len(cfg.IncludeGroupIDs) > 0 {
		included := toSet(cfg.IncludeGroupIDs)
		preds = append(preds, func(o *domain.Opportunity) bool {
			if o.GroupID == nil {
				return true
			}
			_, hit := included[*o.GroupID]
			return hit
		})
	}

	if len(cfg.IncludeItemIDs) > 0 {
		allowed := toSet(cfg.IncludeItemIDs)
		preds = append(preds, func(o *domain.Opportunity) bool {
			_, hit := allowed[o.ItemID]
			return hit
		})
	}

	if cfg.MinPrice != nil || cfg.MaxPrice != nil {
		lo, hi := cfg.MinPrice, cfg.MaxPrice
		preds = append(preds, func(o *domain.Opportunity) bool {
			if lo != nil && o.SourcePrice < *lo {
				return false
			}
			return hi == nil || o.SourcePrice <= *hi
		})
	}

	if q := strings.ToLower(strings.TrimSpace(cfg.SearchText)); q != "" {
		preds = append(preds, func(o *domain.Opportunity) bool {
			return strings.Contains(strings.ToLower(o.ItemName), q)
		})
	}

	if !cfg.IncludeMissingAtDestination {
		preds = append(preds, func(o *domain.Opportunity) bool { return !o.Missing() })
	}

	return preds
}

func less(a, b *domain.Opportunity) bool {
	switch {
	case a.Profit == nil && b.Profit == nil:
		return a.ItemID < b.ItemID
	case a.Profit == nil:
		return false
	case b.Profit == nil:
		return true
	case *a.Profit != *b.Profit:
		return *a.Profit > *b.Profit
	default:
		return a.ItemID < b.ItemID
	}
}

func toSet(ids []int64) map[int64]struct{} {
	s := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}
