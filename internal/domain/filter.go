package domain

// FilterConfiguration — неизменяемый набор фильтров одного пересчёта.
// Отсутствие границы (nil) означает «без ограничения».
type FilterConfiguration struct {
	IncludeGroupIDs             []int64  `json:"include_group_ids,omitempty" validate:"dive,gt=0"`
	ExcludeGroupIDs             []int64  `json:"exclude_group_ids,omitempty" validate:"dive,gt=0"`
	IncludeItemIDs              []int64  `json:"include_item_ids,omitempty" validate:"dive,gt=0"`
	MinPrice                    *float64 `json:"min_price,omitempty" validate:"omitempty,gte=0"`
	MaxPrice                    *float64 `json:"max_price,omitempty" validate:"omitempty,gte=0"`
	MinProfit                   *float64 `json:"min_profit,omitempty"`
	MinProfitPercent            *float64 `json:"min_profit_percent,omitempty"`
	SearchText                  string   `json:"search_text,omitempty" validate:"max=200"`
	IncludeMissingAtDestination bool     `json:"include_missing_at_destination"`
}

// Float — указатель на значение (удобно для границ фильтра и тестов).
func Float(v float64) *float64 { return &v }

// Int — указатель на значение.
func Int(v int64) *int64 { return &v }
