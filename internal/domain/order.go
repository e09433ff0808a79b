package domain

import (
	"fmt"
	"strings"
)

// LocationKind — тип рыночной локации.
type LocationKind string

const (
	KindRegion    LocationKind = "region"
	KindStation   LocationKind = "station"
	KindStructure LocationKind = "structure"
)

// ParseLocationKind — разбор строки в LocationKind (регистр и пробелы не важны).
func ParseLocationKind(s string) (LocationKind, error) {
	switch k := LocationKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindRegion, KindStation, KindStructure:
		return k, nil
	default:
		return "", fmt.Errorf("unknown location kind %q", s)
	}
}

// Location — адрес рынка: идентификатор и его тип.
type Location struct {
	ID   int64        `json:"location_id" validate:"gt=0"`
	Kind LocationKind `json:"kind" validate:"oneof=region station structure"`
}

// Key — ключ локации для блокировок и коллекций ("station:60003760").
func (l Location) Key() string {
	return fmt.Sprintf("%s:%d", l.Kind, l.ID)
}

func (l Location) String() string { return l.Key() }

// Order — одна заявка на покупку/продажу. После загрузки не изменяется.
type Order struct {
	OrderID         int64   `json:"order_id"`
	ItemID          int64   `json:"type_id"`
	IsBuyOrder      bool    `json:"is_buy_order"`
	Price           float64 `json:"price"`
	VolumeRemaining int64   `json:"volume_remain"`
	LocationID      int64   `json:"location_id"`
}

// OrderPage — одна страница заявок, как её вернул удалённый API.
type OrderPage struct {
	SessionID  SessionID `json:"session_id"`
	LocationID int64     `json:"location_id"`
	PageIndex  int       `json:"page"`
	Orders     []Order   `json:"orders"`
}

// SellOrders — только заявки на продажу (ask); входной слайс не меняется.
func SellOrders(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for i := range orders {
		if !orders[i].IsBuyOrder {
			out = append(out, orders[i])
		}
	}
	return out
}
