package domain

import "fmt"

// ItemInfo — статичные метаданные предмета.
type ItemInfo struct {
	ItemID      int64  `json:"type_id"`
	Name        string `json:"name"`
	GroupID     *int64 `json:"group_id,omitempty"`
	CategoryID  *int64 `json:"category_id,omitempty"`
	Placeholder bool   `json:"-"`
}

// PlaceholderItem — заглушка на случай неудачного запроса метаданных.
func PlaceholderItem(id int64) ItemInfo {
	return ItemInfo{
		ItemID:      id,
		Name:        fmt.Sprintf("Unknown Item (%d)", id),
		Placeholder: true,
	}
}
