package domain

// OpportunityStatus — классификация результата сравнения.
type OpportunityStatus string

const (
	StatusProfitable           OpportunityStatus = "profitable"
	StatusMissingAtDestination OpportunityStatus = "missing_at_destination"
)

// Opportunity — связь лучшей заявки в источнике и лучшей заявки в точке назначения.
// Profit и ProfitPercent равны nil тогда и только тогда, когда Status = missing_at_destination.
type Opportunity struct {
	ItemID        int64             `json:"type_id"`
	SourcePrice   float64           `json:"source_price"`
	DestPrice     *float64          `json:"dest_price"`
	Profit        *float64          `json:"profit"`
	ProfitPercent *float64          `json:"profit_percent"`
	SourceVolume  int64             `json:"source_volume"`
	DestVolume    *int64            `json:"dest_volume"`
	Status        OpportunityStatus `json:"status"`

	// Заполняются на этапе обогащения.
	ItemName   string `json:"item_name,omitempty"`
	GroupID    *int64 `json:"group_id,omitempty"`
	CategoryID *int64 `json:"category_id,omitempty"`
}

// Missing — товара нет в точке назначения.
func (o *Opportunity) Missing() bool { return o.Status == StatusMissingAtDestination }

// WithItem — копия с прикреплёнными метаданными предмета.
func (o Opportunity) WithItem(info ItemInfo) Opportunity {
	o.ItemName = info.Name
	o.GroupID = info.GroupID
	o.CategoryID = info.CategoryID
	return o
}
