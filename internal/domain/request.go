package domain

// ComparisonRequest — запрос на сравнение двух рынков (Kafka, HTTP, CLI).
// Пустой SessionID означает «создать новую сессию».
type ComparisonRequest struct {
	SessionID SessionID           `json:"session_id,omitempty" validate:"omitempty,uuid"`
	Source    Location            `json:"source"`
	Dest      Location            `json:"dest"`
	Filter    FilterConfiguration `json:"filter"`
	Token     string              `json:"token,omitempty"`
}

// ComparisonResult — результат сравнения для публикации.
type ComparisonResult struct {
	SessionID     SessionID     `json:"session_id"`
	Source        Location      `json:"source"`
	Dest          Location      `json:"dest"`
	Opportunities []Opportunity `json:"opportunities"`
	Error         string        `json:"error,omitempty"`
}
