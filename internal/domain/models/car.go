package models

// Car is the flat projection of an inventory entity used by report
// rendering. Prices are in minor units.
type Car struct {
	ID           int64     `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Variant      string    `json:"variant,omitempty"`
	Year         int       `json:"year"`
	CategoryID   int64     `json:"categoryId"`
	CategoryName string    `json:"categoryName,omitempty"`
	Transmission string    `json:"transmission"`
	Fuel         string    `json:"fuel"`
	Color        string    `json:"color"`
	MileageKM    int64     `json:"mileageKm"`
	EngineCC     int64     `json:"engineCc,omitempty"`
	PriceCents   int64     `json:"priceCents"`
	Status       string    `json:"status"`
	PhotoURLs    []string  `json:"photoUrls,omitempty"`
	GradeScores  []float64 `json:"gradeScores,omitempty"` // optional inspection vector
}

// CarFilter carries the optional predicates of one export request.
// Constructed once per request and never mutated.
type CarFilter struct {
	Search       string
	CategoryID   int64
	Make         string
	Year         int
	Transmission string
	Fuel         string
	Color        string
	PriceMin     int64
	PriceMax     int64
	Status       string
	SortBy       string
	SortDesc     bool
}

// CarPage is one bounded page of records as the backend returns it.
type CarPage struct {
	Records    []Car `json:"records"`
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	TotalCount int64 `json:"total_count"`
}
