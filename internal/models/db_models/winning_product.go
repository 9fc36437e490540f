package db_models

// WinningProduct is one entry of the scraped product discovery feed.
// AISummary stays nil until the enrichment pass fills it in.
type WinningProduct struct {
	BaseModel
	Name         string
	Description  *string
	ImageURL     string
	Price        float64
	Currency     string `gorm:"size:3"`
	Category     string `gorm:"index"`
	SupplierLink string
	TrendScore   float64 `gorm:"index"`
	AISummary    *string
}
