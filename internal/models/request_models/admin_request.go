package request_models

type UpdatePayoutStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateSettingsRequest is a flat key/value map, upserted as-is.
type UpdateSettingsRequest map[string]string

type CourseRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   *string  `json:"description"`
	CoverImageURL string   `json:"coverImageUrl" binding:"required"`
	PriceEur      *float64 `json:"priceEur"`
	PriceUsd      *float64 `json:"priceUsd"`
	Order         int      `json:"order"`
}

type SectionRequest struct {
	Title string `json:"title" binding:"required"`
	Order int    `json:"order"`
}

type VideoRequest struct {
	Title       string  `json:"title" binding:"required"`
	VimeoID     string  `json:"vimeoId" binding:"required"`
	Description *string `json:"description"`
	Duration    int     `json:"duration"`
	Order       int     `json:"order"`
}

type VideoOrderRequest struct {
	Videos []VideoOrderItem `json:"videos" binding:"required,dive"`
}

type VideoOrderItem struct {
	ID    string `json:"id" binding:"required"`
	Order int    `json:"order"`
}

type ProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	ImageURL     string  `json:"imageUrl"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Category     string  `json:"category"`
	SupplierLink string  `json:"supplierLink"`
	TrendScore   float64 `json:"trendScore"`
}
