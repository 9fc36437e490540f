package response_models

type ProductItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	ImageURL     string  `json:"imageUrl"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Category     string  `json:"category"`
	SupplierLink string  `json:"supplierLink"`
	TrendScore   float64 `json:"trendScore"`
	AISummary    *string `json:"aiSummary"`
}

type ProductListResponse struct {
	Items    []ProductItem `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}
