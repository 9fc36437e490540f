package response_models

type LeaderboardEntry struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	TotalCommission float64 `json:"totalCommission"`
	Subscribers     int64   `json:"subscribers"`
}

type AdminPayoutItem struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency"`
	RequestedAt int64           `json:"requestedAt"`
	ProcessedAt *int64          `json:"processedAt,omitempty"`
	Affiliate   PayoutAffiliate `json:"affiliate"`
}

type PayoutAffiliate struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subscribers int64  `json:"subscribers"`
}

type AdminStatsResponse struct {
	TotalUsers          int64              `json:"totalUsers"`
	PaidTransactions    int64              `json:"paidTransactions"`
	TotalRevenue        float64            `json:"totalRevenue"`
	TotalCourses        int64              `json:"totalCourses"`
	TotalProducts       int64              `json:"totalProducts"`
	MonthlyRevenueChart map[string]float64 `json:"monthlyRevenueChart"`
}
