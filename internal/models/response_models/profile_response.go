package response_models

type ProfileResponse struct {
	ID                      string   `json:"id"`
	Email                   string   `json:"email"`
	FirstName               string   `json:"firstName"`
	LastName                string   `json:"lastName"`
	AccountType             string   `json:"accountType"`
	CreatedAt               int64    `json:"createdAt"`
	SubscriptionStatus      string   `json:"subscriptionStatus"`
	CurrentPeriodEnd        *int64   `json:"currentPeriodEnd"`
	IsCancellationScheduled bool     `json:"isCancellationScheduled"`
	HasPaid                 bool     `json:"hasPaid"`
	PurchasedCourseIDs      []string `json:"purchasedCourseIds"`
	AvailableCourseDiscounts int     `json:"availableCourseDiscounts"`
}

type UserSummary struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AccountType string `json:"accountType"`
	CreatedAt   int64  `json:"createdAt"`
}

type DashboardStatsResponse struct {
	TotalCourses         int64 `json:"totalCourses"`
	TotalWinningProducts int64 `json:"totalWinningProducts"`
}
