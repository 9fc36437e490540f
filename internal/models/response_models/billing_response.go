package response_models

type SubscriptionResponse struct {
	Status         string `json:"status"`
	SubscriptionID string `json:"subscriptionId"`
	ClientSecret   string `json:"clientSecret,omitempty"`
}

type CourseIntentResponse struct {
	// Nil when the discount covered the full price and the course was
	// granted without charging.
	ClientSecret *string `json:"clientSecret"`
}

type PlanItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       int64   `json:"price"` // minor units, as the processor reports
	Currency    string  `json:"currency"`
	Interval    string  `json:"interval"`
}
