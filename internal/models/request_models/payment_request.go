package request_models

type CreateSubscriptionRequest struct {
	PriceID         string `json:"priceId" binding:"required"`
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
}

type CourseIntentRequest struct {
	CourseID              string `json:"courseId" binding:"required"`
	Currency              string `json:"currency" binding:"required,oneof=eur usd"`
	ApplyAffiliateDiscount bool  `json:"applyAffiliateDiscount"`
}
