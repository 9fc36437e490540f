package response_models

type AffiliateDashboardResponse struct {
	ReferralLink  string             `json:"referralLink"`
	Stats         AffiliateStats     `json:"stats"`
	ReferredUsers []ReferredUserItem `json:"referredUsers"`
}

type AffiliateStats struct {
	TotalReferrals         int     `json:"totalReferrals"`
	PaidReferrals          int     `json:"paidReferrals"`
	TotalUnpaidCommissions float64 `json:"totalUnpaidCommissions"`
}

type ReferredUserItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SignedUpAt int64  `json:"signedUpAt"`
	HasPaid    bool   `json:"hasPaid"`
}

type PayoutRequestResponse struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	RequestedAt int64   `json:"requestedAt"`
}
