package utils

import "errors"

var (
	ErrDatabaseError      = errors.New("database error")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidReferrer    = errors.New("invalid referrer")

	ErrCourseNotFound     = errors.New("course not found")
	ErrSectionNotFound    = errors.New("section not found")
	ErrVideoNotFound      = errors.New("video not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCourseNotPurchasable = errors.New("course not purchasable in this currency")

	ErrPayoutNotFound       = errors.New("payout request not found")
	ErrInvalidPayoutStatus  = errors.New("invalid payout status")
	ErrPendingPayoutExists  = errors.New("pending payout request exists")
	ErrPayoutBelowThreshold = errors.New("unpaid commissions below payout threshold")
	ErrNoUnpaidCommissions  = errors.New("no unpaid commissions")
	ErrAffiliateLocked      = errors.New("affiliate features locked")

	ErrNoSubscription   = errors.New("no subscription found")
	ErrProviderError    = errors.New("payment provider error")
	ErrCustomerNotFound = errors.New("payment customer not found")
)
