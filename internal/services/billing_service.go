package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"influhub/internal/models/db_models"
	"influhub/internal/models/request_models"
	"influhub/internal/models/response_models"
	"influhub/internal/payments"
	"influhub/internal/repositories"
	"influhub/pkg/logging"
	"influhub/pkg/utils"
)

type BillingServiceInterface interface {
	CreateSubscription(ctx context.Context, userID uuid.UUID, request request_models.CreateSubscriptionRequest) (*response_models.SubscriptionResponse, error)
	CancelSubscription(ctx context.Context, userID uuid.UUID) error
	ReactivateSubscription(ctx context.Context, userID uuid.UUID) error
	ListPlans(ctx context.Context, currency string) ([]response_models.PlanItem, error)
	CreateCourseIntent(ctx context.Context, userID uuid.UUID, request request_models.CourseIntentRequest) (*response_models.CourseIntentResponse, error)
}

type BillingService struct {
	client     *payments.Client
	userRepo   repositories.UserRepository
	courseRepo repositories.CourseRepository
	txnRepo    repositories.TransactionRepository
	settings   SettingsServiceInterface
}

func NewBillingService(
	client *payments.Client,
	userRepo repositories.UserRepository,
	courseRepo repositories.CourseRepository,
	txnRepo repositories.TransactionRepository,
	settings SettingsServiceInterface,
) BillingServiceInterface {
	return &BillingService{
		client:     client,
		userRepo:   userRepo,
		courseRepo: courseRepo,
		txnRepo:    txnRepo,
		settings:   settings,
	}
}

func (b *BillingService) CreateSubscription(ctx context.Context, userID uuid.UUID, request request_models.CreateSubscriptionRequest) (*response_models.SubscriptionResponse, error) {
	user, err := b.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	customerID, err := b.ensureCustomer(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := b.client.AttachPaymentMethod(ctx, request.PaymentMethodID, customerID); err != nil {
		logging.L().Error("attach payment method failed", logging.Err(err))
		return nil, utils.ErrProviderError
	}
	if err := b.client.SetDefaultPaymentMethod(ctx, customerID, request.PaymentMethodID); err != nil {
		logging.L().Error("set default payment method failed", logging.Err(err))
		return nil, utils.ErrProviderError
	}

	sub, err := b.client.CreateSubscription(ctx, customerID, request.PriceID)
	if err != nil {
		logging.L().Error("create subscription failed", logging.Err(err))
		return nil, utils.ErrProviderError
	}

	if err := b.applySubscriptionState(ctx, user.ID, sub); err != nil {
		return nil, utils.ErrDatabaseError
	}

	response := &response_models.SubscriptionResponse{
		Status:         sub.Status,
		SubscriptionID: sub.ID,
	}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		response.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return response, nil
}

func (b *BillingService) CancelSubscription(ctx context.Context, userID uuid.UUID) error {
	return b.setCancellation(ctx, userID, true)
}

func (b *BillingService) ReactivateSubscription(ctx context.Context, userID uuid.UUID) error {
	return b.setCancellation(ctx, userID, false)
}

func (b *BillingService) setCancellation(ctx context.Context, userID uuid.UUID, cancel bool) error {
	user, err := b.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}
	if user.ProviderSubID == "" {
		return utils.ErrNoSubscription
	}

	sub, err := b.client.SetCancelAtPeriodEnd(ctx, user.ProviderSubID, cancel)
	if err != nil {
		logging.L().Error("update cancellation failed",
			zap.String("subscription_id", user.ProviderSubID), logging.Err(err))
		return utils.ErrProviderError
	}

	if err := b.applySubscriptionState(ctx, user.ID, sub); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// applySubscriptionState mirrors the processor's subscription object
// onto the user row; webhooks apply the same mapping so the two paths
// converge.
func (b *BillingService) applySubscriptionState(ctx context.Context, userID uuid.UUID, sub *payments.SubscriptionObject) error {
	status := mapSubscriptionStatus(sub.Status)
	periodEnd := subscriptionPeriodEnd(&payments.Subscription{
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		CancelAt:          sub.CancelAt,
		CurrentPeriodEnd:  sub.CurrentPeriodEnd,
	})
	return b.userRepo.UpdateSubscriptionState(ctx, userID, sub.ID, status, periodEnd, sub.CancelAtPeriodEnd)
}

func (b *BillingService) ListPlans(ctx context.Context, currency string) ([]response_models.PlanItem, error) {
	prices, err := b.client.ListPrices(ctx, currency)
	if err != nil {
		logging.L().Error("list prices failed", logging.Err(err))
		return nil, utils.ErrProviderError
	}

	// One visible plan per product and billing interval; the processor
	// keeps superseded prices active, so take the newest.
	type planKey struct {
		productID string
		interval  string
	}
	latest := make(map[planKey]payments.Price)
	for _, price := range prices {
		if price.Recurring == nil || price.Product.Deleted {
			continue
		}
		key := planKey{productID: price.Product.ID, interval: price.Recurring.Interval}
		if current, ok := latest[key]; !ok || price.Created > current.Created {
			latest[key] = price
		}
	}

	plans := make([]response_models.PlanItem, 0, len(latest))
	for _, price := range latest {
		plans = append(plans, response_models.PlanItem{
			ID:          price.ID,
			Name:        price.Product.Name,
			Description: price.Product.Description,
			Price:       price.UnitAmount,
			Currency:    price.Currency,
			Interval:    price.Recurring.Interval,
		})
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Price < plans[j].Price })
	return plans, nil
}

func (b *BillingService) CreateCourseIntent(ctx context.Context, userID uuid.UUID, request request_models.CourseIntentRequest) (*response_models.CourseIntentResponse, error) {
	user, err := b.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	courseID, err := uuid.Parse(request.CourseID)
	if err != nil {
		return nil, utils.ErrCourseNotFound
	}
	course, err := b.courseRepo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if course == nil {
		return nil, utils.ErrCourseNotFound
	}

	var price *float64
	switch request.Currency {
	case "eur":
		price = course.PriceEur
	case "usd":
		price = course.PriceUsd
	}
	if price == nil {
		return nil, utils.ErrCourseNotPurchasable
	}
	amount := *price

	if request.ApplyAffiliateDiscount {
		consumed, err := b.userRepo.ConsumeCourseDiscount(ctx, user.ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if consumed {
			rate := b.settings.Float(ctx, db_models.SettingCourseDiscountRate, 50) / 100
			amount = amount * (1 - rate)
		}
	}

	// A fully discounted course needs no charge at all.
	if utils.AmountToMinor(amount) <= 0 {
		if err := b.courseRepo.InsertPurchase(ctx, &db_models.CoursePurchase{
			UserID:        user.ID,
			CourseID:      course.ID,
			PurchasePrice: 0,
		}); err != nil {
			return nil, utils.ErrDatabaseError
		}
		return &response_models.CourseIntentResponse{ClientSecret: nil}, nil
	}

	customerID, err := b.ensureCustomer(ctx, user)
	if err != nil {
		return nil, err
	}

	intent, err := b.client.CreatePaymentIntent(ctx, utils.AmountToMinor(amount), request.Currency, customerID, map[string]string{
		"courseId": course.ID.String(),
		"userId":   user.ID.String(),
	})
	if err != nil {
		logging.L().Error("create payment intent failed", logging.Err(err))
		return nil, utils.ErrProviderError
	}

	txn := &db_models.Transaction{
		UserID:      user.ID,
		Amount:      amount,
		Currency:    request.Currency,
		Status:      db_models.TxnStatusPending,
		ProviderRef: intent.ID,
		Metadata:    datatypes.JSON([]byte(`{"courseId":"` + course.ID.String() + `"}`)),
	}
	if err := b.txnRepo.Insert(ctx, txn); err != nil {
		return nil, utils.ErrDatabaseError
	}

	secret := intent.ClientSecret
	return &response_models.CourseIntentResponse{ClientSecret: &secret}, nil
}

func (b *BillingService) ensureCustomer(ctx context.Context, user *db_models.User) (string, error) {
	if user.ProviderCustomerID != "" {
		return user.ProviderCustomerID, nil
	}

	customer, err := b.client.CreateCustomer(ctx, user.Email, user.FirstName+" "+user.LastName)
	if err != nil {
		logging.L().Error("create customer failed", logging.Err(err))
		return "", utils.ErrProviderError
	}

	user.ProviderCustomerID = customer.ID
	if err := b.userRepo.Update(ctx, user); err != nil {
		return "", utils.ErrDatabaseError
	}
	return customer.ID, nil
}
