package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"influhub/internal/models/db_models"
	"influhub/internal/payments"
	"influhub/internal/repositories"
	"influhub/pkg/logging"
	"influhub/pkg/utils"
)

type WebhookServiceInterface interface {
	ProcessEvent(ctx context.Context, event *payments.Event) error
}

type WebhookService struct {
	userRepo       repositories.UserRepository
	txnRepo        repositories.TransactionRepository
	commissionRepo repositories.CommissionRepository
	courseRepo     repositories.CourseRepository
	settings       SettingsServiceInterface
}

func NewWebhookService(
	userRepo repositories.UserRepository,
	txnRepo repositories.TransactionRepository,
	commissionRepo repositories.CommissionRepository,
	courseRepo repositories.CourseRepository,
	settings SettingsServiceInterface,
) WebhookServiceInterface {
	return &WebhookService{
		userRepo:       userRepo,
		txnRepo:        txnRepo,
		commissionRepo: commissionRepo,
		courseRepo:     courseRepo,
		settings:       settings,
	}
}

var intentStatusByEvent = map[payments.EventType]db_models.TransactionStatus{
	payments.EventPaymentIntentCreated:        db_models.TxnStatusCreated,
	payments.EventPaymentIntentProcessing:     db_models.TxnStatusProcessing,
	payments.EventPaymentIntentRequiresAction: db_models.TxnStatusRequiresAction,
	payments.EventPaymentIntentCanceled:       db_models.TxnStatusCanceled,
	payments.EventPaymentIntentFailed:         db_models.TxnStatusFailed,
}

// ProcessEvent routes a verified webhook delivery. Returning nil
// acknowledges the delivery; errors make the processor retry, so
// anything non-recoverable logs and acks instead.
func (w *WebhookService) ProcessEvent(ctx context.Context, event *payments.Event) error {
	switch event.Type {
	case payments.EventPaymentIntentCreated,
		payments.EventPaymentIntentProcessing,
		payments.EventPaymentIntentRequiresAction,
		payments.EventPaymentIntentCanceled,
		payments.EventPaymentIntentFailed:
		return w.handleIntentTransition(ctx, event)
	case payments.EventPaymentIntentSucceeded:
		return w.handleIntentSucceeded(ctx, event)
	case payments.EventInvoicePaid:
		return w.handleInvoicePaid(ctx, event)
	case payments.EventSubscriptionCreated, payments.EventSubscriptionUpdated:
		return w.handleSubscriptionUpsert(ctx, event)
	case payments.EventSubscriptionDeleted:
		return w.handleSubscriptionDeleted(ctx, event)
	default:
		logging.L().Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (w *WebhookService) handleIntentTransition(ctx context.Context, event *payments.Event) error {
	intent, err := event.PaymentIntent()
	if err != nil {
		logging.L().Warn("malformed payment_intent payload", zap.String("event_id", event.ID), logging.Err(err))
		return nil
	}

	status := intentStatusByEvent[event.Type]

	existing, err := w.txnRepo.FindByProviderRef(ctx, intent.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		// Intents we did not create locally (no pending course purchase
		// row) are not ours to track.
		logging.L().Debug("intent transition for unknown transaction",
			zap.String("intent_id", intent.ID), zap.String("status", string(status)))
		return nil
	}
	// Terminal success never regresses on late or out-of-order deliveries.
	if existing.Status == db_models.TxnStatusSucceeded {
		return nil
	}

	_, err = w.txnRepo.UpdateStatusByProviderRef(ctx, intent.ID, status)
	return err
}

func (w *WebhookService) handleIntentSucceeded(ctx context.Context, event *payments.Event) error {
	intent, err := event.PaymentIntent()
	if err != nil {
		logging.L().Warn("malformed payment_intent payload", zap.String("event_id", event.ID), logging.Err(err))
		return nil
	}

	existing, err := w.txnRepo.FindByProviderRef(ctx, intent.ID)
	if err != nil {
		return err
	}

	if existing == nil {
		// Only course purchases are recorded from the intent itself;
		// subscription charges arrive on their invoice, and plain
		// lifecycle events for rows we never created are update-only.
		if _, parseErr := uuid.Parse(intent.Metadata["courseId"]); parseErr != nil {
			logging.L().Debug("intent succeeded for unknown transaction", zap.String("intent_id", intent.ID))
			return nil
		}

		user, err := w.userRepo.FindByProviderCustomerID(ctx, intent.Customer)
		if err != nil {
			return err
		}
		if user == nil {
			logging.L().Warn("payment for unknown customer",
				zap.String("intent_id", intent.ID), zap.String("customer", intent.Customer))
			return nil
		}
		txn := &db_models.Transaction{
			UserID:      user.ID,
			Amount:      utils.MinorToAmount(intent.Amount),
			Currency:    intent.Currency,
			Status:      db_models.TxnStatusSucceeded,
			ProviderRef: intent.ID,
			Metadata:    metadataJSON(intent.Metadata),
		}
		if err := w.txnRepo.Insert(ctx, txn); err != nil {
			return err
		}
		return w.grantCoursePurchase(ctx, user.ID, intent.Metadata, txn.Amount)
	}

	// A redelivered success is a no-op; the first delivery already did
	// the side effects.
	if existing.Status == db_models.TxnStatusSucceeded {
		return nil
	}
	if _, err := w.txnRepo.UpdateStatusByProviderRef(ctx, intent.ID, db_models.TxnStatusSucceeded); err != nil {
		return err
	}
	return w.grantCoursePurchase(ctx, existing.UserID, intent.Metadata, existing.Amount)
}

func (w *WebhookService) grantCoursePurchase(ctx context.Context, userID uuid.UUID, metadata map[string]string, price float64) error {
	courseID, err := uuid.Parse(metadata["courseId"])
	if err != nil {
		return nil
	}
	already, err := w.courseRepo.HasPurchase(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if already {
		return nil
	}
	return w.courseRepo.InsertPurchase(ctx, &db_models.CoursePurchase{
		UserID:        userID,
		CourseID:      courseID,
		PurchasePrice: price,
	})
}

func (w *WebhookService) handleInvoicePaid(ctx context.Context, event *payments.Event) error {
	invoice, err := event.Invoice()
	if err != nil {
		logging.L().Warn("malformed invoice payload", zap.String("event_id", event.ID), logging.Err(err))
		return nil
	}

	user, err := w.userRepo.FindByProviderCustomerID(ctx, invoice.Customer)
	if err != nil {
		return err
	}
	if user == nil {
		logging.L().Warn("invoice for unknown customer",
			zap.String("invoice_id", invoice.ID), zap.String("customer", invoice.Customer))
		return nil
	}

	existing, err := w.txnRepo.FindByProviderRef(ctx, invoice.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		// Duplicate delivery; the invoice id is the idempotency key.
		return nil
	}

	txn := &db_models.Transaction{
		UserID:      user.ID,
		Amount:      utils.MinorToAmount(invoice.AmountPaid),
		Currency:    invoice.Currency,
		Status:      db_models.TxnStatusSucceeded,
		ProviderRef: invoice.ID,
	}
	if err := w.txnRepo.Insert(ctx, txn); err != nil {
		return err
	}

	return w.maybeCreateCommission(ctx, user, txn)
}

// maybeCreateCommission awards the referrer a commission for the
// referred user's first successful payment, and only that one.
func (w *WebhookService) maybeCreateCommission(ctx context.Context, user *db_models.User, txn *db_models.Transaction) error {
	if user.ReferredByID == nil {
		return nil
	}

	succeeded, err := w.txnRepo.CountSucceededByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	// The count includes the transaction just inserted.
	if succeeded > 1 {
		return nil
	}

	exists, err := w.commissionRepo.ExistsForTransaction(ctx, txn.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	rate := w.settings.Float(ctx, db_models.SettingCommissionRate, 20) / 100
	commission := &db_models.Commission{
		AffiliateID:         *user.ReferredByID,
		Amount:              txn.Amount * rate,
		Currency:            txn.Currency,
		SourceTransactionID: txn.ID,
	}
	if err := w.commissionRepo.Insert(ctx, commission); err != nil {
		return err
	}

	logging.L().Info("commission created",
		zap.String("affiliate_id", user.ReferredByID.String()),
		zap.String("transaction_id", txn.ID.String()),
		zap.Float64("amount", commission.Amount))
	return nil
}

var subscriptionStatusMap = map[string]db_models.SubscriptionStatus{
	"trialing":           db_models.SubStatusTrialing,
	"active":             db_models.SubStatusActive,
	"past_due":           db_models.SubStatusPastDue,
	"canceled":           db_models.SubStatusCanceled,
	"unpaid":             db_models.SubStatusPastDue,
	"incomplete":         db_models.SubStatusIncomplete,
	"incomplete_expired": db_models.SubStatusIncomplete,
}

// mapSubscriptionStatus translates a processor status string; statuses
// we do not model are treated as INCOMPLETE rather than dropping access
// state on the floor.
func mapSubscriptionStatus(status string) db_models.SubscriptionStatus {
	if mapped, ok := subscriptionStatusMap[status]; ok {
		return mapped
	}
	return db_models.SubStatusIncomplete
}

func (w *WebhookService) handleSubscriptionUpsert(ctx context.Context, event *payments.Event) error {
	sub, err := event.Subscription()
	if err != nil {
		logging.L().Warn("malformed subscription payload", zap.String("event_id", event.ID), logging.Err(err))
		return nil
	}

	user, err := w.userRepo.FindByProviderCustomerID(ctx, sub.Customer)
	if err != nil {
		return err
	}
	if user == nil {
		logging.L().Warn("subscription event for unknown customer",
			zap.String("subscription_id", sub.ID), zap.String("customer", sub.Customer))
		return nil
	}

	status := mapSubscriptionStatus(sub.Status)
	periodEnd := subscriptionPeriodEnd(sub)
	return w.userRepo.UpdateSubscriptionState(ctx, user.ID, sub.ID, status, periodEnd, sub.CancelAtPeriodEnd)
}

// subscriptionPeriodEnd picks the moment access actually ends: the
// scheduled cancellation time when one is set, otherwise the end of the
// current billing period.
func subscriptionPeriodEnd(sub *payments.Subscription) *int64 {
	sec := sub.CurrentPeriodEnd
	if sub.CancelAtPeriodEnd && sub.CancelAt > 0 {
		sec = sub.CancelAt
	}
	end := utils.FromEpochSeconds(sec)
	if end.IsZero() {
		return nil
	}
	unix := end.Unix()
	return &unix
}

func (w *WebhookService) handleSubscriptionDeleted(ctx context.Context, event *payments.Event) error {
	sub, err := event.Subscription()
	if err != nil {
		logging.L().Warn("malformed subscription payload", zap.String("event_id", event.ID), logging.Err(err))
		return nil
	}

	rows, err := w.userRepo.CancelByProviderSubID(ctx, sub.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		logging.L().Warn("subscription.deleted for unknown subscription", zap.String("subscription_id", sub.ID))
	}
	return nil
}

func metadataJSON(metadata map[string]string) datatypes.JSON {
	if len(metadata) == 0 {
		return datatypes.JSON([]byte("{}"))
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}
