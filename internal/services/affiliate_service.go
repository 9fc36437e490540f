package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"influhub/internal/models/db_models"
	"influhub/internal/models/response_models"
	"influhub/internal/repositories"
	"influhub/pkg/logging"
	"influhub/pkg/utils"
)

type AffiliateServiceInterface interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*response_models.AffiliateDashboardResponse, error)
	ListPayouts(ctx context.Context, userID uuid.UUID) ([]response_models.PayoutRequestResponse, error)
	RequestPayout(ctx context.Context, userID uuid.UUID) (*response_models.PayoutRequestResponse, error)
}

type AffiliateService struct {
	userRepo       repositories.UserRepository
	txnRepo        repositories.TransactionRepository
	commissionRepo repositories.CommissionRepository
	payoutRepo     repositories.PayoutRepository
	settings       SettingsServiceInterface
	appBaseURL     string
}

func NewAffiliateService(
	userRepo repositories.UserRepository,
	txnRepo repositories.TransactionRepository,
	commissionRepo repositories.CommissionRepository,
	payoutRepo repositories.PayoutRepository,
	settings SettingsServiceInterface,
	appBaseURL string,
) AffiliateServiceInterface {
	return &AffiliateService{
		userRepo:       userRepo,
		txnRepo:        txnRepo,
		commissionRepo: commissionRepo,
		payoutRepo:     payoutRepo,
		settings:       settings,
		appBaseURL:     appBaseURL,
	}
}

// requireUnlocked gates affiliate features behind the user's own first
// successful payment.
func (a *AffiliateService) requireUnlocked(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	paid, err := a.txnRepo.CountSucceededByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if paid == 0 {
		return nil, utils.ErrAffiliateLocked
	}
	return user, nil
}

func (a *AffiliateService) Dashboard(ctx context.Context, userID uuid.UUID) (*response_models.AffiliateDashboardResponse, error) {
	user, err := a.requireUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	referrals, err := a.userRepo.ListReferrals(ctx, user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	unpaid, err := a.commissionRepo.ListUnpaidByAffiliate(ctx, user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	var unpaidTotal float64
	for _, commission := range unpaid {
		unpaidTotal += commission.Amount
	}

	referred := make([]response_models.ReferredUserItem, 0, len(referrals))
	paidCount := 0
	for _, row := range referrals {
		if row.HasPaid {
			paidCount++
		}
		referred = append(referred, response_models.ReferredUserItem{
			ID:         row.ID.String(),
			Name:       row.FirstName + " " + row.LastName,
			SignedUpAt: row.CreatedAt,
			HasPaid:    row.HasPaid,
		})
	}

	return &response_models.AffiliateDashboardResponse{
		ReferralLink: a.appBaseURL + "/signup?ref=" + user.ID.String(),
		Stats: response_models.AffiliateStats{
			TotalReferrals:         len(referrals),
			PaidReferrals:          paidCount,
			TotalUnpaidCommissions: unpaidTotal,
		},
		ReferredUsers: referred,
	}, nil
}

func (a *AffiliateService) ListPayouts(ctx context.Context, userID uuid.UUID) ([]response_models.PayoutRequestResponse, error) {
	user, err := a.requireUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	payouts, err := a.payoutRepo.ListByAffiliate(ctx, user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.PayoutRequestResponse, 0, len(payouts))
	for _, payout := range payouts {
		out = append(out, payoutResponse(&payout))
	}
	return out, nil
}

func (a *AffiliateService) RequestPayout(ctx context.Context, userID uuid.UUID) (*response_models.PayoutRequestResponse, error) {
	user, err := a.requireUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := a.payoutRepo.HasPending(ctx, user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if pending {
		return nil, utils.ErrPendingPayoutExists
	}

	unpaid, err := a.commissionRepo.ListUnpaidByAffiliate(ctx, user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if len(unpaid) == 0 {
		return nil, utils.ErrNoUnpaidCommissions
	}

	var total float64
	for _, commission := range unpaid {
		total += commission.Amount
	}

	threshold := a.settings.Float(ctx, db_models.SettingMinimumPayout, 100)
	if total < threshold {
		return nil, utils.ErrPayoutBelowThreshold
	}

	ids := make([]uuid.UUID, 0, len(unpaid))
	for _, commission := range unpaid {
		ids = append(ids, commission.ID)
	}

	payout := &db_models.PayoutRequest{
		AffiliateID: user.ID,
		Amount:      total,
		Currency:    unpaid[0].Currency,
		Status:      db_models.PayoutStatusPending,
		RequestedAt: time.Now().Unix(),
	}
	if err := a.payoutRepo.CreateWithClaim(ctx, payout, ids); err != nil {
		switch err {
		case utils.ErrPendingPayoutExists, utils.ErrNoUnpaidCommissions:
			return nil, err
		}
		logging.L().Error("payout claim failed", zap.String("affiliate_id", user.ID.String()), logging.Err(err))
		return nil, utils.ErrDatabaseError
	}

	response := payoutResponse(payout)
	return &response, nil
}

func payoutResponse(payout *db_models.PayoutRequest) response_models.PayoutRequestResponse {
	return response_models.PayoutRequestResponse{
		ID:          payout.ID.String(),
		Status:      string(payout.Status),
		Amount:      payout.Amount,
		Currency:    payout.Currency,
		RequestedAt: payout.RequestedAt,
	}
}
