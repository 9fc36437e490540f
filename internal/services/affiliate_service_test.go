package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influhub/internal/models/db_models"
	"influhub/pkg/utils"
)

type affiliateFixture struct {
	service     AffiliateServiceInterface
	users       *fakeUserRepo
	txns        *fakeTransactionRepo
	commissions *fakeCommissionRepo
	payouts     *fakePayoutRepo
	settings    *fakeSettingRepo
}

func newAffiliateFixture() *affiliateFixture {
	txns := newFakeTransactionRepo()
	users := newFakeUserRepo(txns)
	commissions := newFakeCommissionRepo(users)
	payouts := newFakePayoutRepo(commissions)
	settings := newFakeSettingRepo()

	return &affiliateFixture{
		service:     NewAffiliateService(users, txns, commissions, payouts, NewSettingsService(settings), "https://influencecontact.com"),
		users:       users,
		txns:        txns,
		commissions: commissions,
		payouts:     payouts,
		settings:    settings,
	}
}

func (f *affiliateFixture) seedAffiliate(t *testing.T) *db_models.User {
	t.Helper()
	ctx := context.Background()

	affiliate := &db_models.User{FirstName: "Alex", LastName: "Smith", Email: "alex@example.com"}
	require.NoError(t, f.users.Insert(ctx, affiliate))
	// Affiliate features unlock with the member's own first payment.
	require.NoError(t, f.txns.Insert(ctx, &db_models.Transaction{
		UserID: affiliate.ID, Amount: 100, Currency: "eur",
		Status: db_models.TxnStatusSucceeded, ProviderRef: "in_self",
	}))
	return affiliate
}

func (f *affiliateFixture) seedCommission(t *testing.T, affiliate *db_models.User, amount float64) {
	t.Helper()
	ctx := context.Background()

	referred := &db_models.User{Email: "ref@example.com", ReferredByID: &affiliate.ID}
	require.NoError(t, f.users.Insert(ctx, referred))
	txn := &db_models.Transaction{
		UserID: referred.ID, Amount: amount * 5, Currency: "eur",
		Status: db_models.TxnStatusSucceeded, ProviderRef: "in_" + referred.ID.String(),
	}
	require.NoError(t, f.txns.Insert(ctx, txn))
	require.NoError(t, f.commissions.Insert(ctx, &db_models.Commission{
		AffiliateID:         affiliate.ID,
		Amount:              amount,
		Currency:            "eur",
		SourceTransactionID: txn.ID,
	}))
}

func TestDashboardLockedBeforeFirstPayment(t *testing.T) {
	f := newAffiliateFixture()
	ctx := context.Background()

	user := &db_models.User{Email: "new@example.com"}
	require.NoError(t, f.users.Insert(ctx, user))

	_, err := f.service.Dashboard(ctx, user.ID)
	assert.ErrorIs(t, err, utils.ErrAffiliateLocked)
}

func TestDashboardAggregatesReferralsAndUnpaid(t *testing.T) {
	f := newAffiliateFixture()
	ctx := context.Background()

	affiliate := f.seedAffiliate(t)
	f.seedCommission(t, affiliate, 20)
	f.seedCommission(t, affiliate, 20)

	// A referral who signed up but never paid.
	freeloader := &db_models.User{Email: "free@example.com", ReferredByID: &affiliate.ID}
	require.NoError(t, f.users.Insert(ctx, freeloader))

	dashboard, err := f.service.Dashboard(ctx, affiliate.ID)
	require.NoError(t, err)

	assert.Contains(t, dashboard.ReferralLink, affiliate.ID.String())
	assert.Equal(t, 3, dashboard.Stats.TotalReferrals)
	assert.Equal(t, 2, dashboard.Stats.PaidReferrals)
	assert.Equal(t, 40.0, dashboard.Stats.TotalUnpaidCommissions)
	assert.Len(t, dashboard.ReferredUsers, 3)
}

func TestRequestPayoutBelowThreshold(t *testing.T) {
	f := newAffiliateFixture()
	ctx := context.Background()

	affiliate := f.seedAffiliate(t)
	f.seedCommission(t, affiliate, 20)
	f.seedCommission(t, affiliate, 20)

	_, err := f.service.RequestPayout(ctx, affiliate.ID)
	assert.ErrorIs(t, err, utils.ErrPayoutBelowThreshold)
	assert.Empty(t, f.payouts.payouts)
}

func TestRequestPayoutWithNoCommissions(t *testing.T) {
	f := newAffiliateFixture()
	ctx := context.Background()

	affiliate := f.seedAffiliate(t)

	_, err := f.service.RequestPayout(ctx, affiliate.ID)
	assert.ErrorIs(t, err, utils.ErrNoUnpaidCommissions)
}

func TestRequestPayoutClaimsAllUnpaidCommissions(t *testing.T) {
	f := newAffiliateFixture()
	ctx := context.Background()

	affiliate := f.seedAffiliate(t)
	for i := 0; i < 5; i++ {
		f.seedCommission(t, affiliate, 20)
	}

	payout, err := f.service.RequestPayout(ctx, affiliate.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, payout.Amount)
	assert.Equal(t, "eur", payout.Currency)
	assert.Equal(t, string(db_models.PayoutStatusPending), payout.Status)

	unpaid, err := f.commissions.ListUnpaidByAffiliate(ctx, affiliate.ID)
	require.NoError(t, err)
	assert.Empty(t, unpaid)
}

func TestRequestPayoutRejectsSecondPending(t *testing.T) {
	f := newAffiliateFixture()
	ctx := context.Background()

	affiliate := f.seedAffiliate(t)
	for i := 0; i < 5; i++ {
		f.seedCommission(t, affiliate, 20)
	}

	_, err := f.service.RequestPayout(ctx, affiliate.ID)
	require.NoError(t, err)

	f.seedCommission(t, affiliate, 120)
	_, err = f.service.RequestPayout(ctx, affiliate.ID)
	assert.ErrorIs(t, err, utils.ErrPendingPayoutExists)
	assert.Len(t, f.payouts.payouts, 1)
}

func TestRequestPayoutAllowedAfterPreviousResolved(t *testing.T) {
	f := newAffiliateFixture()
	ctx := context.Background()

	affiliate := f.seedAffiliate(t)
	for i := 0; i < 5; i++ {
		f.seedCommission(t, affiliate, 20)
	}

	first, err := f.service.RequestPayout(ctx, affiliate.ID)
	require.NoError(t, err)

	firstID := f.payouts.payouts[0].ID
	_, err = f.payouts.UpdateStatus(ctx, firstID, db_models.PayoutStatusPaid, 1)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		f.seedCommission(t, affiliate, 20)
	}
	second, err := f.service.RequestPayout(ctx, affiliate.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 120.0, second.Amount)
}
