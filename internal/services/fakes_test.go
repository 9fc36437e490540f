package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"influhub/internal/models/db_models"
	"influhub/internal/repositories"
	"influhub/pkg/utils"
)

// In-memory repository doubles. They mirror the persistence contracts
// closely enough for service-level behavior tests: nil on not-found,
// rows-affected semantics, and the payout claim transaction.

func stamp(base *db_models.BaseModel) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	now := time.Now().Unix()
	if base.CreatedAt == 0 {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

type fakeUserRepo struct {
	users map[uuid.UUID]*db_models.User
	txns  *fakeTransactionRepo
}

func newFakeUserRepo(txns *fakeTransactionRepo) *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*db_models.User), txns: txns}
}

func (f *fakeUserRepo) Insert(_ context.Context, user *db_models.User) error {
	stamp(&user.BaseModel)
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *db_models.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByProviderCustomerID(_ context.Context, customerID string) (*db_models.User, error) {
	if customerID == "" {
		return nil, nil
	}
	for _, user := range f.users {
		if user.ProviderCustomerID == customerID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateSubscriptionState(_ context.Context, userID uuid.UUID, providerSubID string, status db_models.SubscriptionStatus, periodEnd *int64, cancelScheduled bool) error {
	user, ok := f.users[userID]
	if !ok {
		return nil
	}
	user.ProviderSubID = providerSubID
	user.SubscriptionStatus = status
	user.CurrentPeriodEnd = periodEnd
	user.CancelAtPeriodEnd = cancelScheduled
	return nil
}

func (f *fakeUserRepo) UpdatePeriodEnd(_ context.Context, userID uuid.UUID, periodEnd *int64) error {
	if user, ok := f.users[userID]; ok {
		user.CurrentPeriodEnd = periodEnd
	}
	return nil
}

func (f *fakeUserRepo) CancelByProviderSubID(_ context.Context, providerSubID string) (int64, error) {
	var rows int64
	for _, user := range f.users {
		if user.ProviderSubID == providerSubID {
			user.SubscriptionStatus = db_models.SubStatusCanceled
			user.CurrentPeriodEnd = nil
			user.CancelAtPeriodEnd = false
			rows++
		}
	}
	return rows, nil
}

func (f *fakeUserRepo) ConsumeCourseDiscount(_ context.Context, userID uuid.UUID) (bool, error) {
	user, ok := f.users[userID]
	if !ok || user.AvailableCourseDiscounts <= 0 {
		return false, nil
	}
	user.AvailableCourseDiscounts--
	return true, nil
}

func (f *fakeUserRepo) CountReferrals(_ context.Context, affiliateID uuid.UUID) (int64, error) {
	var n int64
	for _, user := range f.users {
		if user.ReferredByID != nil && *user.ReferredByID == affiliateID {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) ListReferrals(ctx context.Context, affiliateID uuid.UUID) ([]repositories.ReferralRow, error) {
	var rows []repositories.ReferralRow
	for _, user := range f.users {
		if user.ReferredByID == nil || *user.ReferredByID != affiliateID {
			continue
		}
		hasPaid := false
		if f.txns != nil {
			n, _ := f.txns.CountSucceededByUser(ctx, user.ID)
			hasPaid = n > 0
		}
		rows = append(rows, repositories.ReferralRow{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			CreatedAt: user.CreatedAt,
			HasPaid:   hasPaid,
		})
	}
	return rows, nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) HasActiveMembership(_ context.Context, userID string) (bool, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return false, nil
	}
	user, ok := f.users[id]
	if !ok {
		return false, nil
	}
	return user.SubscriptionStatus == db_models.SubStatusActive ||
		user.SubscriptionStatus == db_models.SubStatusTrialing, nil
}

type fakeTransactionRepo struct {
	txns []*db_models.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{}
}

func (f *fakeTransactionRepo) Insert(_ context.Context, txn *db_models.Transaction) error {
	stamp(&txn.BaseModel)
	copied := *txn
	f.txns = append(f.txns, &copied)
	return nil
}

func (f *fakeTransactionRepo) FindByProviderRef(_ context.Context, ref string) (*db_models.Transaction, error) {
	for _, txn := range f.txns {
		if txn.ProviderRef == ref {
			copied := *txn
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTransactionRepo) UpdateStatusByProviderRef(_ context.Context, ref string, status db_models.TransactionStatus) (int64, error) {
	var rows int64
	for _, txn := range f.txns {
		if txn.ProviderRef == ref {
			txn.Status = status
			rows++
		}
	}
	return rows, nil
}

func (f *fakeTransactionRepo) CountSucceededByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, txn := range f.txns {
		if txn.UserID == userID && txn.Status == db_models.TxnStatusSucceeded {
			n++
		}
	}
	return n, nil
}

func (f *fakeTransactionRepo) CountSucceeded(_ context.Context) (int64, error) {
	var n int64
	for _, txn := range f.txns {
		if txn.Status == db_models.TxnStatusSucceeded {
			n++
		}
	}
	return n, nil
}

func (f *fakeTransactionRepo) SumSucceeded(_ context.Context) (float64, error) {
	var sum float64
	for _, txn := range f.txns {
		if txn.Status == db_models.TxnStatusSucceeded {
			sum += txn.Amount
		}
	}
	return sum, nil
}

func (f *fakeTransactionRepo) MonthlyRevenue(_ context.Context, since time.Time) ([]repositories.RevenueBucket, error) {
	buckets := make(map[time.Time]float64)
	for _, txn := range f.txns {
		if txn.Status != db_models.TxnStatusSucceeded || txn.CreatedAt < since.Unix() {
			continue
		}
		created := time.Unix(txn.CreatedAt, 0).UTC()
		month := time.Date(created.Year(), created.Month(), 1, 0, 0, 0, 0, time.UTC)
		buckets[month] += txn.Amount
	}
	var rows []repositories.RevenueBucket
	for month, sum := range buckets {
		rows = append(rows, repositories.RevenueBucket{Bucket: month, Sum: sum})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Bucket.Before(rows[j].Bucket) })
	return rows, nil
}

type fakeCommissionRepo struct {
	commissions []*db_models.Commission
	users       *fakeUserRepo
}

func newFakeCommissionRepo(users *fakeUserRepo) *fakeCommissionRepo {
	return &fakeCommissionRepo{users: users}
}

func (f *fakeCommissionRepo) Insert(_ context.Context, commission *db_models.Commission) error {
	stamp(&commission.BaseModel)
	copied := *commission
	f.commissions = append(f.commissions, &copied)
	return nil
}

func (f *fakeCommissionRepo) ExistsForTransaction(_ context.Context, transactionID uuid.UUID) (bool, error) {
	for _, commission := range f.commissions {
		if commission.SourceTransactionID == transactionID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCommissionRepo) ListUnpaidByAffiliate(_ context.Context, affiliateID uuid.UUID) ([]db_models.Commission, error) {
	var out []db_models.Commission
	for _, commission := range f.commissions {
		if commission.AffiliateID == affiliateID && commission.PayoutRequestID == nil {
			out = append(out, *commission)
		}
	}
	return out, nil
}

func (f *fakeCommissionRepo) Leaderboard(ctx context.Context, limit int) ([]repositories.LeaderboardRow, error) {
	totals := make(map[uuid.UUID]float64)
	for _, commission := range f.commissions {
		totals[commission.AffiliateID] += commission.Amount
	}
	var rows []repositories.LeaderboardRow
	for affiliateID, total := range totals {
		user, _ := f.users.FindByID(ctx, affiliateID)
		if user == nil {
			continue
		}
		referrals, _ := f.users.CountReferrals(ctx, affiliateID)
		rows = append(rows, repositories.LeaderboardRow{
			ID:              affiliateID,
			FirstName:       user.FirstName,
			LastName:        user.LastName,
			Email:           user.Email,
			TotalCommission: total,
			Referrals:       referrals,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalCommission != rows[j].TotalCommission {
			return rows[i].TotalCommission > rows[j].TotalCommission
		}
		return rows[i].Referrals > rows[j].Referrals
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type fakePayoutRepo struct {
	payouts     []*db_models.PayoutRequest
	commissions *fakeCommissionRepo
}

func newFakePayoutRepo(commissions *fakeCommissionRepo) *fakePayoutRepo {
	return &fakePayoutRepo{commissions: commissions}
}

func (f *fakePayoutRepo) HasPending(_ context.Context, affiliateID uuid.UUID) (bool, error) {
	for _, payout := range f.payouts {
		if payout.AffiliateID == affiliateID && payout.Status == db_models.PayoutStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayoutRepo) CreateWithClaim(ctx context.Context, payout *db_models.PayoutRequest, commissionIDs []uuid.UUID) error {
	if pending, _ := f.HasPending(ctx, payout.AffiliateID); pending {
		return utils.ErrPendingPayoutExists
	}
	stamp(&payout.BaseModel)

	var claimed int
	for _, commission := range f.commissions.commissions {
		for _, id := range commissionIDs {
			if commission.ID == id && commission.PayoutRequestID == nil {
				payoutID := payout.ID
				commission.PayoutRequestID = &payoutID
				claimed++
			}
		}
	}
	if claimed != len(commissionIDs) {
		for _, commission := range f.commissions.commissions {
			if commission.PayoutRequestID != nil && *commission.PayoutRequestID == payout.ID {
				commission.PayoutRequestID = nil
			}
		}
		return utils.ErrNoUnpaidCommissions
	}

	copied := *payout
	f.payouts = append(f.payouts, &copied)
	return nil
}

func (f *fakePayoutRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.PayoutRequest, error) {
	for _, payout := range f.payouts {
		if payout.ID == id {
			copied := *payout
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePayoutRepo) UpdateStatus(_ context.Context, id uuid.UUID, status db_models.PayoutStatus, processedAt int64) (*db_models.PayoutRequest, error) {
	for _, payout := range f.payouts {
		if payout.ID == id {
			payout.Status = status
			payout.ProcessedAt = &processedAt
			copied := *payout
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePayoutRepo) ListByStatus(_ context.Context, status db_models.PayoutStatus) ([]db_models.PayoutRequest, error) {
	var out []db_models.PayoutRequest
	for _, payout := range f.payouts {
		if payout.Status == status {
			out = append(out, *payout)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt < out[j].RequestedAt })
	return out, nil
}

func (f *fakePayoutRepo) ListByAffiliate(_ context.Context, affiliateID uuid.UUID) ([]db_models.PayoutRequest, error) {
	var out []db_models.PayoutRequest
	for _, payout := range f.payouts {
		if payout.AffiliateID == affiliateID {
			out = append(out, *payout)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt > out[j].RequestedAt })
	return out, nil
}

type fakeSettingRepo struct {
	values map[string]string
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{values: make(map[string]string)}
}

func (f *fakeSettingRepo) Get(_ context.Context, key string) (*db_models.Setting, error) {
	value, ok := f.values[key]
	if !ok {
		return nil, nil
	}
	return &db_models.Setting{Key: key, Value: value}, nil
}

func (f *fakeSettingRepo) List(_ context.Context) ([]db_models.Setting, error) {
	var out []db_models.Setting
	for key, value := range f.values {
		out = append(out, db_models.Setting{Key: key, Value: value})
	}
	return out, nil
}

func (f *fakeSettingRepo) UpsertMany(_ context.Context, values map[string]string) error {
	for key, value := range values {
		f.values[key] = value
	}
	return nil
}

type fakeCourseRepo struct {
	courses   map[uuid.UUID]*db_models.VideoCourse
	sections  map[uuid.UUID]*db_models.Section
	videos    map[uuid.UUID]*db_models.Video
	progress  map[uuid.UUID]map[uuid.UUID]*db_models.VideoProgress
	purchases []*db_models.CoursePurchase
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:  make(map[uuid.UUID]*db_models.VideoCourse),
		sections: make(map[uuid.UUID]*db_models.Section),
		videos:   make(map[uuid.UUID]*db_models.Video),
		progress: make(map[uuid.UUID]map[uuid.UUID]*db_models.VideoProgress),
	}
}

func (f *fakeCourseRepo) assemble(course *db_models.VideoCourse) *db_models.VideoCourse {
	copied := *course
	copied.Sections = nil
	for _, section := range f.sections {
		if section.CourseID != course.ID {
			continue
		}
		sectionCopy := *section
		sectionCopy.Videos = nil
		for _, video := range f.videos {
			if video.SectionID == section.ID {
				sectionCopy.Videos = append(sectionCopy.Videos, *video)
			}
		}
		sort.Slice(sectionCopy.Videos, func(i, j int) bool {
			return sectionCopy.Videos[i].Order < sectionCopy.Videos[j].Order
		})
		copied.Sections = append(copied.Sections, sectionCopy)
	}
	sort.Slice(copied.Sections, func(i, j int) bool {
		return copied.Sections[i].Order < copied.Sections[j].Order
	})
	return &copied
}

func (f *fakeCourseRepo) ListCourses(_ context.Context) ([]db_models.VideoCourse, error) {
	var out []db_models.VideoCourse
	for _, course := range f.courses {
		out = append(out, *f.assemble(course))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeCourseRepo) FindCourseByID(_ context.Context, id uuid.UUID) (*db_models.VideoCourse, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, nil
	}
	return f.assemble(course), nil
}

func (f *fakeCourseRepo) InsertCourse(_ context.Context, course *db_models.VideoCourse) error {
	stamp(&course.BaseModel)
	copied := *course
	f.courses[course.ID] = &copied
	return nil
}

func (f *fakeCourseRepo) UpdateCourse(_ context.Context, course *db_models.VideoCourse) error {
	copied := *course
	f.courses[course.ID] = &copied
	return nil
}

func (f *fakeCourseRepo) DeleteCourse(_ context.Context, id uuid.UUID) error {
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) FindSectionByID(_ context.Context, id uuid.UUID) (*db_models.Section, error) {
	section, ok := f.sections[id]
	if !ok {
		return nil, nil
	}
	copied := *section
	return &copied, nil
}

func (f *fakeCourseRepo) InsertSection(_ context.Context, section *db_models.Section) error {
	stamp(&section.BaseModel)
	copied := *section
	f.sections[section.ID] = &copied
	return nil
}

func (f *fakeCourseRepo) UpdateSection(_ context.Context, section *db_models.Section) error {
	copied := *section
	f.sections[section.ID] = &copied
	return nil
}

func (f *fakeCourseRepo) DeleteSection(_ context.Context, id uuid.UUID) error {
	delete(f.sections, id)
	return nil
}

func (f *fakeCourseRepo) FindVideoByID(_ context.Context, id uuid.UUID) (*db_models.Video, error) {
	video, ok := f.videos[id]
	if !ok {
		return nil, nil
	}
	copied := *video
	return &copied, nil
}

func (f *fakeCourseRepo) InsertVideo(_ context.Context, video *db_models.Video) error {
	stamp(&video.BaseModel)
	copied := *video
	f.videos[video.ID] = &copied
	return nil
}

func (f *fakeCourseRepo) UpdateVideo(_ context.Context, video *db_models.Video) error {
	copied := *video
	f.videos[video.ID] = &copied
	return nil
}

func (f *fakeCourseRepo) DeleteVideo(_ context.Context, id uuid.UUID) error {
	delete(f.videos, id)
	return nil
}

func (f *fakeCourseRepo) ReorderVideos(_ context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		if video, ok := f.videos[id]; ok && video.SectionID == sectionID {
			video.Order = i
		}
	}
	return nil
}

func (f *fakeCourseRepo) CountVideos(_ context.Context, courseID uuid.UUID) (int64, error) {
	var n int64
	for _, video := range f.videos {
		section, ok := f.sections[video.SectionID]
		if ok && section.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCourseRepo) CountCompleted(_ context.Context, courseID, userID uuid.UUID) (int64, error) {
	var n int64
	for videoID, progress := range f.progress[userID] {
		if !progress.Completed {
			continue
		}
		video, ok := f.videos[videoID]
		if !ok {
			continue
		}
		section, ok := f.sections[video.SectionID]
		if ok && section.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCourseRepo) ListProgress(_ context.Context, userID uuid.UUID, videoIDs []uuid.UUID) ([]db_models.VideoProgress, error) {
	var out []db_models.VideoProgress
	for _, videoID := range videoIDs {
		if progress, ok := f.progress[userID][videoID]; ok {
			out = append(out, *progress)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) UpsertProgress(_ context.Context, userID, videoID uuid.UUID, completed bool, completedAt *int64) error {
	if f.progress[userID] == nil {
		f.progress[userID] = make(map[uuid.UUID]*db_models.VideoProgress)
	}
	entry, ok := f.progress[userID][videoID]
	if !ok {
		entry = &db_models.VideoProgress{UserID: userID, VideoID: videoID}
		stamp(&entry.BaseModel)
		f.progress[userID][videoID] = entry
	}
	entry.Completed = completed
	entry.CompletedAt = completedAt
	return nil
}

func (f *fakeCourseRepo) HasPurchase(_ context.Context, userID, courseID uuid.UUID) (bool, error) {
	for _, purchase := range f.purchases {
		if purchase.UserID == userID && purchase.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseRepo) InsertPurchase(_ context.Context, purchase *db_models.CoursePurchase) error {
	stamp(&purchase.BaseModel)
	copied := *purchase
	f.purchases = append(f.purchases, &copied)
	return nil
}

func (f *fakeCourseRepo) ListPurchasedCourseIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, purchase := range f.purchases {
		if purchase.UserID == userID {
			ids = append(ids, purchase.CourseID)
		}
	}
	return ids, nil
}

func (f *fakeCourseRepo) CountCourses(_ context.Context) (int64, error) {
	return int64(len(f.courses)), nil
}

type fakeProductRepo struct {
	products []*db_models.WinningProduct
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{}
}

func (f *fakeProductRepo) sorted(category string) []*db_models.WinningProduct {
	var out []*db_models.WinningProduct
	for _, product := range f.products {
		if category == "" || product.Category == category {
			out = append(out, product)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TrendScore > out[j].TrendScore })
	return out
}

func (f *fakeProductRepo) List(_ context.Context, category string, limit, offset int) ([]db_models.WinningProduct, error) {
	all := f.sorted(category)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	var out []db_models.WinningProduct
	for _, product := range all[offset:end] {
		out = append(out, *product)
	}
	return out, nil
}

func (f *fakeProductRepo) Count(_ context.Context, category string) (int64, error) {
	return int64(len(f.sorted(category))), nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.WinningProduct, error) {
	for _, product := range f.products {
		if product.ID == id {
			copied := *product
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Insert(_ context.Context, product *db_models.WinningProduct) error {
	stamp(&product.BaseModel)
	copied := *product
	f.products = append(f.products, &copied)
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	for i, product := range f.products {
		if product.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeProductRepo) ListUnenriched(_ context.Context, limit int) ([]db_models.WinningProduct, error) {
	var out []db_models.WinningProduct
	for _, product := range f.sorted("") {
		if product.AISummary == nil {
			out = append(out, *product)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProductRepo) SetSummary(_ context.Context, id uuid.UUID, summary string) error {
	for _, product := range f.products {
		if product.ID == id {
			product.AISummary = &summary
		}
	}
	return nil
}
