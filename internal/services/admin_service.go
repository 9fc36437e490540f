package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"influhub/internal/models/db_models"
	"influhub/internal/models/request_models"
	"influhub/internal/models/response_models"
	"influhub/internal/payments"
	"influhub/internal/repositories"
	"influhub/pkg/logging"
	"influhub/pkg/utils"
)

const leaderboardSize = 5

type AdminServiceInterface interface {
	Leaderboard(ctx context.Context) ([]response_models.LeaderboardEntry, error)
	ListPayouts(ctx context.Context, status string) ([]response_models.AdminPayoutItem, error)
	UpdatePayoutStatus(ctx context.Context, payoutID string, request request_models.UpdatePayoutStatusRequest) (*response_models.PayoutRequestResponse, error)
	Stats(ctx context.Context) (*response_models.AdminStatsResponse, error)

	Settings(ctx context.Context) (map[string]string, error)
	UpdateSettings(ctx context.Context, request request_models.UpdateSettingsRequest) error

	CreateCourse(ctx context.Context, request request_models.CourseRequest) (*db_models.VideoCourse, error)
	UpdateCourse(ctx context.Context, courseID uuid.UUID, request request_models.CourseRequest) (*db_models.VideoCourse, error)
	DeleteCourse(ctx context.Context, courseID uuid.UUID) error
	CreateSection(ctx context.Context, courseID uuid.UUID, request request_models.SectionRequest) (*db_models.Section, error)
	UpdateSection(ctx context.Context, sectionID uuid.UUID, request request_models.SectionRequest) (*db_models.Section, error)
	DeleteSection(ctx context.Context, sectionID uuid.UUID) error
	CreateVideo(ctx context.Context, sectionID uuid.UUID, request request_models.VideoRequest) (*db_models.Video, error)
	UpdateVideo(ctx context.Context, videoID uuid.UUID, request request_models.VideoRequest) (*db_models.Video, error)
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error
	ReorderVideos(ctx context.Context, sectionID uuid.UUID, request request_models.VideoOrderRequest) error
}

type AdminService struct {
	userRepo       repositories.UserRepository
	txnRepo        repositories.TransactionRepository
	commissionRepo repositories.CommissionRepository
	payoutRepo     repositories.PayoutRepository
	courseRepo     repositories.CourseRepository
	productRepo    repositories.ProductRepository
	settings       SettingsServiceInterface
	client         *payments.Client
}

func NewAdminService(
	userRepo repositories.UserRepository,
	txnRepo repositories.TransactionRepository,
	commissionRepo repositories.CommissionRepository,
	payoutRepo repositories.PayoutRepository,
	courseRepo repositories.CourseRepository,
	productRepo repositories.ProductRepository,
	settings SettingsServiceInterface,
	client *payments.Client,
) AdminServiceInterface {
	return &AdminService{
		userRepo:       userRepo,
		txnRepo:        txnRepo,
		commissionRepo: commissionRepo,
		payoutRepo:     payoutRepo,
		courseRepo:     courseRepo,
		productRepo:    productRepo,
		settings:       settings,
		client:         client,
	}
}

func (s *AdminService) Leaderboard(ctx context.Context) ([]response_models.LeaderboardEntry, error) {
	rows, err := s.commissionRepo.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	entries := make([]response_models.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, response_models.LeaderboardEntry{
			ID:              row.ID.String(),
			Name:            row.FirstName + " " + row.LastName,
			Email:           row.Email,
			TotalCommission: row.TotalCommission,
			Subscribers:     row.Referrals,
		})
	}
	return entries, nil
}

func (s *AdminService) ListPayouts(ctx context.Context, status string) ([]response_models.AdminPayoutItem, error) {
	if status == "" {
		status = string(db_models.PayoutStatusPending)
	}
	if !db_models.ValidPayoutStatus(status) {
		return nil, utils.ErrInvalidPayoutStatus
	}

	payouts, err := s.payoutRepo.ListByStatus(ctx, db_models.PayoutStatus(status))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]response_models.AdminPayoutItem, 0, len(payouts))
	for _, payout := range payouts {
		subscribers, err := s.userRepo.CountReferrals(ctx, payout.AffiliateID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		items = append(items, response_models.AdminPayoutItem{
			ID:          payout.ID.String(),
			Status:      string(payout.Status),
			Amount:      payout.Amount,
			Currency:    payout.Currency,
			RequestedAt: payout.RequestedAt,
			ProcessedAt: payout.ProcessedAt,
			Affiliate: response_models.PayoutAffiliate{
				Name:        payout.Affiliate.FirstName + " " + payout.Affiliate.LastName,
				Email:       payout.Affiliate.Email,
				Subscribers: subscribers,
			},
		})
	}
	return items, nil
}

func (s *AdminService) UpdatePayoutStatus(ctx context.Context, payoutID string, request request_models.UpdatePayoutStatusRequest) (*response_models.PayoutRequestResponse, error) {
	id, err := uuid.Parse(payoutID)
	if err != nil {
		return nil, utils.ErrPayoutNotFound
	}
	if !db_models.ValidPayoutStatus(request.Status) {
		return nil, utils.ErrInvalidPayoutStatus
	}

	payout, err := s.payoutRepo.UpdateStatus(ctx, id, db_models.PayoutStatus(request.Status), time.Now().Unix())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if payout == nil {
		return nil, utils.ErrPayoutNotFound
	}

	response := payoutResponse(payout)
	return &response, nil
}

func (s *AdminService) Stats(ctx context.Context) (*response_models.AdminStatsResponse, error) {
	users, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	paid, err := s.txnRepo.CountSucceeded(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	revenue, err := s.txnRepo.SumSucceeded(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	courses, err := s.courseRepo.CountCourses(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	products, err := s.productRepo.Count(ctx, "")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	since := time.Now().AddDate(-1, 0, 0)
	buckets, err := s.txnRepo.MonthlyRevenue(ctx, since)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	chart := make(map[string]float64, len(buckets))
	for _, bucket := range buckets {
		chart[bucket.Bucket.Format("2006-01")] = bucket.Sum
	}

	return &response_models.AdminStatsResponse{
		TotalUsers:          users,
		PaidTransactions:    paid,
		TotalRevenue:        revenue,
		TotalCourses:        courses,
		TotalProducts:       products,
		MonthlyRevenueChart: chart,
	}, nil
}

func (s *AdminService) Settings(ctx context.Context) (map[string]string, error) {
	return s.settings.All(ctx)
}

func (s *AdminService) UpdateSettings(ctx context.Context, request request_models.UpdateSettingsRequest) error {
	return s.settings.Update(ctx, request)
}

func (s *AdminService) CreateCourse(ctx context.Context, request request_models.CourseRequest) (*db_models.VideoCourse, error) {
	course := &db_models.VideoCourse{
		Title:         request.Title,
		Description:   request.Description,
		CoverImageURL: request.CoverImageURL,
		PriceEur:      request.PriceEur,
		PriceUsd:      request.PriceUsd,
		Order:         request.Order,
	}

	// Register a processor-side price so the course shows up in billing
	// exports; the euro price is authoritative.
	if request.PriceEur != nil && *request.PriceEur > 0 {
		price, err := s.client.CreatePrice(ctx, request.Title, utils.AmountToMinor(*request.PriceEur), "eur")
		if err != nil {
			logging.L().Error("create course price failed", logging.Err(err))
			return nil, utils.ErrProviderError
		}
		course.ProviderPriceID = &price.ID
	}

	if err := s.courseRepo.InsertCourse(ctx, course); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return course, nil
}

func (s *AdminService) UpdateCourse(ctx context.Context, courseID uuid.UUID, request request_models.CourseRequest) (*db_models.VideoCourse, error) {
	course, err := s.courseRepo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if course == nil {
		return nil, utils.ErrCourseNotFound
	}

	course.Title = request.Title
	course.Description = request.Description
	course.CoverImageURL = request.CoverImageURL
	course.PriceEur = request.PriceEur
	course.PriceUsd = request.PriceUsd
	course.Order = request.Order
	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return course, nil
}

func (s *AdminService) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
	course, err := s.courseRepo.FindCourseByID(ctx, courseID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if course == nil {
		return utils.ErrCourseNotFound
	}
	if err := s.courseRepo.DeleteCourse(ctx, courseID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *AdminService) CreateSection(ctx context.Context, courseID uuid.UUID, request request_models.SectionRequest) (*db_models.Section, error) {
	course, err := s.courseRepo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if course == nil {
		return nil, utils.ErrCourseNotFound
	}

	section := &db_models.Section{
		CourseID: courseID,
		Title:    request.Title,
		Order:    request.Order,
	}
	if err := s.courseRepo.InsertSection(ctx, section); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return section, nil
}

func (s *AdminService) UpdateSection(ctx context.Context, sectionID uuid.UUID, request request_models.SectionRequest) (*db_models.Section, error) {
	section, err := s.courseRepo.FindSectionByID(ctx, sectionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if section == nil {
		return nil, utils.ErrSectionNotFound
	}

	section.Title = request.Title
	section.Order = request.Order
	if err := s.courseRepo.UpdateSection(ctx, section); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return section, nil
}

func (s *AdminService) DeleteSection(ctx context.Context, sectionID uuid.UUID) error {
	section, err := s.courseRepo.FindSectionByID(ctx, sectionID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if section == nil {
		return utils.ErrSectionNotFound
	}
	if err := s.courseRepo.DeleteSection(ctx, sectionID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *AdminService) CreateVideo(ctx context.Context, sectionID uuid.UUID, request request_models.VideoRequest) (*db_models.Video, error) {
	section, err := s.courseRepo.FindSectionByID(ctx, sectionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if section == nil {
		return nil, utils.ErrSectionNotFound
	}

	video := &db_models.Video{
		SectionID:   sectionID,
		Title:       request.Title,
		Description: request.Description,
		VimeoID:     request.VimeoID,
		Duration:    request.Duration,
		Order:       request.Order,
	}
	if err := s.courseRepo.InsertVideo(ctx, video); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return video, nil
}

func (s *AdminService) UpdateVideo(ctx context.Context, videoID uuid.UUID, request request_models.VideoRequest) (*db_models.Video, error) {
	video, err := s.courseRepo.FindVideoByID(ctx, videoID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if video == nil {
		return nil, utils.ErrVideoNotFound
	}

	video.Title = request.Title
	video.Description = request.Description
	video.VimeoID = request.VimeoID
	video.Duration = request.Duration
	video.Order = request.Order
	if err := s.courseRepo.UpdateVideo(ctx, video); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return video, nil
}

func (s *AdminService) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	video, err := s.courseRepo.FindVideoByID(ctx, videoID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if video == nil {
		return utils.ErrVideoNotFound
	}
	if err := s.courseRepo.DeleteVideo(ctx, videoID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *AdminService) ReorderVideos(ctx context.Context, sectionID uuid.UUID, request request_models.VideoOrderRequest) error {
	section, err := s.courseRepo.FindSectionByID(ctx, sectionID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if section == nil {
		return utils.ErrSectionNotFound
	}

	items := append([]request_models.VideoOrderItem(nil), request.Videos...)
	sort.Slice(items, func(i, j int) bool { return items[i].Order < items[j].Order })

	ordered := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			return utils.ErrVideoNotFound
		}
		ordered = append(ordered, id)
	}
	if err := s.courseRepo.ReorderVideos(ctx, sectionID, ordered); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
