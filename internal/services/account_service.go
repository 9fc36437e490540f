package services

import (
	"context"

	"github.com/google/uuid"

	"influhub/internal/models/db_models"
	"influhub/internal/models/request_models"
	"influhub/internal/models/response_models"
	"influhub/internal/repositories"
	"influhub/pkg/utils"
)

type AccountServiceInterface interface {
	SignUp(ctx context.Context, request request_models.SignUpRequest) (string, error)
	Login(ctx context.Context, request request_models.LoginRequest) (string, error)

	Profile(ctx context.Context, userID uuid.UUID) (*response_models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, request request_models.UpdatePasswordRequest) error

	DashboardStats(ctx context.Context) (*response_models.DashboardStatsResponse, error)
}

type AccountService struct {
	userRepo    repositories.UserRepository
	txnRepo     repositories.TransactionRepository
	courseRepo  repositories.CourseRepository
	productRepo repositories.ProductRepository
}

func NewAccountService(
	userRepo repositories.UserRepository,
	txnRepo repositories.TransactionRepository,
	courseRepo repositories.CourseRepository,
	productRepo repositories.ProductRepository,
) AccountServiceInterface {
	return &AccountService{
		userRepo:    userRepo,
		txnRepo:     txnRepo,
		courseRepo:  courseRepo,
		productRepo: productRepo,
	}
}

func (a *AccountService) SignUp(ctx context.Context, request request_models.SignUpRequest) (string, error) {
	existing, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if existing != nil {
		return "", utils.ErrEmailAlreadyExists
	}

	user := &db_models.User{
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		Email:       request.Email,
		AccountType: db_models.AccountTypeUser,
	}

	// The referral pointer is set here or never; there is no update path.
	if request.Ref != "" {
		refID, err := uuid.Parse(request.Ref)
		if err != nil {
			return "", utils.ErrInvalidReferrer
		}
		referrer, err := a.userRepo.FindByID(ctx, refID)
		if err != nil {
			return "", utils.ErrDatabaseError
		}
		if referrer == nil {
			return "", utils.ErrInvalidReferrer
		}
		user.ReferredByID = &referrer.ID
		user.AvailableCourseDiscounts = 1
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	user.PasswordHash = hashed

	if err := a.userRepo.Insert(ctx, user); err != nil {
		return "", utils.ErrDatabaseError
	}

	token, err := utils.CreateToken(user.ID, user.Email, string(user.AccountType))
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	return token, nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {
	user, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if user == nil {
		return "", utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, user.Email, string(user.AccountType))
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	return token, nil
}

func (a *AccountService) Profile(ctx context.Context, userID uuid.UUID) (*response_models.ProfileResponse, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	paidCount, err := a.txnRepo.CountSucceededByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	courseIDs, err := a.courseRepo.ListPurchasedCourseIDs(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	purchased := make([]string, 0, len(courseIDs))
	for _, id := range courseIDs {
		purchased = append(purchased, id.String())
	}

	return &response_models.ProfileResponse{
		ID:                       user.ID.String(),
		Email:                    user.Email,
		FirstName:                user.FirstName,
		LastName:                 user.LastName,
		AccountType:              string(user.AccountType),
		CreatedAt:                user.CreatedAt,
		SubscriptionStatus:       string(user.SubscriptionStatus),
		CurrentPeriodEnd:         user.CurrentPeriodEnd,
		IsCancellationScheduled:  user.CancelAtPeriodEnd,
		HasPaid:                  paidCount > 0,
		PurchasedCourseIDs:       purchased,
		AvailableCourseDiscounts: user.AvailableCourseDiscounts,
	}, nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) error {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	user.FirstName = request.FirstName
	user.LastName = request.LastName
	if err := a.userRepo.Update(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) UpdatePassword(ctx context.Context, userID uuid.UUID, request request_models.UpdatePasswordRequest) error {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.CurrentPassword); err != nil {
		return utils.ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	user.PasswordHash = hashed
	if err := a.userRepo.Update(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) DashboardStats(ctx context.Context) (*response_models.DashboardStatsResponse, error) {
	courses, err := a.courseRepo.CountCourses(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	products, err := a.productRepo.Count(ctx, "")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &response_models.DashboardStatsResponse{
		TotalCourses:         courses,
		TotalWinningProducts: products,
	}, nil
}
