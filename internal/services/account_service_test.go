package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influhub/internal/models/db_models"
	"influhub/internal/models/request_models"
	"influhub/pkg/utils"
)

type accountFixture struct {
	service AccountServiceInterface
	users   *fakeUserRepo
	txns    *fakeTransactionRepo
	courses *fakeCourseRepo
}

func newAccountFixture() *accountFixture {
	txns := newFakeTransactionRepo()
	users := newFakeUserRepo(txns)
	courses := newFakeCourseRepo()
	products := newFakeProductRepo()

	return &accountFixture{
		service: NewAccountService(users, txns, courses, products),
		users:   users,
		txns:    txns,
		courses: courses,
	}
}

func signUpRequest(email, ref string) request_models.SignUpRequest {
	return request_models.SignUpRequest{
		Email:     email,
		Password:  "hunter2hunter2",
		FirstName: "Sam",
		LastName:  "Lee",
		Ref:       ref,
	}
}

func TestSignUpAndLogin(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	token, err := f.service.SignUp(ctx, signUpRequest("sam@example.com", ""))
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	token, err = f.service.Login(ctx, request_models.LoginRequest{
		Email:    "sam@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = f.service.Login(ctx, request_models.LoginRequest{
		Email:    "sam@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	_, err := f.service.SignUp(ctx, signUpRequest("dup@example.com", ""))
	require.NoError(t, err)

	_, err = f.service.SignUp(ctx, signUpRequest("dup@example.com", ""))
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestSignUpWithReferrer(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	referrer := &db_models.User{Email: "ref@example.com"}
	require.NoError(t, f.users.Insert(ctx, referrer))

	_, err := f.service.SignUp(ctx, signUpRequest("new@example.com", referrer.ID.String()))
	require.NoError(t, err)

	user, err := f.users.FindByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.ReferredByID)
	assert.Equal(t, referrer.ID, *user.ReferredByID)
	assert.Equal(t, 1, user.AvailableCourseDiscounts)
}

func TestSignUpRejectsUnknownReferrer(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	_, err := f.service.SignUp(ctx, signUpRequest("a@example.com", "not-a-uuid"))
	assert.ErrorIs(t, err, utils.ErrInvalidReferrer)

	_, err = f.service.SignUp(ctx, signUpRequest("b@example.com", "00000000-0000-0000-0000-000000000001"))
	assert.ErrorIs(t, err, utils.ErrInvalidReferrer)
}

func TestProfileReflectsPaymentsAndPurchases(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	user := &db_models.User{Email: "p@example.com", FirstName: "Pat", LastName: "Kim"}
	require.NoError(t, f.users.Insert(ctx, user))

	profile, err := f.service.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, profile.HasPaid)
	assert.Empty(t, profile.PurchasedCourseIDs)

	require.NoError(t, f.txns.Insert(ctx, &db_models.Transaction{
		UserID: user.ID, Status: db_models.TxnStatusSucceeded, ProviderRef: "in_p",
	}))
	course := &db_models.VideoCourse{Title: "Shorts 101"}
	require.NoError(t, f.courses.InsertCourse(ctx, course))
	require.NoError(t, f.courses.InsertPurchase(ctx, &db_models.CoursePurchase{
		UserID: user.ID, CourseID: course.ID,
	}))

	profile, err = f.service.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, profile.HasPaid)
	assert.Equal(t, []string{course.ID.String()}, profile.PurchasedCourseIDs)
}

func TestUpdatePasswordChecksCurrent(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	_, err := f.service.SignUp(ctx, signUpRequest("pw@example.com", ""))
	require.NoError(t, err)
	user, err := f.users.FindByEmail(ctx, "pw@example.com")
	require.NoError(t, err)

	err = f.service.UpdatePassword(ctx, user.ID, request_models.UpdatePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "anotherlongpass",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	err = f.service.UpdatePassword(ctx, user.ID, request_models.UpdatePasswordRequest{
		CurrentPassword: "hunter2hunter2",
		NewPassword:     "anotherlongpass",
	})
	require.NoError(t, err)

	_, err = f.service.Login(ctx, request_models.LoginRequest{
		Email:    "pw@example.com",
		Password: "anotherlongpass",
	})
	assert.NoError(t, err)
}
