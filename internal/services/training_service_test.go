package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influhub/internal/models/db_models"
	"influhub/internal/models/request_models"
	"influhub/pkg/utils"
)

func boolPtr(b bool) *bool { return &b }

func seedCourseWithVideos(t *testing.T, repo *fakeCourseRepo) (*db_models.VideoCourse, []*db_models.Video) {
	t.Helper()
	ctx := context.Background()

	course := &db_models.VideoCourse{Title: "UGC Masterclass"}
	require.NoError(t, repo.InsertCourse(ctx, course))
	section := &db_models.Section{CourseID: course.ID, Title: "Start here"}
	require.NoError(t, repo.InsertSection(ctx, section))

	var videos []*db_models.Video
	for i := 0; i < 3; i++ {
		video := &db_models.Video{SectionID: section.ID, Title: "Lesson", VimeoID: "v", Order: i}
		require.NoError(t, repo.InsertVideo(ctx, video))
		videos = append(videos, video)
	}
	return course, videos
}

func TestListCoursesReportsProgress(t *testing.T) {
	repo := newFakeCourseRepo()
	service := NewTrainingService(repo)
	ctx := context.Background()

	course, videos := seedCourseWithVideos(t, repo)
	userID := uuid.New()

	require.NoError(t, service.SetVideoProgress(ctx, userID, videos[0].ID, request_models.VideoProgressRequest{
		Completed: boolPtr(true),
	}))

	items, err := service.ListCourses(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, course.ID.String(), items[0].ID)
	assert.Equal(t, int64(3), items[0].TotalVideos)
	assert.Equal(t, int64(1), items[0].CompletedVideos)
}

func TestCourseDetailMarksCompletedVideos(t *testing.T) {
	repo := newFakeCourseRepo()
	service := NewTrainingService(repo)
	ctx := context.Background()

	course, videos := seedCourseWithVideos(t, repo)
	userID := uuid.New()

	require.NoError(t, service.SetVideoProgress(ctx, userID, videos[1].ID, request_models.VideoProgressRequest{
		Completed: boolPtr(true),
	}))

	detail, err := service.CourseDetail(ctx, userID, course.ID)
	require.NoError(t, err)
	require.Len(t, detail.Sections, 1)
	require.Len(t, detail.Sections[0].Videos, 3)
	assert.False(t, detail.Sections[0].Videos[0].Completed)
	assert.True(t, detail.Sections[0].Videos[1].Completed)
}

func TestSetVideoProgressToggle(t *testing.T) {
	repo := newFakeCourseRepo()
	service := NewTrainingService(repo)
	ctx := context.Background()

	course, videos := seedCourseWithVideos(t, repo)
	userID := uuid.New()

	require.NoError(t, service.SetVideoProgress(ctx, userID, videos[0].ID, request_models.VideoProgressRequest{
		Completed: boolPtr(true),
	}))
	require.NoError(t, service.SetVideoProgress(ctx, userID, videos[0].ID, request_models.VideoProgressRequest{
		Completed: boolPtr(false),
	}))

	completed, err := repo.CountCompleted(ctx, course.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), completed)
}

func TestSetVideoProgressUnknownVideo(t *testing.T) {
	service := NewTrainingService(newFakeCourseRepo())

	err := service.SetVideoProgress(context.Background(), uuid.New(), uuid.New(), request_models.VideoProgressRequest{
		Completed: boolPtr(true),
	})
	assert.ErrorIs(t, err, utils.ErrVideoNotFound)
}

func TestCourseDetailUnknownCourse(t *testing.T) {
	service := NewTrainingService(newFakeCourseRepo())

	_, err := service.CourseDetail(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrCourseNotFound)
}
