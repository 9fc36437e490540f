package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"influhub/internal/models/request_models"
	"influhub/internal/models/response_models"
	"influhub/internal/repositories"
	"influhub/pkg/utils"
)

type TrainingServiceInterface interface {
	ListCourses(ctx context.Context, userID uuid.UUID) ([]response_models.CourseListItem, error)
	CourseDetail(ctx context.Context, userID, courseID uuid.UUID) (*response_models.CourseDetailResponse, error)
	SetVideoProgress(ctx context.Context, userID, videoID uuid.UUID, request request_models.VideoProgressRequest) error
}

type TrainingService struct {
	courseRepo repositories.CourseRepository
}

func NewTrainingService(courseRepo repositories.CourseRepository) TrainingServiceInterface {
	return &TrainingService{
		courseRepo: courseRepo,
	}
}

func (t *TrainingService) ListCourses(ctx context.Context, userID uuid.UUID) ([]response_models.CourseListItem, error) {
	courses, err := t.courseRepo.ListCourses(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]response_models.CourseListItem, 0, len(courses))
	for _, course := range courses {
		total, err := t.courseRepo.CountVideos(ctx, course.ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		completed, err := t.courseRepo.CountCompleted(ctx, course.ID, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		items = append(items, response_models.CourseListItem{
			ID:              course.ID.String(),
			Title:           course.Title,
			Description:     course.Description,
			CoverImageURL:   course.CoverImageURL,
			PriceEur:        course.PriceEur,
			PriceUsd:        course.PriceUsd,
			Order:           course.Order,
			TotalVideos:     total,
			CompletedVideos: completed,
		})
	}
	return items, nil
}

func (t *TrainingService) CourseDetail(ctx context.Context, userID, courseID uuid.UUID) (*response_models.CourseDetailResponse, error) {
	course, err := t.courseRepo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if course == nil {
		return nil, utils.ErrCourseNotFound
	}

	var videoIDs []uuid.UUID
	for _, section := range course.Sections {
		for _, video := range section.Videos {
			videoIDs = append(videoIDs, video.ID)
		}
	}
	progress, err := t.courseRepo.ListProgress(ctx, userID, videoIDs)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	completed := make(map[uuid.UUID]bool, len(progress))
	for _, p := range progress {
		completed[p.VideoID] = p.Completed
	}

	sections := make([]response_models.SectionItem, 0, len(course.Sections))
	for _, section := range course.Sections {
		videos := make([]response_models.VideoItem, 0, len(section.Videos))
		for _, video := range section.Videos {
			videos = append(videos, response_models.VideoItem{
				ID:          video.ID.String(),
				Title:       video.Title,
				Description: video.Description,
				VimeoID:     video.VimeoID,
				Duration:    video.Duration,
				Order:       video.Order,
				Completed:   completed[video.ID],
			})
		}
		sections = append(sections, response_models.SectionItem{
			ID:     section.ID.String(),
			Title:  section.Title,
			Order:  section.Order,
			Videos: videos,
		})
	}

	return &response_models.CourseDetailResponse{
		ID:            course.ID.String(),
		Title:         course.Title,
		Description:   course.Description,
		CoverImageURL: course.CoverImageURL,
		Sections:      sections,
	}, nil
}

func (t *TrainingService) SetVideoProgress(ctx context.Context, userID, videoID uuid.UUID, request request_models.VideoProgressRequest) error {
	video, err := t.courseRepo.FindVideoByID(ctx, videoID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if video == nil {
		return utils.ErrVideoNotFound
	}

	completed := request.Completed != nil && *request.Completed
	var completedAt *int64
	if completed {
		now := time.Now().Unix()
		completedAt = &now
	}
	if err := t.courseRepo.UpsertProgress(ctx, userID, videoID, completed, completedAt); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
