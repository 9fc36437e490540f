package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"influhub/internal/models/db_models"
)

type CourseRepository interface {
	ListCourses(ctx context.Context) ([]db_models.VideoCourse, error)
	FindCourseByID(ctx context.Context, id uuid.UUID) (*db_models.VideoCourse, error)
	InsertCourse(ctx context.Context, course *db_models.VideoCourse) error
	UpdateCourse(ctx context.Context, course *db_models.VideoCourse) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error

	FindSectionByID(ctx context.Context, id uuid.UUID) (*db_models.Section, error)
	InsertSection(ctx context.Context, section *db_models.Section) error
	UpdateSection(ctx context.Context, section *db_models.Section) error
	DeleteSection(ctx context.Context, id uuid.UUID) error

	FindVideoByID(ctx context.Context, id uuid.UUID) (*db_models.Video, error)
	InsertVideo(ctx context.Context, video *db_models.Video) error
	UpdateVideo(ctx context.Context, video *db_models.Video) error
	DeleteVideo(ctx context.Context, id uuid.UUID) error
	ReorderVideos(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error

	CountVideos(ctx context.Context, courseID uuid.UUID) (int64, error)
	CountCompleted(ctx context.Context, courseID, userID uuid.UUID) (int64, error)
	ListProgress(ctx context.Context, userID uuid.UUID, videoIDs []uuid.UUID) ([]db_models.VideoProgress, error)
	UpsertProgress(ctx context.Context, userID, videoID uuid.UUID, completed bool, completedAt *int64) error

	HasPurchase(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	InsertPurchase(ctx context.Context, purchase *db_models.CoursePurchase) error
	ListPurchasedCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CountCourses(ctx context.Context) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) ListCourses(ctx context.Context) ([]db_models.VideoCourse, error) {
	var courses []db_models.VideoCourse
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order(`sections."order" ASC`)
		}).
		Preload("Sections.Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order(`videos."order" ASC`)
		}).
		Order(`video_courses."order" ASC`).
		Find(&courses).Error
	return courses, err
}

func (r *courseRepository) FindCourseByID(ctx context.Context, id uuid.UUID) (*db_models.VideoCourse, error) {
	var course db_models.VideoCourse
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order(`sections."order" ASC`)
		}).
		Preload("Sections.Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order(`videos."order" ASC`)
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) InsertCourse(ctx context.Context, course *db_models.VideoCourse) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) UpdateCourse(ctx context.Context, course *db_models.VideoCourse) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.VideoCourse{}, "id = ?", id).Error
}

func (r *courseRepository) FindSectionByID(ctx context.Context, id uuid.UUID) (*db_models.Section, error) {
	var section db_models.Section
	err := r.db.WithContext(ctx).First(&section, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &section, nil
}

func (r *courseRepository) InsertSection(ctx context.Context, section *db_models.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *courseRepository) UpdateSection(ctx context.Context, section *db_models.Section) error {
	return r.db.WithContext(ctx).Save(section).Error
}

func (r *courseRepository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Section{}, "id = ?", id).Error
}

func (r *courseRepository) FindVideoByID(ctx context.Context, id uuid.UUID) (*db_models.Video, error) {
	var video db_models.Video
	err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

func (r *courseRepository) InsertVideo(ctx context.Context, video *db_models.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *courseRepository) UpdateVideo(ctx context.Context, video *db_models.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}

func (r *courseRepository) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Video{}, "id = ?", id).Error
}

func (r *courseRepository) ReorderVideos(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			err := tx.Model(&db_models.Video{}).
				Where("id = ? AND section_id = ?", id, sectionID).
				Update("order", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *courseRepository) CountVideos(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("videos").
		Joins("JOIN sections ON sections.id = videos.section_id").
		Where("sections.course_id = ? AND videos.deleted_at IS NULL AND sections.deleted_at IS NULL", courseID).
		Count(&n).Error
	return n, err
}

func (r *courseRepository) CountCompleted(ctx context.Context, courseID, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("video_progresses").
		Joins("JOIN videos ON videos.id = video_progresses.video_id").
		Joins("JOIN sections ON sections.id = videos.section_id").
		Where("sections.course_id = ? AND video_progresses.user_id = ? AND video_progresses.completed AND video_progresses.deleted_at IS NULL", courseID, userID).
		Count(&n).Error
	return n, err
}

func (r *courseRepository) ListProgress(ctx context.Context, userID uuid.UUID, videoIDs []uuid.UUID) ([]db_models.VideoProgress, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	var progress []db_models.VideoProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id IN ?", userID, videoIDs).
		Find(&progress).Error
	return progress, err
}

func (r *courseRepository) UpsertProgress(ctx context.Context, userID, videoID uuid.UUID, completed bool, completedAt *int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.VideoProgress
		err := tx.First(&existing, "user_id = ? AND video_id = ?", userID, videoID).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return tx.Create(&db_models.VideoProgress{
				UserID:      userID,
				VideoID:     videoID,
				Completed:   completed,
				CompletedAt: completedAt,
			}).Error
		}
		existing.Completed = completed
		existing.CompletedAt = completedAt
		return tx.Save(&existing).Error
	})
}

func (r *courseRepository) HasPurchase(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.CoursePurchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error
	return n > 0, err
}

func (r *courseRepository) InsertPurchase(ctx context.Context, purchase *db_models.CoursePurchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *courseRepository) ListPurchasedCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&db_models.CoursePurchase{}).
		Where("user_id = ?", userID).
		Pluck("course_id", &ids).Error
	return ids, err
}

func (r *courseRepository) CountCourses(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.VideoCourse{}).Count(&n).Error
	return n, err
}
