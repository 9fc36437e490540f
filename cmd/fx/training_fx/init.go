package training_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"influhub/internal/repositories"
	"influhub/internal/services"
)

var Module = fx.Provide(
	provideCourseRepo, provideTrainingService)

func provideCourseRepo(db *gorm.DB) repositories.CourseRepository {
	return repositories.NewCourseRepository(db)
}

func provideTrainingService(courseRepo repositories.CourseRepository) services.TrainingServiceInterface {
	return services.NewTrainingService(courseRepo)
}
