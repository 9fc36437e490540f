package db_models

// Setting is process-wide key/value configuration, admin mutable.
// Consumers read through the settings service which applies fallbacks,
// never through this table directly.
type Setting struct {
	BaseModel
	Key   string `gorm:"uniqueIndex"`
	Value string
}

// Known keys and their fallback values when the row is absent.
const (
	SettingCommissionRate     = "affiliateCommissionRate"           // percent, fallback 20
	SettingMinimumPayout      = "minimumPayoutAmount"               // major units, fallback 100
	SettingCourseDiscountRate = "affiliateCourseDiscountPercentage" // percent, fallback 50
)
