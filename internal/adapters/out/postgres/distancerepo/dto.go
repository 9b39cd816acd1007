// Package distancerepo persists routed distances per coordinate pair
// so pricing flows can skip the routing engine for pairs already seen.
package distancerepo

import "time"

// DistanceCacheDTO is the database representation of one cached route.
// The coordinate pair plus profile is the key; only route totals are
// stored, never step-by-step guidance.
type DistanceCacheDTO struct {
	StartLatitude   float64 `gorm:"primaryKey"`
	StartLongitude  float64 `gorm:"primaryKey"`
	EndLatitude     float64 `gorm:"primaryKey"`
	EndLongitude    float64 `gorm:"primaryKey"`
	Profile         string  `gorm:"primaryKey"`
	DistanceMeters  float64
	DurationMinutes float64
	CreatedAt       time.Time
}

// TableName overrides the table name used by GORM.
func (DistanceCacheDTO) TableName() string {
	return "distance_cache"
}
