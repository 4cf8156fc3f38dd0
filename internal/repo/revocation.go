package repo

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/grampanchayat/tax_collection/internal/models"
)

// Record inserts the jti with upsert semantics so that concurrent or repeated
// logouts of the same token all succeed.
func (r *GormRepo) Record(jti string) error {
	entry := models.RevokedToken{JTI: jti}
	if err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *GormRepo) IsRevoked(jti string) (bool, error) {
	var count int64
	if err := r.DB.Model(&models.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return count > 0, nil
}
