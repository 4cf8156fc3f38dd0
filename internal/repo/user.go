package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/grampanchayat/tax_collection/internal/models"
)

func (r *GormRepo) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(user *models.User) error {
	if err := r.DB.Create(user).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
