package repo

import (
	"fmt"

	"github.com/grampanchayat/tax_collection/internal/models"
)

func (r *GormRepo) CreateAssignment(assignment *models.Assignment) error {
	if err := r.DB.Create(assignment).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetAssignmentsByUser returns a collector's assignments with the houses
// attached.
func (r *GormRepo) GetAssignmentsByUser(username string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.DB.
		Preload("House").
		Where("username = ?", username).
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return assignments, nil
}

func (r *GormRepo) GetAssignmentsByUserAndHouses(username string, houseNumbers []string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.DB.
		Where("username = ?", username).
		Where("house_id IN ?", houseNumbers).
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return assignments, nil
}
