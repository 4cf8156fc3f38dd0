package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/grampanchayat/tax_collection/internal/models"
)

func (r *GormRepo) CreateHouses(houses []models.House) error {
	if err := r.DB.Omit(clause.Associations).Create(&houses).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetHouses returns every house with its tax records, collector assignments
// and the assigned users attached.
func (r *GormRepo) GetHouses() ([]models.House, error) {
	var houses []models.House
	if err := r.DB.
		Preload("TaxRecords").
		Preload("CollectorAssignments").
		Find(&houses).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.withAssignedUsers(houses)
}

func (r *GormRepo) GetHousesByNumbers(houseNumbers []string) ([]models.House, error) {
	var houses []models.House
	if err := r.DB.
		Preload("TaxRecords").
		Preload("CollectorAssignments").
		Where("house_number IN ?", houseNumbers).
		Find(&houses).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.withAssignedUsers(houses)
}

func (r *GormRepo) GetHouseByNumber(houseNumber string) (*models.House, error) {
	var house models.House
	if err := r.DB.Where("house_number = ?", houseNumber).First(&house).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &house, nil
}

// withAssignedUsers resolves the users behind each house's assignments in a
// single query and attaches them.
func (r *GormRepo) withAssignedUsers(houses []models.House) ([]models.House, error) {
	var usernames []string
	seen := make(map[string]bool)
	for _, house := range houses {
		for _, a := range house.CollectorAssignments {
			if !seen[a.Username] {
				seen[a.Username] = true
				usernames = append(usernames, a.Username)
			}
		}
	}
	if len(usernames) == 0 {
		return houses, nil
	}

	var users []models.User
	if err := r.DB.Where("username IN ?", usernames).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	byName := make(map[string]models.User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}

	for i := range houses {
		for _, a := range houses[i].CollectorAssignments {
			if u, ok := byName[a.Username]; ok {
				houses[i].Users = append(houses[i].Users, u)
			}
		}
	}
	return houses, nil
}
