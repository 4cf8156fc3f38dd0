package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/grampanchayat/tax_collection/internal/models"
)

func (r *GormRepo) InsertTaxRecords(records []models.TaxRecord) ([]models.TaxRecord, error) {
	if err := r.DB.Create(&records).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return records, nil
}

func (r *GormRepo) GetTaxRecords() ([]models.TaxRecord, error) {
	var records []models.TaxRecord
	if err := r.DB.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return records, nil
}

func (r *GormRepo) GetTaxRecordsByHouse(houseNumber string) ([]models.TaxRecord, error) {
	var records []models.TaxRecord
	if err := r.DB.Where("house_id = ?", houseNumber).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return records, nil
}

func (r *GormRepo) GetTaxRecordByID(id uint) (*models.TaxRecord, error) {
	var record models.TaxRecord
	if err := r.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &record, nil
}

func (r *GormRepo) UpdateTaxRecord(record *models.TaxRecord) error {
	if err := r.DB.Save(record).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
