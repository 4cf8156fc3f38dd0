package models

import (
	"time"
)

type User struct {
	Username     string  `gorm:"primaryKey"       json:"username"`
	Name         string  `gorm:"not null"         json:"name"`
	Phone        int64   `json:"phone"`
	Roles        RoleSet `gorm:"type:text"        json:"userRole"`
	PasswordHash string  `gorm:"not null"         json:"-"`
}

type House struct {
	AssessmentNumber int      `gorm:"primaryKey"       json:"assessmentNumber"`
	HouseNumber      string   `gorm:"unique;not null;index" json:"houseNumber"`
	HouseValue       *float64 `json:"houseValue"`
	HouseTax         *float64 `json:"houseTax"`
	WaterTax         *float64 `json:"waterTax"`
	LibraryTax       *float64 `json:"libraryTax"`
	LightingTax      *float64 `json:"lightingTax"`
	DrainageTax      *float64 `json:"drianageTax"`
	OwnerName        string   `gorm:"index"            json:"ownerName"`
	GuardianName     string   `json:"husbandOrFatherNameOfOwner"`

	TaxRecords           []TaxRecord  `gorm:"foreignKey:HouseID;references:HouseNumber" json:"taxRecords"`
	CollectorAssignments []Assignment `gorm:"foreignKey:HouseID;references:HouseNumber" json:"collectorAssignments"`
	Users                []User       `gorm:"-" json:"users"`
}

type Assignment struct {
	ID       uint   `gorm:"primaryKey"          json:"id"`
	HouseID  string `gorm:"index;not null"      json:"houseId"`
	Username string `gorm:"index;not null"      json:"username"`

	House *House `gorm:"foreignKey:HouseID;references:HouseNumber" json:"house,omitempty"`
}

type TaxRecord struct {
	ID          uint      `gorm:"primaryKey"      json:"id"`
	Amount      float64   `gorm:"not null"        json:"amount"`
	HouseID     string    `gorm:"index;not null"  json:"houseId"`
	CollectorID string    `gorm:"index;not null"  json:"collectorId"`
	DateCreated time.Time `gorm:"not null"        json:"dateCreated"`
	DateUpdated time.Time `json:"dateUpdated"`
}

// RevokedToken records the jti of an access token invalidated by logout.
// Rows are never purged; expired tokens are rejected on exp before the
// revocation list is ever consulted.
type RevokedToken struct {
	JTI string `gorm:"primaryKey" json:"jti"`
}
