package repo

import (
	"gorm.io/gorm"

	"github.com/grampanchayat/tax_collection/internal/models"
)

// UserStore is the principal-lookup capability the auth core consumes.
// GetByUsername returns (nil, nil) when no such user exists.
type UserStore interface {
	GetByUsername(username string) (*models.User, error)
	CreateUser(user *models.User) error
}

// RevocationStore is the durable set of invalidated access-token jtis.
// Record is an idempotent upsert: revoking an already-revoked jti succeeds.
type RevocationStore interface {
	Record(jti string) error
	IsRevoked(jti string) (bool, error)
}

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
