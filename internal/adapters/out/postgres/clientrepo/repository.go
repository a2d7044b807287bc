// Package clientrepo reads client accounts. Accounts are owned by the user store;
// dispatch only needs the standing delivery price some clients negotiate.
package clientrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"type:varchar(255);not null"`
	FixedDeliveryPrice *float64  `gorm:"type:numeric(10,2)"`
}

func (ClientDTO) TableName() string {
	return "clients"
}

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FixedPrice returns nil for unknown clients and for clients without a standing price.
func (r *GormClientRepository) FixedPrice(ctx context.Context, clientID kernel.UUID) (*float64, error) {
	if err := clientID.Validate(); err != nil {
		return nil, err
	}

	var dto ClientDTO
	err := r.db.WithContext(ctx).
		Select("id", "fixed_delivery_price").
		First(&dto, "id = ?", clientID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if dto.FixedDeliveryPrice == nil || *dto.FixedDeliveryPrice <= 0 {
		return nil, nil
	}
	return dto.FixedDeliveryPrice, nil
}
