// Package courierrepo maps courier aggregates to the couriers table.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the persisted shape of a courier. The coordinates are null until
// the courier reports a first position.
type CourierDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null;index"`
	Online      bool      `gorm:"not null;default:false;index"`
	LocationLat *float64  `gorm:"type:double precision"`
	LocationLng *float64  `gorm:"type:double precision"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(c *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:     c.ID().Bytes(),
		Name:   c.Name(),
		Online: c.IsOnline(),
	}

	if loc := c.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		dto.LocationLat = &lat
		dto.LocationLng = &lng
	}

	return dto
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var loc *kernel.Location
	if dto.LocationLat != nil && dto.LocationLng != nil {
		l, locErr := kernel.NewLocation(*dto.LocationLat, *dto.LocationLng)
		if locErr != nil {
			return nil, locErr
		}
		loc = &l
	}

	return courier.RestoreCourier(id, dto.Name, loc, dto.Online)
}
