package postgres

import (
	"dispatch/internal/adapters/out/postgres/clientrepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or extends every table the dispatch core reads and writes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&clientrepo.ClientDTO{},
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryEntryDTO{},
		&orderrepo.ChatMessageDTO{},
	)
}
