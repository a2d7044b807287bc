// Package orderrepo maps order aggregates to the orders table and its history and
// chat child tables.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the persisted shape of an order. Version backs optimistic locking.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`

	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientName  string     `gorm:"type:varchar(255);not null"`
	CourierID   *uuid.UUID `gorm:"type:uuid;index"`
	CourierName *string    `gorm:"type:varchar(255)"`

	Pickup      WaypointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff     WaypointDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	Description string      `gorm:"type:text"`

	Price       *float64 `gorm:"type:numeric(10,2)"`
	Paid        bool     `gorm:"not null;default:false"`
	CourierPaid bool     `gorm:"not null;default:false"`

	Status   int    `gorm:"not null;index"`
	Rating   int    `gorm:"not null;default:0"`
	Feedback string `gorm:"type:text"`
	Version  int    `gorm:"not null;default:0"`

	History []HistoryEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Chat    []ChatMessageDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// WaypointDTO is embedded twice in the orders table. Coordinates are nullable.
type WaypointDTO struct {
	Address string   `gorm:"type:text;not null"`
	Lat     *float64 `gorm:"type:double precision"`
	Lng     *float64 `gorm:"type:double precision"`
}

// HistoryEntryDTO is one row of the append-only status log. Seq is the position
// in the history, so rows already stored are never rewritten.
type HistoryEntryDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq     int       `gorm:"primaryKey;autoIncrement:false"`
	Status  int       `gorm:"not null"`
	At      time.Time `gorm:"not null"`
	Note    string    `gorm:"type:text"`
}

func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

type ChatMessageDTO struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	SenderID   uuid.UUID   `gorm:"type:uuid;not null"`
	SenderName string      `gorm:"type:varchar(255);not null"`
	SenderRole string      `gorm:"type:varchar(16);not null"`
	Content    string      `gorm:"type:text;not null"`
	At         time.Time   `gorm:"not null;index"`
	ReadBy     []uuid.UUID `gorm:"serializer:json"`
}

func (ChatMessageDTO) TableName() string {
	return "order_chat_messages"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	dto := OrderDTO{
		ID:          orderID,
		CreatedAt:   o.CreatedAt(),
		ClientID:    o.Client().ID.Bytes(),
		ClientName:  o.Client().Name,
		Pickup:      waypointFromDomain(o.Pickup()),
		Dropoff:     waypointFromDomain(o.Dropoff()),
		Description: o.Description(),
		Price:       o.Price(),
		Paid:        o.IsPaid(),
		CourierPaid: o.IsCourierPaid(),
		Status:      int(o.Status()),
		Version:     o.Version(),
	}
	dto.Rating, dto.Feedback = o.Rating()

	if c := o.Courier(); c != nil {
		id := c.ID.Bytes()
		name := c.Name
		dto.CourierID = &id
		dto.CourierName = &name
	}

	history := o.History()
	dto.History = make([]HistoryEntryDTO, 0, len(history))
	for i, h := range history {
		dto.History = append(dto.History, HistoryEntryDTO{
			OrderID: orderID,
			Seq:     i,
			Status:  int(h.Status),
			At:      h.At,
			Note:    h.Note,
		})
	}

	chat := o.Chat()
	dto.Chat = make([]ChatMessageDTO, 0, len(chat))
	for _, m := range chat {
		readBy := make([]uuid.UUID, 0, len(m.ReadBy))
		for _, id := range m.ReadBy {
			readBy = append(readBy, id.Bytes())
		}
		dto.Chat = append(dto.Chat, ChatMessageDTO{
			ID:         m.ID.Bytes(),
			OrderID:    orderID,
			SenderID:   m.SenderID.Bytes(),
			SenderName: m.SenderName,
			SenderRole: string(m.SenderRole),
			Content:    m.Content,
			At:         m.At,
			ReadBy:     readBy,
		})
	}

	return dto
}

func waypointFromDomain(w order.Waypoint) WaypointDTO {
	dto := WaypointDTO{Address: w.Address}
	if w.Location != nil {
		lat, lng := w.Location.Lat(), w.Location.Lng()
		dto.Lat = &lat
		dto.Lng = &lng
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := uuidToDomain(dto.ID)
	if err != nil {
		return nil, err
	}
	clientID, err := uuidToDomain(dto.ClientID)
	if err != nil {
		return nil, err
	}

	pickup, err := waypointToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := waypointToDomain(dto.Dropoff)
	if err != nil {
		return nil, err
	}

	var courier *order.Party
	if dto.CourierID != nil {
		courierID, idErr := uuidToDomain(*dto.CourierID)
		if idErr != nil {
			return nil, idErr
		}
		courier = &order.Party{ID: courierID}
		if dto.CourierName != nil {
			courier.Name = *dto.CourierName
		}
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		history = append(history, order.HistoryEntry{
			Status: order.Status(h.Status),
			At:     h.At.UTC(),
			Note:   h.Note,
		})
	}

	chat := make([]order.ChatMessage, 0, len(dto.Chat))
	for _, m := range dto.Chat {
		msg, msgErr := chatMessageToDomain(m)
		if msgErr != nil {
			return nil, msgErr
		}
		chat = append(chat, msg)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:          id,
		CreatedAt:   dto.CreatedAt.UTC(),
		Client:      order.Party{ID: clientID, Name: dto.ClientName},
		Courier:     courier,
		Pickup:      pickup,
		Dropoff:     dropoff,
		Description: dto.Description,
		Price:       dto.Price,
		Paid:        dto.Paid,
		CourierPaid: dto.CourierPaid,
		Status:      order.Status(dto.Status),
		History:     history,
		Chat:        chat,
		Rating:      dto.Rating,
		Feedback:    dto.Feedback,
		Version:     dto.Version,
	})
}

func waypointToDomain(dto WaypointDTO) (order.Waypoint, error) {
	var loc *kernel.Location
	if dto.Lat != nil && dto.Lng != nil {
		l, err := kernel.NewLocation(*dto.Lat, *dto.Lng)
		if err != nil {
			return order.Waypoint{}, err
		}
		loc = &l
	}
	return order.NewWaypoint(dto.Address, loc)
}

func chatMessageToDomain(dto ChatMessageDTO) (order.ChatMessage, error) {
	id, err := uuidToDomain(dto.ID)
	if err != nil {
		return order.ChatMessage{}, err
	}
	senderID, err := uuidToDomain(dto.SenderID)
	if err != nil {
		return order.ChatMessage{}, err
	}

	readBy := make([]kernel.UUID, 0, len(dto.ReadBy))
	for _, raw := range dto.ReadBy {
		reader, readerErr := uuidToDomain(raw)
		if readerErr != nil {
			return order.ChatMessage{}, readerErr
		}
		readBy = append(readBy, reader)
	}

	return order.ChatMessage{
		ID:         id,
		SenderID:   senderID,
		SenderName: dto.SenderName,
		SenderRole: kernel.Role(dto.SenderRole),
		Content:    dto.Content,
		At:         dto.At.UTC(),
		ReadBy:     readBy,
	}, nil
}

func uuidToDomain(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
