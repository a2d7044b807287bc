// Package event defines the closed set of change notifications emitted by the
// dispatch core. Consumers switch on the concrete type or on Kind.
package event

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Kind is the wire discriminator of an event.
type Kind string

const (
	KindOrderCreated      Kind = "ORDER_CREATED"
	KindOrderUpdated      Kind = "ORDER_UPDATED"
	KindChatMessagePosted Kind = "CHAT_MESSAGE"
	KindCourierUpdated    Kind = "DRIVER_UPDATED"
	KindDelayAlert        Kind = "DELAY_ALERT"
)

// Event is implemented only by the types in this package.
type Event interface {
	Kind() Kind
	// Key groups related events, e.g. as a partition key. It is the id of the
	// order or courier the event is about.
	Key() string
	OccurredAt() time.Time

	sealed()
}

// OrderState is the payload shared by order events.
type OrderState struct {
	OrderID     uuid.UUID  `json:"orderId"`
	ClientID    uuid.UUID  `json:"clientId"`
	CourierID   *uuid.UUID `json:"courierId,omitempty"`
	Status      string     `json:"status"`
	Price       *float64   `json:"price,omitempty"`
	Paid        bool       `json:"paid"`
	CourierPaid bool       `json:"courierPaid"`
	Version     int        `json:"version"`
}

// StateOf captures the externally visible state of o.
func StateOf(o *order.Order) OrderState {
	s := OrderState{
		OrderID:     o.ID().Bytes(),
		ClientID:    o.Client().ID.Bytes(),
		Status:      o.Status().String(),
		Price:       o.Price(),
		Paid:        o.IsPaid(),
		CourierPaid: o.IsCourierPaid(),
		Version:     o.Version(),
	}
	if c := o.Courier(); c != nil {
		id := c.ID.Bytes()
		s.CourierID = &id
	}
	return s
}

type OrderCreated struct {
	OrderState
	At time.Time `json:"-"`
}

func NewOrderCreated(o *order.Order, at time.Time) OrderCreated {
	return OrderCreated{OrderState: StateOf(o), At: at}
}

func (OrderCreated) Kind() Kind              { return KindOrderCreated }
func (e OrderCreated) Key() string           { return e.OrderID.String() }
func (e OrderCreated) OccurredAt() time.Time { return e.At }
func (OrderCreated) sealed()                 {}

type OrderUpdated struct {
	OrderState
	At time.Time `json:"-"`
}

func NewOrderUpdated(o *order.Order, at time.Time) OrderUpdated {
	return OrderUpdated{OrderState: StateOf(o), At: at}
}

func (OrderUpdated) Kind() Kind              { return KindOrderUpdated }
func (e OrderUpdated) Key() string           { return e.OrderID.String() }
func (e OrderUpdated) OccurredAt() time.Time { return e.At }
func (OrderUpdated) sealed()                 {}

type ChatMessagePosted struct {
	OrderID    uuid.UUID `json:"orderId"`
	MessageID  uuid.UUID `json:"messageId"`
	SenderID   uuid.UUID `json:"senderId"`
	SenderName string    `json:"senderName"`
	SenderRole string    `json:"senderRole"`
	Content    string    `json:"content"`
	At         time.Time `json:"-"`
}

func NewChatMessagePosted(orderID uuid.UUID, msg order.ChatMessage) ChatMessagePosted {
	return ChatMessagePosted{
		OrderID:    orderID,
		MessageID:  msg.ID.Bytes(),
		SenderID:   msg.SenderID.Bytes(),
		SenderName: msg.SenderName,
		SenderRole: string(msg.SenderRole),
		Content:    msg.Content,
		At:         msg.At,
	}
}

func (ChatMessagePosted) Kind() Kind              { return KindChatMessagePosted }
func (e ChatMessagePosted) Key() string           { return e.OrderID.String() }
func (e ChatMessagePosted) OccurredAt() time.Time { return e.At }
func (ChatMessagePosted) sealed()                 {}

type CourierUpdated struct {
	CourierID uuid.UUID `json:"courierId"`
	Name      string    `json:"name"`
	Online    bool      `json:"online"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	At        time.Time `json:"-"`
}

func NewCourierUpdated(c *courier.Courier, at time.Time) CourierUpdated {
	e := CourierUpdated{
		CourierID: c.ID().Bytes(),
		Name:      c.Name(),
		Online:    c.IsOnline(),
		At:        at,
	}
	if loc := c.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		e.Lat, e.Lng = &lat, &lng
	}
	return e
}

func (CourierUpdated) Kind() Kind              { return KindCourierUpdated }
func (e CourierUpdated) Key() string           { return e.CourierID.String() }
func (e CourierUpdated) OccurredAt() time.Time { return e.At }
func (CourierUpdated) sealed()                 {}

// DelayAlert is raised when in-flight orders have gone stale.
type DelayAlert struct {
	OrderIDs  []uuid.UUID `json:"orderIds"`
	Threshold string      `json:"threshold"`
	At        time.Time   `json:"-"`
}

func NewDelayAlert(orders []*order.Order, threshold time.Duration, at time.Time) DelayAlert {
	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID().Bytes())
	}
	return DelayAlert{OrderIDs: ids, Threshold: threshold.String(), At: at}
}

func (DelayAlert) Kind() Kind              { return KindDelayAlert }
func (DelayAlert) Key() string             { return string(KindDelayAlert) }
func (e DelayAlert) OccurredAt() time.Time { return e.At }
func (DelayAlert) sealed()                 {}

// IsOrderChange reports whether e may alter a courier's route.
func IsOrderChange(e Event) bool {
	switch e.(type) {
	case OrderCreated, OrderUpdated:
		return true
	default:
		return false
	}
}
