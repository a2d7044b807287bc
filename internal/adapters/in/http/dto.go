package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Waypoint struct {
	Address  string    `json:"address"`
	Location *Location `json:"location,omitempty"`
}

type Party struct {
	ID   openapi_types.UUID `json:"id"`
	Name string             `json:"name"`
}

type HistoryEntry struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
}

type ChatMessage struct {
	ID         openapi_types.UUID   `json:"id"`
	SenderID   openapi_types.UUID   `json:"senderId"`
	SenderName string               `json:"senderName"`
	SenderRole string               `json:"senderRole"`
	Content    string               `json:"content"`
	At         time.Time            `json:"at"`
	ReadBy     []openapi_types.UUID `json:"readBy"`
}

type Order struct {
	ID          openapi_types.UUID `json:"id"`
	CreatedAt   time.Time          `json:"createdAt"`
	Client      Party              `json:"client"`
	Courier     *Party             `json:"courier,omitempty"`
	Pickup      Waypoint           `json:"pickup"`
	Dropoff     Waypoint           `json:"dropoff"`
	Description string             `json:"description,omitempty"`
	Price       *float64           `json:"price,omitempty"`
	Paid        bool               `json:"paid"`
	CourierPaid bool               `json:"courierPaid"`
	Status      string             `json:"status"`
	History     []HistoryEntry     `json:"history"`
	Chat        []ChatMessage      `json:"chat"`
	Rating      int                `json:"rating,omitempty"`
	Feedback    string             `json:"feedback,omitempty"`
	Version     int                `json:"version"`
}

type Courier struct {
	ID       openapi_types.UUID `json:"id"`
	Name     string             `json:"name"`
	Online   bool               `json:"online"`
	Location *Location          `json:"location,omitempty"`
}

type Stop struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	OrderID     openapi_types.UUID `json:"orderId"`
	Address     string             `json:"address"`
	Location    Location           `json:"location"`
	DistanceKM  float64            `json:"distanceKm"`
	TimeMinutes int                `json:"timeMinutes"`
	Fallback    bool               `json:"fallback"`
}

type Route struct {
	CourierID        openapi_types.UUID `json:"courierId"`
	Position         Location           `json:"position"`
	Traffic          string             `json:"traffic"`
	Stops            []Stop             `json:"stops"`
	TotalDistanceKM  float64            `json:"totalDistanceKm"`
	TotalTimeMinutes int                `json:"totalTimeMinutes"`
}

// Request bodies.
type (
	NewOrderRequest struct {
		Pickup      Waypoint `json:"pickup"`
		Dropoff     Waypoint `json:"dropoff"`
		Description string   `json:"description"`
	}

	NewDirectOrderRequest struct {
		NewOrderRequest
		Client Party `json:"client"`
	}

	SetPriceRequest struct {
		Price float64 `json:"price"`
	}

	AssignCourierRequest struct {
		CourierID *openapi_types.UUID `json:"courierId"`
	}

	UpdateStatusRequest struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}

	PostMessageRequest struct {
		Content string `json:"content"`
	}

	RateOrderRequest struct {
		Rating   int    `json:"rating"`
		Feedback string `json:"feedback"`
	}

	SettleRequest struct {
		Party    string               `json:"party"`
		OrderIDs []openapi_types.UUID `json:"orderIds"`
	}

	NewCourierRequest struct {
		ID   *openapi_types.UUID `json:"id"`
		Name string              `json:"name"`
	}

	SetOnlineRequest struct {
		Online bool `json:"online"`
	}

	ConfirmStopRequest struct {
		StopID string `json:"stopId"`
	}
)

func locationDTO(l kernel.Location) Location {
	return Location{Lat: l.Lat(), Lng: l.Lng()}
}

func optionalLocationDTO(l *kernel.Location) *Location {
	if l == nil {
		return nil
	}
	dto := locationDTO(*l)
	return &dto
}

func (l *Location) toDomain() (*kernel.Location, error) {
	if l == nil {
		return nil, nil
	}
	loc, err := kernel.NewLocation(l.Lat, l.Lng)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (w Waypoint) toDomain() (order.Waypoint, error) {
	loc, err := w.Location.toDomain()
	if err != nil {
		return order.Waypoint{}, err
	}
	return order.NewWaypoint(w.Address, loc)
}

func waypointDTO(w order.Waypoint) Waypoint {
	return Waypoint{Address: w.Address, Location: optionalLocationDTO(w.Location)}
}

func partyDTO(p order.Party) Party {
	return Party{ID: p.ID.Bytes(), Name: p.Name}
}

func chatMessageDTO(m order.ChatMessage) ChatMessage {
	readBy := make([]openapi_types.UUID, 0, len(m.ReadBy))
	for _, id := range m.ReadBy {
		readBy = append(readBy, id.Bytes())
	}
	return ChatMessage{
		ID:         m.ID.Bytes(),
		SenderID:   m.SenderID.Bytes(),
		SenderName: m.SenderName,
		SenderRole: string(m.SenderRole),
		Content:    m.Content,
		At:         m.At,
		ReadBy:     readBy,
	}
}

func orderDTO(o *order.Order) Order {
	rating, feedback := o.Rating()
	dto := Order{
		ID:          o.ID().Bytes(),
		CreatedAt:   o.CreatedAt(),
		Client:      partyDTO(o.Client()),
		Pickup:      waypointDTO(o.Pickup()),
		Dropoff:     waypointDTO(o.Dropoff()),
		Description: o.Description(),
		Price:       o.Price(),
		Paid:        o.IsPaid(),
		CourierPaid: o.IsCourierPaid(),
		Status:      o.Status().String(),
		Rating:      rating,
		Feedback:    feedback,
		Version:     o.Version(),
	}
	if c := o.Courier(); c != nil {
		p := partyDTO(*c)
		dto.Courier = &p
	}

	history := o.History()
	dto.History = make([]HistoryEntry, 0, len(history))
	for _, h := range history {
		dto.History = append(dto.History, HistoryEntry{Status: h.Status.String(), At: h.At, Note: h.Note})
	}

	chat := o.Chat()
	dto.Chat = make([]ChatMessage, 0, len(chat))
	for _, m := range chat {
		dto.Chat = append(dto.Chat, chatMessageDTO(m))
	}
	return dto
}

func ordersDTO(orders []*order.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderDTO(o))
	}
	return out
}

func courierDTO(c *courier.Courier) Courier {
	return Courier{
		ID:       c.ID().Bytes(),
		Name:     c.Name(),
		Online:   c.IsOnline(),
		Location: optionalLocationDTO(c.Location()),
	}
}

func courierRowDTO(r queries.ListCouriersQueryResponse) Courier {
	return Courier{
		ID:       r.ID.Bytes(),
		Name:     r.Name,
		Online:   r.Online,
		Location: optionalLocationDTO(r.Location),
	}
}

func routeDTO(r queries.GetCourierRouteQueryResponse) Route {
	stops := make([]Stop, 0, len(r.Route.Stops))
	for _, s := range r.Route.Stops {
		stops = append(stops, Stop{
			ID:          s.ID,
			Type:        string(s.Type),
			OrderID:     s.OrderID.Bytes(),
			Address:     s.Address,
			Location:    locationDTO(s.Location),
			DistanceKM:  s.DistanceToNextKM,
			TimeMinutes: s.TimeToNextMinutes,
			Fallback:    s.Fallback,
		})
	}
	return Route{
		CourierID:        r.CourierID.Bytes(),
		Position:         locationDTO(r.Position),
		Traffic:          string(r.Traffic),
		Stops:            stops,
		TotalDistanceKM:  r.Route.TotalDistanceKM(),
		TotalTimeMinutes: r.Route.TotalTimeMinutes(),
	}
}

func uuidFromDTO(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
