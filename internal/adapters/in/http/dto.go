package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/rating"

	"github.com/shopspring/decimal"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CheckoutRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
	PaymentMethod   string `json:"paymentMethod"`
	Observations    string `json:"observations"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type AssignCourierRequest struct {
	CourierID           string     `json:"courierId"`
	EstimatedDeliveryAt *time.Time `json:"estimatedDeliveryAt"`
}

type RecordDeliveryRequest struct {
	DeliveredAt    *time.Time `json:"deliveredAt"`
	CustomerRating *int       `json:"customerRating"`
}

type CreateCourierRequest struct {
	UserID string `json:"userId"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type SubmitRatingRequest struct {
	OrderID       string `json:"orderId"`
	FoodScore     int    `json:"foodScore"`
	ServiceScore  int    `json:"serviceScore"`
	DeliveryScore int    `json:"deliveryScore"`
	Comment       string `json:"comment"`
}

type CartItemRequest struct {
	Kind        string `json:"kind"`
	ReferenceID string `json:"referenceId"`
	Quantity    int    `json:"quantity"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type OrderLine struct {
	Kind        string          `json:"kind"`
	ReferenceID string          `json:"referenceId"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

type CourierSummary struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId,omitempty"`
	OperationalStatus string    `json:"operationalStatus,omitempty"`
	Location          *Location `json:"location,omitempty"`
	AverageRating     *float64  `json:"averageRating,omitempty"`
}

type Order struct {
	ID                  string          `json:"id"`
	CustomerID          string          `json:"customerId"`
	Status              string          `json:"status"`
	DeliveryAddress     string          `json:"deliveryAddress"`
	PaymentMethod       string          `json:"paymentMethod"`
	Observations        string          `json:"observations,omitempty"`
	Lines               []OrderLine     `json:"lines"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	Discount            decimal.Decimal `json:"discount"`
	ShippingCost        decimal.Decimal `json:"shippingCost"`
	Total               decimal.Decimal `json:"total"`
	Courier             *CourierSummary `json:"courier"`
	EstimatedDeliveryAt *time.Time      `json:"estimatedDeliveryAt,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

type StatusChange struct {
	OrderID string    `json:"orderId"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Role    string    `json:"role"`
	ActorID string    `json:"actorId"`
	At      time.Time `json:"at"`
}

type Transitions struct {
	OrderID string         `json:"orderId"`
	Current string         `json:"current"`
	Allowed []string       `json:"allowed"`
	History []StatusChange `json:"history"`
}

type Courier struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	OperationalStatus string    `json:"operationalStatus"`
	Location          *Location `json:"location"`
	AverageRating     float64   `json:"averageRating"`
	RatedDeliveries   int       `json:"ratedDeliveries"`
}

type CourierRating struct {
	CourierID       string  `json:"courierId"`
	AverageRating   float64 `json:"averageRating"`
	RatedDeliveries int     `json:"ratedDeliveries"`
}

type ActiveDelivery struct {
	OrderID             string     `json:"orderId"`
	CourierID           string     `json:"courierId"`
	DeliveryAddress     string     `json:"deliveryAddress"`
	EstimatedDeliveryAt *time.Time `json:"estimatedDeliveryAt"`
	CourierLocation     *Location  `json:"courierLocation"`
}

type Rating struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	FoodScore     int       `json:"foodScore"`
	ServiceScore  int       `json:"serviceScore"`
	DeliveryScore int       `json:"deliveryScore"`
	Comment       string    `json:"comment,omitempty"`
	Average       float64   `json:"average"`
	CreatedAt     time.Time `json:"createdAt"`
}

type RatableOrder struct {
	OrderID     string          `json:"orderId"`
	Total       decimal.Decimal `json:"total"`
	DeliveredAt time.Time       `json:"deliveredAt"`
}

type CartItem struct {
	Kind        string          `json:"kind"`
	ReferenceID string          `json:"referenceId"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

type Cart struct {
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

func toLocation(l *kernel.Location) *Location {
	if l == nil {
		return nil
	}
	return &Location{Latitude: l.Lat(), Longitude: l.Lon()}
}

func toOrder(o *order.Order, ref order.CourierRef) Order {
	lines := make([]OrderLine, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, OrderLine{
			Kind:        l.ProductRef().Kind.String(),
			ReferenceID: l.ProductRef().ReferenceID.String(),
			Name:        l.Name(),
			Quantity:    l.Quantity(),
			UnitPrice:   l.UnitPrice(),
			Total:       l.Total(),
		})
	}

	return Order{
		ID:                  o.ID().String(),
		CustomerID:          o.CustomerID().String(),
		Status:              o.Status().String(),
		DeliveryAddress:     o.DeliveryAddress(),
		PaymentMethod:       o.PaymentMethod(),
		Observations:        o.Observations(),
		Lines:               lines,
		Subtotal:            o.Subtotal(),
		Discount:            o.Discount(),
		ShippingCost:        o.ShippingCost(),
		Total:               o.Total(),
		Courier:             toCourierSummary(ref),
		EstimatedDeliveryAt: o.EstimatedDeliveryAt(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
	}
}

func toCourierSummary(ref order.CourierRef) *CourierSummary {
	if summary, ok := ref.Summary(); ok {
		avg := summary.AverageRating
		return &CourierSummary{
			ID:                summary.ID.String(),
			UserID:            summary.UserID.String(),
			OperationalStatus: summary.OperationalStatus,
			Location:          toLocation(summary.Location),
			AverageRating:     &avg,
		}
	}
	if id, ok := ref.ID(); ok {
		return &CourierSummary{ID: id.String()}
	}
	return nil
}

func toStatusChange(c order.StatusChange) StatusChange {
	return StatusChange{
		OrderID: c.OrderID.String(),
		From:    c.From.String(),
		To:      c.To.String(),
		Role:    c.Role.String(),
		ActorID: c.ActorID.String(),
		At:      c.At,
	}
}

func toTransitions(r queries.GetOrderTransitionsQueryResponse) Transitions {
	allowed := make([]string, 0, len(r.Allowed))
	for _, s := range r.Allowed {
		allowed = append(allowed, s.String())
	}
	history := make([]StatusChange, 0, len(r.History))
	for _, c := range r.History {
		history = append(history, toStatusChange(c))
	}
	return Transitions{
		OrderID: r.OrderID.String(),
		Current: r.Current.String(),
		Allowed: allowed,
		History: history,
	}
}

func toCourier(c *courier.Courier) Courier {
	return Courier{
		ID:                c.ID().String(),
		UserID:            c.UserID().String(),
		OperationalStatus: c.OperationalStatus().String(),
		Location:          toLocation(c.Location()),
		AverageRating:     c.AverageRating(),
		RatedDeliveries:   c.RatedDeliveries(),
	}
}

func toCourierRow(r queries.GetAllCouriersQueryResponse) Courier {
	return Courier{
		ID:                r.ID.String(),
		UserID:            r.UserID.String(),
		OperationalStatus: r.OperationalStatus,
		Location:          toLocation(r.Location),
		AverageRating:     r.AverageRating,
		RatedDeliveries:   r.RatedDeliveries,
	}
}

func toRating(r *rating.Rating) Rating {
	return Rating{
		ID:            r.ID().String(),
		OrderID:       r.OrderID().String(),
		FoodScore:     r.FoodScore(),
		ServiceScore:  r.ServiceScore(),
		DeliveryScore: r.DeliveryScore(),
		Comment:       r.Comment(),
		Average:       r.Average(),
		CreatedAt:     r.CreatedAt(),
	}
}

func toCart(s cart.Snapshot) Cart {
	items := make([]CartItem, 0, len(s.Items))
	count := 0
	for _, item := range s.Items {
		items = append(items, CartItem{
			Kind:        item.Ref.Kind.String(),
			ReferenceID: item.Ref.ReferenceID.String(),
			Name:        item.Name,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal(),
		})
		count += item.Quantity
	}
	return Cart{Items: items, Total: s.Total, ItemCount: count}
}
