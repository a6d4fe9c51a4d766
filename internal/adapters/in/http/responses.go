package http

import (
	"time"

	"containerops/internal/core/application/usecases/queries"
	"containerops/internal/core/domain/model/order"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TransitionConflict is the body of a rejected order transition or delivery status change.
type TransitionConflict struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Current   string `json:"current"`
	Attempted string `json:"attempted"`
}

type ContactResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
}

type AddressResponse struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type ContainerResponse struct {
	TypeName  string `json:"type_name"`
	CatalogID string `json:"catalog_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

type OrderResponse struct {
	ID                  string            `json:"id"`
	Type                string            `json:"type"`
	Status              string            `json:"status"`
	TrackingNumber      string            `json:"tracking_number,omitempty"`
	IsNew               bool              `json:"is_new"`
	CreatedAt           time.Time         `json:"created_at"`
	Customer            ContactResponse   `json:"customer"`
	Container           ContainerResponse `json:"container"`
	DeliveryOption      string            `json:"delivery_option"`
	DeliveryDate        string            `json:"delivery_date"`
	Address             *AddressResponse  `json:"address,omitempty"`
	Total               MoneyResponse     `json:"total"`
	PaymentMethod       string            `json:"payment_method"`
	SpecialRequirements string            `json:"special_requirements,omitempty"`
	NextStatuses        []string          `json:"next_statuses"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Unseen int             `json:"unseen"`
}

type DeliveryResponse struct {
	ID             string            `json:"id"`
	OrderID        string            `json:"order_id"`
	TrackingNumber string            `json:"tracking_number"`
	Driver         string            `json:"driver"`
	Status         string            `json:"status"`
	Customer       ContactResponse   `json:"customer"`
	Destination    *AddressResponse  `json:"destination,omitempty"`
	Container      ContainerResponse `json:"container"`
	ScheduledDate  string            `json:"scheduled_date"`
	Notes          string            `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

type NotificationResponse struct {
	ID             string    `json:"id"`
	Sequence       int64     `json:"sequence"`
	OrderID        string    `json:"order_id"`
	Email          string    `json:"email"`
	Message        string    `json:"message"`
	Type           string    `json:"type"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type TrackingResponse struct {
	OrderID        string                 `json:"order_id"`
	Status         string                 `json:"status"`
	TrackingNumber string                 `json:"tracking_number,omitempty"`
	DeliveryDate   string                 `json:"delivery_date"`
	Delivery       *DeliveryResponse      `json:"delivery,omitempty"`
	Notifications  []NotificationResponse `json:"notifications"`
}

type EventResponse struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	IsNew          bool      `json:"is_new"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func newOrderResponse(v queries.OrderView) OrderResponse {
	next := v.Status.Successors()
	nextStatuses := make([]string, 0, len(next))
	for _, s := range next {
		nextStatuses = append(nextStatuses, s.String())
	}

	return OrderResponse{
		ID:                  v.ID,
		Type:                string(v.Type),
		Status:              v.Status.String(),
		TrackingNumber:      v.TrackingNumber,
		IsNew:               v.IsNew,
		CreatedAt:           v.CreatedAt.UTC(),
		Customer:            newContactResponse(v.Customer),
		Container:           ContainerResponse{TypeName: v.ContainerType, CatalogID: v.CatalogID, Quantity: v.Quantity},
		DeliveryOption:      string(v.DeliveryOption),
		DeliveryDate:        v.DeliveryDate.Format(dateLayout),
		Address:             newAddressResponse(v.Address),
		Total:               MoneyResponse{Amount: v.TotalAmount, Currency: v.Currency},
		PaymentMethod:       string(v.PaymentMethod),
		SpecialRequirements: v.SpecialRequirements,
		NextStatuses:        nextStatuses,
	}
}

func newContactResponse(c queries.ContactView) ContactResponse {
	return ContactResponse{Name: c.Name, Email: c.Email, Phone: c.Phone, Company: c.Company}
}

func newAddressResponse(a *queries.AddressView) *AddressResponse {
	if a == nil {
		return nil
	}
	return &AddressResponse{Line1: a.Line1, Line2: a.Line2, City: a.City, Postcode: a.Postcode}
}

func newDeliveryResponse(v queries.DeliveryView) DeliveryResponse {
	return DeliveryResponse{
		ID:             v.ID.String(),
		OrderID:        v.OrderID,
		TrackingNumber: v.TrackingNumber,
		Driver:         v.Driver,
		Status:         v.Status.String(),
		Customer:       newContactResponse(v.Customer),
		Destination:    newAddressResponse(v.Destination),
		Container:      ContainerResponse{TypeName: v.ContainerType, Quantity: v.Quantity},
		ScheduledDate:  v.ScheduledDate.Format(dateLayout),
		Notes:          v.Notes,
		CreatedAt:      v.CreatedAt.UTC(),
	}
}

func newNotificationResponse(v queries.NotificationView) NotificationResponse {
	return NotificationResponse{
		ID:             v.ID.String(),
		Sequence:       v.Sequence,
		OrderID:        v.OrderID,
		Email:          v.Email,
		Message:        v.Message,
		Type:           string(v.Type),
		TrackingNumber: v.TrackingNumber,
		CreatedAt:      v.CreatedAt.UTC(),
	}
}

func newEventResponse(e order.Event) EventResponse {
	resp := EventResponse{
		Type:           string(e.Type),
		OrderID:        e.OrderID,
		Status:         e.Status.String(),
		TrackingNumber: e.TrackingNumber,
		IsNew:          e.IsNew,
		OccurredAt:     e.OccurredAt.UTC(),
	}
	if e.PreviousStatus != order.Unknown {
		resp.PreviousStatus = e.PreviousStatus.String()
	}
	return resp
}
