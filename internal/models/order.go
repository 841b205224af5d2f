package models

import "time"

const (
	// PaymentMethodCOD is the only supported payment method.
	PaymentMethodCOD = "COD"
	// OrderStatusPendingConfirmation is the status every order is stored with.
	OrderStatusPendingConfirmation = "Pending Confirmation"
)

// Tracking statuses, derived from order age.
const (
	TrackingOrderPlaced = "Order Placed"
	TrackingProcessing  = "Processing"
	TrackingShipped     = "Shipped"
	TrackingDelivered   = "Delivered"
)

// DeliveryDetails holds where and to whom an order ships.
type DeliveryDetails struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Pincode  string `json:"pincode" validate:"required"`
}

// OrderItem is a by-value copy of a cart line taken at checkout.
type OrderItem struct {
	ID       string  `json:"-" gorm:"primaryKey;type:varchar(36)"`
	OrderID  string  `json:"-" gorm:"type:varchar(36);index"`
	Position int     `json:"-"`
	BookID   string  `json:"catalogItemId"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"` // Price at the time of order
	CoverURL string  `json:"coverUrl"`
	Quantity int     `json:"quantity"`
}

// Order is a write-once record of a checkout. Totals are frozen at creation.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username        string          `json:"username" gorm:"type:varchar(100);index;not null"`
	OrderNumber     int             `json:"orderNumber"` // display only, not unique
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal        float64         `json:"subtotal"`
	Tax             float64         `json:"tax"`
	Total           float64         `json:"total"`
	DeliveryDetails DeliveryDetails `json:"deliveryDetails" gorm:"embedded;embeddedPrefix:delivery_"`
	PaymentMethod   string          `json:"paymentMethod" gorm:"type:varchar(20);default:'COD'"`
	Status          string          `json:"status" gorm:"type:varchar(40)"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"index"`
}

// Tracking is the display progress of an order. It is never stored.
type Tracking struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

// TrackingAt derives the order's tracking state from its age in whole days
// at now.
func (o Order) TrackingAt(now time.Time) Tracking {
	days := int(now.Sub(o.CreatedAt) / (24 * time.Hour))
	switch {
	case days <= 0:
		return Tracking{Status: TrackingOrderPlaced, Progress: 25}
	case days == 1:
		return Tracking{Status: TrackingProcessing, Progress: 50}
	case days == 2:
		return Tracking{Status: TrackingShipped, Progress: 75}
	default:
		return Tracking{Status: TrackingDelivered, Progress: 100}
	}
}
