package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// statusRank orders the forward progression. Cancelled sits outside the
// progression and is reachable from any non-terminal state.
var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusCompleted:  3,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanAdvanceTo reports whether an admin may move an order from s to next:
// strictly forward along the progression, or to Cancelled while s is not
// terminal.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

type Order struct {
	ID              uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          uint64          `json:"userId" gorm:"not null;index"`
	OrderDate       time.Time       `json:"orderDate" gorm:"autoCreateTime"`
	Status          OrderStatus     `json:"status" gorm:"size:50;not null;default:'pending'"`
	ShippingAddress string          `json:"shippingAddress" gorm:"size:500;not null"`
	Locality        string          `json:"locality" gorm:"size:50"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem freezes quantity and unit price at purchase time; later price
// changes on the product never touch it.
type OrderItem struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64          `json:"orderId" gorm:"index"`
	ProductID uint64          `json:"productId" gorm:"not null;index"`
	Quantity  int64           `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
