package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderCreatedEvent struct {
	EventID     string          `json:"eventId"`
	OrderID     uint64          `json:"orderId"`
	UserID      uint64          `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemCount   int             `json:"itemCount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// StockAlertEvent is emitted when a checkout drives a product down to its
// alert threshold or to zero.
type StockAlertEvent struct {
	EventID      string      `json:"eventId"`
	ProductID    uint64      `json:"productId"`
	SKU          string      `json:"sku"`
	StockCurrent int64       `json:"stockCurrent"`
	StockMin     int64       `json:"stockMin"`
	Status       StockStatus `json:"status"`
	OccurredAt   time.Time   `json:"occurredAt"`
}
