package http

import (
	"edu-cart/internal/domain"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name     string      `json:"name"`
	Username string      `json:"username" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     domain.Role `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
}

type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SKU         string `json:"sku" binding:"required"`
	// Pointer so a price of 0.00 (a free product) survives the required
	// check; negativity is rejected in the handler.
	Price        *decimal.Decimal `json:"price" binding:"required"`
	Rating       int              `json:"rating"`
	CategoryID   *uint64          `json:"categoryId"`
	ImageURL     string           `json:"imageUrl"`
	StockCurrent int64            `json:"stockCurrent" binding:"min=0"`
	StockMin     int64            `json:"stockMin" binding:"min=0"`
}

type CartItemRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest is the PUT body. Quantity is a pointer because
// 0 is a meaningful value there: it removes the line.
type UpdateCartItemRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  *int64 `json:"quantity" binding:"required"`
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	Locality        string `json:"locality"`
}

type OrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}
