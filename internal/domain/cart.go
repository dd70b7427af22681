package domain

type Cart struct {
	ID     uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID uint64     `json:"userId" gorm:"not null;uniqueIndex"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID"`
}

// CartItem is one (product, quantity) line; the (cart, product) pair is
// unique per cart.
type CartItem struct {
	CartID    uint64 `json:"cartId" gorm:"primaryKey;autoIncrement:false"`
	ProductID uint64 `json:"productId" gorm:"primaryKey;autoIncrement:false"`
	Quantity  int64  `json:"quantity" gorm:"not null;default:1"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
