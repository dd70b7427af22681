package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockStatus string

const (
	StockNormal   StockStatus = "normal"
	StockAlert    StockStatus = "alert"
	StockDepleted StockStatus = "depleted"
)

type Product struct {
	ID           uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	Description  string          `json:"description" gorm:"size:500"`
	SKU          string          `json:"sku" gorm:"size:50;not null;uniqueIndex"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Rating       int             `json:"rating" gorm:"not null;default:0"`
	CategoryID   *uint64         `json:"categoryId" gorm:"index"`
	ImageURL     string          `json:"imageUrl" gorm:"size:500"`
	StockCurrent int64           `json:"stockCurrent" gorm:"not null;default:0;check:stock_current >= 0"`
	StockMin     int64           `json:"stockMin" gorm:"not null;default:10"`
	CreatedAt    time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

// StockStatus derives the alert level from the current quantity against
// the minimum-stock threshold.
func (p *Product) StockStatus() StockStatus {
	switch {
	case p.StockCurrent == 0:
		return StockDepleted
	case p.StockCurrent <= p.StockMin:
		return StockAlert
	default:
		return StockNormal
	}
}

// ProductPatch carries the fields of a partial update. Nil means "leave
// unchanged"; Apply is the only merge path.
type ProductPatch struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Rating       *int             `json:"rating"`
	CategoryID   *uint64          `json:"categoryId"`
	ImageURL     *string          `json:"imageUrl"`
	StockCurrent *int64           `json:"stockCurrent"`
	StockMin     *int64           `json:"stockMin"`
}

func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.CategoryID != nil {
		p.CategoryID = patch.CategoryID
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.StockCurrent != nil {
		p.StockCurrent = *patch.StockCurrent
	}
	if patch.StockMin != nil {
		p.StockMin = *patch.StockMin
	}
}

type Category struct {
	ID   uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}
