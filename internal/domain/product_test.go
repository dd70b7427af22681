package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_StockStatus(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		min     int64
		want    StockStatus
	}{
		{"well stocked", 50, 10, StockNormal},
		{"just above threshold", 11, 10, StockNormal},
		{"at threshold", 10, 10, StockAlert},
		{"below threshold", 3, 10, StockAlert},
		{"depleted", 0, 10, StockDepleted},
		{"depleted beats alert with zero threshold", 0, 0, StockDepleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{StockCurrent: tt.current, StockMin: tt.min}
			assert.Equal(t, tt.want, p.StockStatus())
		})
	}
}

func TestProductPatch_Apply(t *testing.T) {
	original := Product{
		Name:         "Mug",
		Description:  "Plain white mug",
		Price:        decimal.RequireFromString("10.00"),
		StockCurrent: 5,
		StockMin:     2,
	}

	newName := "Travel Mug"
	newPrice := decimal.RequireFromString("12.50")
	newStock := int64(8)

	p := original
	ProductPatch{Name: &newName, Price: &newPrice, StockCurrent: &newStock}.Apply(&p)

	assert.Equal(t, "Travel Mug", p.Name)
	assert.True(t, p.Price.Equal(newPrice))
	assert.Equal(t, int64(8), p.StockCurrent)
	// Untouched fields keep their values.
	assert.Equal(t, original.Description, p.Description)
	assert.Equal(t, original.StockMin, p.StockMin)
}

func TestProductPatch_ApplyEmptyIsNoOp(t *testing.T) {
	original := Product{Name: "Mug", Price: decimal.RequireFromString("10.00"), StockCurrent: 5}
	p := original
	ProductPatch{}.Apply(&p)
	assert.Equal(t, original.Name, p.Name)
	assert.True(t, p.Price.Equal(original.Price))
	assert.Equal(t, original.StockCurrent, p.StockCurrent)
}
