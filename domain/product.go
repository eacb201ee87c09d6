package domain

import (
	"time"
)

type StockStatus string

const (
	StockAvailable  StockStatus = "AVAILABLE"
	StockLowStock   StockStatus = "LOW_STOCK"
	StockOutOfStock StockStatus = "OUT_OF_STOCK"
)

func (s StockStatus) Description() string {
	switch s {
	case StockAvailable:
		return "재고있음"
	case StockLowStock:
		return "재고부족"
	case StockOutOfStock:
		return "품절"
	}
	return string(s)
}

// Product is a catalog item. Category is free text ("모바일", "OTT", "디바이스"
// and so on). Eligibility markers and age limits are written in Korean inside
// the name and benefits text, not as structured columns.
type Product struct {
	ID            uint64      `gorm:"column:product_id;primaryKey;autoIncrement" json:"productId"`
	Name          string      `gorm:"column:name;size:100;not null" json:"name"`
	Category      string      `gorm:"column:category;size:50;not null" json:"category"`
	Price         float64     `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	DiscountRate  float64     `gorm:"column:discount_rate;type:numeric(5,2);default:0" json:"discountRate"`
	Benefits      string      `gorm:"column:benefits;type:text" json:"benefits"`
	StockStatus   StockStatus `gorm:"column:stock_status;type:varchar(20);default:AVAILABLE" json:"stockStatus"`
	CreatedAt     time.Time   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time   `gorm:"column:updated_at" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

// DiscountedPrice applies the discount rate, interpreted as a percentage.
func (p *Product) DiscountedPrice() float64 {
	if p.DiscountRate <= 0 {
		return p.Price
	}
	return p.Price * (100 - p.DiscountRate) / 100
}

func (p *Product) IsAvailable() bool {
	return p.StockStatus != StockOutOfStock
}
