package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is a watchlist item: one tracked symbol owned by a user.
// Symbol is unique across the whole table, not per user.
type Company struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Symbol      string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"symbol"`
	CompanyName string          `gorm:"column:name;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName keeps the table name used by the existing schema.
func (Company) TableName() string { return "companies" }
