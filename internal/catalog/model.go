package catalog

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/money"
)

// DefaultUnit is used when a product is saved without a unit of measure.
const DefaultUnit = "metro"

// Product is a catalog entry. Orders copy its prices when an item is added.
type Product struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description" db:"description"`
	PurchasePrice decimal.Decimal `json:"purchase_price" db:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price" db:"sale_price"`
	Unit          string          `json:"unit" db:"unit"`
	Category      string          `json:"category" db:"category"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// MarginPercent is derived on every read and never stored.
func (p Product) MarginPercent() decimal.Decimal {
	return money.MarginPercent(p.PurchasePrice, p.SalePrice)
}
