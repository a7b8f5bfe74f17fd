package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/apperror"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/catalog"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/money"
)

// NewItem snapshots p into an item of the given quantity.
func NewItem(p catalog.Product, quantity decimal.Decimal) (OrderItem, error) {
	item := OrderItem{
		ProductID:         p.ID.String(),
		Name:              p.Name,
		Unit:              p.Unit,
		Category:          p.Category,
		Quantity:          quantity,
		UnitPurchasePrice: p.PurchasePrice,
		UnitSalePrice:     p.SalePrice,
	}
	return priceItem(item)
}

// priceItem validates an item and fills its derived totals.
func priceItem(item OrderItem) (OrderItem, error) {
	if item.ProductID == "" {
		return OrderItem{}, apperror.Validation("product_id", "is required")
	}
	if err := money.ValidateQuantity(item.Quantity); err != nil {
		return OrderItem{}, err
	}
	if err := money.ValidateAmount("unit_purchase_price", item.UnitPurchasePrice); err != nil {
		return OrderItem{}, err
	}
	if err := money.ValidateAmount("unit_sale_price", item.UnitSalePrice); err != nil {
		return OrderItem{}, err
	}

	item.TotalCost = money.LineCost(item.Line())
	item.TotalSale = money.LineTotal(item.Line())
	return item, nil
}

// priceItems returns a fresh slice of priced copies; items itself is left untouched.
func priceItems(items []OrderItem) ([]OrderItem, error) {
	priced := make([]OrderItem, 0, len(items))
	for i, item := range items {
		p, err := priceItem(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		priced = append(priced, p)
	}
	return priced, nil
}
