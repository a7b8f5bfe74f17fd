// Package money holds the pure price arithmetic used by orders, the catalog and reports.
// All values are shopspring decimals; nothing here touches binary floats.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/apperror"
)

// DisplayPlaces is the number of fraction digits money is presented with.
const DisplayPlaces = 2

var (
	hundred = decimal.NewFromInt(100)
	// maxPrice is the first value that no longer fits NUMERIC(12, 2).
	maxPrice = decimal.New(1, 10)
)

// Line is the priced part of an order item.
type Line struct {
	Quantity          decimal.Decimal
	UnitSalePrice     decimal.Decimal
	UnitPurchasePrice decimal.Decimal
}

// LineTotal is quantity * unit sale price.
func LineTotal(l Line) decimal.Decimal {
	return l.Quantity.Mul(l.UnitSalePrice)
}

// LineCost is quantity * unit purchase price.
func LineCost(l Line) decimal.Decimal {
	return l.Quantity.Mul(l.UnitPurchasePrice)
}

// OrderTotal sums the line totals and adds the labor cost.
func OrderTotal(lines []Line, laborCost decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineTotal(l))
	}
	return total.Add(laborCost)
}

// OrderCost sums the purchase cost of every line. Labor is not a purchase cost.
func OrderCost(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineCost(l))
	}
	return total
}

// Sum adds values in order.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// MarginPercent returns (sale - purchase) / purchase * 100 rounded to display places,
// or zero when the purchase price is zero.
func MarginPercent(purchase, sale decimal.Decimal) decimal.Decimal {
	if purchase.IsZero() {
		return decimal.Zero
	}
	return sale.Sub(purchase).Div(purchase).Mul(hundred).Round(DisplayPlaces)
}

// Format renders an amount with exactly two fraction digits.
func Format(v decimal.Decimal) string {
	return v.StringFixed(DisplayPlaces)
}

// ValidateQuantity rejects zero and negative quantities.
func ValidateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return apperror.Validation("quantity", "must be greater than zero, got "+q.String())
	}
	return nil
}

// ValidateAmount rejects negative monetary amounts for the named field.
func ValidateAmount(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return apperror.Validation(field, "cannot be negative, got "+v.String())
	}
	return nil
}

// ValidatePrice checks a stored catalog price: not negative, at most DisplayPlaces
// fraction digits and below maxPrice.
func ValidatePrice(field string, v decimal.Decimal) error {
	if err := ValidateAmount(field, v); err != nil {
		return err
	}
	if !v.Equal(v.Truncate(DisplayPlaces)) {
		return apperror.Validation(field, "must have at most 2 decimal places, got "+v.String())
	}
	if v.GreaterThanOrEqual(maxPrice) {
		return apperror.Validation(field, "must be less than "+maxPrice.String()+", got "+v.String())
	}
	return nil
}
