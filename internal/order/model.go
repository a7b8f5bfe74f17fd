package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/money"
)

type OrderStatus string

const (
	StatusQuote      OrderStatus = "QUOTE"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusDone       OrderStatus = "DONE"
)

// Statuses lists every status in lifecycle order.
var Statuses = []OrderStatus{StatusQuote, StatusInProgress, StatusDone}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusQuote, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// OrderItem is a quantity of a catalog product. Name, unit, category and both prices are
// copied from the product when the item is built, so later catalog edits never reach it.
type OrderItem struct {
	ProductID         string          `json:"product_id"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	Category          string          `json:"category,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPurchasePrice decimal.Decimal `json:"unit_purchase_price"`
	UnitSalePrice     decimal.Decimal `json:"unit_sale_price"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	TotalSale         decimal.Decimal `json:"total_sale"`
}

func (i OrderItem) Line() money.Line {
	return money.Line{
		Quantity:          i.Quantity,
		UnitSalePrice:     i.UnitSalePrice,
		UnitPurchasePrice: i.UnitPurchasePrice,
	}
}

// HistoryEntry is one immutable audit record of a status change.
type HistoryEntry struct {
	At     time.Time   `json:"at"`
	Status OrderStatus `json:"status"`
	Note   string      `json:"note,omitempty"`
}

type Order struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Status      OrderStatus     `json:"status"`
	Items       []OrderItem     `json:"items"`
	LaborCost   decimal.Decimal `json:"labor_cost"`
	TotalValue  decimal.Decimal `json:"total_value"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	History     []HistoryEntry  `json:"history"`
}

// Draft carries the caller-supplied part of a new order.
type Draft struct {
	Description string
	Category    string
	Items       []OrderItem
	LaborCost   decimal.Decimal
}

// Clone returns a deep copy; the result shares no slices with o.
func (o Order) Clone() Order {
	c := o
	c.Items = append([]OrderItem(nil), o.Items...)
	c.History = append([]HistoryEntry(nil), o.History...)
	if c.Items == nil {
		c.Items = []OrderItem{}
	}
	return c
}

func (o Order) Lines() []money.Line {
	lines := make([]money.Line, len(o.Items))
	for i, item := range o.Items {
		lines[i] = item.Line()
	}
	return lines
}

// ItemsCost is the purchase cost of all items, labor excluded.
func (o Order) ItemsCost() decimal.Decimal {
	return money.OrderCost(o.Lines())
}

// CompletedAt returns the timestamp of the DONE history entry, if the order reached it.
func (o Order) CompletedAt() (time.Time, bool) {
	for _, h := range o.History {
		if h.Status == StatusDone {
			return h.At, true
		}
	}
	return time.Time{}, false
}

// HasProduct reports whether any item references productID.
func (o Order) HasProduct(productID string) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
