package report_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/client"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/order"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/report"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 9, 0, 0, 0, time.UTC)
}

func item(productID, name, qty, purchase, sale string) order.OrderItem {
	return order.OrderItem{
		ProductID:         productID,
		Name:              name,
		Quantity:          dec(qty),
		UnitPurchasePrice: dec(purchase),
		UnitSalePrice:     dec(sale),
	}
}

type orderOption func(*order.Order)

func doneAt(t time.Time) orderOption {
	return func(o *order.Order) {
		o.Status = order.StatusDone
		o.History = append(o.History,
			order.HistoryEntry{At: o.CreatedAt, Status: order.StatusInProgress},
			order.HistoryEntry{At: t, Status: order.StatusDone},
		)
	}
}

func category(c string) orderOption {
	return func(o *order.Order) { o.Category = c }
}

func newOrder(createdAt time.Time, total, labor string, items []order.OrderItem, opts ...orderOption) order.Order {
	o := order.Order{
		ID:         fmt.Sprintf("o-%d", createdAt.UnixNano()),
		Status:     order.StatusQuote,
		Items:      items,
		LaborCost:  dec(labor),
		TotalValue: dec(total),
		CreatedAt:  createdAt,
		History:    []order.HistoryEntry{{At: createdAt, Status: order.StatusQuote}},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func TestAggregate_Scenario(t *testing.T) {
	orders := []order.Order{
		newOrder(day(3, 3), "100", "10", []order.OrderItem{item("p1", "Vidro 8mm", "1", "40", "90")}, doneAt(day(3, 5))),
		newOrder(day(3, 20), "200", "20", []order.OrderItem{item("p2", "Espelho", "2", "40", "90")}, doneAt(day(3, 24))),
	}

	d := report.Aggregate(orders, report.Filter{ProductID: report.AllProducts})

	assert.Equal(t, 2, d.OrderCount)
	assert.True(t, dec("300").Equal(d.TotalRevenue), d.TotalRevenue.String())
	assert.True(t, dec("180").Equal(d.GrossMargin), d.GrossMargin.String())
	assert.True(t, dec("210").Equal(d.NetMargin), d.NetMargin.String())
	require.Len(t, d.MonthlyRevenue, 1)
	assert.True(t, dec("300").Equal(d.MonthlyRevenue["2025-03"]))
	assert.InDelta(t, 3.0, d.MeanCompletionDays, 1e-9)
}

func TestAggregate_MeanCompletionDays(t *testing.T) {
	t.Run("no_completed_orders_is_zero", func(t *testing.T) {
		orders := []order.Order{newOrder(day(1, 1), "10", "0", nil)}
		d := report.Aggregate(orders, report.Filter{})
		assert.Zero(t, d.MeanCompletionDays)
	})

	t.Run("partial_days_are_truncated", func(t *testing.T) {
		orders := []order.Order{
			newOrder(day(1, 1), "10", "0", nil, doneAt(day(1, 2).Add(23*time.Hour))),
			newOrder(day(1, 1), "10", "0", nil, doneAt(day(1, 1).Add(2*time.Hour))),
			newOrder(day(1, 1), "10", "0", nil),
		}
		d := report.Aggregate(orders, report.Filter{})
		// 47h counts as 1 day, 2h as 0; the open order is ignored.
		assert.InDelta(t, 0.5, d.MeanCompletionDays, 1e-9)
	})

	t.Run("empty_input", func(t *testing.T) {
		d := report.Aggregate(nil, report.Filter{})
		assert.Zero(t, d.OrderCount)
		assert.Zero(t, d.MeanCompletionDays)
		assert.True(t, d.TotalRevenue.IsZero())
		assert.True(t, d.NetMargin.IsZero())
		assert.Empty(t, d.MonthlyRevenue)
		assert.Empty(t, d.TopProducts)
		assert.NotNil(t, d.TopProducts)
	})
}

func TestAggregate_TopProducts(t *testing.T) {
	var orders []order.Order
	// Box appears 3 times, Espelho 2, the rest once; Vidro is seen first.
	for i, counts := range [][]string{
		{"Vidro", "Espelho", "Box"},
		{"Box", "Puxador"},
		{"Espelho", "Box", "Silicone", "Perfil"},
	} {
		items := make([]order.OrderItem, 0, len(counts))
		for _, n := range counts {
			items = append(items, item(n, n, "1", "1", "2"))
		}
		orders = append(orders, newOrder(day(2, i+1), "0", "0", items))
	}

	d := report.Aggregate(orders, report.Filter{})

	want := []report.ProductCount{
		{Name: "Box", Count: 3},
		{Name: "Espelho", Count: 2},
		{Name: "Vidro", Count: 1},
		{Name: "Puxador", Count: 1},
		{Name: "Silicone", Count: 1},
	}
	assert.Empty(t, cmp.Diff(want, d.TopProducts))
}

func TestAggregate_MarginByCategory(t *testing.T) {
	orders := []order.Order{
		newOrder(day(4, 1), "100", "10", []order.OrderItem{item("p1", "Box", "1", "40", "90")}, category("box")),
		newOrder(day(4, 2), "50", "0", []order.OrderItem{item("p2", "Box", "1", "20", "50")}, category("box")),
		newOrder(day(4, 3), "30", "5", []order.OrderItem{item("p3", "Espelho", "1", "10", "25")}, category("espelhos")),
		newOrder(day(4, 4), "80", "0", []order.OrderItem{item("p4", "Vidro", "1", "30", "80")}),
	}

	d := report.Aggregate(orders, report.Filter{})

	require.Len(t, d.MarginByCategory, 2)
	// (100-40+10) + (50-20+0)
	assert.True(t, dec("100").Equal(d.MarginByCategory["box"]), d.MarginByCategory["box"].String())
	// 30-10+5
	assert.True(t, dec("25").Equal(d.MarginByCategory["espelhos"]), d.MarginByCategory["espelhos"].String())
	// untagged orders still count everywhere else
	assert.True(t, dec("260").Equal(d.TotalRevenue))
}

func TestAggregate_Filters(t *testing.T) {
	orders := []order.Order{
		newOrder(day(1, 10), "100", "0", []order.OrderItem{item("p1", "Vidro", "1", "10", "100")}),
		newOrder(day(2, 10), "200", "0", []order.OrderItem{item("p2", "Espelho", "1", "10", "200")}),
		newOrder(day(3, 10), "300", "0", []order.OrderItem{item("p1", "Vidro", "1", "10", "100"), item("p2", "Espelho", "1", "10", "200")}),
	}
	from, to := day(2, 10), day(3, 10)

	tests := []struct {
		name   string
		filter report.Filter
		count  int
		total  string
	}{
		{name: "no_filter", filter: report.Filter{}, count: 3, total: "600"},
		{name: "all_products", filter: report.Filter{ProductID: "all"}, count: 3, total: "600"},
		{name: "product", filter: report.Filter{ProductID: "p1"}, count: 2, total: "400"},
		{name: "unknown_product", filter: report.Filter{ProductID: "zzz"}, count: 0, total: "0"},
		{name: "from_inclusive", filter: report.Filter{From: &from}, count: 2, total: "500"},
		{name: "to_inclusive", filter: report.Filter{To: &from}, count: 2, total: "300"},
		{name: "range_and_product", filter: report.Filter{From: &from, To: &to, ProductID: "p1"}, count: 1, total: "300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := report.Aggregate(orders, tt.filter)
			assert.Equal(t, tt.count, d.OrderCount)
			assert.True(t, dec(tt.total).Equal(d.TotalRevenue), d.TotalRevenue.String())
		})
	}
}

func TestAggregate_MonthlyRevenueAcrossMonths(t *testing.T) {
	orders := []order.Order{
		newOrder(day(1, 31), "10.10", "0", nil),
		newOrder(day(2, 1), "20.20", "0", nil),
		newOrder(day(2, 28), "0.05", "0", nil),
	}

	d := report.Aggregate(orders, report.Filter{})

	assert.Equal(t, "10.10", d.MonthlyRevenue["2025-01"].StringFixed(2))
	assert.Equal(t, "20.25", d.MonthlyRevenue["2025-02"].StringFixed(2))
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	orders := []order.Order{
		newOrder(day(5, 1), "100", "10", []order.OrderItem{item("p1", "Vidro", "1", "40", "90")}, doneAt(day(5, 3)), category("vidros")),
	}
	snapshot := []order.Order{orders[0].Clone()}

	first := report.Aggregate(orders, report.Filter{})
	second := report.Aggregate(orders, report.Filter{})

	assert.Empty(t, cmp.Diff(snapshot, orders))
	assert.Empty(t, cmp.Diff(first, second))
}

func TestMonthSummary(t *testing.T) {
	orders := []order.Order{
		newOrder(time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC), "5", "0", nil),
		newOrder(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "10", "0", nil),
		newOrder(day(3, 15), "20", "0", nil, doneAt(day(3, 20))),
		newOrder(time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), "30", "0", nil),
		newOrder(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "40", "0", nil),
	}

	s := report.MonthSummary(orders, 2025, time.March)

	assert.Equal(t, 3, s.OrderCount)
	assert.True(t, dec("60").Equal(s.Total))
	assert.Equal(t, map[order.OrderStatus]int{
		order.StatusQuote:      2,
		order.StatusInProgress: 0,
		order.StatusDone:       1,
	}, s.ByStatus)

	empty := report.MonthSummary(orders, 2024, time.March)
	assert.Zero(t, empty.OrderCount)
	assert.True(t, empty.Total.IsZero())
}

func TestOrders_FlattensInClientOrder(t *testing.T) {
	a := newOrder(day(1, 1), "1", "0", nil)
	b := newOrder(day(1, 2), "2", "0", nil)
	c := newOrder(day(1, 3), "3", "0", nil)

	flat := report.Orders([]client.Client{
		{Name: "A", Orders: []order.Order{a, b}},
		{Name: "B", Orders: []order.Order{}},
		{Name: "C", Orders: []order.Order{c}},
	})

	require.Len(t, flat, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{flat[0].ID, flat[1].ID, flat[2].ID})
}
