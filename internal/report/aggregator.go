package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/client"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/order"
)

// AllProducts disables the product filter. An empty ProductID does the same.
const AllProducts = "all"

// TopProductsLimit is how many products Dashboard.TopProducts holds at most.
const TopProductsLimit = 5

// MonthLabelLayout formats the keys of Dashboard.MonthlyRevenue.
const MonthLabelLayout = "2006-01"

type Filter struct {
	From      *time.Time
	To        *time.Time
	ProductID string
}

type ProductCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Dashboard struct {
	OrderCount         int                        `json:"order_count"`
	TotalRevenue       decimal.Decimal            `json:"total_revenue"`
	GrossMargin        decimal.Decimal            `json:"gross_margin"`
	NetMargin          decimal.Decimal            `json:"net_margin"`
	MeanCompletionDays float64                    `json:"mean_completion_days"`
	MonthlyRevenue     map[string]decimal.Decimal `json:"monthly_revenue"`
	TopProducts        []ProductCount             `json:"top_products"`
	MarginByCategory   map[string]decimal.Decimal `json:"margin_by_category"`
}

type MonthlySummary struct {
	Year       int                       `json:"year"`
	Month      time.Month                `json:"month"`
	OrderCount int                       `json:"order_count"`
	Total      decimal.Decimal           `json:"total"`
	ByStatus   map[order.OrderStatus]int `json:"by_status"`
}

func (f Filter) matches(o order.Order) bool {
	if !client.InRange(o.CreatedAt, f.From, f.To) {
		return false
	}
	productID := strings.TrimSpace(f.ProductID)
	if productID == "" || productID == AllProducts {
		return true
	}
	return o.HasProduct(productID)
}

// Aggregate computes the dashboard figures over the orders passing f.
// Net margin adds labor cost to the gross margin instead of subtracting it.
func Aggregate(orders []order.Order, f Filter) Dashboard {
	d := Dashboard{
		TotalRevenue:     decimal.Zero,
		GrossMargin:      decimal.Zero,
		NetMargin:        decimal.Zero,
		MonthlyRevenue:   map[string]decimal.Decimal{},
		TopProducts:      []ProductCount{},
		MarginByCategory: map[string]decimal.Decimal{},
	}

	var (
		labor         = decimal.Zero
		completedDays int64
		completed     int64
		counts        = map[string]int{}
		firstSeen     []string
	)

	for _, o := range orders {
		if !f.matches(o) {
			continue
		}
		d.OrderCount++

		gross := o.TotalValue.Sub(o.ItemsCost())
		d.TotalRevenue = d.TotalRevenue.Add(o.TotalValue)
		d.GrossMargin = d.GrossMargin.Add(gross)
		labor = labor.Add(o.LaborCost)

		if doneAt, ok := o.CompletedAt(); ok {
			completedDays += wholeDays(o.CreatedAt, doneAt)
			completed++
		}

		month := o.CreatedAt.UTC().Format(MonthLabelLayout)
		d.MonthlyRevenue[month] = d.MonthlyRevenue[month].Add(o.TotalValue)

		for _, item := range o.Items {
			if _, ok := counts[item.Name]; !ok {
				firstSeen = append(firstSeen, item.Name)
			}
			counts[item.Name]++
		}

		if category := strings.TrimSpace(o.Category); category != "" {
			d.MarginByCategory[category] = d.MarginByCategory[category].Add(gross.Add(o.LaborCost))
		}
	}

	d.NetMargin = d.GrossMargin.Add(labor)
	if completed > 0 {
		d.MeanCompletionDays = float64(completedDays) / float64(completed)
	}
	d.TopProducts = topProducts(counts, firstSeen, TopProductsLimit)

	return d
}

// MonthSummary counts and sums the orders created in the given UTC calendar month.
func MonthSummary(orders []order.Order, year int, month time.Month) MonthlySummary {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	s := MonthlySummary{
		Year:     year,
		Month:    month,
		Total:    decimal.Zero,
		ByStatus: map[order.OrderStatus]int{},
	}
	for _, status := range order.Statuses {
		s.ByStatus[status] = 0
	}

	for _, o := range orders {
		if !client.InRange(o.CreatedAt.UTC(), &from, &to) {
			continue
		}
		s.OrderCount++
		s.Total = s.Total.Add(o.TotalValue)
		s.ByStatus[o.Status]++
	}

	return s
}

// Orders flattens the orders of every client, keeping client then order sequence.
func Orders(clients []client.Client) []order.Order {
	var n int
	for _, c := range clients {
		n += len(c.Orders)
	}

	orders := make([]order.Order, 0, n)
	for _, c := range clients {
		orders = append(orders, c.Orders...)
	}
	return orders
}

func wholeDays(from, to time.Time) int64 {
	if !to.After(from) {
		return 0
	}
	return int64(math.Floor(to.Sub(from).Hours() / 24))
}

func topProducts(counts map[string]int, firstSeen []string, limit int) []ProductCount {
	ranked := make([]ProductCount, 0, len(firstSeen))
	for _, name := range firstSeen {
		ranked = append(ranked, ProductCount{Name: name, Count: counts[name]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
