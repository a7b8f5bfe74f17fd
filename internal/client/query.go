package client

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/order"
)

type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// FilterOptions selects and orders clients in the directory.
// Zero values disable the matching filter; Sort defaults to SortDesc.
type FilterOptions struct {
	Text   string
	From   *time.Time
	To     *time.Time
	Status order.OrderStatus
	Sort   SortOrder
}

// Filter returns deep copies of the clients that pass every active filter, sorted by their
// latest order creation time. clients is never modified. Ties keep input order.
func Filter(clients []Client, opts FilterOptions) []Client {
	term := strings.ToLower(strings.TrimSpace(opts.Text))
	termDigits := ""
	if strings.IndexFunc(term, unicode.IsLetter) < 0 {
		termDigits = digitsOnly(term)
	}

	result := make([]Client, 0, len(clients))
	for _, c := range clients {
		if !matchesText(c, term, termDigits) {
			continue
		}
		if !hasOrderInRange(c, opts.From, opts.To) {
			continue
		}
		if opts.Status != "" && !c.HasOrderWithStatus(opts.Status) {
			continue
		}
		result = append(result, c.Clone())
	}

	ascending := opts.Sort == SortAsc
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].LatestOrderAt(), result[j].LatestOrderAt()
		if ascending {
			return a.Before(b)
		}
		return a.After(b)
	})

	return result
}

// CountByStatus counts, per status, the clients having at least one order in it.
func CountByStatus(clients []Client) map[order.OrderStatus]int {
	counts := make(map[order.OrderStatus]int, len(order.Statuses))
	for _, s := range order.Statuses {
		counts[s] = 0
	}
	for _, c := range clients {
		for _, s := range order.Statuses {
			if c.HasOrderWithStatus(s) {
				counts[s]++
			}
		}
	}
	return counts
}

func matchesText(c Client, term, termDigits string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(strings.ToLower(c.Email), term) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Phone), term) {
		return true
	}
	return termDigits != "" && strings.Contains(digitsOnly(c.Phone), termDigits)
}

// hasOrderInRange is existential: one order created inside [from, to] is enough.
func hasOrderInRange(c Client, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	for _, o := range c.Orders {
		if InRange(o.CreatedAt, from, to) {
			return true
		}
	}
	return false
}

// InRange reports whether t lies within [from, to]; a nil bound is open.
func InRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
