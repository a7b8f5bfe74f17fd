package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/apperror"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/money"
)

// CreatedNote is the note of the first history entry of every order.
const CreatedNote = "order created"

// Each status has at most one successor; DONE has none.
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusQuote: {
		StatusInProgress: true,
	},
	StatusInProgress: {
		StatusDone: true,
	},
	StatusDone: {},
}

// CanTransition reports whether to is the successor of from.
func CanTransition(from, to OrderStatus) bool {
	return allowedTransitions[from][to]
}

// Next returns the successor of s, or false when s is terminal or unknown.
func Next(s OrderStatus) (OrderStatus, bool) {
	for to := range allowedTransitions[s] {
		return to, true
	}
	return "", false
}

// New builds a QUOTE order from d. The caller supplies an identifier unique within its client.
func New(id string, d Draft, now time.Time) (Order, error) {
	description := strings.TrimSpace(d.Description)
	if description == "" {
		return Order{}, apperror.Validation("description", "is required")
	}
	if err := money.ValidateAmount("labor_cost", d.LaborCost); err != nil {
		return Order{}, err
	}
	items, err := priceItems(d.Items)
	if err != nil {
		return Order{}, err
	}

	category := strings.TrimSpace(d.Category)
	if category == "" && len(items) > 0 {
		category = items[0].Category
	}

	o := Order{
		ID:          id,
		Description: description,
		Category:    category,
		Status:      StatusQuote,
		Items:       items,
		LaborCost:   d.LaborCost,
		CreatedAt:   now,
		UpdatedAt:   now,
		History: []HistoryEntry{
			{At: now, Status: StatusQuote, Note: CreatedNote},
		},
	}
	o.TotalValue = money.OrderTotal(o.Lines(), o.LaborCost)
	return o, nil
}

// Transition moves o to newStatus and appends the matching history entry.
// o is not modified; the updated copy is returned.
func Transition(o Order, newStatus OrderStatus, note string, now time.Time) (Order, error) {
	if !CanTransition(o.Status, newStatus) {
		return Order{}, &apperror.InvalidTransitionError{From: o.Status.String(), To: newStatus.String()}
	}

	at := now
	if n := len(o.History); n > 0 && at.Before(o.History[n-1].At) {
		at = o.History[n-1].At
	}

	updated := o.Clone()
	updated.History = append(updated.History, HistoryEntry{At: at, Status: newStatus, Note: strings.TrimSpace(note)})
	updated.Status = newStatus
	updated.UpdatedAt = at
	return updated, nil
}

// Reprice replaces the items and labor cost of o and recomputes its total.
// Status and history are kept as they are.
func Reprice(o Order, items []OrderItem, laborCost decimal.Decimal, now time.Time) (Order, error) {
	if err := money.ValidateAmount("labor_cost", laborCost); err != nil {
		return Order{}, err
	}
	priced, err := priceItems(items)
	if err != nil {
		return Order{}, err
	}

	updated := o.Clone()
	updated.Items = priced
	updated.LaborCost = laborCost
	updated.TotalValue = money.OrderTotal(updated.Lines(), laborCost)
	if now.After(updated.UpdatedAt) {
		updated.UpdatedAt = now
	}
	return updated, nil
}

// Validate checks the invariants of a stored order.
func (o Order) Validate() error {
	if o.ID == "" {
		return apperror.Validation("id", "is required")
	}
	if !o.Status.Valid() {
		return apperror.Validation("status", fmt.Sprintf("unknown value %q", o.Status))
	}
	if len(o.History) == 0 {
		return apperror.Validation("history", "must not be empty")
	}
	for i, h := range o.History {
		if !h.Status.Valid() {
			return apperror.Validation("history", fmt.Sprintf("entry %d has unknown status %q", i, h.Status))
		}
		if i > 0 && h.At.Before(o.History[i-1].At) {
			return apperror.Validation("history", fmt.Sprintf("entry %d is older than entry %d", i, i-1))
		}
	}
	if last := o.History[len(o.History)-1].Status; last != o.Status {
		return apperror.Validation("status", fmt.Sprintf("%s does not match last history status %s", o.Status, last))
	}
	if err := money.ValidateAmount("labor_cost", o.LaborCost); err != nil {
		return err
	}
	items, err := priceItems(o.Items)
	if err != nil {
		return err
	}
	if total := money.OrderTotal(Order{Items: items}.Lines(), o.LaborCost); !total.Equal(o.TotalValue) {
		return apperror.Validation("total_value", fmt.Sprintf("is %s, items and labor add up to %s", o.TotalValue, total))
	}
	return nil
}
