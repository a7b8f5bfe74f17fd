package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/apperror"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/order"
)

// The methods below change c only when they succeed; a failed call leaves c as it was.
// Persisting the whole client afterwards is the caller's job.

// AddOrder builds a QUOTE order from d, gives it an identifier unique within c and appends it.
func (c *Client) AddOrder(d order.Draft, now time.Time) (order.Order, error) {
	id, err := c.newOrderID()
	if err != nil {
		return order.Order{}, err
	}

	o, err := order.New(id, d, now)
	if err != nil {
		return order.Order{}, err
	}

	c.Orders = append(c.Orders, o)
	return o.Clone(), nil
}

// Reprice replaces the items and labor cost of the order orderID.
func (c *Client) Reprice(orderID string, items []order.OrderItem, laborCost decimal.Decimal, now time.Time) (order.Order, error) {
	idx, err := c.orderIndex(orderID)
	if err != nil {
		return order.Order{}, err
	}

	updated, err := order.Reprice(c.Orders[idx], items, laborCost, now)
	if err != nil {
		return order.Order{}, err
	}

	c.Orders[idx] = updated
	return updated.Clone(), nil
}

// TransitionOrder moves the order orderID to newStatus.
func (c *Client) TransitionOrder(orderID string, newStatus order.OrderStatus, note string, now time.Time) (order.Order, error) {
	idx, err := c.orderIndex(orderID)
	if err != nil {
		return order.Order{}, err
	}

	updated, err := order.Transition(c.Orders[idx], newStatus, note, now)
	if err != nil {
		return order.Order{}, err
	}

	c.Orders[idx] = updated
	return updated.Clone(), nil
}

// Order returns a copy of the order orderID.
func (c Client) Order(orderID string) (order.Order, error) {
	idx, err := c.orderIndex(orderID)
	if err != nil {
		return order.Order{}, err
	}
	return c.Orders[idx].Clone(), nil
}

// SetContact replaces the customer details. Identifier, creation time and orders are untouched.
func (c *Client) SetContact(contact Contact) error {
	contact, err := normalizeContact(contact)
	if err != nil {
		return err
	}

	c.Name = contact.Name
	c.Phone = contact.Phone
	c.Email = contact.Email
	c.Address = contact.Address
	return nil
}

// Validate checks a stored client and every order it owns.
func (c Client) Validate() error {
	if c.ID == uuid.Nil {
		return apperror.Validation("id", "is required")
	}
	seen := make(map[string]struct{}, len(c.Orders))
	for i, o := range c.Orders {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("order %d: %w", i, err)
		}
		if _, dup := seen[o.ID]; dup {
			return apperror.Validation("orders", fmt.Sprintf("duplicate order id %q", o.ID))
		}
		seen[o.ID] = struct{}{}
	}
	return nil
}

func (c Client) orderIndex(orderID string) (int, error) {
	for i, o := range c.Orders {
		if o.ID == orderID {
			return i, nil
		}
	}
	return -1, apperror.NotFound("order", orderID)
}

func (c Client) newOrderID() (string, error) {
	for {
		id, err := uuid.NewV4()
		if err != nil {
			return "", fmt.Errorf("failed to generate order ID: %w", err)
		}
		if _, err := c.orderIndex(id.String()); err != nil {
			return id.String(), nil
		}
	}
}

func normalizeContact(contact Contact) (Contact, error) {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Phone = strings.TrimSpace(contact.Phone)
	contact.Email = strings.TrimSpace(contact.Email)
	contact.Address = strings.TrimSpace(contact.Address)

	if contact.Name == "" {
		return Contact{}, apperror.Validation("name", "is required")
	}
	return contact, nil
}
