package client

import (
	"time"

	"github.com/gofrs/uuid"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/order"
)

// Client is a customer record and the only owner of its orders.
// Orders keep insertion order, which is also creation order.
type Client struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Email     string        `json:"email"`
	Address   string        `json:"address"`
	CreatedAt time.Time     `json:"created_at"`
	Version   int64         `json:"version"`
	Orders    []order.Order `json:"orders"`
}

// Contact holds the editable customer details.
type Contact struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// Clone returns a deep copy of c.
func (c Client) Clone() Client {
	cp := c
	cp.Orders = make([]order.Order, len(c.Orders))
	for i, o := range c.Orders {
		cp.Orders[i] = o.Clone()
	}
	return cp
}

// LatestOrderAt returns the most recent order creation time, or the zero time when c has no orders.
func (c Client) LatestOrderAt() time.Time {
	var latest time.Time
	for _, o := range c.Orders {
		if o.CreatedAt.After(latest) {
			latest = o.CreatedAt
		}
	}
	return latest
}

// HasOrderWithStatus reports whether any order of c is currently in status s.
func (c Client) HasOrderWithStatus(s order.OrderStatus) bool {
	for _, o := range c.Orders {
		if o.Status == s {
			return true
		}
	}
	return false
}
