package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/apperror"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/catalog"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/order"
)

// Catalog is the read side of the product catalog used to build order items.
type Catalog interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
}

// ItemRequest asks for quantity units of a catalog product.
type ItemRequest struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// OrderRequest is a new order as submitted by the back office.
type OrderRequest struct {
	Description string
	Category    string
	Items       []ItemRequest
	LaborCost   decimal.Decimal
}

type Service interface {
	CreateClient(ctx context.Context, contact Contact) (*Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context) ([]Client, error)
	SearchClients(ctx context.Context, opts FilterOptions) ([]Client, error)
	CountByStatus(ctx context.Context) (map[order.OrderStatus]int, error)
	UpdateContact(ctx context.Context, id uuid.UUID, contact Contact) (*Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
	AddOrder(ctx context.Context, clientID uuid.UUID, req OrderRequest) (*order.Order, error)
	RepriceOrder(ctx context.Context, clientID uuid.UUID, orderID string, items []ItemRequest, laborCost decimal.Decimal) (*order.Order, error)
	TransitionOrder(ctx context.Context, clientID uuid.UUID, orderID string, newStatus order.OrderStatus, note string) (*order.Order, error)
}

type service struct {
	repo    Repository
	catalog Catalog
	clock   order.Clock
}

func NewService(repo Repository, catalog Catalog, clock order.Clock) Service {
	return &service{
		repo:    repo,
		catalog: catalog,
		clock:   clock,
	}
}

func (s *service) CreateClient(ctx context.Context, contact Contact) (*Client, error) {
	c := &Client{Orders: []order.Order{}}
	if err := c.SetContact(contact); err != nil {
		return nil, err
	}
	c.CreatedAt = s.clock.Now()

	if err := s.repo.Create(ctx, c); err != nil {
		log.Error().Err(err).Msg("service: failed to create client in repository")
		return nil, fmt.Errorf("service: failed to create client: %w", err)
	}

	log.Info().Stringer("client_id", c.ID).Msg("service: client created")
	return c, nil
}

func (s *service) GetClient(ctx context.Context, id uuid.UUID) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			log.Warn().Stringer("client_id", id).Msg("service: client not found")
			return nil, ErrClientNotFound
		}
		log.Error().Err(err).Stringer("client_id", id).Msg("service: failed to fetch client")
		return nil, fmt.Errorf("service: failed to fetch client %s: %w", id, err)
	}

	return c, nil
}

func (s *service) ListClients(ctx context.Context) ([]Client, error) {
	clients, err := s.repo.List(ctx, SortDesc)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list clients")
		return nil, fmt.Errorf("service: failed to list clients: %w", err)
	}

	return clients, nil
}

func (s *service) SearchClients(ctx context.Context, opts FilterOptions) ([]Client, error) {
	clients, err := s.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	return Filter(clients, opts), nil
}

func (s *service) CountByStatus(ctx context.Context) (map[order.OrderStatus]int, error) {
	clients, err := s.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	return CountByStatus(clients), nil
}

func (s *service) UpdateContact(ctx context.Context, id uuid.UUID, contact Contact) (*Client, error) {
	var updated *Client
	err := s.mutate(ctx, id, func(c *Client) error {
		if err := c.SetContact(contact); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrClientNotFound) {
			log.Warn().Stringer("client_id", id).Msg("service: client not found for delete")
			return ErrClientNotFound
		}
		log.Error().Err(err).Stringer("client_id", id).Msg("service: failed to delete client")
		return fmt.Errorf("service: failed to delete client %s: %w", id, err)
	}

	log.Info().Stringer("client_id", id).Msg("service: client deleted")
	return nil
}

func (s *service) AddOrder(ctx context.Context, clientID uuid.UUID, req OrderRequest) (*order.Order, error) {
	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	draft := order.Draft{
		Description: req.Description,
		Category:    req.Category,
		Items:       items,
		LaborCost:   req.LaborCost,
	}

	var created order.Order
	err = s.mutate(ctx, clientID, func(c *Client) error {
		created, err = c.AddOrder(draft, s.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Stringer("client_id", clientID).Str("order_id", created.ID).Str("total_value", created.TotalValue.StringFixed(2)).Msg("service: order created")
	return &created, nil
}

func (s *service) RepriceOrder(ctx context.Context, clientID uuid.UUID, orderID string, reqItems []ItemRequest, laborCost decimal.Decimal) (*order.Order, error) {
	items, err := s.buildItems(ctx, reqItems)
	if err != nil {
		return nil, err
	}

	var repriced order.Order
	err = s.mutate(ctx, clientID, func(c *Client) error {
		repriced, err = c.Reprice(orderID, items, laborCost, s.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Stringer("client_id", clientID).Str("order_id", orderID).Str("total_value", repriced.TotalValue.StringFixed(2)).Msg("service: order repriced")
	return &repriced, nil
}

func (s *service) TransitionOrder(ctx context.Context, clientID uuid.UUID, orderID string, newStatus order.OrderStatus, note string) (*order.Order, error) {
	var moved order.Order
	err := s.mutate(ctx, clientID, func(c *Client) error {
		var err error
		moved, err = c.TransitionOrder(orderID, newStatus, note, s.clock.Now())
		if errors.Is(err, apperror.ErrInvalidTransition) {
			current, _ := c.Order(orderID)
			log.Warn().
				Stringer("client_id", clientID).
				Str("order_id", orderID).
				Stringer("current_status", current.Status).
				Stringer("new_status", newStatus).
				Msg("service: invalid status transition attempt")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Stringer("client_id", clientID).Str("order_id", orderID).Stringer("new_status", newStatus).Msg("service: order status updated")
	return &moved, nil
}

// mutate loads the client, applies fn and saves the whole document once.
// Nothing is written when fn fails.
func (s *service) mutate(ctx context.Context, id uuid.UUID, fn func(c *Client) error) error {
	c, err := s.GetClient(ctx, id)
	if err != nil {
		return err
	}

	if err := fn(c); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		switch {
		case errors.Is(err, ErrVersionConflict):
			log.Warn().Stringer("client_id", id).Msg("service: concurrent update detected")
			return ErrVersionConflict
		case errors.Is(err, ErrClientNotFound):
			return ErrClientNotFound
		}
		log.Error().Err(err).Stringer("client_id", id).Msg("service: failed to save client")
		return fmt.Errorf("service: failed to save client %s: %w", id, err)
	}

	return nil
}

// buildItems snapshots the requested products from the current catalog.
func (s *service) buildItems(ctx context.Context, reqs []ItemRequest) ([]order.OrderItem, error) {
	if len(reqs) == 0 {
		return []order.OrderItem{}, nil
	}

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to load catalog")
		return nil, fmt.Errorf("service: failed to load catalog: %w", err)
	}

	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]order.OrderItem, 0, len(reqs))
	for _, req := range reqs {
		p, ok := byID[req.ProductID]
		if !ok {
			return nil, apperror.NotFound("product", req.ProductID.String())
		}
		item, err := order.NewItem(p, req.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
