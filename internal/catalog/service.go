package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/apperror"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/money"
)

type Service interface {
	CreateProduct(ctx context.Context, p *Product) (*Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// Clock stamps CreatedAt and UpdatedAt. order.SystemClock satisfies it.
type Clock interface {
	Now() time.Time
}

type service struct {
	repo  Repository
	clock Clock
}

func NewService(repo Repository, clock Clock) Service {
	return &service{repo: repo, clock: clock}
}

func (s *service) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	if err := normalize(p); err != nil {
		return nil, err
	}
	p.CreatedAt = s.clock.Now()
	p.UpdatedAt = p.CreatedAt

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrProductNameTaken) {
			log.Warn().Str("name", p.Name).Msg("service: product name already taken")
			return nil, ErrProductNameTaken
		}
		log.Error().Err(err).Msg("service: failed to create product in repository")
		return nil, fmt.Errorf("service: failed to create product: %w", err)
	}

	log.Info().Stringer("product_id", p.ID).Str("name", p.Name).Msg("service: product created")
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to fetch product")
		return nil, fmt.Errorf("service: failed to fetch product %s: %w", id, err)
	}

	return p, nil
}

func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list products")
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}

	return products, nil
}

func (s *service) UpdateProduct(ctx context.Context, p *Product) error {
	if err := normalize(p); err != nil {
		return err
	}
	p.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			return ErrProductNotFound
		case errors.Is(err, ErrProductNameTaken):
			return ErrProductNameTaken
		}
		log.Error().Err(err).Stringer("product_id", p.ID).Msg("service: failed to update product")
		return fmt.Errorf("service: failed to update product %s: %w", p.ID, err)
	}

	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to delete product")
		return fmt.Errorf("service: failed to delete product %s: %w", id, err)
	}

	log.Info().Stringer("product_id", id).Msg("service: product deleted")
	return nil
}

// normalize trims text fields, applies the default unit and checks prices.
func normalize(p *Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Unit = strings.TrimSpace(p.Unit)
	p.Category = strings.TrimSpace(p.Category)

	if p.Name == "" {
		return apperror.Validation("name", "is required")
	}
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}
	if err := money.ValidatePrice("purchase_price", p.PurchasePrice); err != nil {
		return err
	}
	return money.ValidatePrice("sale_price", p.SalePrice)
}
