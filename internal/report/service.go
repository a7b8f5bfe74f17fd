package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/apperror"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/client"
)

// ClientLister loads the client documents the reports are computed from.
type ClientLister interface {
	ListClients(ctx context.Context) ([]client.Client, error)
}

type Service interface {
	Dashboard(ctx context.Context, f Filter) (Dashboard, error)
	Monthly(ctx context.Context, year int, month time.Month) (MonthlySummary, error)
}

type service struct {
	clients ClientLister
}

func NewService(clients ClientLister) Service {
	return &service{clients: clients}
}

func (s *service) Dashboard(ctx context.Context, f Filter) (Dashboard, error) {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return Dashboard{}, apperror.Validation("from", "must not be after to")
	}

	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to load clients for dashboard")
		return Dashboard{}, fmt.Errorf("service: failed to build dashboard: %w", err)
	}

	d := Aggregate(Orders(clients), f)
	log.Debug().Int("orders", d.OrderCount).Str("product_id", f.ProductID).Msg("service: dashboard computed")
	return d, nil
}

func (s *service) Monthly(ctx context.Context, year int, month time.Month) (MonthlySummary, error) {
	if month < time.January || month > time.December {
		return MonthlySummary{}, apperror.Validation("month", "must be between 1 and 12")
	}
	if year < 1 {
		return MonthlySummary{}, apperror.Validation("year", "must be positive")
	}

	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to load clients for monthly summary")
		return MonthlySummary{}, fmt.Errorf("service: failed to build monthly summary: %w", err)
	}

	return MonthSummary(Orders(clients), year, month), nil
}
