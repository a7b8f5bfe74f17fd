package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/apperror"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/order"
)

var (
	ErrClientNotFound  = fmt.Errorf("client %w", apperror.ErrNotFound)
	ErrClientExists    = errors.New("client with this id already exists")
	ErrVersionConflict = errors.New("client was modified by another writer")
	ErrMalformedRecord = errors.New("malformed client record")
)

// Repository stores each client as one document: contact columns plus the embedded orders as JSON.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)
	List(ctx context.Context, sort SortOrder) ([]Client, error)
	Save(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepository struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &postgresRepository{db: db}
}

const selectClient = `
	SELECT id, name, phone, email, address, created_at, version, orders
	FROM vidracaria.clients
`

// Create inserts c with version 1, generating its identifier when absent.
func (r *postgresRepository) Create(ctx context.Context, c *Client) error {
	if c.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			log.Error().Err(err).Msg("repository: failed to generate client ID")
			return fmt.Errorf("repository: failed to generate client ID: %w", err)
		}
		c.ID = id
	}

	ordersJSON, err := encodeOrders(c.Orders)
	if err != nil {
		return fmt.Errorf("repository: failed to encode orders of client %s: %w", c.ID, err)
	}

	query := `
		INSERT INTO vidracaria.clients (id, name, phone, email, address, created_at, version, orders)
		VALUES ($1, $2, $3, $4, $5, $6, 1, $7)
	`
	_, err = r.db.Exec(ctx, query, c.ID, c.Name, c.Phone, c.Email, c.Address, c.CreatedAt, ordersJSON)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrClientExists
		}
		return fmt.Errorf("repository: failed to insert client: %w", err)
	}

	c.Version = 1
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	c, err := scanClient(r.db.QueryRow(ctx, selectClient+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("repository: failed to select client by id %s: %w", id, err)
	}

	return c, nil
}

// List returns every client ordered by creation time, newest first unless sort is SortAsc.
func (r *postgresRepository) List(ctx context.Context, sort SortOrder) ([]Client, error) {
	query := selectClient + ` ORDER BY created_at DESC, id`
	if sort == SortAsc {
		query = selectClient + ` ORDER BY created_at ASC, id`
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := make([]Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: failed iterating clients: %w", err)
	}

	return clients, nil
}

// Save writes the whole document if nobody saved it since c was loaded.
// On success c.Version is the new stored version.
func (r *postgresRepository) Save(ctx context.Context, c *Client) error {
	ordersJSON, err := encodeOrders(c.Orders)
	if err != nil {
		return fmt.Errorf("repository: failed to encode orders of client %s: %w", c.ID, err)
	}

	query := `
		UPDATE vidracaria.clients
		SET name = $1, phone = $2, email = $3, address = $4, orders = $5, version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`
	var version int64
	err = r.db.QueryRow(ctx, query, c.Name, c.Phone, c.Email, c.Address, ordersJSON, c.ID, c.Version).Scan(&version)
	if err == nil {
		c.Version = version
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("repository: failed to update client %s: %w", c.ID, err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM vidracaria.clients WHERE id = $1)`, c.ID).Scan(&exists); err != nil {
		return fmt.Errorf("repository: failed to check client %s: %w", c.ID, err)
	}
	if !exists {
		return ErrClientNotFound
	}

	log.Warn().Stringer("client_id", c.ID).Int64("version", c.Version).Msg("repository: stale client version on save")
	return ErrVersionConflict
}

// Delete removes the client and, with it, every embedded order.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM vidracaria.clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete client %s: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrClientNotFound
	}

	return nil
}

func scanClient(row pgx.Row) (*Client, error) {
	var (
		c          Client
		ordersJSON []byte
	)
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.Version, &ordersJSON)
	if err != nil {
		return nil, err
	}

	c.Orders, err = decodeOrders(ordersJSON)
	if err != nil {
		return nil, fmt.Errorf("client %s: %w", c.ID, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: client %s: %w", ErrMalformedRecord, c.ID, err)
	}

	return &c, nil
}

func encodeOrders(orders []order.Order) ([]byte, error) {
	if orders == nil {
		orders = []order.Order{}
	}
	return json.Marshal(orders)
}

// decodeOrders rejects unknown fields; a missing items list becomes an empty one.
func decodeOrders(raw []byte) ([]order.Order, error) {
	orders := make([]order.Order, 0)
	if len(raw) == 0 || string(raw) == "null" {
		return orders, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&orders); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []order.OrderItem{}
		}
	}

	return orders, nil
}
