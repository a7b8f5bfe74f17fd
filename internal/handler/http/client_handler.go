package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/client"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/order"
)

type ClientRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Phone   string `json:"phone" validate:"max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=500"`
}

type ClientResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Email     string        `json:"email"`
	Address   string        `json:"address"`
	CreatedAt time.Time     `json:"created_at"`
	Version   int64         `json:"version"`
	Orders    []order.Order `json:"orders"`
}

type StatusCountsResponse struct {
	Counts map[order.OrderStatus]int `json:"counts"`
}

type ClientHandler struct {
	service  client.Service
	validate *validator.Validate
}

func NewClientHandler(service client.Service) *ClientHandler {
	return &ClientHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *ClientHandler) RegisterRoutes(router chi.Router) {
	router.Post("/clients", h.handleCreateClient)
	router.Get("/clients", h.handleSearchClients)
	router.Get("/clients/status-counts", h.handleCountByStatus)
	router.Get("/clients/{id}", h.handleGetClient)
	router.Put("/clients/{id}", h.handleUpdateClient)
	router.Delete("/clients/{id}", h.handleDeleteClient)
}

func toClientResponse(c *client.Client) ClientResponse {
	orders := c.Orders
	if orders == nil {
		orders = []order.Order{}
	}
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		Version:   c.Version,
		Orders:    orders,
	}
}

func (r ClientRequest) contact() client.Contact {
	return client.Contact{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
	}
}

func (h *ClientHandler) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var requestPayload ClientRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	created, err := h.service.CreateClient(r.Context(), requestPayload.contact())
	if err != nil {
		respondWithServiceError(w, err, "Failed to create client")
		return
	}

	respondWithJSON(w, http.StatusCreated, toClientResponse(created))
}

func (h *ClientHandler) handleSearchClients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := parseTimeQuery(r, "from", false)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseTimeQuery(r, "to", true)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := client.FilterOptions{
		Text: query.Get("q"),
		From: from,
		To:   to,
	}

	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status := order.OrderStatus(strings.ToUpper(raw))
		if !status.Valid() {
			respondWithError(w, http.StatusBadRequest, "Invalid status parameter")
			return
		}
		opts.Status = status
	}

	switch sort := client.SortOrder(strings.ToLower(query.Get("sort"))); sort {
	case "", client.SortDesc:
		opts.Sort = client.SortDesc
	case client.SortAsc:
		opts.Sort = client.SortAsc
	default:
		respondWithError(w, http.StatusBadRequest, "Invalid sort parameter")
		return
	}

	clients, err := h.service.SearchClients(r.Context(), opts)
	if err != nil {
		respondWithServiceError(w, err, "Failed to search clients")
		return
	}

	responsePayload := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responsePayload = append(responsePayload, toClientResponse(&clients[i]))
	}

	respondWithJSON(w, http.StatusOK, responsePayload)
}

func (h *ClientHandler) handleCountByStatus(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.CountByStatus(r.Context())
	if err != nil {
		respondWithServiceError(w, err, "Failed to count clients by status")
		return
	}

	respondWithJSON(w, http.StatusOK, StatusCountsResponse{Counts: counts})
}

func (h *ClientHandler) handleGetClient(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	found, err := h.service.GetClient(r.Context(), clientID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to get client")
		return
	}

	respondWithJSON(w, http.StatusOK, toClientResponse(found))
}

func (h *ClientHandler) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var requestPayload ClientRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	updated, err := h.service.UpdateContact(r.Context(), clientID, requestPayload.contact())
	if err != nil {
		respondWithServiceError(w, err, "Failed to update client")
		return
	}

	respondWithJSON(w, http.StatusOK, toClientResponse(updated))
}

func (h *ClientHandler) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteClient(r.Context(), clientID); err != nil {
		respondWithServiceError(w, err, "Failed to delete client")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
