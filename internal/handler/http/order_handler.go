package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/client"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/order"
)

type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type CreateOrderRequest struct {
	Description string             `json:"description" validate:"required,max=500"`
	Category    string             `json:"category" validate:"max=100"`
	Items       []OrderItemRequest `json:"items" validate:"dive"`
	LaborCost   decimal.Decimal    `json:"labor_cost"`
}

type RepriceOrderRequest struct {
	Items     []OrderItemRequest `json:"items" validate:"dive"`
	LaborCost decimal.Decimal    `json:"labor_cost"`
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=QUOTE IN_PROGRESS DONE"`
	Note   string `json:"note" validate:"max=500"`
}

type OrderHandler struct {
	service  client.Service
	validate *validator.Validate
}

func NewOrderHandler(service client.Service) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Post("/clients/{id}/orders", h.handleCreateOrder)
	router.Get("/clients/{id}/orders/{orderId}", h.handleGetOrder)
	router.Put("/clients/{id}/orders/{orderId}/items", h.handleRepriceOrder)
	router.Post("/clients/{id}/orders/{orderId}/transitions", h.handleTransitionOrder)
}

func toItemRequests(items []OrderItemRequest) []client.ItemRequest {
	reqs := make([]client.ItemRequest, 0, len(items))
	for _, item := range items {
		reqs = append(reqs, client.ItemRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return reqs
}

func (h *OrderHandler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var requestPayload CreateOrderRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	created, err := h.service.AddOrder(r.Context(), clientID, client.OrderRequest{
		Description: requestPayload.Description,
		Category:    requestPayload.Category,
		Items:       toItemRequests(requestPayload.Items),
		LaborCost:   requestPayload.LaborCost,
	})
	if err != nil {
		respondWithServiceError(w, err, "Failed to create order")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	found, err := h.service.GetClient(r.Context(), clientID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to get order")
		return
	}

	o, err := found.Order(chi.URLParam(r, "orderId"))
	if err != nil {
		respondWithServiceError(w, err, "Failed to get order")
		return
	}

	respondWithJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) handleRepriceOrder(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var requestPayload RepriceOrderRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	repriced, err := h.service.RepriceOrder(r.Context(), clientID, chi.URLParam(r, "orderId"),
		toItemRequests(requestPayload.Items), requestPayload.LaborCost)
	if err != nil {
		respondWithServiceError(w, err, "Failed to reprice order")
		return
	}

	respondWithJSON(w, http.StatusOK, repriced)
}

func (h *OrderHandler) handleTransitionOrder(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var requestPayload TransitionRequest
	if !decodeAndValidate(w, r, h.validate, &requestPayload) {
		return
	}

	moved, err := h.service.TransitionOrder(r.Context(), clientID, chi.URLParam(r, "orderId"),
		order.OrderStatus(requestPayload.Status), strings.TrimSpace(requestPayload.Note))
	if err != nil {
		respondWithServiceError(w, err, "Failed to change order status")
		return
	}

	respondWithJSON(w, http.StatusOK, moved)
}
