package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/catalog"
	handler "github.com/Maffezzoli/ProjetoVidracaria/internal/handler/http"
)

func newProductRouter(svc *MockProductService) *chi.Mux {
	router := chi.NewRouter()
	handler.NewProductHandler(svc).RegisterRoutes(router)
	return router
}

func TestProductHandler_handleCreateProduct(t *testing.T) {
	mockService := new(MockProductService)

	mockService.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
		return p.Name == "Espelho 4mm" && p.SalePrice.Equal(decimal.RequireFromString("150")) && p.ID == uuid.Nil
	})).Return(&catalog.Product{
		ID:            uuid.Must(uuid.NewV4()),
		Name:          "Espelho 4mm",
		PurchasePrice: decimal.RequireFromString("100"),
		SalePrice:     decimal.RequireFromString("150"),
		Unit:          catalog.DefaultUnit,
	}, nil).Once()

	rr := serve(newProductRouter(mockService), http.MethodPost, "/products",
		`{"name":"Espelho 4mm","purchase_price":"100","sale_price":"150"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var actualResponse handler.ProductResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&actualResponse))
	assert.Equal(t, "50", actualResponse.MarginPercent.String())
	assert.Equal(t, catalog.DefaultUnit, actualResponse.Unit)
	mockService.AssertExpectations(t)
}

func TestProductHandler_handleCreateProduct_NameTaken(t *testing.T) {
	mockService := new(MockProductService)
	mockService.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, catalog.ErrProductNameTaken).Once()

	rr := serve(newProductRouter(mockService), http.MethodPost, "/products", `{"name":"Box"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "Product name already exists")
	mockService.AssertExpectations(t)
}

func TestProductHandler_handleListProducts(t *testing.T) {
	mockService := new(MockProductService)
	mockService.On("ListProducts", mock.Anything).Return([]catalog.Product{
		{ID: uuid.Must(uuid.NewV4()), Name: "Box", PurchasePrice: decimal.Zero, SalePrice: decimal.RequireFromString("10")},
		{ID: uuid.Must(uuid.NewV4()), Name: "Espelho", PurchasePrice: decimal.RequireFromString("3"), SalePrice: decimal.RequireFromString("4")},
	}, nil).Once()

	rr := serve(newProductRouter(mockService), http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var actualResponse []handler.ProductResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&actualResponse))
	require.Len(t, actualResponse, 2)
	assert.True(t, actualResponse[0].MarginPercent.IsZero())
	assert.Equal(t, "33.33", actualResponse[1].MarginPercent.StringFixed(2))
	mockService.AssertExpectations(t)
}

func TestProductHandler_handleUpdateAndDelete(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	tests := []struct {
		name       string
		method     string
		body       interface{}
		setup      func(m *MockProductService)
		wantStatus int
	}{
		{
			name:   "update_ok",
			method: http.MethodPut,
			body:   `{"name":"Box novo","sale_price":"12"}`,
			setup: func(m *MockProductService) {
				m.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
					return p.ID == id && p.Name == "Box novo"
				})).Return(nil).Once()
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "update_not_found",
			method: http.MethodPut,
			body:   `{"name":"Box novo"}`,
			setup: func(m *MockProductService) {
				m.On("UpdateProduct", mock.Anything, mock.Anything).Return(catalog.ErrProductNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "delete_ok",
			method: http.MethodDelete,
			setup: func(m *MockProductService) {
				m.On("DeleteProduct", mock.Anything, id).Return(nil).Once()
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "delete_store_failure",
			method: http.MethodDelete,
			setup: func(m *MockProductService) {
				m.On("DeleteProduct", mock.Anything, id).Return(errors.New("connection reset")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			tt.setup(mockService)

			rr := serve(newProductRouter(mockService), tt.method, "/products/"+id.String(), tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
			mockService.AssertExpectations(t)
		})
	}
}
