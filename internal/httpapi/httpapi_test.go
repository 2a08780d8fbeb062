package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/mvargas/cafe-orders/internal/domain"
	"github.com/mvargas/cafe-orders/internal/observability"
	"github.com/mvargas/cafe-orders/internal/store/memory"
)

func newTestServer(t *testing.T) (*Server, *MockOrderService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cafes := memory.NewCafeStore()
	customers := memory.NewCustomerStore()
	orders := memory.NewOrderStore()
	service := NewMockOrderService(ctrl)

	ctx := context.Background()
	_, err := cafes.Create(ctx, &domain.Cafe{Name: "espresso", Description: "strong", Price: 2.50})
	require.NoError(t, err)
	_, err = customers.Create(ctx, &domain.Customer{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	srv := New(cafes, customers, orders, service, zaptest.NewLogger(t), observability.NewNoop())
	return srv, service
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_Cafes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "list",
			method:         "GET",
			path:           "/api/cafes/",
			expectedStatus: http.StatusOK,
			expectedBody:   `"total": 1`,
		},
		{
			name:           "get existing",
			method:         "GET",
			path:           "/api/cafes/1",
			expectedStatus: http.StatusOK,
			expectedBody:   `"name": "espresso"`,
		},
		{
			name:           "get missing",
			method:         "GET",
			path:           "/api/cafes/99",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "get bad id",
			method:         "GET",
			path:           "/api/cafes/abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid cafe id",
		},
		{
			name:           "create",
			method:         "POST",
			path:           "/api/cafes/",
			body:           `{"name": "latte", "description": "milky", "price": 3.75}`,
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id": 2`,
		},
		{
			name:           "create with taken id",
			method:         "POST",
			path:           "/api/cafes/",
			body:           `{"id": 1, "name": "latte", "description": "milky", "price": 3.75}`,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "create without name",
			method:         "POST",
			path:           "/api/cafes/",
			body:           `{"description": "milky", "price": 3.75}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "create with unknown field",
			method:         "POST",
			path:           "/api/cafes/",
			body:           `{"name": "latte", "description": "milky", "price": 3.75, "rating": 5}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "bad json",
		},
		{
			name:           "update",
			method:         "PUT",
			path:           "/api/cafes/1",
			body:           `{"name": "espresso doppio", "description": "stronger", "price": 3.00}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"name": "espresso doppio"`,
		},
		{
			name:           "update missing",
			method:         "PUT",
			path:           "/api/cafes/99",
			body:           `{"name": "x", "description": "y", "price": 1}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "patch price only",
			method:         "PATCH",
			path:           "/api/cafes/1",
			body:           `{"price": 9.99}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"name": "espresso"`,
		},
		{
			name:           "patch missing",
			method:         "PATCH",
			path:           "/api/cafes/99",
			body:           `{"price": 9.99}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "delete",
			method:         "DELETE",
			path:           "/api/cafes/1",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "delete missing",
			method:         "DELETE",
			path:           "/api/cafes/99",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t)

			w := doJSON(t, srv, tt.method, tt.path, tt.body)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				require.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestServer_CafePatchMergesFields(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, "PATCH", "/api/cafes/1", `{"price": 4.20}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, "GET", "/api/cafes/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"name": "espresso"`)
	require.Contains(t, w.Body.String(), `"description": "strong"`)
	require.Contains(t, w.Body.String(), `"price": 4.2`)
}

func TestServer_Customers(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "list",
			method:         "GET",
			path:           "/api/customers/",
			expectedStatus: http.StatusOK,
			expectedBody:   `"total": 1`,
		},
		{
			name:           "get existing",
			method:         "GET",
			path:           "/api/customers/1",
			expectedStatus: http.StatusOK,
			expectedBody:   `"email": "alice@example.com"`,
		},
		{
			name:           "create",
			method:         "POST",
			path:           "/api/customers/",
			body:           `{"name": "Bob", "email": "bob@example.com"}`,
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id": 2`,
		},
		{
			name:           "create without email",
			method:         "POST",
			path:           "/api/customers/",
			body:           `{"name": "Bob"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "patch email only",
			method:         "PATCH",
			path:           "/api/customers/1",
			body:           `{"email": "alice@new.example.com"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"name": "Alice"`,
		},
		{
			name:           "delete missing",
			method:         "DELETE",
			path:           "/api/customers/99",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t)

			w := doJSON(t, srv, tt.method, tt.path, tt.body)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				require.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestServer_CreateOrder(t *testing.T) {
	type serviceResponse struct {
		order *domain.Order
		err   error
	}

	tests := []struct {
		name           string
		body           string
		contentType    string
		serviceResp    *serviceResponse
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "successful create",
			contentType: "application/json",
			body:        `{"customer_id": 1, "items": [{"cafe_id": 1, "quantity": 2}]}`,
			serviceResp: &serviceResponse{
				order: &domain.Order{
					ID:         1,
					CustomerID: 1,
					Items:      []domain.OrderItem{{CafeID: 1, Price: 2.50, Quantity: 2}},
					Total:      5.00,
					CreatedAt:  time.Now(),
				},
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"total": 5`,
		},
		{
			name:           "invalid content type",
			contentType:    "text/plain",
			body:           `{"customer_id": 1}`,
			expectedStatus: http.StatusUnsupportedMediaType,
			expectedBody:   "Content-Type must be application/json",
		},
		{
			name:           "invalid json",
			contentType:    "application/json",
			body:           `{"customer_id": 1`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "bad json",
		},
		{
			name:        "unknown customer",
			contentType: "application/json",
			body:        `{"customer_id": 42, "items": [{"cafe_id": 1, "quantity": 1}]}`,
			serviceResp: &serviceResponse{
				err: fmt.Errorf("%w: 42", domain.ErrInvalidCustomer),
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "42",
		},
		{
			name:        "unknown cafe",
			contentType: "application/json",
			body:        `{"customer_id": 1, "items": [{"cafe_id": 99, "quantity": 1}]}`,
			serviceResp: &serviceResponse{
				err: fmt.Errorf("%w: 99", domain.ErrInvalidItem),
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "99",
		},
		{
			name:        "empty order",
			contentType: "application/json",
			body:        `{"customer_id": 1, "items": []}`,
			serviceResp: &serviceResponse{
				err: domain.ErrEmptyOrder,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "store failure",
			contentType: "application/json",
			body:        `{"customer_id": 1, "items": [{"cafe_id": 1, "quantity": 1}]}`,
			serviceResp: &serviceResponse{
				err: fmt.Errorf("%w: order persisted without an id", domain.ErrInternal),
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, service := newTestServer(t)

			if tt.serviceResp != nil {
				service.EXPECT().
					CreateOrder(gomock.Any(), gomock.Any()).
					Return(tt.serviceResp.order, tt.serviceResp.err)
			}

			req := httptest.NewRequest("POST", "/api/orders/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()

			srv.Handler().ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				require.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestServer_OrdersByCustomer(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(service *MockOrderService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "customer with orders",
			path: "/api/orders/customer/1",
			setupMock: func(service *MockOrderService) {
				service.EXPECT().
					OrdersByCustomer(gomock.Any(), int64(1)).
					Return([]domain.Order{{ID: 1, CustomerID: 1, Total: 5.00}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"customer_id": 1`,
		},
		{
			name: "customer without orders gets empty list",
			path: "/api/orders/customer/1",
			setupMock: func(service *MockOrderService) {
				service.EXPECT().
					OrdersByCustomer(gomock.Any(), int64(1)).
					Return([]domain.Order{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "[]",
		},
		{
			name: "unknown customer is 404",
			path: "/api/orders/customer/42",
			setupMock: func(service *MockOrderService) {
				service.EXPECT().
					OrdersByCustomer(gomock.Any(), int64(42)).
					Return(nil, fmt.Errorf("%w: 42", domain.ErrInvalidCustomer))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad customer id",
			path:           "/api/orders/customer/abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid customer id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, service := newTestServer(t)
			if tt.setupMock != nil {
				tt.setupMock(service)
			}

			w := doJSON(t, srv, "GET", tt.path, "")

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				require.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestServer_DeleteOrder(t *testing.T) {
	t.Run("existing order", func(t *testing.T) {
		srv, service := newTestServer(t)
		service.EXPECT().DeleteOrder(gomock.Any(), int64(1)).Return(nil)

		w := doJSON(t, srv, "DELETE", "/api/orders/1", "")
		require.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("missing order", func(t *testing.T) {
		srv, service := newTestServer(t)
		service.EXPECT().DeleteOrder(gomock.Any(), int64(99)).Return(domain.ErrNotFound)

		w := doJSON(t, srv, "DELETE", "/api/orders/99", "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestServer_ListOrdersPaging(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, "GET", "/api/orders/?page=2&size=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"page": 2`)
	require.Contains(t, w.Body.String(), `"size": 5`)
}

func TestServer_Healthz(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, "GET", "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}

func TestServer_ListenAndServe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := New(
		memory.NewCafeStore(),
		memory.NewCustomerStore(),
		memory.NewOrderStore(),
		NewMockOrderService(ctrl),
		zap.NewNop(),
		observability.NewNoop(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := srv.ListenAndServe(ctx, ":0")
	if err != nil && err != http.ErrServerClosed {
		t.Errorf("unexpected error: %v", err)
	}
}
