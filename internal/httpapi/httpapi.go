package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mvargas/cafe-orders/internal/domain"
	"github.com/mvargas/cafe-orders/internal/observability"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

// OrderService is the slice of the processor the order endpoints use.
// Reads that need no cross-entity validation go straight to the stores.
type OrderService interface {
	CreateOrder(ctx context.Context, req *domain.Order) (*domain.Order, error)
	OrdersByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type Server struct {
	cafes     domain.CafeRepository
	customers domain.CustomerRepository
	orders    domain.OrderRepository
	service   OrderService
	router    chi.Router
	logger    *zap.Logger
	metrics   observability.Metrics
}

func New(
	cafes domain.CafeRepository,
	customers domain.CustomerRepository,
	orders domain.OrderRepository,
	service OrderService,
	logger *zap.Logger,
	metrics observability.Metrics,
) *Server {
	s := &Server{
		cafes:     cafes,
		customers: customers,
		orders:    orders,
		service:   service,
		logger:    logger,
		metrics:   metrics,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		ServerTiming(s.metrics),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/cafes", func(r chi.Router) {
		r.Get("/", s.listCafes)
		r.Post("/", s.createCafe)
		r.Get("/{id}", s.getCafe)
		r.Put("/{id}", s.updateCafe)
		r.Patch("/{id}", s.patchCafe)
		r.Delete("/{id}", s.deleteCafe)
	})

	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", s.listCustomers)
		r.Post("/", s.createCustomer)
		r.Get("/{id}", s.getCustomer)
		r.Put("/{id}", s.updateCustomer)
		r.Patch("/{id}", s.patchCustomer)
		r.Delete("/{id}", s.deleteCustomer)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", s.listOrders)
		r.Post("/", s.createOrder)
		r.Get("/{id}", s.getOrder)
		r.Delete("/{id}", s.deleteOrder)
		r.Get("/customer/{customerID}", s.ordersByCustomer)
	})

	s.router = r
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

// pageResult is the common shape of every list response.
type pageResult struct {
	Items any `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// pageParams reads page/size query params, 0-based page, size default
// 10. The stores clamp further.
func pageParams(r *http.Request) (page, size int) {
	page, size = 0, 10
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			size = n
		}
	}
	return page, size
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// writeError translates domain error kinds to status codes. Everything
// unrecognized is a 500 and gets logged with its real cause.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNilEntity),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidCustomer),
		errors.Is(err, domain.ErrInvalidItem),
		errors.Is(err, domain.ErrInvalidQuantity):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
