package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/and161185/ventas/internal/config"
	"github.com/and161185/ventas/internal/deps"
	"github.com/and161185/ventas/internal/errs"
	"github.com/and161185/ventas/internal/middleware"
	"github.com/and161185/ventas/internal/model"
	"github.com/and161185/ventas/internal/sale"
	"github.com/and161185/ventas/internal/session"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -destination=../mocks/mock_remote.go -package=mocks -mock_names=RemoteAPI=MockRemoteAPI github.com/and161185/ventas/internal/server RemoteAPI

type RemoteAPI interface {
	Login(ctx context.Context, creds model.Credentials) (string, error)
	Register(ctx context.Context, reg model.Registration) error

	ListOrders(ctx context.Context) ([]model.Order, error)
	ListMyOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id int) (model.Order, error)
	CreateOrder(ctx context.Context, req model.OrderRequest) (model.Order, error)
	UpdateOrder(ctx context.Context, id int, req model.OrderRequest) (model.Order, error)
	DeleteOrder(ctx context.Context, id int) error

	ProcessSale(ctx context.Context, req model.SaleRequest) (*model.Sale, error)
	ListSales(ctx context.Context) ([]model.Sale, error)
	ListMySales(ctx context.Context) ([]model.Sale, error)

	ListClients(ctx context.Context) ([]model.Client, error)
	GetClient(ctx context.Context, id int) (model.Client, error)
	CreateClient(ctx context.Context, client model.Client) (model.Client, error)
	UpdateClient(ctx context.Context, id int, client model.Client) (model.Client, error)
	DeleteClient(ctx context.Context, id int) error

	ListProducts(ctx context.Context) ([]model.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

type Server struct {
	api      RemoteAPI
	sessions *session.Store
	resolver *sale.Resolver
	config   *config.Config
	deps     *deps.Deps
	now      func() time.Time
}

func NewServer(api RemoteAPI, sessions *session.Store, config *config.Config, deps *deps.Deps) *Server {
	return &Server{
		api:      api,
		sessions: sessions,
		resolver: sale.NewResolver(api, deps.Logger),
		config:   config,
		deps:     deps,
		now:      time.Now,
	}
}

func (srv *Server) buildRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.DecompressMiddleware)
	router.Use(middleware.LogMiddleware(srv.deps.Logger))
	router.Use(middleware.CompressMiddleware(srv.deps.Logger))

	router.Post("/api/session/login", srv.LoginHandler)
	router.Post("/api/session/register", srv.RegisterHandler)
	router.Post("/api/session/logout", srv.LogoutHandler)
	router.Get("/api/session", srv.SessionHandler)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(srv.sessions))

		r.Get("/api/orders", srv.GetOrdersHandler)
		r.Post("/api/orders", srv.CreateOrderHandler)
		r.Put("/api/orders/{id}", srv.UpdateOrderHandler)
		r.Delete("/api/orders/{id}", srv.DeleteOrderHandler)
		r.Post("/api/orders/{id}/sale", srv.ProcessSaleHandler)

		r.Get("/api/sales", srv.GetSalesHandler)

		r.Get("/api/products", srv.GetProductsHandler)
		r.Get("/api/categories", srv.GetCategoriesHandler)

		// admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Put("/api/session/selected-client", srv.SelectClientHandler)
			r.Delete("/api/session/selected-client", srv.ClearSelectedClientHandler)
			r.Get("/api/clients", srv.GetClientsHandler)
			r.Post("/api/clients", srv.CreateClientHandler)
			r.Get("/api/clients/{id}", srv.GetClientHandler)
			r.Put("/api/clients/{id}", srv.UpdateClientHandler)
			r.Delete("/api/clients/{id}", srv.DeleteClientHandler)

			r.Delete("/api/products/{id}", srv.DeleteProductHandler)
			r.Delete("/api/categories/{id}", srv.DeleteCategoryHandler)
		})
	})

	return router
}

func (srv *Server) Run(ctx context.Context) error {
	router := srv.buildRouter()

	server := &http.Server{
		Addr:    srv.config.RunAddress,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.deps.Logger.Fatalf("server error: %v", err)
		}
	}()

	srv.deps.Logger.Infof("console listening on %s, remote api %s", srv.config.RunAddress, srv.config.APIBaseURL)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (srv *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		srv.deps.Logger.Errorf("encode response: %v", err)
	}
}

func (srv *Server) writeError(w http.ResponseWriter, err error) {
	var apiErr *errs.RemoteAPIError

	switch {
	case errors.Is(err, errs.ErrNotLoggedIn), errors.Is(err, errs.ErrInvalidToken):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, errs.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, errs.ErrUnresolvedClient):
		http.Error(w, "no client for this operation, select a customer", http.StatusUnprocessableEntity)
	case errors.Is(err, errs.ErrInvalidCardData),
		errors.Is(err, errs.ErrUnknownPaymentMethod),
		errors.Is(err, errs.ErrInvalidDate),
		errors.Is(err, errs.ErrEmptyOrder),
		errors.Is(err, errs.ErrInvalidClient),
		errors.Is(err, errs.ErrInvalidRegistration):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &apiErr):
		status := http.StatusBadGateway
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			status = apiErr.StatusCode
		}
		srv.deps.Logger.Warnf("remote api: %v", apiErr)
		http.Error(w, apiErr.Error(), status)
	default:
		srv.deps.Logger.Errorf("internal error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func snapshot(r *http.Request) (session.Snapshot, error) {
	snap, ok := middleware.SnapshotFrom(r.Context())
	if !ok || !snap.LoggedIn() {
		return session.Snapshot{}, errs.ErrNotLoggedIn
	}
	return snap, nil
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func idParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}

func (srv *Server) location() *time.Location {
	if srv.config.Location == nil {
		return time.Local
	}
	return srv.config.Location
}
