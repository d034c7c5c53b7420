package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/and161185/ventas/internal/errs"
	"github.com/and161185/ventas/internal/listing"
	"github.com/and161185/ventas/internal/model"
	"github.com/and161185/ventas/internal/sale"
)

func (srv *Server) GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := snapshot(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	var orders []model.Order
	switch {
	case snap.IsAdmin():
		orders, err = srv.api.ListOrders(r.Context())
	case snap.ClientID > 0:
		orders, err = srv.api.ListMyOrders(r.Context())
	default:
		err = errs.ErrUnresolvedClient
	}
	if err != nil {
		srv.writeError(w, err)
		return
	}

	orders = listing.SortOrders(orders)
	srv.attachClients(r.Context(), orders)
	srv.writeJSON(w, http.StatusOK, orders)
}

// attachClients fills in the client of orders that came without one. Each
// client is fetched once; failed lookups leave the order as it is.
func (srv *Server) attachClients(ctx context.Context, orders []model.Order) {
	clients := map[int]*model.Client{}

	for i := range orders {
		o := &orders[i]
		if (o.Client != nil && o.Client.Name != "") || o.ClientID <= 0 {
			continue
		}

		client, seen := clients[o.ClientID]
		if !seen {
			c, err := srv.api.GetClient(ctx, o.ClientID)
			if err != nil {
				srv.deps.Logger.Warnf("client %d for order %d: %v", o.ClientID, o.ID, err)
			} else {
				client = &c
			}
			clients[o.ClientID] = client
		}
		if client != nil {
			o.Client = client
		}
	}
}

// CreateOrderHandler places an order for the selected customer (admins) or
// for the logged-in client.
func (srv *Server) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := snapshot(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if len(req.Details) == 0 {
		srv.writeError(w, errs.ErrEmptyOrder)
		return
	}

	req.ClientID = snap.ClientID
	if snap.IsAdmin() {
		req.ClientID = snap.SelectedClientID
	}
	if req.ClientID <= 0 {
		srv.writeError(w, errs.ErrUnresolvedClient)
		return
	}

	order, err := srv.api.CreateOrder(r.Context(), req)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusCreated, order)
}

// UpdateOrderHandler replaces the details of an order. The owner comes from
// the session, then the selected customer, then the order itself.
func (srv *Server) UpdateOrderHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := snapshot(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if len(req.Details) == 0 {
		srv.writeError(w, errs.ErrEmptyOrder)
		return
	}

	req.ClientID, err = sale.ResolveClientID(r.Context(),
		sale.FromSession(snap),
		sale.FromSelection(snap),
		sale.FromOrder(srv.api, id),
	)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	order, err := srv.api.UpdateOrder(r.Context(), id, req)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusOK, order)
}

func (srv *Server) DeleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	if err := srv.api.DeleteOrder(r.Context(), id); err != nil {
		srv.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
