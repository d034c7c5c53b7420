package server

import (
	"encoding/json"
	"net/http"

	"github.com/and161185/ventas/internal/errs"
	"github.com/and161185/ventas/internal/listing"
	"github.com/and161185/ventas/internal/model"
)

func (srv *Server) ProcessSaleHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := snapshot(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	orderID, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req model.ProcessSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	method, err := model.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	sale, err := srv.resolver.ResolveAndSubmit(r.Context(), snap, orderID, method, req.Card)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusOK, sale)
}

// GetSalesHandler lists all sales for admins and the client's own purchases
// otherwise, filtered by from/to or a preset.
func (srv *Server) GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := snapshot(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	from, to, err := srv.dateRange(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	var sales []model.Sale
	switch {
	case snap.IsAdmin():
		sales, err = srv.api.ListSales(r.Context())
	case snap.ClientID > 0:
		sales, err = srv.api.ListMySales(r.Context())
	default:
		err = errs.ErrUnresolvedClient
	}
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusOK, listing.FilterAndSortSales(sales, from, to))
}

func (srv *Server) dateRange(r *http.Request) (*listing.DateBound, *listing.DateBound, error) {
	q := r.URL.Query()

	if q.Get("from") == "" && q.Get("to") == "" {
		return listing.Preset(q.Get("preset"), srv.now().In(srv.location()))
	}

	from, err := listing.ParseBound(q.Get("from"), srv.location())
	if err != nil {
		return nil, nil, err
	}
	to, err := listing.ParseBound(q.Get("to"), srv.location())
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
