package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/and161185/ventas/internal/errs"
	"github.com/and161185/ventas/internal/listing"
	"github.com/and161185/ventas/internal/model"
)

func (srv *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := srv.api.ListProducts(r.Context())
	if err != nil {
		srv.writeError(w, err)
		return
	}

	found := listing.SearchProducts(products, r.URL.Query().Get("q"))
	srv.writeJSON(w, http.StatusOK, listing.Paginate(found, pageParam(r), listing.PerPage))
}

func (srv *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	srv.deleteByID(w, r, "product", srv.api.DeleteProduct)
}

func (srv *Server) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := srv.api.ListCategories(r.Context())
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusOK, categories)
}

func (srv *Server) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	srv.deleteByID(w, r, "category", srv.api.DeleteCategory)
}

func (srv *Server) GetClientsHandler(w http.ResponseWriter, r *http.Request) {
	clients, err := srv.api.ListClients(r.Context())
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusOK, listing.Paginate(clients, pageParam(r), listing.PerPage))
}

func (srv *Server) GetClientHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}

	client, err := srv.api.GetClient(r.Context(), id)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusOK, client)
}

func (srv *Server) CreateClientHandler(w http.ResponseWriter, r *http.Request) {
	client, ok := srv.decodeClient(w, r)
	if !ok {
		return
	}

	created, err := srv.api.CreateClient(r.Context(), client)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusCreated, created)
}

func (srv *Server) UpdateClientHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}

	client, ok := srv.decodeClient(w, r)
	if !ok {
		return
	}

	updated, err := srv.api.UpdateClient(r.Context(), id, client)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusOK, updated)
}

// DeleteClientHandler removes a client and drops it from the selection when
// it was the selected one.
func (srv *Server) DeleteClientHandler(w http.ResponseWriter, r *http.Request) {
	srv.deleteByID(w, r, "client", func(ctx context.Context, id int) error {
		if err := srv.api.DeleteClient(ctx, id); err != nil {
			return err
		}
		if srv.sessions.Snapshot().SelectedClientID == id {
			srv.sessions.ClearSelection()
		}
		return nil
	})
}

func (srv *Server) decodeClient(w http.ResponseWriter, r *http.Request) (model.Client, bool) {
	var client model.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return model.Client{}, false
	}
	if !client.Valid() {
		srv.writeError(w, errs.ErrInvalidClient)
		return model.Client{}, false
	}
	return client, true
}

func (srv *Server) deleteByID(w http.ResponseWriter, r *http.Request, kind string, del func(ctx context.Context, id int) error) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid "+kind+" id", http.StatusBadRequest)
		return
	}

	if err := del(r.Context(), id); err != nil {
		srv.writeError(w, err)
		return
	}

	srv.deps.Logger.Infof("deleted %s %d", kind, id)
	w.WriteHeader(http.StatusNoContent)
}
