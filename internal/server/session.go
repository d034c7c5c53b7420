package server

import (
	"encoding/json"
	"net/http"

	"github.com/and161185/ventas/internal/errs"
	"github.com/and161185/ventas/internal/model"
	"github.com/and161185/ventas/internal/session"
)

type sessionView struct {
	UserName         string     `json:"userName"`
	Role             model.Role `json:"role"`
	ClientID         int        `json:"clientId,omitempty"`
	SelectedClientID int        `json:"selectedClientId,omitempty"`
}

func viewOf(snap session.Snapshot) sessionView {
	return sessionView{
		UserName:         snap.UserName,
		Role:             snap.Role,
		ClientID:         snap.ClientID,
		SelectedClientID: snap.SelectedClientID,
	}
}

func (srv *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials

	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if creds.UserName == "" || creds.Password == "" {
		http.Error(w, "userName and password required", http.StatusBadRequest)
		return
	}

	token, err := srv.api.Login(r.Context(), creds)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	identity, err := srv.deps.TokenDecoder.Decode(token)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.sessions.Logout()
	srv.sessions.Login(token, identity)
	srv.deps.Logger.Infof("logged in: user=%s role=%s client=%d", identity.UserName, identity.Role, identity.ClientID)

	srv.writeJSON(w, http.StatusOK, viewOf(srv.sessions.Snapshot()))
}

// RegisterHandler creates a login. The current session is left alone.
func (srv *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var reg model.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !reg.Valid() {
		srv.writeError(w, errs.ErrInvalidRegistration)
		return
	}
	reg.Role = model.ParseRole(reg.Role).Remote()

	if err := srv.api.Register(r.Context(), reg); err != nil {
		srv.writeError(w, err)
		return
	}

	srv.deps.Logger.Infof("registered: user=%s role=%s", reg.UserName, reg.Role)
	w.WriteHeader(http.StatusCreated)
}

func (srv *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	srv.sessions.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Server) SessionHandler(w http.ResponseWriter, r *http.Request) {
	snap := srv.sessions.Snapshot()
	if !snap.LoggedIn() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	srv.writeJSON(w, http.StatusOK, viewOf(snap))
}

// SelectClientHandler sets the customer an admin acts for. A non-positive id
// clears it.
func (srv *Server) SelectClientHandler(w http.ResponseWriter, r *http.Request) {
	var req model.SelectClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	srv.sessions.SelectClient(req.ClientID)
	srv.writeJSON(w, http.StatusOK, viewOf(srv.sessions.Snapshot()))
}

func (srv *Server) ClearSelectedClientHandler(w http.ResponseWriter, r *http.Request) {
	srv.sessions.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}
