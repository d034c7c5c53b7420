package session

import (
	"sync"

	"github.com/and161185/ventas/internal/auth"
	"github.com/and161185/ventas/internal/model"
)

// Snapshot is a point-in-time read of the session and the admin's selected
// client. Zero ids mean absent.
type Snapshot struct {
	Token            string
	UserName         string
	Role             model.Role
	ClientID         int
	SelectedClientID int
}

func (s Snapshot) LoggedIn() bool {
	return s.Token != ""
}

func (s Snapshot) IsAdmin() bool {
	return s.Role == model.RoleAdmin
}

// Store holds the state of one console operator between requests.
type Store struct {
	mu       sync.RWMutex
	token    string
	identity auth.Identity
	selected int
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Login(token string, identity auth.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.identity = identity
}

func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.identity = auth.Identity{}
	s.selected = 0
}

func (s *Store) SelectClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if clientID < 0 {
		clientID = 0
	}
	s.selected = clientID
}

func (s *Store) ClearSelection() {
	s.SelectClient(0)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Token:            s.token,
		UserName:         s.identity.UserName,
		Role:             s.identity.Role,
		ClientID:         s.identity.ClientID,
		SelectedClientID: s.selected,
	}
}

// Credentials feeds the remote client's default headers.
func (s *Store) Credentials() (string, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token, s.identity.ClientID
}
