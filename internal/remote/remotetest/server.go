// Package remotetest runs an in-memory stand-in for the sales gateway.
package remotetest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/and161185/ventas/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const Secret = "remotetest-secret"

type user struct {
	id       int
	hash     []byte
	role     string
	clientID int
}

// SaleRecord is a sale as the sales service stores and serves it.
type SaleRecord struct {
	ID            int             `json:"id"`
	OrderID       int             `json:"orderId"`
	ClientID      int             `json:"clientId"`
	PaymentMethod string          `json:"paymentMethod"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	SaleDate      string          `json:"saleDate,omitempty"`
}

// Call is one request the fake received.
type Call struct {
	Method   string
	Path     string
	Query    string
	ClientID string
	Auth     string
	Body     string
}

type Server struct {
	*httptest.Server

	mu         sync.Mutex
	users      map[string]user
	orders     map[int]model.Order
	sales      []SaleRecord
	clients    []model.Client
	products   []model.Product
	categories []model.Category
	calls      []Call
	nextID     int

	// EmptySaleBody makes /sales/process answer 200 without a body.
	EmptySaleBody bool
	// Now stamps processed sales.
	Now func() time.Time
}

func NewServer() *Server {
	s := &Server{
		users:  map[string]user{},
		orders: map[int]model.Order{},
		nextID: 100,
		Now:    time.Now,
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Post("/auth/login", s.login)
	r.Post("/auth/create", s.register)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/orders", s.listOrders)
		r.Get("/orders/mine", s.listMyOrders)
		r.Get("/orders/{id}", s.getOrder)
		r.Post("/orders", s.createOrder)
		r.Put("/orders/{id}", s.updateOrder)
		r.Delete("/orders/{id}", s.deleteOrder)

		r.Post("/sales/process", s.processSale)
		r.Get("/sales", s.listSales)
		r.Get("/sales/mine", s.listMySales)

		r.Get("/clients", s.listClients)
		r.Get("/clients/{id}", s.getClient)
		r.Post("/clients", s.createClient)
		r.Put("/clients/{id}", s.updateClient)
		r.Delete("/clients/{id}", s.deleteClient)
		r.Get("/products", s.listProducts)
		r.Delete("/products/{id}", s.deleteProduct)
		r.Get("/categories", s.listCategories)
		r.Delete("/categories/{id}", s.deleteCategory)
	})

	return r
}

func (s *Server) AddUser(login, password, role string, id, clientID int) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[login] = user{id: id, hash: hash, role: role, clientID: clientID}
}

// Token signs a token the way the auth service does.
func Token(login, role string, id, clientID int) string {
	claims := jwt.MapClaims{
		"sub":  login,
		"role": role,
		"id":   id,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	if clientID > 0 {
		claims["clientId"] = clientID
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) AddOrder(o model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.Status == "" {
		o.Status = model.Pending
	}
	s.orders[o.ID] = o
}

func (s *Server) Order(id int) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	return o, ok
}

func (s *Server) AddSale(rec SaleRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append(s.sales, rec)
}

func (s *Server) AddClient(c model.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append(s.clients, c)
}

func (s *Server) AddProduct(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

// Clients returns the stored clients.
func (s *Server) Clients() []model.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Client(nil), s.clients...)
}

func (s *Server) AddCategory(c model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount counts requests to an exact method and path.
func (s *Server) CallCount(method, path string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method:   r.Method,
			Path:     r.URL.Path,
			Query:    r.URL.RawQuery,
			ClientID: r.Header.Get("x-client-id"),
			Auth:     r.Header.Get("Authorization"),
			Body:     string(body),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeError(w, http.StatusBadRequest, "missing bearer token")
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(Secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	s.mu.Lock()
	u, ok := s.users[creds.UserName]
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(u.hash, []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, model.TokenResponse{Token: Token(creds.UserName, u.role, u.id, u.clientID)})
}

// register mirrors the auth service: the user gets a fresh client whose email
// is the user name.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var reg model.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil || reg.UserName == "" || reg.Password == "" {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	role := strings.ToUpper(reg.Role)
	if role != "ADMIN" && role != "CLIENTE" {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	s.mu.Lock()
	_, exists := s.users[reg.UserName]
	s.mu.Unlock()
	if exists {
		writeError(w, http.StatusConflict, "user already exists")
		return
	}

	s.mu.Lock()
	s.nextID++
	client := model.Client{ID: s.nextID, Name: reg.Name, Document: reg.Document, Email: reg.UserName, Phone: reg.Phone}
	s.clients = append(s.clients, client)
	s.nextID++
	userID := s.nextID
	s.mu.Unlock()

	s.AddUser(reg.UserName, reg.Password, role, userID, client.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"id": userID, "userName": reg.UserName, "clientId": client.ID})
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	s.writeOrders(w, func(model.Order) bool { return true })
}

func (s *Server) listMyOrders(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientHeader(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "x-client-id required")
		return
	}
	s.writeOrders(w, func(o model.Order) bool { return o.ClientID == clientID })
}

func (s *Server) writeOrders(w http.ResponseWriter, keep func(model.Order) bool) {
	s.mu.Lock()
	var out []model.Order
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	order, ok := s.Order(id)
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientID <= 0 || len(req.Details) == 0 {
		writeError(w, http.StatusBadRequest, "invalid order")
		return
	}

	s.mu.Lock()
	s.nextID++
	order := model.Order{ID: s.nextID, ClientID: req.ClientID, Status: model.Pending, Details: req.Details}
	s.orders[order.ID] = order
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientID <= 0 || len(req.Details) == 0 {
		writeError(w, http.StatusBadRequest, "invalid order")
		return
	}

	s.mu.Lock()
	order, ok := s.orders[id]
	if ok {
		order.ClientID = req.ClientID
		order.Details = req.Details
		s.orders[id] = order
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	s.mu.Lock()
	_, ok := s.orders[id]
	delete(s.orders, id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) processSale(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientHeader(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "x-client-id required")
		return
	}

	orderID, err := strconv.Atoi(r.URL.Query().Get("orderId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid orderId")
		return
	}
	method := r.URL.Query().Get("method")

	if method == string(model.Card) {
		var card model.CardPaymentDetails
		if err := json.NewDecoder(r.Body).Decode(&card); err != nil || card.Number == "" || card.CVV == "" || card.Expiry == "" {
			writeError(w, http.StatusBadRequest, "card data required")
			return
		}
	}

	s.mu.Lock()
	order, ok := s.orders[orderID]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	total := decimal.Zero
	for _, d := range order.Details {
		for _, p := range s.products {
			if p.ID == d.ProductID {
				total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(d.Amount))))
			}
		}
	}

	s.nextID++
	rec := SaleRecord{
		ID:            s.nextID,
		OrderID:       orderID,
		ClientID:      clientID,
		PaymentMethod: method,
		TotalAmount:   total,
		SaleDate:      s.Now().Format("2006-01-02T15:04:05"),
	}
	s.sales = append(s.sales, rec)
	order.Status = model.Paid
	s.orders[orderID] = order
	empty := s.EmptySaleBody
	s.mu.Unlock()

	if empty {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) listSales(w http.ResponseWriter, r *http.Request) {
	s.writeSales(w, func(SaleRecord) bool { return true })
}

func (s *Server) listMySales(w http.ResponseWriter, r *http.Request) {
	clientID, ok := clientHeader(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "x-client-id required")
		return
	}
	s.writeSales(w, func(rec SaleRecord) bool { return rec.ClientID == clientID })
}

func (s *Server) writeSales(w http.ResponseWriter, keep func(SaleRecord) bool) {
	s.mu.Lock()
	var out []SaleRecord
	for _, rec := range s.sales {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	s.mu.Unlock()

	if len(out) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]model.Client{}, s.clients...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "client not found")
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var c model.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil || c.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid client")
		return
	}

	s.mu.Lock()
	s.nextID++
	c.ID = s.nextID
	s.clients = append(s.clients, c)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var c model.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid client")
		return
	}
	c.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID == id {
			s.clients[i] = c
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "client not found")
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.clients {
		if c.ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "client not found")
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "product not found")
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "category not found")
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]model.Product{}, s.products...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]model.Category{}, s.categories...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func clientHeader(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.Header.Get("x-client-id"))
	return id, err == nil && id > 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Println("remotetest: encode:", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
