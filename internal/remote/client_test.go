package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/and161185/ventas/internal/errs"
	"github.com/and161185/ventas/internal/model"
	"github.com/and161185/ventas/internal/remote/remotetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type staticCreds struct {
	token    string
	clientID int
}

func (c staticCreds) Credentials() (string, int) {
	return c.token, c.clientID
}

func newClient(t *testing.T, baseURL string, creds CredentialsSource) *Client {
	t.Helper()
	return NewClient(baseURL, 5*time.Second, time.UTC, creds, zaptest.NewLogger(t).Sugar())
}

func adminCreds() staticCreds {
	return staticCreds{token: remotetest.Token("root", "ADMIN", 1, 0)}
}

func TestLogin(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()
	fake.AddUser("ana", "secret", "CLIENTE", 3, 42)

	client := newClient(t, fake.URL, nil)

	token, err := client.Login(context.Background(), model.Credentials{UserName: "ana", Password: "secret"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = client.Login(context.Background(), model.Credentials{UserName: "ana", Password: "wrong"})
	var apiErr *errs.RemoteAPIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "invalid credentials", apiErr.Message)
}

func TestHeaders(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()
	fake.AddOrder(model.Order{ID: 7, ClientID: 42})

	token := remotetest.Token("ana", "CLIENTE", 3, 42)
	client := newClient(t, fake.URL, staticCreds{token: token, clientID: 42})

	order, err := client.GetOrder(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 42, order.ClientID)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "Bearer "+token, calls[0].Auth)
	require.Equal(t, "42", calls[0].ClientID)
}

func TestProcessSaleCash(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()
	fake.Now = func() time.Time { return time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC) }
	fake.AddProduct(model.Product{ID: 1, Name: "Pan", Price: decimal.RequireFromString("2.50")})
	fake.AddOrder(model.Order{ID: 7, ClientID: 42, Details: []model.OrderDetail{{ProductID: 1, Amount: 4}}})

	client := newClient(t, fake.URL, adminCreds())

	sale, err := client.ProcessSale(context.Background(), model.SaleRequest{OrderID: 7, PaymentMethod: model.Cash, ClientID: 42})
	require.NoError(t, err)
	require.NotNil(t, sale)
	require.Equal(t, 7, sale.OrderID)
	require.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, sale.SaleDate)
	require.True(t, sale.SaleDate.Equal(time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC)))

	calls := fake.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "/sales/process", calls[0].Path)
	require.Equal(t, "method=CASH&orderId=7", calls[0].Query)
	require.Equal(t, "42", calls[0].ClientID)
	require.Empty(t, calls[0].Body)

	order, _ := fake.Order(7)
	require.Equal(t, model.Paid, order.Status)
}

func TestProcessSaleCardSendsBody(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()
	fake.AddOrder(model.Order{ID: 7, ClientID: 42})

	client := newClient(t, fake.URL, adminCreds())
	card := &model.CardPaymentDetails{Number: "4111111111111111", CVV: "123", Expiry: "12/29"}

	_, err := client.ProcessSale(context.Background(), model.SaleRequest{OrderID: 7, PaymentMethod: model.Card, ClientID: 42, Card: card})
	require.NoError(t, err)

	calls := fake.Calls()
	require.JSONEq(t, `{"number":"4111111111111111","cvv":"123","expiry":"12/29"}`, calls[0].Body)
}

func TestProcessSaleEmptyBody(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()
	fake.EmptySaleBody = true
	fake.AddOrder(model.Order{ID: 7, ClientID: 42})

	client := newClient(t, fake.URL, adminCreds())

	sale, err := client.ProcessSale(context.Background(), model.SaleRequest{OrderID: 7, PaymentMethod: model.Transfer, ClientID: 42})
	require.NoError(t, err)
	require.Nil(t, sale)
}

func TestProcessSaleEmptyObject(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(" {} \n"))
	}))
	defer ts.Close()

	client := newClient(t, ts.URL, nil)

	sale, err := client.ProcessSale(context.Background(), model.SaleRequest{OrderID: 7, PaymentMethod: model.Cash, ClientID: 1})
	require.NoError(t, err)
	require.Nil(t, sale)
}

func TestListSalesNoContent(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()

	client := newClient(t, fake.URL, adminCreds())

	sales, err := client.ListSales(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sales)
	require.Empty(t, sales)
}

func TestListMySalesParsesDates(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()
	fake.AddSale(remotetest.SaleRecord{ID: 1, OrderID: 7, ClientID: 42, SaleDate: "2024-01-10T23:00:00"})
	fake.AddSale(remotetest.SaleRecord{ID: 2, OrderID: 8, ClientID: 42, SaleDate: "garbage"})
	fake.AddSale(remotetest.SaleRecord{ID: 3, OrderID: 9, ClientID: 5})

	token := remotetest.Token("ana", "CLIENTE", 3, 42)
	client := newClient(t, fake.URL, staticCreds{token: token, clientID: 42})

	sales, err := client.ListMySales(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 2)
	require.Equal(t, time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC), *sales[0].SaleDate)
	require.Nil(t, sales[1].SaleDate)
}

func TestNotFound(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()

	client := newClient(t, fake.URL, adminCreds())

	_, err := client.GetOrder(context.Background(), 99)
	require.ErrorIs(t, err, errs.ErrRemoteAPI)

	var apiErr *errs.RemoteAPIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "/orders/99", apiErr.Path)
}

func TestTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	client := newClient(t, url, nil)

	_, err := client.ListProducts(context.Background())
	var apiErr *errs.RemoteAPIError
	require.True(t, errors.As(err, &apiErr))
	require.Zero(t, apiErr.StatusCode)
	require.Error(t, apiErr.Err)
}

func TestMalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway</html>"))
	}))
	defer ts.Close()

	client := newClient(t, ts.URL, nil)

	_, err := client.ListCategories(context.Background())
	require.ErrorIs(t, err, errs.ErrRemoteAPI)
	require.True(t, strings.Contains(err.Error(), "malformed response"))
}

func TestCreateAndDeleteOrder(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()

	client := newClient(t, fake.URL, adminCreds())

	order, err := client.CreateOrder(context.Background(), model.OrderRequest{ClientID: 42, Details: []model.OrderDetail{{ProductID: 1, Amount: 2}}})
	require.NoError(t, err)
	require.Positive(t, order.ID)
	require.Equal(t, model.Pending, order.Status)

	require.NoError(t, client.DeleteOrder(context.Background(), order.ID))
	_, ok := fake.Order(order.ID)
	require.False(t, ok)
}

func TestUpdateOrder(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()
	fake.AddOrder(model.Order{ID: 7, ClientID: 42, Details: []model.OrderDetail{{ProductID: 1, Amount: 1}}})

	client := newClient(t, fake.URL, adminCreds())

	details := []model.OrderDetail{{ProductID: 2, Amount: 5}}
	order, err := client.UpdateOrder(context.Background(), 7, model.OrderRequest{ClientID: 42, Details: details})
	require.NoError(t, err)
	require.Equal(t, 7, order.ID)
	require.Equal(t, details, order.Details)

	stored, _ := fake.Order(7)
	require.Equal(t, details, stored.Details)

	calls := fake.Calls()
	last := calls[len(calls)-1]
	require.Equal(t, http.MethodPut, last.Method)
	require.Equal(t, "42", last.ClientID)

	_, err = client.UpdateOrder(context.Background(), 99, model.OrderRequest{ClientID: 42, Details: details})
	require.ErrorIs(t, err, errs.ErrRemoteAPI)
}

func TestClientCRUD(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()

	client := newClient(t, fake.URL, adminCreds())
	ctx := context.Background()

	created, err := client.CreateClient(ctx, model.Client{ID: 500, Name: "Ana", Document: "123", Email: "ana@example.com"})
	require.NoError(t, err)
	require.Positive(t, created.ID)
	require.NotEqual(t, 500, created.ID)

	created.Phone = "555-0101"
	updated, err := client.UpdateClient(ctx, created.ID, created)
	require.NoError(t, err)
	require.Equal(t, "555-0101", updated.Phone)

	got, err := client.GetClient(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, updated, got)

	require.NoError(t, client.DeleteClient(ctx, created.ID))
	require.Empty(t, fake.Clients())

	err = client.DeleteClient(ctx, created.ID)
	var apiErr *errs.RemoteAPIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestDeleteProductAndCategory(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()
	fake.AddProduct(model.Product{ID: 1, Name: "Pan"})
	fake.AddCategory(model.Category{ID: 3, Name: "Panaderia"})

	client := newClient(t, fake.URL, adminCreds())
	ctx := context.Background()

	require.NoError(t, client.DeleteProduct(ctx, 1))
	require.NoError(t, client.DeleteCategory(ctx, 3))

	products, err := client.ListProducts(ctx)
	require.NoError(t, err)
	require.Empty(t, products)

	require.ErrorIs(t, client.DeleteCategory(ctx, 3), errs.ErrRemoteAPI)
}

func TestRegister(t *testing.T) {
	fake := remotetest.NewServer()
	defer fake.Close()

	client := newClient(t, fake.URL, nil)
	ctx := context.Background()

	reg := model.Registration{UserName: "ana@example.com", Password: "secret", Role: "CLIENTE", Name: "Ana", Document: "123"}
	require.NoError(t, client.Register(ctx, reg))

	token, err := client.Login(ctx, model.Credentials{UserName: reg.UserName, Password: reg.Password})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	clients := fake.Clients()
	require.Len(t, clients, 1)
	require.Equal(t, "ana@example.com", clients[0].Email)

	err = client.Register(ctx, reg)
	var apiErr *errs.RemoteAPIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestIsEmptyBody(t *testing.T) {
	tests := []struct {
		body  string
		empty bool
	}{
		{"", true},
		{"  \n", true},
		{"null", true},
		{"{}", true},
		{`{ }`, true},
		{`{"id":1}`, false},
		{"[]", false},
	}

	for _, tt := range tests {
		if got := isEmptyBody([]byte(tt.body)); got != tt.empty {
			t.Errorf("isEmptyBody(%q) = %v; want %v", tt.body, got, tt.empty)
		}
	}
}
