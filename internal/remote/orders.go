package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/and161185/ventas/internal/model"
)

func orderPath(id int) string {
	return fmt.Sprintf("/orders/%d", id)
}

func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	return list[model.Order](ctx, c, get("/orders"))
}

func (c *Client) ListMyOrders(ctx context.Context) ([]model.Order, error) {
	return list[model.Order](ctx, c, get("/orders/mine"))
}

func (c *Client) GetOrder(ctx context.Context, id int) (model.Order, error) {
	return one(ctx, c, get(orderPath(id)), model.Order{})
}

func (c *Client) CreateOrder(ctx context.Context, req model.OrderRequest) (model.Order, error) {
	cl := call{method: http.MethodPost, path: "/orders", body: req, clientID: req.ClientID}
	return one(ctx, c, cl, model.Order{ClientID: req.ClientID, Details: req.Details})
}

// UpdateOrder replaces the details of an order. The owner goes in the
// client-id header as on creation.
func (c *Client) UpdateOrder(ctx context.Context, id int, req model.OrderRequest) (model.Order, error) {
	cl := call{method: http.MethodPut, path: orderPath(id), body: req, clientID: req.ClientID}
	return one(ctx, c, cl, model.Order{ID: id, ClientID: req.ClientID, Details: req.Details})
}

func (c *Client) DeleteOrder(ctx context.Context, id int) error {
	_, err := c.do(ctx, call{method: http.MethodDelete, path: orderPath(id)})
	return err
}
