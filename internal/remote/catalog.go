package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/and161185/ventas/internal/model"
)

func clientPath(id int) string {
	return fmt.Sprintf("/clients/%d", id)
}

func (c *Client) ListClients(ctx context.Context) ([]model.Client, error) {
	return list[model.Client](ctx, c, get("/clients"))
}

func (c *Client) GetClient(ctx context.Context, id int) (model.Client, error) {
	return one(ctx, c, get(clientPath(id)), model.Client{ID: id})
}

func (c *Client) CreateClient(ctx context.Context, client model.Client) (model.Client, error) {
	client.ID = 0
	return one(ctx, c, call{method: http.MethodPost, path: "/clients", body: client}, client)
}

func (c *Client) UpdateClient(ctx context.Context, id int, client model.Client) (model.Client, error) {
	client.ID = id
	return one(ctx, c, call{method: http.MethodPut, path: clientPath(id), body: client}, client)
}

func (c *Client) DeleteClient(ctx context.Context, id int) error {
	_, err := c.do(ctx, call{method: http.MethodDelete, path: clientPath(id)})
	return err
}

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	return list[model.Product](ctx, c, get("/products"))
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	_, err := c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/products/%d", id)})
	return err
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	return list[model.Category](ctx, c, get("/categories"))
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	_, err := c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/categories/%d", id)})
	return err
}
