package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/and161185/ventas/internal/model"
	"github.com/and161185/ventas/internal/utils"
	"github.com/shopspring/decimal"
)

// saleDTO carries saleDate as sent; the sales service omits the zone.
type saleDTO struct {
	ID            int             `json:"id"`
	OrderID       int             `json:"orderId"`
	PaymentMethod string          `json:"paymentMethod"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	SaleDate      *string         `json:"saleDate"`
}

func (c *Client) toSale(dto saleDTO) model.Sale {
	sale := model.Sale{
		ID:            dto.ID,
		OrderID:       dto.OrderID,
		PaymentMethod: dto.PaymentMethod,
		TotalAmount:   dto.TotalAmount,
	}
	if dto.SaleDate != nil && *dto.SaleDate != "" {
		t, err := utils.ParseTimestamp(*dto.SaleDate, c.location)
		if err != nil {
			c.logger.Debugf("sale %d: %v", dto.ID, err)
		} else {
			sale.SaleDate = &t
		}
	}
	return sale
}

func (c *Client) sales(ctx context.Context, cl call) ([]model.Sale, error) {
	dtos, err := list[saleDTO](ctx, c, cl)
	if err != nil {
		return nil, err
	}
	sales := make([]model.Sale, 0, len(dtos))
	for _, dto := range dtos {
		sales = append(sales, c.toSale(dto))
	}
	return sales, nil
}

func (c *Client) ListSales(ctx context.Context) ([]model.Sale, error) {
	return c.sales(ctx, get("/sales"))
}

func (c *Client) ListMySales(ctx context.Context) ([]model.Sale, error) {
	return c.sales(ctx, get("/sales/mine"))
}

// ProcessSale posts the payment. The card travels as the body only for card
// payments. A nil sale means the service answered without a body.
func (c *Client) ProcessSale(ctx context.Context, req model.SaleRequest) (*model.Sale, error) {
	cl := call{
		method: http.MethodPost,
		path:   "/sales/process",
		query: url.Values{
			"orderId": {strconv.Itoa(req.OrderID)},
			"method":  {string(req.PaymentMethod)},
		},
		clientID: req.ClientID,
	}
	if req.PaymentMethod == model.Card && req.Card != nil {
		cl.body = req.Card
	}

	data, err := c.do(ctx, cl)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var dto saleDTO
	if err := decode(cl, data, &dto); err != nil {
		return nil, err
	}
	sale := c.toSale(dto)
	return &sale, nil
}
