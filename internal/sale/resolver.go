package sale

import (
	"context"

	"github.com/and161185/ventas/internal/errs"
	"github.com/and161185/ventas/internal/model"
	"github.com/and161185/ventas/internal/session"
	"github.com/and161185/ventas/internal/utils"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=../mocks/mock_sale.go -package=mocks -mock_names=API=MockSaleAPI github.com/and161185/ventas/internal/sale API

// API is the part of the remote API a sale needs. ProcessSale returns nil
// when the response had no body.
type API interface {
	GetOrder(ctx context.Context, id int) (model.Order, error)
	ProcessSale(ctx context.Context, req model.SaleRequest) (*model.Sale, error)
}

// ClientSource yields a client id, or 0 when it has none.
type ClientSource func(ctx context.Context) (int, error)

func FromSession(snap session.Snapshot) ClientSource {
	return func(context.Context) (int, error) {
		return snap.ClientID, nil
	}
}

func FromSelection(snap session.Snapshot) ClientSource {
	return func(context.Context) (int, error) {
		return snap.SelectedClientID, nil
	}
}

func FromOrder(api API, orderID int) ClientSource {
	return func(ctx context.Context) (int, error) {
		order, err := api.GetOrder(ctx, orderID)
		if err != nil {
			return 0, err
		}
		return order.ClientID, nil
	}
}

// ResolveClientID tries sources in order and stops at the first positive id.
func ResolveClientID(ctx context.Context, sources ...ClientSource) (int, error) {
	for _, source := range sources {
		id, err := source(ctx)
		if err != nil {
			return 0, err
		}
		if id > 0 {
			return id, nil
		}
	}
	return 0, errs.ErrUnresolvedClient
}

type Resolver struct {
	api    API
	logger *zap.SugaredLogger
}

func NewResolver(api API, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{api: api, logger: logger}
}

// ResolveAndSubmit processes the payment of an order on behalf of the client
// resolved from snap, falling back to the order's owner. It issues at most one
// order lookup and one submission.
func (r *Resolver) ResolveAndSubmit(ctx context.Context, snap session.Snapshot, orderID int, method model.PaymentMethod, card *model.CardPaymentDetails) (model.Sale, error) {
	req, err := r.buildRequest(ctx, snap, orderID, method, card)
	if err != nil {
		return model.Sale{}, err
	}

	if req.Card != nil {
		r.logger.Infof("process sale: order=%d method=%s client=%d card=%s", req.OrderID, req.PaymentMethod, req.ClientID, utils.MaskCardNumber(req.Card.Number))
	} else {
		r.logger.Infof("process sale: order=%d method=%s client=%d", req.OrderID, req.PaymentMethod, req.ClientID)
	}

	return r.submit(ctx, req)
}

func (r *Resolver) buildRequest(ctx context.Context, snap session.Snapshot, orderID int, method model.PaymentMethod, card *model.CardPaymentDetails) (model.SaleRequest, error) {
	switch method {
	case model.Card:
		if !card.Valid() {
			return model.SaleRequest{}, errs.ErrInvalidCardData
		}
	case model.Cash, model.Transfer:
		card = nil
	default:
		return model.SaleRequest{}, errs.ErrUnknownPaymentMethod
	}

	clientID, err := ResolveClientID(ctx,
		FromSession(snap),
		FromSelection(snap),
		FromOrder(r.api, orderID),
	)
	if err != nil {
		return model.SaleRequest{}, err
	}

	return model.SaleRequest{
		OrderID:       orderID,
		PaymentMethod: method,
		ClientID:      clientID,
		Card:          card,
	}, nil
}

func (r *Resolver) submit(ctx context.Context, req model.SaleRequest) (model.Sale, error) {
	sale, err := r.api.ProcessSale(ctx, req)
	if err != nil {
		return model.Sale{}, err
	}
	if sale == nil {
		r.logger.Warnf("process sale: empty response for order %d", req.OrderID)
		return model.EmptySale(req.OrderID, req.PaymentMethod), nil
	}
	return *sale, nil
}
