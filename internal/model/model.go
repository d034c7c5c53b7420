package model

import (
	"net/mail"
	"strings"
	"time"

	"github.com/and161185/ventas/internal/errs"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// ParseRole accepts the remote spelling CLIENTE as well.
func ParseRole(s string) Role {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADMIN":
		return RoleAdmin
	case "CLIENT", "CLIENTE":
		return RoleClient
	default:
		return ""
	}
}

// Remote is the spelling the auth service stores.
func (r Role) Remote() string {
	if r == RoleClient {
		return "CLIENTE"
	}
	return string(r)
}

type OrderStatus string

const (
	Pending OrderStatus = "PENDING"
	Paid    OrderStatus = "PAID"
)

type PaymentMethod string

const (
	Cash     PaymentMethod = "CASH"
	Card     PaymentMethod = "CARD"
	Transfer PaymentMethod = "TRANSFER"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CASH", "EFECTIVO":
		return Cash, nil
	case "CARD", "TARJETA":
		return Card, nil
	case "TRANSFER", "TRANSFERENCIA":
		return Transfer, nil
	default:
		return "", errs.ErrUnknownPaymentMethod
	}
}

type OrderDetail struct {
	ProductID int `json:"productId"`
	Amount    int `json:"amount"`
}

type Order struct {
	ID       int           `json:"id"`
	ClientID int           `json:"clientId"`
	Status   OrderStatus   `json:"status"`
	Details  []OrderDetail `json:"orderDetails"`
	Client   *Client       `json:"clientDto,omitempty"`
}

type Sale struct {
	ID            int             `json:"id"`
	OrderID       int             `json:"orderId"`
	PaymentMethod string          `json:"paymentMethod"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	SaleDate      *time.Time      `json:"saleDate,omitempty"`
}

// EmptySale stands in for a sale-processing response without a body.
func EmptySale(orderID int, method PaymentMethod) Sale {
	return Sale{
		ID:            -1,
		OrderID:       orderID,
		PaymentMethod: string(method),
		TotalAmount:   decimal.Zero,
	}
}

type Client struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"telefono,omitempty"`
}

// Valid reports whether the fields the customer form requires are present.
func (c Client) Valid() bool {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Document) == "" {
		return false
	}
	_, err := mail.ParseAddress(c.Email)
	return err == nil
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
	Category *Category       `json:"category,omitempty"`
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}
