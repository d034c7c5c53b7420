package model

import "strings"

type Credentials struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Registration creates a login. The auth service also creates the matching
// client from Name, Document and Phone, using UserName as its email.
type Registration struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Phone    string `json:"telefono"`
}

func (r Registration) Valid() bool {
	return strings.TrimSpace(r.UserName) != "" && r.Password != "" && ParseRole(r.Role) != ""
}

type TokenResponse struct {
	Token string `json:"token"`
}

type OrderRequest struct {
	ClientID int           `json:"clientId"`
	Details  []OrderDetail `json:"orderDetails"`
}

type CardPaymentDetails struct {
	Number string `json:"number"`
	CVV    string `json:"cvv"`
	Expiry string `json:"expiry"`
}

// Valid checks the minimal shape the payment endpoint accepts.
func (c *CardPaymentDetails) Valid() bool {
	if c == nil {
		return false
	}
	return len(c.Number) >= 12 && strings.TrimSpace(c.Expiry) != "" && len(c.CVV) >= 3
}

// SaleRequest is what goes to the sale-processing endpoint. Card is set only
// for card payments.
type SaleRequest struct {
	OrderID       int
	PaymentMethod PaymentMethod
	ClientID      int
	Card          *CardPaymentDetails
}

type ProcessSaleRequest struct {
	PaymentMethod string              `json:"paymentMethod"`
	Card          *CardPaymentDetails `json:"card,omitempty"`
}

type SelectClientRequest struct {
	ClientID int `json:"clientId"`
}
