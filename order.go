package itbit

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/nikandfor/errors"
	"github.com/shopspring/decimal"
)

type (
	Order struct {
		Side       string
		Type       string
		Amount     decimal.Decimal
		Price      decimal.Decimal
		Instrument string

		Metadata      map[string]interface{}
		ClientOrderID string
	}

	OrdersQuery struct {
		Instrument string
		Status     string
		PageQuery
	}
)

const (
	Buy  = "buy"
	Sell = "sell"

	Limit  = "limit"
	Market = "market"
)

// MarketPrice is the price sent with market orders.
var MarketPrice = decimal.Zero

func (c *Client) Orders(ctx context.Context, walletID string, q OrdersQuery) (Body, error) {
	var a Args

	if q.Instrument != "" {
		a = a.Add("instrument", q.Instrument)
	}

	if q.Status != "" {
		a = a.Add("status", q.Status)
	}

	a = q.PageQuery.args(a)

	return c.Execute(ctx, true, http.MethodGet, walletPath(walletID)+"/orders", a)
}

func (c *Client) Order(ctx context.Context, walletID, orderID string) (Body, error) {
	return c.Execute(ctx, true, http.MethodGet, orderPath(walletID, orderID), nil)
}

func (c *Client) AddOrder(ctx context.Context, walletID string, o Order) (Body, error) {
	path := walletPath(walletID) + "/orders"

	err := c.checkCredentials(&request{Method: http.MethodPost, URI: c.PrivateURL + path})
	if err != nil {
		return nil, err
	}

	a, err := o.args()
	if err != nil {
		return nil, err
	}

	return c.Execute(ctx, true, http.MethodPost, path, a)
}

func (c *Client) CancelOrder(ctx context.Context, walletID, orderID string) (Body, error) {
	return c.Execute(ctx, true, http.MethodDelete, orderPath(walletID, orderID), nil)
}

// NewClientOrderID returns a random identifier for Order.ClientOrderID.
// The exchange rejects a second order with the same identifier.
func NewClientOrderID() string {
	return uuid.NewString()
}

func (o Order) args() (a Args, err error) {
	if len(o.Instrument) < 3 {
		return nil, errors.New("bad instrument: %q", o.Instrument)
	}

	price := o.Price
	if o.Type == Market {
		price = MarketPrice
	}

	a = Args{}.
		Add("side", o.Side).
		Add("type", o.Type).
		Add("currency", o.Instrument[:3]).
		Add("amount", o.Amount).
		Add("price", price).
		Add("instrument", o.Instrument)

	if len(o.Metadata) != 0 {
		a = a.Add("metadata", o.Metadata)
	}

	if o.ClientOrderID != "" {
		a = a.Add("clientOrderIdentifier", o.ClientOrderID)
	}

	return a, nil
}

func orderPath(walletID, orderID string) string {
	return walletPath(walletID) + "/orders/" + url.PathEscape(orderID)
}
