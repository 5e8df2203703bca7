package itbit

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) OrderBook(ctx context.Context, symbol string) (Body, error) {
	return c.Execute(ctx, false, http.MethodGet, "/markets/"+url.PathEscape(symbol)+"/order_book", nil)
}

func (c *Client) Ticker(ctx context.Context, symbol string) (Body, error) {
	return c.Execute(ctx, false, http.MethodGet, "/markets/"+url.PathEscape(symbol)+"/ticker", nil)
}

// Trades returns recent trades with match number greater than since. 0 means from the beginning.
func (c *Client) Trades(ctx context.Context, symbol string, since int64) (Body, error) {
	return c.Execute(ctx, false, http.MethodGet, "/markets/"+url.PathEscape(symbol)+"/trades", Args{}.Add("since", since))
}
