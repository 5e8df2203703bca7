package itbit

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

type (
	PageQuery struct {
		Page    int
		PerPage int
	}

	WalletsQuery struct {
		UserID string
		PageQuery
	}

	TradesQuery struct {
		LastExecutionID string
		RangeStart      string
		RangeEnd        string
		PageQuery
	}

	Transfer struct {
		SourceWalletID      string
		DestinationWalletID string
		Amount              decimal.Decimal
		Currency            string
	}
)

func (q PageQuery) args(a Args) Args {
	if q.Page != 0 {
		a = a.Add("page", q.Page)
	}

	if q.PerPage != 0 {
		a = a.Add("perPage", q.PerPage)
	}

	return a
}

func (c *Client) Wallets(ctx context.Context, q WalletsQuery) (Body, error) {
	var a Args

	if q.UserID != "" {
		a = a.Add("userId", q.UserID)
	}

	a = q.PageQuery.args(a)

	return c.Execute(ctx, true, http.MethodGet, "/wallets", a)
}

func (c *Client) Wallet(ctx context.Context, walletID string) (Body, error) {
	return c.Execute(ctx, true, http.MethodGet, walletPath(walletID), nil)
}

func (c *Client) CreateWallet(ctx context.Context, userID, name string) (Body, error) {
	a := Args{}.
		Add("userId", userID).
		Add("name", name)

	return c.Execute(ctx, true, http.MethodPost, "/wallets", a)
}

func (c *Client) WalletBalance(ctx context.Context, walletID, currency string) (Body, error) {
	return c.Execute(ctx, true, http.MethodGet, walletPath(walletID)+"/balances/"+url.PathEscape(currency), nil)
}

func (c *Client) WalletTrades(ctx context.Context, walletID string, q TradesQuery) (Body, error) {
	var a Args

	if q.LastExecutionID != "" {
		a = a.Add("lastExecutionId", q.LastExecutionID)
	}

	a = q.PageQuery.args(a)

	if q.RangeStart != "" {
		a = a.Add("rangeStart", q.RangeStart)
	}

	if q.RangeEnd != "" {
		a = a.Add("rangeEnd", q.RangeEnd)
	}

	return c.Execute(ctx, true, http.MethodGet, walletPath(walletID)+"/trades", a)
}

func (c *Client) FundingHistory(ctx context.Context, walletID string, q PageQuery) (Body, error) {
	return c.Execute(ctx, true, http.MethodGet, walletPath(walletID)+"/funding_history", q.args(nil))
}

func (c *Client) Transfer(ctx context.Context, t Transfer) (Body, error) {
	a := Args{}.
		Add("sourceWalletId", t.SourceWalletID).
		Add("destinationWalletId", t.DestinationWalletID).
		Add("amount", t.Amount).
		Add("currencyCode", t.Currency)

	return c.Execute(ctx, true, http.MethodPost, "/wallet_transfers", a)
}

func walletPath(id string) string {
	return "/wallets/" + url.PathEscape(id)
}
