package itbit

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

func (c *Client) Withdraw(ctx context.Context, walletID, currency string, amount decimal.Decimal, address string) (Body, error) {
	a := Args{}.
		Add("currency", currency).
		Add("amount", amount).
		Add("address", address)

	return c.Execute(ctx, true, http.MethodPost, walletPath(walletID)+"/cryptocurrency_withdrawals", a)
}

func (c *Client) DepositAddress(ctx context.Context, walletID, currency string) (Body, error) {
	a := Args{}.
		Add("currency", currency)

	return c.Execute(ctx, true, http.MethodPost, walletPath(walletID)+"/cryptocurrency_deposits", a)
}
