package main

import (
	"context"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/nikandfor/cli"
	"github.com/nikandfor/errors"
	"github.com/nikandfor/tlog"
	"github.com/nikandfor/tlog/ext/tlflag"
	"github.com/shopspring/decimal"

	"github.com/nikandfor/itbit"
)

func main() {
	cli.App = cli.Command{
		Name:   "itbit cli",
		Before: before,
		Flags: []*cli.Flag{
			cli.NewFlag("key", "", "api key (env ITBIT_KEY)"),
			cli.NewFlag("secret", "", "api key secret (env ITBIT_SECRET)"),

			cli.NewFlag("public", itbit.BaseURL, "public api base url"),
			cli.NewFlag("private", itbit.BaseURL, "private api base url"),
			cli.NewFlag("timeout", itbit.DefaultTimeout.String(), "private request timeout"),

			cli.NewFlag("symbol", "XBTUSD", "instrument"),
			cli.NewFlag("wallet", "", "wallet id"),

			cli.NewFlag("log", "stderr+dm", "log destination"),
			cli.NewFlag("v", "", "verbosity topics"),
			cli.NewFlag("debug", "", "debug addr to listen to", cli.Hidden),

			cli.FlagfileFlag,
			cli.HelpFlag,
		},
		Commands: []*cli.Command{{
			Name:   "tick,ticker",
			Action: ticker,
		}, {
			Name:   "orderbook",
			Action: orderbook,
		}, {
			Name:   "trades",
			Action: trades,
			Flags: []*cli.Flag{
				cli.NewFlag("since", "0", "match number to start after"),
			},
		}, {
			Name:   "wallets",
			Action: wallets,
			Flags: []*cli.Flag{
				cli.NewFlag("user", "", "user id"),
			},
		}, {
			Name:   "wallet",
			Action: wallet,
			Commands: []*cli.Command{{
				Name:   "create,new",
				Action: walletCreate,
				Flags: []*cli.Flag{
					cli.NewFlag("user", "", "user id"),
					cli.NewFlag("name", "", "wallet name"),
				},
			}, {
				Name:   "balance",
				Action: walletBalance,
				Args:   cli.Args{},
			}, {
				Name:   "trades",
				Action: walletTrades,
			}, {
				Name:   "funding",
				Action: fundingHistory,
			}, {
				Name:   "transfer",
				Action: transfer,
				Flags: []*cli.Flag{
					cli.NewFlag("to", "", "destination wallet id"),
					cli.NewFlag("amount", "", ""),
					cli.NewFlag("currency", "", ""),
				},
			}},
		}, {
			Name:   "order",
			Action: orders,
			Flags: []*cli.Flag{
				cli.NewFlag("status", "", "open|filled|cancelled|rejected|submitted"),
			},
			Commands: []*cli.Command{{
				Name:   "get",
				Action: orderGet,
				Args:   cli.Args{},
			}, {
				Name:   "place,new,add",
				Action: orderPlace,
				Flags: []*cli.Flag{
					cli.NewFlag("side", "", "buy|sell"),
					cli.NewFlag("type", itbit.Limit, "limit|market"),
					cli.NewFlag("price", "", ""),
					cli.NewFlag("amount", "", ""),
					cli.NewFlag("client-id", "", "client order identifier, generated if empty"),
				},
			}, {
				Name:   "cancel",
				Action: orderCancel,
				Args:   cli.Args{},
			}},
		}, {
			Name:   "withdraw",
			Action: withdraw,
			Flags: []*cli.Flag{
				cli.NewFlag("currency", "XBT", ""),
				cli.NewFlag("amount", "", ""),
				cli.NewFlag("address", "", ""),
			},
		}, {
			Name:   "deposit",
			Action: deposit,
			Flags: []*cli.Flag{
				cli.NewFlag("currency", "XBT", ""),
			},
		}},
	}

	cli.RunAndExit(os.Args)
}

func before(c *cli.Command) error {
	w, err := tlflag.OpenWriter(c.String("log"))
	if err != nil {
		return errors.Wrap(err, "parse log flag")
	}

	tlog.DefaultLogger = tlog.New(w)

	tlog.SetFilter(c.String("v"))

	ls := tlog.FillLabelsWithDefaults("service=itbit", "_hostname", "_runid", "_execmd5")

	tlog.SetLabels(ls)

	if a := c.String("debug"); a != "" {
		runtime.SetBlockProfileRate(1)
		runtime.SetMutexProfileFraction(1)

		go func() {
			err := http.ListenAndServe(a, nil)
			tlog.Printw("debug server", "err", err)
			os.Exit(1)
		}()

		tlog.Printf("listen debug server on %v", a)
	}

	return nil
}

func client(c *cli.Command) (cl *itbit.Client, err error) {
	key := c.String("key")
	if key == "" {
		key = os.Getenv("ITBIT_KEY")
	}

	secret := c.String("secret")
	if secret == "" {
		secret = os.Getenv("ITBIT_SECRET")
	}

	cl, err = itbit.New(key, []byte(secret))
	if err != nil {
		return nil, errors.Wrap(err, "new client")
	}

	cl.PublicURL = c.String("public")
	cl.PrivateURL = c.String("private")

	cl.Timeout, err = time.ParseDuration(c.String("timeout"))
	if err != nil {
		return nil, errors.Wrap(err, "parse timeout")
	}

	return cl, nil
}

func ticker(c *cli.Command) (err error) {
	cl, err := client(c)
	if err != nil {
		return err
	}

	b, err := cl.Ticker(context.Background(), c.String("symbol"))
	if err != nil {
		return errors.Wrap(err, "request")
	}

	return show("ticker", b)
}

func orderbook(c *cli.Command) (err error) {
	cl, err := client(c)
	if err != nil {
		return err
	}

	b, err := cl.OrderBook(context.Background(), c.String("symbol"))
	if err != nil {
		return errors.Wrap(err, "request")
	}

	return show("orderbook", b)
}

func trades(c *cli.Command) (err error) {
	cl, err := client(c)
	if err != nil {
		return err
	}

	since, err := strconv.ParseInt(c.String("since"), 10, 64)
	if err != nil {
		return errors.Wrap(err, "since")
	}

	b, err := cl.Trades(context.Background(), c.String("symbol"), since)
	if err != nil {
		return errors.Wrap(err, "request")
	}

	return show("trades", b)
}

func wallets(c *cli.Command) (err error) {
	cl, err := client(c)
	if err != nil {
		return err
	}

	b, err := cl.Wallets(context.Background(), itbit.WalletsQuery{UserID: c.String("user")})
	if err != nil {
		return errors.Wrap(err, "request")
	}

	return show("wallets", b)
}

func wallet(c *cli.Command) (err error) {
	cl, id, err := walletClient(c)
	if err != nil {
		return err
	}

	b, err := cl.Wallet(context.Background(), id)
	if err != nil {
		return errors.Wrap(err, "request")
	}

	return show("wallet", b)
}

func walletCreate(c *cli.Command) (err error) {
	cl, err := client(c)
	if err != nil {
		return err
	}

	b, err := cl.CreateWallet(context.Background(), c.String("user"), c.String("name"))
	if err != nil {
		return errors.Wrap(err, "request")
	}

	return show("wallet created", b)
}

func walletBalance(c *cli.Command) (err error) {
	cl, id, err := walletClient(c)
	if err != nil {
		return err
	}

	if c.Args.Len() == 0 {
		return errors.New("currency expected")
	}

	for _, cur := range c.Args {
		b, err := cl.WalletBalance(context.Background(), id, cur)
		if err != nil {
			return errors.Wrap(err, "request %v", cur)
		}

		err = show("balance", b)
		if err != nil {
			return err
		}
	}

	return nil
}

func walletTrades(c *cli.Command) (err error) {
	cl, id, err := walletClient(c)
	if err != nil {
		return err
	}

	b, err := cl.WalletTrades(context.Background(), id, itbit.TradesQuery{})
	if err != nil {
		return errors.Wrap(err, "request")
	}

	return show("wallet trades", b)
}

func fundingHistory(c *cli.Command) (err error) {
	cl, id, err := walletClient(c)
	if err != nil {
		return err
	}

	b, err := cl.FundingHistory(context.Background(), id, itbit.PageQuery{})
	if err != nil {
		return errors.Wrap(err, "request")
	}

	return show("funding history", b)
}

func transfer(c *cli.Command) (err error) {
	cl, id, err := walletClient(c)
	if err != nil {
		return err
	}

	t := itbit.Transfer{
		SourceWalletID:      id,
		DestinationWalletID: c.String("to"),
		Currency:            c.String("currency"),
	}

	t.Amount, err = decimal.NewFromString(c.String("amount"))
	if err != nil {
		return errors.Wrap(err, "amount")
	}

	b, err := cl.Transfer(context.Background(), t)
	if err != nil {
		return errors.Wrap(err, "request")
	}

	return show("transfer", b)
}

func orders(c *cli.Command) (err error) {
	cl, id, err := walletClient(c)
	if err != nil {
		return err
	}

	b, err := cl.Orders(context.Background(), id, itbit.OrdersQuery{
		Instrument: c.String("symbol"),
		Status:     c.String("status"),
	})
	if err != nil {
		return errors.Wrap(err, "request")
	}

	return show("orders", b)
}

func orderGet(c *cli.Command) (err error) {
	cl, id, err := walletClient(c)
	if err != nil {
		return err
	}

	if c.Args.Len() == 0 {
		return errors.New("args expected")
	}

	for _, oid := range c.Args {
		b, err := cl.Order(context.Background(), id, oid)
		if err != nil {
			return errors.Wrap(err, "request %v", oid)
		}

		err = show("order", b)
		if err != nil {
			return err
		}
	}

	return nil
}

func orderPlace(c *cli.Command) (err error) {
	cl, id, err := walletClient(c)
	if err != nil {
		return err
	}

	o := itbit.Order{
		Side:          c.String("side"),
		Type:          c.String("type"),
		Instrument:    c.String("symbol"),
		ClientOrderID: c.String("client-id"),
	}

	if o.ClientOrderID == "" {
		o.ClientOrderID = itbit.NewClientOrderID()
	}

	if o.Type != itbit.Market {
		err = o.Price.UnmarshalText([]byte(c.String("price")))
		if err != nil {
			return errors.Wrap(err, "price")
		}
	}

	err = o.Amount.UnmarshalText([]byte(c.String("amount")))
	if err != nil {
		return errors.Wrap(err, "amount")
	}

	b, err := cl.AddOrder(context.Background(), id, o)
	if err != nil {
		return errors.Wrap(err, "request")
	}

	tlog.Printw("place order", "client_id", o.ClientOrderID)

	return show("order", b)
}

func orderCancel(c *cli.Command) (err error) {
	cl, id, err := walletClient(c)
	if err != nil {
		return err
	}

	if c.Args.Len() == 0 {
		return errors.New("args expected")
	}

	for _, oid := range c.Args {
		_, err := cl.CancelOrder(context.Background(), id, oid)
		if err != nil {
			return errors.Wrap(err, "request %v", oid)
		}

		tlog.Printw("cancel order", "id", oid)
	}

	return nil
}

func withdraw(c *cli.Command) (err error) {
	cl, id, err := walletClient(c)
	if err != nil {
		return err
	}

	amount, err := decimal.NewFromString(c.String("amount"))
	if err != nil {
		return errors.Wrap(err, "amount")
	}

	b, err := cl.Withdraw(context.Background(), id, c.String("currency"), amount, c.String("address"))
	if err != nil {
		return errors.Wrap(err, "request")
	}

	return show("withdrawal", b)
}

func deposit(c *cli.Command) (err error) {
	cl, id, err := walletClient(c)
	if err != nil {
		return err
	}

	b, err := cl.DepositAddress(context.Background(), id, c.String("currency"))
	if err != nil {
		return errors.Wrap(err, "request")
	}

	return show("deposit", b)
}

func walletClient(c *cli.Command) (cl *itbit.Client, id string, err error) {
	id = c.String("wallet")
	if id == "" {
		return nil, "", errors.New("--wallet expected")
	}

	cl, err = client(c)
	if err != nil {
		return nil, "", err
	}

	return cl, id, nil
}

func show(name string, b itbit.Body) error {
	var v interface{}

	err := b.Decode(&v)
	if err != nil {
		return err
	}

	tlog.Printw(name, "data", v)

	return nil
}
