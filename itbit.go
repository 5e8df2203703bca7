package itbit

import (
	"net/http"
	"time"
)

type (
	Client struct {
		PublicURL  string
		PrivateURL string

		// Timeout bounds private requests. Zero means no bound besides ctx.
		Timeout time.Duration

		UserAgent string

		HTTPClient *http.Client

		key    string
		secret []byte

		nonce *Nonce

		now func() time.Time
	}
)

const (
	BaseURL = "https://api.itbit.com/v1"

	DefaultTimeout   = 20 * time.Second
	DefaultUserAgent = "itbit-go/1.0"
)

// New creates a client. key and secret may be empty, then only public
// endpoints are usable.
func New(key string, secret []byte) (c *Client, err error) {
	c = &Client{
		PublicURL:  BaseURL,
		PrivateURL: BaseURL,
		Timeout:    DefaultTimeout,
		UserAgent:  DefaultUserAgent,
		HTTPClient: &http.Client{},

		key:    key,
		secret: secret,

		now: time.Now,
	}

	c.nonce = NewNonce(millis(c.now()))

	return c, nil
}

// Authenticated reports whether private endpoints can be called.
func (c *Client) Authenticated() bool {
	return c.key != "" && len(c.secret) != 0
}

func millis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
