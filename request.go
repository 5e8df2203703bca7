package itbit

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/nikandfor/errors"
	"github.com/nikandfor/tlog"
)

type (
	request struct {
		Method string
		URI    string
		Body   string
		Nonce  int64
	}
)

// Execute performs a request. Private requests are signed and require credentials.
// Any failure is returned as *Error, except for argument encoding
// and public non-GET misuse which are reported before any request is built.
func (c *Client) Execute(ctx context.Context, private bool, method, path string, args Args) (Body, error) {
	if private {
		return c.private(ctx, method, path, args)
	}

	return c.public(ctx, method, path, args)
}

func (c *Client) public(ctx context.Context, method, path string, args Args) (Body, error) {
	if method != http.MethodGet {
		return nil, errors.New("public endpoints are GET only: %v %v", method, path)
	}

	r := &request{
		Method: method,
		URI:    c.PublicURL + path,
	}

	if len(args) != 0 {
		r.URI += "?" + args.Encode()
	}

	return c.do(ctx, r, nil)
}

func (c *Client) private(ctx context.Context, method, path string, args Args) (Body, error) {
	r := &request{
		Method: method,
		URI:    c.PrivateURL + path,
	}

	if err := c.checkCredentials(r); err != nil {
		return nil, err
	}

	switch method {
	case http.MethodGet:
		if len(args) != 0 {
			r.URI += "?" + args.Encode()
		}
	case http.MethodPost, http.MethodPut:
		d, err := args.MarshalJSON()
		if err != nil {
			return nil, errors.Wrap(err, "encode args")
		}

		r.Body = string(d)
	}

	ts := millis(c.now())
	r.Nonce = c.nonce.Next()

	sig := Sign(Message(r.Method, r.URI, r.Body, r.Nonce, ts), r.URI, c.secret)

	h := http.Header{}
	h.Set("Authorization", c.key+":"+sig)
	h.Set("X-Auth-Timestamp", strconv.FormatInt(ts, 10))
	h.Set("X-Auth-Nonce", strconv.FormatInt(r.Nonce, 10))
	h.Set("Content-Type", "application/json")

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	return c.do(ctx, r, h)
}

func (c *Client) do(ctx context.Context, r *request, h http.Header) (b Body, err error) {
	var body io.Reader
	if r.Body != "" {
		body = strings.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URI, body)
	if err != nil {
		return classify(r, 0, nil, errors.Wrap(err, "new request"))
	}

	for k, v := range h {
		req.Header[k] = v
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	tlog.V("itbit").Printw("request", "method", r.Method, "uri", r.URI, "nonce", r.Nonce, "body", r.Body)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		b, err = classify(r, 0, nil, err)
	} else {
		b, err = c.read(r, resp)
	}

	if err != nil {
		tlog.V("itbit").Printw("request failed", "method", r.Method, "uri", r.URI, "err", err)
	}

	return b, err
}

func (c *Client) read(r *request, resp *http.Response) (Body, error) {
	defer resp.Body.Close()

	p, err := io.ReadAll(resp.Body)
	if err != nil {
		return classify(r, resp.StatusCode, nil, errors.Wrap(err, "read body"))
	}

	tlog.V("raw").Printw("response", "status", resp.StatusCode, "body", p)

	return classify(r, resp.StatusCode, p, nil)
}

func (c *Client) checkCredentials(r *request) error {
	if c.Authenticated() {
		return nil
	}

	e := r.error(KindCredentialsMissing)
	e.Message = "api key and secret required"

	return e
}

func (r *request) error(k Kind) *Error {
	return &Error{
		Kind:    k,
		Method:  r.Method,
		URI:     r.URI,
		Nonce:   r.Nonce,
		ReqBody: r.Body,
	}
}
