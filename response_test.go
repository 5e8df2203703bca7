package itbit

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReq() *request {
	return &request{
		Method: "POST",
		URI:    "https://api.itbit.com/v1/wallets/w1/orders",
		Body:   `{"side":"buy"}`,
		Nonce:  77,
	}
}

func classifyErr(t *testing.T, status int, body string) *Error {
	t.Helper()

	b, err := classify(testReq(), status, []byte(body), nil)
	require.Error(t, err)
	assert.Nil(t, b)

	e, ok := err.(*Error)
	require.True(t, ok, "%T", err)

	return e
}

func TestClassifyAPICodeBeatsStatus(t *testing.T) {
	e := classifyErr(t, 400, `{"code":"ERR001","description":"Invalid nonce"}`)

	assert.Equal(t, KindAPI, e.Kind)
	assert.Equal(t, "ERR001", e.Code)
	assert.Equal(t, "Invalid nonce", e.Description)
	assert.Equal(t, 400, e.StatusCode)
}

func TestClassifyNumericCode(t *testing.T) {
	e := classifyErr(t, 422, `{"code":10002,"description":"Insufficient funds","requestId":"r"}`)

	assert.Equal(t, KindAPI, e.Kind)
	assert.Equal(t, "10002", e.Code)
	assert.Equal(t, "Insufficient funds", e.Description)
}

func TestClassifyMaintenance(t *testing.T) {
	const msg = "The itBit API is currently undergoing maintenance"

	e := classifyErr(t, 200, `{"error":"`+msg+`"}`)

	assert.Equal(t, KindAPI, e.Kind)
	assert.Equal(t, msg, e.Message)
	assert.Equal(t, "", e.Code)
}

func TestClassifyCodeBeforeError(t *testing.T) {
	e := classifyErr(t, 200, `{"error":"something","code":"E1","description":"d"}`)

	assert.Equal(t, KindAPI, e.Kind)
	assert.Equal(t, "E1", e.Code)
}

func TestClassifyEmpty(t *testing.T) {
	e := classifyErr(t, 200, "")
	assert.Equal(t, KindEmptyResponse, e.Kind)

	e = classifyErr(t, 200, " \n")
	assert.Equal(t, KindEmptyResponse, e.Kind)
}

func TestClassifyHTML(t *testing.T) {
	e := classifyErr(t, 503, `<html><head><title>503</title></head><body><h1>Service Unavailable</h1></body></html>`)

	assert.Equal(t, KindUnparseableHTML, e.Kind)
	assert.Equal(t, "Service Unavailable", e.Message)
	assert.Equal(t, 503, e.StatusCode)
}

func TestClassifyUnparseable(t *testing.T) {
	e := classifyErr(t, 200, `<html><body><script>var x = 1;</script></body></html>`)
	assert.Equal(t, KindUnparseableBody, e.Kind)

	for _, body := range []string{`{"id":"abc"`, `Bad Gateway`, `123`, `"str"`} {
		e = classifyErr(t, 502, body)
		assert.Equal(t, KindUnparseableBody, e.Kind, "%q", body)
		assert.Equal(t, "", e.Message, "%q", body)
		assert.Equal(t, body, string(e.Body))
	}
}

func TestClassifySuccess(t *testing.T) {
	b, err := classify(testReq(), 201, []byte(`{"id":"abc123","status":"open"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"abc123","status":"open"}`, string(b))

	var o struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}

	require.NoError(t, b.Decode(&o))
	assert.Equal(t, "abc123", o.ID)
	assert.Equal(t, "open", o.Status)

	b, err = classify(testReq(), 200, []byte(`[{"id":"w1"}]`), nil)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"w1"}]`, string(b))

	b, err = classify(testReq(), 202, []byte(`{"code":null,"error":null}`), nil)
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestClassifyHTTPStatus(t *testing.T) {
	e := classifyErr(t, 500, `{"id":"abc"}`)

	assert.Equal(t, KindHTTPStatus, e.Kind)
	assert.Equal(t, 500, e.StatusCode)
	assert.Equal(t, `{"id":"abc"}`, string(e.Body))
}

func TestClassifyTransport(t *testing.T) {
	cause := errors.New("connection refused")

	b, err := classify(testReq(), 0, nil, cause)
	assert.Nil(t, b)

	e, ok := err.(*Error)
	require.True(t, ok)

	assert.Equal(t, KindTransport, e.Kind)
	assert.True(t, errors.Is(err, cause))

	k, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindTransport, k)
}

func TestKindOfWrapped(t *testing.T) {
	_, err := classify(testReq(), 200, nil, nil)

	k, ok := KindOf(fmt.Errorf("wallet: %w", err))
	assert.True(t, ok)
	assert.Equal(t, KindEmptyResponse, k)

	k, ok = KindOf(errors.Join(errors.New("other"), fmt.Errorf("order: %w", err)))
	assert.True(t, ok)
	assert.Equal(t, KindEmptyResponse, k)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}

func TestErrorContext(t *testing.T) {
	e := classifyErr(t, 400, `{"code":"ERR001","description":"Invalid nonce"}`)

	s := e.Error()
	assert.Contains(t, s, "POST https://api.itbit.com/v1/wallets/w1/orders")
	assert.Contains(t, s, "nonce 77")
	assert.Contains(t, s, `{"side":"buy"}`)
	assert.Contains(t, s, "ERR001")
	assert.Contains(t, s, "Invalid nonce")

	_, err := classify(&request{Method: "GET", URI: "https://h/x"}, 500, []byte(`{}`), nil)
	s = err.Error()
	assert.Contains(t, s, "GET https://h/x")
	assert.NotContains(t, s, "nonce")
	assert.Contains(t, s, "500")
}

func TestBodyMarshal(t *testing.T) {
	var resp struct {
		Wallet Body `json:"wallet"`
		Orders Body `json:"orders"`
	}

	resp.Wallet = Body(`{"id":"w1","balances":[{"currency":"XBT"}]}`)

	d, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"wallet":{"id":"w1","balances":[{"currency":"XBT"}]},"orders":null}`, string(d))
}
