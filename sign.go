package itbit

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"strconv"
)

// Message builds the byte sequence the server recomputes to verify a request:
// the nonce followed by the JSON array [method, uri, body, nonce, timestamp],
// all elements encoded as strings.
func Message(method, uri, body string, nonce, ts int64) []byte {
	n := strconv.FormatInt(nonce, 10)

	var b bytes.Buffer

	b.WriteString(n)

	_ = jsonCompact(&b, []string{
		method,
		uri,
		body,
		n,
		strconv.FormatInt(ts, 10),
	})

	return b.Bytes()
}

// Sign returns base64(HMAC-SHA512(secret, uri || SHA256(msg))).
func Sign(msg []byte, uri string, secret []byte) string {
	sum := sha256.Sum256(msg)

	h := hmac.New(sha512.New, secret)

	h.Write([]byte(uri))
	h.Write(sum[:])

	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// jsonCompact writes v without the trailing newline and without escaping <, > and &.
func jsonCompact(b *bytes.Buffer, v interface{}) error {
	st := b.Len()

	e := json.NewEncoder(b)
	e.SetEscapeHTML(false)

	err := e.Encode(v)
	if err != nil {
		b.Truncate(st)
		return err
	}

	b.Truncate(b.Len() - 1)

	return nil
}
