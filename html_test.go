package itbit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLText(t *testing.T) {
	for _, tc := range []struct {
		in, out string
	}{
		{`<html><body><h1>Service Unavailable</h1></body></html>`, "Service Unavailable"},
		{`<html><head><title>Oops</title><style>h1{}</style></head><body>
			<h1>Bad   Gateway</h1>
			<script>alert(1)</script>
			<p>Try &amp; retry</p>
		</body></html>`, "Bad Gateway Try & retry"},
		{`<html><head><title>Only title</title></head></html>`, "Only title"},
		{`<!DOCTYPE html>Bad Gateway`, "Bad Gateway"},
		{`<p>Gateway Timeout`, "Gateway Timeout"},
		{`plain text`, ""},
		{`{"id":"abc"`, ""},
		{`123`, ""},
		{`<html><body></body></html>`, ""},
		{``, ""},
	} {
		assert.Equal(t, tc.out, htmlText([]byte(tc.in)), "%q", tc.in)
	}
}
