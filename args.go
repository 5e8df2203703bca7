package itbit

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nikandfor/errors"
	"github.com/shopspring/decimal"
)

type (
	Arg struct {
		Key   string
		Value interface{}
	}

	// Args is an ordered argument list.
	// Both JSON and query encodings keep insertion order
	// so the signed message is reproducible.
	Args []Arg
)

func (a Args) Add(k string, v interface{}) Args {
	return append(a, Arg{Key: k, Value: v})
}

func (a Args) MarshalJSON() (d []byte, err error) {
	var b bytes.Buffer

	b.WriteByte('{')

	for i, x := range a {
		if i != 0 {
			b.WriteByte(',')
		}

		err = jsonCompact(&b, x.Key)
		if err != nil {
			return nil, errors.Wrap(err, "key %q", x.Key)
		}

		b.WriteByte(':')

		err = jsonCompact(&b, argValue(x.Value))
		if err != nil {
			return nil, errors.Wrap(err, "value of %q", x.Key)
		}
	}

	b.WriteByte('}')

	return b.Bytes(), nil
}

// Encode encodes args as a query string. Spaces are encoded as %20.
func (a Args) Encode() string {
	var b strings.Builder

	for i, x := range a {
		if i != 0 {
			b.WriteByte('&')
		}

		b.WriteString(queryEscape(x.Key))
		b.WriteByte('=')
		b.WriteString(queryEscape(argString(x.Value)))
	}

	return b.String()
}

func argValue(v interface{}) interface{} {
	switch v := v.(type) {
	case decimal.Decimal:
		return v.String()
	case *decimal.Decimal:
		if v == nil {
			return nil
		}

		return v.String()
	}

	return v
}

func argString(v interface{}) string {
	switch v := argValue(v).(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
