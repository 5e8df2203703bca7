package itbit

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type (
	Kind int

	// Error is returned by every request that failed in the pipeline.
	// Request fields identify the call: Method and URI always,
	// Nonce and ReqBody for non-GET requests.
	Error struct {
		Kind Kind

		Message     string
		Code        string
		Description string

		StatusCode int
		Body       []byte

		Method  string
		URI     string
		Nonce   int64
		ReqBody string

		Err error
	}
)

const (
	KindCredentialsMissing Kind = iota + 1
	KindTransport
	KindEmptyResponse
	KindUnparseableBody
	KindUnparseableHTML
	KindAPI
	KindHTTPStatus
)

var kindNames = [...]string{
	KindCredentialsMissing: "credentials missing",
	KindTransport:          "transport",
	KindEmptyResponse:      "empty response",
	KindUnparseableBody:    "unparseable body",
	KindUnparseableHTML:    "unparseable html",
	KindAPI:                "api error",
	KindHTTPStatus:         "http status",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

func (e *Error) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%v %v", e.Method, e.URI)

	if e.Method != "" && e.Method != http.MethodGet {
		fmt.Fprintf(&b, " (nonce %d, body %s)", e.Nonce, e.ReqBody)
	}

	fmt.Fprintf(&b, ": %v", e.Kind)

	switch e.Kind {
	case KindAPI:
		if e.Code != "" {
			fmt.Fprintf(&b, ": code %v: %v", e.Code, e.Description)
		} else {
			fmt.Fprintf(&b, ": %v", e.Message)
		}
	case KindHTTPStatus:
		fmt.Fprintf(&b, ": %d: %s", e.StatusCode, e.Body)
	case KindTransport:
		fmt.Fprintf(&b, ": %v", e.Err)
	default:
		if e.Message != "" {
			fmt.Fprintf(&b, ": %v", e.Message)
		}
	}

	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's tree.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}

	return e.Kind, true
}
