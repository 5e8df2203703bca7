package itbit

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/buger/jsonparser"
	"github.com/nikandfor/errors"
)

type (
	// Body is a successful response body: a JSON object or array, as received.
	Body []byte
)

func (b Body) Decode(v interface{}) error {
	err := json.Unmarshal(b, v)
	if err != nil {
		return errors.Wrap(err, "decode body")
	}

	return nil
}

func (b Body) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}

	return b, nil
}

// classify turns a transport outcome into a result.
// Rules are checked in order and the first match wins,
// so api error fields take precedence over the http status.
func classify(r *request, status int, p []byte, err error) (Body, error) {
	if err != nil {
		e := r.error(KindTransport)
		e.StatusCode = status
		e.Err = err

		return nil, e
	}

	if len(bytes.TrimSpace(p)) == 0 {
		e := r.error(KindEmptyResponse)
		e.StatusCode = status

		return nil, e
	}

	_, tp, _, perr := jsonparser.Get(p)
	if perr != nil || tp != jsonparser.Object && tp != jsonparser.Array || !json.Valid(p) {
		e := r.error(KindUnparseableBody)
		e.StatusCode = status
		e.Body = p

		if t := htmlText(p); t != "" {
			e.Kind = KindUnparseableHTML
			e.Message = t
		}

		return nil, e
	}

	if tp == jsonparser.Object {
		if v, vt, _, err := jsonparser.Get(p, "code"); err == nil && vt != jsonparser.Null {
			e := r.error(KindAPI)
			e.StatusCode = status
			e.Body = p
			e.Code = jsonString(v, vt)

			if v, vt, _, err := jsonparser.Get(p, "description"); err == nil {
				e.Description = jsonString(v, vt)
			}

			e.Message = e.Description

			return nil, e
		}

		if v, vt, _, err := jsonparser.Get(p, "error"); err == nil && vt != jsonparser.Null {
			e := r.error(KindAPI)
			e.StatusCode = status
			e.Body = p
			e.Message = jsonString(v, vt)

			return nil, e
		}
	}

	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
	default:
		e := r.error(KindHTTPStatus)
		e.StatusCode = status
		e.Body = p

		return nil, e
	}

	return Body(p), nil
}

func jsonString(v []byte, tp jsonparser.ValueType) string {
	if tp == jsonparser.String {
		s, err := jsonparser.ParseString(v)
		if err == nil {
			return s
		}
	}

	return string(v)
}
