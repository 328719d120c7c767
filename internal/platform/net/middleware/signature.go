package middleware

import (
	"bytes"
	"io"
	stdhttp "net/http"

	perr "caseflow/internal/platform/errors"
	"caseflow/internal/platform/logger"
)

// SignaturePort verifies a raw payload against a signature header value
// implementations decide the scheme, typically HMAC over the body
type SignaturePort interface {
	VerifyPayload(body []byte, signature string) error
}

// WriteJSONFunc writes a JSON error body, injected to avoid importing net/http helpers here
type WriteJSONFunc func(w stdhttp.ResponseWriter, status int, body any)

type signatureWire struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// VerifySignature checks the X-Signature header against the request body
// the body is read fully and restored so downstream handlers can decode it
func VerifySignature(p SignaturePort, write WriteJSONFunc) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			sig := r.Header.Get("X-Signature")
			if sig == "" {
				deny(w, write, "missing signature")
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				logger.C(r.Context()).Error().Err(err).Msg("signature middleware failed to read body")
				deny(w, write, "unreadable body")
				return
			}
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))

			if err := p.VerifyPayload(body, sig); err != nil {
				logger.C(r.Context()).Warn().Err(err).Msg("rejected unsigned or tampered payload")
				deny(w, write, "invalid signature")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func deny(w stdhttp.ResponseWriter, write WriteJSONFunc, msg string) {
	status := perr.HTTPStatus(perr.Unauthorizedf("%s", msg))
	write(w, status, signatureWire{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Error:      msg,
	})
}
