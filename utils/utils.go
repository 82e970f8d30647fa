package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"alpacafarm/domain"
)

const maxBodyBytes = 1 << 20

func asValidation(err error) (domain.ValidationError, bool) {
	var ve domain.ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// DecodeJSON reads a JSON body into dst. Validation is left to the service.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.ValidationError{Msg: "request body is empty"}
		}
		return domain.ValidationError{Msg: "invalid JSON body", Err: err}
	}
	return nil
}

// ClientIP is the host part of the peer address. Headers are ignored.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ForwardedIP returns the first X-Forwarded-For hop, or ClientIP when the
// header is absent. Only meaningful behind a proxy that overwrites the header.
func ForwardedIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	return ClientIP(r)
}

// BearerToken pulls the token out of "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 8 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
