package middleware

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"alpacafarm/auth"
	"alpacafarm/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Authenticate admits requests carrying a valid bearer token whose user holds
// one of the allowed roles. Browsers cannot set headers on a WebSocket
// handshake, so upgrades may pass the token as ?token= instead.
func Authenticate(gate *auth.Gate, allowed auth.RoleSet) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			tokenString := utils.BearerToken(r)
			if tokenString == "" && websocket.IsWebSocketUpgrade(r) {
				tokenString = r.URL.Query().Get("token")
			}

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			user, err := gate.VerifyToken(ctx, tokenString)
			cancel()
			if err != nil {
				utils.RespondWithDomainError(w, err)
				return
			}
			if _, err := gate.RequireRole(user, allowed); err != nil {
				utils.RespondWithDomainError(w, err)
				return
			}

			next(w, r.WithContext(utils.WithIdentity(r.Context(), user)), ps)
		}
	}
}

// apiCSP forbids every subresource: responses are JSON or PDF downloads and
// are never meant to render as pages or inside frames.
const apiCSP = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'"

// SecurityHeaders sets headers for a JSON API. Admin and auth responses carry
// tokens or visitor contact details and must never be cached; public content
// may be cached but is revalidated on every use.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", apiCSP)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cross-Origin-Resource-Policy", "same-site")
		if private(r.URL.Path) {
			h.Set("Cache-Control", "no-store")
		} else {
			h.Set("Cache-Control", "no-cache")
		}
		next.ServeHTTP(w, r)
	})
}

func private(path string) bool {
	return strings.HasPrefix(path, "/api/admin/") || strings.HasPrefix(path, "/api/auth/")
}

// statusRecorder remembers what the handler wrote so Logging can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// Hijack lets the booking live feed upgrade through the recorder.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	s.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Logging writes one line per request with the status, response size, client
// and duration.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		log.Printf("[HTTP] %s %s %d %dB from %s in %v",
			r.Method, r.URL.Path, rec.status, rec.bytes, utils.ClientIP(r), time.Since(start))
	})
}
