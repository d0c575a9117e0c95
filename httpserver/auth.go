package httpserver

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/ruteri/trainer-intake/metrics"
)

const (
	adminRealm      = `Basic realm="Personal Agora Admin"`
	basicAuthPrefix = "basic "
)

// ProtectedPrefixes are the path prefixes guarded by AdminAuth.
var ProtectedPrefixes = []string{"/admin", "/api/admin"}

// IsProtectedPath reports whether path starts with one of ProtectedPrefixes.
func IsProtectedPath(path string) bool {
	for _, prefix := range ProtectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AdminCredentials are the expected Basic auth user and password. An empty
// Password denies every request.
type AdminCredentials struct {
	User     string
	Password string
}

// AdminAuth returns middleware enforcing HTTP Basic credentials on protected
// paths. Other paths pass through untouched. Every denial gets the same 401
// response whichever check failed.
func AdminAuth(creds AdminCredentials) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsProtectedPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			if !creds.authorized(r.Header.Get("Authorization")) {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (c AdminCredentials) authorized(header string) bool {
	if c.Password == "" {
		return false
	}
	if len(header) < len(basicAuthPrefix) || !strings.EqualFold(header[:len(basicAuthPrefix)], basicAuthPrefix) {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(basicAuthPrefix):])
	if err != nil {
		return false
	}

	user, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(c.User)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passwordOK
}

func unauthorized(w http.ResponseWriter) {
	metrics.AdminAuthDenied.Inc()
	w.Header().Set("WWW-Authenticate", adminRealm)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte("Auth required"))
}
