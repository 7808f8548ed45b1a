package server

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
)

// Credentials is the single shared login.
type Credentials struct {
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
}

// basicAuth gates next behind HTTP basic auth with the shared credential
// pair. Failures get a generic message; only the attempted username is
// logged.
func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || !s.creds.match(user, pass) {
			if ok {
				s.log.Warn("login failed", zap.String("username", user))
			}
			w.Header().Set("WWW-Authenticate", `Basic realm="promptlib", charset="UTF-8"`)
			s.handleError(w, r, newUnauthorized())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// match compares both fields in constant time.
func (c Credentials) match(user, pass string) bool {
	u := subtle.ConstantTimeCompare([]byte(user), []byte(c.Username))
	p := subtle.ConstantTimeCompare([]byte(pass), []byte(c.Password))
	return u&p == 1
}
