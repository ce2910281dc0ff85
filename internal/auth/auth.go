package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"github.com/iurnickita/swadbot/internal/auth/config"
)

type Auth interface {
	Enabled() bool
	IssueToken(subject string, ttl time.Duration) (string, error)
	Middleware(h http.HandlerFunc) http.HandlerFunc
}

const (
	HeaderSubjectKey  = "X-Dashboard-Subject"
	cookieTokenName   = "swadDashboardToken"
	queryTokenName    = "token"
	bearerTokenPrefix = "Bearer "
)

var (
	ErrNoSecret     = errors.New("dashboard token secret is not set")
	ErrNoToken      = errors.New("no token")
	ErrInvalidToken = errors.New("invalid token")
)

type auth struct {
	secret []byte
}

func NewAuth(cfg config.Config) Auth {
	return &auth{secret: []byte(cfg.Secret)}
}

func (a *auth) Enabled() bool {
	return len(a.secret) > 0
}

func (a *auth) IssueToken(subject string, ttl time.Duration) (string, error) {
	if !a.Enabled() {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *auth) Middleware(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Header.Del(HeaderSubjectKey)
		if !a.Enabled() {
			h.ServeHTTP(w, r)
			return
		}

		// получение и проверка токена
		token, fromQuery, err := a.extractToken(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		subject, err := a.parseToken(token)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		// токен из ссылки запоминаем в куке
		if fromQuery {
			http.SetCookie(w, &http.Cookie{
				Name:     cookieTokenName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteStrictMode,
			})
		}

		r.Header.Set(HeaderSubjectKey, subject)
		h.ServeHTTP(w, r)
	}
}

func (a *auth) extractToken(r *http.Request) (token string, fromQuery bool, err error) {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, bearerTokenPrefix) {
		return strings.TrimPrefix(header, bearerTokenPrefix), false, nil
	}
	if cookie, err := r.Cookie(cookieTokenName); err == nil && cookie.Value != "" {
		return cookie.Value, false, nil
	}
	if token := r.URL.Query().Get(queryTokenName); token != "" {
		return token, true, nil
	}
	return "", false, ErrNoToken
}

func (a *auth) parseToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
