// Package flash carries one-shot notifications across a redirect in a
// signed cookie.
package flash

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie holding the pending message.
const CookieName = "sb_flash"

// Kind selects how a message is styled.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Message is a pending notification.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

type claims struct {
	Message
	jwt.RegisteredClaims
}

// Store signs and verifies flash cookies.
type Store struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewStore builds a Store. ttl bounds how long an unread message survives.
func NewStore(secret string, ttl time.Duration, secure bool) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{secret: []byte(secret), ttl: ttl, secure: secure, now: time.Now}
}

// Set queues msg for the next page the browser renders.
func (s *Store) Set(w http.ResponseWriter, kind Kind, text string) error {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Message: Message{Kind: kind, Text: text},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign flash: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending message, if any, and clears the cookie. Tampered
// or expired cookies are discarded silently.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) *Message {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	s.clear(w)

	msg, err := s.decode(cookie.Value)
	if err != nil {
		return nil
	}
	return msg
}

func (s *Store) decode(raw string) (*Message, error) {
	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid flash")
	}
	return &Message{Kind: c.Kind, Text: c.Text}, nil
}

func (s *Store) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
