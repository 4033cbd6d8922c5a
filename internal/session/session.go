// Package session tracks the logged-in principal across requests via a signed
// cookie and carries one-time flash messages between redirects.
package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// CookieName is the session cookie holding the signed principal token.
	CookieName = "inkwell_session"
	// FlashCookieName carries flash messages to the next rendered page.
	FlashCookieName = "inkwell_flash"

	issuer   = "inkwell"
	audience = "inkwell-web"

	// Lifetime is how long a session stays valid without re-login.
	Lifetime = 7 * 24 * time.Hour
)

// Manager signs, verifies, and clears session cookies.
type Manager struct {
	secret []byte
	secure bool
}

// NewManager creates a session manager signing with the given secret.
// secure controls the cookie Secure attribute (true behind TLS).
func NewManager(secret string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), secure: secure}
}

// Issue establishes a session for the given user by setting a signed cookie.
func (m *Manager) Issue(c *fiber.Ctx, userID uint) error {
	token, err := m.sign(userID)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(Lifetime),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Principal returns the authenticated user ID carried by the session cookie,
// if present and valid.
func (m *Manager) Principal(c *fiber.Ctx) (uint, bool) {
	raw := c.Cookies(CookieName)
	if raw == "" {
		return 0, false
	}
	return m.verify(raw)
}

// Clear invalidates the session cookie unconditionally.
func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (m *Manager) sign(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": issuer,
		"aud": audience,
		"exp": now.Add(Lifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) verify(raw string) (uint, bool) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	if iss, issOk := claims["iss"].(string); !issOk || iss != issuer {
		return 0, false
	}
	if aud, audOk := claims["aud"].(string); !audOk || aud != audience {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return 0, false
	}
	return uint(userID), true
}

// Flash appends a one-time message shown on the next rendered page.
func Flash(c *fiber.Ctx, message string) {
	messages := decodeFlashes(c.Cookies(FlashCookieName))
	messages = append(messages, message)

	c.Cookie(&fiber.Cookie{
		Name:     FlashCookieName,
		Value:    encodeFlashes(messages),
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// TakeFlashes returns pending flash messages and clears them.
func TakeFlashes(c *fiber.Ctx) []string {
	raw := c.Cookies(FlashCookieName)
	if raw == "" {
		return nil
	}
	messages := decodeFlashes(raw)

	c.Cookie(&fiber.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return messages
}

func encodeFlashes(messages []string) string {
	data, err := json.Marshal(messages)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

func decodeFlashes(raw string) []string {
	if raw == "" {
		return nil
	}
	data, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var messages []string
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil
	}
	return messages
}
