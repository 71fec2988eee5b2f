package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ContextKey is where the session middleware stores the verified token.
const ContextKey = "user"

var ErrNoSession = errors.New("no session")

// Sign issues the cookie value for a session.
func Sign(secret string, userID, sessionID uuid.UUID, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"sid": sessionID.String(),
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse verifies a raw cookie value outside of the middleware and returns
// the user and session it names.
func Parse(secret, raw string) (uuid.UUID, uuid.UUID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("parse session token: %w", err)
	}
	return idsFromToken(token)
}

// GetUserID extracts the session user from the token in context locals.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals(ContextKey).(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, ErrNoSession
	}
	userID, _, err := idsFromToken(token)
	return userID, err
}

// GetSessionID extracts the session id from the token in context locals.
func GetSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals(ContextKey).(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, ErrNoSession
	}
	_, sessionID, err := idsFromToken(token)
	return sessionID, err
}

func idsFromToken(token *jwt.Token) (uuid.UUID, uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, uuid.Nil, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, uuid.Nil, errors.New("missing sub claim")
	}
	sid, ok := claims["sid"].(string)
	if !ok {
		return uuid.Nil, uuid.Nil, errors.New("missing sid claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	sessionID, err := uuid.Parse(sid)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, sessionID, nil
}
