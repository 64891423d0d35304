package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenPurpose string

const (
	PurposeSession      TokenPurpose = "session"
	PurposeReset        TokenPurpose = "reset"
	PurposeRegistration TokenPurpose = "registration"
)

var errWrongPurpose = errors.New("token issued for another purpose")

type Claims struct {
	UserID   string       `json:"user_id"`
	Role     string       `json:"role,omitempty"`
	Username string       `json:"username,omitempty"`
	Purpose  TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenManager signs every token the app hands out. Purposes are checked on
// parse, so a reset link can never be replayed as a session.
type TokenManager struct {
	secret          []byte
	sessionTTL      time.Duration
	resetTTL        time.Duration
	registrationTTL time.Duration
	now             func() time.Time
}

func NewTokenManager(secret string, sessionTTL, resetTTL, registrationTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:          []byte(secret),
		sessionTTL:      sessionTTL,
		resetTTL:        resetTTL,
		registrationTTL: registrationTTL,
		now:             time.Now,
	}
}

// WithClock returns a copy reading time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *m
	cp.now = now
	return &cp
}

func (m *TokenManager) SessionTTL() time.Duration {
	return m.sessionTTL
}

func (m *TokenManager) sign(claims *Claims, ttl time.Duration) (string, error) {
	issued := m.now()
	claims.IssuedAt = jwt.NewNumericDate(issued)
	claims.ExpiresAt = jwt.NewNumericDate(issued.Add(ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) parse(tokenString string, purpose TokenPurpose) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Purpose != purpose {
		return nil, errWrongPurpose
	}
	return claims, nil
}

func (m *TokenManager) CreateSessionToken(userID uuid.UUID, role string) (string, *Claims, error) {
	claims := &Claims{
		UserID:  userID.String(),
		Role:    role,
		Purpose: PurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ID: uuid.NewString(),
		},
	}
	token, err := m.sign(claims, m.sessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, claims, nil
}

func (m *TokenManager) ValidateSessionToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, PurposeSession)
}

func (m *TokenManager) CreateResetToken(userID uuid.UUID) (string, error) {
	return m.sign(&Claims{UserID: userID.String(), Purpose: PurposeReset}, m.resetTTL)
}

// VerifyResetToken returns the embedded user id. Expired, tampered or
// foreign tokens yield false.
func (m *TokenManager) VerifyResetToken(tokenString string) (uuid.UUID, bool) {
	claims, err := m.parse(tokenString, PurposeReset)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// CreateRegistrationToken carries a new account from /register through
// checkout to /success.
func (m *TokenManager) CreateRegistrationToken(userID uuid.UUID, username string) (string, error) {
	return m.sign(&Claims{
		UserID:   userID.String(),
		Username: username,
		Purpose:  PurposeRegistration,
	}, m.registrationTTL)
}

func (m *TokenManager) VerifyRegistrationToken(tokenString string) (*Claims, bool) {
	claims, err := m.parse(tokenString, PurposeRegistration)
	if err != nil {
		return nil, false
	}
	return claims, true
}
