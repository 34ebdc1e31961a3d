// Package token mints and validates the signed access/refresh token pair.
// Tokens are self-contained bearer credentials: a valid signature and an
// unexpired claim are sufficient, there is no server-side revocation.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Identity is the payload carried by both token classes.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Claims embeds the registered claims plus the identity and an explicit
// token_type discriminator, so a token presented to the wrong verifier is
// rejected even if both classes were misconfigured with the same secret.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	TokenType string    `json:"token_type"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{ID: c.UserID, Email: c.Email}
}

// Pair is an access/refresh token pair minted in a single issuance call.
// Both halves always encode the identical identity and issued-at time.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Manager, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("token secrets must not be empty")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("token TTLs must be positive")
	}

	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (m *Manager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

// IssueAccessToken signs a short-lived token authorizing requests.
func (m *Manager) IssueAccessToken(id Identity) (string, error) {
	return m.sign(id, TypeAccess, m.accessSecret, m.accessTTL, time.Now())
}

// IssueRefreshToken signs a longer-lived token used solely to mint new pairs.
func (m *Manager) IssueRefreshToken(id Identity) (string, error) {
	return m.sign(id, TypeRefresh, m.refreshSecret, m.refreshTTL, time.Now())
}

// IssueTokenPair mints both classes from a single clock reading.
func (m *Manager) IssueTokenPair(id Identity) (Pair, error) {
	now := time.Now()

	access, err := m.sign(id, TypeAccess, m.accessSecret, m.accessTTL, now)
	if err != nil {
		return Pair{}, err
	}

	refresh, err := m.sign(id, TypeRefresh, m.refreshSecret, m.refreshTTL, now)
	if err != nil {
		return Pair{}, err
	}

	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken returns the identity claim of a valid access token.
// Fails with ErrTokenExpired past the embedded expiry, ErrTokenInvalid for
// everything else (bad signature, wrong class, malformed string).
func (m *Manager) VerifyAccessToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, TypeAccess, m.accessSecret)
}

// VerifyRefreshToken is VerifyAccessToken for the refresh class.
func (m *Manager) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, TypeRefresh, m.refreshSecret)
}

func (m *Manager) sign(id Identity, tokenType string, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		UserID:    id.ID,
		Email:     id.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   id.ID.String(),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (m *Manager) verify(tokenString, wantType string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Method.Alg())
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid || claims.TokenType != wantType {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
