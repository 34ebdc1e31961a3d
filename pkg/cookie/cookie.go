// Package cookie derives the attribute set for the token cookies. Writing
// and clearing must agree on Path/SameSite/Secure/HttpOnly, otherwise the
// browser treats the clear as a different cookie and keeps the original.
package cookie

import (
	"net/http"
	"time"

	"github.com/xuantrong94/chat-backend/pkg/config"
)

const (
	AccessTokenName  = "accessToken"
	RefreshTokenName = "refreshToken"
)

type Policy struct {
	secure     bool
	sameSite   http.SameSite
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewPolicy(cfg config.CookieConfig, accessTTL, refreshTTL time.Duration) *Policy {
	return &Policy{
		secure:     cfg.Secure,
		sameSite:   parseSameSite(cfg.SameSite),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Access returns the write cookie for an access token.
func (p *Policy) Access(token string) *http.Cookie {
	c := p.base(AccessTokenName)
	c.Value = token
	c.MaxAge = int(p.accessTTL.Seconds())
	c.Expires = time.Now().Add(p.accessTTL)
	return c
}

// Refresh returns the write cookie for a refresh token.
func (p *Policy) Refresh(token string) *http.Cookie {
	c := p.base(RefreshTokenName)
	c.Value = token
	c.MaxAge = int(p.refreshTTL.Seconds())
	c.Expires = time.Now().Add(p.refreshTTL)
	return c
}

// ClearAccess returns the clearing variant of the access cookie: identical
// attributes, empty value, expiry in the past.
func (p *Policy) ClearAccess() *http.Cookie {
	return p.clear(AccessTokenName)
}

// ClearRefresh is ClearAccess for the refresh cookie.
func (p *Policy) ClearRefresh() *http.Cookie {
	return p.clear(RefreshTokenName)
}

// SetPair writes both token cookies on the response.
func (p *Policy) SetPair(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, p.Access(accessToken))
	http.SetCookie(w, p.Refresh(refreshToken))
}

// ClearPair clears both token cookies on the response.
func (p *Policy) ClearPair(w http.ResponseWriter) {
	http.SetCookie(w, p.ClearAccess())
	http.SetCookie(w, p.ClearRefresh())
}

func (p *Policy) base(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: p.sameSite,
	}
}

func (p *Policy) clear(name string) *http.Cookie {
	c := p.base(name)
	c.Value = ""
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}
