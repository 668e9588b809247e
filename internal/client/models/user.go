package models

import (
	"strings"
	"time"
)

// User is the authenticated account as returned by the backend. The wallet
// balance here is the only authoritative copy; the client refetches it after
// every wallet-affecting mutation instead of trusting local arithmetic.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	WalletBalance int       `json:"wallet_balance"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	IsActive      bool      `json:"is_active"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Initials derives the avatar placeholder from the display name:
// "Ann A" -> "AA".
func (u *User) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(u.Name) {
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

// AuthTokens is the token pair issued by login, register and refresh.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthResult is the payload of a successful login or register call.
type AuthResult struct {
	User   User       `json:"user"`
	Tokens AuthTokens `json:"tokens"`
}
