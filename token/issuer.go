package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

var (
	// ErrInvalidToken is returned for malformed or tampered tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned for well-signed tokens past their expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Pair is the access/refresh token pair minted at login. It is never
// persisted beyond the session store's refresh token slot.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims are the decoded contents of a verified token.
type Claims struct {
	Subject   string    // Identity the token was bound to
	IssuedAt  time.Time // iat claim
	ExpiresAt time.Time // exp claim
}

// Issuer mints and decodes signed token pairs bound to an identity. It
// holds no state beyond the signer and the two expiry windows.
type Issuer struct {
	signer        Signer
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewIssuer creates an Issuer. The access expiry is expected to be much
// shorter than the refresh expiry.
func NewIssuer(signer Signer, accessExpiry, refreshExpiry time.Duration) *Issuer {
	return &Issuer{
		signer:        signer,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// AccessExpiry returns the validity window of newly minted access tokens.
func (i *Issuer) AccessExpiry() time.Duration {
	return i.accessExpiry
}

// RefreshExpiry returns the validity window of newly minted refresh
// tokens. The session store TTL for a stored refresh token matches this.
func (i *Issuer) RefreshExpiry() time.Duration {
	return i.refreshExpiry
}

// IssuePair mints a fresh access and refresh token bound to identity,
// each with its own expiry window.
func (i *Issuer) IssuePair(identity string) (*Pair, error) {
	accessToken, err := i.signToken(identity, i.accessExpiry)
	if err != nil {
		return nil, err
	}
	refreshToken, err := i.signToken(identity, i.refreshExpiry)
	if err != nil {
		return nil, err
	}
	return &Pair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (i *Issuer) signToken(identity string, expiry time.Duration) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"sub": identity,               // Identity the token is bound to
		"iat": now.Unix(),             // Issued At
		"exp": now.Add(expiry).Unix(), // Expiry
		"jti": uuid.New().String(),    // Unique token ID
	}
	return i.signer.Sign(claims)
}

// Decode verifies a token and recovers its identity and expiry. It never
// returns a subject for a tampered or expired token.
func (i *Issuer) Decode(rawToken string) (*Claims, error) {
	parsed, err := jwtlib.ParseWithClaims(rawToken, jwtlib.MapClaims{}, i.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)

	return &Claims{
		Subject:   sub,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

// RemainingLifetime returns the time until expiry for a still-valid
// token. Expired or invalid tokens fail with the matching decode error.
func (i *Issuer) RemainingLifetime(rawToken string) (time.Duration, error) {
	claims, err := i.Decode(rawToken)
	if err != nil {
		return 0, err
	}
	remaining := claims.ExpiresAt.Sub(NowTimeFunc())
	if remaining < 0 {
		return 0, ErrExpiredToken
	}
	return remaining, nil
}
