package config

import "time"

type TokenConfig interface {
	GetSigningSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

type Token struct{}

var _ TokenConfig = Token{}

func (Token) GetSigningSecret() string {
	return GetEnv("TOKEN_SIGNING_SECRET", "dev-signing-secret")
}

func (Token) GetAccessTokenExpiry() time.Duration {
	return 30 * time.Minute
}

func (Token) GetRefreshTokenExpiry() time.Duration {
	return 14 * 24 * time.Hour // 14 days
}
