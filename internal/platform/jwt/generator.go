// Package jwtmw はJWTの発行・検証と、Ginの認証ミドルウェアを提供します。
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSubject はトークンに sub クレームがない場合のエラーです。
var ErrMissingSubject = errors.New("token has no subject")

// Claims は検証済みトークンから取り出した情報です。
type Claims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Provider はHS256でトークンを発行・検証します。
type Provider struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewProvider は指定したシークレットと有効期間でProviderを生成します。
func NewProvider(secret string, expiration time.Duration) *Provider {
	return &Provider{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken はユーザーIDを sub に持つ署名済みトークンを生成します。
func (p *Provider) GenerateToken(userID string) (string, error) {
	now := p.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken は署名・有効期限を検証し、クレームを返します。HS256以外の署名は拒否します。
func (p *Provider) ParseToken(tokenStr string) (Claims, error) {
	var rc jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &rc, func(*jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return Claims{}, err
	}
	if rc.Subject == "" {
		return Claims{}, ErrMissingSubject
	}

	c := Claims{UserID: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}
