package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken lo devuelven los verifiers ante un token mal formado, vencido o con firma inválida.
var ErrInvalidToken = errors.New("invalid token")

// AuthVerifier valida un bearer token y devuelve sus claims.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
