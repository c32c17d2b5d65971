package statictoken

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"peds-aftercare/internal/ports/auth"
)

var ErrNotConfigured = errors.New("static token verifier not configured")

// Verifier implementa auth.AuthVerifier contra un único token compartido
// (API_TOKEN). Pensado para un despliegue de un solo cuidador o un agente.
type Verifier struct {
	token   []byte
	subject string
}

func NewVerifier(token, subject string) *Verifier {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "caregiver"
	}
	return &Verifier{
		token:   []byte(strings.TrimSpace(token)),
		subject: subject,
	}
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.token) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(token), v.token) != 1 {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return auth.Claims{Subject: v.subject, Method: "bearer"}, nil
}
