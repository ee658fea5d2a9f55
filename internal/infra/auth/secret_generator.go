package auth

import (
	"crypto/rand"
	"encoding/base64"

	"smarthr/internal/domain/service"
	"smarthr/internal/errors"
)

// 32 random bytes, 43 URL-safe characters once encoded.
const secretBytes = 32

type randomSecretGenerator struct{}

// NewSecretGenerator returns a generator backed by crypto/rand.
func NewSecretGenerator() service.SecretGenerator {
	return randomSecretGenerator{}
}

func (randomSecretGenerator) Generate() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
