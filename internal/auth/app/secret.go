package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
)

// MinSecretLength is the shortest secret accepted without a warning. HS256
// keys shorter than the hash output weaken the MAC.
const MinSecretLength = 32

// ErrNoSecret is returned when neither AUTH_SECRET_KEY nor AUTH_SECRET_FILE
// yields a secret.
var ErrNoSecret = errors.New("no signing secret configured (set AUTH_SECRET_KEY or AUTH_SECRET_FILE)")

// LoadSecret resolves the process-wide signing secret. Surrounding whitespace
// in a secret file is ignored.
func LoadSecret(cfg Config, logger *slog.Logger) ([]byte, error) {
	secret := cfg.SecretKey
	if cfg.SecretFile != "" {
		raw, err := os.ReadFile(cfg.SecretFile)
		if err != nil {
			return nil, fmt.Errorf("read secret file: %w", err)
		}
		secret = strings.TrimSpace(string(raw))
	}

	if secret == "" {
		return nil, ErrNoSecret
	}
	if len(secret) < MinSecretLength {
		logger.Warn("signing secret is shorter than recommended",
			"length", len(secret),
			"recommended", MinSecretLength,
		)
	}

	return []byte(secret), nil
}

// InitTokenKeys builds the signer and verifier over secret.
func InitTokenKeys(cfg Config, secret []byte) (jwtx.Signer, jwtx.Verifier, error) {
	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize signer: %w", err)
	}

	verifier, err := jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{Issuer: cfg.Issuer})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize verifier: %w", err)
	}

	return signer, verifier, nil
}
