package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported password hashing algorithms.
const (
	AlgorithmArgon2id = "argon2id"
	AlgorithmBcrypt   = "bcrypt"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt
)

// Upper bounds for parameters read back from a stored argon2id hash. A hash
// outside them is rejected as malformed before any work is done.
const (
	maxArgonMemory      = 256 * 1024 // KiB
	maxArgonIterations  = 16
	maxArgonParallelism = 16
	maxArgonKeyLength   = 64
	maxArgonSaltLength  = 64
)

// DefaultBcryptCost is deliberately above bcrypt.DefaultCost (10).
const DefaultBcryptCost = 12

var (
	ErrMismatch          = errors.New("password does not match")
	ErrMalformedHash     = errors.New("invalid hash format")
	ErrUnknownAlgorithm  = errors.New("unknown hash algorithm")
	ErrBcryptCostInvalid = errors.New("bcrypt cost out of range")
)

// HasherOptions configures a Hasher. The zero value hashes with argon2id and
// no pepper.
type HasherOptions struct {
	Algorithm  string // argon2id (default) or bcrypt
	BcryptCost int    // only used when Algorithm is bcrypt (default: 12)
	Pepper     string // appended to the password before argon2id hashing
}

// Hasher produces self-salted, algorithm-tagged password hashes and verifies
// them in constant time. It is immutable and safe for concurrent use.
type Hasher struct {
	algorithm  string
	bcryptCost int
	pepper     string
}

// NewHasher validates the options and returns a Hasher.
func NewHasher(opts HasherOptions) (*Hasher, error) {
	alg := strings.ToLower(strings.TrimSpace(opts.Algorithm))
	if alg == "" {
		alg = AlgorithmArgon2id
	}

	h := &Hasher{algorithm: alg, pepper: opts.Pepper}

	switch alg {
	case AlgorithmArgon2id:
	case AlgorithmBcrypt:
		h.bcryptCost = opts.BcryptCost
		if h.bcryptCost == 0 {
			h.bcryptCost = DefaultBcryptCost
		}
		if h.bcryptCost < bcrypt.MinCost || h.bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("%w: %d", ErrBcryptCostInvalid, h.bcryptCost)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, opts.Algorithm)
	}

	return h, nil
}

// Algorithm returns the algorithm new hashes are produced with.
func (h *Hasher) Algorithm() string { return h.algorithm }

// BcryptCost returns the configured bcrypt cost, or DefaultBcryptCost for an
// argon2id hasher.
func (h *Hasher) BcryptCost() int {
	if h.bcryptCost == 0 {
		return DefaultBcryptCost
	}
	return h.bcryptCost
}

// Algorithms lists every algorithm Verify understands.
func Algorithms() []string {
	return []string{AlgorithmArgon2id, AlgorithmBcrypt}
}

// AlgorithmOf reports which algorithm produced encoded, or "" when the tag is
// not recognised.
func AlgorithmOf(encoded string) string {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return AlgorithmArgon2id
	case isBcrypt(encoded):
		return AlgorithmBcrypt
	default:
		return ""
	}
}

// Hash returns an encoded hash of password. Every call uses a fresh salt so
// hashing the same password twice yields two different strings.
func (h *Hasher) Hash(password string) (string, error) {
	if h.algorithm == AlgorithmBcrypt {
		out, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	return h.hashArgon2id(password)
}

// Verify reports whether password matches encoded. Malformed or corrupt hashes
// are treated as a mismatch.
func (h *Hasher) Verify(password, encoded string) bool {
	return h.Compare(password, encoded) == nil
}

// Compare is Verify with a reason: nil on match, ErrMismatch on a wrong
// password, ErrMalformedHash (wrapped) when encoded cannot be parsed.
func (h *Hasher) Compare(password, encoded string) error {
	switch AlgorithmOf(encoded) {
	case AlgorithmArgon2id:
		return h.compareArgon2id(password, encoded)
	case AlgorithmBcrypt:
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return ErrMismatch
		case errors.Is(err, bcrypt.ErrPasswordTooLong):
			return ErrMismatch
		default:
			return fmt.Errorf("%w: %v", ErrMalformedHash, err)
		}
	default:
		return fmt.Errorf("%w: unrecognised algorithm tag", ErrMalformedHash)
	}
}

// NeedsRehash reports whether encoded was produced with a different algorithm
// or bcrypt cost than h is configured with.
func (h *Hasher) NeedsRehash(encoded string) bool {
	switch AlgorithmOf(encoded) {
	case AlgorithmArgon2id:
		return h.algorithm != AlgorithmArgon2id
	case AlgorithmBcrypt:
		if h.algorithm != AlgorithmBcrypt {
			return true
		}
		cost, err := bcrypt.Cost([]byte(encoded))
		return err != nil || cost != h.bcryptCost
	default:
		return true
	}
}

func isBcrypt(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}

// hashArgon2id generates a PHC-format Argon2id hash string including salt and parameters.
func (h *Hasher) hashArgon2id(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		iterations,
		memory,
		parallelism,
		keyLength,
	)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		b64Salt,
		b64Hash,
	), nil
}

// compareArgon2id checks password against a PHC-style Argon2id hash.
func (h *Hasher) compareArgon2id(password, encodedHash string) error {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return fmt.Errorf("%w: expected 6 parts", ErrMalformedHash)
	}
	if parts[2] != "v=19" {
		return fmt.Errorf("%w: wrong version", ErrMalformedHash)
	}

	var mem, iters, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("%w: failed to parse parameters: %v", ErrMalformedHash, err)
	}
	if mem == 0 || iters == 0 || par == 0 {
		return fmt.Errorf("%w: zero parameter", ErrMalformedHash)
	}
	if mem > maxArgonMemory || iters > maxArgonIterations || par > maxArgonParallelism {
		return fmt.Errorf("%w: parameters out of range (m=%d,t=%d,p=%d)", ErrMalformedHash, mem, iters, par)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: failed to decode salt: %v", ErrMalformedHash, err)
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("%w: failed to decode hash: %v", ErrMalformedHash, err)
	}
	if len(expectedHash) == 0 || len(expectedHash) > maxArgonKeyLength {
		return fmt.Errorf("%w: hash length %d", ErrMalformedHash, len(expectedHash))
	}
	if len(salt) > maxArgonSaltLength {
		return fmt.Errorf("%w: salt length %d", ErrMalformedHash, len(salt))
	}

	computed := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		iters,
		mem,
		uint8(par),                // #nosec G115 - bounded by maxArgonParallelism
		uint32(len(expectedHash)), // #nosec G115 - bounded by maxArgonKeyLength
	)

	if subtle.ConstantTimeCompare(computed, expectedHash) == 1 {
		return nil
	}
	return ErrMismatch
}

// GeneratePassword returns a random 16 character alphanumeric password.
func GeneratePassword() (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 16
	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random password: %w", err)
		}
		password[i] = charset[n.Int64()]
	}
	return string(password), nil
}
