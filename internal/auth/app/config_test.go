package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"AUTH_SECRET_KEY", "AUTH_SECRET_FILE", "AUTH_ISSUER", "AUTH_ACCESS_TTL",
		"AUTH_HASH_ALGORITHM", "AUTH_BCRYPT_COST", "AUTH_PEPPER_FILE", "AUTH_ROLES_FILE",
		"AUTH_DATABASE_FILE", "AUTH_DIRECTORY_TIMEOUT", "ENV", "LOG_LEVEL", "LOG_FORMAT",
		"PORT", "SHUTDOWN_GRACE_PERIOD",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "gatekeeper", cfg.Issuer)
	require.Equal(t, 15*time.Minute, cfg.AccessTTL)
	require.Equal(t, "argon2id", cfg.HashAlgorithm)
	require.Equal(t, 12, cfg.BcryptCost)
	require.Equal(t, "pepper", cfg.PepperFile)
	require.Equal(t, "gatekeeper.db", cfg.DatabaseFile)
	require.Equal(t, 3*time.Second, cfg.DirectoryTimeout)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TTL", "30")
	t.Setenv("AUTH_DIRECTORY_TIMEOUT", "500ms")
	t.Setenv("AUTH_HASH_ALGORITHM", "bcrypt")
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")
	t.Setenv("PORT", "9090")

	cfg := LoadConfig()
	require.Equal(t, 30*time.Minute, cfg.AccessTTL)
	require.Equal(t, 500*time.Millisecond, cfg.DirectoryTimeout)
	require.Equal(t, "bcrypt", cfg.HashAlgorithm)
	require.Equal(t, 12, cfg.BcryptCost)
	require.Equal(t, 9090, cfg.Port)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			SecretKey:        "k",
			Issuer:           "gatekeeper",
			AccessTTL:        time.Minute,
			HashAlgorithm:    "argon2id",
			DatabaseFile:     "x.db",
			DirectoryTimeout: time.Second,
			Port:             8080,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"both secrets", func(c *Config) { c.SecretFile = "f" }, "only one of"},
		{"zero ttl", func(c *Config) { c.AccessTTL = 0 }, "AUTH_ACCESS_TTL"},
		{"bad algorithm", func(c *Config) { c.HashAlgorithm = "md5" }, "AUTH_HASH_ALGORITHM"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "PORT"},
		{"empty issuer", func(c *Config) { c.Issuer = "" }, "AUTH_ISSUER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadSecret(t *testing.T) {
	logger := slogx.Discard()

	_, err := LoadSecret(Config{}, logger)
	require.ErrorIs(t, err, ErrNoSecret)

	secret, err := LoadSecret(Config{SecretKey: "inline"}, logger)
	require.NoError(t, err)
	require.Equal(t, []byte("inline"), secret)

	path := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(path, []byte("  from-file\n"), 0o600))
	secret, err = LoadSecret(Config{SecretFile: path}, logger)
	require.NoError(t, err)
	require.Equal(t, []byte("from-file"), secret)

	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))
	_, err = LoadSecret(Config{SecretFile: path}, logger)
	require.ErrorIs(t, err, ErrNoSecret)

	_, err = LoadSecret(Config{SecretFile: filepath.Join(t.TempDir(), "missing")}, logger)
	require.Error(t, err)
}

func TestInitTokenKeys(t *testing.T) {
	_, _, err := InitTokenKeys(Config{Issuer: "gatekeeper"}, nil)
	require.ErrorIs(t, err, jwtx.ErrEmptySecret)

	signer, verifier, err := InitTokenKeys(Config{Issuer: "gatekeeper"}, []byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	raw, err := signer.Sign(jwtx.NewAccessClaims("alice", "viewer", []string{"data.view"}, time.Minute, "gatekeeper", time.Now()))
	require.NoError(t, err)
	claims, err := verifier.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
}

func TestNewApplication(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		SecretKey:           "0123456789abcdef0123456789abcdef",
		Issuer:              "gatekeeper",
		AccessTTL:           time.Minute,
		HashAlgorithm:       "bcrypt",
		BcryptCost:          4,
		PepperFile:          filepath.Join(dir, "pepper"),
		DatabaseFile:        filepath.Join(dir, "gatekeeper.db"),
		DirectoryTimeout:    time.Second,
		LogFormat:           "text",
		Port:                8080,
		ShutdownGracePeriod: time.Second,
	}

	a, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, a.Handler())
	require.NoError(t, a.db.Close())

	_, err = os.Stat(cfg.PepperFile)
	require.NoError(t, err)

	cfg.SecretKey = ""
	_, err = New(cfg)
	require.ErrorIs(t, err, ErrNoSecret)
}
