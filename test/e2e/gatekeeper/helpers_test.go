package gatekeeper_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcexec "github.com/testcontainers/testcontainers-go/exec"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for gatekeeper end-to-end tests.
 * This includes container setup, user seeding through the CLI, and assertions.
 */

const (
	testImageName = "gatekeeper-test:latest"

	testSecret = "e2e-secret-0123456789abcdef0123456789"
	testIssuer = "gatekeeper-e2e"
)

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building gatekeeper Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up gatekeeper Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/gatekeeper/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

type gatekeeperContainer struct {
	testcontainers.Container
	baseURL string
}

// setupContainer starts gatekeeper with bcrypt at a low cost so the suite
// stays fast. extraEnv overrides the defaults.
func setupContainer(t *testing.T, extraEnv map[string]string) *gatekeeperContainer {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"AUTH_SECRET_KEY":     testSecret,
		"AUTH_ISSUER":         testIssuer,
		"AUTH_HASH_ALGORITHM": "bcrypt",
		"AUTH_BCRYPT_COST":    "4",
		"ENV":                 "test",
		"LOG_LEVEL":           "info",
		"LOG_FORMAT":          "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &gatekeeperContainer{
		Container: container,
		baseURL:   fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
	}
}

// gatekeeper runs the CLI inside the container against the same database
// the service is using.
func (c *gatekeeperContainer) gatekeeper(t *testing.T, args ...string) string {
	t.Helper()

	code, out, err := c.Exec(t.Context(), append([]string{"/usr/local/bin/gatekeeper"}, args...), tcexec.Multiplexed())
	require.NoError(t, err)

	body, err := io.ReadAll(out)
	require.NoError(t, err)
	require.Equal(t, 0, code, "gatekeeper %s: %s", strings.Join(args, " "), body)

	return string(body)
}

func (c *gatekeeperContainer) addUser(t *testing.T, username, password, role string) {
	t.Helper()
	c.gatekeeper(t, "user", "add", "--username", username, "--password", password, "--role", role)
}

func (c *gatekeeperContainer) client() *authsdk.SDKClient {
	return authsdk.NewSDKClient(c.baseURL)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertAPIError checks the decoded error matches want.
func assertAPIError(t *testing.T, err error, want *authsdk.APIError) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, want, "got: %v", err)
}
