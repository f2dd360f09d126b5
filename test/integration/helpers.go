//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/batch-client/pkg/batchclient"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Endpoint   string
	Account    string
	AccountKey string
	// PoolID is an existing pool with at least one node. Tests add jobs to it.
	PoolID    string
	BatchPath string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Endpoint:   os.Getenv(batchclient.EnvBatchEndpoint),
		Account:    os.Getenv(batchclient.EnvBatchAccount),
		AccountKey: os.Getenv(batchclient.EnvBatchAccessKey),
		PoolID:     os.Getenv("BATCH_TEST_POOL"),
		BatchPath:  getBatchPath(),
		Verbose:    os.Getenv("BATCH_VERBOSE") == "true",
	}
}

// getBatchPath determines the path to the batch binary.
func getBatchPath() string {
	if path := os.Getenv("BATCH_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../batch", "./batch", "../batch"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "batch"
}

// SkipIfMissingConfig skips the test when no account is configured.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Endpoint == "" || config.AccountKey == "" {
		t.Skipf("%s and %s not set, skipping integration test", batchclient.EnvBatchEndpoint, batchclient.EnvBatchAccessKey)
	}

	if config.PoolID == "" {
		t.Skip("BATCH_TEST_POOL not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips the test when the CLI binary cannot be found.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.BatchPath); err != nil {
		t.Skipf("batch binary not found at %s, skipping CLI test", config.BatchPath)
	}
}

// CommandRunner runs the batch CLI against the configured account.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{config: config, t: t}
}

// Run executes a batch command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append(args, "--config", filepath.Join(runner.t.TempDir(), "config.yml"))

	cmd := exec.Command(runner.config.BatchPath, args...)
	cmd.Env = append(os.Environ(),
		"BATCH_URL="+runner.config.Endpoint,
		"BATCH_ACCOUNT="+runner.config.Account,
		"BATCH_ACCOUNT_KEY="+runner.config.AccountKey,
	)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BatchPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// AssertJSONOutput asserts that output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	var parsed interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &parsed), "output is not valid JSON: %s", output)
}
