//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// skipUnlessEnabled skips the test unless SYNCSHOT_INTEGRATION_TESTS=1
func skipUnlessEnabled(t *testing.T) {
	t.Helper()
	if os.Getenv("SYNCSHOT_INTEGRATION_TESTS") != "1" {
		t.Skip("Skipping integration test. Set SYNCSHOT_INTEGRATION_TESTS=1 to run")
	}
}

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
)

// buildSyncshot compiles the syncshot binary once per test run
func buildSyncshot(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "syncshot-bin-*")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "syncshot")
		out, err := exec.Command("go", "build", "-o", binPath, "../../cmd/syncshot").CombinedOutput()
		if err != nil {
			buildErr = &buildError{err: err, output: string(out)}
		}
	})

	if buildErr != nil {
		t.Fatalf("Failed to build syncshot binary: %v", buildErr)
	}
	return binPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

// syncshotProcess is a running syncshot binary with captured output
type syncshotProcess struct {
	cmd    *exec.Cmd
	stdout *lockedBuffer
	stderr *lockedBuffer
	done   chan error
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// isolatedEnv returns an environment whose XDG directories are private to the test
func isolatedEnv(t *testing.T) []string {
	t.Helper()

	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "SYNCSHOT_") || strings.HasPrefix(kv, "XDG_") {
			continue
		}
		env = append(env, kv)
	}

	runtimeDir := t.TempDir()
	if err := os.Chmod(runtimeDir, 0o700); err != nil {
		t.Fatalf("Failed to chmod runtime dir: %v", err)
	}

	return append(env,
		"XDG_CONFIG_HOME="+t.TempDir(),
		"XDG_RUNTIME_DIR="+runtimeDir,
	)
}

// startSyncshot launches syncshot with args using env
func startSyncshot(t *testing.T, env []string, args ...string) *syncshotProcess {
	t.Helper()

	p := &syncshotProcess{
		cmd:    exec.Command(buildSyncshot(t), args...),
		stdout: &lockedBuffer{},
		stderr: &lockedBuffer{},
		done:   make(chan error, 1),
	}
	p.cmd.Env = env
	p.cmd.Stdout = p.stdout
	p.cmd.Stderr = p.stderr

	if err := p.cmd.Start(); err != nil {
		t.Fatalf("Failed to start syncshot: %v", err)
	}
	go func() { p.done <- p.cmd.Wait() }()

	// Kill fails harmlessly when the process already exited
	t.Cleanup(func() { _ = p.cmd.Process.Kill() })

	return p
}

// wait returns the exit code, failing the test if the process outlives timeout
func (p *syncshotProcess) wait(t *testing.T, timeout time.Duration) int {
	t.Helper()

	select {
	case err := <-p.done:
		if err == nil {
			return 0
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		t.Fatalf("syncshot failed: %v", err)
	case <-time.After(timeout):
		t.Fatalf("syncshot did not exit within %s\nstdout:\n%s\nstderr:\n%s", timeout, p.stdout, p.stderr)
	}
	return -1
}

// eventually polls cond until it holds or timeout elapses
func eventually(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}
