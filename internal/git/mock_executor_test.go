package git

import (
	"context"
	"strings"
)

// MockCommandExecutor is a simple mock of the CommandExecutor interface
// that doesn't actually execute anything but just records calls.
type MockCommandExecutor struct {
	Output   string
	Commands [][]string

	// ExecuteFn, when set, decides the outcome of every call
	ExecuteFn func(args []string) (string, error)
}

// ExecuteWithContext implements the CommandExecutor interface
func (m *MockCommandExecutor) ExecuteWithContext(ctx context.Context, name string, args ...string) error {
	_, err := m.ExecuteWithContextAndOutput(ctx, name, args...)
	return err
}

// ExecuteWithContextAndOutput implements the CommandExecutor interface
func (m *MockCommandExecutor) ExecuteWithContextAndOutput(_ context.Context, name string, args ...string) (string, error) {
	call := append([]string{name}, args...)
	m.Commands = append(m.Commands, call)

	if m.ExecuteFn != nil {
		return m.ExecuteFn(args)
	}
	return m.Output, nil
}

// Subcommands returns the git subcommands that were run, in order,
// e.g. "status --porcelain".
func (m *MockCommandExecutor) Subcommands() []string {
	var out []string
	for _, call := range m.Commands {
		// call is: git -C <path> <subcommand...>
		if len(call) > 3 {
			out = append(out, strings.Join(call[3:], " "))
		}
	}
	return out
}

// NewMockCommandExecutor creates a new mock executor
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{}
}
