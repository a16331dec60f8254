package main

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// MockLocker records lock calls and returns configured errors
type MockLocker struct {
	AcquireErr    error
	ReleaseErr    error
	AcquireCalled bool
	ReleaseCalled bool
	Stale         int
}

func (m *MockLocker) Acquire() error {
	m.AcquireCalled = true
	return m.AcquireErr
}

func (m *MockLocker) Release() error {
	m.ReleaseCalled = true
	return m.ReleaseErr
}

func (m *MockLocker) StalePID() int {
	return m.Stale
}

// MockSyncer stands in for the daemon. Run blocks until RunFn returns, or
// returns immediately when RunFn is nil.
type MockSyncer struct {
	mu           sync.Mutex
	RunFn        func(ctx context.Context) error
	RunCalled    bool
	WatchCalled  bool
	SummaryShown bool
}

func (m *MockSyncer) Run(ctx context.Context) error {
	m.mu.Lock()
	m.RunCalled = true
	fn := m.RunFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return nil
}

func (m *MockSyncer) WatchSignals(ctx context.Context, _ <-chan os.Signal) error {
	m.mu.Lock()
	m.WatchCalled = true
	m.mu.Unlock()

	<-ctx.Done()
	return nil
}

func (m *MockSyncer) PrintSummary() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummaryShown = true
}

// MockBranches reports a fixed branch and upstream
type MockBranches struct {
	Branch      string
	BranchErr   error
	Tracking    string
	TrackingErr error
}

func (m *MockBranches) CurrentBranch(context.Context) (string, error) {
	return m.Branch, m.BranchErr
}

func (m *MockBranches) Upstream(context.Context) (string, error) {
	return m.Tracking, m.TrackingErr
}

// MockLogger discards everything except warnings and counts Close calls
type MockLogger struct {
	CloseErr     error
	CloseCalled  int
	Warnings     []string
	UserWarnings []string
}

func (m *MockLogger) Debug(string, ...any) {}
func (m *MockLogger) Info(string, ...any) {}
func (m *MockLogger) Error(string, ...any) {}
func (m *MockLogger) InfoToUser(string, ...any) {}
func (m *MockLogger) Success(string, ...any) {}
func (m *MockLogger) StatusMessage(string, ...any) {}
func (m *MockLogger) Warning(format string, _ ...any) { m.Warnings = append(m.Warnings, format) }

func (m *MockLogger) WarningToUser(format string, args ...any) {
	m.UserWarnings = append(m.UserWarnings, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Close() error {
	m.CloseCalled++
	return m.CloseErr
}

// noSignals never delivers a signal
func noSignals() (<-chan os.Signal, func()) {
	return make(chan os.Signal), func() {}
}
