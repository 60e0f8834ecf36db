package services_test

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/kubev2v/installer-driver/internal/models"
)

type call struct {
	operation     models.Operation
	target        models.Target
	expectFailure bool
	force         bool
}

// fakeDriver answers every call with outcome, or with err when set.
type fakeDriver struct {
	logDir  string
	outcome models.Outcome
	err     error
	delay   time.Duration

	mu    sync.Mutex
	calls []call
}

func (f *fakeDriver) result(op models.Operation) models.Result {
	return models.Result{Outcome: f.outcome, ExitCode: 0, LogPath: filepath.Join(f.logDir, op.LogFile())}
}

func (f *fakeDriver) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeDriver) AttemptInstall(ctx context.Context, target models.Target, expectFailure, force bool) (models.Result, error) {
	f.record(call{operation: models.OperationInstall, target: target, expectFailure: expectFailure, force: force})
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.result(models.OperationInstall), f.err
}

func (f *fakeDriver) AttemptUninstall(ctx context.Context, target models.Target, expectFailure bool) (models.Result, error) {
	f.record(call{operation: models.OperationUninstall, target: target, expectFailure: expectFailure})
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.result(models.OperationUninstall), f.err
}

func (f *fakeDriver) Run(ctx context.Context, target models.Target) (models.Result, error) {
	f.record(call{operation: models.OperationUITests, target: target})
	return f.result(models.OperationUITests), f.err
}

func (f *fakeDriver) RunHSUIA(ctx context.Context) (models.Result, error) {
	f.record(call{operation: models.OperationHSUIA})
	return f.result(models.OperationHSUIA), f.err
}

type fakeRecorder struct {
	mu   sync.Mutex
	runs []models.Run
	err  error
}

func (f *fakeRecorder) Save(ctx context.Context, run *models.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.runs = append(f.runs, *run)
	return nil
}
