package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubev2v/installer-driver/internal/models"
)

type InstallerDriver interface {
	AttemptInstall(ctx context.Context, target models.Target, expectFailure, force bool) (models.Result, error)
	AttemptUninstall(ctx context.Context, target models.Target, expectFailure bool) (models.Result, error)
}

type UIRunner interface {
	Run(ctx context.Context, target models.Target) (models.Result, error)
	RunHSUIA(ctx context.Context) (models.Result, error)
}

type RunRecorder interface {
	Save(ctx context.Context, run *models.Run) error
}

// RunService executes driver and runner operations and records every one of
// them, including the ones that ended in an error.
type RunService struct {
	driver   InstallerDriver
	runner   UIRunner
	recorder RunRecorder
	now      func() time.Time
}

// NewRunService wires the service. recorder may be nil when no history is
// kept; runner may be nil when UI tests are not configured.
func NewRunService(driver InstallerDriver, runner UIRunner, recorder RunRecorder) *RunService {
	return &RunService{
		driver:   driver,
		runner:   runner,
		recorder: recorder,
		now:      time.Now,
	}
}

func (s *RunService) Install(ctx context.Context, target models.Target, expectFailure, force bool) (*models.Run, error) {
	run := s.newRun(models.OperationInstall, target)
	run.ExpectFailure = expectFailure
	run.Force = force

	result, err := s.driver.AttemptInstall(ctx, target, expectFailure, force)
	return s.record(ctx, run, result, err)
}

func (s *RunService) Uninstall(ctx context.Context, target models.Target, expectFailure bool) (*models.Run, error) {
	run := s.newRun(models.OperationUninstall, target)
	run.ExpectFailure = expectFailure

	result, err := s.driver.AttemptUninstall(ctx, target, expectFailure)
	return s.record(ctx, run, result, err)
}

func (s *RunService) UITests(ctx context.Context, target models.Target) (*models.Run, error) {
	run := s.newRun(models.OperationUITests, target)
	if s.runner == nil {
		return s.record(ctx, run, models.Result{ExitCode: -1}, errors.New("ui test runner is not configured"))
	}

	result, err := s.runner.Run(ctx, target)
	return s.record(ctx, run, result, err)
}

// HSUIATests runs the HSUIA runlist. target is only recorded.
func (s *RunService) HSUIATests(ctx context.Context, target models.Target) (*models.Run, error) {
	run := s.newRun(models.OperationHSUIA, target)
	if s.runner == nil {
		return s.record(ctx, run, models.Result{ExitCode: -1}, errors.New("ui test runner is not configured"))
	}

	result, err := s.runner.RunHSUIA(ctx)
	return s.record(ctx, run, result, err)
}

// Execute runs one scenario.
func (s *RunService) Execute(ctx context.Context, sc models.Scenario) (*models.Run, error) {
	switch sc.Operation {
	case models.OperationInstall:
		return s.Install(ctx, sc.Target, sc.ExpectFailure, sc.Force)
	case models.OperationUninstall:
		return s.Uninstall(ctx, sc.Target, sc.ExpectFailure)
	case models.OperationHSUIA:
		return s.HSUIATests(ctx, sc.Target)
	default:
		return s.UITests(ctx, sc.Target)
	}
}

func (s *RunService) newRun(op models.Operation, target models.Target) *models.Run {
	return &models.Run{
		ID:        uuid.New(),
		Operation: op,
		Host:      target.Host,
		Username:  target.Username,
		Trust:     target.TrustFingerprint,
		StartedAt: s.now(),
	}
}

// record fills run from the call result and stores it. The call error is
// returned unchanged; a failure to store the run is only logged.
func (s *RunService) record(ctx context.Context, run *models.Run, result models.Result, callErr error) (*models.Run, error) {
	run.FinishedAt = s.now()
	run.Outcome = result.Outcome
	run.ExitCode = result.ExitCode
	run.LogPath = result.LogPath
	if callErr != nil {
		run.Error = callErr.Error()
	}

	log := zap.S().Named("run_service")
	if s.recorder != nil {
		if err := s.recorder.Save(context.WithoutCancel(ctx), run); err != nil {
			log.Errorw("failed to record run", "operation", run.Operation, "error", err)
		}
	}

	log.Infow("run finished",
		"id", run.ID,
		"operation", run.Operation,
		"outcome", run.Outcome,
		"passed", run.Passed(),
		"duration", run.Duration(),
	)

	return run, callErr
}
