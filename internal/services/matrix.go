package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/internal/util"
	"github.com/kubev2v/installer-driver/pkg/scheduler"
)

// DriverFactory builds a driver and a runner writing their logs to logDir.
type DriverFactory func(logDir string) (InstallerDriver, UIRunner)

// ScenarioResult pairs a scenario with its recorded run.
type ScenarioResult struct {
	Scenario models.Scenario
	Run      *models.Run
	Err      error
}

// Passed reports whether the scenario ended the way it expected to.
func (r ScenarioResult) Passed() bool {
	return r.Err == nil && r.Run != nil && r.Run.Passed()
}

// MatrixService runs independent scenarios concurrently. Every scenario gets
// its own driver and its own log directory under baseLogDir.
type MatrixService struct {
	factory    DriverFactory
	recorder   RunRecorder
	baseLogDir string
	workers    int
}

func NewMatrixService(factory DriverFactory, recorder RunRecorder, baseLogDir string, workers int) *MatrixService {
	return &MatrixService{
		factory:    factory,
		recorder:   recorder,
		baseLogDir: baseLogDir,
		workers:    workers,
	}
}

// LogDir returns the log directory of the i-th scenario.
func (m *MatrixService) LogDir(i int, sc models.Scenario) string {
	return filepath.Join(m.baseLogDir, fmt.Sprintf("%02d-%s", i, util.Slug(sc.Name)))
}

// Run executes scenarios and returns their results in input order.
func (m *MatrixService) Run(ctx context.Context, scenarios []models.Scenario) []ScenarioResult {
	sched := scheduler.NewScheduler[*models.Run](m.workers)
	defer sched.Close()

	log := zap.S().Named("matrix_service")

	works := make([]scheduler.Work[*models.Run], 0, len(scenarios))
	for i, sc := range scenarios {
		dir := m.LogDir(i, sc)
		works = append(works, func(ctx context.Context) (*models.Run, error) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
			driver, runner := m.factory(dir)
			log.Infow("scenario started", "scenario", sc.Name, "operation", sc.Operation, "log_dir", dir)
			return NewRunService(driver, runner, m.recorder).Execute(ctx, sc)
		})
	}

	results := make([]ScenarioResult, len(scenarios))
	for i, r := range scheduler.RunAll(ctx, sched, works) {
		results[i] = ScenarioResult{Scenario: scenarios[i], Run: r.Data, Err: r.Err}
		log.Infow("scenario finished", "scenario", scenarios[i].Name, "passed", results[i].Passed(), "error", r.Err)
	}

	return results
}
