package services_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/internal/services"
)

var _ = Describe("MatrixService", func() {
	var (
		ctx      context.Context
		baseDir  string
		recorder *fakeRecorder
		mu       sync.Mutex
		drivers  map[string]*fakeDriver
		target   models.Target
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		baseDir, err = os.MkdirTemp("", "matrix-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, baseDir)

		recorder = &fakeRecorder{}
		drivers = map[string]*fakeDriver{}
		target = models.Target{Host: "10.0.0.1", Username: "admin", Password: "pw", TrustFingerprint: true}
	})

	factory := func(outcome func(dir string) models.Outcome) services.DriverFactory {
		return func(logDir string) (services.InstallerDriver, services.UIRunner) {
			d := &fakeDriver{logDir: logDir, outcome: outcome(logDir), delay: 50 * time.Millisecond}
			mu.Lock()
			drivers[logDir] = d
			mu.Unlock()
			return d, d
		}
	}

	// Given three scenarios
	// When the matrix runs them on two workers
	// Then each scenario gets its own driver and log directory and results keep input order
	It("should run every scenario with its own log directory", func() {
		m := services.NewMatrixService(factory(func(string) models.Outcome { return models.OutcomeSuccess }), recorder, baseDir, 2)
		scenarios := []models.Scenario{
			{Name: "install trusted", Operation: models.OperationInstall, Target: target},
			{Name: "install forced", Operation: models.OperationInstall, Target: target, Force: true},
			{Name: "uninstall", Operation: models.OperationUninstall, Target: target},
		}

		results := m.Run(ctx, scenarios)

		Expect(results).To(HaveLen(3))
		for i, r := range results {
			Expect(r.Scenario).To(Equal(scenarios[i]))
			Expect(r.Err).NotTo(HaveOccurred())
			Expect(r.Passed()).To(BeTrue())
			Expect(filepath.Dir(r.Run.LogPath)).To(Equal(m.LogDir(i, scenarios[i])))
			Expect(m.LogDir(i, scenarios[i])).To(BeADirectory())
		}
		Expect(results[0].Run.LogPath).To(HaveSuffix(filepath.Join("00-install-trusted", "install.log")))
		Expect(results[2].Run.LogPath).To(HaveSuffix(filepath.Join("02-uninstall", "uninstall.log")))
		Expect(drivers).To(HaveLen(3))
		Expect(recorder.runs).To(HaveLen(3))
	})

	It("should report scenarios that did not end as expected", func() {
		m := services.NewMatrixService(factory(func(dir string) models.Outcome {
			if filepath.Base(dir) == "01-bad-password" {
				return models.OutcomeSuccess
			}
			return models.OutcomeExpectedFailure
		}), recorder, baseDir, 2)

		results := m.Run(ctx, []models.Scenario{
			{Name: "good", Operation: models.OperationInstall, Target: target},
			{Name: "bad password", Operation: models.OperationInstall, Target: target, ExpectFailure: true},
		})

		Expect(results[0].Passed()).To(BeFalse())
		Expect(results[1].Passed()).To(BeFalse())
	})

	It("should carry driver errors into the result", func() {
		m := services.NewMatrixService(func(logDir string) (services.InstallerDriver, services.UIRunner) {
			d := &fakeDriver{logDir: logDir, err: errors.New("spawn failed")}
			return d, d
		}, recorder, baseDir, 1)

		results := m.Run(ctx, []models.Scenario{{Name: "x", Operation: models.OperationInstall, Target: target}})

		Expect(results[0].Err).To(MatchError("spawn failed"))
		Expect(results[0].Run).NotTo(BeNil())
		Expect(results[0].Run.Error).To(Equal("spawn failed"))
		Expect(results[0].Passed()).To(BeFalse())
	})

	It("should fail a scenario whose log directory cannot be created", func() {
		blocker := filepath.Join(baseDir, "file")
		Expect(os.WriteFile(blocker, nil, 0o644)).To(Succeed())
		m := services.NewMatrixService(factory(func(string) models.Outcome { return models.OutcomeSuccess }), recorder, blocker, 1)

		results := m.Run(ctx, []models.Scenario{{Name: "x", Operation: models.OperationInstall, Target: target}})

		Expect(results[0].Err).To(HaveOccurred())
		Expect(results[0].Run).To(BeNil())
	})
})
