package services_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/internal/services"
	"github.com/kubev2v/installer-driver/pkg/console"
	srvErrors "github.com/kubev2v/installer-driver/pkg/errors"
)

var _ = Describe("RunService", func() {
	var (
		ctx      context.Context
		driver   *fakeDriver
		recorder *fakeRecorder
		svc      *services.RunService
		target   models.Target
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = &fakeDriver{logDir: "/logs", outcome: models.OutcomeSuccess}
		recorder = &fakeRecorder{}
		svc = services.NewRunService(driver, driver, recorder)
		target = models.Target{Host: "10.0.0.1", Username: "admin", Password: "pw", TrustFingerprint: true}
	})

	Context("Install", func() {
		// Given a driver reporting success
		// When we install
		// Then the run is recorded with the outcome and the flags
		It("should record a successful install", func() {
			run, err := svc.Install(ctx, target, false, true)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.ID).NotTo(Equal(uuid.Nil))
			Expect(run.Operation).To(Equal(models.OperationInstall))
			Expect(run.Outcome).To(Equal(models.OutcomeSuccess))
			Expect(run.Force).To(BeTrue())
			Expect(run.Trust).To(BeTrue())
			Expect(run.LogPath).To(Equal("/logs/install.log"))
			Expect(run.Passed()).To(BeTrue())
			Expect(run.FinishedAt).NotTo(BeTemporally("<", run.StartedAt))

			Expect(recorder.runs).To(HaveLen(1))
			Expect(recorder.runs[0].ID).To(Equal(run.ID))
			Expect(driver.calls).To(ConsistOf(call{operation: models.OperationInstall, target: target, force: true}))
		})

		// Given a driver failing with a protocol error
		// When we install
		// Then the error reaches the caller unchanged and the run is still recorded
		It("should record and return protocol errors", func() {
			driver.outcome = ""
			driver.err = srvErrors.NewProtocolError("AwaitHost", []string{"x"}, "", console.ErrTimeout)

			run, err := svc.Install(ctx, target, false, false)

			Expect(srvErrors.IsProtocolError(err)).To(BeTrue())
			Expect(err).To(MatchError(console.ErrTimeout))
			Expect(run.Error).To(ContainSubstring("AwaitHost"))
			Expect(run.Passed()).To(BeFalse())
			Expect(recorder.runs).To(HaveLen(1))
		})

		It("should not fail the run when recording fails", func() {
			recorder.err = errors.New("disk full")

			run, err := svc.Install(ctx, target, false, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.Outcome).To(Equal(models.OutcomeSuccess))
		})

		It("should work without a recorder", func() {
			svc = services.NewRunService(driver, driver, nil)

			run, err := svc.Install(ctx, target, false, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.Outcome).To(Equal(models.OutcomeSuccess))
		})
	})

	Context("Uninstall", func() {
		It("should pass the expect-failure flag through", func() {
			driver.outcome = models.OutcomeExpectedFailure

			run, err := svc.Uninstall(ctx, target, true)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.ExpectFailure).To(BeTrue())
			Expect(run.Passed()).To(BeTrue())
			Expect(driver.calls[0].expectFailure).To(BeTrue())
		})

		It("should not pass an unregister failure", func() {
			driver.outcome = models.OutcomeUnregisterFailed

			run, err := svc.Uninstall(ctx, target, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.Passed()).To(BeFalse())
		})
	})

	Context("UITests", func() {
		It("should record the runner result", func() {
			run, err := svc.UITests(ctx, target)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.Operation).To(Equal(models.OperationUITests))
			Expect(run.LogPath).To(Equal("/logs/ngc_tests.log"))
		})

		It("should fail when no runner is configured", func() {
			svc = services.NewRunService(driver, nil, recorder)

			run, err := svc.UITests(ctx, target)

			Expect(err).To(HaveOccurred())
			Expect(run.Error).NotTo(BeEmpty())
			Expect(recorder.runs).To(HaveLen(1))
		})
	})

	Context("HSUIATests", func() {
		It("should record the HSUIA run in the shared UI transcript", func() {
			run, err := svc.HSUIATests(ctx, target)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.Operation).To(Equal(models.OperationHSUIA))
			Expect(run.LogPath).To(Equal("/logs/ngc_tests.log"))
			Expect(driver.calls).To(ConsistOf(call{operation: models.OperationHSUIA}))
		})
	})

	Context("Execute", func() {
		DescribeTable("should dispatch on the scenario operation",
			func(op models.Operation) {
				_, err := svc.Execute(ctx, models.Scenario{Name: "x", Operation: op, Target: target})

				Expect(err).NotTo(HaveOccurred())
				Expect(driver.calls).To(HaveLen(1))
				Expect(driver.calls[0].operation).To(Equal(op))
			},
			Entry("install", models.OperationInstall),
			Entry("uninstall", models.OperationUninstall),
			Entry("ui tests", models.OperationUITests),
			Entry("hsuia tests", models.OperationHSUIA),
		)
	})
})
