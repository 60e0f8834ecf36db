package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/kubev2v/installer-driver/internal/driver"
	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/pkg/vmware"
	"github.com/kubev2v/installer-driver/test/e2e/infra"
	"github.com/kubev2v/installer-driver/test/e2e/service"
)

var _ = Describe("installer e2e", Ordered, func() {
	var (
		ctx    context.Context
		target infra.Target
		logDir string
	)

	BeforeAll(func() {
		ctx = context.Background()

		var err error
		target, err = infraManager.StartVcenter()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(infraManager.StopVcenter)

		logDir = cfg.LogDir
		if logDir == "" {
			logDir, err = os.MkdirTemp("", "installer-e2e-*")
			Expect(err).NotTo(HaveOccurred())
			if !cfg.KeepLogs {
				DeferCleanup(os.RemoveAll, logDir)
			}
		}
		zap.S().Infow("transcripts", "dir", logDir)
	})

	Context("vCenter", func() {
		It("should pass the preflight", func() {
			report, err := vmware.Preflight(ctx, target.Host, target.Username, target.Password, 2*time.Minute)

			Expect(err).NotTo(HaveOccurred())
			Expect(report.Thumbprint).To(MatchRegexp(`^([0-9A-F]{2}:){19}[0-9A-F]{2}$`))
			Expect(report.APIVersion).NotTo(BeEmpty())
		})

		It("should reject wrong credentials without retrying", func() {
			_, err := vmware.WaitForLogin(ctx, target.Host, target.Username, target.Password+"-wrong", time.Minute)

			Expect(vmware.IsInvalidLogin(err)).To(BeTrue())
		})
	})

	Context("installer", Ordered, func() {
		var svc *service.DriverSvc

		modelTarget := func(trust bool) models.Target {
			t := models.Target{
				Host:             target.Host,
				Username:         target.Username,
				Password:         target.Password,
				TrustFingerprint: trust,
			}
			if !trust {
				thumbprint, err := vmware.Thumbprint(target.Host)
				Expect(err).NotTo(HaveOccurred())
				t.Fingerprint = thumbprint
			}
			return t
		}

		expectRegistered := func(expected bool) {
			if cfg.ExtensionKey == "" {
				return
			}
			c, err := vmware.Login(ctx, target.Host, target.Username, target.Password)
			Expect(err).NotTo(HaveOccurred())
			defer func() { _ = c.Logout(ctx) }()

			registered, err := vmware.IsRegistered(ctx, c.Client, cfg.ExtensionKey)
			Expect(err).NotTo(HaveOccurred())
			Expect(registered).To(Equal(expected))
		}

		BeforeAll(func() {
			if cfg.InstallerDir == "" {
				Skip("no installer dir configured")
			}

			var err error
			svc, err = service.NewDriverService(ctx, cfg.InstallerDir, logDir, driver.WithTimeout(cfg.Timeout))
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(svc.Close)
		})

		// Given a vCenter without the plugin
		// When install.sh runs with a trusted fingerprint
		// Then it reports success and the extension is registered
		It("should install the plugin", func() {
			run, err := svc.Install(ctx, modelTarget(true), false, true)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.Outcome).To(Equal(models.OutcomeSuccess))
			Expect(filepath.Join(logDir, "install.log")).To(BeARegularFile())
			expectRegistered(true)
		})

		It("should reinstall with a manual fingerprint", func() {
			run, err := svc.Install(ctx, modelTarget(false), false, true)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.Outcome).To(Equal(models.OutcomeSuccess))
		})

		It("should fail the install with a wrong password", func() {
			t := modelTarget(true)
			t.Password += "-wrong"

			run, err := svc.Install(ctx, t, true, true)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.Outcome).To(Equal(models.OutcomeExpectedFailure))
		})

		It("should uninstall the plugin", func() {
			run, err := svc.Uninstall(ctx, modelTarget(true), false)

			Expect(err).NotTo(HaveOccurred())
			Expect(run.Outcome).To(Equal(models.OutcomeSuccess))
			expectRegistered(false)
		})

		It("should have recorded every run", func() {
			runs, err := svc.Runs(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(4))
			Expect(runs[0].Operation).To(Equal(models.OperationUninstall))
		})
	})
})
