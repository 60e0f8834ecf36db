package config_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/kubev2v/installer-driver/internal/config"
	srvErrors "github.com/kubev2v/installer-driver/pkg/errors"
)

var _ = Describe("Configuration", func() {
	Context("defaults", func() {
		It("should populate defaults from struct tags", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults()

			Expect(cfg.Target.TrustFingerprint).To(BeTrue())
			Expect(cfg.Installer.Timeout).To(Equal(180 * time.Second))
			Expect(cfg.Runner.Timeout).To(Equal(1800 * time.Second))
			Expect(cfg.Runner.Command).To(Equal("mvn"))
			Expect(cfg.Runner.Args).To(Equal([]string{"test"}))
			Expect(cfg.Runner.ParamPrefix).To(Equal("-D"))
			Expect(cfg.Runner.HostParam).To(BeEmpty())
			Expect(cfg.Runner.UsernameParam).To(Equal("env.VC_ADMIN_USERNAME"))
			Expect(cfg.Runner.PasswordParam).To(Equal("env.VC_ADMIN_PASSWORD"))
			Expect(cfg.Runner.Runlist).To(Equal("work/runlists/default.runlist"))
			Expect(cfg.Runner.TestbedInfo).To(Equal("testbed-information"))
			Expect(cfg.Environment).To(Equal("prod"))
			Expect(cfg.LogFormat).To(Equal("console"))
			Expect(cfg.Validate()).To(Succeed())
		})
	})

	Context("Load", func() {
		It("should overlay values set in viper", func() {
			v := viper.New()
			v.Set(config.KeyHost, "10.0.0.5")
			v.Set(config.KeyUsername, "administrator@vsphere.local")
			v.Set(config.KeyTrustFingerprint, false)
			v.Set(config.KeyFingerprint, "AA:BB")
			v.Set(config.KeyTimeout, "30s")
			v.Set(config.KeyRunnerArgs, []string{"clean", "verify"})

			cfg := config.Load(v)

			Expect(cfg.Target.Host).To(Equal("10.0.0.5"))
			Expect(cfg.Target.TrustFingerprint).To(BeFalse())
			Expect(cfg.Target.Fingerprint).To(Equal("AA:BB"))
			Expect(cfg.Installer.Timeout).To(Equal(30 * time.Second))
			Expect(cfg.Runner.Args).To(Equal([]string{"clean", "verify"}))
			Expect(cfg.Installer.LogDir).To(Equal("."))
		})
	})

	Context("Validate", func() {
		It("should reject an unknown log format", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults()
			cfg.LogFormat = "xml"

			err := cfg.Validate()

			Expect(srvErrors.IsConfigurationError(err)).To(BeTrue())
		})

		It("should reject an unknown environment", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults()
			cfg.Environment = "qa"

			Expect(srvErrors.IsConfigurationError(cfg.Validate())).To(BeTrue())
		})

		It("should reject a non positive timeout", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults()
			cfg.Installer.Timeout = 0

			Expect(cfg.Validate()).NotTo(Succeed())
		})
	})

	Context("ValidateTarget", func() {
		var cfg *config.Configuration

		BeforeEach(func() {
			cfg = config.NewConfigurationWithOptionsAndDefaults()
			cfg.Target.Host = "10.0.0.5"
			cfg.Target.Username = "administrator@vsphere.local"
			cfg.Target.Password = "secret"
		})

		It("should accept a trusted target", func() {
			Expect(cfg.ValidateTarget()).To(Succeed())
		})

		It("should require a host and a username", func() {
			cfg.Target.Host = ""
			Expect(cfg.ValidateTarget()).NotTo(Succeed())

			cfg.Target.Host = "10.0.0.5"
			cfg.Target.Username = ""
			Expect(cfg.ValidateTarget()).NotTo(Succeed())
		})

		// Given a target whose fingerprint is not trusted
		// When no manual fingerprint is supplied
		// Then validation fails instead of guessing one
		It("should require a fingerprint when the host is not trusted", func() {
			cfg.Target.TrustFingerprint = false

			err := cfg.ValidateTarget()

			Expect(srvErrors.IsConfigurationError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("fingerprint"))

			cfg.Target.Fingerprint = "AA:BB:CC"
			Expect(cfg.ValidateTarget()).To(Succeed())
		})
	})

	It("should leave the password out of the debug map", func() {
		cfg := config.NewConfigurationWithOptionsAndDefaults()
		cfg.Target.Password = "secret"

		Expect(cfg.Target.DebugMap()).NotTo(HaveKey("Password"))
		Expect(cfg.Target.DebugMap()).To(HaveKeyWithValue("Host", "(empty)"))
		Expect(cfg.DebugMap()).To(HaveKey("Target"))
		Expect(cfg.DebugMap()).To(HaveKey("LogLevel"))
	})

	It("should build a configuration from options on top of the defaults", func() {
		cfg := config.NewConfigurationWithOptionsAndDefaults(
			config.WithTarget(*config.NewTargetWithOptions(
				config.WithHost("vc.example.com"),
				config.WithTrustFingerprint(false),
				config.WithFingerprint("AA:BB"),
			)),
			config.WithLogLevel("debug"),
		)

		Expect(cfg.Target.Host).To(Equal("vc.example.com"))
		Expect(cfg.Target.TrustFingerprint).To(BeFalse())
		Expect(cfg.LogLevel).To(Equal("debug"))
		Expect(cfg.Installer.Timeout).To(Equal(180 * time.Second))
	})
})
