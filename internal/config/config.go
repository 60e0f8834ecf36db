package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/kubev2v/installer-driver/internal/models"
	srvErrors "github.com/kubev2v/installer-driver/pkg/errors"
	"github.com/kubev2v/installer-driver/pkg/images"
)

type Configuration struct {
	Target      Target
	Installer   Installer
	Runner      Runner
	Store       Store
	Environment string `default:"prod"    debugmap:"visible"`
	LogFormat   string `default:"console" debugmap:"visible"`
	LogLevel    string `default:"info"    debugmap:"visible"`
}

type Target struct {
	Host             string `debugmap:"visible"`
	Username         string `debugmap:"visible"`
	Password         string `debugmap:"hidden"`
	TrustFingerprint bool   `default:"true" debugmap:"visible"`
	Fingerprint      string `debugmap:"visible"`
}

type Installer struct {
	Dir     string        `default:"."    debugmap:"visible"`
	LogDir  string        `default:"."    debugmap:"visible"`
	Timeout time.Duration `default:"180s" debugmap:"visible"`
}

type Runner struct {
	Command       string        `default:"mvn"                           debugmap:"visible"`
	Args          []string      `default:"[\"test\"]"                    debugmap:"visible"`
	ParamPrefix   string        `default:"-D"                            debugmap:"visible"`
	HostParam     string        `debugmap:"visible"`
	UsernameParam string        `default:"env.VC_ADMIN_USERNAME"         debugmap:"visible"`
	PasswordParam string        `default:"env.VC_ADMIN_PASSWORD"         debugmap:"visible"`
	Runlist       string        `default:"work/runlists/default.runlist" debugmap:"visible"`
	Dir           string        `default:"."                             debugmap:"visible"`
	UIRoot        string        `debugmap:"visible"`
	TestbedInfo   string        `default:"testbed-information"           debugmap:"visible"`
	Timeout       time.Duration `default:"1800s"                         debugmap:"visible"`
}

type Store struct {
	Path string `default:"installer-driver.duckdb" debugmap:"visible"`
}

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Target

// Load overlays the values known to v on top of the defaults.
func Load(v *viper.Viper) *Configuration {
	cfg := NewConfigurationWithOptionsAndDefaults()

	setString(v, KeyHost, &cfg.Target.Host)
	setString(v, KeyUsername, &cfg.Target.Username)
	setString(v, KeyPassword, &cfg.Target.Password)
	if v.IsSet(KeyTrustFingerprint) {
		cfg.Target.TrustFingerprint = v.GetBool(KeyTrustFingerprint)
	}
	setString(v, KeyFingerprint, &cfg.Target.Fingerprint)

	setString(v, KeyInstallerDir, &cfg.Installer.Dir)
	setString(v, KeyLogDir, &cfg.Installer.LogDir)
	setDuration(v, KeyTimeout, &cfg.Installer.Timeout)

	setString(v, KeyRunnerCommand, &cfg.Runner.Command)
	if v.IsSet(KeyRunnerArgs) {
		cfg.Runner.Args = v.GetStringSlice(KeyRunnerArgs)
	}
	setString(v, KeyRunnerParamPrefix, &cfg.Runner.ParamPrefix)
	setString(v, KeyRunnerHostParam, &cfg.Runner.HostParam)
	setString(v, KeyRunnerUsernameParam, &cfg.Runner.UsernameParam)
	setString(v, KeyRunnerPasswordParam, &cfg.Runner.PasswordParam)
	setString(v, KeyRunnerRunlist, &cfg.Runner.Runlist)
	setString(v, KeyRunnerDir, &cfg.Runner.Dir)
	setString(v, KeyRunnerUIRoot, &cfg.Runner.UIRoot)
	setString(v, KeyTestbedInfo, &cfg.Runner.TestbedInfo)
	setDuration(v, KeyLongTimeout, &cfg.Runner.Timeout)

	setString(v, KeyDB, &cfg.Store.Path)
	setString(v, KeyEnvironment, &cfg.Environment)
	setString(v, KeyLogFormat, &cfg.LogFormat)
	setString(v, KeyLogLevel, &cfg.LogLevel)

	return cfg
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setDuration(v *viper.Viper, key string, dst *time.Duration) {
	if v.IsSet(key) {
		*dst = v.GetDuration(key)
	}
}

// Validate checks the settings shared by every command.
func (c *Configuration) Validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return srvErrors.NewConfigurationError("log-format", fmt.Sprintf("%q must be 'console' or 'json'", c.LogFormat))
	}
	if _, err := images.ParseEnvironment(c.Environment); err != nil {
		return srvErrors.NewConfigurationError("environment", err.Error())
	}
	if c.Installer.Timeout <= 0 {
		return srvErrors.NewConfigurationError("timeout", "must be positive")
	}
	if c.Runner.Timeout <= 0 {
		return srvErrors.NewConfigurationError("long-timeout", "must be positive")
	}
	if c.Runner.UsernameParam == "" || c.Runner.PasswordParam == "" {
		return srvErrors.NewConfigurationError(KeyRunnerUsernameParam, "credential property names must not be empty")
	}
	return nil
}

// ValidateTarget checks the settings needed to drive the installer.
func (c *Configuration) ValidateTarget() error {
	return ValidateTarget(c.ModelTarget())
}

func ValidateTarget(t models.Target) error {
	if t.Host == "" {
		return srvErrors.NewConfigurationError("host", "target vCenter host is empty")
	}
	if t.Username == "" {
		return srvErrors.NewConfigurationError("username", "administrator username is empty")
	}
	if !t.TrustFingerprint && t.Fingerprint == "" {
		return srvErrors.NewMissingFingerprintError()
	}
	return nil
}

func (c *Configuration) ModelTarget() models.Target {
	return models.Target{
		Host:             c.Target.Host,
		Username:         c.Target.Username,
		Password:         c.Target.Password,
		TrustFingerprint: c.Target.TrustFingerprint,
		Fingerprint:      c.Target.Fingerprint,
	}
}
