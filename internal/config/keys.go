package config

// Flag and viper keys. Environment variables use the INSTALLER_DRIVER_ prefix
// with dashes turned into underscores.
const (
	EnvPrefix = "INSTALLER_DRIVER"

	KeyHost             = "host"
	KeyUsername         = "username"
	KeyPassword         = "password"
	KeyTrustFingerprint = "trust-fingerprint"
	KeyFingerprint      = "fingerprint"

	KeyInstallerDir = "installer-dir"
	KeyLogDir       = "log-dir"
	KeyTimeout      = "timeout"

	KeyRunnerCommand       = "runner-command"
	KeyRunnerArgs          = "runner-args"
	KeyRunnerParamPrefix   = "runner-param-prefix"
	KeyRunnerHostParam     = "runner-host-param"
	KeyRunnerUsernameParam = "runner-username-param"
	KeyRunnerPasswordParam = "runner-password-param"
	KeyRunnerRunlist       = "runner-runlist"
	KeyRunnerDir           = "runner-dir"
	KeyRunnerUIRoot        = "runner-ui-root"
	KeyTestbedInfo         = "testbed-info"
	KeyLongTimeout         = "long-timeout"

	KeyDB          = "db"
	KeyEnvironment = "environment"
	KeyLogFormat   = "log-format"
	KeyLogLevel    = "log-level"
)
