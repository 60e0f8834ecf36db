// Package config defines the configuration structure for the installer driver.
//
// Configuration is organized into logical sections (Target, Installer, Runner, Store)
// and is populated from struct-tag defaults (creasty/defaults) overlaid with
// command-line flags and INSTALLER_DRIVER_* environment variables through viper.
//
// # Configuration Structure
//
//	Configuration
//	├── Target         - vCenter coordinates and trust decision
//	├── Installer      - install.sh / uninstall.sh location and timeout
//	├── Runner         - NGC/UI build-tool invocation
//	├── Store          - Run history database
//	├── Environment    - dev, stage or prod (image names)
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Target Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────────┐
//	│ Field            │ Default │ Description                                │
//	├──────────────────┼─────────┼────────────────────────────────────────────┤
//	│ Host             │ ""      │ vCenter address (required)                 │
//	│ Username         │ ""      │ vCenter administrator (required)           │
//	│ Password         │ ""      │ vCenter administrator password             │
//	│ TrustFingerprint │ true    │ Answer "yes" to the trust prompt           │
//	│ Fingerprint      │ ""      │ SHA-1 thumbprint, required when not trusted│
//	└──────────────────┴─────────┴────────────────────────────────────────────┘
//
// # Installer Configuration
//
//	┌─────────┬─────────┬──────────────────────────────────────────────┐
//	│ Field   │ Default │ Description                                  │
//	├─────────┼─────────┼──────────────────────────────────────────────┤
//	│ Dir     │ "."     │ Directory holding install.sh / uninstall.sh  │
//	│ LogDir  │ "."     │ Directory receiving <operation>.log          │
//	│ Timeout │ 180s    │ Bound on every prompt wait                   │
//	└─────────┴─────────┴──────────────────────────────────────────────┘
//
// # Runner Configuration
//
//	┌───────────────┬─────────────────────────────────┬──────────────────────────────────────┐
//	│ Field         │ Default                         │ Description                          │
//	├───────────────┼─────────────────────────────────┼──────────────────────────────────────┤
//	│ Command       │ "mvn"                           │ Build tool executable                │
//	│ Args          │ ["test"]                        │ NGC arguments before the credentials │
//	│ ParamPrefix   │ "-D"                            │ Prefix of each key=value property    │
//	│ HostParam     │ ""                              │ Host property, empty to leave it out │
//	│ UsernameParam │ "env.VC_ADMIN_USERNAME"         │ Username property                    │
//	│ PasswordParam │ "env.VC_ADMIN_PASSWORD"         │ Password property                    │
//	│ Runlist       │ "work/runlists/default.runlist" │ HSUIA runlist                        │
//	│ Dir           │ "."                             │ Working directory of the build       │
//	│ UIRoot        │ ""                              │ UI sources; selects Dir from testbed │
//	│ TestbedInfo   │ "testbed-information"           │ TEST_VSPHERE_VER=65 picks h5c tests  │
//	│ Timeout       │ 1800s                           │ Bound on the wait for end of output  │
//	└───────────────┴─────────────────────────────────┴──────────────────────────────────────┘
//
// # Validation
//
// Validate checks settings shared by every command. ValidateTarget checks the
// settings needed to drive the installer; an untrusted fingerprint without a
// manual thumbprint is rejected there instead of being guessed at.
//
// # Code Generation
//
// The package uses optgen to generate functional option helpers:
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Target
//
// Generated helpers include NewConfigurationWithOptionsAndDefaults, the
// With* options and DebugMap.
//
// # Debug Logging
//
// Fields are tagged with `debugmap:"visible"`; the password is tagged
// `debugmap:"hidden"` and never appears in DebugMap():
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
