/*
Package main provides end-to-end testing infrastructure for the installer driver.

# Package Structure

	test/e2e/
	├── main.go          Entry point: flags, config, InfraManager setup, Ginkgo runner
	├── tests.go         Ginkgo test specs (vCenter preflight, installer lifecycle)
	├── doc.go           This file
	├── infra/           vCenter lifecycle
	│   ├── infra.go     InfraManager interface + Target + vcsim credentials
	│   ├── simulator.go SimulatorInfraManager (in-process vcsim)
	│   └── external.go  ExternalInfraManager (no-op, externally managed)
	└── service/
	    └── service.go   DriverSvc: RunService over the real installer with an in-memory history

# InfraManager

InfraManager is the central abstraction for the vCenter under test:

	type InfraManager interface {
	    StartVcenter() (Target, error)
	    StopVcenter() error
	}

Two implementations:
  - SimulatorInfraManager: starts a govmomi vcsim VPX inventory in process (default).
  - ExternalInfraManager: no-op; the vCenter is provisioned outside the suite.

Selected via the -infra-mode flag ("vcsim" or "external").

# Installer Specs

The installer specs drive the real install.sh and uninstall.sh found in
-installer-dir and are skipped when it is empty. They run in order:

	install (trusted) → install (manual fingerprint) → install (wrong password)
	    → uninstall → history check

With -extension-key set, the suite also logs in after install and uninstall
and checks that the extension is registered or gone.

# Running

	go run ./test/e2e
	go run ./test/e2e -infra-mode external -host 10.0.0.5 -password ... \
	    -installer-dir ./installer -extension-key com.example.vcenter-plugin
*/
package main
