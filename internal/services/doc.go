// Package services implements the business logic layer of the installer driver.
//
// Services sit between the CLI commands and the driver, runner and store
// packages. They decide what gets recorded and how independent runs are
// spread over workers.
//
// # Service Dependency Graph
//
//	cmd (cobra commands)
//	    │
//	    ▼
//	Services Layer
//	    ├── RunService ─────► Driver, Runner, RunStore
//	    ├── MatrixService ──► Scheduler, DriverFactory, RunService
//	    └── HistoryService ─► Store, xlsx report
//
// # RunService
//
// RunService executes one operation (install, uninstall, ngc-ui-tests or hsuia-tests) and
// records it. The run is recorded even when the call returned an error: the
// error text is stored next to the outcome, and the error itself is returned
// to the caller unchanged so that protocol and environment faults still fail
// the test that asked for the run.
//
//	┌─────────────┐    ┌─────────────────┐    ┌──────────────┐
//	│  newRun()   │───►│ driver / runner │───►│   record()   │
//	│ StartedAt   │    │   Result, err   │    │ FinishedAt   │
//	└─────────────┘    └─────────────────┘    │ Save(run)    │
//	                                          └──────────────┘
//
// # MatrixService
//
// MatrixService runs a list of scenarios through a scheduler.Scheduler. A
// driver owns one child process at a time, so every scenario gets a fresh
// driver built by the DriverFactory, writing into its own log directory:
//
//	<base-log-dir>/00-<scenario-slug>/install.log
//	<base-log-dir>/01-<scenario-slug>/uninstall.log
//
// Results come back in scenario order whatever order the workers finish in.
//
// # HistoryService
//
// HistoryService lists, prunes and exports recorded runs. Export writes an
// xlsx workbook with one row per run (see ExportRuns).
//
// # Thread Safety
//
// RunService and HistoryService are stateless apart from their dependencies.
// MatrixService creates one scheduler per Run call.
package services
