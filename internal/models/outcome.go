package models

import "fmt"

// Outcome is the classified result of one driven interaction.
type Outcome string

const (
	// OutcomeSuccess - the installer printed its success marker
	OutcomeSuccess Outcome = "success"
	// OutcomeExpectedFailure - the installer rejected the input and printed its error marker
	OutcomeExpectedFailure Outcome = "expected-failure"
	// OutcomeUnregisterFailed - the uninstaller could not unregister the plugin
	OutcomeUnregisterFailed Outcome = "unregister-failed"
	// OutcomeUnexpectedError - output ended without any recognised terminal marker
	OutcomeUnexpectedError Outcome = "unexpected-error"
)

func (o Outcome) Value() string {
	return string(o)
}

func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeSuccess, OutcomeExpectedFailure, OutcomeUnregisterFailed, OutcomeUnexpectedError:
		return Outcome(s), nil
	default:
		return "", fmt.Errorf("invalid outcome: %s", s)
	}
}

// Operation names a driven invocation. It also names its log file.
type Operation string

const (
	OperationInstall   Operation = "install"
	OperationUninstall Operation = "uninstall"
	OperationUITests   Operation = "ngc-ui-tests"
	OperationHSUIA     Operation = "hsuia-tests"

	uiTestsLogFile = "ngc_tests.log"
)

// LogFile returns the transcript file name for the operation.
// Both UI test suites share one transcript.
func (o Operation) LogFile() string {
	if o.IsUITests() {
		return uiTestsLogFile
	}
	return string(o) + ".log"
}

// IsUITests reports whether the operation runs a UI test build instead of
// an installer script.
func (o Operation) IsUITests() bool {
	return o == OperationUITests || o == OperationHSUIA
}

// Script returns the installer script name for install and uninstall.
func (o Operation) Script() string {
	return string(o) + ".sh"
}

func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case OperationInstall, OperationUninstall, OperationUITests, OperationHSUIA:
		return Operation(s), nil
	default:
		return "", fmt.Errorf("invalid operation: %s", s)
	}
}
