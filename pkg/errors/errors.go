package errors

import (
	"errors"
	"fmt"
)

// EnvironmentError is returned when the driver cannot set up its session:
// the log file cannot be opened or the executable cannot be spawned.
type EnvironmentError struct {
	Op   string
	Path string
	Err  error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

func NewLogFileError(path string, err error) *EnvironmentError {
	return &EnvironmentError{Op: "open log file", Path: path, Err: err}
}

func NewSpawnError(path string, err error) *EnvironmentError {
	return &EnvironmentError{Op: "spawn", Path: path, Err: err}
}

func IsEnvironmentError(err error) bool {
	var e *EnvironmentError
	return errors.As(err, &e)
}

// ProtocolError is returned when the child never produced what the driver
// was waiting for. Pending holds the unread output at the time of failure.
type ProtocolError struct {
	State   string
	Waiting []string
	Pending string
	Err     error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol mismatch in state %s waiting for %q: %v", e.State, e.Waiting, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func NewProtocolError(state string, waiting []string, pending string, err error) *ProtocolError {
	return &ProtocolError{State: state, Waiting: waiting, Pending: pending, Err: err}
}

func IsProtocolError(err error) bool {
	var e *ProtocolError
	return errors.As(err, &e)
}

type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

func NewMissingFingerprintError() *ConfigurationError {
	return NewConfigurationError("fingerprint", "a manual SHA-1 fingerprint is required when the host fingerprint is not trusted")
}

func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

type ResourceNotFoundError struct {
	Resource string
	ID       string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func NewRunNotFoundError(id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Resource: "run", ID: id}
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}
