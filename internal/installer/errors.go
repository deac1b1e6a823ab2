package installer

import (
	"errors"
	"fmt"
)

// ErrorKind classifies per-tool install failures. These are recoverable at
// the orchestrator level; the run continues past them.
type ErrorKind string

const (
	ErrKindNetwork    ErrorKind = "network"
	ErrKindPermission ErrorKind = "permission"
	ErrKindChecksum   ErrorKind = "checksum"
	ErrKindExit       ErrorKind = "exit"
	ErrKindTimeout    ErrorKind = "timeout"
)

// InstallError wraps a failure from one tool's install attempt.
type InstallError struct {
	Tool string
	Kind ErrorKind
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install %s (%s): %v", e.Tool, e.Kind, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Kind extracts the failure classification from an error chain. It returns
// the empty string when the error is not an InstallError.
func Kind(err error) ErrorKind {
	var ie *InstallError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return ""
}

func installError(tool string, kind ErrorKind, err error) *InstallError {
	return &InstallError{Tool: tool, Kind: kind, Err: err}
}
