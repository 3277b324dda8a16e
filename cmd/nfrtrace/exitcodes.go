package main

import (
	"errors"

	"nfrtrace/internal/domain"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, unknown variant)
	ExitDataError   = 3 // Data error (malformed requirements or gold matrix)
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCode maps an error returned from a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	switch {
	case errors.Is(err, domain.ErrUnknownVariant):
		return ExitConfigError
	case errors.Is(err, domain.ErrInvalidCorpus):
		return ExitDataError
	}
	return ExitError
}
