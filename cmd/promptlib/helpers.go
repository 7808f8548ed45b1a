// Shared helpers for promptlib CLI commands.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/mesh-intelligence/promptlib/internal/codec"
	"github.com/mesh-intelligence/promptlib/internal/output"
	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError attaches a process exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

func systemError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps err to a process exit code. Errors without a code come
// from cobra's flag and argument checks and count as user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// classify wraps a catalog error with the matching exit code.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	switch {
	case errors.Is(err, types.ErrValidation),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidSortMode),
		errors.Is(err, types.ErrInvalidTagValue),
		errors.Is(err, codec.ErrMalformedDocument),
		errors.Is(err, codec.ErrUnknownFormat),
		errors.Is(err, fs.ErrNotExist):
		return userError(err)
	}
	return systemError(err)
}

// notFound is the user error for a missing prompt ID.
func notFound(id string) error {
	return userError(fmt.Errorf("%w: %q", types.ErrNotFound, id))
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	s, err := output.JSON(v)
	if err != nil {
		return systemError(fmt.Errorf("marshal JSON: %w", err))
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

// printAdvisories writes tag advisories to w, one warning per line.
func printAdvisories(w io.Writer, advisories []types.Advisory) {
	if len(advisories) == 0 {
		return
	}
	fmt.Fprintln(w, output.Advisories(advisories))
}
