// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package rqerr models the error record the RaptorQ processor raises for
// every failure: an operation name, a coarse kind, a message and an
// optional wrapped cause.
package rqerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is one of the error categories the processor can raise.
type Kind int

const (
	// InvalidArgument covers empty paths and empty encoder parameters.
	InvalidArgument Kind = iota
	// FilesystemRead covers unreadable input files or directory entries.
	FilesystemRead
	// FilesystemWrite covers output files or directories that can't be created or written.
	FilesystemWrite
	// PathResolution covers paths with no parent, or paths that aren't valid text.
	PathResolution
	// DecodeExhausted covers directory iteration completing without reconstruction.
	DecodeExhausted
	// SerializationFailure covers manifest JSON encoding failures.
	SerializationFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case FilesystemRead:
		return "filesystem read"
	case FilesystemWrite:
		return "filesystem write"
	case PathResolution:
		return "path resolution"
	case DecodeExhausted:
		return "decode exhausted"
	case SerializationFailure:
		return "serialization failure"
	default:
		return "unknown"
	}
}

// Error is the error record raised by a Processor operation. It carries the
// operation that failed, a coarse Kind, a short message, and the underlying
// cause (if any).
type Error struct {
	Op    string
	Kind  Kind
	Msg   string
	Path  string
	cause error
}

func (e *Error) Error() string {
	if e.Path != "" {
		if e.cause != nil {
			return fmt.Sprintf("in [%s], error [%s] [path: %s] (internal error - %s)", e.Op, e.Msg, e.Path, e.cause)
		}
		return fmt.Sprintf("in [%s], error [%s] [path: %s]", e.Op, e.Msg, e.Path)
	}
	if e.cause != nil {
		return fmt.Sprintf("in [%s], error [%s] (internal error - %s)", e.Op, e.Msg, e.cause)
	}
	return fmt.Sprintf("in [%s], error [%s]", e.Op, e.Msg)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// New builds an Error with no underlying cause.
func New(op string, kind Kind, msg string) *Error {
	return &Error{Op: op, Kind: kind, Msg: msg}
}

// Wrap builds an Error around a lower-level cause, using pkg/errors to
// capture a stack-annotated wrap of the original failure.
func Wrap(op string, kind Kind, msg string, cause error) *Error {
	return &Error{Op: op, Kind: kind, Msg: msg, cause: errors.Wrap(cause, msg)}
}

// WrapPath is Wrap plus the offending filesystem path, for the Filesystem*
// and PathResolution kinds.
func WrapPath(op string, kind Kind, msg string, path string, cause error) *Error {
	return &Error{Op: op, Kind: kind, Msg: msg, Path: path, cause: errors.Wrap(cause, msg)}
}
