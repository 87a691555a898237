package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes of loading and generating.
var (
	// ErrMalformedInput indicates the source document could not be parsed as a model.
	ErrMalformedInput = errors.New("umlconf: malformed input")
	// ErrMissingName indicates a Class declaration without a name.
	ErrMissingName = errors.New("umlconf: class declaration without name")
	// ErrNoRootEntity indicates that no entity is flagged as root.
	ErrNoRootEntity = errors.New("umlconf: no root entity")
	// ErrMultipleRoots indicates that more than one entity is flagged as root.
	ErrMultipleRoots = errors.New("umlconf: multiple root entities")
	// ErrUnresolvedReference indicates a relationship endpoint naming an unknown entity.
	ErrUnresolvedReference = errors.New("umlconf: unresolved reference")
)

// MalformedInputError wraps a structural parse failure of the source document.
type MalformedInputError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	var b strings.Builder
	b.WriteString("umlconf: malformed input")
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// MissingNameError reports a Class declaration without a name attribute.
// Index is the zero-based position of the declaration among all Class elements.
type MissingNameError struct {
	Index int
}

// Error implements the error interface.
func (e *MissingNameError) Error() string {
	return fmt.Sprintf("umlconf: malformed input: class declaration #%d has no name", e.Index)
}

// Is reports whether the target matches ErrMissingName or ErrMalformedInput.
func (e *MissingNameError) Is(target error) bool {
	return target == ErrMissingName || target == ErrMalformedInput
}

// MultipleRootsError is returned when more than one entity claims to be the root.
type MultipleRootsError struct {
	Names []string
}

// Error implements the error interface.
func (e *MultipleRootsError) Error() string {
	return fmt.Sprintf("umlconf: multiple root entities: %s", strings.Join(e.Names, ", "))
}

// Is reports whether the target matches ErrMultipleRoots.
func (e *MultipleRootsError) Is(target error) bool {
	return target == ErrMultipleRoots
}

// Role identifies which end of a relationship a reference sits on.
type Role string

const (
	RoleSource Role = "source"
	RoleTarget Role = "target"
)

// UnresolvedReferenceError describes a relationship endpoint that names no
// known entity. It is never fatal; callers report it as a warning.
type UnresolvedReferenceError struct {
	Role   Role
	Name   string
	Source string
	Target string
}

// Error implements the error interface.
func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("umlconf: unresolved %s %q in aggregation (%s -> %s)", e.Role, e.Name, e.Source, e.Target)
}

// Is reports whether the target matches ErrUnresolvedReference.
func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}
